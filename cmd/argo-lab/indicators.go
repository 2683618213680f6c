package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rxtech-lab/argo-strategy-lab/internal/series"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func indicatorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "indicators",
		Usage: "Compute an indicator over recent market data",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Indicator name"},
			&cli.BoolFlag{Name: "list", Usage: "List registered indicators and exit"},
			&cli.StringFlag{Name: "symbol", Aliases: []string{"s"}, Value: "EURUSD", Usage: "Instrument symbol"},
			&cli.StringFlag{Name: "timeframe", Aliases: []string{"t"}, Value: string(types.TimeframeH1), Usage: "Candle timeframe"},
			&cli.StringSliceFlag{Name: "param", Aliases: []string{"p"}, Usage: "Positional indicator parameter, repeatable"},
			&cli.IntFlag{Name: "limit", Usage: "Number of candles to fetch"},
			&cli.IntFlag{Name: "tail", Value: 20, Usage: "Number of rows to print"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: string(OutputText), Usage: "Output format (text, json, yaml)"},
		},
		Action: indicatorsAction,
	}
}

// parseParams converts numeric parameters to float64, the same shape JSON
// request bodies produce. Anything else is passed through as text.
func parseParams(raw []string) []any {
	params := make([]any, 0, len(raw))

	for _, value := range raw {
		if number, err := strconv.ParseFloat(value, 64); err == nil {
			params = append(params, number)

			continue
		}

		params = append(params, value)
	}

	return params
}

func indicatorsAction(ctx context.Context, cmd *cli.Command) error {
	format, err := parseOutputFormat(cmd.String("output"))
	if err != nil {
		return err
	}

	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if cmd.Bool("list") {
		for _, name := range a.Registry.ListIndicators() {
			fmt.Fprintln(os.Stdout, name)
		}

		return nil
	}

	if cmd.String("name") == "" {
		return errors.New(errors.ErrCodeMissingParameter, "an indicator name is required")
	}

	ind, err := a.Registry.GetIndicator(types.IndicatorType(strings.ToLower(cmd.String("name"))))
	if err != nil {
		return err
	}

	if err := ind.Config(parseParams(cmd.StringSlice("param"))...); err != nil {
		return err
	}

	limit := int(cmd.Int("limit"))
	if limit <= 0 {
		limit = a.Config.MarketData.Limit
	}

	symbol := strings.ToUpper(cmd.String("symbol"))

	raw, err := a.Provider.Candles(ctx, symbol, types.Timeframe(strings.ToUpper(cmd.String("timeframe"))), limit)
	if err != nil {
		return err
	}

	data, report := series.Normalize(raw)
	if !report.Clean() {
		a.Logger.Warn("Candle series was normalized", zap.String("symbol", symbol), zap.Any("report", report))
	}

	if len(data) == 0 {
		return errors.Newf(errors.ErrCodeNoDataFound, "no usable candles for %s", symbol)
	}

	output := ind.Compute(data)

	if format == OutputText {
		fmt.Fprint(os.Stdout, RenderIndicator(ind.Name(), data, output, int(cmd.Int("tail"))))

		return nil
	}

	values := make(map[string][]*float64, len(output))
	for key, v := range output {
		values[key] = v.Pointers()
	}

	return writeStructured(os.Stdout, format, map[string]any{
		"indicator": ind.Name(),
		"symbol":    symbol,
		"data":      data,
		"output":    values,
	})
}
