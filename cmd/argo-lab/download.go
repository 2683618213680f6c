package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rxtech-lab/argo-strategy-lab/internal/marketdata"
	"github.com/rxtech-lab/argo-strategy-lab/internal/series"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func downloadCommand() *cli.Command {
	return &cli.Command{
		Name:  "download",
		Usage: "Download candles to a Parquet file for offline backtests",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "symbols", Aliases: []string{"s"}, Value: "EURUSD", Usage: "Comma-separated symbols"},
			&cli.StringFlag{Name: "timeframe", Aliases: []string{"t"}, Value: string(types.TimeframeH1), Usage: "Candle timeframe"},
			&cli.IntFlag{Name: "limit", Usage: "Candles per symbol"},
			&cli.StringFlag{Name: "out", Value: "candles.parquet", Usage: "Output Parquet `FILE`"},
		},
		Action: downloadAction,
	}
}

func downloadAction(ctx context.Context, cmd *cli.Command) error {
	symbols := ParseSymbols(cmd.String("symbols"))
	if len(symbols) == 0 {
		return errors.New(errors.ErrCodeMissingParameter, "at least one symbol is required")
	}

	timeframe := types.Timeframe(cmd.String("timeframe"))

	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	limit := int(cmd.Int("limit"))
	if limit <= 0 {
		limit = a.Config.MarketData.Limit
	}

	writer := marketdata.NewParquetWriter(cmd.String("out"))
	if err := writer.Initialize(); err != nil {
		return err
	}
	defer writer.Close()

	bar := progressbar.NewOptions(len(symbols),
		progressbar.OptionSetDescription("Downloading"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	total := 0

	for _, symbol := range symbols {
		bar.Describe(symbol)

		raw, err := a.Provider.Candles(ctx, symbol, timeframe, limit)
		if err != nil {
			return err
		}

		data, _ := series.Normalize(raw)

		for _, candle := range data {
			if err := writer.Write(symbol, timeframe, candle); err != nil {
				return err
			}
		}

		total += len(data)
		_ = bar.Add(1)
	}

	out, err := writer.Finalize()
	if err != nil {
		return err
	}

	_ = bar.Finish()

	fmt.Fprintln(os.Stdout, TitleStyle.Render(fmt.Sprintf("Wrote %d candles to %s", total, out)))

	return nil
}
