package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// strategyFlags describe a strategy inline or override fields of a strategy file.
func strategyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "strategy", Aliases: []string{"f"}, Usage: "Strategy `FILE` (YAML or JSON)"},
		&cli.StringFlag{Name: "name", Usage: "Strategy name"},
		&cli.StringFlag{Name: "symbol", Aliases: []string{"s"}, Usage: "Instrument symbol"},
		&cli.StringFlag{Name: "timeframe", Aliases: []string{"t"}, Usage: "Candle timeframe (M1, M5, M15, M30, H1, H4, D1)"},
		&cli.StringFlag{Name: "platform", Usage: "Target platform (MT4, MT5)"},
		&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Strategy logic in natural language"},
		&cli.FloatFlag{Name: "lot-size", Usage: "Lot size"},
		&cli.FloatFlag{Name: "stop-loss", Usage: "Stop loss in pips"},
		&cli.FloatFlag{Name: "take-profit", Usage: "Take profit in pips"},
	}
}

// defaultStrategy is the starting point when no strategy file is given.
func defaultStrategy() types.StrategyConfig {
	return types.StrategyConfig{
		Name:       "Untitled",
		Platform:   types.PlatformMT5,
		Symbol:     "EURUSD",
		Timeframe:  types.TimeframeH1,
		LotSize:    0.1,
		StopLoss:   20,
		TakeProfit: 40,
		Indicators: types.DefaultIndicatorSettings(),
	}
}

// readStrategyFile decodes a strategy from JSON (.json) or YAML.
func readStrategyFile(path string) (types.StrategyConfig, error) {
	strategy := defaultStrategy()

	data, err := os.ReadFile(path)
	if err != nil {
		return strategy, errors.Wrapf(errors.ErrCodeInvalidStrategy, err, "failed to read strategy file %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &strategy)
	} else {
		err = yaml.Unmarshal(data, &strategy)
	}

	if err != nil {
		return strategy, errors.Wrapf(errors.ErrCodeInvalidStrategy, err, "failed to parse strategy file %s", path)
	}

	return strategy, nil
}

// strategyFromCommand builds a strategy from the --strategy file and the override flags.
func strategyFromCommand(cmd *cli.Command) (types.StrategyConfig, error) {
	strategy := defaultStrategy()

	if path := cmd.String("strategy"); path != "" {
		var err error

		strategy, err = readStrategyFile(path)
		if err != nil {
			return strategy, err
		}
	}

	if v := cmd.String("name"); v != "" {
		strategy.Name = v
	}

	if v := cmd.String("symbol"); v != "" {
		strategy.Symbol = strings.ToUpper(v)
	}

	if v := cmd.String("timeframe"); v != "" {
		strategy.Timeframe = types.Timeframe(strings.ToUpper(v))
	}

	if v := cmd.String("platform"); v != "" {
		strategy.Platform = types.Platform(strings.ToUpper(v))
	}

	if v := cmd.String("description"); v != "" {
		strategy.Description = v
	}

	if cmd.IsSet("lot-size") {
		strategy.LotSize = cmd.Float("lot-size")
	}

	if cmd.IsSet("stop-loss") {
		strategy.StopLoss = cmd.Float("stop-loss")
	}

	if cmd.IsSet("take-profit") {
		strategy.TakeProfit = cmd.Float("take-profit")
	}

	if err := strategy.Validate(); err != nil {
		return strategy, err
	}

	return strategy, nil
}
