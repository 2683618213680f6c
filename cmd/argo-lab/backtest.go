package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rxtech-lab/argo-strategy-lab/internal/backtest"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func backtestCommand() *cli.Command {
	return &cli.Command{
		Name:  "backtest",
		Usage: "Backtest a strategy against recent market data",
		Flags: append(strategyFlags(),
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: string(OutputText), Usage: "Output format (text, json, yaml)"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Hide stage progress"},
		),
		Action: backtestAction,
	}
}

// stageProgress reports runner stages on a progress bar.
func stageProgress(bar *progressbar.ProgressBar) backtest.RunCallbacks {
	onStart := backtest.OnStageStartCallback(func(stage backtest.Stage) error {
		bar.Describe(fmt.Sprintf("%-10s", stage))

		return nil
	})

	onEnd := backtest.OnStageEndCallback(func(stage backtest.Stage, _ time.Duration) {
		_ = bar.Add(1)
	})

	return backtest.RunCallbacks{
		OnStageStart: &onStart,
		OnStageEnd:   &onEnd,
	}
}

func backtestAction(ctx context.Context, cmd *cli.Command) error {
	format, err := parseOutputFormat(cmd.String("output"))
	if err != nil {
		return err
	}

	strategy, err := strategyFromCommand(cmd)
	if err != nil {
		return err
	}

	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	callbacks := backtest.RunCallbacks{}

	if !cmd.Bool("quiet") {
		bar := progressbar.NewOptions(len(backtest.Stages),
			progressbar.OptionSetDescription("Backtesting"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Close()

		callbacks = stageProgress(bar)
	}

	result, err := a.Runner.Run(ctx, strategy, callbacks)
	if err != nil {
		return err
	}

	if format == OutputText {
		fmt.Fprint(os.Stdout, RenderReport(result))

		return nil
	}

	return writeStructured(os.Stdout, format, result)
}
