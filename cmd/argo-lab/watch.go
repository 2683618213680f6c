package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Watch live 24h tickers in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "symbols", Usage: "Comma-separated symbols, prompts when empty"},
			&cli.DurationFlag{Name: "interval", Usage: "Refresh interval, overrides the configuration"},
		},
		Action: watchAction,
	}
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	interval := a.Config.Server.TickerInterval
	if cmd.IsSet("interval") {
		interval = cmd.Duration("interval")
	}

	model := NewWatchModel(a.Tickers, ParseSymbols(cmd.String("symbols")), interval)

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}

	return err
}
