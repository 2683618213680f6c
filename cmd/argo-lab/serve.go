package main

import (
	"context"

	"github.com/rxtech-lab/argo-strategy-lab/internal/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the HTTP API and the live ticker stream",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address, overrides the configuration"},
			&cli.BoolFlag{Name: "no-tickers", Usage: "Disable the live ticker stream"},
		},
		Action: serveAction,
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.Config.Server.Addr
	if v := cmd.String("addr"); v != "" {
		addr = v
	}

	deps := server.Dependencies{
		Registry:  a.Registry,
		Runner:    a.Runner,
		Generator: a.Generator,
		Analyzer:  a.Analyzer,
		Store:     a.Store,
		Metrics:   a.Metrics,
		Defaults:  a.Config.Indicators,
	}

	if !cmd.Bool("no-tickers") && a.Tickers != nil {
		deps.Hub = server.NewTickerHub(a.Tickers, a.Config.Server.TickerSymbols, a.Config.Server.TickerInterval, a.Metrics, a.Logger)
	}

	a.Logger.Info("Starting server",
		zap.String("addr", addr),
		zap.Bool("codeGeneration", a.Generator != nil),
		zap.Bool("tickers", deps.Hub != nil),
	)

	return server.NewServer(deps, a.Logger).ListenAndServe(ctx, addr)
}
