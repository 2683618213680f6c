package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-strategy-lab/internal/app"
	"github.com/rxtech-lab/argo-strategy-lab/internal/config"
	"github.com/rxtech-lab/argo-strategy-lab/internal/logger"
	"github.com/rxtech-lab/argo-strategy-lab/internal/version"
	"github.com/urfave/cli/v3"
)

// setup loads configuration and builds the services shared by every command.
func setup(ctx context.Context, cmd *cli.Command) (*app.App, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if level := cmd.String("log-level"); level != "" {
		cfg.LogLevel = level
	}

	log, err := logger.NewStderrLogger(logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return app.New(ctx, cfg, log)
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "argo-lab",
		Usage:   "Compute indicators, backtest strategies and generate trading bots",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration `FILE`",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			backtestCommand(),
			indicatorsCommand(),
			generateCommand(),
			analyzeCommand(),
			strategiesCommand(),
			serveCommand(),
			schemaCommand(),
			watchCommand(),
			downloadCommand(),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}
