package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"github.com/urfave/cli/v3"
)

func strategiesCommand() *cli.Command {
	return &cli.Command{
		Name:  "strategies",
		Usage: "Manage saved strategies",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved strategies",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: string(OutputText), Usage: "Output format (text, json, yaml)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					format, err := parseOutputFormat(cmd.String("output"))
					if err != nil {
						return err
					}

					a, err := setup(ctx, cmd)
					if err != nil {
						return err
					}
					defer a.Close()

					strategies, err := a.Store.List(ctx)
					if err != nil {
						return err
					}

					if format == OutputText {
						fmt.Fprint(os.Stdout, RenderStrategies(strategies))

						return nil
					}

					return writeStructured(os.Stdout, format, strategies)
				},
			},
			{
				Name:      "show",
				Usage:     "Print a saved strategy",
				ArgsUsage: "ID",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.Args().First()
					if id == "" {
						return errors.New(errors.ErrCodeMissingParameter, "a strategy id is required")
					}

					a, err := setup(ctx, cmd)
					if err != nil {
						return err
					}
					defer a.Close()

					stored, err := a.Store.Get(ctx, id)
					if err != nil {
						return err
					}

					return writeStructured(os.Stdout, OutputYAML, stored.Config)
				},
			},
			{
				Name:  "save",
				Usage: "Save a strategy",
				Flags: append(strategyFlags(),
					&cli.StringFlag{Name: "id", Usage: "Strategy id, generated when empty"},
				),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					strategy, err := strategyFromCommand(cmd)
					if err != nil {
						return err
					}

					a, err := setup(ctx, cmd)
					if err != nil {
						return err
					}
					defer a.Close()

					saved, err := a.Store.Save(ctx, cmd.String("id"), strategy)
					if err != nil {
						return err
					}

					fmt.Fprintln(os.Stdout, saved.ID)

					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a saved strategy",
				ArgsUsage: "ID",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.Args().First()
					if id == "" {
						return errors.New(errors.ErrCodeMissingParameter, "a strategy id is required")
					}

					a, err := setup(ctx, cmd)
					if err != nil {
						return err
					}
					defer a.Close()

					return a.Store.Delete(ctx, id)
				},
			},
		},
	}
}
