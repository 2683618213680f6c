package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-strategy-lab/internal/oracle"
	"github.com/urfave/cli/v3"
)

const (
	strategySchemaName = "strategy.schema.json"
	strategySampleName = "strategy.sample.json"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Write the strategy JSON schema and a sample strategy",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: "./config", Usage: "Output `DIR`"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return writeSchemaFiles(cmd.String("dir"))
		},
	}
}

// writeSchemaFiles writes the schema and, when missing, a sample strategy.
func writeSchemaFiles(dir string) error {
	schema, err := oracle.StrategySchema()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	schemaPath := filepath.Join(dir, strategySchemaName)
	if err := os.WriteFile(schemaPath, []byte(schema), 0o644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	fmt.Fprintln(os.Stdout, "Schema written to "+schemaPath)

	samplePath := filepath.Join(dir, strategySampleName)
	if _, err := os.Stat(samplePath); !os.IsNotExist(err) {
		return nil
	}

	data, err := json.MarshalIndent(defaultStrategy(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sample strategy: %w", err)
	}

	if err := os.WriteFile(samplePath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write sample strategy: %w", err)
	}

	fmt.Fprintln(os.Stdout, "Sample strategy written to "+samplePath)

	return nil
}
