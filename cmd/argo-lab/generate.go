package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"github.com/urfave/cli/v3"
)

var errOracleUnavailable = errors.New(errors.ErrCodeMissingParameter, "this command needs a Gemini API key (set GEMINI_API_KEY)")

// botFileName derives an output file name from the strategy name and platform.
func botFileName(strategy types.StrategyConfig) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(strategy.Name))

	if name == "" {
		name = "bot"
	}

	ext := ".mq5"
	if strategy.Platform == types.PlatformMT4 {
		ext = ".mq4"
	}

	return name + ext
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate an Expert Advisor for a strategy",
		Flags: append(strategyFlags(),
			&cli.StringFlag{Name: "out", Usage: "Output `FILE`, defaults to the strategy name"},
		),
		Action: generateAction,
	}
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	strategy, err := strategyFromCommand(cmd)
	if err != nil {
		return err
	}

	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Generator == nil {
		return errOracleUnavailable
	}

	bot, err := a.Generator.GenerateBot(ctx, strategy)
	if err != nil {
		return err
	}

	out := cmd.String("out")
	if out == "" {
		out = botFileName(strategy)
	}

	if err := os.WriteFile(out, []byte(bot.Code), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Fprintln(os.Stdout, TitleStyle.Render("Wrote "+out))

	if bot.Explanation != "" {
		fmt.Fprintln(os.Stdout, HelpStyle.Render(bot.Explanation))
	}

	return nil
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Derive a strategy draft from a chart image",
		ArgsUsage: "IMAGE",
		Flags: append(strategyFlags(),
			&cli.BoolFlag{Name: "save", Usage: "Save the resulting strategy to the store"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: string(OutputYAML), Usage: "Output format (json, yaml)"},
		),
		Action: analyzeAction,
	}
}

// imageMIMEType picks the MIME type from the extension, falling back to content sniffing.
func imageMIMEType(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	}

	return http.DetectContentType(data)
}

func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New(errors.ErrCodeMissingParameter, "an image path is required")
	}

	format, err := parseOutputFormat(cmd.String("output"))
	if err != nil {
		return err
	}

	if format == OutputText {
		format = OutputYAML
	}

	image, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidParameter, err, "failed to read image %s", path)
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

	if a.Analyzer == nil {
		return errOracleUnavailable
	}

	draft, err := a.Analyzer.AnalyzeChart(ctx, image, imageMIMEType(path, image))
	if err != nil {
		return err
	}

	strategy = draft.Apply(strategy)

	if cmd.Bool("save") {
		saved, err := a.Store.Save(ctx, "", strategy)
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stderr, HelpStyle.Render("Saved as "+saved.ID))
	}

	return writeStructured(os.Stdout, format, strategy)
}
