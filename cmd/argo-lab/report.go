package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rxtech-lab/argo-strategy-lab/internal/indicator"
	"github.com/rxtech-lab/argo-strategy-lab/internal/store"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how command results are printed.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

func parseOutputFormat(value string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(value)) {
	case OutputText, "":
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	case OutputYAML:
		return OutputYAML, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidParameter, "unsupported output format: %s", value)
	}
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format OutputFormat, v any) error {
	switch format {
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(v)
	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		defer encoder.Close()

		return encoder.Encode(v)
	default:
		return errors.Newf(errors.ErrCodeInvalidParameter, "unsupported output format: %s", format)
	}
}

// RenderReport formats a backtest result for the terminal.
func RenderReport(result *types.BacktestResult) string {
	var b strings.Builder

	m := result.Metrics

	fmt.Fprintln(&b, TitleStyle.Render(fmt.Sprintf("Backtest %s", result.Strategy)))
	fmt.Fprintln(&b, HelpStyle.Render(fmt.Sprintf("%s · %d candles · id %s", result.Symbol, len(result.Data), result.ID)))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "  Trades         %d (%d won, %d lost)\n", m.TotalTrades, m.WinningTrades, m.LosingTrades)
	fmt.Fprintf(&b, "  Win rate       %.2f%%\n", m.WinRate)
	fmt.Fprintf(&b, "  Net profit     %s\n", FormatSigned(m.NetProfit, "%.2f"))
	fmt.Fprintf(&b, "  Profit factor  %.2f\n", m.ProfitFactor)
	fmt.Fprintf(&b, "  Max drawdown   %.2f%%\n", m.MaxDrawdown)

	if result.Dropped > 0 {
		fmt.Fprintln(&b, HelpStyle.Render(fmt.Sprintf("  %d proposed trades were dropped", result.Dropped)))
	}

	if len(result.Trades) == 0 {
		return b.String()
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, TitleStyle.Render("Trades"))

	for _, trade := range result.Trades {
		fmt.Fprintf(&b, "  %-4s %s → %s  %.5f → %.5f  %s\n",
			trade.Type, trade.EntryTime, trade.ExitTime, trade.EntryPrice, trade.ExitPrice,
			FormatSigned(trade.Profit, "%.1f"))
	}

	return b.String()
}

// RenderIndicator formats the last tail rows of an indicator output beside the close price.
func RenderIndicator(name types.IndicatorType, data types.CandleSeries, output indicator.Output, tail int) string {
	var b strings.Builder

	keys := make([]string, 0, len(output))
	for key := range output {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	fmt.Fprintln(&b, TitleStyle.Render(string(name)))
	fmt.Fprintf(&b, "%-20s %-16s", "time", "close")

	for _, key := range keys {
		fmt.Fprintf(&b, " %12s", key)
	}

	fmt.Fprintln(&b)

	start := 0
	if tail > 0 && len(data) > tail {
		start = len(data) - tail
	}

	for i := start; i < len(data); i++ {
		previous := 0.0
		if i > 0 {
			previous = data[i-1].Close
		}

		fmt.Fprintf(&b, "%-20s %-16s", data[i].Label(), FormatPriceWithColor(data[i].Close, previous))

		for _, key := range keys {
			value := output[key].At(i)
			if value.IsNone() {
				fmt.Fprintf(&b, " %12s", "-")

				continue
			}

			fmt.Fprintf(&b, " %12.5f", value.Unwrap())
		}

		fmt.Fprintln(&b)
	}

	return b.String()
}

// RenderStrategies formats stored strategies as a table.
func RenderStrategies(strategies []store.StoredStrategy) string {
	if len(strategies) == 0 {
		return HelpStyle.Render("No strategies saved") + "\n"
	}

	var b strings.Builder

	fmt.Fprintln(&b, TitleStyle.Render(fmt.Sprintf("%-36s  %-24s %-10s %-4s %s", "id", "name", "symbol", "tf", "updated")))

	for _, s := range strategies {
		fmt.Fprintf(&b, "%-36s  %-24s %-10s %-4s %s\n",
			s.ID, s.Config.Name, s.Config.Symbol, s.Config.Timeframe, s.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return b.String()
}
