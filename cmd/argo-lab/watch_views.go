package main

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
)

// NewSymbolInput creates a new text input for symbol entry.
func NewSymbolInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "BTCUSDT,ETHUSDT,BNBUSDT"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50
	ti.Prompt = "> "

	return ti
}

// ParseSymbols parses comma-separated symbols into a slice.
func ParseSymbols(input string) []string {
	parts := strings.Split(input, ",")
	symbols := make([]string, 0, len(parts))

	for _, p := range parts {
		s := strings.TrimSpace(strings.ToUpper(p))
		if s != "" {
			symbols = append(symbols, s)
		}
	}

	return symbols
}

// NewTickerTable creates a new table for 24h ticker snapshots.
func NewTickerTable() table.Model {
	columns := []table.Column{
		{Title: "Symbol", Width: 12},
		{Title: "Price", Width: 22},
		{Title: "24h Change", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// UpdateTickerRows replaces the table rows with the latest tickers, sorted by symbol.
func UpdateTickerRows(t table.Model, tickers map[string]types.Ticker, prevPrices map[string]float64) table.Model {
	symbols := make([]string, 0, len(tickers))
	for symbol := range tickers {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	rows := make([]table.Row, 0, len(tickers))

	for _, symbol := range symbols {
		ticker := tickers[symbol]

		rows = append(rows, table.Row{
			symbol,
			FormatPriceWithColor(ticker.Price, prevPrices[symbol]),
			FormatSigned(ticker.ChangePercent, "%.2f%%"),
		})
	}

	t.SetRows(rows)

	return t
}
