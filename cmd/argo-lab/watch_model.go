package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-strategy-lab/internal/marketdata"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
)

// Watch states.
const (
	StateSymbolInput = iota
	StateTickerDisplay
)

// TickersMsg carries a fresh ticker snapshot.
type TickersMsg struct {
	Tickers []types.Ticker
	Time    time.Time
}

// TickerErrorMsg reports a failed poll.
type TickerErrorMsg struct {
	Err error
}

// pollMsg asks the model to fetch the next snapshot.
type pollMsg struct {
	generation int
}

// WatchModel is the Bubble Tea model for the live ticker view.
type WatchModel struct {
	state       int
	symbolInput textinput.Model
	dataTable   table.Model
	tickers     map[string]types.Ticker
	prevPrices  map[string]float64
	symbols     []string
	updated     time.Time
	err         error
	width       int
	height      int

	feed     marketdata.TickerFeed
	interval time.Duration
	// generation invalidates polls scheduled before the symbols changed.
	generation int
}

// NewWatchModel starts in symbol input, or straight in the ticker view when
// symbols are given.
func NewWatchModel(feed marketdata.TickerFeed, symbols []string, interval time.Duration) WatchModel {
	if interval <= 0 {
		interval = 5 * time.Second
	}

	m := WatchModel{
		state:       StateSymbolInput,
		symbolInput: NewSymbolInput(),
		dataTable:   NewTickerTable(),
		tickers:     make(map[string]types.Ticker),
		prevPrices:  make(map[string]float64),
		feed:        feed,
		interval:    interval,
	}

	if len(symbols) > 0 {
		m.symbols = symbols
		m.state = StateTickerDisplay
		m.symbolInput.Blur()
	}

	return m
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	if m.state == StateTickerDisplay {
		return m.fetch()
	}

	return textinput.Blink
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.state != StateSymbolInput {
				return m, tea.Quit
			}
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dataTable.SetWidth(msg.Width)
		m.dataTable.SetHeight(msg.Height - 6)

		return m, nil

	case TickersMsg:
		for _, ticker := range msg.Tickers {
			if existing, ok := m.tickers[ticker.Symbol]; ok {
				m.prevPrices[ticker.Symbol] = existing.Price
			}

			m.tickers[ticker.Symbol] = ticker
		}

		m.updated = msg.Time
		m.err = nil
		m.dataTable = UpdateTickerRows(m.dataTable, m.tickers, m.prevPrices)

		return m, m.schedule()

	case TickerErrorMsg:
		m.err = msg.Err

		return m, m.schedule()

	case pollMsg:
		if msg.generation != m.generation || m.state != StateTickerDisplay {
			return m, nil
		}

		return m, m.fetch()
	}

	switch m.state {
	case StateSymbolInput:
		return m.updateSymbolInput(msg)
	case StateTickerDisplay:
		var cmd tea.Cmd
		m.dataTable, cmd = m.dataTable.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m WatchModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state != StateTickerDisplay {
		return m, nil
	}

	m.generation++
	m.tickers = make(map[string]types.Ticker)
	m.prevPrices = make(map[string]float64)
	m.symbols = nil
	m.err = nil
	m.dataTable.SetRows(nil)
	m.symbolInput.Reset()
	m.symbolInput.Focus()
	m.state = StateSymbolInput

	return m, textinput.Blink
}

func (m WatchModel) updateSymbolInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		symbols := ParseSymbols(m.symbolInput.Value())
		if len(symbols) > 0 {
			m.symbols = symbols
			m.state = StateTickerDisplay
			m.symbolInput.Blur()

			return m, m.fetch()
		}
	}

	var cmd tea.Cmd
	m.symbolInput, cmd = m.symbolInput.Update(msg)

	return m, cmd
}

// fetch polls the feed once for the current symbols.
func (m WatchModel) fetch() tea.Cmd {
	feed := m.feed
	symbols := append([]string(nil), m.symbols...)
	timeout := m.interval

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		tickers, err := feed.Tickers(ctx, symbols)
		if err != nil {
			return TickerErrorMsg{Err: err}
		}

		return TickersMsg{Tickers: tickers, Time: time.Now()}
	}
}

func (m WatchModel) schedule() tea.Cmd {
	if m.state != StateTickerDisplay {
		return nil
	}

	generation := m.generation

	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return pollMsg{generation: generation}
	})
}

// View implements tea.Model.
func (m WatchModel) View() string {
	var s strings.Builder

	switch m.state {
	case StateSymbolInput:
		s.WriteString(TitleStyle.Render("Enter Symbols"))
		s.WriteString("\n\n")
		s.WriteString("Enter comma-separated symbols (e.g., BTCUSDT,ETHUSDT):\n\n")
		s.WriteString(m.symbolInput.View())
		s.WriteString("\n\n")
		s.WriteString(HelpStyle.Render("Press Enter to confirm, Ctrl+C to quit"))

	case StateTickerDisplay:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("Live Tickers (every %s)", m.interval)))
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		if len(m.tickers) == 0 {
			s.WriteString("Waiting for data...\n")
		} else {
			s.WriteString(m.dataTable.View())
			s.WriteString("\n")
			s.WriteString(HelpStyle.Render("Updated " + m.updated.Format("15:04:05")))
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render(fmt.Sprintf("q: quit | Esc: change symbols | Watching: %s", strings.Join(m.symbols, ", "))))
	}

	return s.String()
}
