package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for secondary text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// ProfitStyle and LossStyle color signed amounts.
	ProfitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	LossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// FormatPriceWithColor formats a price with an arrow showing the move from previous.
func FormatPriceWithColor(current, previous float64) string {
	priceStr := fmt.Sprintf("%.5f", current)

	if previous == 0 {
		return priceStr
	}

	if current > previous {
		return priceStr + " ▲"
	} else if current < previous {
		return priceStr + " ▼"
	}

	return priceStr
}

// FormatSigned renders a signed amount with the profit or loss style.
func FormatSigned(value float64, format string) string {
	text := fmt.Sprintf(format, value)

	switch {
	case value > 0:
		return ProfitStyle.Render("+" + text)
	case value < 0:
		return LossStyle.Render(text)
	default:
		return text
	}
}
