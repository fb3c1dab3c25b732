package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// namedColors maps the CSS-style names accepted in background_color to ANSI
// codes. Anything else is handed to lipgloss as-is (hex or ANSI number).
var namedColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "8",
	"grey":    "8",
	"navy":    "17",
}

func colorFor(name string) lipgloss.Color {
	if code, ok := namedColors[strings.ToLower(name)]; ok {
		return lipgloss.Color(code)
	}
	return lipgloss.Color(name)
}

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	stampStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("63")).
			Italic(true)
)
