package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles + glyphs.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Price lipgloss.Style
	Selected, Border                            lipgloss.Style

	FavoriteOn, FavoriteOff string
	Minus, Plus, Cursor     string
	SymOK, SymFail          string
}

var current = classic()

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
			Muted:    lipgloss.NewStyle().Faint(true),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Price:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
			Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
			Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("201")).Padding(0, 1),

			FavoriteOn: "♥", FavoriteOff: "♡",
			Minus: "−", Plus: "+", Cursor: "▶ ",
			SymOK: "✔", SymFail: "✖",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain, Price: plain,
			Selected: plain.Reverse(true),
			Border:   lipgloss.NewStyle().Border(asciiBorder).Padding(0, 1),

			FavoriteOn: "[*]", FavoriteOff: "[ ]",
			Minus: "-", Plus: "+", Cursor: "> ",
			SymOK: "ok", SymFail: "error:",
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Price:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),

		FavoriteOn: "♥", FavoriteOff: "♡",
		Minus: "−", Plus: "+", Cursor: "> ",
		SymOK: "✔", SymFail: "✖",
	}
}

// Expose what renderers need
func Current() Theme { return current }
