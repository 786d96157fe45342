package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/thirteen/internal/eventlog"
)

// Theme holds every style the table view uses.
type Theme struct {
	// Cards
	RedCard      lipgloss.Style
	BlackCard    lipgloss.Style
	CardCursor   lipgloss.Style
	CardSelected lipgloss.Style

	// Log severities
	Info    lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Time    lipgloss.Style

	// Layout
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Dim      lipgloss.Style
	Panel    lipgloss.Style
	Active   lipgloss.Style
	Toast    lipgloss.Style
	Status   lipgloss.Style
	Prompt   lipgloss.Style
	Selected lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		RedCard:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Background(lipgloss.Color("255")),
		BlackCard:    lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("255")),
		CardCursor:   lipgloss.NewStyle().Underline(true).Bold(true),
		CardSelected: lipgloss.NewStyle().Background(lipgloss.Color("226")),

		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Time:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Active:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("226")).Padding(0, 1),
		Toast:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("124")).Bold(true).Padding(0, 2),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Prompt:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("51")).Padding(1, 3),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
	}
}

// MonochromeTheme drops colour for terminals without it.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.RedCard = lipgloss.NewStyle().Reverse(true)
	theme.BlackCard = lipgloss.NewStyle().Reverse(true)
	theme.CardSelected = lipgloss.NewStyle().Bold(true)
	theme.Toast = lipgloss.NewStyle().Reverse(true).Bold(true).Padding(0, 2)
	return theme
}

// Severity returns the style for a log severity.
func (t Theme) Severity(s eventlog.Severity) lipgloss.Style {
	switch s {
	case eventlog.Warning:
		return t.Warning
	case eventlog.Success:
		return t.Success
	case eventlog.Error:
		return t.Error
	default:
		return t.Info
	}
}
