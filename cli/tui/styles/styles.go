// Package styles holds the shared lipgloss styles for terminal output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	Primary   = lipgloss.Color("39")
	Highlight = lipgloss.Color("212")
	Surface   = lipgloss.Color("236")
	Border    = lipgloss.Color("240")
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	InfoStyle    = lipgloss.NewStyle().Foreground(Primary)
	SubtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	TitleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)

	PaginationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)
