// Package styles provides the colour palette and lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// Theme is the colour palette the styles are built from.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color
}

// DefaultTheme returns the dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2563EB"),
		Secondary:  lipgloss.Color("#06B6D4"),
		Background: lipgloss.Color("#1E1E2E"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
		Bar:        lipgloss.Color("#181825"),
	}
}

// Styles are the rendered styles every view shares.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Help     lipgloss.Style

	// InputField and Border draw rounded boxes.
	InputField lipgloss.Style
	Border     lipgloss.Style

	StatusBar lipgloss.Style

	// Highlight marks matched search terms.
	Highlight lipgloss.Style

	// Unread marks unread notifications and the inbox badge.
	Unread lipgloss.Style

	// Urgent marks urgent items; it is bold on top of the error colour.
	Urgent lipgloss.Style
}

// NewStyles builds styles from theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	box := lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Border)

	return &Styles{
		theme:      theme,
		Title:      fg(theme.Primary).Bold(true),
		Subtitle:   fg(theme.Secondary).Bold(true),
		Normal:     fg(theme.Foreground),
		Muted:      fg(theme.Muted),
		Selected:   fg(theme.Foreground).Background(theme.Primary).Bold(true),
		Error:      fg(theme.Error),
		Success:    fg(theme.Success),
		Warning:    fg(theme.Warning),
		Help:       fg(theme.Muted),
		InputField: box.Padding(0, 1),
		Border:     box,
		StatusBar:  fg(theme.Muted).Background(theme.Bar).Padding(0, 1),
		Highlight:  fg(theme.Warning).Bold(true),
		Unread:     fg(theme.Secondary).Bold(true),
		Urgent:     fg(theme.Error).Bold(true),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// ForStatus returns the style for a document status or alert severity.
func (s *Styles) ForStatus(status string) lipgloss.Style {
	switch status {
	case string(domain.DocumentStatusApproved), "info":
		return s.Success
	case string(domain.DocumentStatusPending), "warning":
		return s.Warning
	case string(domain.DocumentStatusRejected), "error", "critical":
		return s.Error
	default:
		return s.Muted
	}
}

// ForPriority returns the style for a document or notification priority.
func (s *Styles) ForPriority(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityUrgent:
		return s.Urgent
	case domain.PriorityHigh:
		return s.Warning
	case domain.PriorityLow:
		return s.Muted
	default:
		return s.Normal
	}
}
