package tui

import "github.com/charmbracelet/lipgloss"

// Styles is the palette for one theme.
type Styles struct {
	Header   lipgloss.Style
	Search   lipgloss.Style
	Category lipgloss.Style
	Count    lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Detail   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

func newStyles(dark bool) Styles {
	var (
		text      = lipgloss.Color("#111827")
		muted     = lipgloss.Color("#6B7280")
		accent    = lipgloss.Color("#7C3AED")
		selection = lipgloss.Color("#E5E7EB")
		border    = lipgloss.Color("#D1D5DB")
	)
	if dark {
		text = lipgloss.Color("#F9FAFB")
		muted = lipgloss.Color("#9CA3AF")
		accent = lipgloss.Color("#A78BFA")
		selection = lipgloss.Color("#374151")
		border = lipgloss.Color("#374151")
	}
	errColor := lipgloss.Color("#EF4444")

	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Search:   lipgloss.NewStyle().Foreground(text),
		Category: lipgloss.NewStyle().Foreground(accent),
		Count:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		Row:      lipgloss.NewStyle().Foreground(text),
		Selected: lipgloss.NewStyle().Foreground(text).Background(selection).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Detail: lipgloss.NewStyle().
			Foreground(text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Status: lipgloss.NewStyle().Foreground(accent),
		Error:  lipgloss.NewStyle().Foreground(errColor).Bold(true),
		Help:   lipgloss.NewStyle().Foreground(muted),
	}
}
