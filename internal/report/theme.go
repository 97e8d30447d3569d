package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/timvw/webtrace/internal/trace"
)

// Theme defines all colors used by the report views.
// Use DarkTheme() or LightTheme() to get a pre-built theme,
// or construct a custom Theme.
type Theme struct {
	Primary   lipgloss.Color // title, cursor
	Secondary lipgloss.Color // selected row text
	Error     lipgloss.Color // failed, SEVERE
	Warning   lipgloss.Color // skipped, WARNING
	Success   lipgloss.Color // passed
	Info      lipgloss.Color // commands, screenshots
	Text      lipgloss.Color
	TextMuted lipgloss.Color // timestamps, ids, hints
	Selection lipgloss.Color // selected row background
	Border    lipgloss.Color
}

func DarkTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#fab283"),
		Secondary: lipgloss.Color("#5c9cf5"),
		Error:     lipgloss.Color("#e06c75"),
		Warning:   lipgloss.Color("#f5a742"),
		Success:   lipgloss.Color("#7fd88f"),
		Info:      lipgloss.Color("#56b6c2"),
		Text:      lipgloss.Color("#eeeeee"),
		TextMuted: lipgloss.Color("#808080"),
		Selection: lipgloss.Color("#1e1e1e"),
		Border:    lipgloss.Color("#484848"),
	}
}

// LightTheme returns a light theme for bright terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#b35c00"),
		Secondary: lipgloss.Color("#0550ae"),
		Error:     lipgloss.Color("#cf222e"),
		Warning:   lipgloss.Color("#bf8700"),
		Success:   lipgloss.Color("#116329"),
		Info:      lipgloss.Color("#0969da"),
		Text:      lipgloss.Color("#1f2328"),
		TextMuted: lipgloss.Color("#656d76"),
		Selection: lipgloss.Color("#f6f8fa"),
		Border:    lipgloss.Color("#d0d7de"),
	}
}

// ThemeByName returns a theme by name. Defaults to dark.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DarkTheme()
	}
}

// styles holds all lipgloss styles derived from a Theme for one output.
type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	selected lipgloss.Style
	passed   lipgloss.Style
	failed   lipgloss.Style
	skipped  lipgloss.Style
	info     lipgloss.Style
	dim      lipgloss.Style
	text     lipgloss.Style
	rule     lipgloss.Style
}

// newStyles builds the styles for output written to w. The color profile
// follows w, so plain files and buffers get no escape sequences.
func newStyles(t Theme, w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(t.Primary),
		header:   r.NewStyle().Bold(true).Foreground(t.Text),
		selected: r.NewStyle().Bold(true).Foreground(t.Secondary).Background(t.Selection),
		passed:   r.NewStyle().Foreground(t.Success),
		failed:   r.NewStyle().Bold(true).Foreground(t.Error),
		skipped:  r.NewStyle().Foreground(t.Warning),
		info:     r.NewStyle().Foreground(t.Info),
		dim:      r.NewStyle().Foreground(t.TextMuted),
		text:     r.NewStyle().Foreground(t.Text),
		rule:     r.NewStyle().Foreground(t.Border),
	}
}

func (s styles) status(st trace.Status) lipgloss.Style {
	switch st {
	case trace.StatusFailed:
		return s.failed
	case trace.StatusSkipped:
		return s.skipped
	}
	return s.passed
}

func (s styles) level(l trace.Level) lipgloss.Style {
	switch l {
	case trace.LevelSevere:
		return s.failed
	case trace.LevelWarning:
		return s.skipped
	case trace.LevelFine:
		return s.dim
	}
	return s.text
}

func statusIcon(st trace.Status) string {
	switch st {
	case trace.StatusFailed:
		return "✗"
	case trace.StatusSkipped:
		return "○"
	}
	return "✓"
}
