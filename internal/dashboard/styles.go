package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ANSI palette. Plain codes keep the dashboard legible on terminals
// without truecolor support.
const (
	colorOK     lipgloss.Color = "2" // green
	colorIdle   lipgloss.Color = "4" // blue
	colorDown   lipgloss.Color = "1" // red
	colorWarn   lipgloss.Color = "3" // yellow
	colorAccent lipgloss.Color = "6" // cyan
	colorMuted  lipgloss.Color = "8" // gray (bright black)
)

// Styles groups the lipgloss styles used by the render pipeline. Built
// once per dashboard run.
type Styles struct {
	Title     lipgloss.Style
	Legend    lipgloss.Style
	Warning   lipgloss.Style
	Summary   lipgloss.Style
	Header    lipgloss.Style
	StateOK   lipgloss.Style
	StateIdle lipgloss.Style
	StateDown lipgloss.Style
	Stale     lipgloss.Style
	BarDocker lipgloss.Style
	BarNative lipgloss.Style
	Footer    lipgloss.Style
}

// NewStyles builds the style set, degrading to unstyled text when the
// terminal reports no color support.
func NewStyles() Styles {
	if termenv.ColorProfile() == termenv.Ascii {
		plain := lipgloss.NewStyle()
		return Styles{
			Title: plain, Legend: plain, Warning: plain, Summary: plain,
			Header: plain, StateOK: plain, StateIdle: plain, StateDown: plain,
			Stale: plain, BarDocker: plain, BarNative: plain, Footer: plain,
		}
	}

	return Styles{
		Title:     lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Legend:    lipgloss.NewStyle().Foreground(colorMuted),
		Warning:   lipgloss.NewStyle().Foreground(colorWarn),
		Summary:   lipgloss.NewStyle().Foreground(colorAccent),
		Header:    lipgloss.NewStyle().Bold(true),
		StateOK:   lipgloss.NewStyle().Foreground(colorOK),
		StateIdle: lipgloss.NewStyle().Foreground(colorIdle),
		StateDown: lipgloss.NewStyle().Foreground(colorDown),
		Stale:     lipgloss.NewStyle().Foreground(colorMuted),
		BarDocker: lipgloss.NewStyle().Foreground(colorAccent),
		BarNative: lipgloss.NewStyle().Foreground(colorOK),
		Footer:    lipgloss.NewStyle().Foreground(colorMuted),
	}
}
