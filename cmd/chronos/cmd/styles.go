package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Inline(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	WarnStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)
)

// labelWidth is the minimum label column. Longer labels widen their own
// line and are never wrapped.
const labelWidth = 12

// field writes one aligned "label value" line.
func field(w io.Writer, label, value string) {
	fmt.Fprintln(w, LabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, label))+" "+ValueStyle.Render(value))
}
