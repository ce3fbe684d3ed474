// Package ui renders videobatch's terminal output: the task prompt, encode
// progress lines and batch counters.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette keyed to task outcome: encode banner, done, failed, skipped.
var (
	bannerFg  = lipgloss.AdaptiveColor{Light: "#1F4E79", Dark: "#8EC5FF"}
	bannerBg  = lipgloss.AdaptiveColor{Light: "#DCEBFA", Dark: "#1B2633"}
	doneFg    = lipgloss.AdaptiveColor{Light: "#1E7B34", Dark: "#6BDB8A"}
	failedFg  = lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#FF7A70"}
	skippedFg = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#F2C14E"}
	mutedFg   = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#9AA4AF"}
	activeFg  = lipgloss.AdaptiveColor{Light: "#6639BA", Dark: "#C8A2FF"}
)

var (
	// HeaderStyle titles each task run
	HeaderStyle = lipgloss.NewStyle().
			Foreground(bannerFg).
			Background(bannerBg).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(doneFg)

	ErrorStyle = lipgloss.NewStyle().Foreground(failedFg).Bold(true)

	// WarningStyle marks skipped work and degraded modes
	WarningStyle = lipgloss.NewStyle().Foreground(skippedFg)

	InfoStyle = lipgloss.NewStyle().Foreground(mutedFg)

	// ProcessingStyle marks the question or file currently being worked on
	ProcessingStyle = lipgloss.NewStyle().Foreground(activeFg).Bold(true)
)
