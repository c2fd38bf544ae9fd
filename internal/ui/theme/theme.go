// Package theme holds the colors and text styles of the quiz UI.
package theme

import "charm.land/lipgloss/v2"

var (
	Primary   = lipgloss.Color("#6366F1") // indigo
	Secondary = lipgloss.Color("#0EA5E9") // sky
	Accent    = lipgloss.Color("#F59E0B") // amber
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Difficulty badges reuse the outcome colors: easy reads as safe, hard as
// a warning.
var (
	Easy   = Success
	Medium = Accent
	Hard   = Error
)

// LowTimeSeconds is when the countdown switches to TimerLow.
const LowTimeSeconds = 30

var (
	Body = lipgloss.NewStyle().Foreground(Text)
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	// Options in a multiple-choice list.
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)

	// Graded answers on the results screen.
	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)

	Timer    = lipgloss.NewStyle().Foreground(TextDim)
	TimerLow = lipgloss.NewStyle().Foreground(Error).Bold(true)
)
