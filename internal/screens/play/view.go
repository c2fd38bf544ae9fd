package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizup/internal/ui/components"
	"github.com/abhisek/quizup/internal/ui/layout"
	"github.com/abhisek/quizup/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\nSubmission failed: " + s.err.Error())
	case s.submitting || s.current < 0:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n" + s.spinner.View() + " Grading your answers...")
	}

	var b strings.Builder
	total := len(s.opts.Quiz.Questions)

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.opts.Quiz.Subject)

	infoRight := theme.Timer.Render(fmt.Sprintf("Q %d/%d", len(s.answered)+1, total))
	if s.opts.Quiz.DurationMins > 0 {
		rem := s.remaining()
		clock := theme.Timer
		if rem.Seconds() <= theme.LowTimeSeconds {
			clock = theme.TimerLow
		}
		infoRight += "  " + clock.Render(fmt.Sprintf("%d:%02d", int(rem.Minutes()), int(rem.Seconds())%60))
	}

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		"Difficulty "+components.DifficultyBadge(s.level)))
	b.WriteString("\n\n")

	bar := components.ProgressBar{Done: len(s.answered), Total: total, Width: min(width-8, 50)}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(min(width-8, 70)).Render(s.choice.View())))

	return b.String()
}
