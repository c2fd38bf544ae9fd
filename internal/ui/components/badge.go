package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizup/internal/difficulty"
	"github.com/abhisek/quizup/internal/ui/theme"
)

// DifficultyColor returns the badge color for a level.
func DifficultyColor(l difficulty.Level) color.Color {
	switch l {
	case difficulty.Medium:
		return theme.Medium
	case difficulty.Hard:
		return theme.Hard
	}
	return theme.Easy
}

// DifficultyBadge renders a level as a colored pill.
func DifficultyBadge(l difficulty.Level) string {
	return lipgloss.NewStyle().
		Foreground(theme.BgCard).
		Background(DifficultyColor(l)).
		Bold(true).
		Padding(0, 1).
		Render(l.String())
}
