package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizup/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a bigger terminal instead of drawing a
// squashed quiz.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small for the quiz.\n\nResize to at least %d x %d\n(currently %d x %d)",
		MinWidth, MinHeight, width, height)
	return theme.Body.Width(width).Height(height).Align(lipgloss.Center).Render(msg)
}

// bar is the rounded strip used for both header and footer.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader shows the app name, the screen title centered and the
// player on the right.
func RenderHeader(title, player string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  QuizUp")
	center := theme.Body.Render(title)
	who := ""
	if player != "" {
		who = lipgloss.NewStyle().Foreground(theme.Accent).Render("● " + player)
	}

	inner := max(width-4, 0)
	bw, cw, ww := lipgloss.Width(brand), lipgloss.Width(center), lipgloss.Width(who)
	gapL := max((inner-cw)/2-bw, 1)
	gapR := max(inner-bw-gapL-cw-ww, 1)

	return bar(width).Render(brand + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + who)
}

// RenderFooter lists key hints as "Key description".
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}

// Divider returns a horizontal rule at most 60 cells wide, centered.
func Divider(width int) string {
	line := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(min(width-8, 60), 0)))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}
