package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizup/internal/ui/layout"
)

// Screen is one page of the terminal UI. The app draws the header and
// footer; a screen only renders the area between them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider is implemented by screens that replace the default
// footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
