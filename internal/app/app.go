package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizup/internal/router"
	"github.com/abhisek/quizup/internal/screen"
	"github.com/abhisek/quizup/internal/screens/play"
	"github.com/abhisek/quizup/internal/store"
	"github.com/abhisek/quizup/internal/ui/layout"
)

// Options configures a terminal quiz run.
type Options struct {
	Service  play.Service
	Player   *store.User
	Quiz     *store.Quiz
	Adaptive bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	player string
	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	first := play.New(ctx, play.Options{
		Service:  opts.Service,
		UserID:   opts.Player.ID,
		Quiz:     opts.Quiz,
		Adaptive: opts.Adaptive,
	})
	return AppModel{
		router: router.New(first),
		player: opts.Player.Name,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			if _, ok := m.router.Active().(*play.PlayScreen); ok {
				return m, tea.Quit
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, active screen and footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.player, m.width)

	hints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run plays opts.Quiz in the terminal until the player quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Quiz == nil || opts.Player == nil || opts.Service == nil {
		return fmt.Errorf("app: quiz, player and service are required")
	}
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
