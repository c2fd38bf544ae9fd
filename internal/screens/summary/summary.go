package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizup/internal/quiz"
	"github.com/abhisek/quizup/internal/screen"
	"github.com/abhisek/quizup/internal/store"
	"github.com/abhisek/quizup/internal/ui/components"
	"github.com/abhisek/quizup/internal/ui/layout"
	"github.com/abhisek/quizup/internal/ui/theme"
)

const (
	pollInterval = 2 * time.Second
	maxPolls     = 15
)

// ResultSource reloads a stored result, used to pick up guidance that is
// written after grading.
type ResultSource interface {
	Result(ctx context.Context, userID, resultID string) (*quiz.ResultView, error)
}

// guidanceMsg carries the outcome of one guidance poll.
type guidanceMsg struct {
	Text string
	Err  error
}

// SummaryScreen shows a graded submission.
type SummaryScreen struct {
	ctx    context.Context
	source ResultSource
	userID string
	title  string
	result *store.Result

	polls int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for res. source may be nil, in which case
// guidance is only shown if res already carries it.
func New(ctx context.Context, source ResultSource, userID, title string, res *store.Result) *SummaryScreen {
	return &SummaryScreen{ctx: ctx, source: source, userID: userID, title: title, result: res}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return s.poll()
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case guidanceMsg:
		if msg.Err == nil && msg.Text != "" {
			s.result.Guidance = msg.Text
			return s, nil
		}
		return s, s.poll()

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, tea.Quit
		}
	}
	return s, nil
}

// waiting reports whether guidance may still arrive.
func (s *SummaryScreen) waiting() bool {
	return s.source != nil && s.result != nil && s.result.Guidance == "" && s.polls < maxPolls
}

func (s *SummaryScreen) poll() tea.Cmd {
	if !s.waiting() {
		return nil
	}
	s.polls++
	source, ctx, userID, id := s.source, s.ctx, s.userID, s.result.ID
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		v, err := source.Result(ctx, userID, id)
		if err != nil {
			return guidanceMsg{Err: err}
		}
		return guidanceMsg{Text: v.Guidance}
	})
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}

	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), s.title+" complete!"))
	b.WriteString("\n\n")

	scoreStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Success)
	if res.Score < 50 {
		scoreStyle = scoreStyle.Foreground(theme.Error)
	}
	b.WriteString(center(scoreStyle, fmt.Sprintf("Score: %d%%", res.Score)))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("%d of %d correct in %d:%02d", res.Correct, res.Total,
			res.TimeTakenSecs/60, res.TimeTakenSecs%60)))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Questions"))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n")

	rows := make([]string, 0, len(res.Questions))
	for _, q := range res.Questions {
		rows = append(rows, questionRow(q))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))
	b.WriteString("\n\n")

	switch {
	case res.Guidance != "":
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Guidance"))
		b.WriteString("\n")
		b.WriteString(layout.Divider(width))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Body.Width(min(width-8, 70)).Render(res.Guidance)))
	case s.waiting():
		b.WriteString(center(theme.Hint, "Preparing guidance..."))
	}

	return b.String()
}

func questionRow(q store.QuestionResult) string {
	mark := theme.Correct.Render("✓")
	detail := q.UserAnswer
	if !q.IsCorrect {
		mark = theme.Incorrect.Render("✗")
		answer := q.UserAnswer
		if answer == "" {
			answer = "(none)"
		}
		detail = fmt.Sprintf("%s  →  %s", answer, q.CorrectAnswer)
	}
	return fmt.Sprintf("%2d. %s %s  %s", q.Position+1, mark,
		components.DifficultyBadge(q.Difficulty), detail)
}
