// Package play implements the screen that runs a quiz in the terminal.
package play

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizup/internal/difficulty"
	"github.com/abhisek/quizup/internal/grading"
	"github.com/abhisek/quizup/internal/quiz"
	"github.com/abhisek/quizup/internal/router"
	"github.com/abhisek/quizup/internal/screen"
	"github.com/abhisek/quizup/internal/screens/summary"
	"github.com/abhisek/quizup/internal/selection"
	"github.com/abhisek/quizup/internal/store"
	"github.com/abhisek/quizup/internal/ui/components"
	"github.com/abhisek/quizup/internal/ui/layout"
)

// Service is what the screen needs from the quiz service.
type Service interface {
	Submit(ctx context.Context, studentID string, in quiz.SubmitInput) (*store.Result, error)
	summary.ResultSource
}

// Options configures a PlayScreen.
type Options struct {
	Service Service
	UserID  string
	// Quiz must carry its questions. When correct answers are present the
	// difficulty badge follows the player's streak live.
	Quiz *store.Quiz
	// Adaptive presents questions via selection.Next instead of in order.
	Adaptive bool
}

// PlayScreen presents one question at a time and submits all answers once
// the last one is chosen or the time runs out.
type PlayScreen struct {
	ctx  context.Context
	opts Options

	pool     []selection.Candidate
	answers  map[string]string
	answered map[string]bool
	current  int
	choice   components.MultiChoice

	// order is the question IDs in the order they were answered;
	// outcomes holds correctness for the answers the badge can judge.
	order    []string
	outcomes []bool
	level    difficulty.Level

	elapsed    time.Duration
	submitting bool
	spinner    spinner.Model
	err        error
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates a PlayScreen. ctx bounds the submission request.
func New(ctx context.Context, opts Options) *PlayScreen {
	s := &PlayScreen{
		ctx:      ctx,
		opts:     opts,
		answers:  make(map[string]string),
		answered: make(map[string]bool),
		current:  -1,
		level:    difficulty.Easy,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	for _, q := range opts.Quiz.Questions {
		s.pool = append(s.pool, selection.Candidate{ID: q.ID, Difficulty: q.Difficulty})
	}
	s.advance()
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	if s.current < 0 {
		return s.submit()
	}
	return tickCmd()
}

func (s *PlayScreen) Title() string {
	return s.opts.Quiz.Title
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.submitting || s.err != nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Choose"},
		{Key: "Esc", Description: "Abandon"},
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if s.submitting || s.err != nil {
			return s, nil
		}
		s.elapsed += time.Second
		if s.timeUp() {
			return s, s.submit()
		}
		return s, tickCmd()

	case submittedMsg:
		s.submitting = false
		if msg.Err != nil {
			s.err = msg.Err
			return s, nil
		}
		next := summary.New(s.ctx, s.opts.Service, s.opts.UserID, s.opts.Quiz.Title, msg.Result)
		return s, router.Replace(next)

	case spinner.TickMsg:
		if !s.submitting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.submitting || s.err != nil || s.current < 0 {
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			s.record(s.choice.Answer())
			if !s.advance() {
				return s, s.submit()
			}
		}
		return s, cmd
	}
	return s, nil
}

// record stores the answer to the current question and replays the
// difficulty walk the grader will apply to the same answer order.
func (s *PlayScreen) record(answer string) {
	q := s.opts.Quiz.Questions[s.current]
	s.answers[q.ID] = answer
	s.answered[q.ID] = true
	s.order = append(s.order, q.ID)
	if q.CorrectAnswer == "" {
		return
	}
	s.outcomes = append(s.outcomes, answer == q.CorrectAnswer)
	walk := grading.Walk(s.outcomes, difficulty.Easy)
	s.level = walk[len(walk)-1]
}

// advance picks the next question. It reports false when none remain.
func (s *PlayScreen) advance() bool {
	s.current = -1
	var id string
	var ok bool
	if s.opts.Adaptive {
		id, ok = selection.Next(s.pool, s.level, s.answered)
	} else {
		for _, c := range s.pool {
			if !s.answered[c.ID] {
				id, ok = c.ID, true
				break
			}
		}
	}
	if !ok {
		return false
	}
	for i, q := range s.opts.Quiz.Questions {
		if q.ID == id {
			s.current = i
			s.choice = components.NewMultiChoice(q.Content, q.Options)
			return true
		}
	}
	return false
}

func (s *PlayScreen) timeUp() bool {
	limit := time.Duration(s.opts.Quiz.DurationMins) * time.Minute
	return limit > 0 && s.elapsed >= limit
}

func (s *PlayScreen) remaining() time.Duration {
	limit := time.Duration(s.opts.Quiz.DurationMins) * time.Minute
	return max(limit-s.elapsed, 0)
}

// submit sends answers in quiz order along with the order they were
// answered in. Questions left unanswered when the time runs out are
// submitted as empty answers after the answered ones.
func (s *PlayScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	s.submitting = true
	s.current = -1

	answers := make([]string, len(s.opts.Quiz.Questions))
	order := append([]string(nil), s.order...)
	for i, q := range s.opts.Quiz.Questions {
		answers[i] = s.answers[q.ID]
		if !s.answered[q.ID] {
			order = append(order, q.ID)
		}
	}
	in := quiz.SubmitInput{
		QuizID:        s.opts.Quiz.ID,
		Answers:       answers,
		Order:         order,
		TimeTakenSecs: int(s.elapsed.Seconds()),
	}
	svc, ctx, userID := s.opts.Service, s.ctx, s.opts.UserID

	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		res, err := svc.Submit(ctx, userID, in)
		return submittedMsg{Result: res, Err: err}
	})
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
