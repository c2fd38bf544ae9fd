package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizup/internal/quiz"
	"github.com/abhisek/quizup/internal/store"
)

type stubService struct{}

func (stubService) Submit(context.Context, string, quiz.SubmitInput) (*store.Result, error) {
	return &store.Result{}, nil
}

func (stubService) Result(context.Context, string, string) (*quiz.ResultView, error) {
	return &quiz.ResultView{}, nil
}

func testOptions() Options {
	return Options{
		Service: stubService{},
		Player:  &store.User{ID: "u1", Name: "Alice"},
		Quiz: &store.Quiz{ID: "q1", Title: "Units", Subject: "Physics", Questions: []store.Question{
			{ID: "a", Content: "Unit of force?", Options: []string{"Newton", "Joule"}},
		}},
	}
}

func TestAppModel_ViewShowsPlayerAndQuiz(t *testing.T) {
	m := newAppModel(context.Background(), testOptions())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := updated.(AppModel).render()
	for _, want := range []string{"QuizUp", "Alice", "Units", "Unit of force?", "Answer"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(context.Background(), testOptions())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "Terminal too small") {
		t.Error("expected size warning")
	}
}

func TestAppModel_EscQuitsQuiz(t *testing.T) {
	m := newAppModel(context.Background(), testOptions())
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestRun_RequiresOptions(t *testing.T) {
	if err := Run(context.Background(), Options{}); err == nil {
		t.Error("expected error for empty options")
	}
}
