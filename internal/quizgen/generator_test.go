package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/quizup/internal/llm"
)

func quizJSON(qs ...Question) json.RawMessage {
	b, _ := json.Marshal(quizOutput{Questions: qs})
	return b
}

func q(content, answer string, options ...string) Question {
	return Question{Content: content, Options: options, CorrectAnswer: answer, Explanation: "because"}
}

func TestGenerate_ValidBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(
		q("Capital of France?", "Paris", "Paris", "Rome", "Berlin", "Madrid"),
		q("Capital of Italy?", "Rome", "Paris", "Rome", "Berlin", "Madrid"),
	)})
	gen := New(mock, DefaultConfig())

	qs, err := gen.Generate(context.Background(), Input{Subject: "Geography", Count: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[1].CorrectAnswer != "Rome" {
		t.Errorf("unexpected question: %+v", qs[1])
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(
		q("Capital of France?", "Paris", "Paris", "Rome", "Berlin", "Madrid"),
	)})
	cfg := DefaultConfig()
	gen := New(mock, cfg)

	_, err := gen.Generate(context.Background(), Input{
		Subject: "Geography",
		Topic:   "European capitals",
		Level:   "Beginner",
		Count:   3,
		Avoid:   []string{"Capital of Spain?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != QuizSchema {
		t.Error("expected quiz schema on request")
	}
	if req.MaxTokens != cfg.MaxTokens*3 {
		t.Errorf("max tokens = %d, want %d", req.MaxTokens, cfg.MaxTokens*3)
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Number of questions: 3", "Topic: European capitals", "Level: Beginner", "1. Capital of Spain?"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestGenerate_DropsInvalidAndDuplicates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(
		q("Capital of France?", "Paris", "Paris", "Rome", "Berlin", "Madrid"),
		q("capital of  FRANCE?", "Paris", "Paris", "Rome", "Berlin", "Madrid"),  // duplicate
		q("Capital of Peru?", "Lima", "Quito", "Bogota", "Santiago", "Caracas"), // answer not an option
		q("Capital of Spain?", "Madrid", "Paris", "Rome", "Berlin", "Madrid"),
	)})
	gen := New(mock, DefaultConfig())

	qs, err := gen.Generate(context.Background(), Input{Subject: "Geography", Count: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 surviving questions, got %d: %+v", len(qs), qs)
	}
	if qs[0].Content != "Capital of France?" || qs[1].Content != "Capital of Spain?" {
		t.Errorf("unexpected order: %+v", qs)
	}
}

func TestGenerate_TrimsToCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(
		q("A?", "1", "1", "2", "3", "4"),
		q("B?", "1", "1", "2", "3", "4"),
		q("C?", "1", "1", "2", "3", "4"),
	)})
	qs, err := New(mock, DefaultConfig()).Generate(context.Background(), Input{Subject: "x", Count: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2, got %d", len(qs))
	}
}

func TestGenerate_NothingUsable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(
		q("", "1", "1", "2", "3", "4"),
	)})
	_, err := New(mock, DefaultConfig()).Generate(context.Background(), Input{Subject: "x", Count: 1})
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: llm.Unavailable("openai", nil)})
	_, err := New(mock, DefaultConfig()).Generate(context.Background(), Input{Subject: "x", Count: 1})
	if !errors.Is(err, llm.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestGenerate_InvalidCount(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := New(mock, DefaultConfig()).Generate(context.Background(), Input{Subject: "x"})
	if err == nil {
		t.Fatal("expected error for zero count")
	}
	if mock.CallCount() != 0 {
		t.Error("provider should not be called")
	}
}

func TestBuildAvoid(t *testing.T) {
	if got := buildAvoid(nil, 5); got != "None" {
		t.Errorf("empty avoid = %q", got)
	}
	got := buildAvoid([]string{"a", "b", "c"}, 2)
	if got != "1. b\n2. c" {
		t.Errorf("limited avoid = %q", got)
	}
}
