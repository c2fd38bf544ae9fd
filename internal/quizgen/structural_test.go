package quizgen

import (
	"strings"
	"testing"
)

func validQuestion() *Question {
	return &Question{
		Content:       "Which planet is known as the Red Planet?",
		Options:       []string{"Earth", "Mars", "Venus", "Jupiter"},
		CorrectAnswer: "Mars",
		Explanation:   "Iron oxide gives Mars its colour.",
	}
}

func TestStructural(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Question)
		ok     bool
	}{
		{"valid", func(q *Question) {}, true},
		{"empty explanation allowed", func(q *Question) { q.Explanation = "" }, true},
		{"empty content", func(q *Question) { q.Content = "  " }, false},
		{"content too long", func(q *Question) { q.Content = strings.Repeat("a", 501) }, false},
		{"explanation too long", func(q *Question) { q.Explanation = strings.Repeat("a", 1001) }, false},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }, false},
		{"five options", func(q *Question) { q.Options = append(q.Options, "Pluto") }, false},
		{"duplicate options", func(q *Question) { q.Options[2] = "Earth" }, false},
		{"blank option", func(q *Question) { q.Options[3] = "" }, false},
		{"answer not in options", func(q *Question) { q.CorrectAnswer = "Saturn" }, false},
		{"answer differs in case", func(q *Question) { q.CorrectAnswer = "mars" }, false},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := v.Validate(q, Input{})
			if tt.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if err.Validator != "structural" {
					t.Errorf("validator = %q", err.Validator)
				}
			}
		})
	}
}
