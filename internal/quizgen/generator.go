package quizgen

import "context"

// Generator produces quiz questions.
type Generator interface {
	// Generate returns up to input.Count validated, de-duplicated questions.
	// It may return fewer than requested when the model repeats itself, but
	// never zero without an error.
	Generate(ctx context.Context, input Input) ([]Question, error)
}
