package quizgen

import "strings"

// StructuralValidator checks that required fields are present, within
// length limits, and that the options form a proper 4-way choice.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ Input) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}

	if strings.TrimSpace(q.Content) == "" {
		return fail("content is empty")
	}
	if len(q.Content) > 500 {
		return fail("content exceeds 500 characters")
	}
	if len(q.Explanation) > 1000 {
		return fail("explanation exceeds 1000 characters")
	}
	if len(q.Options) != 4 {
		return fail("exactly 4 options are required")
	}

	seen := make(map[string]bool, len(q.Options))
	found := false
	for _, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return fail("options must not be empty")
		}
		if seen[o] {
			return fail("options must be distinct")
		}
		seen[o] = true
		if o == q.CorrectAnswer {
			found = true
		}
	}
	if !found {
		return fail("correctAnswer is not one of the options")
	}
	return nil
}
