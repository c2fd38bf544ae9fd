// Package selection picks the next question for a player taking a quiz
// adaptively.
package selection

import "github.com/abhisek/quizup/internal/difficulty"

// Candidate is a question available for selection.
type Candidate struct {
	ID         string
	Difficulty difficulty.Level
}

// Next returns the first unanswered candidate at the current level. When
// none is left at that level it tries one level easier, then the first
// unanswered candidate in pool order. It reports false once every candidate
// has been answered. Neither pool nor answered is modified.
func Next(pool []Candidate, current difficulty.Level, answered map[string]bool) (string, bool) {
	if id, ok := firstAt(pool, current, answered); ok {
		return id, true
	}
	if id, ok := firstAt(pool, difficulty.Easier(current), answered); ok {
		return id, true
	}
	for _, c := range pool {
		if !answered[c.ID] {
			return c.ID, true
		}
	}
	return "", false
}

func firstAt(pool []Candidate, level difficulty.Level, answered map[string]bool) (string, bool) {
	for _, c := range pool {
		if !answered[c.ID] && c.Difficulty == level {
			return c.ID, true
		}
	}
	return "", false
}
