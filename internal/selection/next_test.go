package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/quizup/internal/difficulty"
)

func pool() []Candidate {
	return []Candidate{
		{ID: "q1", Difficulty: difficulty.Easy},
		{ID: "q2", Difficulty: difficulty.Medium},
		{ID: "q3", Difficulty: difficulty.Hard},
		{ID: "q4", Difficulty: difficulty.Medium},
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name     string
		current  difficulty.Level
		answered map[string]bool
		wantID   string
		wantOK   bool
	}{
		{"matches current level", difficulty.Medium, nil, "q2", true},
		{"skips answered at level", difficulty.Medium, map[string]bool{"q2": true}, "q4", true},
		{"falls back in pool order", difficulty.Easy, map[string]bool{"q1": true}, "q2", true},
		{"prefers one level easier", difficulty.Hard, map[string]bool{"q3": true}, "q2", true},
		{"easier before pool order", difficulty.Hard, map[string]bool{"q2": true, "q3": true}, "q4", true},
		{"hard available", difficulty.Hard, map[string]bool{"q1": true}, "q3", true},
		{"all answered", difficulty.Easy, map[string]bool{"q1": true, "q2": true, "q3": true, "q4": true}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Next(pool(), tt.current, tt.answered)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestNext_EmptyPool(t *testing.T) {
	id, ok := Next(nil, difficulty.Easy, nil)
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestNext_DoesNotMutate(t *testing.T) {
	p := pool()
	answered := map[string]bool{"q1": true}
	_, _ = Next(p, difficulty.Easy, answered)
	assert.Equal(t, pool(), p)
	assert.Equal(t, map[string]bool{"q1": true}, answered)
}
