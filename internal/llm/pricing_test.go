package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  *ModelCost
	}{
		{"gpt-4o-mini", &ModelCost{0.15, 0.6}},
		{"google/gemini-2.0-flash-exp", &ModelCost{0.1, 0.4}},
		{"openai/gpt-4o", &ModelCost{2.5, 10}},
		{"meta-llama/llama-3.3-70b-instruct:free", &ModelCost{}},
		{"mock-offline", nil},
		{"acme/unknown", nil},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupCost(tt.model))
		})
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	require.NotNil(t, c)
	assert.InDelta(t, 0.3+2.5, c.Cost(1_000_000, 1_000_000), 1e-9)
	assert.InDelta(t, 0.0, c.Cost(0, 0), 1e-9)
}
