package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var answerSchema = &Schema{
	Name:        "test-answer",
	Description: "A graded answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer":     map[string]any{"type": "string"},
			"score":      map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"difficulty": map[string]any{"type": "string", "enum": []any{"Easy", "Medium", "Hard"}},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": 4,
			},
		},
		"required": []string{"answer", "score"},
	},
}

func TestCheckReply(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"complete", `{"answer":"Paris","score":80,"difficulty":"Easy","options":["a","b","c","d"]}`, true},
		{"optional fields omitted", `{"answer":"Paris","score":0}`, true},
		{"missing required", `{"answer":"Paris"}`, false},
		{"wrong type", `{"answer":"Paris","score":"eighty"}`, false},
		{"out of range", `{"answer":"Paris","score":101}`, false},
		{"bad enum", `{"answer":"Paris","score":1,"difficulty":"Expert"}`, false},
		{"three options", `{"answer":"Paris","score":1,"options":["a","b","c"]}`, false},
		{"not json", `{answer}`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkReply(answerSchema, json.RawMessage(tt.raw))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidReply)

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tt.raw, string(e.Content))
		})
	}
}

func TestCheckReply_NilSchema(t *testing.T) {
	assert.NoError(t, checkReply(nil, json.RawMessage(`anything`)))
}

func TestFinish(t *testing.T) {
	req := Request{Schema: answerSchema}

	resp, err := finish(req, json.RawMessage("```json\n{\"answer\":\"Paris\",\"score\":3}\n```"), Usage{InputTokens: 4, OutputTokens: 6}, "m", StopEnd)
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer":"Paris","score":3}`, string(resp.Content))
	assert.Equal(t, 10, resp.Usage.TotalTokens)
	assert.Equal(t, "m", resp.Model)

	_, err = finish(req, json.RawMessage(`{"answer":"Par`), Usage{}, "m", StopMaxTokens)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = finish(req, json.RawMessage(`{"answer":1}`), Usage{}, "m", StopEnd)
	assert.ErrorIs(t, err, ErrInvalidReply)

	resp, err = finish(Request{}, json.RawMessage(`plain text`), Usage{}, "m", StopMaxTokens)
	require.NoError(t, err)
	assert.Equal(t, StopMaxTokens, resp.StopReason)
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, string(stripFence(json.RawMessage("```json\n{\"a\":1}\n```"))))
	assert.Equal(t, `{"a":1}`, string(stripFence(json.RawMessage("```\n{\"a\":1}```"))))
	assert.Equal(t, `{"a":1}`, string(stripFence(json.RawMessage(`{"a":1}`))))
	assert.Equal(t, "```", string(stripFence(json.RawMessage("```"))))
}
