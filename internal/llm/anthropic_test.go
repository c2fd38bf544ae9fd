package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicServer(t *testing.T, status int, body any) (*AnthropicProvider, *map[string]any) {
	t.Helper()
	got := map[string]any{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}, &got
}

func message(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicProvider_StructuredReply(t *testing.T) {
	p, sent := anthropicServer(t, http.StatusOK, message(`{"guidance":"- Practise balancing equations"}`, "end_turn"))

	resp, err := p.Generate(context.Background(), Request{
		System:   "You are an educational assistant.",
		Messages: []Message{{Role: RoleUser, Content: "Subject: Chemistry"}},
		Schema:   guidanceTestSchema,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"guidance":"- Practise balancing equations"}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)

	// Unset MaxTokens falls back to the default limit.
	assert.EqualValues(t, anthropicDefaultMaxTokens, (*sent)["max_tokens"])
}

func TestAnthropicProvider_Failures(t *testing.T) {
	apiError := func(kind string) map[string]any {
		return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
	}
	tests := []struct {
		name   string
		status int
		body   any
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, apiError("rate_limit_error"), ErrRateLimited},
		{"server error", http.StatusInternalServerError, apiError("api_error"), ErrUnavailable},
		{"truncated", http.StatusOK, message(`{"guidance":"- Pra`, "max_tokens"), ErrTruncated},
		{"off schema", http.StatusOK, message(`not json`, "end_turn"), ErrInvalidReply},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := anthropicServer(t, tt.status, tt.body)
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				Schema:    guidanceTestSchema,
				MaxTokens: 100,
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAnthropicModelAliases(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicModels))

	_, err := NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"})
	assert.Error(t, err)
}
