// Package llm wraps the model vendors used for quiz generation and study
// guidance behind one Provider interface. Vendor clients are decorated
// with timeouts, retries and event logging by NewProvider.
package llm

import (
	"context"
	"encoding/json"
)

type Provider interface {
	// Generate returns the model's reply. When req.Schema is set the reply
	// is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output through the vendor's native
	// mechanism. Without one, Content is the raw reply text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]; zero leaves the vendor default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name doubles as the tool or response
// format name sent to the vendor, and as the compiled-schema cache key.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the call, which may be more specific
	// than the configured alias.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
