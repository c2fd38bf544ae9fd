package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/quizup/internal/llm"
)

// ErrNoQuestions is returned when generation produced nothing usable.
var ErrNoQuestions = errors.New("no valid questions generated")

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Questions []Question `json:"questions"`
}

// Generate asks the model for a batch of questions, drops the ones that
// fail validation or repeat an earlier question, and trims to input.Count.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) ([]Question, error) {
	if input.Count <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", input.Count)
	}
	if g.config.MaxQuestions > 0 && input.Count > g.config.MaxQuestions {
		input.Count = g.config.MaxQuestions
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens * input.Count,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	out := Dedup(g.validate(raw.Questions, input), input.Avoid)
	if len(out) == 0 {
		return nil, ErrNoQuestions
	}
	if len(out) > input.Count {
		out = out[:input.Count]
	}
	return out, nil
}

func (g *LLMGenerator) validate(qs []Question, input Input) []Question {
	out := make([]Question, 0, len(qs))
	for i := range qs {
		q := qs[i]
		q.Content = strings.TrimSpace(q.Content)
		if verr := g.runValidators(&q, input); verr != nil {
			fmt.Fprintf(os.Stderr, "warning: dropping generated question %d: %v\n", i+1, verr)
			continue
		}
		out = append(out, q)
	}
	return out
}

func (g *LLMGenerator) runValidators(q *Question, input Input) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	return nil
}

// Dedup drops questions whose content repeats an earlier question or one
// of the avoided texts. Order is preserved.
func Dedup(qs []Question, avoid []string) []Question {
	seen := make(map[string]bool, len(qs)+len(avoid))
	for _, a := range avoid {
		seen[normalize(a)] = true
	}
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		key := normalize(q.Content)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
	}
	return out
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
