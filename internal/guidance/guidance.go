// Package guidance writes short improvement advice for a graded quiz.
package guidance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quizup/internal/llm"
)

const (
	// FallbackMessage is stored when generation fails.
	FallbackMessage = "Unable to generate personalized guidance at this time. Review the questions you missed and consider studying those topics more."

	// UnavailableMessage is stored when no LLM provider is configured.
	UnavailableMessage = "AI guidance not available."

	// MaxWords bounds the stored guidance.
	MaxWords = 250
)

// Missed is one incorrectly answered question.
type Missed struct {
	Question      string
	CorrectAnswer string
	UserAnswer    string
}

// Input describes a graded submission.
type Input struct {
	Subject string
	Topic   string
	Score   int
	Missed  []Missed
}

// Schema is the structured output requested from the model.
var Schema = &llm.Schema{
	Name:        "improvement-guidance",
	Description: "Encouraging, actionable study guidance for a student after a quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"guidance": map[string]any{
				"type":        "string",
				"description": "Markdown bullet points, at most 250 words",
			},
		},
		"required":             []any{"guidance"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are an educational assistant helping a student improve after a quiz.

Rules:
- Be encouraging and supportive.
- Use bullet points for the key recommendations.
- Keep it under 250 words and focus on 3-4 specific areas for improvement.
- If the student scored above 90%, congratulate them and suggest how to challenge themselves further.`

// Generator produces guidance text with an LLM.
type Generator struct {
	provider llm.Provider
}

// NewGenerator creates a Generator.
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

type guidanceOutput struct {
	Guidance string `json:"guidance"`
}

// Generate returns guidance for the submission, limited to MaxWords words.
func (g *Generator) Generate(ctx context.Context, in Input) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeGuidance)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in)}},
		Schema:      Schema,
		MaxTokens:   600,
		Temperature: 0.5,
	})
	if err != nil {
		return "", fmt.Errorf("generate guidance: %w", err)
	}

	var out guidanceOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse guidance: %w", err)
	}
	text := strings.TrimSpace(out.Guidance)
	if text == "" {
		return "", fmt.Errorf("empty guidance")
	}
	return limitWords(text, MaxWords), nil
}

func buildUserMessage(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", in.Subject)
	if in.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	}
	fmt.Fprintf(&b, "Score: %d%%\n", in.Score)

	b.WriteString("\nQuestions answered incorrectly:\n")
	if len(in.Missed) == 0 {
		b.WriteString("They answered all questions correctly!")
		return b.String()
	}
	for i, m := range in.Missed {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Question: %s\nCorrect Answer: %s\nUser Answer: %s\n",
			m.Question, m.CorrectAnswer, m.UserAnswer)
	}
	return strings.TrimRight(b.String(), "\n")
}

// limitWords cuts s after max words, keeping line breaks before the cut.
func limitWords(s string, max int) string {
	count := 0
	inWord := false
	for i, r := range s {
		space := r == ' ' || r == '\n' || r == '\t' || r == '\r'
		if !space && !inWord {
			count++
			if count > max {
				return strings.TrimRight(s[:i], " \t\r\n") + "…"
			}
		}
		inWord = !space
	}
	return s
}
