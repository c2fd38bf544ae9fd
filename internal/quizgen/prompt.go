package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an experienced teacher writing multiple-choice quiz questions.

Rules:
- Each question has exactly 4 distinct options and exactly one correct answer.
- correctAnswer must repeat the text of the correct option exactly.
- Every question must be unique; do not repeat concepts within the same quiz.
- Cover different aspects of the topic.
- The explanation is one or two sentences saying why the answer is correct.
- Match the requested level. Distractors should be plausible, not silly.
- Do not repeat any question from the "avoid" list.`

// buildUserMessage constructs the user message from Input and Config limits.
func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Number of questions: %d\n", input.Count)
	fmt.Fprintf(&b, "Subject: %s\n", input.Subject)
	if input.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	}
	if input.Level != "" {
		fmt.Fprintf(&b, "Level: %s\n", input.Level)
	}

	b.WriteString("\nAvoid these questions:\n")
	b.WriteString(buildAvoid(input.Avoid, cfg.MaxAvoid))

	return b.String()
}

// buildAvoid formats questions to avoid, keeping the most recent max.
// Returns "None" when there is nothing to avoid.
func buildAvoid(avoid []string, max int) string {
	if len(avoid) == 0 {
		return "None"
	}

	if max > 0 && len(avoid) > max {
		avoid = avoid[len(avoid)-max:]
	}

	var b strings.Builder
	for i, q := range avoid {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
