package llm

import "context"

// Purpose labels why a call was made. It is stored on every logged event
// and drives the per-purpose usage report.
type Purpose string

const (
	PurposeQuizGen  Purpose = "quiz-gen"
	PurposeGuidance Purpose = "guidance"
	PurposeUnknown  Purpose = "unknown"
)

type purposeKey struct{}

func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns PurposeUnknown when ctx carries no label.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
