package quizgen

import "testing"

func TestFallbackQuestions(t *testing.T) {
	qs := FallbackQuestions("Mathematics", 7)
	if len(qs) != 7 {
		t.Fatalf("expected 7 questions, got %d", len(qs))
	}
	// The bank has 5 math questions; the sixth repeats the first.
	if qs[5].Content != qs[0].Content {
		t.Errorf("expected cycling, got %q", qs[5].Content)
	}

	v := &StructuralValidator{}
	for subject := range fallbackBank {
		for i, q := range FallbackQuestions(subject, 5) {
			if err := v.Validate(&q, Input{}); err != nil {
				t.Errorf("%s[%d]: %v", subject, i, err)
			}
		}
	}
}

func TestFallbackQuestions_SubjectMatching(t *testing.T) {
	if got := FallbackQuestions(" physics ", 1)[0].CorrectAnswer; got != "Newton" {
		t.Errorf("physics fallback answer = %q", got)
	}
	if !HasFallback("BIOLOGY") {
		t.Error("expected biology bank")
	}
	if HasFallback("Art History") {
		t.Error("unexpected bank for art history")
	}
	if got := FallbackQuestions("Art History", 1)[0].CorrectAnswer; got != "Banana" {
		t.Errorf("default fallback answer = %q", got)
	}
}

func TestFallbackQuestions_CopiesOptions(t *testing.T) {
	qs := FallbackQuestions("Chemistry", 1)
	qs[0].Options[0] = "mutated"
	if FallbackQuestions("Chemistry", 1)[0].Options[0] == "mutated" {
		t.Fatal("fallback bank was mutated through returned options")
	}
}
