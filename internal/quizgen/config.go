package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators run on every generated
	// question. The first failure drops the question.
	Validators []Validator

	// MaxTokens is the token budget per requested question.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxAvoid is the maximum number of avoided questions included in the
	// prompt.
	MaxAvoid int

	// MaxQuestions caps Input.Count.
	MaxQuestions int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
		},
		MaxTokens:    300,
		Temperature:  0.7,
		MaxAvoid:     20,
		MaxQuestions: 50,
	}
}
