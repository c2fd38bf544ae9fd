package quizgen

// Question is a generated multiple-choice question ready to be stored.
type Question struct {
	// Content is the question prompt shown to the student.
	Content string `json:"content"`

	// Options holds exactly 4 distinct choices, one of which is CorrectAnswer.
	Options []string `json:"options"`

	// CorrectAnswer is the text of the correct option.
	CorrectAnswer string `json:"correctAnswer"`

	// Explanation is a brief justification shown after grading.
	Explanation string `json:"explanation"`
}

// Input holds all context needed to generate a quiz.
type Input struct {
	Subject string

	// Topic narrows the subject. Optional.
	Topic string

	// Level is the free-form level label chosen by the teacher
	// ("Beginner", "Intermediate", "Advanced", ...).
	Level string

	// Count is the number of questions wanted.
	Count int

	// Avoid contains question texts that must not be repeated, such as
	// questions from the teacher's previous quizzes on the same subject.
	Avoid []string
}
