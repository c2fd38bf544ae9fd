package grading

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/quizup/internal/difficulty"
)

// ErrAnswerCountMismatch is returned when the number of submitted answers
// differs from the number of questions in the quiz.
var ErrAnswerCountMismatch = errors.New("answer count does not match question count")

// Question is the part of a quiz question the grader needs.
type Question struct {
	ID            string
	CorrectAnswer string
	Explanation   string
}

// QuestionResult is the graded record of one answer.
type QuestionResult struct {
	QuestionID    string           `json:"questionId"`
	UserAnswer    string           `json:"userAnswer"`
	IsCorrect     bool             `json:"isCorrect"`
	CorrectAnswer string           `json:"correctAnswer"`
	Explanation   string           `json:"explanation"`
	Difficulty    difficulty.Level `json:"difficulty"`
}

// Outcome is the result of grading a whole submission.
type Outcome struct {
	Results []QuestionResult
	Correct int
	Total   int
}

// Score returns the percentage of correct answers rounded to the nearest
// integer. An empty submission scores 0.
func (o Outcome) Score() int {
	if o.Total == 0 {
		return 0
	}
	return int(math.Round(float64(o.Correct) / float64(o.Total) * 100))
}

// Grade walks the answers in question order, tracking the streak and the
// difficulty walk that starts at start. The level produced by Adjust after
// each answer is recorded on that answer and carried into the next one.
func Grade(questions []Question, answers []string, start difficulty.Level) (Outcome, error) {
	if len(answers) != len(questions) {
		return Outcome{}, fmt.Errorf("%w: %d answers for %d questions",
			ErrAnswerCountMismatch, len(answers), len(questions))
	}

	out := Outcome{
		Results: make([]QuestionResult, 0, len(questions)),
		Total:   len(questions),
	}

	var streak Streak
	current := start
	for i, q := range questions {
		correct := answers[i] == q.CorrectAnswer
		if correct {
			out.Correct++
		}

		streak = streak.Record(correct)
		current = difficulty.Adjust(current, streak.CorrectInRow, streak.IncorrectInRow)

		out.Results = append(out.Results, QuestionResult{
			QuestionID:    q.ID,
			UserAnswer:    answers[i],
			IsCorrect:     correct,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Difficulty:    current,
		})
	}

	return out, nil
}

// Walk replays the difficulty walk for a sequence of correctness flags and
// returns the level recorded for each. It shares the rules used by Grade and
// is used for live display while a quiz is being taken.
func Walk(outcomes []bool, start difficulty.Level) []difficulty.Level {
	levels := make([]difficulty.Level, len(outcomes))
	var streak Streak
	current := start
	for i, ok := range outcomes {
		streak = streak.Record(ok)
		current = difficulty.Adjust(current, streak.CorrectInRow, streak.IncorrectInRow)
		levels[i] = current
	}
	return levels
}
