package quiz

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/quizup/internal/difficulty"
	"github.com/abhisek/quizup/internal/events"
	"github.com/abhisek/quizup/internal/grading"
	"github.com/abhisek/quizup/internal/guidance"
	"github.com/abhisek/quizup/internal/metrics"
	"github.com/abhisek/quizup/internal/store"
)

// SubmitInput is a student's complete set of answers for one quiz.
// Answers follow the quiz's question order. Order lists the question IDs in
// the order the student answered them when that differs, as in adaptive
// play; the streak is walked in that order. Empty means question order.
type SubmitInput struct {
	QuizID        string   `json:"quizId"`
	Answers       []string `json:"answers"`
	Order         []string `json:"order,omitempty"`
	TimeTakenSecs int      `json:"timeTaken"`
}

// Submit grades and stores a submission. Every submission is graded from
// EASY; the level each answer settled on is written back to its question.
func (s *Service) Submit(ctx context.Context, studentID string, in SubmitInput) (res *store.Result, err error) {
	defer func() {
		switch {
		case err == nil:
			s.metrics.Submission(metrics.OutcomeGraded)
		case isRejection(err):
			s.metrics.Submission(metrics.OutcomeRejected)
		default:
			s.metrics.Submission(metrics.OutcomeError)
		}
	}()

	if strings.TrimSpace(in.QuizID) == "" {
		return nil, invalid("quizId is required")
	}
	if in.Answers == nil {
		return nil, invalid("answers are required")
	}
	if in.TimeTakenSecs < 0 {
		return nil, invalid("timeTaken must not be negative")
	}

	student, err := s.user(ctx, studentID)
	if err != nil {
		return nil, err
	}
	quiz, err := s.quizzes.GetQuiz(ctx, in.QuizID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	assigned, err := s.quizzes.IsAssigned(ctx, quiz.ID, studentID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrNotAssigned
	}

	prior, err := s.results.ResultFor(ctx, studentID, quiz.ID)
	if err != nil {
		return nil, err
	}
	if prior != nil {
		return nil, ErrAlreadySubmitted
	}

	graded, answers, err := answerSequence(quiz, in)
	if err != nil {
		return nil, err
	}
	outcome, err := grading.Grade(graded, answers, difficulty.Easy)
	if err != nil {
		if errors.Is(err, grading.ErrAnswerCountMismatch) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}

	res = &store.Result{
		UserID:        studentID,
		QuizID:        quiz.ID,
		Score:         outcome.Score(),
		Correct:       outcome.Correct,
		Total:         outcome.Total,
		TimeTakenSecs: in.TimeTakenSecs,
		Questions:     make([]store.QuestionResult, len(outcome.Results)),
	}
	for i, qr := range outcome.Results {
		res.Questions[i] = store.QuestionResult{
			QuestionID:    qr.QuestionID,
			UserAnswer:    qr.UserAnswer,
			IsCorrect:     qr.IsCorrect,
			CorrectAnswer: qr.CorrectAnswer,
			Explanation:   qr.Explanation,
			Difficulty:    qr.Difficulty,
		}
	}
	if err := s.results.CreateResult(ctx, res); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("store result: %w", err)
	}

	s.afterSubmit(ctx, student, quiz, res, outcome)
	return res, nil
}

// afterSubmit runs the side effects of a stored submission. None of them
// can fail the submission.
func (s *Service) afterSubmit(ctx context.Context, student *store.User, quiz *store.Quiz, res *store.Result, outcome grading.Outcome) {
	prev := difficulty.Easy
	for _, qr := range outcome.Results {
		if err := s.quizzes.UpdateQuestionDifficulty(ctx, qr.QuestionID, qr.Difficulty); err != nil {
			fmt.Fprintf(os.Stderr, "warning: update difficulty of %s: %v\n", qr.QuestionID, err)
		}
		s.metrics.Transition(prev.String(), qr.Difficulty.String())
		prev = qr.Difficulty
	}
	s.metrics.Score(res.Score)

	s.publish(ctx, events.ResultSubmitted, student.ID, events.ResultSubmittedPayload{
		ResultID:        res.ID,
		QuizID:          quiz.ID,
		Score:           res.Score,
		Correct:         res.Correct,
		Total:           res.Total,
		FinalDifficulty: prev.String(),
	})

	// A cache missing this result would serve a wrong leaderboard; drop it
	// so the next read rebuilds from the database.
	if err := s.ranks.Record(ctx, student.ID, student.Name, res.Score); err != nil {
		fmt.Fprintf(os.Stderr, "warning: update leaderboard cache: %v\n", err)
		if err := s.ranks.Invalidate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "warning: invalidate leaderboard cache: %v\n", err)
		}
	}

	if s.guidance != nil {
		in := guidance.Input{Subject: quiz.Subject, Topic: quiz.Topic, Score: res.Score}
		content := make(map[string]string, len(quiz.Questions))
		for _, q := range quiz.Questions {
			content[q.ID] = q.Content
		}
		for _, qr := range outcome.Results {
			if !qr.IsCorrect {
				in.Missed = append(in.Missed, guidance.Missed{
					Question:      content[qr.QuestionID],
					CorrectAnswer: qr.CorrectAnswer,
					UserAnswer:    qr.UserAnswer,
				})
			}
		}
		if s.guidance.Request(ctx, res.ID, in) {
			s.metrics.Guidance("queued")
		} else {
			s.metrics.Guidance("dropped")
		}
	}
}

// answerSequence lines questions and answers up in the order the student
// answered them. A count mismatch is left for Grade to report.
func answerSequence(quiz *store.Quiz, in SubmitInput) ([]grading.Question, []string, error) {
	toGraded := func(q store.Question) grading.Question {
		return grading.Question{ID: q.ID, CorrectAnswer: q.CorrectAnswer, Explanation: q.Explanation}
	}
	if len(in.Order) == 0 || len(in.Answers) != len(quiz.Questions) {
		graded := make([]grading.Question, len(quiz.Questions))
		for i, q := range quiz.Questions {
			graded[i] = toGraded(q)
		}
		return graded, in.Answers, nil
	}

	if len(in.Order) != len(quiz.Questions) {
		return nil, nil, invalid("order lists %d questions, quiz has %d", len(in.Order), len(quiz.Questions))
	}
	index := make(map[string]int, len(quiz.Questions))
	for i, q := range quiz.Questions {
		index[q.ID] = i
	}
	graded := make([]grading.Question, 0, len(in.Order))
	answers := make([]string, 0, len(in.Order))
	for _, id := range in.Order {
		i, ok := index[id]
		if !ok {
			return nil, nil, invalid("order names unknown or repeated question %q", id)
		}
		delete(index, id)
		graded = append(graded, toGraded(quiz.Questions[i]))
		answers = append(answers, in.Answers[i])
	}
	return graded, answers, nil
}

func isRejection(err error) bool {
	for _, target := range []error{ErrNotFound, ErrForbidden, ErrAlreadySubmitted, ErrNotAssigned, ErrInvalidInput} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
