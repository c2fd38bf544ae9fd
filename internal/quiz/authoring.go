package quiz

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/quizup/internal/difficulty"
	"github.com/abhisek/quizup/internal/events"
	"github.com/abhisek/quizup/internal/metrics"
	"github.com/abhisek/quizup/internal/quizgen"
	"github.com/abhisek/quizup/internal/store"
)

const (
	// MaxQuestions bounds a single quiz.
	MaxQuestions = 50

	// PracticeQuestions and PracticeDuration size student practice quizzes.
	PracticeQuestions = 15
	PracticeDuration  = 20

	practiceLevel = "Practice"

	// avoidQuizzes is how many of the author's recent quizzes on the same
	// subject feed the generator's avoid list.
	avoidQuizzes = 5
)

// QuestionInput is one authored question.
type QuestionInput struct {
	Content       string   `json:"content"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// CreateQuizInput is a manually authored quiz.
type CreateQuizInput struct {
	Title     string          `json:"title"`
	Subject   string          `json:"subject"`
	Topic     string          `json:"topic"`
	Level     string          `json:"level"`
	Duration  int             `json:"duration"`
	Questions []QuestionInput `json:"questions"`
}

// GenerateQuizInput asks for an AI-generated quiz.
type GenerateQuizInput struct {
	Title        string `json:"title"`
	Subject      string `json:"subject"`
	Topic        string `json:"topic"`
	Level        string `json:"level"`
	Duration     int    `json:"duration"`
	NumQuestions int    `json:"numQuestions"`
}

// Created reports a new quiz.
type Created struct {
	Quiz       *store.Quiz `json:"quiz"`
	UsedAI     bool        `json:"usedAI"`
	AssignedTo []string    `json:"assignedTo"`
}

// CreateQuiz stores a teacher-authored quiz and assigns it to the teacher's
// linked students.
func (s *Service) CreateQuiz(ctx context.Context, teacherID string, in CreateQuizInput) (*Created, error) {
	if _, err := s.requireRole(ctx, teacherID, store.RoleTeacher); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title is required")
	}
	if in.Duration < 0 {
		return nil, invalid("duration must not be negative")
	}
	if len(in.Questions) == 0 {
		return nil, invalid("at least one question is required")
	}
	if len(in.Questions) > MaxQuestions {
		return nil, invalid("at most %d questions are allowed", MaxQuestions)
	}

	qs := make([]store.Question, 0, len(in.Questions))
	for i, q := range in.Questions {
		if err := validateQuestion(q); err != nil {
			return nil, invalid("question %d: %v", i+1, err)
		}
		qs = append(qs, store.Question{
			Content:       strings.TrimSpace(q.Content),
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Difficulty:    difficulty.Easy,
		})
	}

	quiz := &store.Quiz{
		Title:        strings.TrimSpace(in.Title),
		Subject:      in.Subject,
		Topic:        in.Topic,
		Level:        in.Level,
		DurationMins: in.Duration,
		CreatedBy:    teacherID,
		Questions:    qs,
	}
	return s.finishCreate(ctx, quiz, metrics.SourceManual)
}

func validateQuestion(q QuestionInput) error {
	if strings.TrimSpace(q.Content) == "" {
		return fmt.Errorf("content is required")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("at least two options are required")
	}
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("options must not be empty")
		}
		if seen[o] {
			return fmt.Errorf("duplicate option %q", o)
		}
		seen[o] = true
	}
	if !seen[q.CorrectAnswer] {
		return fmt.Errorf("correct answer %q is not one of the options", q.CorrectAnswer)
	}
	return nil
}

// GenerateQuiz creates a quiz from AI-generated questions, falling back to
// the built-in bank when generation is unavailable or fails. The quiz is
// assigned to the teacher's linked students.
func (s *Service) GenerateQuiz(ctx context.Context, teacherID string, in GenerateQuizInput) (*Created, error) {
	if _, err := s.requireRole(ctx, teacherID, store.RoleTeacher); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Subject) == "" {
		return nil, invalid("subject is required")
	}
	if strings.TrimSpace(in.Level) == "" {
		return nil, invalid("level is required")
	}
	if in.Duration <= 0 {
		return nil, invalid("duration must be positive")
	}
	if in.NumQuestions <= 0 || in.NumQuestions > MaxQuestions {
		return nil, invalid("numQuestions must be between 1 and %d", MaxQuestions)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = fmt.Sprintf("%s Quiz (%s)", in.Subject, in.Level)
	}

	qs, usedAI := s.generate(ctx, teacherID, quizgen.Input{
		Subject: in.Subject,
		Topic:   in.Topic,
		Level:   in.Level,
		Count:   in.NumQuestions,
	})

	quiz := &store.Quiz{
		Title:        title,
		Subject:      in.Subject,
		Topic:        in.Topic,
		Level:        in.Level,
		DurationMins: in.Duration,
		UsedAI:       usedAI,
		CreatedBy:    teacherID,
		Questions:    toStoreQuestions(qs),
	}
	return s.finishCreate(ctx, quiz, source(usedAI))
}

// GeneratePracticeQuiz creates a self-study quiz owned by and assigned to
// the requesting student.
func (s *Service) GeneratePracticeQuiz(ctx context.Context, studentID, subject, topic string) (*Created, error) {
	if _, err := s.requireRole(ctx, studentID, store.RoleStudent); err != nil {
		return nil, err
	}
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(topic) == "" {
		return nil, invalid("subject and topic are required")
	}

	qs, usedAI := s.generate(ctx, studentID, quizgen.Input{
		Subject: subject,
		Topic:   topic,
		Level:   practiceLevel,
		Count:   PracticeQuestions,
	})

	quiz := &store.Quiz{
		Title:        fmt.Sprintf("%s Practice Quiz: %s", subject, topic),
		Subject:      subject,
		Topic:        topic,
		Level:        practiceLevel,
		DurationMins: PracticeDuration,
		UsedAI:       usedAI,
		CreatedBy:    studentID,
		Questions:    toStoreQuestions(qs),
	}
	if err := s.quizzes.CreateQuiz(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create practice quiz: %w", err)
	}
	if err := s.quizzes.Assign(ctx, quiz.ID, []string{studentID}); err != nil {
		return nil, fmt.Errorf("assign practice quiz: %w", err)
	}
	s.metrics.QuizCreated(source(usedAI))
	s.publish(ctx, events.QuizCreated, studentID, createdPayload(quiz))
	return &Created{Quiz: quiz, UsedAI: usedAI, AssignedTo: []string{studentID}}, nil
}

// generate returns count questions and whether they came from the model.
func (s *Service) generate(ctx context.Context, authorID string, in quizgen.Input) ([]quizgen.Question, bool) {
	if s.gen != nil {
		in.Avoid = s.recentQuestions(ctx, authorID, in.Subject)
		qs, err := s.gen.Generate(ctx, in)
		if err == nil && len(qs) > 0 {
			return qs, true
		}
		fmt.Fprintf(os.Stderr, "warning: quiz generation failed, using fallback questions: %v\n", err)
	}
	return quizgen.FallbackQuestions(in.Subject, in.Count), false
}

// recentQuestions collects question texts from the author's latest quizzes
// on subject. Failures only shrink the list.
func (s *Service) recentQuestions(ctx context.Context, authorID, subject string) []string {
	quizzes, err := s.quizzes.QuizzesBy(ctx, authorID)
	if err != nil {
		return nil
	}
	var out []string
	n := 0
	for _, q := range quizzes {
		if n == avoidQuizzes {
			break
		}
		if !strings.EqualFold(q.Subject, subject) {
			continue
		}
		full, err := s.quizzes.GetQuiz(ctx, q.ID)
		if err != nil {
			continue
		}
		for _, qq := range full.Questions {
			out = append(out, qq.Content)
		}
		n++
	}
	return out
}

func (s *Service) finishCreate(ctx context.Context, quiz *store.Quiz, src string) (*Created, error) {
	if err := s.quizzes.CreateQuiz(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	s.metrics.QuizCreated(src)
	s.publish(ctx, events.QuizCreated, quiz.CreatedBy, createdPayload(quiz))

	students, err := s.users.StudentsOf(ctx, quiz.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("list linked students: %w", err)
	}
	ids := userIDs(students)
	if len(ids) > 0 {
		if err := s.quizzes.Assign(ctx, quiz.ID, ids); err != nil {
			return nil, fmt.Errorf("assign quiz: %w", err)
		}
		s.publish(ctx, events.QuizAssigned, quiz.CreatedBy, events.QuizAssignedPayload{QuizID: quiz.ID, StudentIDs: ids})
	}
	return &Created{Quiz: quiz, UsedAI: quiz.UsedAI, AssignedTo: ids}, nil
}

// AssignQuiz assigns the teacher's quiz to students. Already assigned
// students are left as they are.
func (s *Service) AssignQuiz(ctx context.Context, teacherID, quizID string, studentIDs []string) error {
	if _, err := s.requireRole(ctx, teacherID, store.RoleTeacher); err != nil {
		return err
	}
	if len(studentIDs) == 0 {
		return invalid("studentIds must not be empty")
	}
	q, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return mapStoreErr(err)
	}
	if q.CreatedBy != teacherID {
		return forbidden("quiz %s belongs to another teacher", quizID)
	}
	for _, id := range studentIDs {
		u, err := s.user(ctx, id)
		if err != nil {
			return err
		}
		if u.Role != store.RoleStudent {
			return invalid("user %s is not a student", id)
		}
	}
	if err := s.quizzes.Assign(ctx, quizID, studentIDs); err != nil {
		return fmt.Errorf("assign quiz: %w", err)
	}
	s.publish(ctx, events.QuizAssigned, teacherID, events.QuizAssignedPayload{QuizID: quizID, StudentIDs: studentIDs})
	return nil
}

func toStoreQuestions(qs []quizgen.Question) []store.Question {
	out := make([]store.Question, 0, len(qs))
	for _, q := range qs {
		out = append(out, store.Question{
			Content:       q.Content,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Difficulty:    difficulty.Easy,
		})
	}
	return out
}

func createdPayload(q *store.Quiz) events.QuizCreatedPayload {
	return events.QuizCreatedPayload{
		QuizID:    q.ID,
		Title:     q.Title,
		Subject:   q.Subject,
		Questions: len(q.Questions),
		UsedAI:    q.UsedAI,
	}
}

func source(usedAI bool) string {
	if usedAI {
		return metrics.SourceAI
	}
	return metrics.SourceFallback
}

func userIDs(users []store.User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}
