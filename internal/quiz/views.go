package quiz

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/quizup/internal/store"
)

// Assignment statuses.
const (
	StatusAssigned  = "Assigned"
	StatusCompleted = "Completed"
)

// QuizFor returns a quiz as the caller may see it. Students must be
// assigned and never see correct answers or explanations.
func (s *Service) QuizFor(ctx context.Context, userID, quizID string) (*store.Quiz, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	q, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	switch u.Role {
	case store.RoleAdmin:
		return q, nil
	case store.RoleTeacher:
		if q.CreatedBy != userID {
			return nil, forbidden("quiz %s belongs to another teacher", quizID)
		}
		return q, nil
	}

	ok, err := s.quizzes.IsAssigned(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAssigned
	}
	return redact(q), nil
}

func redact(q *store.Quiz) *store.Quiz {
	out := *q
	out.Questions = make([]store.Question, len(q.Questions))
	for i, qq := range q.Questions {
		qq.CorrectAnswer = ""
		qq.Explanation = ""
		out.Questions[i] = qq
	}
	return &out
}

// ResultView is a result with the quiz it belongs to.
type ResultView struct {
	store.Result
	QuizTitle string `json:"quizTitle"`
	Subject   string `json:"subject,omitempty"`
}

// Result returns one result. The owner, the quiz author and admins may
// read it.
func (s *Service) Result(ctx context.Context, userID, resultID string) (*ResultView, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	res, err := s.results.GetResult(ctx, resultID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	q, err := s.quizzes.GetQuiz(ctx, res.QuizID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if res.UserID != userID && q.CreatedBy != userID && u.Role != store.RoleAdmin {
		return nil, forbidden("result %s belongs to another user", resultID)
	}
	return &ResultView{Result: *res, QuizTitle: q.Title, Subject: q.Subject}, nil
}

// MyResults lists the user's results, newest first.
func (s *Service) MyResults(ctx context.Context, userID string) ([]ResultView, error) {
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}
	results, err := s.results.ResultsFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	titles := map[string]*store.Quiz{}
	out := make([]ResultView, 0, len(results))
	for _, r := range results {
		q, ok := titles[r.QuizID]
		if !ok {
			if q, err = s.quizzes.GetQuiz(ctx, r.QuizID); err != nil {
				return nil, mapStoreErr(err)
			}
			titles[r.QuizID] = q
		}
		out = append(out, ResultView{Result: r, QuizTitle: q.Title, Subject: q.Subject})
	}
	return out, nil
}

// StudentResult is one student's result in a quiz report.
type StudentResult struct {
	store.Result
	StudentName string `json:"studentName"`
}

// QuizReport is what a teacher sees for one of their quizzes.
type QuizReport struct {
	Quiz         *store.Quiz     `json:"quiz"`
	Assignees    []store.User    `json:"assignees"`
	Results      []StudentResult `json:"results"`
	AverageScore float64         `json:"averageScore"`
}

// QuizResults returns the report for a quiz. Only its author may read it.
func (s *Service) QuizResults(ctx context.Context, teacherID, quizID string) (*QuizReport, error) {
	if _, err := s.requireRole(ctx, teacherID, store.RoleTeacher, store.RoleAdmin); err != nil {
		return nil, err
	}
	q, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if q.CreatedBy != teacherID {
		return nil, forbidden("quiz %s belongs to another teacher", quizID)
	}

	assignees, err := s.quizzes.AssigneesOf(ctx, quizID)
	if err != nil {
		return nil, err
	}
	results, err := s.results.ResultsOf(ctx, quizID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(assignees))
	for _, a := range assignees {
		names[a.ID] = a.Name
	}
	report := &QuizReport{Quiz: q, Assignees: assignees, Results: make([]StudentResult, 0, len(results))}
	scores := make([]int, 0, len(results))
	for _, r := range results {
		name, ok := names[r.UserID]
		if !ok {
			if u, err := s.users.GetUser(ctx, r.UserID); err == nil {
				name = u.Name
			}
		}
		report.Results = append(report.Results, StudentResult{Result: r, StudentName: name})
		scores = append(scores, r.Score)
	}
	report.AverageScore = average(scores)
	return report, nil
}

// AssignedQuiz is one entry of a student's assignment list.
type AssignedQuiz struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Subject       string    `json:"subject,omitempty"`
	Topic         string    `json:"topic,omitempty"`
	Level         string    `json:"level,omitempty"`
	Duration      int       `json:"duration"`
	QuestionCount int       `json:"numberOfQuestions"`
	AssignedAt    time.Time `json:"assignedDate"`
	Status        string    `json:"status"`
	Score         *int      `json:"score,omitempty"`
	ResultID      string    `json:"resultId,omitempty"`
}

// AssignedQuizzes lists the student's assignments with completion status.
func (s *Service) AssignedQuizzes(ctx context.Context, studentID string) ([]AssignedQuiz, error) {
	if _, err := s.user(ctx, studentID); err != nil {
		return nil, err
	}
	assignments, err := s.quizzes.AssignmentsFor(ctx, studentID)
	if err != nil {
		return nil, err
	}
	results, err := s.results.ResultsFor(ctx, studentID)
	if err != nil {
		return nil, err
	}
	byQuiz := make(map[string]store.Result, len(results))
	for _, r := range results {
		byQuiz[r.QuizID] = r
	}

	out := make([]AssignedQuiz, 0, len(assignments))
	for _, a := range assignments {
		q, err := s.quizzes.GetQuiz(ctx, a.QuizID)
		if err != nil {
			return nil, fmt.Errorf("load quiz %s: %w", a.QuizID, err)
		}
		aq := AssignedQuiz{
			ID:            q.ID,
			Title:         q.Title,
			Subject:       q.Subject,
			Topic:         q.Topic,
			Level:         q.Level,
			Duration:      q.DurationMins,
			QuestionCount: len(q.Questions),
			AssignedAt:    a.AssignedAt,
			Status:        StatusAssigned,
		}
		if r, ok := byQuiz[q.ID]; ok {
			score := r.Score
			aq.Status = StatusCompleted
			aq.Score = &score
			aq.ResultID = r.ID
		}
		out = append(out, aq)
	}
	return out, nil
}

// DashboardQuiz summarises one quiz for its author.
type DashboardQuiz struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Subject       string       `json:"subject,omitempty"`
	Level         string       `json:"level,omitempty"`
	UsedAI        bool         `json:"usedAI"`
	CreatedAt     time.Time    `json:"createdAt"`
	QuestionCount int          `json:"questionCount"`
	AssignedTo    []store.User `json:"assignedTo"`
	Completed     int          `json:"completed"`
	AverageScore  float64      `json:"averageScore"`
}

// Dashboard is the teacher's overview.
type Dashboard struct {
	Teacher  store.User      `json:"teacher"`
	Quizzes  []DashboardQuiz `json:"quizzes"`
	Students []store.User    `json:"students"`
}

// TeacherDashboard summarises the teacher's quizzes and linked students.
func (s *Service) TeacherDashboard(ctx context.Context, teacherID string) (*Dashboard, error) {
	t, err := s.requireRole(ctx, teacherID, store.RoleTeacher)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.quizzes.QuizzesBy(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	students, err := s.users.StudentsOf(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Teacher: *t, Quizzes: make([]DashboardQuiz, 0, len(quizzes)), Students: students}
	for _, q := range quizzes {
		n, err := s.quizzes.QuestionCount(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		assignees, err := s.quizzes.AssigneesOf(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		results, err := s.results.ResultsOf(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		scores := make([]int, len(results))
		for i, r := range results {
			scores[i] = r.Score
		}
		d.Quizzes = append(d.Quizzes, DashboardQuiz{
			ID:            q.ID,
			Title:         q.Title,
			Subject:       q.Subject,
			Level:         q.Level,
			UsedAI:        q.UsedAI,
			CreatedAt:     q.CreatedAt,
			QuestionCount: n,
			AssignedTo:    assignees,
			Completed:     len(results),
			AverageScore:  average(scores),
		})
	}
	return d, nil
}

// average returns the mean rounded to one decimal, 0 for no scores.
func average(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return math.Round(float64(sum)/float64(len(scores))*10) / 10
}
