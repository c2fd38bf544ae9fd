package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/quizup/internal/difficulty"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("already exists")
)

// Role is a user's permission level.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// User is a registered account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Quiz is a titled, ordered list of questions authored by a teacher.
type Quiz struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Subject      string     `json:"subject,omitempty"`
	Topic        string     `json:"topic,omitempty"`
	Level        string     `json:"level,omitempty"`
	DurationMins int        `json:"duration"`
	UsedAI       bool       `json:"usedAI"`
	CreatedBy    string     `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	Questions    []Question `json:"questions,omitempty"`
}

// Question is one multiple-choice question of a quiz. Difficulty is the
// label settled by the most recent submission, EASY until then.
type Question struct {
	ID            string           `json:"id"`
	QuizID        string           `json:"quizId"`
	Position      int              `json:"position"`
	Content       string           `json:"content"`
	Options       []string         `json:"options"`
	CorrectAnswer string           `json:"correctAnswer,omitempty"`
	Explanation   string           `json:"explanation,omitempty"`
	Difficulty    difficulty.Level `json:"difficulty"`
}

// Assignment links a quiz to a student who must take it.
type Assignment struct {
	QuizID     string    `json:"quizId"`
	StudentID  string    `json:"studentId"`
	AssignedAt time.Time `json:"assignedAt"`
}

// Result is a student's graded submission for one quiz.
type Result struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	QuizID        string           `json:"quizId"`
	Score         int              `json:"score"`
	Correct       int              `json:"correct"`
	Total         int              `json:"total"`
	TimeTakenSecs int              `json:"timeTaken"`
	Guidance      string           `json:"guidance,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	Questions     []QuestionResult `json:"questionResults,omitempty"`
}

// QuestionResult is the stored grading of one answer within a result.
type QuestionResult struct {
	Position      int              `json:"position"`
	QuestionID    string           `json:"questionId"`
	UserAnswer    string           `json:"userAnswer"`
	IsCorrect     bool             `json:"isCorrect"`
	CorrectAnswer string           `json:"correctAnswer"`
	Explanation   string           `json:"explanation"`
	Difficulty    difficulty.Level `json:"difficulty"`
}

// LeaderboardRow aggregates one student's results.
type LeaderboardRow struct {
	UserID     string
	Name       string
	Quizzes    int
	TotalScore int
}

// UserRepo manages accounts and teacher/student links.
type UserRepo interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id string) (*User, error)

	// ListUsers returns all users, or only those with role when it is non-empty.
	ListUsers(ctx context.Context, role Role) ([]User, error)
	UpdateRole(ctx context.Context, id string, role Role) error

	// LinkStudent records that teacherID teaches studentID. Linking twice is a no-op.
	LinkStudent(ctx context.Context, teacherID, studentID string) error
	StudentsOf(ctx context.Context, teacherID string) ([]User, error)
}

// QuizRepo manages quizzes, their questions and assignments.
type QuizRepo interface {
	// CreateQuiz stores the quiz and its questions in one transaction. IDs
	// and positions left empty are filled in.
	CreateQuiz(ctx context.Context, q *Quiz) error

	// GetQuiz returns the quiz with its questions in position order.
	GetQuiz(ctx context.Context, id string) (*Quiz, error)
	QuizzesBy(ctx context.Context, teacherID string) ([]Quiz, error)
	QuestionCount(ctx context.Context, quizID string) (int, error)
	UpdateQuestionDifficulty(ctx context.Context, questionID string, level difficulty.Level) error

	// Assign assigns the quiz to each student. Existing assignments are kept.
	Assign(ctx context.Context, quizID string, studentIDs []string) error
	IsAssigned(ctx context.Context, quizID, studentID string) (bool, error)
	AssignmentsFor(ctx context.Context, studentID string) ([]Assignment, error)
	AssigneesOf(ctx context.Context, quizID string) ([]User, error)
}

// ResultRepo manages graded submissions.
type ResultRepo interface {
	// CreateResult stores the result with its question results in one
	// transaction. A second result for the same user and quiz fails with
	// ErrDuplicate.
	CreateResult(ctx context.Context, r *Result) error
	GetResult(ctx context.Context, id string) (*Result, error)

	// ResultFor returns the user's result for the quiz, or nil if none exists.
	ResultFor(ctx context.Context, userID, quizID string) (*Result, error)
	ResultsFor(ctx context.Context, userID string) ([]Result, error)
	ResultsOf(ctx context.Context, quizID string) ([]Result, error)
	SetGuidance(ctx context.Context, resultID, text string) error
	LeaderboardRows(ctx context.Context) ([]LeaderboardRow, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls grouped by purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
