package store

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/quizup/internal/difficulty"
)

func seedQuiz(t *testing.T, s *Store, teacherID string) *Quiz {
	t.Helper()
	q := &Quiz{
		Title:        "Capitals",
		Subject:      "Geography",
		DurationMins: 10,
		CreatedBy:    teacherID,
		Questions: []Question{
			{Content: "Capital of France?", Options: []string{"Paris", "Rome", "Berlin", "Madrid"}, CorrectAnswer: "Paris"},
			{Content: "Capital of Italy?", Options: []string{"Paris", "Rome", "Berlin", "Madrid"}, CorrectAnswer: "Rome"},
			{Content: "Capital of Spain?", Options: []string{"Paris", "Rome", "Berlin", "Madrid"}, CorrectAnswer: "Madrid", Explanation: "Madrid since 1561"},
		},
	}
	if err := s.Quizzes().CreateQuiz(context.Background(), q); err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return q
}

func TestCreateAndGetQuiz(t *testing.T) {
	s := openTestStore(t)
	teacher, _, _ := seedUsers(t, s)
	q := seedQuiz(t, s, teacher.ID)

	got, err := s.Quizzes().GetQuiz(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if got.Title != "Capitals" || got.DurationMins != 10 || got.CreatedBy != teacher.ID {
		t.Errorf("quiz = %+v", got)
	}
	if len(got.Questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(got.Questions))
	}
	for i, qq := range got.Questions {
		if qq.Position != i {
			t.Errorf("question %d position = %d", i, qq.Position)
		}
		if qq.Difficulty != difficulty.Easy {
			t.Errorf("question %d difficulty = %s, want EASY", i, qq.Difficulty)
		}
		if len(qq.Options) != 4 {
			t.Errorf("question %d options = %v", i, qq.Options)
		}
	}
	if got.Questions[2].CorrectAnswer != "Madrid" || got.Questions[2].Explanation != "Madrid since 1561" {
		t.Errorf("question 2 = %+v", got.Questions[2])
	}
}

func TestCreateQuizRollsBackOnFailure(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Unknown creator violates the foreign key, so nothing must persist.
	q := &Quiz{
		Title:     "Orphan",
		CreatedBy: "nobody",
		Questions: []Question{{Content: "?", Options: []string{"a", "b"}, CorrectAnswer: "a"}},
	}
	if err := s.Quizzes().CreateQuiz(ctx, q); err == nil {
		t.Fatal("expected error")
	}
	if _, err := s.Quizzes().GetQuiz(ctx, q.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("quiz persisted after failed create: %v", err)
	}
}

func TestQuizzesByAndCount(t *testing.T) {
	s := openTestStore(t)
	teacher, _, _ := seedUsers(t, s)
	q := seedQuiz(t, s, teacher.ID)
	ctx := context.Background()

	quizzes, err := s.Quizzes().QuizzesBy(ctx, teacher.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(quizzes) != 1 || quizzes[0].ID != q.ID {
		t.Errorf("quizzes = %v", quizzes)
	}

	n, err := s.Quizzes().QuestionCount(ctx, q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestUpdateQuestionDifficulty(t *testing.T) {
	s := openTestStore(t)
	teacher, _, _ := seedUsers(t, s)
	q := seedQuiz(t, s, teacher.ID)
	ctx := context.Background()

	if err := s.Quizzes().UpdateQuestionDifficulty(ctx, q.Questions[1].ID, difficulty.Hard); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Quizzes().GetQuiz(ctx, q.ID)
	if got.Questions[1].Difficulty != difficulty.Hard {
		t.Errorf("difficulty = %s, want HARD", got.Questions[1].Difficulty)
	}

	if err := s.Quizzes().UpdateQuestionDifficulty(ctx, "missing", difficulty.Medium); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAssignments(t *testing.T) {
	s := openTestStore(t)
	teacher, alice, bob := seedUsers(t, s)
	q := seedQuiz(t, s, teacher.ID)
	ctx := context.Background()
	repo := s.Quizzes()

	if err := repo.Assign(ctx, q.ID, []string{alice.ID}); err != nil {
		t.Fatal(err)
	}
	// Assigning again alongside a new student keeps the first assignment.
	if err := repo.Assign(ctx, q.ID, []string{alice.ID, bob.ID}); err != nil {
		t.Fatal(err)
	}

	ok, err := repo.IsAssigned(ctx, q.ID, bob.ID)
	if err != nil || !ok {
		t.Errorf("IsAssigned(bob) = %v, %v", ok, err)
	}
	ok, _ = repo.IsAssigned(ctx, q.ID, teacher.ID)
	if ok {
		t.Error("teacher should not be assigned")
	}

	assignees, err := repo.AssigneesOf(ctx, q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(assignees) != 2 {
		t.Errorf("assignees = %d, want 2", len(assignees))
	}

	as, err := repo.AssignmentsFor(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(as) != 1 || as[0].QuizID != q.ID {
		t.Errorf("assignments for alice = %v", as)
	}
}
