package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/quizup/internal/difficulty"
)

// quizRepo implements QuizRepo.
type quizRepo struct {
	db *sql.DB
}

var (
	quizColumns = []string{
		"id", "title", "subject", "topic", "level",
		"duration_mins", "used_ai", "created_by", "created_at",
	}
	questionColumns = []string{
		"id", "quiz_id", "position", "content", "options",
		"correct_answer", "explanation", "difficulty",
	}
)

func scanQuiz(row interface{ Scan(...any) error }) (Quiz, error) {
	var q Quiz
	err := row.Scan(&q.ID, &q.Title, &q.Subject, &q.Topic, &q.Level,
		&q.DurationMins, &q.UsedAI, &q.CreatedBy, &q.CreatedAt)
	return q, err
}

func (r *quizRepo) CreateQuiz(ctx context.Context, q *Quiz) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}

	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := execQ(ctx, tx, builder().Insert(tableQuizzes).
			Columns(quizColumns...).
			Values(q.ID, q.Title, q.Subject, q.Topic, q.Level,
				q.DurationMins, q.UsedAI, q.CreatedBy, q.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert quiz: %w", err)
		}

		for i := range q.Questions {
			qq := &q.Questions[i]
			if qq.ID == "" {
				qq.ID = uuid.NewString()
			}
			qq.QuizID = q.ID
			qq.Position = i
			if !qq.Difficulty.Valid() {
				qq.Difficulty = difficulty.Easy
			}
			opts, err := json.Marshal(qq.Options)
			if err != nil {
				return fmt.Errorf("marshal options: %w", err)
			}
			_, err = execQ(ctx, tx, builder().Insert(tableQuestions).
				Columns(questionColumns...).
				Values(qq.ID, qq.QuizID, qq.Position, qq.Content, string(opts),
					qq.CorrectAnswer, qq.Explanation, qq.Difficulty.String()))
			if err != nil {
				return fmt.Errorf("insert question %d: %w", i, err)
			}
		}
		return nil
	})
}

func (r *quizRepo) GetQuiz(ctx context.Context, id string) (*Quiz, error) {
	b := builder()
	q, err := scanQuiz(queryRowQ(ctx, r.db, b.Select(quizColumns...).
		From(b.Table(tableQuizzes)).
		Where(entsql.EQ("id", id))))
	if err != nil {
		return nil, notFound(err, "quiz "+id)
	}

	rows, err := queryQ(ctx, r.db, b.Select(questionColumns...).
		From(b.Table(tableQuestions)).
		Where(entsql.EQ("quiz_id", id)).
		OrderBy("position"))
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var qq Question
		var opts, level string
		if err := rows.Scan(&qq.ID, &qq.QuizID, &qq.Position, &qq.Content, &opts,
			&qq.CorrectAnswer, &qq.Explanation, &level); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(opts), &qq.Options); err != nil {
			return nil, fmt.Errorf("decode options of %s: %w", qq.ID, err)
		}
		if qq.Difficulty, err = difficulty.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("question %s: %w", qq.ID, err)
		}
		q.Questions = append(q.Questions, qq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *quizRepo) QuizzesBy(ctx context.Context, teacherID string) ([]Quiz, error) {
	b := builder()
	rows, err := queryQ(ctx, r.db, b.Select(quizColumns...).
		From(b.Table(tableQuizzes)).
		Where(entsql.EQ("created_by", teacherID)).
		OrderBy(entsql.Desc("created_at")))
	if err != nil {
		return nil, fmt.Errorf("query quizzes: %w", err)
	}
	defer rows.Close()

	var out []Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *quizRepo) QuestionCount(ctx context.Context, quizID string) (int, error) {
	b := builder()
	var n int
	err := queryRowQ(ctx, r.db, b.Select(entsql.Count("*")).
		From(b.Table(tableQuestions)).
		Where(entsql.EQ("quiz_id", quizID))).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

func (r *quizRepo) UpdateQuestionDifficulty(ctx context.Context, questionID string, level difficulty.Level) error {
	if !level.Valid() {
		return fmt.Errorf("invalid difficulty %d", int(level))
	}
	res, err := execQ(ctx, r.db, builder().Update(tableQuestions).
		Set("difficulty", level.String()).
		Where(entsql.EQ("id", questionID)))
	if err != nil {
		return fmt.Errorf("update difficulty: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("question %s: %w", questionID, ErrNotFound)
	}
	return nil
}

func (r *quizRepo) Assign(ctx context.Context, quizID string, studentIDs []string) error {
	if len(studentIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	ins := builder().Insert(tableAssignments).
		Columns("quiz_id", "student_id", "assigned_at")
	for _, id := range studentIDs {
		ins = ins.Values(quizID, id, now)
	}
	if _, err := execQ(ctx, r.db, ins.OnConflict(entsql.DoNothing())); err != nil {
		return fmt.Errorf("assign quiz: %w", err)
	}
	return nil
}

func (r *quizRepo) IsAssigned(ctx context.Context, quizID, studentID string) (bool, error) {
	b := builder()
	var n int
	err := queryRowQ(ctx, r.db, b.Select(entsql.Count("*")).
		From(b.Table(tableAssignments)).
		Where(entsql.And(
			entsql.EQ("quiz_id", quizID),
			entsql.EQ("student_id", studentID),
		))).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return n > 0, nil
}

func (r *quizRepo) AssignmentsFor(ctx context.Context, studentID string) ([]Assignment, error) {
	b := builder()
	rows, err := queryQ(ctx, r.db, b.Select("quiz_id", "student_id", "assigned_at").
		From(b.Table(tableAssignments)).
		Where(entsql.EQ("student_id", studentID)).
		OrderBy(entsql.Desc("assigned_at")))
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.QuizID, &a.StudentID, &a.AssignedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *quizRepo) AssigneesOf(ctx context.Context, quizID string) ([]User, error) {
	b := builder()
	u := b.Table(tableUsers)
	a := b.Table(tableAssignments).As("a")
	rows, err := queryQ(ctx, r.db, b.Select(u.C("id"), u.C("name"), u.C("email"), u.C("role"), u.C("created_at")).
		From(u).
		Join(a).On(u.C("id"), a.C("student_id")).
		Where(entsql.EQ(a.C("quiz_id"), quizID)).
		OrderBy(u.C("name")))
	if err != nil {
		return nil, fmt.Errorf("query assignees: %w", err)
	}
	return collectUsers(rows)
}
