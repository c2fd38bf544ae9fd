package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/quizup/internal/difficulty"
)

// resultRepo implements ResultRepo.
type resultRepo struct {
	db *sql.DB
}

var (
	resultColumns = []string{
		"id", "user_id", "quiz_id", "score", "correct", "total",
		"time_taken_secs", "guidance", "created_at",
	}
	questionResultColumns = []string{
		"result_id", "position", "question_id", "user_answer", "is_correct",
		"correct_answer", "explanation", "difficulty",
	}
)

func scanResult(row interface{ Scan(...any) error }) (Result, error) {
	var r Result
	err := row.Scan(&r.ID, &r.UserID, &r.QuizID, &r.Score, &r.Correct, &r.Total,
		&r.TimeTakenSecs, &r.Guidance, &r.CreatedAt)
	return r, err
}

func (r *resultRepo) CreateResult(ctx context.Context, res *Result) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}

	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := execQ(ctx, tx, builder().Insert(tableResults).
			Columns(resultColumns...).
			Values(res.ID, res.UserID, res.QuizID, res.Score, res.Correct, res.Total,
				res.TimeTakenSecs, res.Guidance, res.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
		if len(res.Questions) == 0 {
			return nil
		}

		ins := builder().Insert(tableQuestionResults).Columns(questionResultColumns...)
		for i := range res.Questions {
			qr := &res.Questions[i]
			qr.Position = i
			ins = ins.Values(res.ID, qr.Position, qr.QuestionID, qr.UserAnswer, qr.IsCorrect,
				qr.CorrectAnswer, qr.Explanation, qr.Difficulty.String())
		}
		if _, err := execQ(ctx, tx, ins); err != nil {
			return fmt.Errorf("insert question results: %w", err)
		}
		return nil
	})
}

func (r *resultRepo) GetResult(ctx context.Context, id string) (*Result, error) {
	b := builder()
	res, err := scanResult(queryRowQ(ctx, r.db, b.Select(resultColumns...).
		From(b.Table(tableResults)).
		Where(entsql.EQ("id", id))))
	if err != nil {
		return nil, notFound(err, "result "+id)
	}
	if res.Questions, err = r.questionResults(ctx, id); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resultRepo) questionResults(ctx context.Context, resultID string) ([]QuestionResult, error) {
	b := builder()
	rows, err := queryQ(ctx, r.db, b.Select(questionResultColumns...).
		From(b.Table(tableQuestionResults)).
		Where(entsql.EQ("result_id", resultID)).
		OrderBy("position"))
	if err != nil {
		return nil, fmt.Errorf("query question results: %w", err)
	}
	defer rows.Close()

	var out []QuestionResult
	for rows.Next() {
		var qr QuestionResult
		var resID, level string
		if err := rows.Scan(&resID, &qr.Position, &qr.QuestionID, &qr.UserAnswer, &qr.IsCorrect,
			&qr.CorrectAnswer, &qr.Explanation, &level); err != nil {
			return nil, fmt.Errorf("scan question result: %w", err)
		}
		if qr.Difficulty, err = difficulty.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("question result %s/%d: %w", resID, qr.Position, err)
		}
		out = append(out, qr)
	}
	return out, rows.Err()
}

func (r *resultRepo) ResultFor(ctx context.Context, userID, quizID string) (*Result, error) {
	b := builder()
	res, err := scanResult(queryRowQ(ctx, r.db, b.Select(resultColumns...).
		From(b.Table(tableResults)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("quiz_id", quizID),
		))))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query result: %w", err)
	}
	return &res, nil
}

func (r *resultRepo) ResultsFor(ctx context.Context, userID string) ([]Result, error) {
	return r.list(ctx, entsql.EQ("user_id", userID))
}

func (r *resultRepo) ResultsOf(ctx context.Context, quizID string) ([]Result, error) {
	return r.list(ctx, entsql.EQ("quiz_id", quizID))
}

func (r *resultRepo) list(ctx context.Context, where *entsql.Predicate) ([]Result, error) {
	b := builder()
	rows, err := queryQ(ctx, r.db, b.Select(resultColumns...).
		From(b.Table(tableResults)).
		Where(where).
		OrderBy(entsql.Desc("created_at")))
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *resultRepo) SetGuidance(ctx context.Context, resultID, text string) error {
	res, err := execQ(ctx, r.db, builder().Update(tableResults).
		Set("guidance", text).
		Where(entsql.EQ("id", resultID)))
	if err != nil {
		return fmt.Errorf("set guidance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("result %s: %w", resultID, ErrNotFound)
	}
	return nil
}

func (r *resultRepo) LeaderboardRows(ctx context.Context) ([]LeaderboardRow, error) {
	b := builder()
	u := b.Table(tableUsers)
	res := b.Table(tableResults).As("r")
	rows, err := queryQ(ctx, r.db, b.Select(
		u.C("id"),
		u.C("name"),
		entsql.As(entsql.Count(res.C("id")), "quizzes"),
		entsql.As(entsql.Sum(res.C("score")), "total_score"),
	).
		From(u).
		Join(res).On(u.C("id"), res.C("user_id")).
		Where(entsql.EQ(u.C("role"), string(RoleStudent))).
		GroupBy(u.C("id"), u.C("name")))
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []LeaderboardRow
	for rows.Next() {
		var row LeaderboardRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.Quizzes, &row.TotalScore); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
