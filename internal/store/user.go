package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// userRepo implements UserRepo.
type userRepo struct {
	db *sql.DB
}

var userColumns = []string{"id", "name", "email", "role", "created_at"}

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.CreatedAt); err != nil {
		return User{}, err
	}
	u.Role = Role(role)
	return u, nil
}

func collectUsers(rows *sql.Rows) ([]User, error) {
	defer rows.Close()
	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *userRepo) CreateUser(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleStudent
	}
	if !u.Role.Valid() {
		return fmt.Errorf("invalid role %q", u.Role)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := execQ(ctx, r.db, builder().Insert(tableUsers).
		Columns(userColumns...).
		Values(u.ID, u.Name, u.Email, string(u.Role), u.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) GetUser(ctx context.Context, id string) (*User, error) {
	b := builder()
	u, err := scanUser(queryRowQ(ctx, r.db, b.Select(userColumns...).
		From(b.Table(tableUsers)).
		Where(entsql.EQ("id", id))))
	if err != nil {
		return nil, notFound(err, "user "+id)
	}
	return &u, nil
}

func (r *userRepo) ListUsers(ctx context.Context, role Role) ([]User, error) {
	b := builder()
	sel := b.Select(userColumns...).From(b.Table(tableUsers)).OrderBy("created_at", "name")
	if role != "" {
		sel = sel.Where(entsql.EQ("role", string(role)))
	}
	rows, err := queryQ(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return collectUsers(rows)
}

func (r *userRepo) UpdateRole(ctx context.Context, id string, role Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	res, err := execQ(ctx, r.db, builder().Update(tableUsers).
		Set("role", string(role)).
		Where(entsql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *userRepo) LinkStudent(ctx context.Context, teacherID, studentID string) error {
	_, err := execQ(ctx, r.db, builder().Insert(tableTeacherStudents).
		Columns("teacher_id", "student_id").
		Values(teacherID, studentID).
		OnConflict(entsql.DoNothing()))
	if err != nil {
		return fmt.Errorf("link student: %w", err)
	}
	return nil
}

func (r *userRepo) StudentsOf(ctx context.Context, teacherID string) ([]User, error) {
	b := builder()
	u := b.Table(tableUsers)
	ts := b.Table(tableTeacherStudents).As("ts")
	sel := b.Select(u.C("id"), u.C("name"), u.C("email"), u.C("role"), u.C("created_at")).
		From(u).
		Join(ts).On(u.C("id"), ts.C("student_id")).
		Where(entsql.EQ(ts.C("teacher_id"), teacherID)).
		OrderBy(u.C("name"))
	rows, err := queryQ(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("students of %s: %w", teacherID, err)
	}
	return collectUsers(rows)
}
