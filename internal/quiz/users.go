package quiz

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/abhisek/quizup/internal/store"
)

// RegisterUser creates an account.
func (s *Service) RegisterUser(ctx context.Context, name, email string, role store.Role) (*store.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("email %q is not valid", email)
	}
	if role == "" {
		role = store.RoleStudent
	}
	if !role.Valid() {
		return nil, invalid("unknown role %q", role)
	}
	u := &store.User{Name: name, Email: strings.ToLower(strings.TrimSpace(email)), Role: role}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, mapStoreErr(err)
	}
	return u, nil
}

// Me returns the caller's account.
func (s *Service) Me(ctx context.Context, userID string) (*store.User, error) {
	return s.user(ctx, userID)
}

// Users lists accounts, optionally filtered by role. Admin only.
func (s *Service) Users(ctx context.Context, adminID string, role store.Role) ([]store.User, error) {
	if _, err := s.requireRole(ctx, adminID, store.RoleAdmin); err != nil {
		return nil, err
	}
	if role != "" && !role.Valid() {
		return nil, invalid("unknown role %q", role)
	}
	return s.users.ListUsers(ctx, role)
}

// UpdateRole changes a user's role. Admin only.
func (s *Service) UpdateRole(ctx context.Context, adminID, userID string, role store.Role) error {
	if _, err := s.requireRole(ctx, adminID, store.RoleAdmin); err != nil {
		return err
	}
	if !role.Valid() {
		return invalid("unknown role %q", role)
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// LinkStudent records that the teacher teaches the student. Future quizzes
// by the teacher are assigned to the student automatically.
func (s *Service) LinkStudent(ctx context.Context, teacherID, studentID string) error {
	if _, err := s.requireRole(ctx, teacherID, store.RoleTeacher); err != nil {
		return err
	}
	st, err := s.user(ctx, studentID)
	if err != nil {
		return err
	}
	if st.Role != store.RoleStudent {
		return invalid("user %s is not a student", studentID)
	}
	if err := s.users.LinkStudent(ctx, teacherID, studentID); err != nil {
		return fmt.Errorf("link student: %w", err)
	}
	return nil
}

// Students lists the teacher's linked students.
func (s *Service) Students(ctx context.Context, teacherID string) ([]store.User, error) {
	if _, err := s.requireRole(ctx, teacherID, store.RoleTeacher); err != nil {
		return nil, err
	}
	return s.users.StudentsOf(ctx, teacherID)
}
