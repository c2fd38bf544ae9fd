package store

import (
	"context"
	"errors"
	"testing"
)

func seedUsers(t *testing.T, s *Store) (teacher, alice, bob User) {
	t.Helper()
	ctx := context.Background()
	teacher = User{ID: "t1", Name: "Tess", Email: "tess@example.com", Role: RoleTeacher}
	alice = User{ID: "s1", Name: "Alice", Email: "alice@example.com", Role: RoleStudent}
	bob = User{ID: "s2", Name: "Bob", Email: "bob@example.com", Role: RoleStudent}
	for _, u := range []*User{&teacher, &alice, &bob} {
		if err := s.Users().CreateUser(ctx, u); err != nil {
			t.Fatalf("create user %s: %v", u.ID, err)
		}
	}
	return teacher, alice, bob
}

func TestCreateAndGetUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := &User{Name: "Dana", Email: "dana@example.com"}
	if err := s.Users().CreateUser(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated ID")
	}
	if u.Role != RoleStudent {
		t.Errorf("default role = %q, want STUDENT", u.Role)
	}

	got, err := s.Users().GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "dana@example.com" || got.Role != RoleStudent {
		t.Errorf("got %+v", got)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Users().GetUser(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Users().CreateUser(ctx, &User{Name: "A", Email: "same@example.com"}); err != nil {
		t.Fatal(err)
	}
	err := s.Users().CreateUser(ctx, &User{Name: "B", Email: "same@example.com"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestCreateUserInvalidRole(t *testing.T) {
	s := openTestStore(t)
	err := s.Users().CreateUser(context.Background(), &User{Name: "X", Email: "x@example.com", Role: "OWNER"})
	if err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestListUsersByRole(t *testing.T) {
	s := openTestStore(t)
	seedUsers(t, s)
	ctx := context.Background()

	all, err := s.Users().ListUsers(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("all users = %d, want 3", len(all))
	}

	students, err := s.Users().ListUsers(ctx, RoleStudent)
	if err != nil {
		t.Fatal(err)
	}
	if len(students) != 2 {
		t.Errorf("students = %d, want 2", len(students))
	}
}

func TestUpdateRole(t *testing.T) {
	s := openTestStore(t)
	_, alice, _ := seedUsers(t, s)
	ctx := context.Background()

	if err := s.Users().UpdateRole(ctx, alice.ID, RoleTeacher); err != nil {
		t.Fatalf("update role: %v", err)
	}
	got, _ := s.Users().GetUser(ctx, alice.ID)
	if got.Role != RoleTeacher {
		t.Errorf("role = %q, want TEACHER", got.Role)
	}

	if err := s.Users().UpdateRole(ctx, "missing", RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user err = %v, want ErrNotFound", err)
	}
	if err := s.Users().UpdateRole(ctx, alice.ID, "ROOT"); err == nil {
		t.Error("expected error for invalid role")
	}
}

func TestLinkStudentIdempotent(t *testing.T) {
	s := openTestStore(t)
	teacher, alice, bob := seedUsers(t, s)
	ctx := context.Background()

	for _, id := range []string{alice.ID, bob.ID, alice.ID} {
		if err := s.Users().LinkStudent(ctx, teacher.ID, id); err != nil {
			t.Fatalf("link %s: %v", id, err)
		}
	}

	students, err := s.Users().StudentsOf(ctx, teacher.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(students) != 2 {
		t.Fatalf("students = %d, want 2", len(students))
	}
	if students[0].Name != "Alice" || students[1].Name != "Bob" {
		t.Errorf("students not ordered by name: %v", students)
	}
}

func TestLinkStudentUnknownUser(t *testing.T) {
	s := openTestStore(t)
	teacher, _, _ := seedUsers(t, s)
	if err := s.Users().LinkStudent(context.Background(), teacher.ID, "ghost"); err == nil {
		t.Fatal("expected foreign key error")
	}
}
