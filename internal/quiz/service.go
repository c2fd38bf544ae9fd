// Package quiz implements quiz authoring, assignment, submission and the
// read models built on top of them.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/quizup/internal/events"
	"github.com/abhisek/quizup/internal/guidance"
	"github.com/abhisek/quizup/internal/metrics"
	"github.com/abhisek/quizup/internal/quizgen"
	"github.com/abhisek/quizup/internal/rankcache"
	"github.com/abhisek/quizup/internal/store"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	ErrNotAssigned      = errors.New("quiz not assigned to user")
	ErrInvalidInput     = errors.New("invalid input")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func forbidden(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// mapStoreErr converts store sentinels into service sentinels, keeping the
// original message.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, store.ErrDuplicate):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return err
}

// Deps are the collaborators of a Service. Only the repositories are
// required.
type Deps struct {
	Users   store.UserRepo
	Quizzes store.QuizRepo
	Results store.ResultRepo

	// Generator produces AI questions. Nil means the fallback bank is
	// always used.
	Generator quizgen.Generator

	// Guidance writes improvement advice after each submission.
	Guidance *guidance.Service

	Publisher events.Publisher
	Ranks     rankcache.Cache
	Metrics   *metrics.Metrics
}

// Service is the application layer shared by the HTTP API and the CLI.
type Service struct {
	users   store.UserRepo
	quizzes store.QuizRepo
	results store.ResultRepo

	gen       quizgen.Generator
	guidance  *guidance.Service
	publisher events.Publisher
	ranks     rankcache.Cache
	metrics   *metrics.Metrics
}

// NewService wires a Service. Missing optional collaborators are replaced
// with no-op implementations.
func NewService(d Deps) *Service {
	s := &Service{
		users:     d.Users,
		quizzes:   d.Quizzes,
		results:   d.Results,
		gen:       d.Generator,
		guidance:  d.Guidance,
		publisher: d.Publisher,
		ranks:     d.Ranks,
		metrics:   d.Metrics,
	}
	if s.publisher == nil {
		s.publisher = events.NopPublisher{}
	}
	if s.ranks == nil {
		s.ranks = rankcache.Nop{}
	}
	return s
}

// user loads a user, mapping a missing row to ErrNotFound.
func (s *Service) user(ctx context.Context, id string) (*store.User, error) {
	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return u, nil
}

// requireRole loads the user and checks that their role is one of roles.
func (s *Service) requireRole(ctx context.Context, id string, roles ...store.Role) (*store.User, error) {
	u, err := s.user(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if u.Role == r {
			return u, nil
		}
	}
	return nil, forbidden("%s role cannot do this", u.Role)
}

// publish sends an event and only warns on failure; events never fail the
// operation that produced them.
func (s *Service) publish(ctx context.Context, typ events.Type, userID string, payload any) {
	ev, err := events.New(typ, userID, payload)
	if err == nil {
		err = s.publisher.Publish(ctx, ev)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: publish %s: %v\n", typ, err)
	}
}
