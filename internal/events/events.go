// Package events publishes domain events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type is an event routing key.
type Type string

const (
	QuizCreated     Type = "quiz.created"
	QuizAssigned    Type = "quiz.assigned"
	ResultSubmitted Type = "result.submitted"
)

// Event is the envelope written to the broker.
type Event struct {
	ID         string          `json:"id"`
	Type       Type            `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	UserID     string          `json:"userId,omitempty"`
	Payload    json.RawMessage `json:"payload"`
}

// New builds an Event with a fresh ID and the payload marshalled to JSON.
func New(typ Type, userID string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", typ, err)
	}
	return Event{
		ID:         uuid.New().String(),
		Type:       typ,
		OccurredAt: time.Now().UTC(),
		UserID:     userID,
		Payload:    raw,
	}, nil
}

// QuizCreatedPayload accompanies QuizCreated.
type QuizCreatedPayload struct {
	QuizID    string `json:"quizId"`
	Title     string `json:"title"`
	Subject   string `json:"subject"`
	Questions int    `json:"questions"`
	UsedAI    bool   `json:"usedAI"`
}

// QuizAssignedPayload accompanies QuizAssigned.
type QuizAssignedPayload struct {
	QuizID     string   `json:"quizId"`
	StudentIDs []string `json:"studentIds"`
}

// ResultSubmittedPayload accompanies ResultSubmitted.
type ResultSubmittedPayload struct {
	ResultID        string `json:"resultId"`
	QuizID          string `json:"quizId"`
	Score           int    `json:"score"`
	Correct         int    `json:"correct"`
	Total           int    `json:"total"`
	FinalDifficulty string `json:"finalDifficulty"`
}

// Publisher sends events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// OfType returns recorded events with the given type.
func (r *Recorder) OfType(typ Type) []Event {
	var out []Event
	for _, ev := range r.Events() {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}
