package guidance

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// Saver persists guidance for a result.
type Saver interface {
	SetGuidance(ctx context.Context, resultID, text string) error
}

// Service generates guidance in the background and saves it. A single
// worker drains a bounded queue, so a burst of submissions never fans out
// into a burst of LLM calls.
type Service struct {
	gen     *Generator
	saver   Saver
	timeout time.Duration

	mu      sync.Mutex
	closed  bool
	pending chan job
	wg      sync.WaitGroup
}

type job struct {
	ctx      context.Context
	resultID string
	input    Input
}

// NewService creates a guidance service. A nil gen stores
// UnavailableMessage for every request.
func NewService(gen *Generator, saver Saver) *Service {
	s := &Service{
		gen:     gen,
		saver:   saver,
		timeout: 60 * time.Second,
		pending: make(chan job, 64),
	}
	s.wg.Add(1)
	go s.processLoop()
	return s
}

// Request queues guidance for resultID. The request context's values are
// kept but its cancellation is not, since the caller usually returns before
// the job runs. Returns false if the queue is full or the service is
// closed; the fallback message is stored instead.
func (s *Service) Request(ctx context.Context, resultID string, in Input) bool {
	j := job{ctx: context.WithoutCancel(ctx), resultID: resultID, input: in}
	if s.enqueue(j) {
		return true
	}
	s.save(j.ctx, resultID, FallbackMessage)
	return false
}

func (s *Service) enqueue(j job) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.pending <- j:
		return true
	default:
		return false
	}
}

// Compose returns guidance for in synchronously, falling back to the fixed
// messages when generation is unavailable or fails.
func (s *Service) Compose(ctx context.Context, in Input) string {
	if s.gen == nil {
		return UnavailableMessage
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.gen.Generate(ctx, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: guidance generation failed: %v\n", err)
		return FallbackMessage
	}
	return text
}

func (s *Service) processLoop() {
	defer s.wg.Done()
	for j := range s.pending {
		s.save(j.ctx, j.resultID, s.Compose(j.ctx, j.input))
	}
}

func (s *Service) save(ctx context.Context, resultID, text string) {
	if err := s.saver.SetGuidance(ctx, resultID, text); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save guidance for %s: %v\n", resultID, err)
	}
}

// Close stops accepting work and waits for queued jobs to finish. Later
// requests get the fallback message.
func (s *Service) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.pending)
	}
	s.mu.Unlock()
	s.wg.Wait()
}
