package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Failure kinds. Match them with errors.Is; use errors.As with *Error to
// reach the offending content or the server's retry hint.
var (
	ErrRateLimited  = errors.New("rate limited")
	ErrUnavailable  = errors.New("provider unavailable")
	ErrInvalidReply = errors.New("invalid model reply")
	ErrTruncated    = errors.New("reply truncated at max tokens")
)

// Error is a classified provider failure.
type Error struct {
	Kind     error
	Provider string

	// RetryAfter is the server's backoff hint for ErrRateLimited.
	RetryAfter time.Duration

	// Content is the raw model output for ErrInvalidReply and ErrTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Kind == ErrRateLimited && e.RetryAfter > 0 {
		msg = fmt.Sprintf("%s (retry after %s)", msg, e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the failure kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

// Unavailable reports a provider that is down or unreachable.
func Unavailable(provider string, err error) *Error {
	return &Error{Kind: ErrUnavailable, Provider: provider, Err: err}
}

// RateLimited reports an HTTP 429.
func RateLimited(provider string, retryAfter time.Duration, err error) *Error {
	return &Error{Kind: ErrRateLimited, Provider: provider, RetryAfter: retryAfter, Err: err}
}

// InvalidReply reports output that is not the JSON the schema asked for.
func InvalidReply(content json.RawMessage, err error) *Error {
	return &Error{Kind: ErrInvalidReply, Content: content, Err: err}
}

// Truncated reports output cut off by the MaxTokens limit.
func Truncated(content json.RawMessage) *Error {
	return &Error{Kind: ErrTruncated, Content: content}
}

// classifyStatus maps an HTTP status from a vendor SDK error.
func classifyStatus(provider string, status int, err error) *Error {
	if status == http.StatusTooManyRequests {
		return RateLimited(provider, 0, err)
	}
	return Unavailable(provider, err)
}
