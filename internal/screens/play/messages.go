package play

import (
	"time"

	"github.com/abhisek/quizup/internal/store"
)

// timerTickMsg is sent every second to advance the countdown.
type timerTickMsg time.Time

// submittedMsg carries the outcome of the final submission.
type submittedMsg struct {
	Result *store.Result
	Err    error
}
