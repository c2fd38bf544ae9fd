package grading

// Streak holds the consecutive-outcome counters for one grading pass.
// At most one of the two counters is nonzero.
type Streak struct {
	CorrectInRow   int
	IncorrectInRow int
}

// Record returns the streak after one more answer.
func (s Streak) Record(correct bool) Streak {
	if correct {
		return Streak{CorrectInRow: s.CorrectInRow + 1}
	}
	return Streak{IncorrectInRow: s.IncorrectInRow + 1}
}
