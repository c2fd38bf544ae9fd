package difficulty

const (
	// EscalateAfter is the correct-answer streak that moves difficulty up.
	EscalateAfter = 3

	// DeescalateAfter is the incorrect-answer streak that moves difficulty down.
	DeescalateAfter = 2
)

// Adjust returns the difficulty for the next question given the level in
// effect and the current streak counters. Escalation is checked first, so it
// wins if a caller passes both counters above their thresholds.
func Adjust(current Level, correctInRow, incorrectInRow int) Level {
	if correctInRow >= EscalateAfter {
		return Harder(current)
	}
	if incorrectInRow >= DeescalateAfter {
		return Easier(current)
	}
	return current
}
