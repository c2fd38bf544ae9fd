package difficulty

import (
	"fmt"
	"strings"
)

// Level is the difficulty label carried by a question and by every graded
// answer. Levels are ordered Easy < Medium < Hard.
type Level int

const (
	Easy Level = iota
	Medium
	Hard
)

// All lists every level in ascending order.
var All = []Level{Easy, Medium, Hard}

// String returns the canonical upper-case name ("EASY", "MEDIUM", "HARD").
func (l Level) String() string {
	switch l {
	case Easy:
		return "EASY"
	case Medium:
		return "MEDIUM"
	case Hard:
		return "HARD"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Valid reports whether l is one of the three defined levels.
func (l Level) Valid() bool {
	return l >= Easy && l <= Hard
}

// ParseLevel parses a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EASY":
		return Easy, nil
	case "MEDIUM":
		return Medium, nil
	case "HARD":
		return Hard, nil
	}
	return Easy, fmt.Errorf("unknown difficulty %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid difficulty %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Harder returns the next level up. Hard is the ceiling.
func Harder(l Level) Level {
	switch l {
	case Easy:
		return Medium
	default:
		return Hard
	}
}

// Easier returns the next level down. Easy is the floor.
func Easier(l Level) Level {
	switch l {
	case Hard:
		return Medium
	default:
		return Easy
	}
}
