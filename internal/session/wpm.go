// Package session implements the typing round state machine.
package session

import (
	"math"
	"strings"
)

// DefaultPlaceholder is the glyph that stands in for a space.
const DefaultPlaceholder = '•'

// Class classifies one target position for display.
type Class int

const (
	Pending Class = iota
	Correct
	Incorrect
	Cursor
)

func (c Class) String() string {
	switch c {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case Cursor:
		return "cursor"
	default:
		return "pending"
	}
}

// WPM returns words per minute for charCount characters typed in
// elapsedSeconds. Elapsed time is floored at one second and the result is
// rounded half to even.
func WPM(charCount int, elapsedSeconds float64) int {
	if elapsedSeconds < 1 {
		elapsedSeconds = 1
	}
	words := float64(charCount) / 5
	minutes := elapsedSeconds / 60
	return int(math.RoundToEven(words / minutes))
}

// Substitute replaces every space in s with placeholder.
func Substitute(s string, placeholder rune) string {
	return strings.ReplaceAll(s, " ", string(placeholder))
}

// Classify labels every target position against typed.
func Classify(target, typed []rune) []Class {
	out := make([]Class, len(target))
	for i, r := range target {
		switch {
		case i < len(typed) && typed[i] == r:
			out[i] = Correct
		case i < len(typed):
			out[i] = Incorrect
		case i == len(typed):
			out[i] = Cursor
		default:
			out[i] = Pending
		}
	}
	return out
}
