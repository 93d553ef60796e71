// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	TextPath    string
	Countdown   int
	Placeholder rune
	LogPath     string
	LogLevel    string
	Summary     bool
}

// RoundResult captures a completed round.
type RoundResult struct {
	Round      int
	StartedAt  time.Time
	EndedAt    time.Time
	Target     string
	Chars      int
	WPM        int
	DurationMs int64
	CharStats  []CharStats
}

// CharStats stores per-character keystroke tallies for a round.
type CharStats struct {
	Char      string
	Correct   int
	Incorrect int
}

// CharAggregate aggregates character tallies across rounds.
type CharAggregate struct {
	Char      string
	Correct   int
	Incorrect int
}

// RoundAggregate summarizes a stored round for reporting.
type RoundAggregate struct {
	ID         int64
	Round      int
	EndedAt    time.Time
	Chars      int
	WPM        int
	DurationMs int64
}
