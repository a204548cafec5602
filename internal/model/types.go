// Package model defines shared data structures.
package model

import "time"

// Status describes how far along a word is in practice.
type Status string

// Word practice statuses.
const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusStruggling Status = "struggling"
	StatusMastered   Status = "mastered"
)

// ValidStatus reports whether s is a known status value.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusStruggling, StatusMastered:
		return true
	}
	return false
}

// NextStatus cycles to the next status value, wrapping around.
func NextStatus(s Status) Status {
	switch s {
	case StatusNotStarted:
		return StatusInProgress
	case StatusInProgress:
		return StatusStruggling
	case StatusStruggling:
		return StatusMastered
	default:
		return StatusNotStarted
	}
}

// Word is a single practice item. Identity is the stable ID, never the
// position in the deck.
type Word struct {
	ID            string
	Text          string
	Breakdown     string
	Status        Status
	PracticeCount int
	LastPracticed time.Time
}

// Config defines practice settings.
type Config struct {
	DeckPath         string
	TickMs           int
	ShowBreakdown    bool
	FocusStruggling  bool
	StrugglingFactor float64
}

// StatsConfig defines filters for the stats report.
type StatsConfig struct {
	Since *time.Time
	Last  int
	Word  string
}

// PracticeRecord captures one committed stretch of practice for a word.
type PracticeRecord struct {
	ID         int64
	WordID     string
	StartedAt  time.Time
	EndedAt    time.Time
	DurationMs int64
}

// WordAggregate summarizes practice for a word in the stats report.
type WordAggregate struct {
	WordID        string
	Text          string
	Status        Status
	Sessions      int
	TotalMs       int64
	LastPracticed time.Time
}

// DayAggregate sums practice time for a calendar day.
type DayAggregate struct {
	Day     time.Time
	TotalMs int64
}
