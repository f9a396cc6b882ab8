package app

import "time"

// DayConflict is an adjacent pair of events whose gap cannot absorb the
// travel between them.
type DayConflict struct {
	First      EventRef
	Second     EventRef
	TravelTime time.Duration
	Gap        time.Duration
	Shortfall  time.Duration
	// SuggestedStart is First.End plus the travel time.
	SuggestedStart time.Time
	Message        string
}

// SequenceProposal is a reordering of one flexible event.
type SequenceProposal struct {
	Event    EventRef
	NewStart time.Time
}

type OptimizeResult struct {
	Possible        bool
	CurrentTravel   time.Duration
	OptimizedTravel time.Duration
	Savings         time.Duration
	Proposals       []SequenceProposal
	Message         string
}

type FixResult struct {
	EventID       string
	Title         string
	PreviousStart time.Time
	NewStart      time.Time
	NewEnd        time.Time
}
