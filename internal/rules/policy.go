package rules

import "time"

// Policy holds the thresholds the rules evaluate against.
type Policy struct {
	// BreakThreshold is the continuous work after which a break is suggested.
	BreakThreshold time.Duration

	// BlockGap is the largest gap that keeps two events in one block.
	BlockGap      time.Duration
	BreakDuration time.Duration

	// BalanceThreshold is the share of categorized time, in (0, 1], above
	// which a category dominates the day.
	BalanceThreshold   float64
	MaxOtherCategories int

	PostponementWindow time.Duration

	// PostponementAge is how much later than its creation an event must
	// have been updated to count as postponed.
	PostponementAge time.Duration

	Expiry time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		BreakThreshold:     3 * time.Hour,
		BlockGap:           30 * time.Minute,
		BreakDuration:      15 * time.Minute,
		BalanceThreshold:   0.6,
		MaxOtherCategories: 3,
		PostponementWindow: 7 * 24 * time.Hour,
		PostponementAge:    24 * time.Hour,
		Expiry:             24 * time.Hour,
	}
}
