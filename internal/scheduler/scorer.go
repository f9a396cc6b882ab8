package scheduler

import (
	"math"
	"time"
)

// Scoring constants.
const (
	baseScore         = 100.0
	maxProximityHours = 50.0
	dayOffsetPenalty  = 5.0
	nearbyEventBonus  = 10.0
)

// ScoreSlot scores a candidate start. Closer to the preferred time, earlier
// in the search window and near more same-day events scores higher.
func ScoreSlot(candidate, preferred time.Time, dayOffset, nearby int) float64 {
	score := baseScore
	score -= math.Min(math.Abs(candidate.Sub(preferred).Hours()), maxProximityHours)
	score -= dayOffsetPenalty * float64(dayOffset)
	score += nearbyEventBonus * float64(nearby)
	return score
}
