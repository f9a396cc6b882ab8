package scheduler

import (
	"context"
	"time"
)

type Config struct {
	WorkDayStartHour int
	WorkDayEndHour   int
	SlotStep         time.Duration
	// NearbyTravel is the travel time within which a same-day event counts
	// toward the clustering bonus.
	NearbyTravel  time.Duration
	MaxSearchDays int
}

func DefaultConfig() Config {
	return Config{
		WorkDayStartHour: 8,
		WorkDayEndHour:   20,
		SlotStep:         15 * time.Minute,
		NearbyTravel:     30 * time.Minute,
		MaxSearchDays:    90,
	}
}

// Estimator is the travel lookup the engines need. *travel.Estimator
// satisfies it.
type Estimator interface {
	Estimate(ctx context.Context, origin, destination string) time.Duration
}
