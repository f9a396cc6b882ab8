package travel

import (
	"strings"
	"time"
)

// Heuristic tier durations.
const (
	SameBuilding     = 5 * time.Minute
	SameNeighborhood = 15 * time.Minute
	SameCity         = 30 * time.Minute
	DifferentCity    = 60 * time.Minute
)

// Normalize case-folds a location, trims it and collapses inner whitespace.
func Normalize(location string) string {
	return strings.Join(strings.Fields(strings.ToLower(location)), " ")
}

func segments(location string) []string {
	parts := strings.Split(location, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Heuristic estimates travel between two normalized, distinct, non-empty
// locations from their comma-delimited address segments. The first
// matching tier wins.
func Heuristic(origin, destination string) time.Duration {
	a, b := segments(origin), segments(destination)

	if len(a) >= 2 && len(b) >= 2 && a[0] == b[0] {
		return SameBuilding
	}
	if len(a) >= 3 && len(b) >= 3 && a[len(a)-2] == b[len(b)-2] {
		return SameNeighborhood
	}
	if len(a) >= 2 && len(b) >= 2 && a[len(a)-1] == b[len(b)-1] {
		return SameCity
	}
	return DifferentCity
}
