package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScoreSlot(t *testing.T) {
	pref := clock(10, 0)

	assert.Equal(t, 100.0, ScoreSlot(pref, pref, 0, 0))
	assert.Equal(t, 98.0, ScoreSlot(clock(12, 0), pref, 0, 0))
	assert.Equal(t, 98.0, ScoreSlot(clock(8, 0), pref, 0, 0), "distance is symmetric")
	assert.Equal(t, 100.0-24-5, ScoreSlot(pref.Add(24*time.Hour), pref, 1, 0))
	assert.Equal(t, 120.0, ScoreSlot(pref, pref, 0, 2))
}

func TestScoreSlot_ProximityPenaltyCapped(t *testing.T) {
	pref := clock(10, 0)
	far := pref.Add(6 * 24 * time.Hour)
	assert.Equal(t, 100.0-50-30, ScoreSlot(far, pref, 6, 0))
}
