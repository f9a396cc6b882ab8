package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/agenda/internal/app"
)

func clock(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func tod(h, m int) *TimeOfDay {
	return &TimeOfDay{Hour: h, Minute: m}
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("9:05")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 5}, got)
	assert.Equal(t, "09:05", got.String())

	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "12:5"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimeConstraint_EmptyAlwaysValid(t *testing.T) {
	var c TimeConstraint
	assert.True(t, c.IsEmpty())
	assert.True(t, c.IsValid(clock(3, 0)))
	assert.Equal(t, "any time", c.String())
}

func TestTimeConstraint_Periods(t *testing.T) {
	tests := []struct {
		name string
		c    TimeConstraint
		at   time.Time
		want bool
	}{
		{"morning start", TimeConstraint{MorningOnly: true}, clock(6, 0), true},
		{"morning end exclusive", TimeConstraint{MorningOnly: true}, clock(12, 0), false},
		{"afternoon", TimeConstraint{AfternoonOnly: true}, clock(17, 59), true},
		{"afternoon too early", TimeConstraint{AfternoonOnly: true}, clock(11, 59), false},
		{"evening", TimeConstraint{EveningOnly: true}, clock(21, 45), true},
		{"evening end exclusive", TimeConstraint{EveningOnly: true}, clock(22, 0), false},
		{"not before boundary inclusive", TimeConstraint{NotBefore: tod(9, 0)}, clock(9, 0), true},
		{"not after boundary inclusive", TimeConstraint{NotAfter: tod(18, 0)}, clock(18, 0), true},
		{"not after exceeded", TimeConstraint{NotAfter: tod(18, 0)}, clock(18, 15), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.IsValid(tt.at))
		})
	}
}

func TestTimeConstraint_Conjunction(t *testing.T) {
	c := TimeConstraint{MorningOnly: true, NotAfter: tod(8, 0)}
	assert.False(t, c.IsValid(clock(9, 0)))
	assert.True(t, c.IsValid(clock(7, 30)))
}

func TestTimeConstraint_ViolationReportsBothBounds(t *testing.T) {
	c := TimeConstraint{NotBefore: tod(9, 0), NotAfter: tod(18, 0)}

	assert.False(t, c.IsValid(clock(8, 0)))
	v := c.Violations(clock(8, 0))
	require.Len(t, v, 1)
	assert.Equal(t, "not_before", v[0].Clause)
	assert.Contains(t, v[0].Message, "09:00")
	assert.Contains(t, v[0].Message, "18:00")
}

func TestConstraintFromSpec(t *testing.T) {
	c, err := ConstraintFromSpec(app.ConstraintSpec{NotBefore: "09:00", AfternoonOnly: true})
	require.NoError(t, err)
	require.NotNil(t, c.NotBefore)
	assert.Nil(t, c.NotAfter)
	assert.True(t, c.AfternoonOnly)
	assert.Equal(t, "not before 09:00, afternoon only", c.String())

	_, err = ConstraintFromSpec(app.ConstraintSpec{NotAfter: "late"})
	var ve *app.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "not_after", ve.Field)
}
