package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/agenda/internal/app"
)

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "H:MM" or "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("%q is not HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("%q has an invalid hour", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || len(m) != 2 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%q has an invalid minute", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) seconds() int {
	return t.Hour*3600 + t.Minute*60
}

func clockSeconds(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// Period windows as [start, end) hours.
var (
	morningHours   = [2]int{6, 12}
	afternoonHours = [2]int{12, 18}
	eveningHours   = [2]int{18, 22}
)

// TimeConstraint restricts the time of day an event may start. Every set
// clause must hold. The zero value accepts any time.
type TimeConstraint struct {
	NotBefore     *TimeOfDay
	NotAfter      *TimeOfDay
	MorningOnly   bool
	AfternoonOnly bool
	EveningOnly   bool
}

// ConstraintFromSpec parses a request constraint. Errors are
// *app.ValidationError naming the offending field.
func ConstraintFromSpec(spec app.ConstraintSpec) (TimeConstraint, error) {
	c := TimeConstraint{
		MorningOnly:   spec.MorningOnly,
		AfternoonOnly: spec.AfternoonOnly,
		EveningOnly:   spec.EveningOnly,
	}
	if spec.NotBefore != "" {
		t, err := ParseTimeOfDay(spec.NotBefore)
		if err != nil {
			return TimeConstraint{}, app.NewValidationError("not_before", "%v", err)
		}
		c.NotBefore = &t
	}
	if spec.NotAfter != "" {
		t, err := ParseTimeOfDay(spec.NotAfter)
		if err != nil {
			return TimeConstraint{}, app.NewValidationError("not_after", "%v", err)
		}
		c.NotAfter = &t
	}
	return c, nil
}

// IsEmpty reports whether no clause is set.
func (c TimeConstraint) IsEmpty() bool {
	return c.NotBefore == nil && c.NotAfter == nil && !c.MorningOnly && !c.AfternoonOnly && !c.EveningOnly
}

// IsValid evaluates the constraint against t's wall clock in t's location.
func (c TimeConstraint) IsValid(t time.Time) bool {
	return len(c.Violations(t)) == 0
}

// Violation names one failed clause.
type Violation struct {
	Clause  string
	Message string
}

func (c TimeConstraint) Violations(t time.Time) []Violation {
	var out []Violation
	hour := t.Hour()
	clock := t.Format("15:04")

	periods := []struct {
		on     bool
		clause string
		hours  [2]int
	}{
		{c.MorningOnly, "morning_only", morningHours},
		{c.AfternoonOnly, "afternoon_only", afternoonHours},
		{c.EveningOnly, "evening_only", eveningHours},
	}
	for _, p := range periods {
		if p.on && (hour < p.hours[0] || hour >= p.hours[1]) {
			out = append(out, Violation{
				Clause:  p.clause,
				Message: fmt.Sprintf("%s is outside %02d:00 to %02d:00", clock, p.hours[0], p.hours[1]),
			})
		}
	}

	secs := clockSeconds(t)
	if c.NotBefore != nil && secs < c.NotBefore.seconds() {
		out = append(out, Violation{
			Clause:  "not_before",
			Message: fmt.Sprintf("%s is before %s (allowed window %s)", clock, c.NotBefore, c.window()),
		})
	}
	if c.NotAfter != nil && secs > c.NotAfter.seconds() {
		out = append(out, Violation{
			Clause:  "not_after",
			Message: fmt.Sprintf("%s is after %s (allowed window %s)", clock, c.NotAfter, c.window()),
		})
	}
	return out
}

func (c TimeConstraint) window() string {
	from, to := "00:00", "23:59"
	if c.NotBefore != nil {
		from = c.NotBefore.String()
	}
	if c.NotAfter != nil {
		to = c.NotAfter.String()
	}
	return from + " to " + to
}

// String renders the set clauses, for logs and CLI output.
func (c TimeConstraint) String() string {
	if c.IsEmpty() {
		return "any time"
	}
	var parts []string
	if c.NotBefore != nil {
		parts = append(parts, "not before "+c.NotBefore.String())
	}
	if c.NotAfter != nil {
		parts = append(parts, "not after "+c.NotAfter.String())
	}
	if c.MorningOnly {
		parts = append(parts, "morning only")
	}
	if c.AfternoonOnly {
		parts = append(parts, "afternoon only")
	}
	if c.EveningOnly {
		parts = append(parts, "evening only")
	}
	return strings.Join(parts, ", ")
}
