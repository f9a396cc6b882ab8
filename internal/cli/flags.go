package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/spf13/pflag"
)

// priorityValue is a pflag.Value accepting low, medium or high.
type priorityValue struct {
	p *domain.Priority
}

func newPriorityValue(def domain.Priority, p *domain.Priority) *priorityValue {
	*p = def
	return &priorityValue{p: p}
}

func (v *priorityValue) String() string { return string(*v.p) }

func (v *priorityValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidPriorities[s] {
		return fmt.Errorf("must be low, medium or high")
	}
	*v.p = domain.Priority(s)
	return nil
}

func (v *priorityValue) Type() string { return "priority" }

// addPriorityFlag registers --priority on fs.
func addPriorityFlag(fs *pflag.FlagSet, p *domain.Priority, def domain.Priority) {
	fs.Var(newPriorityValue(def, p), "priority", "Priority: low, medium or high")
}

// addDayFlag registers --date on fs. Values are parsed by parseDay.
func addDayFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVarP(target, "date", "d", "today", "Day: today, tomorrow, yesterday or YYYY-MM-DD")
}

var dateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// parseDateTime reads a wall-clock time in loc. RFC3339 input keeps its own
// offset. A bare "HH:MM" means that time today.
func parseDateTime(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation("15:04", s, loc); err == nil {
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (want YYYY-MM-DD HH:MM)", s)
}

// parseDay returns midnight of the named day in loc.
func parseDay(s string, now time.Time, loc *time.Location) (time.Time, error) {
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
