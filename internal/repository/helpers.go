package repository

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// timeLayout is the storage layout for every timestamp column. Values are
// always written in UTC so lexical and chronological order agree.
const timeLayout = time.RFC3339

// dayLayout is the storage layout for calendar-day columns.
const dayLayout = "2006-01-02"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s, column string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// nullableString converts a *string into a value suitable for SQLite storage.
func nullableString(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// dayBounds returns [midnight, next midnight) of t's calendar day in t's location.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// DayKey formats the calendar day of t (in t's location) as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// priorityOrder sorts high before medium before low.
const priorityOrder = "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC"

func buildQuery(b sq.Sqlizer, what string) (string, []interface{}, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("building %s query: %w", what, err)
	}
	return query, args, nil
}
