package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/agenda/internal/db"
	"github.com/alexanderramin/agenda/internal/domain"
)

var eventColumns = []string{
	"id", "user_id", "title", "description", "start_time", "end_time", "location",
	"priority", "is_flexible", "status", "category_id", "rrule", "created_at", "updated_at",
}

// SQLiteEventRepo implements EventRepo using a SQLite database.
type SQLiteEventRepo struct {
	db db.DBTX
}

// NewSQLiteEventRepo creates a new SQLiteEventRepo.
func NewSQLiteEventRepo(db db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: db}
}

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if e.Priority == "" {
		e.Priority = domain.PriorityMedium
	}
	if e.Status == "" {
		e.Status = domain.EventPending
	}
	if err := e.Validate(); err != nil {
		return err
	}
	if err := ValidateRRule(e.RRule); err != nil {
		return err
	}

	var categoryID *string
	if e.CategoryID != "" {
		categoryID = &e.CategoryID
	}
	query, args, err := buildQuery(sq.Insert("events").Columns(eventColumns...).Values(
		e.ID, e.UserID, e.Title, e.Description,
		formatTime(e.Start), formatTime(e.End), e.Location,
		string(e.Priority), boolToInt(e.Flexible), string(e.Status),
		nullableString(categoryID), e.RRule,
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	), "insert event")
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id, userID string) (*domain.Event, error) {
	query, args, err := buildQuery(sq.Select(eventColumns...).From("events").
		Where(sq.Eq{"id": id, "user_id": userID}), "get event")
	if err != nil {
		return nil, err
	}
	return r.scanEvent(r.db.QueryRowContext(ctx, query, args...))
}

func (r *SQLiteEventRepo) ListOverlapping(ctx context.Context, userID string, start, end time.Time) ([]*domain.Event, error) {
	single := sq.Select(eventColumns...).From("events").
		Where(sq.Eq{"user_id": userID, "rrule": ""}).
		Where(sq.Lt{"start_time": formatTime(end)}).
		Where(sq.Gt{"end_time": formatTime(start)}).
		OrderBy("start_time", "id")
	events, err := r.query(ctx, single, "overlapping events")
	if err != nil {
		return nil, err
	}

	occurrences, err := r.expandRecurring(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return mergeByStart(events, occurrences), nil
}

func (r *SQLiteEventRepo) ListDay(ctx context.Context, userID string, day time.Time) ([]*domain.Event, error) {
	dayStart, dayEnd := dayBounds(day)
	events, err := r.ListOverlapping(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	var out []*domain.Event
	for _, e := range events {
		if !e.Start.Before(dayStart) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *SQLiteEventRepo) ListUpdatedSince(ctx context.Context, userID string, since time.Time) ([]*domain.Event, error) {
	b := sq.Select(eventColumns...).From("events").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"updated_at": formatTime(since)}).
		OrderBy("updated_at", "id")
	return r.query(ctx, b, "recently updated events")
}

func (r *SQLiteEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := ValidateRRule(e.RRule); err != nil {
		return err
	}
	var categoryID *string
	if e.CategoryID != "" {
		categoryID = &e.CategoryID
	}
	query, args, err := buildQuery(sq.Update("events").SetMap(map[string]interface{}{
		"title":       e.Title,
		"description": e.Description,
		"start_time":  formatTime(e.Start),
		"end_time":    formatTime(e.End),
		"location":    e.Location,
		"priority":    string(e.Priority),
		"is_flexible": boolToInt(e.Flexible),
		"status":      string(e.Status),
		"category_id": nullableString(categoryID),
		"rrule":       e.RRule,
		"updated_at":  formatTime(e.UpdatedAt),
	}).Where(sq.Eq{"id": e.ID, "user_id": e.UserID}), "update event")
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return requireAffected(res, "event")
}

// Reschedule moves a single event to newStart, keeping its duration.
func (r *SQLiteEventRepo) Reschedule(ctx context.Context, id, userID string, newStart, now time.Time) (*domain.Event, error) {
	e, err := r.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if e.RRule != "" {
		return nil, ErrRecurringSeries
	}
	e.MoveTo(newStart, now)
	if err := r.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id, userID string) error {
	query, args, err := buildQuery(sq.Delete("events").Where(sq.Eq{"id": id, "user_id": userID}), "delete event")
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return requireAffected(res, "event")
}

func (r *SQLiteEventRepo) expandRecurring(ctx context.Context, userID string, start, end time.Time) ([]*domain.Event, error) {
	b := sq.Select(eventColumns...).From("events").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.NotEq{"rrule": ""}).
		Where(sq.Lt{"start_time": formatTime(end)})
	series, err := r.query(ctx, b, "recurring events")
	if err != nil {
		return nil, err
	}
	var out []*domain.Event
	for _, s := range series {
		occ, err := expandSeries(s, start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, occ...)
	}
	return out, nil
}

func (r *SQLiteEventRepo) query(ctx context.Context, b sq.SelectBuilder, what string) ([]*domain.Event, error) {
	query, args, err := buildQuery(b, what)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", what, err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

// mergeByStart combines stored and expanded events into start order.
// Ties break on ID so results are deterministic.
func mergeByStart(a, b []*domain.Event) []*domain.Event {
	if len(b) == 0 {
		return a
	}
	out := append(a, b...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteEventRepo) scanEvent(row *sql.Row) (*domain.Event, error) {
	e, err := scanEventRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("event: %w", ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteEventRepo) scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		e, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

func scanEventRow(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	var startStr, endStr, createdStr, updatedStr string
	var priority, status string
	var flexible int
	var categoryID sql.NullString

	err := row.Scan(
		&e.ID, &e.UserID, &e.Title, &e.Description, &startStr, &endStr, &e.Location,
		&priority, &flexible, &status, &categoryID, &e.RRule, &createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning event: %w", err)
	}

	e.Priority = domain.Priority(priority)
	e.Status = domain.EventStatus(status)
	e.Flexible = intToBool(flexible)
	if categoryID.Valid {
		e.CategoryID = categoryID.String
	}
	if e.Start, err = parseTime(startStr, "start_time"); err != nil {
		return nil, err
	}
	if e.End, err = parseTime(endStr, "end_time"); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdStr, "created_at"); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedStr, "updated_at"); err != nil {
		return nil, err
	}
	return &e, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
