package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/agenda/internal/db"
	"github.com/alexanderramin/agenda/internal/domain"
)

var suggestionColumns = []string{
	"id", "user_id", "type", "title", "description", "priority", "status",
	"rule_triggered", "payload", "related_event_id", "reference_day", "created_at", "expires_at",
}

// SQLiteSuggestionRepo implements SuggestionRepo using a SQLite database.
type SQLiteSuggestionRepo struct {
	db db.DBTX
}

// NewSQLiteSuggestionRepo creates a new SQLiteSuggestionRepo.
func NewSQLiteSuggestionRepo(db db.DBTX) *SQLiteSuggestionRepo {
	return &SQLiteSuggestionRepo{db: db}
}

func (r *SQLiteSuggestionRepo) Save(ctx context.Context, s *domain.Suggestion) error {
	if s.Status == "" {
		s.Status = domain.SuggestionPending
	}
	payload, err := encodePayload(s.Payload)
	if err != nil {
		return err
	}
	query, args, err := buildQuery(sq.Insert("suggestions").Columns(suggestionColumns...).Values(
		s.ID, s.UserID, string(s.Type), s.Title, s.Description,
		string(s.Priority), string(s.Status), s.Rule, payload,
		nullableString(s.RelatedEventID), s.ReferenceDay,
		formatTime(s.CreatedAt), formatTime(s.ExpiresAt),
	), "insert suggestion")
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting suggestion: %w", err)
	}
	return nil
}

func (r *SQLiteSuggestionRepo) GetByID(ctx context.Context, id, userID string) (*domain.Suggestion, error) {
	query, args, err := buildQuery(sq.Select(suggestionColumns...).From("suggestions").
		Where(sq.Eq{"id": id, "user_id": userID}), "get suggestion")
	if err != nil {
		return nil, err
	}
	s, err := scanSuggestionRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("suggestion: %w", ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSuggestionRepo) ListActive(ctx context.Context, userID string, now time.Time) ([]*domain.Suggestion, error) {
	b := sq.Select(suggestionColumns...).From("suggestions").
		Where(sq.Eq{"user_id": userID, "status": string(domain.SuggestionPending)}).
		Where(sq.Gt{"expires_at": formatTime(now)}).
		OrderBy(priorityOrder, "created_at DESC", "id")
	return r.query(ctx, b, "active suggestions")
}

func (r *SQLiteSuggestionRepo) ListByStatus(ctx context.Context, userID string, status domain.SuggestionStatus) ([]*domain.Suggestion, error) {
	b := sq.Select(suggestionColumns...).From("suggestions").
		Where(sq.Eq{"user_id": userID, "status": string(status)}).
		OrderBy("created_at DESC", "id")
	return r.query(ctx, b, "suggestions by status")
}

// UpdateStatus sets the status and returns the updated suggestion. Writing
// the status a suggestion already has is a no-op.
func (r *SQLiteSuggestionRepo) UpdateStatus(ctx context.Context, id, userID string, status domain.SuggestionStatus) (*domain.Suggestion, error) {
	if !domain.ValidSuggestionStatuses[string(status)] {
		return nil, fmt.Errorf("invalid suggestion status %q", status)
	}
	query, args, err := buildQuery(sq.Update("suggestions").
		Set("status", string(status)).
		Where(sq.Eq{"id": id, "user_id": userID}), "update suggestion status")
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating suggestion status: %w", err)
	}
	if err := requireAffected(res, "suggestion"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id, userID)
}

func (r *SQLiteSuggestionRepo) ExpirePending(ctx context.Context, userID string, now time.Time) (int64, error) {
	query, args, err := buildQuery(sq.Update("suggestions").
		Set("status", string(domain.SuggestionExpired)).
		Where(sq.Eq{"user_id": userID, "status": string(domain.SuggestionPending)}).
		Where(sq.LtOrEq{"expires_at": formatTime(now)}), "expire suggestions")
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("expiring suggestions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking affected rows: %w", err)
	}
	return n, nil
}

func (r *SQLiteSuggestionRepo) HasActive(ctx context.Context, key DedupKey, now time.Time) (bool, error) {
	b := sq.Select("COUNT(*)").From("suggestions").
		Where(sq.Eq{
			"user_id":       key.UserID,
			"type":          string(key.Type),
			"reference_day": key.ReferenceDay,
			"status":        string(domain.SuggestionPending),
		}).
		Where(sq.Gt{"expires_at": formatTime(now)})
	if key.RelatedEventID != nil {
		b = b.Where(sq.Eq{"related_event_id": *key.RelatedEventID})
	}
	query, args, err := buildQuery(b, "active suggestion lookup")
	if err != nil {
		return false, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("checking active suggestions: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteSuggestionRepo) Delete(ctx context.Context, id, userID string) error {
	query, args, err := buildQuery(sq.Delete("suggestions").Where(sq.Eq{"id": id, "user_id": userID}), "delete suggestion")
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting suggestion: %w", err)
	}
	return requireAffected(res, "suggestion")
}

func (r *SQLiteSuggestionRepo) query(ctx context.Context, b sq.SelectBuilder, what string) ([]*domain.Suggestion, error) {
	query, args, err := buildQuery(b, what)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", what, err)
	}
	defer rows.Close()

	var out []*domain.Suggestion
	for rows.Next() {
		s, err := scanSuggestionRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating suggestions: %w", err)
	}
	return out, nil
}

func scanSuggestionRow(row rowScanner) (*domain.Suggestion, error) {
	var s domain.Suggestion
	var typ, priority, status, payload, createdStr, expiresStr string
	var related sql.NullString

	err := row.Scan(
		&s.ID, &s.UserID, &typ, &s.Title, &s.Description, &priority, &status,
		&s.Rule, &payload, &related, &s.ReferenceDay, &createdStr, &expiresStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning suggestion: %w", err)
	}

	s.Type = domain.SuggestionType(typ)
	s.Priority = domain.Priority(priority)
	s.Status = domain.SuggestionStatus(status)
	s.RelatedEventID = stringPtr(related)
	if s.Payload, err = decodePayload(s.Type, payload); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime(createdStr, "created_at"); err != nil {
		return nil, err
	}
	if s.ExpiresAt, err = parseTime(expiresStr, "expires_at"); err != nil {
		return nil, err
	}
	return &s, nil
}
