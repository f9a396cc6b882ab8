package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/agenda/internal/db"
	"github.com/alexanderramin/agenda/internal/domain"
)

var categoryColumns = []string{"id", "user_id", "name", "color", "created_at"}

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#928374"

// SQLiteCategoryRepo implements CategoryRepo using a SQLite database.
type SQLiteCategoryRepo struct {
	db db.DBTX
}

// NewSQLiteCategoryRepo creates a new SQLiteCategoryRepo.
func NewSQLiteCategoryRepo(db db.DBTX) *SQLiteCategoryRepo {
	return &SQLiteCategoryRepo{db: db}
}

func (r *SQLiteCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if c.Color == "" {
		c.Color = DefaultCategoryColor
	}
	query, args, err := buildQuery(sq.Insert("categories").Columns(categoryColumns...).
		Values(c.ID, c.UserID, c.Name, c.Color, formatTime(c.CreatedAt)), "insert category")
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

func (r *SQLiteCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query, args, err := buildQuery(sq.Select(categoryColumns...).From("categories").
		Where(sq.Eq{"id": id}), "get category")
	if err != nil {
		return nil, err
	}
	c, err := scanCategoryRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("category: %w", ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

func (r *SQLiteCategoryRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Category, error) {
	query, args, err := buildQuery(sq.Select(categoryColumns...).From("categories").
		Where(sq.Eq{"user_id": userID}).OrderBy("name"), "list categories")
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []*domain.Category
	for rows.Next() {
		c, err := scanCategoryRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return out, nil
}

func scanCategoryRow(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	var createdStr string
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &createdStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	created, err := parseTime(createdStr, "created_at")
	if err != nil {
		return nil, err
	}
	c.CreatedAt = created
	return &c, nil
}
