package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/agenda/internal/db"
)

func TestWritesTable(t *testing.T) {
	tests := []struct {
		query string
		table string
		want  bool
	}{
		{"INSERT INTO events (id) VALUES (?)", "events", true},
		{"UPDATE events SET start_time = ? WHERE id = ?", "events", true},
		{"DELETE FROM suggestions WHERE id = ?", "suggestions", true},
		{"UPDATE suggestions SET status = ?", "events", false},
		{"INSERT INTO categories (id) VALUES (?)", "events", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, writesTable(tt.query, tt.table), tt.query)
	}
}

func TestFailingUoW_RollsBackOnNthTableWrite(t *testing.T) {
	store := NewTestDB(t)
	ctx := context.Background()
	injected := errors.New("injected")
	uow := &FailingUoW{DB: store, Table: "categories", FailOn: 2, Err: injected}

	insert := `INSERT INTO categories (id, user_id, name, color, created_at) VALUES (?, ?, ?, '', '2025-03-10T09:00:00Z')`
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insert, "c1", "u1", "Work"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, insert, "c2", "u1", "Home")
		return err
	})
	require.ErrorIs(t, err, injected)

	var n int
	require.NoError(t, store.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n))
	assert.Zero(t, n, "first insert rolled back")
}
