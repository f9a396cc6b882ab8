package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/agenda/internal/db"
)

// FailingUoW runs the callback in a real transaction but fails the FailOn-th
// write (1-based) to Table, for example the second event reschedule of an
// applied optimization. Writes to other tables and all reads pass through,
// so tests can check that a partial change to the calendar is rolled back.
type FailingUoW struct {
	DB     *sql.DB
	Table  string
	FailOn int
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &tableWriteFailer{DBTX: tx, table: strings.ToLower(u.Table), failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type tableWriteFailer struct {
	db.DBTX
	mu     sync.Mutex
	writes int
	table  string
	failOn int
	err    error
}

func (f *tableWriteFailer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if writesTable(query, f.table) {
		f.mu.Lock()
		f.writes++
		hit := f.writes == f.failOn
		f.mu.Unlock()
		if hit {
			return nil, f.err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// writesTable reports whether query is an INSERT, UPDATE or DELETE on table.
func writesTable(query, table string) bool {
	fields := strings.Fields(strings.ToLower(query))
	for i := 0; i+1 < len(fields); i++ {
		switch fields[i] {
		case "into", "update", "from":
			if strings.Trim(fields[i+1], "\"`(") == table {
				return true
			}
		}
	}
	return false
}
