package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/agenda/internal/db"
)

// NewTestDB returns an empty calendar store (events, categories and
// suggestions tables) held in memory for the duration of the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	store, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening in-memory calendar store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// NewTestUoW wraps store in the production unit of work so service tests
// exercise real commits and rollbacks.
func NewTestUoW(store *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(store)
}
