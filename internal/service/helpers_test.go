package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/agenda/internal/repository"
	"github.com/alexanderramin/agenda/internal/testutil"
)

const testUser = "user-1"

// fixedNow is Monday 10 March 2025, 14:00 UTC.
var fixedNow = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// at returns h:m on fixedNow's day shifted by dayOffset days.
func at(dayOffset, h, m int) time.Time {
	return time.Date(2025, 3, 10+dayOffset, h, m, 0, 0, time.UTC)
}

type repos struct {
	db          *sql.DB
	events      *repository.SQLiteEventRepo
	suggestions *repository.SQLiteSuggestionRepo
	categories  *repository.SQLiteCategoryRepo
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repos{
		db:          database,
		events:      repository.NewSQLiteEventRepo(database),
		suggestions: repository.NewSQLiteSuggestionRepo(database),
		categories:  repository.NewSQLiteCategoryRepo(database),
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}
