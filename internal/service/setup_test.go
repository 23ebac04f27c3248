package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/aionboard/internal/catalog"
	"github.com/alexanderramin/aionboard/internal/planner"
	"github.com/alexanderramin/aionboard/internal/repository"
	"github.com/alexanderramin/aionboard/internal/testutil"
)

type repos struct {
	db       *sql.DB
	profiles *repository.SQLiteProfileRepo
	drafts   *repository.SQLiteDraftRepo
	plans    *repository.SQLitePlanRepo
	progress *repository.SQLiteProgressRepo
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repos{
		db:       database,
		profiles: repository.NewSQLiteProfileRepo(database),
		drafts:   repository.NewSQLiteDraftRepo(database),
		plans:    repository.NewSQLitePlanRepo(database),
		progress: repository.NewSQLiteProgressRepo(database),
	}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func testGenerator(t *testing.T) planner.PlanGenerator {
	return planner.New(testCatalog(t).Activities)
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

func (r *recordingObserver) byName(name string) []UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
