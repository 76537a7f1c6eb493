package migrations

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/folio/internal/migrate"
	"github.com/the-dev-tools/folio/pkg/movable"
	"github.com/the-dev-tools/folio/pkg/testutil"
)

func TestRegistryOrder(t *testing.T) {
	ids := []string{}
	for _, m := range Registry().List() {
		ids = append(ids, m.ID)
	}
	require.Equal(t, []string{InitialSchemaID, CompactSortOrderID}, ids)
}

func TestRunCompactsImportedRows(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", "file:migrations_probe?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.DiscardHandler)
	runner, err := migrate.NewRunner(db, Registry(), logger)
	require.NoError(t, err)
	n, err := runner.ApplyTo(ctx, InitialSchemaID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// rows as an older site left them
	for _, order := range []int{2, 5, 5, 9} {
		_, err := db.ExecContext(ctx, `INSERT INTO projects (title, sort_order) VALUES ('p', ?)`, order)
		require.NoError(t, err)
	}
	_, err = db.ExecContext(ctx, `INSERT INTO fun_facts (fact_text, sort_order) VALUES ('f', 3)`)
	require.NoError(t, err)

	n, err = Run(ctx, db, logger)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, testutil.Dense(4), testutil.SortOrders(ctx, t, db, movable.CollectionProjects))
	require.Equal(t, testutil.Dense(1), testutil.SortOrders(ctx, t, db, movable.CollectionFunFacts))

	n, err = Run(ctx, db, logger)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestRunOnFreshDatabase(t *testing.T) {
	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	defer base.Close()

	n, err := Run(ctx, base.DB, base.Logger())
	require.NoError(t, err)
	require.Equal(t, 2, n)

	plan, err := func() ([]migrate.PlanEntry, error) {
		r, err := migrate.NewRunner(base.DB, Registry(), base.Logger())
		if err != nil {
			return nil, err
		}
		return r.Plan(ctx)
	}()
	require.NoError(t, err)
	for _, p := range plan {
		require.True(t, p.Applied(), p.Migration.ID)
	}
}
