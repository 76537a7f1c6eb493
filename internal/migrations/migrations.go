// Package migrations lists the folio schema and data migrations in order.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/the-dev-tools/folio/db/pkg/sqlc"
	"github.com/the-dev-tools/folio/internal/migrate"
	"github.com/the-dev-tools/folio/pkg/movable"
)

const (
	InitialSchemaID    = "01JB8Z6Q2M4V9XK3T7R5N1C0DE"
	CompactSortOrderID = "01JB8ZA3W5H2PQ7Y6S9G4F1KMT"
)

// Registry returns a fresh registry holding every folio migration.
func Registry() *migrate.Registry {
	return migrate.NewRegistry().MustRegister(
		migrate.Statements(InitialSchemaID, "initial schema", sqlc.SchemaStatements()...),
		compactSortOrders(),
	)
}

// compactSortOrders repairs rows imported with gaps, duplicates or zero ranks.
func compactSortOrders() migrate.Migration {
	return migrate.Migration{
		ID:          CompactSortOrderID,
		Description: "compact sort_order to 1..N in every ordered collection",
		Checksum:    migrate.Checksum("compact-sort-orders", "v1"),
		Apply: func(ctx context.Context, tx *sql.Tx) error {
			for _, col := range movable.Collections() {
				store, err := movable.NewSQLStore(tx, col)
				if err != nil {
					return err
				}
				entries, err := store.List(ctx)
				if err != nil {
					return err
				}
				if plan := movable.CompactPlan(entries); len(plan) > 0 {
					if err := store.UpdateSortOrders(ctx, plan); err != nil {
						return fmt.Errorf("compact %s: %w", col, err)
					}
				}
			}
			return nil
		},
		Validate: func(ctx context.Context, db *sql.DB) error {
			for _, col := range movable.Collections() {
				store, err := movable.NewSQLStore(db, col)
				if err != nil {
					return err
				}
				entries, err := store.List(ctx)
				if err != nil {
					return err
				}
				if err := movable.CheckDense(entries); err != nil {
					return fmt.Errorf("%s: %w", col, err)
				}
			}
			return nil
		},
	}
}

// Run applies every pending migration and returns how many ran.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) (int, error) {
	runner, err := migrate.NewRunner(db, Registry(), logger)
	if err != nil {
		return 0, err
	}
	return runner.ApplyAll(ctx)
}
