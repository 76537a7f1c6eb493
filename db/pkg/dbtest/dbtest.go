package dbtest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/the-dev-tools/folio/db/pkg/sqlc"
	"github.com/the-dev-tools/folio/db/pkg/sqlc/gen"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// GetTestDB opens an isolated in-memory database with the schema applied.
func GetTestDB(ctx context.Context) (*sql.DB, error) {
	// every test gets its own named memory database so shared cache does not leak rows
	uniqueName := ulid.Make().String()
	connStr := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uniqueName)

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, err
	}
	// a single connection keeps the memory database alive and serializes writers
	db.SetMaxOpenConns(1)

	err = sqlc.CreateLocalTables(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func GetTestQueries(ctx context.Context) (*sql.DB, *gen.Queries, error) {
	db, err := GetTestDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	return db, gen.New(db), nil
}
