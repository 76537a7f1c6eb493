package sqlitelocal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/the-dev-tools/folio/db/pkg/sqlc"

	_ "modernc.org/sqlite"
)

var (
	ErrDBNameNotFound = errors.New("db name not found")
	ErrDBPathNotFound = errors.New("db path not found")
)

// NewSQLiteLocal opens (and on first use creates) a WAL mode database file at path/dbName.db.
// The returned func closes the pool.
func NewSQLiteLocal(ctx context.Context, dbName, path string) (*sql.DB, func(), error) {
	if dbName == "" {
		return nil, nil, ErrDBNameNotFound
	}
	if path == "" {
		return nil, nil, ErrDBPathNotFound
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("creating database directory", "path", path)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	dbFilePath := filepath.Join(path, dbName+".db")
	var firstTime bool
	if _, err := os.Stat(dbFilePath); os.IsNotExist(err) {
		firstTime = true
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate", dbFilePath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if firstTime {
		slog.Info("creating tables", "file", dbFilePath)
		if err := sqlc.CreateLocalTables(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return db, func() { _ = db.Close() }, nil
}

// NewSQLiteMem opens a private in-memory database with the schema applied.
// Used by the embedded server mode and by CLI dry runs.
func NewSQLiteMem(ctx context.Context) (*sql.DB, func(), error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := sqlc.CreateLocalTables(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return db, func() { _ = db.Close() }, nil
}
