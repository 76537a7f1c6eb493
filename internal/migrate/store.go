package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	foliodb "github.com/the-dev-tools/folio/db"
)

// Status represents the state of a migration record.
type Status string

const (
	StatusStarted  Status = "started"
	StatusFinished Status = "finished"
)

// ErrChecksumMismatch is returned when a finished migration was changed after it ran.
var ErrChecksumMismatch = errors.New("migrate: checksum mismatch for migration")

// Record models a row in schema_migrations. Times are unix milliseconds.
type Record struct {
	ID          string
	Description string
	Status      Status
	Checksum    string
	Attempts    int
	StartedAt   int64
	FinishedAt  sql.NullInt64
	LastError   sql.NullString
}

func (r Record) Started() time.Time { return time.UnixMilli(r.StartedAt) }

const createSchemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  id TEXT PRIMARY KEY,
  description TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL CHECK (status IN ('started', 'finished')),
  checksum TEXT NOT NULL,
  attempts INTEGER NOT NULL DEFAULT 0,
  started_at BIGINT NOT NULL,
  finished_at BIGINT,
  last_error TEXT
)`

const selectRecord = `SELECT id, description, status, checksum, attempts, started_at, finished_at, last_error
FROM schema_migrations`

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store reads and writes schema_migrations metadata.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the metadata table.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSchemaMigrationsTable); err != nil {
		return fmt.Errorf("migrate: creating schema_migrations table: %w", err)
	}
	return nil
}

// MarkStarted inserts or updates the row for an in-progress migration and
// increments its attempts.
func (s *Store) MarkStarted(ctx context.Context, m Migration, startedAt time.Time) (Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("migrate: begin metadata tx for %s: %w", m.ID, err)
	}
	defer foliodb.TxnRollback(tx)

	existing, err := getRecord(ctx, tx, m.ID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (id, description, status, checksum, attempts, started_at)
			 VALUES (?, ?, ?, ?, 1, ?)`,
			m.ID, m.Description, StatusStarted, m.Checksum, startedAt.UnixMilli())
	case err != nil:
		return Record{}, err
	default:
		if existing.Status == StatusFinished && existing.Checksum != m.Checksum {
			return Record{}, fmt.Errorf("%w: %s stored=%s new=%s", ErrChecksumMismatch, m.ID, existing.Checksum, m.Checksum)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE schema_migrations
			 SET status = ?, checksum = ?, attempts = attempts + 1, started_at = ?, last_error = NULL
			 WHERE id = ?`,
			StatusStarted, m.Checksum, startedAt.UnixMilli(), m.ID)
	}
	if err != nil {
		return Record{}, fmt.Errorf("migrate: mark started %s: %w", m.ID, err)
	}
	rec, err := getRecord(ctx, tx, m.ID)
	if err != nil {
		return Record{}, err
	}
	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("migrate: commit metadata start %s: %w", m.ID, err)
	}
	return rec, nil
}

// MarkFinished records completion inside the migration's own transaction, so
// the data change and its record commit together.
func (s *Store) MarkFinished(ctx context.Context, tx *sql.Tx, id string, finishedAt time.Time) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE schema_migrations SET status = ?, finished_at = ?, last_error = NULL WHERE id = ?`,
		StatusFinished, finishedAt.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("migrate: mark finished: %w", err)
	}
	return ensureRowsAffected(res, "mark finished")
}

// SetError stores the last error message for a migration.
func (s *Store) SetError(ctx context.Context, id string, cause error) error {
	res, err := s.db.ExecContext(ctx, `UPDATE schema_migrations SET last_error = ? WHERE id = ?`, cause.Error(), id)
	if err != nil {
		return fmt.Errorf("migrate: set error: %w", err)
	}
	return ensureRowsAffected(res, "set error")
}

// GetRecord fetches the metadata entry for id. Missing rows return sql.ErrNoRows.
func (s *Store) GetRecord(ctx context.Context, id string) (Record, error) {
	return getRecord(ctx, s.db, id)
}

// Records lists every metadata row ordered by id.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func getRecord(ctx context.Context, q querier, id string) (Record, error) {
	return scanRecord(q.QueryRowContext(ctx, selectRecord+` WHERE id = ?`, id))
}

func ensureRowsAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("migrate: %s rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("migrate: %s touched no rows", op)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	if err := row.Scan(
		&rec.ID,
		&rec.Description,
		&rec.Status,
		&rec.Checksum,
		&rec.Attempts,
		&rec.StartedAt,
		&rec.FinishedAt,
		&rec.LastError,
	); err != nil {
		return Record{}, err
	}
	return rec, nil
}
