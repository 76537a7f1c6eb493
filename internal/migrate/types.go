package migrate

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// ApplyFunc mutates database state within a transaction.
type ApplyFunc func(ctx context.Context, tx *sql.Tx) error

// ValidateFunc runs after commit to verify postconditions.
type ValidateFunc func(ctx context.Context, db *sql.DB) error

// Migration describes a registered migration and its hooks.
type Migration struct {
	ID          string
	Checksum    string
	Description string
	Apply       ApplyFunc
	Validate    ValidateFunc
}

// Checksum hashes statements in order. Whitespace around each statement is ignored.
func Checksum(statements ...string) string {
	h, _ := blake2b.New256(nil)
	for _, s := range statements {
		h.Write([]byte(strings.TrimSpace(s)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Statements builds a migration that executes each statement in order.
func Statements(id, description string, statements ...string) Migration {
	return Migration{
		ID:          id,
		Description: description,
		Checksum:    Checksum(statements...),
		Apply: func(ctx context.Context, tx *sql.Tx) error {
			for _, stmt := range statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
