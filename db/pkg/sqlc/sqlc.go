package sqlc

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/pingcap/log"
)

//go:embed schema.sql
var ddl string

var createIndexRegex = regexp.MustCompile(`(?i)\bCREATE\s+(UNIQUE\s+)?INDEX\s+`)

// Execer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SchemaStatements returns the embedded DDL split into idempotent statements.
func SchemaStatements() []string {
	modifiedDDL := strings.ReplaceAll(ddl, "CREATE TABLE ", "CREATE TABLE IF NOT EXISTS ")
	modifiedDDL = createIndexRegex.ReplaceAllStringFunc(modifiedDDL, func(match string) string {
		if strings.Contains(strings.ToUpper(match), "UNIQUE") {
			return "CREATE UNIQUE INDEX IF NOT EXISTS "
		}
		return "CREATE INDEX IF NOT EXISTS "
	})

	var out []string
	for _, stmt := range strings.Split(modifiedDDL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

// CreateLocalTables creates all tables defined in schema.sql.
func CreateLocalTables(ctx context.Context, db Execer) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	for _, stmt := range SchemaStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			// libsql reports duplicates even with IF NOT EXISTS on some index forms
			if strings.Contains(err.Error(), "already exists") {
				log.Warn("Table or index already exists, ignoring error: " + err.Error())
				continue
			}
			return fmt.Errorf("failed to execute schema: %w", err)
		}
	}
	return nil
}
