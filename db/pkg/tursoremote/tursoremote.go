package tursoremote

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tursodatabase/libsql-client-go/libsql"
)

var (
	ErrTokenNotFound = fmt.Errorf("token not found")
	ErrURLNotFound   = fmt.Errorf("database url not found")
)

// DatabaseURL builds the hosted database url from a database name and organization.
func DatabaseURL(dbName, org string) string {
	return fmt.Sprintf("libsql://%s-%s.turso.io", dbName, org)
}

// NewTursoRemote connects to a hosted libsql database. Plain http(s) urls are accepted for
// self hosted sqld instances that run without auth.
func NewTursoRemote(ctx context.Context, url, token string) (*sql.DB, error) {
	if url == "" {
		return nil, ErrURLNotFound
	}

	var opts []libsql.Option
	if strings.HasPrefix(url, "libsql://") {
		if token == "" {
			return nil, ErrTokenNotFound
		}
		opts = append(opts, libsql.WithAuthToken(token))
	} else if token != "" {
		opts = append(opts, libsql.WithAuthToken(token))
	}

	connector, err := libsql.NewConnector(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
