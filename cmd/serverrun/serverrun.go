package serverrun

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	foliodb "github.com/the-dev-tools/folio/db"
	"github.com/the-dev-tools/folio/db/pkg/sqlitelocal"
	"github.com/the-dev-tools/folio/db/pkg/tursoremote"
	"github.com/the-dev-tools/folio/internal/api"
	"github.com/the-dev-tools/folio/internal/migrations"
	"github.com/the-dev-tools/folio/pkg/config"
)

const (
	EnvConfigPath     = "FOLIO_CONFIG"
	DefaultConfigPath = "folio.yaml"
)

// Run loads configuration, migrates the database and serves until SIGINT or SIGTERM.
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)

	db, closeDB, err := OpenDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()
	logger.Info("database opened", "mode", cfg.Database.Mode)
	if cfg.Database.Mode == foliodb.EMBEDDED {
		logger.Warn("embedded database is in memory, content is lost on restart")
	}

	ran, err := migrations.Run(ctx, db, logger)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	logger.Info("migrations applied", "count", ran)

	app, err := NewApp(cfg, db, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.ListenServices(gctx, app.Services, cfg.Addr(), cfg.Server.AllowedOrigins)
	})
	g.Go(func() error {
		return app.Portfolio.Run(gctx)
	})
	return g.Wait()
}

// LoadConfig reads .env files, the optional YAML file and env overrides, then validates.
func LoadConfig() (*config.Config, error) {
	config.LoadDotEnv()
	path := os.Getenv(EnvConfigPath)
	optional := path == ""
	if optional {
		path = DefaultConfigPath
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return nil, err
	}
	if _, err := config.LoadEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenDB opens the database selected by cfg.Database.Mode. The returned func closes it.
func OpenDB(ctx context.Context, cfg *config.Config) (*sql.DB, func(), error) {
	switch cfg.Database.Mode {
	case foliodb.LOCAL:
		return sqlitelocal.NewSQLiteLocal(ctx, cfg.Database.Name, cfg.Database.Path)
	case foliodb.EMBEDDED:
		return sqlitelocal.NewSQLiteMem(ctx)
	case foliodb.REMOTE:
		url := cfg.Database.Turso.URL
		if url == "" && cfg.Database.Turso.Org != "" {
			url = tursoremote.DatabaseURL(cfg.Database.Name, cfg.Database.Turso.Org)
		}
		db, err := tursoremote.NewTursoRemote(ctx, url, cfg.Database.Turso.Token)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrInvalidDBMode, cfg.Database.Mode)
	}
}
