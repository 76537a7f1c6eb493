// Package cli implements folioctl, the operator tool for a folio database.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/the-dev-tools/folio/cmd/serverrun"
	"github.com/the-dev-tools/folio/pkg/config"
	"github.com/the-dev-tools/folio/pkg/metrics"
	"github.com/the-dev-tools/folio/pkg/movable"
	"github.com/the-dev-tools/folio/pkg/service/sorder"
)

const (
	ConfigFileName      = ".folio"
	ConfigFileExtension = "yaml"
	EnvPrefix           = "FOLIO"
)

// env is shared by every subcommand of one root command.
type env struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCmd builds a fresh command tree. Each tree carries its own viper instance.
func NewRootCmd() *cobra.Command {
	e := &env{v: viper.New()}

	root := &cobra.Command{
		Use:   "folioctl",
		Short: "folioctl manages the ordered collections of a folio database",
		Long: `folioctl lists, reorders, deletes and repairs the records of a folio
portfolio database. Every write keeps sort_order dense (1..N).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.initConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	defaultCfg := ""
	if home, err := homedir.Dir(); err == nil {
		defaultCfg = filepath.Join(home, ConfigFileName+"."+ConfigFileExtension)
	}
	flags := root.PersistentFlags()
	flags.StringVar(&e.cfgFile, "config", defaultCfg, "config file (default is $HOME/.folio.yaml)")
	flags.String("db-mode", "local", "database mode: local, embedded or remote")
	flags.String("db-name", "folio", "database name")
	flags.String("db-path", "./data", "directory of the local database")
	flags.String("turso-url", "", "libsql url for remote mode")
	flags.String("turso-token", "", "auth token for remote mode")
	flags.String("log-level", "warn", "log level")
	for key, flag := range map[string]string{
		"database.mode":        "db-mode",
		"database.name":        "db-name",
		"database.path":        "db-path",
		"database.turso.url":   "turso-url",
		"database.turso.token": "turso-token",
		"logging.level":        "log-level",
	} {
		_ = e.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newListCmd(e),
		newReorderCmd(e),
		newDeleteCmd(e),
		newCheckCmd(e),
		newMigrateCmd(e),
		newHashPasswordCmd(),
		newVersionCmd(),
	)
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Fatalf("error executing root command: %s", err)
	}
}

func (e *env) initConfig() error {
	e.v.SetConfigType(ConfigFileExtension)
	e.v.SetEnvPrefix(EnvPrefix)
	e.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	e.v.AutomaticEnv()
	if e.cfgFile == "" {
		return nil
	}
	e.v.SetConfigFile(e.cfgFile)
	if err := e.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", e.cfgFile, err)
	}
	return nil
}

// config maps viper settings onto the server configuration.
func (e *env) config() *config.Config {
	cfg := config.Default()
	cfg.Database.Mode = e.v.GetString("database.mode")
	cfg.Database.Name = e.v.GetString("database.name")
	cfg.Database.Path = e.v.GetString("database.path")
	cfg.Database.Turso.URL = e.v.GetString("database.turso.url")
	cfg.Database.Turso.Token = e.v.GetString("database.turso.token")
	cfg.Logging.Level = e.v.GetString("logging.level")
	return cfg
}

func (e *env) logger() *slog.Logger {
	return e.config().Logger()
}

// open returns the database and engines for the configured mode.
func (e *env) open(ctx context.Context) (*sql.DB, *sorder.Engines, func(), error) {
	cfg := e.config()
	db, closeDB, err := serverrun.OpenDB(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	engines := sorder.New(db,
		movable.WithLogger(cfg.Logger()),
		movable.WithRecorder(metrics.StoreRecorder{}),
	)
	return db, engines, closeDB, nil
}
