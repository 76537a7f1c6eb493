package config

import (
	"log/slog"
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	foliodb "github.com/the-dev-tools/folio/db"
)

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	data := `
server:
  port: 9090
database:
  mode: remote
  density_check: false
  turso:
    url: libsql://folio-me.turso.io
reorder:
  session_ttl: 5m
logging:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path, false)
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, foliodb.REMOTE, cfg.Database.Mode)
	require.Equal(t, "libsql://folio-me.turso.io", cfg.Database.Turso.URL)
	require.False(t, cfg.DensityCheckEnabled())
	require.Equal(t, 5*time.Minute, cfg.Reorder.SessionTTL)
	require.Equal(t, "json", cfg.Logging.Format)

	// untouched keys keep their defaults
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, "folio", cfg.Database.Name)
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := Load(missing, false)
	require.Error(t, err)

	cfg, err := Load(missing, true)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [port"), 0o600))

	_, err := Load(path, false)
	require.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_ADDR", "127.0.0.1:7000")
	t.Setenv("PORT", "")
	t.Setenv("DB_MODE", foliodb.EMBEDDED)
	t.Setenv("HMAC_SECRET", "s3cret")
	t.Setenv("FOLIO_SESSION_TTL", "90s")
	t.Setenv("FOLIO_DENSITY_CHECK", "false")
	t.Setenv("FOLIO_ALLOWED_ORIGINS", "https://a.dev, https://b.dev")
	t.Setenv("FOLIO_TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")

	cfg := Default()
	used, err := LoadEnvOverrides(cfg)
	require.NoError(t, err)
	require.True(t, used)
	require.Equal(t, "127.0.0.1:7000", cfg.Addr())
	require.Equal(t, foliodb.EMBEDDED, cfg.Database.Mode)
	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	require.Equal(t, 90*time.Second, cfg.Reorder.SessionTTL)
	require.False(t, cfg.DensityCheckEnabled())
	require.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.Server.AllowedOrigins)
	require.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.Server.TrustedProxies)
}

func TestTrustedProxyPrefixes(t *testing.T) {
	cfg := Default()
	prefixes, err := cfg.TrustedProxyPrefixes()
	require.NoError(t, err)
	require.Empty(t, prefixes)

	cfg.Server.TrustedProxies = []string{"10.1.2.3/8", "127.0.0.1", "::1"}
	prefixes, err = cfg.TrustedProxyPrefixes()
	require.NoError(t, err)
	require.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("127.0.0.1/32"),
		netip.MustParsePrefix("::1/128"),
	}, prefixes)

	cfg.Auth.JWTSecret = "x"
	cfg.Auth.AdminPasswordHash = "$2a$10$hash"
	cfg.Server.TrustedProxies = []string{"proxy.internal"}
	require.ErrorIs(t, cfg.Validate(), ErrInvalidProxy)
}

func TestLoadEnvOverridesReportsBadValues(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("FOLIO_CACHE_TTL", "forever")

	cfg := Default()
	_, err := LoadEnvOverrides(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "PORT")
	require.Contains(t, err.Error(), "FOLIO_CACHE_TTL")
	require.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FOLIO_DOTENV_PROBE=loaded\n"), 0o600))
	t.Setenv("FOLIO_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("FOLIO_DOTENV_PROBE"))

	LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))
	require.Equal(t, "loaded", os.Getenv("FOLIO_DOTENV_PROBE"))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrMissingJWTSecret)
	require.ErrorIs(t, err, ErrMissingPasswordHash)

	cfg.Auth.JWTSecret = "x"
	cfg.Auth.AdminPasswordHash = "$2a$10$hash"
	require.NoError(t, cfg.Validate())

	cfg.Database.Mode = "cloud"
	require.ErrorIs(t, cfg.Validate(), ErrInvalidDBMode)

	cfg.Database.Mode = foliodb.LOCAL
	cfg.Logging.Format = "xml"
	require.ErrorIs(t, cfg.Validate(), ErrInvalidLogFormat)
}

func TestAddrDefaults(t *testing.T) {
	var cfg Config
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, ParseLevel(in), in)
	}
}
