package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	foliodb "github.com/the-dev-tools/folio/db"
)

var (
	ErrMissingJWTSecret    = errors.New("config: jwt secret is required")
	ErrMissingPasswordHash = errors.New("config: admin password hash is required")
	ErrInvalidDBMode       = errors.New("config: invalid database mode")
	ErrInvalidLogFormat    = errors.New("config: log format must be text or json")
	ErrInvalidProxy        = errors.New("config: trusted proxy must be an IP or CIDR")
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
		Port    int    `yaml:"port"`
		// Origins allowed by CORS. Empty allows every origin.
		AllowedOrigins []string `yaml:"allowed_origins"`
		// Proxies (IPs or CIDRs) whose X-Forwarded-For is believed.
		TrustedProxies []string `yaml:"trusted_proxies"`
	} `yaml:"server"`
	Database struct {
		Mode string `yaml:"mode"` // local (file)|embedded (memory)|remote
		Name string `yaml:"name"`
		Path string `yaml:"path"`
		// DensityCheck verifies 1..N inside every delete, commit and compact.
		DensityCheck *bool `yaml:"density_check"`
		Turso        struct {
			URL   string `yaml:"url"`
			Org   string `yaml:"org"`
			Token string `yaml:"token"`
		} `yaml:"turso"`
	} `yaml:"database"`
	Auth struct {
		AdminPasswordHash string        `yaml:"admin_password_hash"`
		JWTSecret         string        `yaml:"jwt_secret"`
		TokenTTL          time.Duration `yaml:"token_ttl"`
	} `yaml:"auth"`
	Reorder struct {
		SessionTTL time.Duration `yaml:"session_ttl"`
	} `yaml:"reorder"`
	Cache struct {
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Contact struct {
		RatePerMinute float64 `yaml:"rate_per_minute"`
		Burst         int     `yaml:"burst"`
	} `yaml:"contact"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // text|json
	} `yaml:"logging"`
}

// Default returns the configuration used when neither file nor env say otherwise.
func Default() *Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.Database.Mode = foliodb.LOCAL
	cfg.Database.Name = "folio"
	cfg.Database.Path = "./data"
	cfg.Auth.TokenTTL = 24 * time.Hour
	cfg.Reorder.SessionTTL = 30 * time.Minute
	cfg.Cache.TTL = time.Minute
	cfg.Contact.RatePerMinute = 3
	cfg.Contact.Burst = 3
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	return &cfg
}

// Addr returns host:port for the HTTP server.
func (c *Config) Addr() string {
	addr := c.Server.Address
	if addr == "" {
		addr = "0.0.0.0"
	}
	p := c.Server.Port
	if p == 0 {
		p = 8080
	}
	return net.JoinHostPort(addr, strconv.Itoa(p))
}

// DensityCheckEnabled defaults to true when unset.
func (c *Config) DensityCheckEnabled() bool {
	return c.Database.DensityCheck == nil || *c.Database.DensityCheck
}

// Load reads a YAML file over the defaults. A missing file is not an error
// when optional is set, so a deployment can run from env alone.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if optional {
				return cfg, nil
			}
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment. Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// LoadEnvOverrides applies FOLIO_* variables onto cfg and reports whether any were used.
func LoadEnvOverrides(cfg *Config) (bool, error) {
	envUsed := false
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
			envUsed = true
		}
	}
	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s: %w", key, err))
				return
			}
			*dst = d
			envUsed = true
		}
	}

	if v := os.Getenv("FOLIO_ADDR"); v != "" {
		envUsed = true
		if h, p, err := net.SplitHostPort(v); err == nil {
			cfg.Server.Address = h
			if pi, err := strconv.Atoi(p); err == nil {
				cfg.Server.Port = pi
			}
		} else {
			cfg.Server.Address = v
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		pi, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: PORT: %w", err))
		} else {
			cfg.Server.Port = pi
			envUsed = true
		}
	}
	if v := os.Getenv("FOLIO_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = parseList(v)
		envUsed = true
	}
	if v := os.Getenv("FOLIO_TRUSTED_PROXIES"); v != "" {
		cfg.Server.TrustedProxies = parseList(v)
		envUsed = true
	}

	str("DB_MODE", &cfg.Database.Mode)
	str("DB_NAME", &cfg.Database.Name)
	str("DB_PATH", &cfg.Database.Path)
	str("TURSO_URL", &cfg.Database.Turso.URL)
	str("TURSO_ORG", &cfg.Database.Turso.Org)
	str("TURSO_TOKEN", &cfg.Database.Turso.Token)
	if v := os.Getenv("FOLIO_DENSITY_CHECK"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: FOLIO_DENSITY_CHECK: %w", err))
		} else {
			cfg.Database.DensityCheck = &b
			envUsed = true
		}
	}

	str("FOLIO_ADMIN_PASSWORD_HASH", &cfg.Auth.AdminPasswordHash)
	str("HMAC_SECRET", &cfg.Auth.JWTSecret)
	dur("FOLIO_TOKEN_TTL", &cfg.Auth.TokenTTL)
	dur("FOLIO_SESSION_TTL", &cfg.Reorder.SessionTTL)
	dur("FOLIO_CACHE_TTL", &cfg.Cache.TTL)

	if v := os.Getenv("FOLIO_CONTACT_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: FOLIO_CONTACT_RATE: %w", err))
		} else {
			cfg.Contact.RatePerMinute = f
			envUsed = true
		}
	}

	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FORMAT", &cfg.Logging.Format)

	return envUsed, errors.Join(errs...)
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Mode {
	case foliodb.LOCAL, foliodb.EMBEDDED, foliodb.REMOTE:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDBMode, c.Database.Mode))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, ErrMissingJWTSecret)
	}
	if c.Auth.AdminPasswordHash == "" {
		errs = append(errs, ErrMissingPasswordHash)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, ErrInvalidLogFormat)
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TrustedProxyPrefixes parses server.trusted_proxies. A bare IP becomes a
// single address prefix.
func (c *Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.Server.TrustedProxies))
	for _, raw := range c.Server.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, raw)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, raw)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// Logger builds the process logger from the logging section.
func (c *Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(c.Logging.Level)}
	if strings.EqualFold(c.Logging.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseList(v string) []string {
	var parts []string
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}
