package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/edutax/edutax-backend/internal/data/db"
)

const minSessionSecretLen = 32

type Config struct {
	Port           int    `envconfig:"PORT" default:"5000"`
	Environment    string `envconfig:"ENVIRONMENT" default:"development"`
	LogMode        string `envconfig:"LOG_MODE"`
	BaseURL        string `envconfig:"BASE_URL" default:"http://localhost:5000"`
	ServiceVersion string `envconfig:"SERVICE_VERSION" default:"dev"`

	DBDriver         string `envconfig:"DB_DRIVER" default:"postgres"`
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD"`
	PostgresName     string `envconfig:"POSTGRES_NAME" default:"edutax"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	SQLitePath       string `envconfig:"SQLITE_PATH" default:"edutax.db"`

	SessionSecret string        `envconfig:"SESSION_SECRET"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"168h"`

	OIDCIssuerURL    string   `envconfig:"OIDC_ISSUER_URL"`
	OIDCClientID     string   `envconfig:"OIDC_CLIENT_ID"`
	OIDCClientSecret string   `envconfig:"OIDC_CLIENT_SECRET"`
	OIDCScopes       []string `envconfig:"OIDC_SCOPES" default:"openid,email,profile"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	SeedOnBoot      bool   `envconfig:"SEED_ON_BOOT" default:"true"`
	SeedCatalogPath string `envconfig:"SEED_CATALOG_PATH"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`

	OtelEnabled     bool    `envconfig:"OTEL_ENABLED" default:"false"`
	OtelEndpoint    string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelHeaders     string  `envconfig:"OTEL_EXPORTER_OTLP_HEADERS"`
	OtelInsecure    bool    `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"false"`
	OtelSampleRatio float64 `envconfig:"OTEL_SAMPLER_RATIO" default:"0.1"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

// LoadConfig reads .env (outside production) and then the process environment.
// Variables already set in the environment win over .env entries.
func LoadConfig() (Config, error) {
	if !strings.EqualFold(os.Getenv("ENVIRONMENT"), "production") {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	// Only an explicit LOG_MODE can silence the logger; ENVIRONMENT never does.
	if c.LogMode == "" {
		c.LogMode = "development"
		if c.IsProduction() {
			c.LogMode = "production"
		}
	}
	c.OIDCScopes = trimAll(c.OIDCScopes)
	c.CORSAllowedOrigins = trimAll(c.CORSAllowedOrigins)
}

func trimAll(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}
	if len(c.SessionSecret) < minSessionSecretLen {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d characters", minSessionSecretLen))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	switch c.DBDriver {
	case db.DriverPostgres:
		if c.DatabaseURL == "" && c.PostgresHost == "" {
			errs = append(errs, errors.New("DATABASE_URL or POSTGRES_HOST is required for postgres"))
		}
	case db.DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not one of postgres, sqlite", c.DBDriver))
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("BASE_URL: %w", err))
	}
	if c.OIDCIssuerURL != "" && c.OIDCClientID == "" {
		errs = append(errs, errors.New("OIDC_CLIENT_ID is required when OIDC_ISSUER_URL is set"))
	}
	return errors.Join(errs...)
}

func (c Config) IsProduction() bool { return c.Environment == "production" }

func (c Config) OIDCEnabled() bool { return c.OIDCIssuerURL != "" }

func (c Config) OIDCRedirectURL() string { return c.BaseURL + "/api/callback" }

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func (c Config) DBConfig() db.Config {
	return db.Config{
		Driver:     c.DBDriver,
		DSN:        c.DatabaseURL,
		Host:       c.PostgresHost,
		Port:       c.PostgresPort,
		User:       c.PostgresUser,
		Password:   c.PostgresPassword,
		Name:       c.PostgresName,
		SSLMode:    c.PostgresSSLMode,
		SQLitePath: c.SQLitePath,

		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

// LogFields is the config as key/value pairs with secrets masked.
func (c Config) LogFields() []interface{} {
	return []interface{}{
		"port", c.Port,
		"environment", c.Environment,
		"base_url", c.BaseURL,
		"db_driver", c.DBDriver,
		"database_url", MaskSecret(c.DatabaseURL),
		"postgres_host", c.PostgresHost,
		"session_ttl", c.SessionTTL.String(),
		"oidc_issuer", c.OIDCIssuerURL,
		"oidc_client", MaskSecret(c.OIDCClientID),
		"redis_addr", c.RedisAddr,
		"seed_on_boot", c.SeedOnBoot,
		"seed_catalog_path", c.SeedCatalogPath,
		"otel_enabled", c.OtelEnabled,
	}
}

// MaskSecret keeps the first and last two characters of longer values.
func MaskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 8:
		return "****"
	default:
		return s[:2] + "****" + s[len(s)-2:]
	}
}
