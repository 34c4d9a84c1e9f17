package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SESSION_SECRET", strings.Repeat("s", 40))
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", ":memory:")
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SeedOnBoot)
	assert.Equal(t, []string{"openid", "email", "profile"}, cfg.OIDCScopes)
	assert.Equal(t, "production", cfg.LogMode)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.OIDCEnabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("BASE_URL", "https://edutax.example/")
	t.Setenv("SESSION_TTL", "12h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://edutax.example, https://admin.edutax.example")
	t.Setenv("OIDC_ISSUER_URL", "https://id.example")
	t.Setenv("OIDC_CLIENT_ID", "edutax-web")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "https://edutax.example/api/callback", cfg.OIDCRedirectURL())
	assert.Equal(t, []string{"https://edutax.example", "https://admin.edutax.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.OIDCEnabled())
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Config{Port: 0, DBDriver: "mysql", BaseURL: "::", OIDCIssuerURL: "https://id.example", SessionTTL: time.Hour}

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"PORT", "SESSION_SECRET", "DB_DRIVER", "BASE_URL", "OIDC_CLIENT_ID"} {
		assert.Contains(t, msg, want)
	}
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", MaskSecret(""))
	assert.Equal(t, "****", MaskSecret("short"))
	assert.Equal(t, "po****db", MaskSecret("postgres://u:p@h/db"))
}

func TestLogModeFollowsEnvironment(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LOG_MODE", "")

	for env, want := range map[string]string{
		"production":  "production",
		"staging":     "development",
		"test":        "development",
		"development": "development",
	} {
		t.Setenv("ENVIRONMENT", env)
		cfg, err := LoadConfig()
		require.NoError(t, err, env)
		assert.Equal(t, want, cfg.LogMode, env)
	}

	t.Setenv("LOG_MODE", "test")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.LogMode)
}
