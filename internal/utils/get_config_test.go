package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_PORT", "APP_ENV", "LOG_LEVEL", "ACCESS_LOG_PATH", "RATE_LIMIT_MAX",
	"DB_USER", "DB_NAME", "DB_PASSWORD", "DB_PORT", "DB_HOST", "DB_SSL_MODE",
	"DB_MAX_IDLE_CONNS", "DB_MAX_OPEN_CONNS", "DB_CONN_MAX_LIFETIME", "DB_LOG_LEVEL",
	"JWT_SECRET", "JWT_TTL", "BCRYPT_COST",
	"RECIPES_SOURCE_URL", "RECIPES_SOURCE_TIMEOUT",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		if v, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { _ = os.Setenv(key, v) })
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, DefaultRecipesSourceURL, cfg.RecipesSourceURL)
	assert.Equal(t, 30*time.Second, cfg.RecipesSourceTimeout)
	assert.Equal(t, 10, cfg.RateLimitMax)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
APP_PORT: "9000"
APP_ENV: production
DB_HOST: db.internal
DB_NAME: catalog
JWT_SECRET: file-secret
JWT_TTL: 2h
BCRYPT_COST: 10
RECIPES_SOURCE_URL: http://upstream.local/recipes
`)
	clearEnv(t)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("RECIPES_SOURCE_TIMEOUT", "5s")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.AppPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "http://upstream.local/recipes", cfg.RecipesSourceURL)
	assert.Equal(t, 5*time.Second, cfg.RecipesSourceTimeout)
	assert.Equal(t, "host=db.internal user=postgres password= dbname=catalog port=6543 sslmode=disable", cfg.DSN())
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	_, err := LoadConfig(writeConfig(t, "APP_PORT: [unterminated"))
	assert.Error(t, err)
}
