package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaultsAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "backoffice"
dbname = "travel"
password = "from-file"

[auth]
jwt_secret = "file-secret"
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 3, cfg.Import.PaymentRetryCount)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Contains(t, cfg.Database.DSN(), "dbname=travel")
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "backoffice"
dbname = "travel"
`)
	t.Setenv("JWT_SECRET", "")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, ErrReadConfig)
}
