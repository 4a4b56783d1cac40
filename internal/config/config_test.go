package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  env: production
database:
  url: postgres://file
jwt:
  secret: from-file
admission:
  lock_timeout: 2s
  dispatch_workers: 4
notifications:
  kafka:
    brokers: ["k1:9092"]
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres://env", cfg.Database.DSN)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Second, cfg.Admission.LockTimeout)
	assert.Equal(t, 4, cfg.Admission.DispatchWorkers)
	assert.Equal(t, 256, cfg.Admission.DispatchBuffer)
	assert.True(t, cfg.KafkaEnabled())
	assert.False(t, cfg.EmailEnabled())
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_NegativeLockTimeout(t *testing.T) {
	var cfg Config
	cfg.Database.DSN = "x"
	cfg.JWT.Secret = "y"
	cfg.applyDefaults()
	cfg.Admission.LockTimeout = -time.Second

	assert.Error(t, cfg.Validate())
}
