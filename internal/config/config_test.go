package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "bolt", cfg.Storage.Backend)
	assert.Equal(t, "darts.db", cfg.Storage.Bolt.Path)
	assert.Equal(t, 5, cfg.Ladder.HistorySize)
	assert.Equal(t, "change-me", cfg.Ladder.ResetPassphrase)
}

func TestLoadExpandsEnvAndAppliesDefaults(t *testing.T) {
	t.Setenv("DARTS_RESET_PASSPHRASE", "triple-twenty")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
  read_timeout: 2s
storage:
  backend: redis
  redis:
    addr: "redis:6379"
ladder:
  reset_passphrase: "${DARTS_RESET_PASSPHRASE}"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout, "default applied")
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "redis:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, "triple-twenty", cfg.Ladder.ResetPassphrase)
	assert.Equal(t, 5, cfg.Ladder.HistorySize, "default applied")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPostgresConnectionString(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db",
		Port:     5432,
		User:     "darts",
		Password: "secret",
		Database: "ladder",
	}
	assert.Equal(t, "postgres://darts:secret@db:5432/ladder?sslmode=disable", cfg.ConnectionString())
}
