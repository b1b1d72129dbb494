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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.Equal(t, "cookie", cfg.Session.Store)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.False(t, cfg.IsRelease())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  gin_mode: release
  allowed_origins: ["https://a.example"]
database:
  driver: mysql
  host: db.internal
  port: 3306
  name: tracker
session:
  store: redis
  redis_host: cache
log:
  level: debug
`)
	t.Setenv("DB_HOST", "override.internal")
	t.Setenv("ALLOWED_ORIGINS", "https://x.example, https://y.example")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.IsRelease())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.Equal(t, "tracker", cfg.Database.Name)
	assert.Equal(t, []string{"https://x.example", "https://y.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
	assert.Equal(t, int64(1024), cfg.Storage.MaxUploadBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestValidate_SessionStore(t *testing.T) {
	cfg := Default()
	cfg.Session.Store = "memcached"
	assert.Error(t, cfg.Validate())
}
