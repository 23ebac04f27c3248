package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "local", cfg.User.ID)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Retry.InitialInterval)
	assert.Equal(t, 256, cfg.Cache.Size)
	assert.Equal(t, "aionboard.db", filepath.Base(cfg.DB.Path))
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aionboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  path: /tmp/onboard.db
user:
  id: ada
http:
  addr: ":9090"
  cors_origins: ["https://app.example.com"]
auth:
  jwt_secret: s3cret
  token_ttl: 2h
retry:
  max_attempts: 5
  initial_interval: 50ms
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/onboard.db", cfg.DB.Path)
	assert.Equal(t, "ada", cfg.User.ID)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.Retry.InitialInterval)
	assert.Equal(t, 256, cfg.Cache.Size, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aionboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("user:\n  id: from-file\n"), 0o644))

	t.Setenv("AIONBOARD_USER_ID", "from-env")
	t.Setenv("AIONBOARD_CACHE_SIZE", "16")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.User.ID)
	assert.Equal(t, 16, cfg.Cache.Size)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aionboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retry:\n  max_attempts: 0\nuser:\n  id: \"\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retry.max_attempts")
	assert.Contains(t, err.Error(), "user.id")
}
