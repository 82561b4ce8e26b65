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

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.Retry.MaxRetries)
	assert.Equal(t, time.Second, cfg.API.Retry.BaseDelay)
	assert.False(t, cfg.API.Retry.RetryNonIdempotent)
	assert.Equal(t, 30, cfg.Store.PageSize)
	assert.Equal(t, 200*time.Millisecond, cfg.Store.SearchDebounce)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  base_url: https://admin.example.com
  retry:
    max_retries: 5
    base_delay: 10ms
store:
  page_size: 50
auth:
  token_store: memory
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://admin.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.Retry.MaxRetries)
	assert.Equal(t, 10*time.Millisecond, cfg.API.Retry.BaseDelay)
	assert.Equal(t, 50, cfg.Store.PageSize)
	assert.Equal(t, "memory", cfg.Auth.TokenStore)
	// untouched keys keep their defaults
	assert.Equal(t, 200*time.Millisecond, cfg.Store.SearchDebounce)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BACKOFFICE_API_BASE_URL", "https://env.example.com")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  env: staging\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, "staging", cfg.App.Env)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = " "
	cfg.API.Retry.MaxRetries = -1
	cfg.Store.PageSize = 0
	cfg.Auth.TokenStore = "redis"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url is required")
	assert.Contains(t, err.Error(), "max_retries must not be negative")
	assert.Contains(t, err.Error(), "page_size must be positive")
	assert.Contains(t, err.Error(), `unknown auth.token_store "redis"`)
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Env = "production"
	assert.True(t, cfg.IsProduction())
}
