package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "API_HOST", "PROVIDER", "GITHUB_TOKEN", "DATABASE_URL", "BASE_URL",
		"TIMEZONE", "LOG_LEVEL", "LOG_FORMAT", "ALLOWED_ORIGINS", "CACHE_MAX_AGE"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
provider: github
timezone: Asia/Tokyo
cache_max_age: 10m
allowed_origins:
  - https://www.notion.so
`), 0o600))
	t.Setenv("PORT", "9100")
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, ProviderGitHub, cfg.Provider)
	assert.Equal(t, "Asia/Tokyo", cfg.Timezone)
	assert.Equal(t, 10*time.Minute, cfg.CacheMaxAge)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_CacheMaxAgeSeconds(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_MAX_AGE", "120")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.CacheMaxAge)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown provider", "PROVIDER", "gitlab"},
		{"github without token", "PROVIDER", "github"},
		{"bad max age", "CACHE_MAX_AGE", "soon"},
		{"negative max age", "CACHE_MAX_AGE", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unterminated"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}
