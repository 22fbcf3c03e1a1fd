package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "DB_DRIVER", "DB_PATH", "DB_DSN", "DB_MAX_OPEN_CONNS", "LOG_LEVEL", "LOG_FORMAT",
	"CORS_ALLOWED_ORIGINS", "CATALOG_CACHE_TTL", "REFERENCE_ALLOWED_DOMAINS", "REFERENCE_MAX_BYTES", "SEED_FIXTURE",
	"API_BASE_URL",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "swc.db", cfg.DB.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, int64(1500000), cfg.Reference.MaxBytes)
	assert.Empty(t, cfg.Reference.AllowedDomains)
	assert.Empty(t, cfg.APIBaseURL)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://swc.example.org")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("REFERENCE_ALLOWED_DOMAINS", "WOCAT.net,fao.org")
	t.Setenv("REFERENCE_MAX_BYTES", "2048")
	t.Setenv("API_BASE_URL", "http://localhost:3001")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/tmp/other.db", cfg.DB.Path)
	assert.Equal(t, []string{"http://localhost:3000", "https://swc.example.org"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	assert.Equal(t, []string{"wocat.net", "fao.org"}, cfg.Reference.AllowedDomains)
	assert.Equal(t, int64(2048), cfg.Reference.MaxBytes)
	assert.Equal(t, "http://localhost:3001", cfg.APIBaseURL)
}

func TestLoadRejectsBadDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "mysql")
	_, err := Load()
	assert.ErrorContains(t, err, "unknown DB_DRIVER")

	t.Setenv("DB_DRIVER", "postgres")
	_, err = Load()
	assert.ErrorContains(t, err, "DB_DSN is required")

	t.Setenv("DB_DSN", "host=localhost user=swc dbname=swc sslmode=disable")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DB.Driver)
}
