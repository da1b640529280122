package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost:8090", cfg.Server.Address)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.True(t, cfg.Store.CacheEnabled)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 100, cfg.RateLimit.Rate)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server": {"address": ":9000"},
		"backend": {"base_url": "https://backend.example.com"},
		"store": {"backend": "sqlite", "sqlite_path": "/tmp/cache.db", "cache_enabled": true}
	}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, "https://backend.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/tmp/cache.db", cfg.Store.SQLitePath)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"backend": {"base_url": "https://file.example.com"}}`), 0o600))

	t.Setenv("BACKEND_URL", "https://env.example.com")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("STORE_REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_ENABLED", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "localhost:6379", cfg.Store.RedisAddr)
	assert.False(t, cfg.Store.CacheEnabled)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.json")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Address: ":8090"},
			Backend: BackendConfig{BaseURL: "https://backend.example.com"},
			Store:   StoreConfig{Backend: "memory"},
		}
	}

	assert.NoError(t, valid().Validate())

	noBackend := valid()
	noBackend.Backend.BaseURL = ""
	assert.Error(t, noBackend.Validate())

	badStore := valid()
	badStore.Store.Backend = "etcd"
	assert.Error(t, badStore.Validate())

	sqliteNoPath := valid()
	sqliteNoPath.Store.Backend = "sqlite"
	assert.Error(t, sqliteNoPath.Validate())

	redisNoAddr := valid()
	redisNoAddr.Store.Backend = "redis"
	assert.Error(t, redisNoAddr.Validate())

	badRate := valid()
	badRate.RateLimit = RateLimitConfig{Enabled: true, Rate: 0, Window: 60}
	assert.Error(t, badRate.Validate())
}
