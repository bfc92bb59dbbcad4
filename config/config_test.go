package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 1024, cfg.Cache.MaxEntries)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.AdminEnabled())
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FOLIO_CACHE_TTL", "2m")
	t.Setenv("FOLIO_APP_ADMIN_PASSWORD", "hunter2")

	cfg, err := LoadWith(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.AdminEnabled())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Type: "memory"},
			Cache:    CacheConfig{Enabled: true, Backend: "memory", TTL: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown database", func(c *Config) { c.Database.Type = "mongo" }, true},
		{"postgres without url", func(c *Config) { c.Database.Type = "postgres" }, true},
		{"unknown cache backend", func(c *Config) { c.Cache.Backend = "memcached" }, true},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }, true},
		{"zero ttl with cache disabled", func(c *Config) { c.Cache.TTL = 0; c.Cache.Enabled = false }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Type:     "sqlite",
		SQLite:   SQLiteConfig{Path: "./data/folio.db"},
		Postgres: PostgresConfig{URL: "postgres://localhost/folio"},
	}}
	assert.Equal(t, "./data/folio.db", cfg.GetDatabaseURL())

	cfg.Database.Type = "postgres"
	assert.Equal(t, "postgres://localhost/folio", cfg.GetDatabaseURL())

	cfg.Database.Type = "memory"
	assert.Empty(t, cfg.GetDatabaseURL())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
