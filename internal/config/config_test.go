package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DB_DRIVER", "CHAT_HISTORY_LIMIT", "OPENAI_API_KEY", "UPLOAD_MAX_BYTES", "SESSION_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, DriverNone, cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Chat.HistoryLimit)
	assert.Equal(t, 24*time.Hour, cfg.Chat.SessionTTL)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.False(t, cfg.Analyzer.Enabled)
	assert.Equal(t, "0.0.0.0:5000", cfg.Address())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/farm.db")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("ANALYZER_STUB_DELAY", "0s")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_API_BASE", "http://localhost:9999/v1/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/farm.db", cfg.Database.SQLitePath)
	assert.Equal(t, 90*time.Minute, cfg.Chat.SessionTTL)
	assert.Equal(t, time.Duration(0), cfg.Analyzer.StubDelay)
	assert.True(t, cfg.Analyzer.Enabled)
	assert.Equal(t, "http://localhost:9999/v1", cfg.Analyzer.APIBase)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CHAT_HISTORY_LIMIT", "many")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Chat.HistoryLimit)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 5000},
			Database: DatabaseConfig{Driver: DriverNone},
			Chat:     ChatConfig{HistoryLimit: 5, SessionCacheSize: 10},
			Upload:   UploadConfig{MaxBytes: 1024},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"sqlite path", func(c *Config) { c.Database.Driver = DriverSQLite }},
		{"history", func(c *Config) { c.Chat.HistoryLimit = -1 }},
		{"cache size", func(c *Config) { c.Chat.SessionCacheSize = 0 }},
		{"upload", func(c *Config) { c.Upload.MaxBytes = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetPostgreSQLDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: 5433, User: "farm", Password: "pw", Database: "agent", SSLMode: "disable"}}
	assert.Equal(t, "host=db port=5433 user=farm password=pw dbname=agent sslmode=disable", cfg.GetPostgreSQLDSN())

	cfg.Database.DSN = "postgres://farm@db/agent"
	assert.Equal(t, "postgres://farm@db/agent", cfg.GetPostgreSQLDSN())
}
