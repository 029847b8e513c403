package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devricklin/teleport/internal/biz/domain"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teleport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TELEPORT_CONFIG_PATH", writeYAML(t, "notifications: {}\n"))
	for _, key := range []string{
		"TELEPORT_STORE_PATH", "TELEPORT_STATE_DB_PATH", "TELEPORT_POLL_INTERVAL_MS",
		"TELEPORT_POLL_LEEWAY_MS", "TELEPORT_API_PORT", "TELEPORT_WATCH_STORE",
		"TELEPORT_SLEEP_SIGNALS", "LOG_LEVEL", "LOG_FORMAT", "DEBUG",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Library", "Messages", "chat.db"), cfg.Store.Path)
	assert.Equal(t, filepath.Join(home, ".teleport", "state.db"), cfg.State.DBPath)
	assert.Equal(t, 500*time.Millisecond, cfg.Poll.Interval())
	assert.Equal(t, 100*time.Millisecond, cfg.Poll.Leeway())
	assert.Equal(t, 9876, cfg.API.Port)
	assert.True(t, cfg.WatchStore)
	assert.True(t, cfg.SleepSignals)
	assert.False(t, cfg.Debug)
	assert.Equal(t, domain.DefaultNotificationTexts, cfg.Notifications.ToNotificationTexts())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TELEPORT_CONFIG_PATH", writeYAML(t, "notifications: {}\n"))
	t.Setenv("TELEPORT_STORE_PATH", "~/fixtures/chat.db")
	t.Setenv("TELEPORT_STATE_DB_PATH", "/tmp/teleport-state.db")
	t.Setenv("TELEPORT_POLL_INTERVAL_MS", "250")
	t.Setenv("TELEPORT_POLL_LEEWAY_MS", "50")
	t.Setenv("TELEPORT_API_PORT", "0")
	t.Setenv("TELEPORT_WATCH_STORE", "false")
	t.Setenv("TELEPORT_SLEEP_SIGNALS", "0")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "true")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "fixtures", "chat.db"), cfg.Store.Path)
	assert.Equal(t, "/tmp/teleport-state.db", cfg.State.DBPath)
	assert.Equal(t, 250, cfg.Poll.IntervalMs)
	assert.Equal(t, 50, cfg.Poll.LeewayMs)
	assert.Equal(t, 0, cfg.API.Port)
	assert.False(t, cfg.WatchStore)
	assert.False(t, cfg.SleepSignals)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromEnv_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("TELEPORT_CONFIG_PATH", writeYAML(t, "notifications: {}\n"))
	t.Setenv("TELEPORT_POLL_INTERVAL_MS", "fast")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Poll.IntervalMs)
}

func TestLoadFromEnv_MissingConfigFile(t *testing.T) {
	t.Setenv("TELEPORT_CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadFromEnv()

	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "TELEPORT_CONFIG_PATH", cerr.Field)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Store: StoreConfig{Path: "chat.db"},
			State: StateConfig{DBPath: "state.db"},
			Poll:  PollConfig{IntervalMs: 500, LeewayMs: 100},
			API:   APIConfig{Port: 9876},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"valid", func(c *Config) {}, ""},
		{"no store", func(c *Config) { c.Store.Path = "" }, "TELEPORT_STORE_PATH"},
		{"no state db", func(c *Config) { c.State.DBPath = "" }, "TELEPORT_STATE_DB_PATH"},
		{"zero interval", func(c *Config) { c.Poll.IntervalMs = 0 }, "TELEPORT_POLL_INTERVAL_MS"},
		{"negative leeway", func(c *Config) { c.Poll.LeewayMs = -1 }, "TELEPORT_POLL_LEEWAY_MS"},
		{"leeway above interval", func(c *Config) { c.Poll.LeewayMs = 500 }, "TELEPORT_POLL_LEEWAY_MS"},
		{"bad port", func(c *Config) { c.API.Port = 70000 }, "TELEPORT_API_PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}
