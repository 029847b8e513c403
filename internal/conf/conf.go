package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration
type Config struct {
	// Message store being watched
	Store StoreConfig

	// Local state database (preferences)
	State StateConfig

	// Poll timing
	Poll PollConfig

	// Local control API
	API APIConfig

	// Optional system integrations
	WatchStore   bool // nudge polls on store file changes
	SleepSignals bool // stop on system sleep, restart on wake

	// Notification texts (loaded from YAML)
	Notifications *NotificationsConfig

	// Logging
	Log LogConfig

	// Debug mode
	Debug bool
}

// StoreConfig contains the message store location
type StoreConfig struct {
	Path string
}

// StateConfig contains the local state database location
type StateConfig struct {
	DBPath string
}

// PollConfig contains poll timing
type PollConfig struct {
	IntervalMs int
	LeewayMs   int
}

// APIConfig contains local API configuration
type APIConfig struct {
	Port int
}

// LogConfig contains logger configuration
type LogConfig struct {
	Level  string
	Format string
}

// Interval returns the poll period
func (c PollConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// Leeway returns the tolerated tick slack
func (c PollConfig) Leeway() time.Duration {
	return time.Duration(c.LeewayMs) * time.Millisecond
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	homeDir, _ := os.UserHomeDir()

	// Message store path
	storePath := os.Getenv("TELEPORT_STORE_PATH")
	if storePath == "" {
		storePath = filepath.Join(homeDir, "Library", "Messages", "chat.db")
	}

	// State DB path
	stateDBPath := os.Getenv("TELEPORT_STATE_DB_PATH")
	if stateDBPath == "" {
		stateDBPath = filepath.Join(homeDir, ".teleport", "state.db")
	}

	notifications, err := LoadNotificationsConfig(os.Getenv("TELEPORT_CONFIG_PATH"))
	if err != nil {
		return nil, &ConfigError{Field: "TELEPORT_CONFIG_PATH", Message: err.Error()}
	}

	debug := envBool("DEBUG", false)
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" && debug {
		logLevel = "debug"
	}

	return &Config{
		Store: StoreConfig{
			Path: expandHome(storePath, homeDir),
		},
		State: StateConfig{
			DBPath: expandHome(stateDBPath, homeDir),
		},
		Poll: PollConfig{
			IntervalMs: envInt("TELEPORT_POLL_INTERVAL_MS", 500),
			LeewayMs:   envInt("TELEPORT_POLL_LEEWAY_MS", 100),
		},
		API: APIConfig{
			Port: envInt("TELEPORT_API_PORT", 9876),
		},
		WatchStore:    envBool("TELEPORT_WATCH_STORE", true),
		SleepSignals:  envBool("TELEPORT_SLEEP_SIGNALS", true),
		Notifications: notifications,
		Log: LogConfig{
			Level:  logLevel,
			Format: os.Getenv("LOG_FORMAT"),
		},
		Debug: debug,
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return &ConfigError{Field: "TELEPORT_STORE_PATH", Message: "required"}
	}
	if c.State.DBPath == "" {
		return &ConfigError{Field: "TELEPORT_STATE_DB_PATH", Message: "required"}
	}
	if c.Poll.IntervalMs <= 0 {
		return &ConfigError{Field: "TELEPORT_POLL_INTERVAL_MS", Message: "must be positive"}
	}
	if c.Poll.LeewayMs < 0 || c.Poll.LeewayMs >= c.Poll.IntervalMs {
		return &ConfigError{Field: "TELEPORT_POLL_LEEWAY_MS", Message: "must be between 0 and the poll interval"}
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		return &ConfigError{Field: "TELEPORT_API_PORT", Message: "out of range"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func envInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return def
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
