package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/pkg/logger"
)

// NotificationsConfig contains notification texts loaded from YAML.
// "{sender}" and "{code}" are substituted at delivery.
type NotificationsConfig struct {
	AppName     string `yaml:"app_name"`
	Title       string `yaml:"title"`
	HiddenTitle string `yaml:"hidden_title"`
	Body        string `yaml:"body"`
	HiddenBody  string `yaml:"hidden_body"`
}

// fileConfig is the layout of teleport.yaml
type fileConfig struct {
	Notifications NotificationsConfig `yaml:"notifications"`
}

// LoadNotificationsConfig loads notification texts from a YAML file
func LoadNotificationsConfig(configPath string) (*NotificationsConfig, error) {
	// Try multiple paths
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/teleport.yaml",
			"/etc/teleport/teleport.yaml",
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(homeDir, ".teleport", "teleport.yaml"))
		}
		// Add path relative to executable
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "teleport.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err == nil {
			data, loadedPath = b, p
			break
		}
	}

	if data == nil {
		if configPath != "" {
			return nil, fmt.Errorf("config file %s not found", configPath)
		}
		logger.Named("Config").Debug().Msg("no teleport.yaml found, using defaults")
		return DefaultNotificationsConfig(), nil
	}

	logger.Named("Config").Debug().Str("path", loadedPath).Msg("loading notification texts")

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", loadedPath, err)
	}

	cfg := fc.Notifications
	cfg.fillDefaults()
	return &cfg, nil
}

// DefaultNotificationsConfig returns the built-in notification texts
func DefaultNotificationsConfig() *NotificationsConfig {
	d := domain.DefaultNotificationTexts
	return &NotificationsConfig{
		AppName:     d.AppName,
		Title:       d.Title,
		HiddenTitle: d.HiddenTitle,
		Body:        d.Body,
		HiddenBody:  d.HiddenBody,
	}
}

// fillDefaults fills in default values for empty fields
func (c *NotificationsConfig) fillDefaults() {
	defaults := DefaultNotificationsConfig()

	if c.AppName == "" {
		c.AppName = defaults.AppName
	}
	if c.Title == "" {
		c.Title = defaults.Title
	}
	if c.HiddenTitle == "" {
		c.HiddenTitle = defaults.HiddenTitle
	}
	if c.Body == "" {
		c.Body = defaults.Body
	}
	if c.HiddenBody == "" {
		c.HiddenBody = defaults.HiddenBody
	}
}

// ToNotificationTexts converts to domain notification texts
func (c *NotificationsConfig) ToNotificationTexts() domain.NotificationTexts {
	if c == nil {
		return domain.DefaultNotificationTexts
	}
	return domain.NotificationTexts{
		AppName:     c.AppName,
		Title:       c.Title,
		HiddenTitle: c.HiddenTitle,
		Body:        c.Body,
		HiddenBody:  c.HiddenBody,
	}
}
