package conf

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNotificationsConfig_PartialOverride(t *testing.T) {
	path := writeYAML(t, `
notifications:
  title: "Code from {sender}"
  body: "{code} is on your clipboard"
`)

	cfg, err := LoadNotificationsConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Code from {sender}", cfg.Title)
	assert.Equal(t, "{code} is on your clipboard", cfg.Body)
	// Unset fields keep their defaults
	assert.Equal(t, "Teleport", cfg.AppName)
	assert.Equal(t, "Teleport", cfg.HiddenTitle)
	assert.Equal(t, "Authentication code copied to clipboard", cfg.HiddenBody)
}

func TestLoadNotificationsConfig_InvalidYAML(t *testing.T) {
	path := writeYAML(t, "notifications: [unclosed\n")

	_, err := LoadNotificationsConfig(path)
	assert.Error(t, err)
}

func TestLoadNotificationsConfig_ExplicitPathMissing(t *testing.T) {
	_, err := LoadNotificationsConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNotificationsConfig_ToNotificationTextsNil(t *testing.T) {
	var cfg *NotificationsConfig
	texts := cfg.ToNotificationTexts()
	assert.Equal(t, "{sender} via Teleport", texts.Title)
}
