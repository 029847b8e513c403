package cli

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devricklin/teleport/internal/api"
	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/service"
)

type fakeWatch struct {
	running bool
	paused  bool
}

func (f *fakeWatch) Status(ctx context.Context) service.Status {
	return service.Status{Running: f.running, Paused: f.paused, StorePath: "/tmp/chat.db", WatermarkMs: 7}
}

func (f *fakeWatch) Toggle(ctx context.Context) (bool, error) {
	f.running = !f.running
	return f.running, nil
}

func (f *fakeWatch) Pause(ctx context.Context) error {
	f.running, f.paused = false, true
	return nil
}

func (f *fakeWatch) Resume(ctx context.Context) error {
	f.running, f.paused = true, false
	return nil
}

type fakePrefs struct {
	prefs domain.Preferences
}

func (f *fakePrefs) Load(ctx context.Context) (domain.Preferences, error) { return f.prefs, nil }

func (f *fakePrefs) Set(ctx context.Context, name string, value bool) (domain.Preferences, error) {
	flag, err := domain.ParsePreferenceFlag(name)
	if err != nil {
		return domain.Preferences{}, err
	}
	f.prefs = f.prefs.With(flag, value)
	return f.prefs, nil
}

func (f *fakePrefs) Reset(ctx context.Context) (domain.Preferences, error) {
	f.prefs = domain.Preferences{}
	return f.prefs, nil
}

func startDaemon(t *testing.T) (*httptest.Server, *fakeWatch, *fakePrefs) {
	t.Helper()
	watch := &fakeWatch{}
	prefs := &fakePrefs{}
	ts := httptest.NewServer(api.NewServer(watch, prefs, 0).Handler())
	t.Cleanup(ts.Close)
	return ts, watch, prefs
}

func TestControlCommands(t *testing.T) {
	ts, watch, _ := startDaemon(t)

	out, err := execute(t, "--api-url", ts.URL, "toggle")
	require.NoError(t, err)
	assert.Contains(t, out, "state:      watching")
	assert.True(t, watch.running)

	out, err = execute(t, "--api-url", ts.URL, "pause")
	require.NoError(t, err)
	assert.Contains(t, out, "state:      paused")

	out, err = execute(t, "--api-url", ts.URL, "resume")
	require.NoError(t, err)
	assert.Contains(t, out, "state:      watching")

	out, err = execute(t, "--api-url", ts.URL, "--format", "json", "status")
	require.NoError(t, err)
	var st service.Status
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.True(t, st.Running)
	assert.Equal(t, int64(7), st.WatermarkMs)
}

func TestControlCommands_DaemonDown(t *testing.T) {
	ts, _, _ := startDaemon(t)
	url := ts.URL
	ts.Close()

	_, err := execute(t, "--api-url", url, "status")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestPrefsCommands_API(t *testing.T) {
	ts, _, prefs := startDaemon(t)

	out, err := execute(t, "--api-url", ts.URL, "prefs", "set", "hideAuthCode", "true")
	require.NoError(t, err)
	assert.Contains(t, out, "hideAuthCode")
	assert.True(t, prefs.prefs.HideAuthCode)

	_, err = execute(t, "--api-url", ts.URL, "prefs", "reset")
	require.NoError(t, err)
	assert.False(t, prefs.prefs.HideAuthCode)
}

func TestPrefsCommands_InvalidArgs(t *testing.T) {
	_, err := execute(t, "--api-url", "http://127.0.0.1:1", "prefs", "set", "volume", "true")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, "--api-url", "http://127.0.0.1:1", "prefs", "set", "hideAuthCode", "maybe")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestPrefsCommands_Local(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "teleport.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("notifications: {}\n"), 0o644))
	t.Setenv("TELEPORT_CONFIG_PATH", cfgPath)
	t.Setenv("TELEPORT_STATE_DB_PATH", filepath.Join(dir, "state.db"))
	t.Setenv("TELEPORT_STORE_PATH", filepath.Join(dir, "chat.db"))

	_, err := execute(t, "prefs", "--local", "set", "hideSenderID", "true")
	require.NoError(t, err)

	out, err := execute(t, "--format", "json", "prefs", "--local", "list")
	require.NoError(t, err)

	var prefs domain.Preferences
	require.NoError(t, json.Unmarshal([]byte(out), &prefs))
	assert.True(t, prefs.HideSenderID)
	assert.False(t, prefs.HideAuthCode)
}
