package data

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devricklin/teleport/internal/biz/domain"
)

func TestPreferenceRepo_SaveLoadReset(t *testing.T) {
	ctx := context.Background()
	r, err := NewPreferenceRepo(filepath.Join(t.TempDir(), "nested", "state.db"))
	require.NoError(t, err)
	defer r.Close()

	prefs, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Preferences{}, prefs)

	require.NoError(t, r.Save(ctx, domain.PrefHideAuthCode, true))
	require.NoError(t, r.Save(ctx, domain.PrefPaused, true))
	require.NoError(t, r.Save(ctx, domain.PrefPaused, false))

	prefs, err = r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Preferences{HideAuthCode: true}, prefs)

	require.NoError(t, r.Reset(ctx))
	prefs, err = r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Preferences{}, prefs)
}

func TestPreferenceRepo_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	r, err := NewPreferenceRepo(path)
	require.NoError(t, err)
	require.NoError(t, r.Save(ctx, domain.PrefNotificationsRequested, true))
	require.NoError(t, r.Close())

	r, err = NewPreferenceRepo(path)
	require.NoError(t, err)
	defer r.Close()

	prefs, err := r.Load(ctx)
	require.NoError(t, err)
	assert.True(t, prefs.NotificationsRequested)
}
