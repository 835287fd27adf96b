package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipmark/clipmark/internal/domain"
)

func TestGetSettingsDefaults(t *testing.T) {
	s, _, _ := newTestStore(t, Options{})
	ctx := context.Background()

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSetSettingsMergesPatch(t *testing.T) {
	s, _, _ := newTestStore(t, Options{})
	ctx := context.Background()

	dark := true
	got, err := s.SetSettings(ctx, domain.SettingsPatch{DarkModeEnabled: &dark})
	require.NoError(t, err)
	assert.True(t, got.DarkModeEnabled)
	assert.True(t, got.ShortcutEnabled, "untouched field keeps its default")
	assert.True(t, got.MultiTimestamps, "untouched field keeps its default")

	// A later patch must not disturb the earlier one.
	multi := false
	got, err = s.SetSettings(ctx, domain.SettingsPatch{MultiTimestamps: &multi})
	require.NoError(t, err)
	assert.True(t, got.DarkModeEnabled)
	assert.False(t, got.MultiTimestamps)

	reread, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, reread)
}

func TestSetSettingsEmptyPatchIsNoOp(t *testing.T) {
	s, mr, _ := newTestStore(t, Options{})
	ctx := context.Background()

	got, err := s.SetSettings(ctx, domain.SettingsPatch{})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)
	assert.False(t, mr.Exists(KeySettings))
}

func TestGetSettingsPartialHash(t *testing.T) {
	s, mr, _ := newTestStore(t, Options{})
	ctx := context.Background()

	// Only one field stored; the rest resolve to defaults.
	mr.HSet(KeySettings, fieldDarkModeEnabled, "1")

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, settings.DarkModeEnabled)
	assert.True(t, settings.ShortcutEnabled)
	assert.True(t, settings.MultiTimestamps)
}

func TestGetSettingsStorageDown(t *testing.T) {
	s, mr, _ := newTestStore(t, Options{})
	ctx := context.Background()

	mr.Close()

	_, err := s.GetSettings(ctx)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
