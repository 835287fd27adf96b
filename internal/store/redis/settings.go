package redis

import (
	"context"
	"fmt"

	"github.com/clipmark/clipmark/internal/domain"
	"github.com/clipmark/clipmark/internal/notifier"
)

// GetSettings reads the shared preferences. Fields missing from storage
// resolve to their documented defaults, never to a zero value.
func (s *Store) GetSettings(ctx context.Context) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	var vals map[string]string
	err := s.withRetry(ctx, "get_settings", func() error {
		v, err := s.client.HGetAll(ctx, KeySettings).Result()
		if err != nil {
			return fmt.Errorf("read settings: %w", err)
		}
		vals = v
		return nil
	})
	if err != nil {
		return settings, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	if v, ok := vals[fieldShortcutEnabled]; ok {
		settings.ShortcutEnabled = v == "1"
	}
	if v, ok := vals[fieldDarkModeEnabled]; ok {
		settings.DarkModeEnabled = v == "1"
	}
	if v, ok := vals[fieldMultiTimestamps]; ok {
		settings.MultiTimestamps = v == "1"
	}
	return settings, nil
}

// SetSettings shallow-merges a patch into the stored settings and returns
// the resulting state. An empty patch is a no-op.
func (s *Store) SetSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	current, err := s.GetSettings(ctx)
	if err != nil {
		return current, err
	}
	if patch.IsEmpty() {
		return current, nil
	}
	patch.Apply(&current)

	fields := map[string]interface{}{
		fieldShortcutEnabled: boolField(current.ShortcutEnabled),
		fieldDarkModeEnabled: boolField(current.DarkModeEnabled),
		fieldMultiTimestamps: boolField(current.MultiTimestamps),
	}
	err = s.withRetry(ctx, "set_settings", func() error {
		if err := s.client.HSet(ctx, KeySettings, fields).Err(); err != nil {
			return fmt.Errorf("write settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return current, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	s.notify(ctx, KeySettings, notifier.OpSettings)
	return current, nil
}

func boolField(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
