package domain

// Settings are the small scalar preferences shared by every client of the
// namespace. Missing stored fields resolve to these defaults, never to a
// zero value the caller has to guess about.
type Settings struct {
	ShortcutEnabled bool `json:"shortcutEnabled"`
	DarkModeEnabled bool `json:"darkModeEnabled"`
	MultiTimestamps bool `json:"multiTimestamps"`
}

// DefaultSettings returns the documented defaults: shortcut on, dark mode
// off, multi-timestamp mode on.
func DefaultSettings() Settings {
	return Settings{
		ShortcutEnabled: true,
		DarkModeEnabled: false,
		MultiTimestamps: true,
	}
}

// SettingsPatch is a partial update; nil fields are left untouched.
type SettingsPatch struct {
	ShortcutEnabled *bool `json:"shortcutEnabled,omitempty"`
	DarkModeEnabled *bool `json:"darkModeEnabled,omitempty"`
	MultiTimestamps *bool `json:"multiTimestamps,omitempty"`
}

// Apply shallow-merges the patch into s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.ShortcutEnabled != nil {
		s.ShortcutEnabled = *p.ShortcutEnabled
	}
	if p.DarkModeEnabled != nil {
		s.DarkModeEnabled = *p.DarkModeEnabled
	}
	if p.MultiTimestamps != nil {
		s.MultiTimestamps = *p.MultiTimestamps
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.ShortcutEnabled == nil && p.DarkModeEnabled == nil && p.MultiTimestamps == nil
}
