package redis

const (
	// KeyBookmarks holds the whole bookmark collection as one JSON array.
	// Every mutation round-trips the full collection through this key.
	KeyBookmarks = "clipmark:bookmarks"

	// KeySettings is a hash of the shared scalar preferences.
	KeySettings = "clipmark:settings"
)

// Settings hash fields. Booleans are stored as "1"/"0".
const (
	fieldShortcutEnabled = "shortcutEnabled"
	fieldDarkModeEnabled = "darkModeEnabled"
	fieldMultiTimestamps = "multiTimestamps"
)
