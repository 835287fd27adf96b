package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderTitle is used when a producer could not extract a video title.
const PlaceholderTitle = "Untitled video"

// Bookmark is a single saved timestamp within a video, plus user annotations.
// The whole collection is stored as one JSON array under a single key, so
// field names must stay stable across every client that shares the namespace.
type Bookmark struct {
	// ID is the canonical unique identifier. Its shape depends on the
	// multi-timestamps setting: either the video ID alone, or
	// "<videoId>:<timestamp>" so one video can carry many bookmarks.
	ID string `json:"id"`

	VideoID      string `json:"videoId"`
	VideoTitle   string `json:"videoTitle"`
	ChannelTitle string `json:"channelTitle,omitempty"`

	// Timestamp is the position in the video, in whole seconds.
	Timestamp int64 `json:"timestamp"`

	// URL is the direct watch link. Derivable from VideoID+Timestamp,
	// kept for clients that render links without rebuilding them.
	URL string `json:"url,omitempty"`

	// CreatedAt is set once on first insert (epoch ms), never mutated.
	CreatedAt int64 `json:"createdAt"`
	// SavedAt is bumped on every mutation of this record (epoch ms).
	SavedAt int64 `json:"savedAt"`

	Notes    string   `json:"notes"`
	Tags     []string `json:"tags"`
	Favorite bool     `json:"favorite"`
}

// IsValid reports whether a stored record still has the shape every
// consumer relies on. Records failing this check are dropped on read.
func (b Bookmark) IsValid() bool {
	return b.ID != "" && b.VideoID != "" && b.VideoTitle != "" && b.Timestamp >= 0
}

// BookmarkID derives the record key for a video position.
// In multi-timestamp mode each position gets its own record; otherwise a
// video has exactly one bookmark and saving again replaces it.
func BookmarkID(videoID string, timestamp int64, multiTimestamps bool) string {
	if multiTimestamps {
		return videoID + ":" + strconv.FormatInt(timestamp, 10)
	}
	return videoID
}

// WatchURL builds the canonical watch link for a video position.
func WatchURL(videoID string, timestamp int64) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&t=%ds", videoID, timestamp)
}

// NormalizeTags lowercases and trims tags, dropping empties and duplicates
// while preserving first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// AddBookmarkRequest is what producers (content script, popup import) send
// to create or refresh a bookmark. Timestamp is a pointer so "missing" and
// "zero seconds" stay distinguishable.
type AddBookmarkRequest struct {
	VideoID      string
	VideoTitle   string
	ChannelTitle string
	Timestamp    *int64
	URL          string
}

// Validate checks required fields. Content beyond presence is not
// validated; a missing title falls back to a placeholder instead.
func (r AddBookmarkRequest) Validate() error {
	if r.VideoID == "" {
		return fmt.Errorf("%w: videoId is required", ErrInvalidInput)
	}
	if r.Timestamp == nil {
		return fmt.Errorf("%w: timestamp is required", ErrInvalidInput)
	}
	if *r.Timestamp < 0 {
		return fmt.Errorf("%w: timestamp must not be negative", ErrInvalidInput)
	}
	return nil
}

// Title returns the request title or the placeholder when extraction
// failed upstream.
func (r AddBookmarkRequest) Title() string {
	if strings.TrimSpace(r.VideoTitle) == "" {
		return PlaceholderTitle
	}
	return r.VideoTitle
}

// Link returns the request URL, deriving it when the producer omitted one.
func (r AddBookmarkRequest) Link() string {
	if r.URL != "" {
		return r.URL
	}
	return WatchURL(r.VideoID, *r.Timestamp)
}
