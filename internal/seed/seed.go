// Package seed loads an optional YAML file of bookmarks imported on
// startup. Seeding goes through the store's import path, so records whose
// id already exists in storage are left untouched.
package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/clipmark/clipmark/internal/domain"
)

// Entry is a single bookmark in the seed file.
type Entry struct {
	VideoID   string   `yaml:"video_id"`
	Title     string   `yaml:"title"`
	Channel   string   `yaml:"channel"`
	Timestamp int64    `yaml:"timestamp"` // seconds into the video
	URL       string   `yaml:"url"`
	Notes     string   `yaml:"notes"`
	Tags      []string `yaml:"tags"`
	Favorite  bool     `yaml:"favorite"`
}

// File is the root structure of the seed YAML.
type File struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}

// Load reads and maps a seed file into domain records. Seed ids always use
// the multi-timestamp shape so repeated seeding of the same file stays
// idempotent regardless of the runtime setting.
func Load(path string) ([]domain.Bookmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	now := time.Now().UnixMilli()
	bookmarks := make([]domain.Bookmark, 0, len(f.Bookmarks))
	for i, e := range f.Bookmarks {
		if e.VideoID == "" {
			return nil, fmt.Errorf("seed entry %d: video_id is required", i)
		}
		if e.Timestamp < 0 {
			return nil, fmt.Errorf("seed entry %d: timestamp must not be negative", i)
		}
		title := e.Title
		if title == "" {
			title = domain.PlaceholderTitle
		}
		url := e.URL
		if url == "" {
			url = domain.WatchURL(e.VideoID, e.Timestamp)
		}
		bookmarks = append(bookmarks, domain.Bookmark{
			ID:           domain.BookmarkID(e.VideoID, e.Timestamp, true),
			VideoID:      e.VideoID,
			VideoTitle:   title,
			ChannelTitle: e.Channel,
			Timestamp:    e.Timestamp,
			URL:          url,
			CreatedAt:    now,
			SavedAt:      now,
			Notes:        e.Notes,
			Tags:         domain.NormalizeTags(e.Tags),
			Favorite:     e.Favorite,
		})
	}
	return bookmarks, nil
}
