package domain

import (
	"errors"
	"testing"
)

func TestBookmarkID(t *testing.T) {
	tests := []struct {
		name      string
		videoID   string
		timestamp int64
		multi     bool
		want      string
	}{
		{"multi mode appends timestamp", "v1", 10, true, "v1:10"},
		{"multi mode zero timestamp", "v1", 0, true, "v1:0"},
		{"single mode is video id alone", "v1", 10, false, "v1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BookmarkID(tt.videoID, tt.timestamp, tt.multi); got != tt.want {
				t.Errorf("BookmarkID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "go", "", "Music", "MUSIC", "live"})
	want := []string{"go", "music", "live"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeTags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeTags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAddBookmarkRequestValidate(t *testing.T) {
	ts := int64(5)
	neg := int64(-1)

	tests := []struct {
		name    string
		req     AddBookmarkRequest
		wantErr bool
	}{
		{"valid", AddBookmarkRequest{VideoID: "v1", Timestamp: &ts}, false},
		{"missing video id", AddBookmarkRequest{Timestamp: &ts}, true},
		{"missing timestamp", AddBookmarkRequest{VideoID: "v1"}, true},
		{"negative timestamp", AddBookmarkRequest{VideoID: "v1", Timestamp: &neg}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestAddBookmarkRequestTitleFallback(t *testing.T) {
	ts := int64(5)
	req := AddBookmarkRequest{VideoID: "v1", Timestamp: &ts, VideoTitle: "  "}
	if got := req.Title(); got != PlaceholderTitle {
		t.Errorf("Title() = %q, want placeholder", got)
	}

	req.VideoTitle = "Actual title"
	if got := req.Title(); got != "Actual title" {
		t.Errorf("Title() = %q, want %q", got, "Actual title")
	}
}

func TestAddBookmarkRequestLink(t *testing.T) {
	ts := int64(90)
	req := AddBookmarkRequest{VideoID: "abc", Timestamp: &ts}
	want := "https://www.youtube.com/watch?v=abc&t=90s"
	if got := req.Link(); got != want {
		t.Errorf("Link() = %q, want %q", got, want)
	}

	req.URL = "https://example.com/custom"
	if got := req.Link(); got != req.URL {
		t.Errorf("Link() = %q, want producer URL", got)
	}
}

func TestBookmarkIsValid(t *testing.T) {
	valid := Bookmark{ID: "v1:10", VideoID: "v1", VideoTitle: "T", Timestamp: 10}
	if !valid.IsValid() {
		t.Error("IsValid() = false for well-formed record")
	}

	tests := []struct {
		name   string
		mutate func(*Bookmark)
	}{
		{"empty id", func(b *Bookmark) { b.ID = "" }},
		{"empty video id", func(b *Bookmark) { b.VideoID = "" }},
		{"empty title", func(b *Bookmark) { b.VideoTitle = "" }},
		{"negative timestamp", func(b *Bookmark) { b.Timestamp = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			if b.IsValid() {
				t.Error("IsValid() = true for malformed record")
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrQuotaExceeded, "Storage is full. Export and delete old bookmarks to free up space."},
		{ErrInvalidInput, "Invalid bookmark data."},
		{errors.New("raw internal detail"), "Something went wrong. Please try again."},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestSettingsPatchApply(t *testing.T) {
	s := DefaultSettings()
	if !s.ShortcutEnabled || s.DarkModeEnabled || !s.MultiTimestamps {
		t.Fatalf("DefaultSettings() = %+v, want shortcut on, dark mode off, multi on", s)
	}

	dark := true
	multi := false
	patch := SettingsPatch{DarkModeEnabled: &dark, MultiTimestamps: &multi}
	patch.Apply(&s)

	if !s.ShortcutEnabled {
		t.Error("Apply() touched ShortcutEnabled")
	}
	if !s.DarkModeEnabled {
		t.Error("Apply() did not set DarkModeEnabled")
	}
	if s.MultiTimestamps {
		t.Error("Apply() did not clear MultiTimestamps")
	}

	if (SettingsPatch{}).IsEmpty() == false {
		t.Error("IsEmpty() = false for empty patch")
	}
	if patch.IsEmpty() {
		t.Error("IsEmpty() = true for non-empty patch")
	}
}
