// Package transfer implements the export/import file format. Export and
// import are plain bulk callers of the store's CRUD contract; the file is
// the only interchange format between installations.
package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/clipmark/clipmark/internal/domain"
)

// FormatVersion is the only file version this build reads and writes.
const FormatVersion = "1.0"

// File is the on-disk export format.
type File struct {
	Version    string            `json:"version"`
	ExportDate string            `json:"exportDate"` // ISO-8601
	Bookmarks  []domain.Bookmark `json:"bookmarks"`
}

// Source is the read side of the store.
type Source interface {
	GetAll(ctx context.Context) []domain.Bookmark
}

// Merger is the import side of the store: merge by id, skip existing.
type Merger interface {
	Import(ctx context.Context, incoming []domain.Bookmark) (added, skipped int, err error)
}

// Export snapshots the collection into a File.
func Export(ctx context.Context, source Source) File {
	return File{
		Version:    FormatVersion,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		Bookmarks:  source.GetAll(ctx),
	}
}

// WriteTo serializes the file with stable indentation.
func (f File) WriteTo(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode export file: %w", err)
	}
	return nil
}

// Read parses and validates an export file.
func Read(r io.Reader) (File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return File{}, fmt.Errorf("%w: malformed export file: %v", domain.ErrInvalidInput, err)
	}
	if f.Version != FormatVersion {
		return File{}, fmt.Errorf("%w: unsupported export version %q", domain.ErrInvalidInput, f.Version)
	}
	return f, nil
}

// Import merges the file's records into the store. Records whose id is
// already present are skipped, never overwritten.
func Import(ctx context.Context, merger Merger, f File) (added, skipped int, err error) {
	return merger.Import(ctx, f.Bookmarks)
}
