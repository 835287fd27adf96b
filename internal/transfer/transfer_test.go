package transfer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipmark/clipmark/internal/domain"
)

type memStore struct {
	bookmarks []domain.Bookmark
}

func (m *memStore) GetAll(ctx context.Context) []domain.Bookmark {
	return m.bookmarks
}

func (m *memStore) Import(ctx context.Context, incoming []domain.Bookmark) (added, skipped int, err error) {
	existing := make(map[string]struct{}, len(m.bookmarks))
	for _, b := range m.bookmarks {
		existing[b.ID] = struct{}{}
	}
	for _, b := range incoming {
		if _, ok := existing[b.ID]; ok {
			skipped++
			continue
		}
		m.bookmarks = append(m.bookmarks, b)
		added++
	}
	return added, skipped, nil
}

func TestExportImportRoundTrip(t *testing.T) {
	src := &memStore{bookmarks: []domain.Bookmark{
		{ID: "v1:10", VideoID: "v1", VideoTitle: "First", Timestamp: 10, Tags: []string{}},
		{ID: "v2:20", VideoID: "v2", VideoTitle: "Second", Timestamp: 20, Tags: []string{"go"}},
	}}
	ctx := context.Background()

	f := Export(ctx, src)
	assert.Equal(t, FormatVersion, f.Version)
	assert.NotEmpty(t, f.ExportDate)

	var buf bytes.Buffer
	require.NoError(t, f.WriteTo(&buf))

	parsed, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, f.Bookmarks, parsed.Bookmarks)

	dst := &memStore{bookmarks: []domain.Bookmark{
		{ID: "v1:10", VideoID: "v1", VideoTitle: "Already here", Timestamp: 10},
	}}
	added, skipped, err := Import(ctx, dst, parsed)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, skipped)
	assert.Len(t, dst.bookmarks, 2)
}

func TestReadRejectsUnsupportedVersion(t *testing.T) {
	_, err := Read(strings.NewReader(`{"version":"2.0","exportDate":"x","bookmarks":[]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReadRejectsMalformedJSON(t *testing.T) {
	_, err := Read(strings.NewReader(`{not json`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
