package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmendivil/cuevanago/internal/models"
)

func TestHistoryAppendIsAppendOnly(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "MainHistory.txt"))

	titles := []string{"Oppenheimer", "Dune", "The Batman"}
	for _, title := range titles {
		require.NoError(t, h.Append(models.HistoryEntry{
			Title: title,
			URL:   "http://x/" + title,
		}))
	}

	processed, err := h.ProcessedTitles()
	require.NoError(t, err)
	assert.Len(t, processed, len(titles))
	for _, title := range titles {
		assert.True(t, processed[strings.ToLower(title)], title)
	}
}

func TestProcessedTitlesMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "MainHistory.txt"))

	processed, err := h.ProcessedTitles()
	require.NoError(t, err)
	assert.Empty(t, processed)
}

func TestProcessedTitlesAreLowercased(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "MainHistory.txt"))
	require.NoError(t, h.Append(models.HistoryEntry{Title: "The MATRIX", URL: "http://x/m"}))

	processed, err := h.ProcessedTitles()
	require.NoError(t, err)
	assert.True(t, processed["the matrix"])
	assert.False(t, processed["The MATRIX"])
}
