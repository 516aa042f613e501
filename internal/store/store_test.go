package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStore(t *testing.T, lines string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movie_links.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	return New(path)
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	s := writeStore(t, "The Matrix | http://x/matrix\n"+
		"garbage line without separator\n"+
		"\n"+
		" | http://x/no-title\n"+
		"Matrix Reloaded | http://x/reloaded\n")

	entries, err := s.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "The Matrix", entries[0].Title)
	assert.Equal(t, "Matrix Reloaded", entries[1].Title)
}

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.txt"))
	entries, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSearchMostRecentWinsTies(t *testing.T) {
	s := writeStore(t, "The Matrix | http://x/matrix\n"+
		"Matrix Reloaded | http://x/reloaded\n")

	matches, best, err := s.Search("matrix")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.Equal(t, "Matrix Reloaded", best.Title)
	assert.Equal(t, "http://x/reloaded", best.URL)
}

func TestSearchCaseInsensitive(t *testing.T) {
	s := writeStore(t, "Oppenheimer | http://x/opp\n")

	_, best, err := s.Search("OPPEN")
	require.NoError(t, err)
	assert.Equal(t, "Oppenheimer", best.Title)
}

func TestSearchNoMatch(t *testing.T) {
	s := writeStore(t, "The Matrix | http://x/matrix\n")

	_, _, err := s.Search("inception")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestSearchIsIdempotent(t *testing.T) {
	s := writeStore(t, "The Matrix | http://x/matrix\n"+
		"Matrix Reloaded | http://x/reloaded\n")

	_, first, err := s.Search("matrix")
	require.NoError(t, err)
	_, second, err := s.Search("matrix")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAppendPreservesExistingLines(t *testing.T) {
	s := writeStore(t, "The Matrix | http://x/matrix\n")

	require.NoError(t, s.Append(Entry{Title: "Dune", URL: "http://x/dune"}))
	require.NoError(t, s.Append(Entry{Title: "Dune Part Two", URL: "http://x/dune2"}))

	entries, err := s.Load()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "The Matrix", entries[0].Title)
	assert.Equal(t, "Dune", entries[1].Title)
	assert.Equal(t, "Dune Part Two", entries[2].Title)
}

func TestAppendCreatesFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "fresh.txt"))
	require.NoError(t, s.Append(Entry{Title: "Dune", URL: "http://x/dune"}))

	entries, err := s.Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
