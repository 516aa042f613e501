// Package store manages the flat text files the tool persists between runs:
// the known-movie link store and the append-only run history.
package store

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/dmendivil/cuevanago/internal/util"
)

// separator splits a line into title and URL. Lines without it are
// malformed and skipped.
const separator = " | "

// ErrNoMatch is returned when a search finds nothing in the store.
var ErrNoMatch = errors.New("no matching movie found in the link store")

// Entry is one well-formed line of the link store.
type Entry struct {
	Title string
	URL   string
}

// Store reads and appends the line-oriented movie link file.
type Store struct {
	path string
}

// New returns a store over the given file path. The file may not exist yet;
// it is created on first append.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every well-formed entry in file order. Malformed lines are
// logged and skipped; scanning continues.
func (s *Store) Load() ([]Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to open link store %s", s.path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			util.Warnf("Failed to close link store: %v", cerr)
		}
	}()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, ok := parseLine(line)
		if !ok {
			util.Debugf("Skipping malformed store line %d: %q", lineNo, line)
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to scan link store %s", s.path)
	}
	return entries, nil
}

// Append adds one entry to the end of the store. Existing lines are never
// touched.
func (s *Store) Append(entry Entry) error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open link store %s for append", s.path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			util.Warnf("Failed to close link store: %v", cerr)
		}
	}()

	if _, err := f.WriteString(entry.Title + separator + entry.URL + "\n"); err != nil {
		return errors.Wrap(err, "failed to append to link store")
	}
	return nil
}

// Search returns every entry whose title contains the query
// (case-insensitive), in store order, and the best match: the
// most-recently-appended one. Returns ErrNoMatch when nothing matches.
func (s *Store) Search(query string) ([]Entry, Entry, error) {
	entries, err := s.Load()
	if err != nil {
		return nil, Entry{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var matches []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), needle) {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		return nil, Entry{}, ErrNoMatch
	}

	// Later lines were appended more recently and win ties.
	return matches, matches[len(matches)-1], nil
}

func parseLine(line string) (Entry, bool) {
	parts := strings.SplitN(line, separator, 2)
	if len(parts) != 2 {
		return Entry{}, false
	}
	title := strings.TrimSpace(parts[0])
	url := strings.TrimSpace(parts[1])
	if title == "" || url == "" {
		return Entry{}, false
	}
	return Entry{Title: title, URL: url}, true
}
