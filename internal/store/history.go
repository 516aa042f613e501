package store

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/dmendivil/cuevanago/internal/models"
	"github.com/dmendivil/cuevanago/internal/util"
)

// History is the append-only record of movies whose links were resolved.
// Entries are never mutated or deleted.
type History struct {
	path string
}

// NewHistory returns a history log over the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Append writes one entry to the end of the history file.
func (h *History) Append(entry models.HistoryEntry) error {
	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open history %s for append", h.path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			util.Warnf("Failed to close history: %v", cerr)
		}
	}()

	line := entry.Title + separator + entry.URL + "\n"
	if _, err := f.WriteString(line); err != nil {
		return errors.Wrap(err, "failed to append history entry")
	}
	return nil
}

// ProcessedTitles returns the lowercased titles already recorded, so batch
// runs can skip movies handled by earlier invocations.
func (h *History) ProcessedTitles() (map[string]bool, error) {
	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, errors.Wrapf(err, "failed to open history %s", h.path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			util.Warnf("Failed to close history: %v", cerr)
		}
	}()

	titles := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, separator) {
			continue
		}
		title := strings.TrimSpace(strings.SplitN(line, separator, 2)[0])
		if title != "" {
			titles[strings.ToLower(title)] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to scan history %s", h.path)
	}
	return titles, nil
}
