package appflow

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/dmendivil/cuevanago/internal/store"
	"github.com/dmendivil/cuevanago/internal/util"
)

// SearchStore looks up the query in the link store. A single match is
// returned directly; multiple matches go through the fuzzy finder, falling
// back to the most-recently-appended match when no terminal is available.
func (a *App) SearchStore(query string) (store.Entry, error) {
	matches, best, err := a.Store.Search(query)
	if err != nil {
		return store.Entry{}, err
	}
	util.Infof("Found %d matches for %q", len(matches), query)

	if len(matches) == 1 {
		return matches[0], nil
	}

	idx, err := fuzzyfinder.Find(
		matches,
		func(i int) string {
			return matches[i].Title
		},
		fuzzyfinder.WithPromptString("Select the movie"),
	)
	if err != nil {
		util.Debugf("Fuzzy selection unavailable (%v), using the most recent match", err)
		return best, nil
	}
	return matches[idx], nil
}

// RunSearch resolves the query against the store and processes the selected
// movie.
func (a *App) RunSearch(query string, opts Options) error {
	entry, err := a.SearchStore(query)
	if err != nil {
		return err
	}
	fmt.Printf("Selected: %s\n", entry.Title)
	return a.ProcessMovie(entry.URL, opts)
}
