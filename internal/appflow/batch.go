package appflow

import (
	"math/rand"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/dmendivil/cuevanago/internal/util"
)

// RunBatch processes every movie in the link store strictly sequentially,
// appending a playlist entry for each resolved link. Movies already in the
// history are skipped; per-movie failures are logged and the batch moves on.
func (a *App) RunBatch(opts Options, randomize bool) error {
	entries, err := a.Store.Load()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.Errorf("link store %s is empty, run -crawl first", a.Store.Path())
	}

	processed, err := a.History.ProcessedTitles()
	if err != nil {
		return err
	}

	order := ProcessOrder(len(entries), randomize, rand.New(rand.NewSource(time.Now().UnixNano())))
	if randomize {
		util.Info("Randomized batch processing order")
	}
	util.Infof("Processing %d movies", len(entries))

	for i, idx := range order {
		entry := entries[idx]
		key := strings.ToLower(entry.Title)
		if processed[key] {
			util.Infof("Skipping already processed movie: %s", entry.Title)
			continue
		}

		util.Infof("Processing movie %d/%d: %s", i+1, len(entries), entry.Title)
		if err := a.process(entry.URL, opts); err != nil {
			util.Errorf("Failed to process %s: %v", entry.Title, err)
			continue
		}
		// A title listed twice in the store must not be processed twice
		// within the same run.
		processed[key] = true
	}

	util.Info("Batch completed")
	return nil
}

// ProcessOrder returns the indices 0..n-1 in store order, or a permutation
// of them when randomize is set. Every index appears exactly once either way.
func ProcessOrder(n int, randomize bool, rng *rand.Rand) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if randomize {
		rng.Shuffle(n, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}
	return order
}
