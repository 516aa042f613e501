// Package resolver turns a loaded movie page into a single playable stream
// link by trying hosting providers in preference order.
package resolver

import (
	"time"

	"github.com/pkg/errors"

	"github.com/dmendivil/cuevanago/internal/browser"
	"github.com/dmendivil/cuevanago/internal/models"
	"github.com/dmendivil/cuevanago/internal/util"
)

var (
	// ErrProviderNotPresent means the page does not expose the requested
	// provider+tier combination. Recoverable; the resolver moves on.
	ErrProviderNotPresent = errors.New("provider not present on page")

	// ErrNoStreamCaptured means the provider's embed was triggered but no
	// stream URL surfaced. Recoverable; the resolver moves on.
	ErrNoStreamCaptured = errors.New("no stream URL captured")

	// ErrLinkDead means validation confirmed the link is gone. Not retried.
	ErrLinkDead = errors.New("link confirmed dead")

	// ErrLinkValidationTimeout means the retry budget was exhausted on
	// transient failures. The candidate is treated as failed.
	ErrLinkValidationTimeout = errors.New("link validation timed out")

	// ErrNoPlayableSource is the terminal failure after every candidate
	// has been tried.
	ErrNoPlayableSource = errors.New("no playable source found")
)

// Extractor is one provider's extraction rule: locate the provider's embed
// on the page and surface a candidate stream URL.
type Extractor interface {
	TryExtract(page browser.PageContext, candidate models.ProviderCandidate) (string, error)
}

// Validator checks that a candidate URL is actually reachable. A nil return
// means playable; ErrLinkDead means confirmed gone; anything else is treated
// as transient.
type Validator interface {
	Validate(url string) error
}

const (
	defaultValidationRetries = 3
	defaultBackoff           = 2 * time.Second
)

// Resolver iterates provider candidates in order and returns the first link
// that validates. Serial by design: probing providers in parallel would
// multiply the anti-bot footprint for no reliability gain.
type Resolver struct {
	Candidates []models.ProviderCandidate
	Extractors map[models.Provider]Extractor
	Validator  Validator

	// Prepare restores the page to a state where the server menu is open.
	// Extraction for one candidate may navigate away from the movie page,
	// so it runs before every candidate.
	Prepare func(page browser.PageContext) error

	// Retries and Backoff bound the validation loop. Sleep is injectable
	// so tests can simulate transient failures without real delays.
	Retries int
	Backoff time.Duration
	Sleep   func(time.Duration)
}

// New returns a resolver with the default extraction rules and retry policy.
func New(candidates []models.ProviderCandidate, validator Validator) *Resolver {
	return &Resolver{
		Candidates: candidates,
		Extractors: DefaultExtractors(),
		Validator:  validator,
		Retries:    defaultValidationRetries,
		Backoff:    defaultBackoff,
		Sleep:      time.Sleep,
	}
}

// Resolve returns the first candidate in order whose extracted link
// validates, or ErrNoPlayableSource once every candidate has failed.
// Recoverable per-candidate failures are absorbed and logged here.
func (r *Resolver) Resolve(page browser.PageContext) (models.ResolvedLink, error) {
	if len(r.Candidates) == 0 {
		return models.ResolvedLink{}, errors.New("no provider candidates configured")
	}

	for _, candidate := range r.Candidates {
		extractor, ok := r.Extractors[candidate.Provider]
		if !ok {
			util.Warnf("No extraction rule for provider %s, skipping", candidate.Provider)
			continue
		}

		if r.Prepare != nil {
			if err := r.Prepare(page); err != nil {
				return models.ResolvedLink{}, errors.Wrap(err, "failed to prepare page")
			}
		}

		util.Infof("Trying source %s", candidate)
		url, err := extractor.TryExtract(page, candidate)
		if err != nil {
			if errors.Is(err, ErrProviderNotPresent) {
				util.Infof("Source %s not present on page", candidate)
			} else {
				util.Warnf("Extraction failed for %s: %v", candidate, err)
			}
			continue
		}

		if err := r.validate(url); err != nil {
			util.Warnf("Validation failed for %s (%s): %v", candidate, url, err)
			continue
		}

		util.Infof("Resolved %s via %s", url, candidate)
		return models.ResolvedLink{
			URL:       url,
			Candidate: candidate,
			Verified:  true,
		}, nil
	}

	return models.ResolvedLink{}, ErrNoPlayableSource
}

// validate retries transient failures within the budget. A confirmed-dead
// link fails immediately.
func (r *Resolver) validate(url string) error {
	if r.Validator == nil {
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= r.Retries; attempt++ {
		if attempt > 1 {
			r.Sleep(r.Backoff)
		}

		err := r.Validator.Validate(url)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrLinkDead) {
			return err
		}
		lastErr = err
		util.Debugf("Transient validation failure (attempt %d/%d): %v", attempt, r.Retries, err)
	}

	return errors.Wrapf(ErrLinkValidationTimeout, "after %d attempts: %v", r.Retries, lastErr)
}
