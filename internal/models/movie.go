// Package models contains data structures for scraped movies and
// resolved stream links.
package models

import (
	"fmt"
	"strings"
)

// Provider identifies a video-hosting site embedding the playable stream.
type Provider string

const (
	ProviderVidhide  Provider = "vidhide"
	ProviderFilemoon Provider = "filemoon"
	ProviderVoe      Provider = "voe"
)

// Tier is the quality classification of a stream.
type Tier string

const (
	TierHD  Tier = "HD"
	TierCAM Tier = "CAM"
)

// ProviderCandidate is one provider+tier combination the resolver may try.
type ProviderCandidate struct {
	Provider Provider
	Tier     Tier
}

// Label returns the server-menu label the source site uses for this
// candidate, e.g. "vidhide - HD".
func (c ProviderCandidate) Label() string {
	return fmt.Sprintf("%s - %s", c.Provider, c.Tier)
}

func (c ProviderCandidate) String() string {
	return string(c.Provider) + "/" + string(c.Tier)
}

// DefaultCandidates returns the built-in preference order: every provider at
// HD before any provider at CAM.
func DefaultCandidates() []ProviderCandidate {
	providers := []Provider{ProviderVidhide, ProviderFilemoon, ProviderVoe}
	candidates := make([]ProviderCandidate, 0, len(providers)*2)
	for _, tier := range []Tier{TierHD, TierCAM} {
		for _, p := range providers {
			candidates = append(candidates, ProviderCandidate{Provider: p, Tier: tier})
		}
	}
	return candidates
}

// MovieRecord holds the metadata extracted from a movie page. Created once
// per invocation and immutable afterwards.
type MovieRecord struct {
	Title       string
	Year        int // 0 when the page does not expose a year
	SourceURL   string
	PosterURL   string
	Description string
	Genres      []string
	Runtime     string
}

// DisplayName returns the title with the year appended when known.
func (m *MovieRecord) DisplayName() string {
	if m.Year > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, m.Year)
	}
	return m.Title
}

// GenresDisplay returns genres as a comma-separated string.
func (m *MovieRecord) GenresDisplay() string {
	return strings.Join(m.Genres, ", ")
}

// ResolvedLink is the single playable link produced by the resolver.
type ResolvedLink struct {
	URL       string
	Candidate ProviderCandidate
	Verified  bool
}

// HistoryEntry is one append-only line of the run history. The line format
// carries no timestamp; append order is the only ordering.
type HistoryEntry struct {
	Title string
	URL   string
}
