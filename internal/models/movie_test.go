package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCandidatesOrder(t *testing.T) {
	candidates := DefaultCandidates()
	require.Len(t, candidates, 6)

	// Every HD source comes before any CAM source.
	assert.Equal(t, ProviderCandidate{ProviderVidhide, TierHD}, candidates[0])
	assert.Equal(t, ProviderCandidate{ProviderFilemoon, TierHD}, candidates[1])
	assert.Equal(t, ProviderCandidate{ProviderVoe, TierHD}, candidates[2])
	assert.Equal(t, ProviderCandidate{ProviderVidhide, TierCAM}, candidates[3])
	assert.Equal(t, ProviderCandidate{ProviderFilemoon, TierCAM}, candidates[4])
	assert.Equal(t, ProviderCandidate{ProviderVoe, TierCAM}, candidates[5])
}

func TestCandidateLabel(t *testing.T) {
	c := ProviderCandidate{Provider: ProviderVidhide, Tier: TierHD}
	assert.Equal(t, "vidhide - HD", c.Label())
	assert.Equal(t, "vidhide/HD", c.String())
}

func TestDisplayName(t *testing.T) {
	withYear := &MovieRecord{Title: "Oppenheimer", Year: 2023}
	assert.Equal(t, "Oppenheimer (2023)", withYear.DisplayName())

	withoutYear := &MovieRecord{Title: "Oppenheimer"}
	assert.Equal(t, "Oppenheimer", withoutYear.DisplayName())
}

func TestGenresDisplay(t *testing.T) {
	m := &MovieRecord{Genres: []string{"Drama", "Historia"}}
	assert.Equal(t, "Drama, Historia", m.GenresDisplay())

	empty := &MovieRecord{}
	assert.Equal(t, "", empty.GenresDisplay())
}
