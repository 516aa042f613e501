package appflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmendivil/cuevanago/internal/player"
	"github.com/dmendivil/cuevanago/internal/resolver"
)

// confirmPlayer runs a throwaway command instead of a media player and
// answers the playback question with the given result.
func confirmPlayer(confirm func() (bool, error)) *player.Player {
	return &player.Player{
		Path:        "sleep",
		StartupWait: time.Second,
		GraceWindow: time.Second,
		Sleep:       func(time.Duration) {},
		After: func(time.Duration) <-chan time.Time {
			ch := make(chan time.Time, 1)
			ch <- time.Now()
			return ch
		},
		Confirm: confirm,
	}
}

func TestPlaybackValidatorRejectionFailsCandidateAsDead(t *testing.T) {
	v := &playbackValidator{player: confirmPlayer(func() (bool, error) {
		return false, nil
	})}

	err := v.Validate("30")
	require.Error(t, err)
	// Dead means the resolver moves to the next candidate without retrying.
	assert.ErrorIs(t, err, resolver.ErrLinkDead)
}

func TestPlaybackValidatorAcceptedLinkPasses(t *testing.T) {
	v := &playbackValidator{player: confirmPlayer(func() (bool, error) {
		return true, nil
	})}

	require.NoError(t, v.Validate("0.1"))
}

func TestPlaybackValidatorConfirmErrorPropagates(t *testing.T) {
	v := &playbackValidator{player: confirmPlayer(func() (bool, error) {
		return false, assert.AnError
	})}

	err := v.Validate("30")
	require.Error(t, err)
	assert.NotErrorIs(t, err, resolver.ErrLinkDead)
}
