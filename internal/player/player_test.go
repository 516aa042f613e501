package player

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPlayer runs a throwaway command in place of a media player. The URL
// argument becomes the command's argument, so "sleep" plus a duration
// simulates a player that keeps playing.
func testPlayer(bin string) *Player {
	return &Player{
		Path:        bin,
		StartupWait: 5 * time.Second,
		GraceWindow: 25 * time.Second,
		Sleep:       func(time.Duration) {},
		After: func(time.Duration) <-chan time.Time {
			ch := make(chan time.Time, 1)
			ch <- time.Now()
			return ch
		},
		Confirm: func() (bool, error) { return true, nil },
	}
}

func TestAutoTestPassesWhenPlayerSurvives(t *testing.T) {
	p := testPlayer("sleep")
	require.NoError(t, p.AutoTest("30"))
}

func TestAutoTestFailsWhenPlayerExitsImmediately(t *testing.T) {
	p := testPlayer("false")
	// Block the startup window until the process exits.
	p.After = func(time.Duration) <-chan time.Time { return nil }

	err := p.AutoTest("ignored")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before playback began")
}

func TestAutoTestFailsWhenPlayerDiesDuringGraceWindow(t *testing.T) {
	p := testPlayer("sleep")
	p.Sleep = func(time.Duration) { time.Sleep(500 * time.Millisecond) }

	err := p.AutoTest("0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "during the playback test")
}

func TestAutoTestStartFailure(t *testing.T) {
	p := testPlayer("/nonexistent/media-player")
	require.Error(t, p.AutoTest("ignored"))
}

func TestValidateIsAutoTest(t *testing.T) {
	p := testPlayer("sleep")
	require.NoError(t, p.Validate("30"))
}

func TestPlayInteractiveKillsPlayerOnNo(t *testing.T) {
	p := testPlayer("sleep")
	p.Confirm = func() (bool, error) { return false, nil }

	playing, err := p.PlayInteractive("30")
	require.NoError(t, err)
	assert.False(t, playing)
}

func TestPlayInteractiveLeavesPlayerRunningOnYes(t *testing.T) {
	p := testPlayer("sleep")
	p.Confirm = func() (bool, error) { return true, nil }

	playing, err := p.PlayInteractive("0.1")
	require.NoError(t, err)
	assert.True(t, playing)
}

func TestPlayInteractiveConfirmFailure(t *testing.T) {
	p := testPlayer("sleep")
	p.Confirm = func() (bool, error) { return false, errors.New("no terminal") }

	_, err := p.PlayInteractive("30")
	require.Error(t, err)
}
