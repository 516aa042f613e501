// Package player launches the external media player and verifies that a
// stream actually plays.
package player

import (
	"os/exec"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"

	"github.com/dmendivil/cuevanago/internal/util"
)

// playerBinaries are probed on PATH in preference order.
var playerBinaries = []string{"vlc", "mpv"}

// FindPlayer locates an installed media player binary.
func FindPlayer() (string, error) {
	for _, name := range playerBinaries {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no media player found in PATH, install vlc or mpv")
}

// Player runs the external media player process. The process is a scoped
// resource: every path through AutoTest kills it before returning.
type Player struct {
	Path string

	// StartupWait is how long to wait for immediate launch failures.
	StartupWait time.Duration
	// GraceWindow is how long the process must survive for a stream to
	// count as playable.
	GraceWindow time.Duration

	// Sleep, After and Confirm are injectable so tests avoid real delays
	// and terminal prompts.
	Sleep   func(time.Duration)
	After   func(time.Duration) <-chan time.Time
	Confirm func() (bool, error)
}

// New locates a player binary and returns a Player with the default
// verification windows.
func New() (*Player, error) {
	path, err := FindPlayer()
	if err != nil {
		return nil, err
	}
	return &Player{
		Path:        path,
		StartupWait: 5 * time.Second,
		GraceWindow: 25 * time.Second,
		Sleep:       time.Sleep,
		After:       time.After,
		Confirm:     askPlaying,
	}, nil
}

// AutoTest launches the player on the URL and reports whether the process
// survives the grace window. The player is killed before returning.
func (p *Player) AutoTest(url string) error {
	cmd := exec.Command(p.Path, url)
	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start media player")
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	// Broken links make the player give up almost immediately.
	select {
	case <-done:
		return errors.New("player exited before playback began")
	case <-p.After(p.StartupWait):
	}

	p.Sleep(p.GraceWindow)

	select {
	case <-done:
		return errors.New("player exited during the playback test")
	default:
	}

	if err := cmd.Process.Kill(); err != nil {
		util.Warnf("Failed to stop media player: %v", err)
	}
	<-done
	return nil
}

// Validate lets the player act as a link validator: a stream is valid when
// the player keeps playing it through the grace window.
func (p *Player) Validate(url string) error {
	return p.AutoTest(url)
}

// PlayInteractive launches the player and asks the user whether the video
// plays. On "no" the player is killed and false is returned so the caller
// can move to the next link.
func (p *Player) PlayInteractive(url string) (bool, error) {
	util.Infof("Opening %s", url)
	cmd := exec.Command(p.Path, url)
	if err := cmd.Start(); err != nil {
		return false, errors.Wrap(err, "failed to start media player")
	}

	playing, err := p.Confirm()
	if err != nil {
		_ = cmd.Process.Kill()
		go func() { _ = cmd.Wait() }()
		return false, errors.Wrap(err, "playback confirmation aborted")
	}

	if !playing {
		if err := cmd.Process.Kill(); err != nil {
			util.Warnf("Failed to stop media player: %v", err)
		}
		go func() { _ = cmd.Wait() }()
		return false, nil
	}

	// Leave the player running; it now belongs to the user.
	go func() { _ = cmd.Wait() }()
	return true, nil
}

// askPlaying asks the user whether the launched stream is playing.
func askPlaying() (bool, error) {
	var playing bool
	confirm := huh.NewSelect[bool]().
		Title("Is the video playing correctly?").
		Options(
			huh.NewOption("Yes", true),
			huh.NewOption("No, try the next link", false),
		).
		Value(&playing)

	if err := confirm.Run(); err != nil {
		return false, err
	}
	return playing, nil
}
