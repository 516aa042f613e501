// Package appflow wires the browser session, scraper, resolver and output
// writers into the tool's run modes.
package appflow

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/pkg/errors"

	"github.com/dmendivil/cuevanago/internal/browser"
	"github.com/dmendivil/cuevanago/internal/models"
	"github.com/dmendivil/cuevanago/internal/player"
	"github.com/dmendivil/cuevanago/internal/playlist"
	"github.com/dmendivil/cuevanago/internal/resolver"
	"github.com/dmendivil/cuevanago/internal/scraper"
	"github.com/dmendivil/cuevanago/internal/store"
	"github.com/dmendivil/cuevanago/internal/util"
)

// Default file locations, relative to the working directory.
const (
	DefaultStorePath    = "movie_links.txt"
	DefaultHistoryPath  = "MainHistory.txt"
	DefaultPlaylistPath = "RokuChannelList.xml"
	DefaultLogPath      = "cuevanago.log"
)

// pageSettleDelay gives the page's scripts time to render dynamic content
// after the DOM is ready.
const pageSettleDelay = 10 * time.Second

// Options selects the outputs of a run.
type Options struct {
	Play     bool // play candidates in the external player, user confirms each
	Verify   bool // test-play candidates in the external player unattended
	Playlist bool // append a Roku playlist entry
	Record   bool // write the verified link to a per-movie text file
}

// App holds the run-scoped resources every mode shares.
type App struct {
	Session    *browser.Session
	Store      *store.Store
	History    *store.History
	Playlist   *playlist.Playlist
	Candidates []models.ProviderCandidate

	// Sleep is injectable for tests.
	Sleep func(time.Duration)
	// process runs one movie end to end; indirect so tests can substitute
	// it when exercising the batch loop.
	process func(pageURL string, opts Options) error
}

// New assembles an App over the default file locations.
func New(session *browser.Session, candidates []models.ProviderCandidate) *App {
	a := &App{
		Session:    session,
		Store:      store.New(DefaultStorePath),
		History:    store.NewHistory(DefaultHistoryPath),
		Playlist:   playlist.New(DefaultPlaylistPath),
		Candidates: candidates,
		Sleep:      time.Sleep,
	}
	a.process = a.ProcessMovie
	return a
}

// ProcessMovie runs the full pipeline for one movie page: fetch, extract
// metadata, resolve a playable link, then write the selected outputs.
func (a *App) ProcessMovie(pageURL string, opts Options) error {
	page, err := a.Session.NewPage()
	if err != nil {
		return err
	}
	defer page.Close()

	var movie *models.MovieRecord
	var loadErr error
	_ = spinner.New().
		Title("Loading movie page...").
		Type(spinner.Dots).
		Action(func() {
			if loadErr = page.Navigate(pageURL); loadErr != nil {
				return
			}
			a.Sleep(pageSettleDelay)
			movie, loadErr = scraper.ExtractMovie(page, pageURL)
		}).
		Run()
	if loadErr != nil {
		return errors.Wrap(loadErr, "failed to load the movie page")
	}
	util.Infof("Movie: %s", movie.DisplayName())

	link, err := a.resolve(page, pageURL, opts)
	if err != nil {
		return errors.Wrapf(err, "no playable link for %s", movie.Title)
	}
	fmt.Println(link.URL)

	if err := a.History.Append(models.HistoryEntry{
		Title: movie.Title,
		URL:   link.URL,
	}); err != nil {
		return err
	}

	if opts.Playlist {
		if err := a.Playlist.AppendEntry(movie, link); err != nil {
			return err
		}
	}

	if opts.Record {
		if err := recordLink(movie, link); err != nil {
			return err
		}
	}
	return nil
}

// resolve builds a resolver whose Prepare step reloads the movie page and
// reopens the server menu, then runs the candidate loop. Under -play or
// -verify the external player is the validator, so a link that does not
// actually play fails its candidate and the loop moves on.
func (a *App) resolve(page browser.PageContext, pageURL string, opts Options) (models.ResolvedLink, error) {
	validator, err := a.validator(opts)
	if err != nil {
		return models.ResolvedLink{}, err
	}

	res := resolver.New(a.Candidates, validator)
	firstPass := true
	res.Prepare = func(p browser.PageContext) error {
		if !firstPass {
			if err := p.Navigate(pageURL); err != nil {
				return err
			}
			a.Sleep(pageSettleDelay / 2)
		}
		firstPass = false
		scraper.RemoveOverlays(p)
		return scraper.OpenServerMenu(p)
	}
	return res.Resolve(page)
}

// validator picks the link validation strategy: the HTTP probe by default,
// the external player when the run is about playback.
func (a *App) validator(opts Options) (resolver.Validator, error) {
	if !opts.Play && !opts.Verify {
		return resolver.NewProbeValidator(), nil
	}

	pl, err := player.New()
	if err != nil {
		return nil, err
	}
	if opts.Play {
		return &playbackValidator{player: pl}, nil
	}
	return pl, nil
}

// playbackValidator validates a link by playing it and asking the user. A
// rejected link is reported dead so the resolver moves to the next candidate
// instead of retrying the same URL. On success the player keeps running.
type playbackValidator struct {
	player *player.Player
}

func (v *playbackValidator) Validate(url string) error {
	playing, err := v.player.PlayInteractive(url)
	if err != nil {
		return err
	}
	if !playing {
		return errors.Wrap(resolver.ErrLinkDead, "playback rejected by the user")
	}
	return nil
}

// recordLink writes the verified link into <sanitized title>.txt.
func recordLink(movie *models.MovieRecord, link models.ResolvedLink) error {
	name := sanitizeFilename(movie.Title) + ".txt"
	if err := os.WriteFile(name, []byte(link.URL+"\n"), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write link file %s", name)
	}
	util.Infof("Verified link saved to %s", name)
	return nil
}

// sanitizeFilename keeps letters, digits, spaces, dashes and underscores.
func sanitizeFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
