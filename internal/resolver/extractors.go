package resolver

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmendivil/cuevanago/internal/browser"
	"github.com/dmendivil/cuevanago/internal/models"
	"github.com/dmendivil/cuevanago/internal/util"
)

const (
	serverOptionTimeout = 20 * time.Second
	embedSettleDelay    = 8 * time.Second
	hopSettleDelay      = 3 * time.Second
	redirectWait        = 30 * time.Second

	streamMarker = ".m3u8"

	voeLogoSelector   = `img.icon[src="/s/images/logos/voe-logo-2.svg"]`
	playButtonBind    = `img[src="play.png"][alt="Reproducir"][id="start"]`
	playerFrameMarker = "player.php"
)

// DefaultExtractors returns the extraction rule for every known provider.
func DefaultExtractors() map[models.Provider]Extractor {
	return map[models.Provider]Extractor{
		models.ProviderVidhide:  &playerEmbedExtractor{sleep: time.Sleep},
		models.ProviderFilemoon: &playerEmbedExtractor{sleep: time.Sleep},
		models.ProviderVoe:      &voeExtractor{sleep: time.Sleep},
	}
}

// selectServerOption clicks the span carrying the provider+tier label in the
// opened server menu. Absence of the span means the page does not carry this
// combination.
func selectServerOption(page browser.PageContext, candidate models.ProviderCandidate, sleep func(time.Duration)) error {
	selector := fmt.Sprintf("xpath=//span[contains(text(), '%s')]", candidate.Label())
	if err := page.WaitFor(selector, serverOptionTimeout); err != nil {
		return ErrProviderNotPresent
	}
	if err := page.Click(selector, serverOptionTimeout); err != nil {
		return ErrProviderNotPresent
	}
	// Give the embed time to load and start issuing requests.
	sleep(embedSettleDelay)
	return nil
}

// findFrameURL returns the first attached frame whose URL contains marker.
func findFrameURL(page browser.PageContext, marker string) string {
	for _, u := range page.FrameURLs() {
		if strings.Contains(u, marker) {
			return u
		}
	}
	return ""
}

// pickStream collects the .m3u8 URLs observed on the network, drops known
// bad hosts and returns the best-ranked playlist.
func pickStream(page browser.PageContext) (string, error) {
	captured := page.CapturedURLs(streamMarker)
	candidates := FilterBlocked(captured)
	util.Debugf("Captured %d stream URLs (%d after filtering)", len(captured), len(candidates))

	best, ok := PickBest(candidates)
	if !ok {
		return "", ErrNoStreamCaptured
	}
	return best, nil
}

// voeExtractor handles voe embeds: the stream hides behind a voe.sx iframe
// whose logo click redirects to the playable location.
type voeExtractor struct {
	sleep func(time.Duration)
}

func (x *voeExtractor) TryExtract(page browser.PageContext, candidate models.ProviderCandidate) (string, error) {
	if err := selectServerOption(page, candidate, x.sleep); err != nil {
		return "", err
	}

	frameURL := findFrameURL(page, "voe.sx")
	if frameURL == "" {
		// Some pages inline the player without an iframe hop.
		return pickStream(page)
	}

	util.Debug("Found voe.sx iframe", "url", frameURL)
	if err := page.Navigate(frameURL); err != nil {
		return "", err
	}
	x.sleep(hopSettleDelay)

	if err := page.Click(voeLogoSelector, 10*time.Second); err != nil {
		util.Debugf("voe logo not clickable: %v", err)
	}
	x.sleep(hopSettleDelay)

	return pickStream(page)
}

// playerEmbedExtractor handles providers served through the site's
// player.php iframe: clicking the play image starts a countdown that
// redirects to the real player, after which stream requests appear.
type playerEmbedExtractor struct {
	sleep func(time.Duration)
}

func (x *playerEmbedExtractor) TryExtract(page browser.PageContext, candidate models.ProviderCandidate) (string, error) {
	if err := selectServerOption(page, candidate, x.sleep); err != nil {
		return "", err
	}

	frameURL := findFrameURL(page, playerFrameMarker)
	if frameURL == "" {
		return pickStream(page)
	}

	util.Debug("Found player iframe", "url", frameURL)
	if err := page.Navigate(frameURL); err != nil {
		return "", err
	}
	x.sleep(hopSettleDelay)

	if err := page.Click(playButtonBind, 10*time.Second); err != nil {
		util.Debugf("Play button not clickable: %v", err)
	}

	x.waitForRedirect(page, frameURL)
	return pickStream(page)
}

// waitForRedirect polls until the page leaves the player URL or the wait
// window closes.
func (x *playerEmbedExtractor) waitForRedirect(page browser.PageContext, playerURL string) {
	for i := 0; i < int(redirectWait/time.Second); i++ {
		if page.CurrentURL() != playerURL {
			util.Debug("Player redirected", "url", page.CurrentURL())
			return
		}
		x.sleep(time.Second)
	}
	util.Debug("No redirect before the wait window closed")
}
