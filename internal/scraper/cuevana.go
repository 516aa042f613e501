// Package scraper extracts movie metadata and catalog listings from the
// source site's HTML.
package scraper

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/dmendivil/cuevanago/internal/browser"
	"github.com/dmendivil/cuevanago/internal/models"
	"github.com/dmendivil/cuevanago/internal/util"
)

// Selectors for the movie page. The site's DOM is an unstable external
// contract; these follow its current markup.
const (
	titleSelector       = "h1.Title"
	posterSelector      = "figure img.lazy"
	descriptionSelector = "div.Description"
	infoSelector        = "p.Info"
	genreSelector       = "li.AAIco-adjust:first-child a"
	serverMenuSelector  = "div.H_ndV_0.fa.fa-chevron-down"
)

// overlayScript strips popup and overlay elements the site injects over the
// player before any element can be clicked.
const overlayScript = `
document.querySelectorAll("[id^='lkdjl'], .overlay, .popup, .modal, [class*='overlay'], [class*='popup'], [class*='modal']").forEach(function(element) {
	element.remove();
});`

const (
	menuClickAttempts = 3
	menuClickTimeout  = 20 * time.Second
	menuSettleDelay   = 2 * time.Second
)

// sleep is replaced in tests to avoid real delays.
var sleep = time.Sleep

// ExtractMovie pulls title, year, poster and description from a loaded
// movie page. A missing title means the page did not render as a movie page
// and is treated as a load failure.
func ExtractMovie(page browser.PageContext, sourceURL string) (*models.MovieRecord, error) {
	html, err := page.Content()
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse movie page")
	}
	return ParseMovieDocument(doc, sourceURL)
}

// ParseMovieDocument extracts a MovieRecord from a parsed movie page.
func ParseMovieDocument(doc *goquery.Document, sourceURL string) (*models.MovieRecord, error) {
	title := strings.TrimSpace(doc.Find(titleSelector).First().Text())
	if title == "" {
		return nil, errors.New("movie page has no title, the site may have blocked the request")
	}

	record := &models.MovieRecord{
		Title:       cleanTitle(title),
		SourceURL:   sourceURL,
		Description: strings.TrimSpace(doc.Find(descriptionSelector).First().Text()),
	}

	if poster, ok := doc.Find(posterSelector).First().Attr("src"); ok {
		record.PosterURL = poster
	}

	info := strings.TrimSpace(doc.Find(infoSelector).First().Text())
	record.Year, record.Runtime = parseInfo(info)

	doc.Find(genreSelector).Each(func(_ int, s *goquery.Selection) {
		if g := strings.TrimSpace(s.Text()); g != "" {
			record.Genres = append(record.Genres, g)
		}
	})

	util.Debug("Extracted movie metadata",
		"title", record.Title, "year", record.Year, "genres", record.GenresDisplay())
	return record, nil
}

// RemoveOverlays strips popups the site layers over the player.
func RemoveOverlays(page browser.PageContext) {
	if err := page.Evaluate(overlayScript); err != nil {
		util.Debugf("No overlays removed: %v", err)
	}
}

// OpenServerMenu expands the dropdown listing the hosting providers. Clicks
// on this element get intercepted by late-loading ads, so it retries a few
// times.
func OpenServerMenu(page browser.PageContext) error {
	var lastErr error
	for attempt := 1; attempt <= menuClickAttempts; attempt++ {
		if err := page.Click(serverMenuSelector, menuClickTimeout); err != nil {
			lastErr = err
			util.Warnf("Server menu click failed (attempt %d/%d): %v", attempt, menuClickAttempts, err)
			sleep(menuSettleDelay)
			continue
		}
		sleep(menuSettleDelay)
		return nil
	}
	return errors.Wrap(lastErr, "failed to open the server menu")
}

// parseInfo splits the "rating · runtime · year" line: the trailing token is
// the year when numeric, the middle tokens are the runtime.
func parseInfo(info string) (int, string) {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return 0, ""
	}
	year := 0
	if y, err := strconv.Atoi(fields[len(fields)-1]); err == nil && y > 1800 && y < 3000 {
		year = y
	}
	runtime := ""
	if len(fields) > 2 {
		runtime = strings.Join(fields[1:len(fields)-1], " ")
	}
	return year, runtime
}

// cleanTitle removes stray quote characters the site sometimes embeds.
func cleanTitle(title string) string {
	title = strings.ReplaceAll(title, `""`, "")
	title = strings.ReplaceAll(title, `"`, "")
	return strings.TrimSpace(title)
}
