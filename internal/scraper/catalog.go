package scraper

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/dmendivil/cuevanago/internal/browser"
	"github.com/dmendivil/cuevanago/internal/store"
	"github.com/dmendivil/cuevanago/internal/util"
)

const (
	catalogListSelector = "ul.MovieList.Rows"
	moviePathPrefix     = "/ver-pelicula/"
	catalogPageAttempts = 2
)

// Crawler walks the site's paginated catalog listing and appends every movie
// it finds to the link store. Pages are visited strictly one at a time with
// a randomized delay in between to keep the footprint low.
type Crawler struct {
	BaseURL string
	Store   *store.Store

	// Sleep and Rand are injectable for tests.
	Sleep func(time.Duration)
	Rand  *rand.Rand
}

// NewCrawler returns a crawler over the given site base URL and store.
func NewCrawler(baseURL string, st *store.Store) *Crawler {
	return &Crawler{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Store:   st,
		Sleep:   time.Sleep,
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Crawl visits catalog pages 1..pages, appending entries after each page so
// progress survives interruption. Failed pages are retried once and then
// skipped; the crawl continues.
func (c *Crawler) Crawl(page browser.PageContext, pages int) (int, error) {
	if pages < 1 {
		return 0, errors.New("page count must be at least 1")
	}

	total := 0
	for n := 1; n <= pages; n++ {
		pageURL := fmt.Sprintf("%s/peliculas/publicadas/page/%d", c.BaseURL, n)

		entries, err := c.crawlPage(page, pageURL)
		if err != nil {
			util.Warnf("Skipping catalog page %d: %v", n, err)
			continue
		}

		for _, e := range entries {
			if err := c.Store.Append(e); err != nil {
				return total, err
			}
			total++
		}
		util.Infof("Catalog page %d/%d: %d movies (total %d)", n, pages, len(entries), total)

		if n < pages {
			c.Sleep(c.randomDelay(1*time.Second, 3*time.Second))
		}
	}
	return total, nil
}

func (c *Crawler) crawlPage(page browser.PageContext, pageURL string) ([]store.Entry, error) {
	var lastErr error
	for attempt := 1; attempt <= catalogPageAttempts; attempt++ {
		if attempt > 1 {
			c.Sleep(c.randomDelay(2*time.Second, 5*time.Second))
		}

		if err := page.Navigate(pageURL); err != nil {
			lastErr = err
			continue
		}
		if err := page.WaitFor("body", 20*time.Second); err != nil {
			lastErr = err
			continue
		}

		html, err := page.Content()
		if err != nil {
			lastErr = err
			continue
		}
		entries, err := c.parseListing(html)
		if err != nil {
			lastErr = err
			continue
		}
		if len(entries) == 0 {
			lastErr = errors.Errorf("no movie links on %s", pageURL)
			continue
		}
		return entries, nil
	}
	return nil, lastErr
}

// parseListing extracts catalog entries from a listing page's HTML.
func (c *Crawler) parseListing(html string) ([]store.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog page")
	}

	var entries []store.Entry
	doc.Find(catalogListSelector + " a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || !strings.HasPrefix(href, moviePathPrefix) {
			return
		}
		title := strings.TrimSpace(s.Text())
		if title == "" {
			return
		}
		entries = append(entries, store.Entry{
			Title: title,
			URL:   c.BaseURL + href,
		})
	})
	return entries, nil
}

func (c *Crawler) randomDelay(min, max time.Duration) time.Duration {
	return min + time.Duration(c.Rand.Int63n(int64(max-min)))
}
