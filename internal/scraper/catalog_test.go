package scraper

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmendivil/cuevanago/internal/browser"
	"github.com/dmendivil/cuevanago/internal/store"
)

const sampleListingPage = `
<html><body>
<ul class="MovieList Rows">
  <li><a href="/ver-pelicula/oppenheimer"><h2 class="Title">Oppenheimer</h2></a></li>
  <li><a href="/ver-pelicula/dune-parte-dos"><h2 class="Title">Dune: Parte Dos</h2></a></li>
  <li><a href="/genero/drama">Drama</a></li>
  <li><a href="/ver-pelicula/sin-titulo"></a></li>
</ul>
</body></html>`

// listingPage serves canned listing HTML per URL.
type listingPage struct {
	pages     map[string]string
	navigated []string
	current   string
}

func (p *listingPage) Navigate(url string) error {
	p.navigated = append(p.navigated, url)
	p.current = url
	return nil
}

func (p *listingPage) WaitFor(string, time.Duration) error { return nil }

func (p *listingPage) Click(string, time.Duration) error { return nil }

func (p *listingPage) Text(string) (string, error) { return "", nil }

func (p *listingPage) Attr(_, _ string) (string, error) { return "", nil }

func (p *listingPage) AttrAll(_, _ string) ([]string, error) { return nil, nil }

func (p *listingPage) Content() (string, error) { return p.pages[p.current], nil }

func (p *listingPage) Evaluate(string) error { return nil }

func (p *listingPage) FrameURLs() []string { return nil }

func (p *listingPage) CapturedURLs(string) []string { return nil }

func (p *listingPage) CurrentURL() string { return p.current }

var _ browser.PageContext = (*listingPage)(nil)

func newTestCrawler(t *testing.T) *Crawler {
	t.Helper()
	c := NewCrawler("https://site.example/", store.New(t.TempDir()+"/movie_links.txt"))
	c.Sleep = func(time.Duration) {}
	c.Rand = rand.New(rand.NewSource(1))
	return c
}

func TestParseListing(t *testing.T) {
	c := newTestCrawler(t)

	entries, err := c.parseListing(sampleListingPage)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, store.Entry{
		Title: "Oppenheimer",
		URL:   "https://site.example/ver-pelicula/oppenheimer",
	}, entries[0])
	assert.Equal(t, store.Entry{
		Title: "Dune: Parte Dos",
		URL:   "https://site.example/ver-pelicula/dune-parte-dos",
	}, entries[1])
}

func TestParseListingIgnoresNonMovieLinks(t *testing.T) {
	c := newTestCrawler(t)

	entries, err := c.parseListing(`<ul class="MovieList Rows">
		<li><a href="/genero/accion">Accion</a></li>
	</ul>`)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCrawlAppendsEveryPage(t *testing.T) {
	c := newTestCrawler(t)
	page := &listingPage{pages: map[string]string{
		"https://site.example/peliculas/publicadas/page/1": sampleListingPage,
		"https://site.example/peliculas/publicadas/page/2": sampleListingPage,
	}}

	total, err := c.Crawl(page, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	entries, err := c.Store.Load()
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestCrawlSkipsFailedPages(t *testing.T) {
	c := newTestCrawler(t)
	page := &listingPage{pages: map[string]string{
		"https://site.example/peliculas/publicadas/page/2": sampleListingPage,
	}}

	// Page 1 has no listing markup and is skipped after retrying.
	total, err := c.Crawl(page, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestCrawlRejectsZeroPages(t *testing.T) {
	c := newTestCrawler(t)
	_, err := c.Crawl(&listingPage{}, 0)
	assert.Error(t, err)
}
