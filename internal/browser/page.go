package browser

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/playwright-community/playwright-go"

	"github.com/dmendivil/cuevanago/internal/util"
)

// PageContext is the surface the scraper and resolver use to interact with a
// loaded page. Tests substitute a fake; the real implementation is Page.
type PageContext interface {
	// Navigate loads a URL and waits for the DOM to be ready.
	Navigate(url string) error
	// WaitFor blocks until the selector is visible or the timeout elapses.
	WaitFor(selector string, timeout time.Duration) error
	// Click waits for the selector and clicks it.
	Click(selector string, timeout time.Duration) error
	// Text returns the text content of the first match.
	Text(selector string) (string, error)
	// Attr returns an attribute of the first match.
	Attr(selector, name string) (string, error)
	// AttrAll returns the attribute of every match, skipping empty values.
	AttrAll(selector, name string) ([]string, error)
	// Content returns the current page HTML.
	Content() (string, error)
	// Evaluate runs a script on the page, discarding its result.
	Evaluate(script string) error
	// FrameURLs returns the URL of every frame attached to the page.
	FrameURLs() []string
	// CapturedURLs returns network response URLs containing substr, in
	// arrival order.
	CapturedURLs(substr string) []string
	// CurrentURL returns the page's current address.
	CurrentURL() string
}

const navigateTimeout = 60 * time.Second

// Page wraps a playwright page and records every network response URL so
// stream playlists surfaced by embedded players can be collected later.
type Page struct {
	page playwright.Page

	mu       sync.Mutex
	captured []string
	seen     map[string]struct{}
}

func newPage(pg playwright.Page) *Page {
	p := &Page{
		page: pg,
		seen: make(map[string]struct{}),
	}
	pg.OnResponse(func(resp playwright.Response) {
		p.record(resp.URL())
	})
	return p
}

func (p *Page) record(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.seen[url]; ok {
		return
	}
	p.seen[url] = struct{}{}
	p.captured = append(p.captured, url)
}

// Navigate loads a URL and waits for the DOM to be ready.
func (p *Page) Navigate(url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(navigateTimeout.Milliseconds())),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", url)
	}
	util.Debug("Page loaded", "url", url)
	return nil
}

// WaitFor blocks until the selector is visible or the timeout elapses.
func (p *Page) WaitFor(selector string, timeout time.Duration) error {
	err := p.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return errors.Wrapf(err, "timed out waiting for %q", selector)
	}
	return nil
}

// Click waits for the selector and clicks it.
func (p *Page) Click(selector string, timeout time.Duration) error {
	err := p.page.Locator(selector).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to click %q", selector)
	}
	return nil
}

// Text returns the text content of the first match.
func (p *Page) Text(selector string) (string, error) {
	text, err := p.page.Locator(selector).First().TextContent()
	if err != nil {
		return "", errors.Wrapf(err, "failed to read text of %q", selector)
	}
	return strings.TrimSpace(text), nil
}

// Attr returns an attribute of the first match.
func (p *Page) Attr(selector, name string) (string, error) {
	value, err := p.page.Locator(selector).First().GetAttribute(name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s of %q", name, selector)
	}
	return value, nil
}

// AttrAll returns the attribute of every match, skipping empty values.
func (p *Page) AttrAll(selector, name string) ([]string, error) {
	loc := p.page.Locator(selector)
	count, err := loc.Count()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count %q", selector)
	}
	values := make([]string, 0, count)
	for i := 0; i < count; i++ {
		value, err := loc.Nth(i).GetAttribute(name)
		if err != nil || value == "" {
			continue
		}
		values = append(values, value)
	}
	return values, nil
}

// Content returns the current page HTML.
func (p *Page) Content() (string, error) {
	html, err := p.page.Content()
	if err != nil {
		return "", errors.Wrap(err, "failed to read page content")
	}
	return html, nil
}

// Evaluate runs a script on the page, discarding its result.
func (p *Page) Evaluate(script string) error {
	if _, err := p.page.Evaluate(script); err != nil {
		return errors.Wrap(err, "script evaluation failed")
	}
	return nil
}

// FrameURLs returns the URL of every frame attached to the page.
func (p *Page) FrameURLs() []string {
	frames := p.page.Frames()
	urls := make([]string, 0, len(frames))
	for _, f := range frames {
		if u := f.URL(); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// CapturedURLs returns network response URLs containing substr, in arrival order.
func (p *Page) CapturedURLs(substr string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var matches []string
	for _, u := range p.captured {
		if strings.Contains(u, substr) {
			matches = append(matches, u)
		}
	}
	return matches
}

// CurrentURL returns the page's current address.
func (p *Page) CurrentURL() string {
	return p.page.URL()
}

// Close closes the underlying tab.
func (p *Page) Close() {
	_ = p.page.Close()
}
