// Package browser drives the headless Chromium session used to load
// movie pages. The rest of the tool talks to the PageContext interface so
// extraction logic stays testable without a browser.
package browser

import (
	"github.com/pkg/errors"
	"github.com/playwright-community/playwright-go"

	"github.com/dmendivil/cuevanago/internal/util"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// launchArgs mirror the hardened flags the source site tolerates; several of
// them exist to dodge its automation detection.
var launchArgs = []string{
	"--window-size=1920,1080",
	"--ignore-certificate-errors",
	"--disable-notifications",
	"--disable-popup-blocking",
	"--disable-gpu",
	"--no-sandbox",
	"--disable-dev-shm-usage",
	"--disable-web-security",
	"--disable-features=IsolateOrigins,site-per-process",
	"--disable-site-isolation-trials",
	"--disable-extensions",
	"--disable-blink-features=AutomationControlled",
}

// stealthScript masks the webdriver flag before any page script runs.
const stealthScript = `Object.defineProperty(navigator, 'webdriver', { get: () => undefined });`

// Session owns the playwright driver, browser and context. It is acquired
// once per run and must be released with Close on every exit path.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	ctx     playwright.BrowserContext
}

// NewSession launches a headless Chromium with the anti-detection profile.
func NewSession() (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, errors.Wrap(err, "failed to start playwright driver")
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     launchArgs,
	})
	if err != nil {
		_ = pw.Stop()
		return nil, errors.Wrap(err, "failed to launch browser")
	}

	ctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent:         playwright.String(userAgent),
		IgnoreHttpsErrors: playwright.Bool(true),
		Viewport: &playwright.Size{
			Width:  1920,
			Height: 1080,
		},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, errors.Wrap(err, "failed to create browser context")
	}

	if err := ctx.AddInitScript(playwright.Script{Content: playwright.String(stealthScript)}); err != nil {
		util.Warnf("Failed to install stealth script: %v", err)
	}

	return &Session{pw: pw, browser: browser, ctx: ctx}, nil
}

// NewPage opens a fresh tab with network capture enabled.
func (s *Session) NewPage() (*Page, error) {
	pg, err := s.ctx.NewPage()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open page")
	}
	return newPage(pg), nil
}

// Close tears down the context, browser and driver.
func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.ctx != nil {
		_ = s.ctx.Close()
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.pw != nil {
		_ = s.pw.Stop()
	}
	util.Debug("Browser session closed")
}
