package appflow

import (
	"github.com/dmendivil/cuevanago/internal/scraper"
	"github.com/dmendivil/cuevanago/internal/util"
)

// DefaultBaseURL is the source site's root address.
const DefaultBaseURL = "https://www.cuevana3.is"

// RunCrawl walks the catalog listing and fills the link store.
func (a *App) RunCrawl(pages int) error {
	page, err := a.Session.NewPage()
	if err != nil {
		return err
	}
	defer page.Close()

	crawler := scraper.NewCrawler(DefaultBaseURL, a.Store)
	total, err := crawler.Crawl(page, pages)
	if err != nil {
		return err
	}
	util.Infof("Crawl finished: %d movies saved to %s", total, a.Store.Path())
	return nil
}
