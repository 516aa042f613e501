package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dmendivil/cuevanago/internal/appflow"
	"github.com/dmendivil/cuevanago/internal/browser"
	"github.com/dmendivil/cuevanago/internal/models"
	"github.com/dmendivil/cuevanago/internal/util"
	"github.com/dmendivil/cuevanago/internal/version"
)

func main() {
	// Define all flags in one place
	versionFlag := flag.Bool("version", false, "show version information")
	debugFlag := flag.Bool("debug", false, "enable debug mode")
	helpFlag := flag.Bool("help", false, "show help message")
	altHelpFlag := flag.Bool("h", false, "show help message")

	playFlag := flag.Bool("play", false, "play candidate links in an external media player, confirming each")
	verifyFlag := flag.Bool("verify", false, "verify candidate links by test-playing them in the external player")
	playlistFlag := flag.Bool("playlist", false, "append a playlist entry to "+appflow.DefaultPlaylistPath)
	batchFlag := flag.Bool("batch", false, "process every movie in the link store")
	randomFlag := flag.Bool("random", false, "randomize batch processing order")
	recordFlag := flag.Bool("record", false, "save the verified link to <title>.txt")
	searchFlag := flag.String("search", "", "search the link store by title")
	crawlFlag := flag.Int("crawl", 0, "crawl this many catalog pages into the link store")

	vidhideHD := flag.Bool("vidhide-hd", false, "try the vidhide HD source")
	filemoonHD := flag.Bool("filemoon-hd", false, "try the filemoon HD source")
	voeHD := flag.Bool("voe-hd", false, "try the voe HD source")
	vidhideCAM := flag.Bool("vidhide-cam", false, "try the vidhide CAM source")
	filemoonCAM := flag.Bool("filemoon-cam", false, "try the filemoon CAM source")
	voeCAM := flag.Bool("voe-cam", false, "try the voe CAM source")

	flag.Parse()

	if *versionFlag || version.HasVersionArg() {
		version.ShowVersion()
		return
	}

	if *helpFlag || *altHelpFlag {
		util.Helper()
		return
	}

	util.SetDebugMode(*debugFlag)
	util.InitLogger(appflow.DefaultLogPath)
	defer util.CloseLogFile()

	candidates := candidatesFromFlags(
		*vidhideHD, *filemoonHD, *voeHD,
		*vidhideCAM, *filemoonCAM, *voeCAM,
	)

	opts := appflow.Options{
		Play:     *playFlag,
		Verify:   *verifyFlag,
		Playlist: *playlistFlag || *batchFlag,
		Record:   *recordFlag,
	}

	if err := run(candidates, opts, *searchFlag, *batchFlag, *randomFlag, *crawlFlag); err != nil {
		fmt.Fprintln(os.Stderr, util.ErrorHandler(err))
		util.CloseLogFile()
		os.Exit(1)
	}
}

func run(candidates []models.ProviderCandidate, opts appflow.Options, search string, batch, random bool, crawl int) error {
	pageURL := flag.Arg(0)
	if pageURL == "" && search == "" && !batch && crawl == 0 {
		util.Helper()
		input, err := util.GetUserInput("Enter a movie page URL or a title to search")
		if err != nil || strings.TrimSpace(input) == "" {
			return nil
		}
		input = strings.TrimSpace(input)
		if strings.HasPrefix(input, "http") {
			pageURL = input
		} else {
			search = input
		}
	}

	session, err := browser.NewSession()
	if err != nil {
		return err
	}
	defer session.Close()

	app := appflow.New(session, candidates)

	switch {
	case crawl > 0:
		return app.RunCrawl(crawl)
	case batch:
		return app.RunBatch(opts, random)
	case search != "":
		return app.RunSearch(search, opts)
	default:
		return app.ProcessMovie(pageURL, opts)
	}
}

// candidatesFromFlags turns the source booleans into a preference order, HD
// before CAM. With no flag set every source is tried in the default order.
func candidatesFromFlags(vidhideHD, filemoonHD, voeHD, vidhideCAM, filemoonCAM, voeCAM bool) []models.ProviderCandidate {
	type pick struct {
		set       bool
		candidate models.ProviderCandidate
	}
	picks := []pick{
		{vidhideHD, models.ProviderCandidate{Provider: models.ProviderVidhide, Tier: models.TierHD}},
		{filemoonHD, models.ProviderCandidate{Provider: models.ProviderFilemoon, Tier: models.TierHD}},
		{voeHD, models.ProviderCandidate{Provider: models.ProviderVoe, Tier: models.TierHD}},
		{vidhideCAM, models.ProviderCandidate{Provider: models.ProviderVidhide, Tier: models.TierCAM}},
		{filemoonCAM, models.ProviderCandidate{Provider: models.ProviderFilemoon, Tier: models.TierCAM}},
		{voeCAM, models.ProviderCandidate{Provider: models.ProviderVoe, Tier: models.TierCAM}},
	}

	var candidates []models.ProviderCandidate
	for _, p := range picks {
		if p.set {
			candidates = append(candidates, p.candidate)
		}
	}
	if len(candidates) == 0 {
		return models.DefaultCandidates()
	}
	return candidates
}
