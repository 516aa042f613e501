package util

import "fmt"

// Helper prints the help message
func Helper() {
	title := titleStyle.Render("🎞️  CuevanaGo - Movie Link Scraper")

	usage := helpStyle.Render("📖 Usage:")
	usageExamples := []string{
		"  cuevanago " + exampleStyle.Render("[movie page URL]"),
		"  cuevanago " + optionStyle.Render("[options]") + " " + exampleStyle.Render("[movie page URL]"),
		"  cuevanago " + optionStyle.Render("-search") + " " + exampleStyle.Render("\"matrix\""),
	}

	options := helpStyle.Render("⚙️  Options:")
	optionsList := []string{
		"  " + optionStyle.Render("-play") + "          ▶️  Play candidate links in an external player, confirming each",
		"  " + optionStyle.Render("-verify") + "        ✅ Test-play candidate links in the external player",
		"  " + optionStyle.Render("-playlist") + "      📺 Append a playlist entry to RokuChannelList.xml",
		"  " + optionStyle.Render("-batch") + "         🗂  Process every movie in the link store",
		"  " + optionStyle.Render("-random") + "        🔀 Randomize batch processing order",
		"  " + optionStyle.Render("-record") + "        📝 Save the verified link to <title>.txt",
		"  " + optionStyle.Render("-search <term>") + " 🔍 Search the link store by title",
		"  " + optionStyle.Render("-crawl <pages>") + " 🌐 Crawl catalog pages into the link store",
		"  " + optionStyle.Render("-debug") + "         🐛 Enable debug mode with detailed information",
		"  " + optionStyle.Render("-help, -h") + "      📚 Show this help message",
		"  " + optionStyle.Render("-version") + "       ℹ️  Show version information",
	}

	sources := helpStyle.Render("🎯 Source selection (default tries all, HD first):")
	sourcesList := []string{
		"  " + optionStyle.Render("-vidhide-hd -filemoon-hd -voe-hd"),
		"  " + optionStyle.Render("-vidhide-cam -filemoon-cam -voe-cam"),
	}

	fmt.Println(title)
	fmt.Println()
	fmt.Println(usage)
	for _, line := range usageExamples {
		fmt.Println(line)
	}
	fmt.Println()
	fmt.Println(options)
	for _, line := range optionsList {
		fmt.Println(line)
	}
	fmt.Println()
	fmt.Println(sources)
	for _, line := range sourcesList {
		fmt.Println(line)
	}
	fmt.Println()
}
