package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMoviePage = `
<html><body>
<div class="TPost">
  <h1 class="Title">Oppenheimer</h1>
  <figure><img class="lazy" src="https://img.example/oppenheimer.jpg"></figure>
  <div class="Description"><p>The story of J. Robert Oppenheimer.</p></div>
  <p class="Info">7.2 3h 0m 2023</p>
  <ul>
    <li class="AAIco-adjust"><a href="/genero/drama">Drama</a><a href="/genero/historia">Historia</a></li>
    <li class="AAIco-adjust"><a href="/actor/cillian">Cillian Murphy</a></li>
  </ul>
</div>
</body></html>`

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseMovieDocument(t *testing.T) {
	doc := parseDoc(t, sampleMoviePage)

	record, err := ParseMovieDocument(doc, "https://site.example/ver-pelicula/oppenheimer")
	require.NoError(t, err)

	assert.Equal(t, "Oppenheimer", record.Title)
	assert.Equal(t, 2023, record.Year)
	assert.Equal(t, "3h 0m", record.Runtime)
	assert.Equal(t, "https://img.example/oppenheimer.jpg", record.PosterURL)
	assert.Equal(t, "The story of J. Robert Oppenheimer.", record.Description)
	assert.Equal(t, []string{"Drama", "Historia"}, record.Genres)
	assert.Equal(t, "https://site.example/ver-pelicula/oppenheimer", record.SourceURL)
	assert.Equal(t, "Oppenheimer (2023)", record.DisplayName())
}

func TestParseMovieDocumentMissingTitle(t *testing.T) {
	doc := parseDoc(t, `<html><body><h1>Access denied</h1></body></html>`)

	_, err := ParseMovieDocument(doc, "https://site.example/ver-pelicula/blocked")
	assert.Error(t, err)
}

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name    string
		info    string
		year    int
		runtime string
	}{
		{"full line", "7.2 1h 49m 2023", 2023, "1h 49m"},
		{"year only", "2021", 2021, ""},
		{"no year", "7.2 1h 30m", 0, "1h"},
		{"empty", "", 0, ""},
		{"implausible year", "7.2 1h 49m 9999", 0, "1h 49m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, runtime := parseInfo(tt.info)
			assert.Equal(t, tt.year, year)
			assert.Equal(t, tt.runtime, runtime)
		})
	}
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "The Batman", cleanTitle(`"The Batman"`))
	assert.Equal(t, "Dune", cleanTitle(`Dune""`))
	assert.Equal(t, "Plain Title", cleanTitle("  Plain Title  "))
}
