// Package playlist writes movie entries in the XML schema the Roku channel
// application consumes.
package playlist

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/dmendivil/cuevanago/internal/models"
	"github.com/dmendivil/cuevanago/internal/util"
)

const (
	openTag  = "<Content>"
	closeTag = "</Content>"
)

// Item is one playlist entry.
type Item struct {
	XMLName      xml.Name   `xml:"item"`
	Title        string     `xml:"title,attr"`
	Description  string     `xml:"description,attr"`
	PosterURL    string     `xml:"hdposterurl,attr"`
	StreamFormat string     `xml:"streamformat,attr"`
	URL          string     `xml:"url,attr"`
	Genre        string     `xml:"genre"`
	Year         int        `xml:"year,omitempty"`
	Runtime      string     `xml:"runtime,omitempty"`
	Subtitles    []Subtitle `xml:"subtitle"`
}

// Subtitle is a subtitle track placeholder; the channel requires the
// elements to exist even without a URL.
type Subtitle struct {
	Language    string `xml:"language,attr"`
	Description string `xml:"description,attr"`
	URL         string `xml:"url,attr"`
}

// NewItem builds a playlist entry from a movie and its resolved stream.
func NewItem(movie *models.MovieRecord, link models.ResolvedLink) Item {
	return Item{
		Title:        movie.Title,
		Description:  movie.Description,
		PosterURL:    movie.PosterURL,
		StreamFormat: "hls",
		URL:          link.URL,
		Genre:        movie.GenresDisplay(),
		Year:         movie.Year,
		Runtime:      movie.Runtime,
		Subtitles: []Subtitle{
			{Language: "eng", Description: "English"},
			{Language: "spa", Description: "Spanish"},
		},
	}
}

// Playlist appends items into a single <Content> document on disk.
type Playlist struct {
	path string
}

// New returns a playlist over the given file path. The document is created
// on the first append.
func New(path string) *Playlist {
	return &Playlist{path: path}
}

// Path returns the backing file path.
func (p *Playlist) Path() string {
	return p.path
}

// AppendEntry inserts the item before the closing tag, creating the
// document wrapper when the file does not exist yet. Existing items are
// preserved untouched.
func (p *Playlist) AppendEntry(movie *models.MovieRecord, link models.ResolvedLink) error {
	item := NewItem(movie, link)

	encoded, err := xml.MarshalIndent(item, "   ", "   ")
	if err != nil {
		return errors.Wrap(err, "failed to encode playlist item")
	}

	body := openTag + "\n"
	existing, err := os.ReadFile(p.path)
	switch {
	case err == nil:
		body = strings.Replace(string(existing), closeTag, "", 1)
		if !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
	case !os.IsNotExist(err):
		return errors.Wrapf(err, "failed to read playlist %s", p.path)
	}

	body += string(encoded) + "\n" + closeTag + "\n"
	if err := os.WriteFile(p.path, []byte(body), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write playlist %s", p.path)
	}

	util.Infof("Playlist entry written for %s", movie.Title)
	return nil
}
