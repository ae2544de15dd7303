// Package feed serializes page lists as Atom documents.
//
// No feed library is used; the Atom surface needed here is a fixed handful
// of elements that encoding/xml expresses directly.
package feed

import (
	"encoding/xml"
	"fmt"
	"time"

	"git.home.luguber.info/inful/notesite/internal/vault"
)

const atomNS = "http://www.w3.org/2005/Atom"

type Feed struct {
	XMLName xml.Name `xml:"feed"`
	NS      string   `xml:"xmlns,attr"`
	Title   string   `xml:"title"`
	ID      string   `xml:"id"`
	Updated string   `xml:"updated"`
	Links   []Link   `xml:"link"`
	Entries []Entry  `xml:"entry"`
}

type Link struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
}

type Entry struct {
	Title     string  `xml:"title"`
	ID        string  `xml:"id"`
	Link      Link    `xml:"link"`
	Published string  `xml:"published"`
	Updated   string  `xml:"updated"`
	Content   Content `xml:"content"`
}

type Content struct {
	Type string `xml:"type,attr"`
	// Raw page HTML; the XML encoder escapes it on marshal, which is exactly
	// the form Atom requires for type="html".
	Body string `xml:",chardata"`
}

// Build assembles a feed over pages in the order given. selfPath is the
// feed document's own site-relative path, referenced by the rel="self"
// link. Every page's HTML cache must already be populated.
func Build(title, baseURL, selfPath string, now time.Time, pages []*vault.Page) Feed {
	f := Feed{
		NS:      atomNS,
		Title:   title,
		ID:      baseURL + "/",
		Updated: now.Format(time.RFC3339),
		Links: []Link{
			{Href: baseURL + "/", Rel: "alternate"},
			{Href: baseURL + "/" + selfPath, Rel: "self"},
		},
	}
	for _, p := range pages {
		f.Entries = append(f.Entries, Entry{
			Title:     p.RawTitle,
			ID:        fmt.Sprintf("%s/%s", baseURL, p.URLPath),
			Link:      Link{Href: fmt.Sprintf("%s/%s", baseURL, p.URLPath)},
			Published: p.Times.CreatedRFC3339(),
			Updated:   p.Times.ModifiedRFC3339(),
			Content:   Content{Type: "html", Body: p.HTML},
		})
	}
	return f
}

// Marshal renders the feed document with the XML prolog.
func (f Feed) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal atom feed: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
