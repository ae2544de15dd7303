// Package vault builds the in-memory model of a notes directory: the file
// tree, the page and attachment entities, and the indices link resolution
// runs against.
package vault

import (
	"sort"

	"git.home.luguber.info/inful/notesite/internal/timestamp"
)

// Entity is the common surface of the two leaf kinds, Page and Attachment.
// Resolution and backlink code is written against this interface only; the
// concrete cases carry their own fields.
type Entity interface {
	// Key addresses the entity in the index arena: titlepath for pages,
	// linkpath for attachments. Backlink sets store keys, never pointers.
	Key() string
	Title() string
	CanonicalTitle() string
	LinkPath() string

	// AddBacklink records an inbound edge. Backlink identity is title-based:
	// two sources sharing a canonical title occupy one slot.
	AddBacklink(canonTitle, key string)
	// BacklinkKeys returns the arena keys of inbound sources, ordered by the
	// source's canonical title for deterministic output.
	BacklinkKeys() []string
}

// backlinkSet maps canonical source title to arena key. Keying on the title
// makes pages with colliding titles one backlink-graph node, matching how
// links to those titles resolve.
type backlinkSet map[string]string

func (b backlinkSet) add(canonTitle, key string) { b[canonTitle] = key }

func (b backlinkSet) keys() []string {
	titles := make([]string, 0, len(b))
	for t := range b {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	out := make([]string, len(titles))
	for i, t := range titles {
		out[i] = b[t]
	}
	return out
}

// Page is a content note. Created once during the walk; afterwards only the
// backlink set and the two HTML caches mutate.
type Page struct {
	RawTitle   string // author casing preserved
	CanonTitle string
	Dir        string // sanitized vault-relative directory
	FileName   string
	AbsPath    string
	TitlePath  string // Dir + canonical title, the primary index key
	URLPath    string // Dir + output file name, used in generated URLs

	Links       []string // raw wiki-link tokens, resolved lazily
	Frontmatter map[string]any
	Times       timestamp.Timestamp
	Source      string // markdown body, frontmatter already stripped

	// Rendered caches, lazily populated and idempotent to recompute.
	HTML        string
	EscapedHTML string

	backlinks backlinkSet
}

func (p *Page) Key() string            { return p.TitlePath }
func (p *Page) Title() string          { return p.RawTitle }
func (p *Page) CanonicalTitle() string { return p.CanonTitle }
func (p *Page) LinkPath() string       { return p.URLPath }
func (p *Page) BacklinkKeys() []string { return p.backlinks.keys() }

func (p *Page) AddBacklink(title, key string) {
	if p.backlinks == nil {
		p.backlinks = backlinkSet{}
	}
	p.backlinks.add(title, key)
}

// Attachment is any non-Markdown file. It is copied byte-for-byte to the
// output tree and keeps its original file name.
type Attachment struct {
	RawTitle   string // file stem
	CanonTitle string
	FileName   string
	AbsPath    string
	URLPath    string // sanitized dir + original file name

	backlinks backlinkSet
}

func (a *Attachment) Key() string            { return a.URLPath }
func (a *Attachment) Title() string          { return a.RawTitle }
func (a *Attachment) CanonicalTitle() string { return a.CanonTitle }
func (a *Attachment) LinkPath() string       { return a.URLPath }
func (a *Attachment) BacklinkKeys() []string { return a.backlinks.keys() }

func (a *Attachment) AddBacklink(title, key string) {
	if a.backlinks == nil {
		a.backlinks = backlinkSet{}
	}
	a.backlinks.add(title, key)
}
