package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"path"
	"sort"
	"time"

	"git.home.luguber.info/inful/notesite/internal/feed"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/pathutil"
	"git.home.luguber.info/inful/notesite/internal/util/sets"
	"git.home.luguber.info/inful/notesite/internal/vault"
)

// ErrFeedRootNotFound means a configured feed names a directory that does
// not exist anywhere in the vault.
var ErrFeedRootNotFound = errors.New("feed root directory not found")

// Ref is a rendered link to an entity, used for backlink lists and the
// recently-updated sections.
type Ref struct {
	Title    string
	LinkPath string
	Updated  string
}

func entityRefs(ix *vault.Index, keys []string) []Ref {
	refs := make([]Ref, 0, len(keys))
	for _, k := range keys {
		e, ok := ix.Entity(k)
		if !ok {
			continue
		}
		refs = append(refs, Ref{Title: e.Title(), LinkPath: e.LinkPath()})
	}
	return refs
}

func pageRef(p *vault.Page) Ref {
	return Ref{Title: p.RawTitle, LinkPath: p.URLPath, Updated: p.Times.ModifiedHuman()}
}

// TreeView mirrors the vault tree for the index template.
type TreeView struct {
	Name     string
	LinkPath string
	IsDir    bool
	Children []*TreeView
}

func newTreeView(n *vault.Node) *TreeView {
	if !n.IsDir() {
		return &TreeView{Name: n.Leaf.Title(), LinkPath: n.Leaf.LinkPath()}
	}
	v := &TreeView{
		Name:     n.Base(),
		LinkPath: dirLinkPath(n.Dir),
		IsDir:    true,
	}
	for _, c := range n.Children {
		v.Children = append(v.Children, newTreeView(c))
	}
	return v
}

// dirLinkPath is the URL of a directory listing; the server resolves the
// trailing slash to its index.html.
func dirLinkPath(dir string) string {
	if dir == "" {
		return ""
	}
	return pathutil.SanitizePath(dir) + "/"
}

// emitViews writes the top-level derived pages and the feeds. Pages must
// already be rendered: the feeds and the search index read the HTML caches.
func (b *Builder) emitViews(tree *vault.Node, ix *vault.Index) error {
	if err := b.emitIndex(tree, ix); err != nil {
		return err
	}
	if err := b.emitSearch(ix); err != nil {
		return err
	}
	if err := b.emitLastWeek(ix); err != nil {
		return err
	}
	if err := b.emitDirPages(tree, ix); err != nil {
		return err
	}
	return b.emitFeeds(tree, ix)
}

type indexData struct {
	Title  string
	Recent []Ref
	Tree   *TreeView
}

func (b *Builder) emitIndex(tree *vault.Node, ix *vault.Index) error {
	recent := ix.PagesByModified()
	if len(recent) > b.cfg.Recent {
		recent = recent[:b.cfg.Recent]
	}
	data := indexData{Title: b.cfg.Title, Tree: newTreeView(tree)}
	for _, p := range recent {
		data.Recent = append(data.Recent, pageRef(p))
	}

	out, err := b.renderer.Execute("index.html", data)
	if err != nil {
		return err
	}
	return b.writeFile("index.html", out)
}

type searchEntry struct {
	Title     string `json:"title"`
	Contents  string `json:"contents"`
	TitlePath string `json:"title_path"`
	LinkPath  string `json:"link_path"`
}

type searchData struct {
	Index template.JS
}

func (b *Builder) emitSearch(ix *vault.Index) error {
	entries := make([]searchEntry, 0, len(ix.ByTitlePath))
	for _, p := range ix.Pages() {
		entries = append(entries, searchEntry{
			Title:     p.RawTitle,
			Contents:  p.Source,
			TitlePath: p.TitlePath,
			LinkPath:  p.URLPath,
		})
	}
	blob, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("search index: %w", err)
	}

	out, err := b.renderer.Execute("search.html", searchData{Index: template.JS(blob)})
	if err != nil {
		return err
	}
	return b.writeFile("search.html", out)
}

type weekBucket struct {
	Label string
	Pages []Ref
}

type lastWeekData struct {
	Buckets []weekBucket
}

var bucketLabels = []string{"This week", "Last week", "Two weeks ago", "Three weeks ago"}

func bucketLabel(idx int) string {
	if idx >= 0 && idx < len(bucketLabels) {
		return bucketLabels[idx]
	}
	return "Older"
}

// lastWeekBuckets groups pages by whole weeks since their modification,
// newest first. Scanning stops after the first page older than three weeks;
// that page is still listed so the cutoff is visible on the rendered view.
func lastWeekBuckets(now time.Time, pages []*vault.Page) []weekBucket {
	var buckets []weekBucket
	lastIdx := -1
	for _, p := range pages {
		daysAgo := int(now.Sub(p.Times.Modified).Hours() / 24)
		idx := (daysAgo - 1) / 7
		if idx < 0 {
			idx = 0
		}
		if idx != lastIdx {
			buckets = append(buckets, weekBucket{Label: bucketLabel(idx)})
			lastIdx = idx
		}
		buckets[len(buckets)-1].Pages = append(buckets[len(buckets)-1].Pages, pageRef(p))
		if daysAgo > 21 {
			break
		}
	}
	return buckets
}

func (b *Builder) emitLastWeek(ix *vault.Index) error {
	data := lastWeekData{Buckets: lastWeekBuckets(b.now(), ix.PagesByModified())}
	out, err := b.renderer.Execute("lastweek.html", data)
	if err != nil {
		return err
	}
	return b.writeFile("lastweek.html", out)
}

type dirData struct {
	Name      string
	Entries   []*TreeView
	Backlinks []Ref
}

// emitDirPages writes a listing page per directory. The root is covered by
// index.html and skipped here.
func (b *Builder) emitDirPages(tree *vault.Node, ix *vault.Index) error {
	for _, c := range tree.Children {
		if err := b.walkDirPages(c, ix); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) walkDirPages(n *vault.Node, ix *vault.Index) error {
	if !n.IsDir() {
		return nil
	}
	if err := b.emitDirPage(n, ix); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := b.walkDirPages(c, ix); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) emitDirPage(n *vault.Node, ix *vault.Index) error {
	data := dirData{Name: n.Base()}
	inbound := sets.New[string]()
	for _, c := range n.Children {
		data.Entries = append(data.Entries, newTreeView(c))
		if !c.IsDir() {
			inbound.Union(sets.New(c.Leaf.BacklinkKeys()...))
		}
	}
	data.Backlinks = entityRefs(ix, sets.Sorted(inbound))
	sort.Slice(data.Backlinks, func(i, j int) bool { return data.Backlinks[i].Title < data.Backlinks[j].Title })

	out, err := b.renderer.Execute("dir.html", data)
	if err != nil {
		return err
	}
	return b.writeFile(path.Join(pathutil.SanitizePath(n.Dir), "index.html"), out)
}

func (b *Builder) emitFeeds(tree *vault.Node, ix *vault.Index) error {
	now := b.now()
	if err := b.writeFeed("atom.xml", feed.Build(b.cfg.Title, b.cfg.BaseURL, "atom.xml", now, b.limitRecent(ix.PagesByModified()))); err != nil {
		return err
	}

	names := make([]string, 0, len(b.cfg.Feeds))
	for name := range b.cfg.Feeds {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dir := b.cfg.Feeds[name]
		node := tree.FindDir(dir)
		if node == nil {
			return fmt.Errorf("%w: %s", ErrFeedRootNotFound, dir)
		}
		pages := make([]*vault.Page, 0)
		for _, key := range node.PageKeys() {
			if p, ok := ix.ByTitlePath[key]; ok {
				pages = append(pages, p)
			}
		}
		sort.SliceStable(pages, func(i, j int) bool {
			if pages[i].Times.Modified.Equal(pages[j].Times.Modified) {
				return pages[i].TitlePath < pages[j].TitlePath
			}
			return pages[i].Times.Modified.After(pages[j].Times.Modified)
		})
		title := fmt.Sprintf("%s: %s", b.cfg.Title, name)
		if err := b.writeFeed(name+".atom.xml", feed.Build(title, b.cfg.BaseURL, name+".atom.xml", now, b.limitRecent(pages))); err != nil {
			return err
		}
		slog.Debug("scoped feed written", logfields.Feed(name), logfields.Dir(dir))
	}
	return nil
}

func (b *Builder) limitRecent(pages []*vault.Page) []*vault.Page {
	if len(pages) > b.cfg.Recent {
		return pages[:b.cfg.Recent]
	}
	return pages
}

func (b *Builder) writeFeed(name string, f feed.Feed) error {
	data, err := f.Marshal()
	if err != nil {
		return fmt.Errorf("feed %s: %w", name, err)
	}
	return b.writeFile(name, data)
}
