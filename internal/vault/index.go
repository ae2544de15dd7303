package vault

import "sort"

// Index holds the two lookup maps plus the entity arena.
//
// Pages are indexed two levels deep: ByTitlePath is the primary key, ByTitle
// groups pages sharing a canonical title so duplicate-title handling is an
// explicit policy at resolution time rather than an accident of map order.
type Index struct {
	ByTitlePath map[string]*Page
	ByTitle     map[string][]*Page // walk discovery order
	Attachments map[string]*Attachment

	arena map[string]Entity
}

func NewIndex() *Index {
	return &Index{
		ByTitlePath: make(map[string]*Page),
		ByTitle:     make(map[string][]*Page),
		Attachments: make(map[string]*Attachment),
		arena:       make(map[string]Entity),
	}
}

// AddPage indexes a page. A titlepath collision silently replaces the
// earlier entry everywhere, so the shadowed page can never resolve.
func (ix *Index) AddPage(p *Page) {
	if prev, ok := ix.ByTitlePath[p.TitlePath]; ok {
		ix.dropFromTitleGroup(prev)
	}
	ix.ByTitlePath[p.TitlePath] = p
	ix.ByTitle[p.CanonTitle] = append(ix.ByTitle[p.CanonTitle], p)
	ix.arena[p.Key()] = p
}

// AddAttachment indexes an attachment by its linkpath.
func (ix *Index) AddAttachment(a *Attachment) {
	ix.Attachments[a.URLPath] = a
	ix.arena[a.Key()] = a
}

// Entity looks up an arena member by key.
func (ix *Index) Entity(key string) (Entity, bool) {
	e, ok := ix.arena[key]
	return e, ok
}

// Pages returns all indexed pages ordered by titlepath.
func (ix *Index) Pages() []*Page {
	out := make([]*Page, 0, len(ix.ByTitlePath))
	for _, p := range ix.ByTitlePath {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TitlePath < out[j].TitlePath })
	return out
}

// PagesByModified returns all pages, most recently modified first. Ties break
// on titlepath so output ordering is reproducible.
func (ix *Index) PagesByModified() []*Page {
	out := ix.Pages()
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Times.Modified, out[j].Times.Modified
		if ti.Equal(tj) {
			return out[i].TitlePath < out[j].TitlePath
		}
		return ti.After(tj)
	})
	return out
}

func (ix *Index) dropFromTitleGroup(p *Page) {
	group := ix.ByTitle[p.CanonTitle]
	for i, candidate := range group {
		if candidate == p {
			ix.ByTitle[p.CanonTitle] = append(group[:i], group[i+1:]...)
			break
		}
	}
	delete(ix.arena, p.Key())
}
