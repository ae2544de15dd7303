// Package links resolves wiki-link tokens against the vault indices and
// performs the two in-source substitution passes (crosslinks and embeds)
// that run before Markdown rendering.
package links

import (
	"log/slog"
	"sort"

	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/pathutil"
	"git.home.luguber.info/inful/notesite/internal/vault"
)

// ResolvePage finds the page a token refers to, or nil.
//
// Pages can be linked two ways: by title, or by path-qualified titlepath.
// Titles are not unique; when several pages share one the lexicographically
// smallest titlepath wins and a warning is logged, so resolution is
// deterministic rather than an accident of map iteration order.
func ResolvePage(ix *vault.Index, token string) *vault.Page {
	target := pathutil.CanonicalPath(token)

	if p, ok := ix.ByTitlePath[target]; ok {
		return p
	}

	group := ix.ByTitle[target]
	switch len(group) {
	case 0:
		return nil
	case 1:
		return group[0]
	}

	winner := group[0]
	for _, p := range group[1:] {
		if p.TitlePath < winner.TitlePath {
			winner = p
		}
	}
	slog.Warn("ambiguous title, picking lowest titlepath",
		logfields.Link(token), logfields.TitlePath(winner.TitlePath), logfields.Count(len(group)))
	return winner
}

// Resolve finds the page or attachment a token refers to, or nil. Pages are
// searched first; attachments match on their raw file name or on their
// linkpath in canonical space.
func Resolve(ix *vault.Index, token string) vault.Entity {
	if p := ResolvePage(ix, token); p != nil {
		return p
	}

	target := pathutil.CanonicalPath(token)
	var matches []*vault.Attachment
	for _, a := range ix.Attachments {
		if a.FileName == token || a.URLPath == target {
			matches = append(matches, a)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].URLPath < matches[j].URLPath })
	return matches[0]
}
