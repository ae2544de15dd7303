// Package graph derives the reverse link graph: for every page's out-edges,
// the resolved target gains the page in its backlink set.
package graph

import (
	"log/slog"

	"git.home.luguber.info/inful/notesite/internal/links"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/vault"
)

// ComputeBacklinks resolves every page's raw link tokens against the current
// index snapshot (attachments included) and records the inbound edge on each
// target. Unresolved tokens contribute no edge and are logged, never fatal;
// the count of unresolved tokens is returned for observability.
func ComputeBacklinks(ix *vault.Index) int {
	unresolved := 0
	for _, p := range ix.Pages() {
		for _, token := range p.Links {
			target := links.Resolve(ix, token)
			if target == nil {
				slog.Info("unable to find link", logfields.Link(token), logfields.Page(p.RawTitle))
				unresolved++
				continue
			}
			target.AddBacklink(p.CanonTitle, p.Key())
		}
	}
	if unresolved > 0 {
		slog.Debug("backlink pass finished with unresolved links", logfields.Count(unresolved))
	}
	return unresolved
}
