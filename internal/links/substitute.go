package links

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/pathutil"
	"git.home.luguber.info/inful/notesite/internal/vault"
)

var (
	crosslinkPattern = regexp.MustCompile(`\[\[(.*?)\]\]`)
	embedPattern     = regexp.MustCompile(`!\[\[(.*?)\]\]`)
)

// Substituter rewrites wiki syntax in page sources to HTML ahead of the
// Markdown renderer. Each pass runs exactly once per page per build.
type Substituter struct {
	ix *vault.Index
}

func NewSubstituter(ix *vault.Index) *Substituter {
	return &Substituter{ix: ix}
}

// Apply rewrites embeds and then crosslinks in the page source. Embeds go
// first: their tokens are a superset syntax and must not be left for the
// crosslink pass to mangle.
func (s *Substituter) Apply(p *vault.Page) {
	p.Source = embedPattern.ReplaceAllStringFunc(p.Source, func(m string) string {
		return s.replaceEmbed(p, m)
	})
	p.Source = crosslinkPattern.ReplaceAllStringFunc(p.Source, func(m string) string {
		return s.replaceCrosslink(p, m)
	})
}

// replaceCrosslink turns [[title]], [[title|label]] and [[title#anchor]] into
// anchors. A token that does not resolve is left untouched: several notes use
// the [[ string in contexts that are not links at all, so unresolved tokens
// stay visually inert and a diagnostic is logged.
func (s *Substituter) replaceCrosslink(p *vault.Page, match string) string {
	raw := crosslinkPattern.FindStringSubmatch(match)[1]

	title := raw
	label := ""
	if i := strings.Index(title, "|"); i >= 0 {
		title, label = title[:i], title[i+1:]
	}
	anchor := ""
	if i := strings.Index(title, "#"); i >= 0 {
		title, anchor = title[:i], title[i+1:]
	}

	target := ResolvePage(s.ix, title)
	if target == nil {
		slog.Error("unable to find page", logfields.Link(title), logfields.Page(p.RawTitle))
		return match
	}

	if label == "" {
		label = title
	}
	fragment := ""
	if anchor != "" {
		fragment = "#" + pathutil.SlugifyAnchor(anchor)
	}
	return fmt.Sprintf(`<a href="/%s%s">%s</a>`, target.URLPath, fragment, label)
}

// replaceEmbed turns ![[file]] into an inline element chosen by the token's
// extension. A failed embed is removed entirely; broken embed markup must
// never reach the renderer.
func (s *Substituter) replaceEmbed(p *vault.Page, match string) string {
	token := embedPattern.FindStringSubmatch(match)[1]

	target := Resolve(s.ix, token)
	if target == nil {
		slog.Error("unable to find attachment", logfields.Link(token), logfields.Page(p.RawTitle))
		return ""
	}

	path := target.LinkPath()
	switch {
	case strings.HasSuffix(token, ".pdf"):
		return fmt.Sprintf(`<iframe src="/%s" width="800" height="1200"></iframe>`, path)
	case strings.HasSuffix(token, ".mov"):
		return videoTag(path, "video/quicktime")
	case strings.HasSuffix(token, ".mp4"):
		return videoTag(path, "video/mp4")
	case strings.HasSuffix(token, ".webm"):
		return videoTag(path, "video/webm")
	default:
		// Assume an image unless the extension says otherwise.
		return fmt.Sprintf(`<a href="/%s"><img src="/%s" style="max-width: 800px"></a>`, path, path)
	}
}

func videoTag(path, mime string) string {
	return fmt.Sprintf(`<video controls><source src="/%s" type="%s" /><a href="/%s">download</a></video>`, path, mime, path)
}
