package site

import (
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/metrics"
	"git.home.luguber.info/inful/notesite/internal/render"
	"git.home.luguber.info/inful/notesite/internal/vault"
)

// pageData is the model behind page.html.
type pageData struct {
	Title     string
	Created   string
	Updated   string
	Content   template.HTML
	Backlinks []Ref
}

// emitPages renders every page and writes the ones whose source is newer
// than the current output file. The HTML caches are warmed even for skipped
// pages so the feeds and the search index always see rendered content.
func (b *Builder) emitPages(ix *vault.Index) error {
	fresh, skipped := 0, 0
	for _, p := range ix.Pages() {
		wrote, err := b.emitPage(ix, p)
		if err != nil {
			return err
		}
		if wrote {
			fresh++
		} else {
			skipped++
		}
	}
	slog.Debug("pages emitted", logfields.Count(fresh), slog.Int("skipped", skipped))
	return nil
}

func (b *Builder) emitPage(ix *vault.Index, p *vault.Page) (bool, error) {
	if err := b.renderer.Page(p); err != nil {
		return false, err
	}

	out := filepath.Join(b.cfg.Output, filepath.FromSlash(p.URLPath))
	if info, err := b.fs.Stat(out); err == nil && p.Times.Modified.Before(info.ModTime()) {
		b.rec.IncPageRender(metrics.RenderSkipped)
		return false, nil
	}

	data := pageData{
		Title:     p.RawTitle,
		Created:   p.Times.CreatedHuman(),
		Updated:   p.Times.ModifiedHuman(),
		Content:   template.HTML(p.HTML),
		Backlinks: entityRefs(ix, p.BacklinkKeys()),
	}
	body, err := b.renderer.Execute("page.html", data)
	if err != nil {
		return false, err
	}
	if err := b.writeFile(p.URLPath, body); err != nil {
		return false, fmt.Errorf("write page %s: %w", p.TitlePath, err)
	}
	b.rec.IncPageRender(metrics.RenderFresh)
	return true, nil
}

// emitAssets copies attachments byte for byte and drops the stylesheets into
// the output root.
func (b *Builder) emitAssets(ix *vault.Index) error {
	for _, a := range ix.Attachments {
		data, err := afero.ReadFile(b.fs, a.AbsPath)
		if err != nil {
			return fmt.Errorf("read attachment %s: %w", a.AbsPath, err)
		}
		if err := b.writeFile(a.URLPath, data); err != nil {
			return fmt.Errorf("copy attachment %s: %w", a.URLPath, err)
		}
	}

	styles, err := render.Stylesheets(b.cfg.TemplateDir)
	if err != nil {
		return err
	}
	for name, data := range styles {
		if err := b.writeFile(name, data); err != nil {
			return fmt.Errorf("write stylesheet %s: %w", name, err)
		}
	}
	return nil
}

func (b *Builder) writeFile(rel string, data []byte) error {
	full := filepath.Join(b.cfg.Output, filepath.FromSlash(rel))
	if err := b.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(b.fs, full, data, 0o644)
}
