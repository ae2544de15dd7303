// Package render owns the Markdown engine and the HTML templates.
//
// The engine is constructed once at startup and threaded through the build
// as a value; nothing in here is a process-wide singleton.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/notesite/internal/vault"
)

//go:embed templates/*.html templates/*.css
var defaultTemplates embed.FS

// Renderer converts page sources to HTML and executes output templates.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

// New builds a renderer. When templateDir is non-empty and exists, its
// *.html files override the embedded defaults.
func New(templateDir string) (*Renderer, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			ghtml.WithHardWraps(),
			// Substitution passes inject raw anchors and media tags into the
			// source; they must pass through the renderer untouched.
			ghtml.WithUnsafe(),
		),
	)

	tmpl, err := loadTemplates(templateDir)
	if err != nil {
		return nil, err
	}
	return &Renderer{md: md, tmpl: tmpl}, nil
}

func loadTemplates(templateDir string) (*template.Template, error) {
	if templateDir != "" {
		if st, err := os.Stat(templateDir); err == nil && st.IsDir() {
			tmpl, err := template.ParseGlob(templateDir + "/*.html")
			if err != nil {
				return nil, fmt.Errorf("parse templates in %s: %w", templateDir, err)
			}
			return tmpl, nil
		}
	}
	tmpl, err := template.ParseFS(defaultTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse embedded templates: %w", err)
	}
	return tmpl, nil
}

// Markdown renders a Markdown source string to HTML.
func (r *Renderer) Markdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Page populates the page's HTML caches. Recomputing is idempotent; callers
// may invoke this on an already-rendered page without harm.
func (r *Renderer) Page(p *vault.Page) error {
	out, err := r.Markdown(p.Source)
	if err != nil {
		return fmt.Errorf("page %s: %w", p.TitlePath, err)
	}
	p.HTML = out
	p.EscapedHTML = html.EscapeString(out)
	return nil
}

// Execute runs a named output template.
func (r *Renderer) Execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Stylesheets returns the *.css assets to copy into the output root, named
// by file. The override directory wins over the embedded defaults.
func Stylesheets(templateDir string) (map[string][]byte, error) {
	out := map[string][]byte{}

	if templateDir != "" {
		if st, err := os.Stat(templateDir); err == nil && st.IsDir() {
			matches, err := filepath.Glob(filepath.Join(templateDir, "*.css"))
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				data, err := os.ReadFile(m)
				if err != nil {
					return nil, fmt.Errorf("read stylesheet %s: %w", m, err)
				}
				out[filepath.Base(m)] = data
			}
			if len(out) > 0 {
				return out, nil
			}
		}
	}

	entries, err := fs.Glob(defaultTemplates, "templates/*.css")
	if err != nil {
		return nil, err
	}
	for _, name := range entries {
		data, err := defaultTemplates.ReadFile(name)
		if err != nil {
			return nil, err
		}
		out[filepath.Base(name)] = data
	}
	return out, nil
}
