package vault

import (
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/notesite/internal/frontmatter"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/pathutil"
	"git.home.luguber.info/inful/notesite/internal/timestamp"
	"git.home.luguber.info/inful/notesite/internal/util/sets"
)

const emptyProbeSize = 16

// Walker builds the file tree and indices for one vault.
type Walker struct {
	fs     afero.Fs
	ignore sets.Set[string]
	times  *timestamp.Resolver
}

// NewWalker creates a walker. Names in ignore are skipped by exact base-name
// match at every depth.
func NewWalker(fs afero.Fs, ignore sets.Set[string], times *timestamp.Resolver) *Walker {
	if ignore == nil {
		ignore = sets.New[string]()
	}
	return &Walker{fs: fs, ignore: ignore, times: times}
}

// Walk descends root recursively and returns the tree plus the populated
// indices. Entries at each level are visited in case-insensitive path order
// so output ordering is reproducible across runs.
func (w *Walker) Walk(root string) (*Node, *Index, error) {
	root = filepath.Clean(root)
	ix := NewIndex()
	node := NewDirNode("")
	if err := w.walkDir(node, root, root, ix); err != nil {
		return nil, nil, err
	}
	return node, ix, nil
}

func (w *Walker) walkDir(node *Node, root, dir string, ix *Index) error {
	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(dir, name)

		if w.ignore.Has(name) {
			slog.Info("ignoring file", logfields.Path(full))
			continue
		}
		// Scratch-file convention: Untitled notes are never published.
		if name == "Untitled" || name == "Untitled.md" {
			slog.Info("ignoring untitled object", logfields.Path(full))
			continue
		}

		if entry.IsDir() {
			rel := relPath(root, full)
			child := NewDirNode(rel)
			if err := w.walkDir(child, root, full, ix); err != nil {
				return err
			}
			// Appended even when the subtree holds no indexed content.
			node.Children = append(node.Children, child)
			continue
		}

		empty, err := w.isEmptyFile(full)
		if err != nil {
			return err
		}
		if empty {
			slog.Info("ignoring empty file", logfields.Path(full))
			continue
		}

		leaf, err := w.handleFile(root, full, name, ix)
		if err != nil {
			return err
		}
		if leaf == nil {
			continue // draft
		}
		node.Children = append(node.Children, NewLeafNode(leaf))
	}
	return nil
}

// handleFile builds a Page or Attachment for a non-empty file and indexes it.
// Draft pages are parsed for inspection but return nil: they produce no
// output and cannot be linked to.
func (w *Walker) handleFile(root, full, name string, ix *Index) (Entity, error) {
	relDir := pathutil.SanitizePath(relPath(root, filepath.Dir(full)))
	stem := strings.TrimSuffix(name, path.Ext(name))

	if path.Ext(name) != ".md" {
		a := &Attachment{
			RawTitle:   stem,
			CanonTitle: pathutil.CanonicalizeTitle(stem),
			FileName:   name,
			AbsPath:    full,
			URLPath:    path.Join(relDir, name),
		}
		ix.AddAttachment(a)
		return a, nil
	}

	buf, err := afero.ReadFile(w.fs, full)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", full, err)
	}

	fmRaw, body, had, _, err := frontmatter.Split(buf)
	if err != nil {
		// An opening delimiter without a closing one is not frontmatter at
		// all; the whole buffer is content.
		slog.Debug("treating unterminated frontmatter as content", logfields.Path(full))
		body = buf
		had = false
	}
	fields := map[string]any{}
	if had {
		fields, err = frontmatter.Parse(fmRaw)
		if err != nil {
			return nil, fmt.Errorf("frontmatter of %s: %w", full, err)
		}
	}

	// Checked before timestamp resolution: drafts produce no output, so they
	// never pay the per-file history query.
	if frontmatter.IsDraft(fields) {
		slog.Debug("skipping draft page", logfields.Path(full))
		return nil, nil
	}

	times, err := w.times.Resolve(fields, full)
	if err != nil {
		return nil, err
	}

	p := &Page{
		RawTitle:    stem,
		CanonTitle:  pathutil.CanonicalizeTitle(stem),
		Dir:         relDir,
		FileName:    name,
		AbsPath:     full,
		TitlePath:   path.Join(relDir, pathutil.CanonicalizeTitle(stem)),
		URLPath:     path.Join(relDir, pathutil.OutputName(name)),
		Links:       ExtractLinkTokens(string(body)),
		Frontmatter: fields,
		Times:       times,
		Source:      string(body),
	}

	ix.AddPage(p)
	return p, nil
}

// isEmptyFile reports whether the first bytes of a file are all whitespace.
// The probe reads raw bytes so binary attachments never hit a decode error.
func (w *Walker) isEmptyFile(full string) (bool, error) {
	f, err := w.fs.Open(full)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", full, err)
	}
	defer f.Close()

	probe := make([]byte, emptyProbeSize)
	n, err := io.ReadFull(f, probe)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, fmt.Errorf("read %s: %w", full, err)
	}
	return len(strings.TrimSpace(string(probe[:n]))) == 0, nil
}

func relPath(root, full string) string {
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}
