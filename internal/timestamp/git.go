package timestamp

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNoHistory indicates the file exists but no commit touches it. The
// resolver recovers from this locally; every other git error is propagated.
var ErrNoHistory = errors.New("no git history for file")

// historyQuerier answers created/modified queries from the vault's git
// repository. The repository handle is opened once and reused; the per-file
// log walk still dominates wall-clock cost on large vaults.
type historyQuerier struct {
	repo *git.Repository
	root string
}

func (h *historyQuerier) open(fromDir string) error {
	if h.repo != nil {
		return nil
	}
	repo, err := git.PlainOpenWithOptions(fromDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("open repository from %s: %w", fromDir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("repository worktree: %w", err)
	}
	h.repo = repo
	h.root = wt.Filesystem.Root()
	return nil
}

// fileTimes returns modified = committer time of the newest commit touching
// the file and created = author time of the oldest one, mirroring
// `git log --pretty=format:%aI %cI <path>`.
func (h *historyQuerier) fileTimes(absPath string) (Timestamp, error) {
	if err := h.open(filepath.Dir(absPath)); err != nil {
		return Timestamp{}, err
	}

	rel, err := filepath.Rel(h.root, absPath)
	if err != nil {
		return Timestamp{}, fmt.Errorf("relativize %s: %w", absPath, err)
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") {
		return Timestamp{}, fmt.Errorf("%s is outside repository %s", absPath, h.root)
	}

	iter, err := h.repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		return Timestamp{}, fmt.Errorf("log %s: %w", rel, err)
	}
	defer iter.Close()

	var newest, oldest *object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if newest == nil {
			newest = c
		}
		oldest = c
		return nil
	})
	if err != nil {
		return Timestamp{}, fmt.Errorf("walk history of %s: %w", rel, err)
	}
	if newest == nil {
		return Timestamp{}, fmt.Errorf("%w: %s", ErrNoHistory, rel)
	}

	return Timestamp{
		Created:  oldest.Author.When,
		Modified: newest.Committer.When,
	}, nil
}
