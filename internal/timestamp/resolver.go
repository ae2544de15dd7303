package timestamp

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/notesite/internal/logfields"
)

// Resolver walks the source priority chain for one vault.
//
// The zero value is not usable; construct with NewResolver. When useGit is
// set the vault directory is expected to live inside a git repository and the
// repository handle is opened lazily on the first query.
type Resolver struct {
	fs      afero.Fs
	useGit  bool
	history *historyQuerier
}

// NewResolver creates a resolver reading filesystem metadata through fs.
func NewResolver(fs afero.Fs, useGit bool) *Resolver {
	return &Resolver{fs: fs, useGit: useGit}
}

// Resolve returns the (created, modified) pair for the file at absPath.
//
// A file with no git history falls back to filesystem metadata; any other
// history-query failure propagates to the caller.
func (r *Resolver) Resolve(fields map[string]any, absPath string) (Timestamp, error) {
	ts, ok, err := FromFrontmatter(fields)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%s: %w", absPath, err)
	}
	if ok {
		return ts, nil
	}

	if r.useGit {
		if r.history == nil {
			r.history = &historyQuerier{}
		}
		ts, err := r.history.fileTimes(absPath)
		if err == nil {
			return ts, nil
		}
		if !errors.Is(err, ErrNoHistory) {
			return Timestamp{}, fmt.Errorf("git history for %s: %w", absPath, err)
		}
		slog.Debug("file has no git history, using filesystem times", logfields.Path(absPath))
	}

	return r.statTimes(absPath)
}

func (r *Resolver) statTimes(absPath string) (Timestamp, error) {
	info, err := r.fs.Stat(absPath)
	if err != nil {
		return Timestamp{}, fmt.Errorf("stat %s: %w", absPath, err)
	}
	return Timestamp{
		// ctime is an imperfect proxy for true creation time, but it is the
		// closest thing stat offers.
		Created:  changeTime(info),
		Modified: info.ModTime(),
	}, nil
}
