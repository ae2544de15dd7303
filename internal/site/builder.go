// Package site orchestrates a full build: walk the vault, wire the link
// graph, render pages, and emit the derived views into the output tree.
package site

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/graph"
	"git.home.luguber.info/inful/notesite/internal/links"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/metrics"
	"git.home.luguber.info/inful/notesite/internal/render"
	"git.home.luguber.info/inful/notesite/internal/timestamp"
	"git.home.luguber.info/inful/notesite/internal/vault"
)

// Builder runs the staged build pipeline. Stages run strictly in order:
// walk, backlinks, substitute, assets, pages, views. Link resolution uses
// the raw tokens captured at walk time, so substitution rewriting the page
// source never disturbs the backlink graph.
type Builder struct {
	fs       afero.Fs
	cfg      *config.Config
	renderer *render.Renderer
	rec      metrics.Recorder
	now      func() time.Time
}

// Option configures optional builder collaborators.
type Option func(*Builder)

// WithRecorder installs a metrics recorder. The default records nothing.
func WithRecorder(rec metrics.Recorder) Option {
	return func(b *Builder) { b.rec = rec }
}

// WithClock overrides the time source used for feed timestamps and the
// recent-changes buckets.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// NewBuilder creates a builder over the given filesystem and configuration.
func NewBuilder(fs afero.Fs, cfg *config.Config, renderer *render.Renderer, opts ...Option) *Builder {
	b := &Builder{
		fs:       fs,
		cfg:      cfg,
		renderer: renderer,
		rec:      metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build runs the whole pipeline once. The output tree is only ever appended
// to or overwritten, never cleared; stale files from deleted notes survive
// until the output directory is removed out of band.
func (b *Builder) Build() error {
	start := time.Now()
	log := slog.With(logfields.BuildID(uuid.NewString()))
	log.Info("building site", logfields.Path(b.cfg.Source), logfields.Dir(b.cfg.Output))

	var (
		tree *vault.Node
		ix   *vault.Index
	)
	err := b.stage(log, "walk", func() error {
		times := timestamp.NewResolver(b.fs, b.cfg.UseGitTimes)
		w := vault.NewWalker(b.fs, b.cfg.IgnoreSet(), times)
		var err error
		tree, ix, err = w.Walk(b.cfg.Source)
		return err
	})
	if err != nil {
		return b.finish(log, start, err)
	}

	rest := []struct {
		name string
		fn   func() error
	}{
		{"backlinks", func() error {
			b.rec.AddUnresolvedLinks(graph.ComputeBacklinks(ix))
			return nil
		}},
		{"substitute", func() error {
			sub := links.NewSubstituter(ix)
			for _, p := range ix.Pages() {
				sub.Apply(p)
			}
			return nil
		}},
		{"assets", func() error { return b.emitAssets(ix) }},
		{"pages", func() error { return b.emitPages(ix) }},
		{"views", func() error { return b.emitViews(tree, ix) }},
	}
	for _, st := range rest {
		if err := b.stage(log, st.name, st.fn); err != nil {
			return b.finish(log, start, err)
		}
	}
	return b.finish(log, start, nil)
}

func (b *Builder) stage(log *slog.Logger, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	d := time.Since(start)
	b.rec.ObserveStageDuration(name, d)
	if err != nil {
		log.Error("stage failed", logfields.Stage(name), logfields.Error(err))
		return err
	}
	log.Debug("stage complete", logfields.Stage(name), logfields.DurationMS(float64(d.Milliseconds())))
	return nil
}

func (b *Builder) finish(log *slog.Logger, start time.Time, err error) error {
	d := time.Since(start)
	b.rec.ObserveBuildDuration(d)
	if err != nil {
		b.rec.IncBuildOutcome("failed")
		log.Error("build failed", logfields.Error(err), logfields.DurationMS(float64(d.Milliseconds())))
		return err
	}
	b.rec.IncBuildOutcome("success")
	log.Info("build complete", logfields.DurationMS(float64(d.Milliseconds())))
	return nil
}
