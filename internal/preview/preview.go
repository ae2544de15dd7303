// Package preview serves the generated site locally and rebuilds it when
// the vault changes on disk.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/logfields"
)

const defaultDebounce = 300 * time.Millisecond

// Server watches the vault and serves the output directory over HTTP.
// Rebuilds are debounced and serialized; events arriving mid-build queue
// exactly one follow-up build.
type Server struct {
	cfg            *config.Config
	rebuild        func() error
	metricsHandler http.Handler
	debounce       time.Duration
}

// Option configures optional server collaborators.
type Option func(*Server)

// WithMetricsHandler exposes the given handler at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metricsHandler = h }
}

// WithDebounce overrides the rebuild debounce window.
func WithDebounce(d time.Duration) Option {
	return func(s *Server) { s.debounce = d }
}

// New creates a preview server. rebuild is invoked once up front and again
// after every debounced change burst.
func New(cfg *config.Config, rebuild func() error, opts ...Option) *Server {
	s := &Server{cfg: cfg, rebuild: rebuild, debounce: defaultDebounce}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks until ctx is cancelled or the watcher dies.
func (s *Server) Run(ctx context.Context, addr string) error {
	if st, err := os.Stat(s.cfg.Source); err != nil || !st.IsDir() {
		return fmt.Errorf("vault dir not found or not a directory: %s", s.cfg.Source)
	}

	if err := s.rebuild(); err != nil {
		// Keep serving whatever the output dir holds; the next change
		// retries the build.
		slog.Error("initial build failed", logfields.Error(err))
	}

	httpSrv := s.startHTTP(addr)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := addDirsRecursive(watcher, s.cfg.Source); err != nil {
		return err
	}

	rebuildReq, trigger := s.newDebouncer()
	s.startRebuildWorker(ctx, rebuildReq)

	slog.Info("preview server listening", slog.String("addr", addr), logfields.Dir(s.cfg.Output))
	return s.loop(ctx, watcher, trigger, httpSrv)
}

func (s *Server) startHTTP(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.Output)))
	if s.metricsHandler != nil {
		mux.Handle("/metrics", s.metricsHandler)
	}

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("preview http server failed", logfields.Error(err))
		}
	}()
	return srv
}

// newDebouncer returns a buffered request channel and a trigger that arms a
// timer; rapid event bursts collapse into one request.
func (s *Server) newDebouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(s.debounce, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

func (s *Server) startRebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	var mu sync.Mutex
	running := false
	pending := false

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				mu.Lock()
				if running {
					pending = true
					mu.Unlock()
					continue
				}
				running = true
				mu.Unlock()

				slog.Info("change detected, rebuilding site")
				if err := s.rebuild(); err != nil {
					slog.Warn("rebuild failed", logfields.Error(err))
				}

				mu.Lock()
				running = false
				if pending {
					pending = false
					mu.Unlock()
					select {
					case rebuildReq <- struct{}{}:
					default:
					}
				} else {
					mu.Unlock()
				}
			}
		}
	}()
}

func (s *Server) loop(ctx context.Context, watcher *fsnotify.Watcher, trigger func(), httpSrv *http.Server) error {
	for {
		select {
		case <-ctx.Done():
			return s.shutdown(httpSrv)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

// shutdown stops the HTTP server. The rebuild channel is deliberately left
// open: the debounce timer and the worker's follow-up send may still fire
// after this point, and both senders use non-blocking sends into the buffer.
// The worker itself exits through ctx.
func (s *Server) shutdown(httpSrv *http.Server) error {
	slog.Info("shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown error", logfields.Error(err))
	}
	return nil
}

func handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	// New directories must join the watch set before their contents change.
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("file change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", logfields.Dir(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters events that never warrant a rebuild: hidden
// files and editor temp/swap artifacts.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
