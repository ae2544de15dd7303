package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPage       = "page"
	KeyTitlePath  = "titlepath"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyLink       = "link"
	KeyFeed       = "feed"
	KeyDir        = "dir"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Page(title string) slog.Attr     { return slog.String(KeyPage, title) }
func TitlePath(tp string) slog.Attr   { return slog.String(KeyTitlePath, tp) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Link(token string) slog.Attr     { return slog.String(KeyLink, token) }
func Feed(name string) slog.Attr      { return slog.String(KeyFeed, name) }
func Dir(d string) slog.Attr          { return slog.String(KeyDir, d) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
