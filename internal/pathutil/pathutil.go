// Package pathutil normalizes note titles and vault-relative paths into the
// canonical identity strings used by the page and attachment indices.
//
// Two identity spaces exist:
//   - titlepath: sanitized directory + canonical (lower-cased) title,
//     e.g. "Data_Analytics/duckdb". Primary key for pages.
//   - linkpath: sanitized directory + output file name, used in generated URLs.
//
// CanonicalPath maps an arbitrary wiki-link token into the titlepath space so
// tokens and index keys compare directly.
package pathutil

import (
	"path"
	"regexp"
	"strings"
)

var (
	unsafeSegment = regexp.MustCompile(`[^A-Za-z0-9_.~-]`)
	unsafePath    = regexp.MustCompile(`[^A-Za-z0-9_.~/-]`)
	markdownExt   = regexp.MustCompile(`\.md$`)
	nonWordRun    = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

// CanonicalizeTitle returns the canonical form of a title. Case folding is
// ASCII-style lower-casing only; no Unicode normalization is applied.
func CanonicalizeTitle(title string) string {
	return strings.ToLower(title)
}

// SanitizeSegment replaces every character outside [A-Za-z0-9_.~-] with an
// underscore. Applied to directory components, never to the leaf file name of
// an attachment copy (attachments keep their original name verbatim).
func SanitizeSegment(segment string) string {
	return unsafeSegment.ReplaceAllString(segment, "_")
}

// SanitizePath sanitizes a multi-segment relative path, preserving slashes.
func SanitizePath(rel string) string {
	return unsafePath.ReplaceAllString(rel, "_")
}

// CanonicalPath turns a relative path (or wiki-link token) into titlepath
// identity space: the directory part is sanitized, the leaf is canonicalized.
// "Data Analytics/Duckdb" becomes "Data_Analytics/duckdb".
func CanonicalPath(rel string) string {
	dir, leaf := path.Split(rel)
	if dir == "" {
		return CanonicalizeTitle(leaf)
	}
	return SanitizePath(strings.TrimSuffix(dir, "/")) + "/" + CanonicalizeTitle(leaf)
}

// OutputName converts a Markdown source name into its output file name: the
// whole name is sanitized, then a trailing ".md" becomes ".html". Never used
// for attachments.
func OutputName(fileName string) string {
	clean := SanitizeSegment(fileName)
	return markdownExt.ReplaceAllString(clean, ".html")
}

// SlugifyAnchor converts a heading reference into a URL fragment: runs of
// non-word characters collapse to a single dash and the result is lower-cased.
// Matches the ids the renderer assigns to section headings closely enough for
// vault-internal anchors.
func SlugifyAnchor(s string) string {
	return strings.ToLower(nonWordRun.ReplaceAllString(strings.TrimRight(s, " \t"), "-"))
}
