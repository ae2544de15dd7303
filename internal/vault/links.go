package vault

import (
	"regexp"
	"strings"
)

// wikiLink matches [[...]] spans non-greedily. The scan is raw-text based and
// may pick up double-bracket syntax from unrelated contexts inside code
// spans (pandas' df[["a", "b"]] is the classic offender). Known limitation;
// unresolved tokens are harmless downstream.
var wikiLink = regexp.MustCompile(`\[\[(.*?)\]\]`)

// ExtractLinkTokens returns the raw out-edge tokens of a Markdown body, with
// trailing |alias and #anchor suffixes stripped.
func ExtractLinkTokens(source string) []string {
	matches := wikiLink.FindAllStringSubmatch(source, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, StripLinkDecorations(m[1]))
	}
	return tokens
}

// StripLinkDecorations removes the alias of [[Title|label]] and the anchor of
// [[Title#anchor]], leaving the bare target token.
func StripLinkDecorations(token string) string {
	if i := strings.Index(token, "|"); i >= 0 {
		token = token[:i]
	}
	if i := strings.Index(token, "#"); i >= 0 {
		token = token[:i]
	}
	return token
}
