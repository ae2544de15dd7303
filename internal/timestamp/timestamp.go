// Package timestamp produces the (created, modified) pair for a vault file.
//
// Sources are tried strictly in priority order, first available source wins
// as a whole pair (fields are never mixed across sources):
//
//  1. frontmatter `created` + `updated` keys
//  2. git history of the file (when enabled)
//  3. filesystem metadata
package timestamp

import (
	"fmt"
	"time"
)

const humanFormat = "Jan 02, 2006"

// Timestamp is an absolute (created, modified) instant pair together with its
// string renderings for templates and feeds.
type Timestamp struct {
	Created  time.Time
	Modified time.Time
}

// CreatedHuman formats the creation instant for page headers.
func (t Timestamp) CreatedHuman() string { return t.Created.Format(humanFormat) }

// ModifiedHuman formats the modification instant for page headers.
func (t Timestamp) ModifiedHuman() string { return t.Modified.Format(humanFormat) }

// CreatedRFC3339 formats the creation instant for machine interchange.
func (t Timestamp) CreatedRFC3339() string { return t.Created.Format(time.RFC3339) }

// ModifiedRFC3339 formats the modification instant for machine interchange.
func (t Timestamp) ModifiedRFC3339() string { return t.Modified.Format(time.RFC3339) }

// parseInstant accepts the two shapes YAML hands us for a date value: a
// structured timestamp (yaml.v3 decodes ISO dates into time.Time) or a
// textual RFC-3339 / date-only string.
func parseInstant(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		if ts, err := time.Parse(time.RFC3339, val); err == nil {
			return ts, nil
		}
		if ts, err := time.Parse("2006-01-02", val); err == nil {
			return ts, nil
		}
		return time.Time{}, fmt.Errorf("unparseable timestamp %q", val)
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

// FromFrontmatter builds a Timestamp from frontmatter fields, if and only if
// both `created` and `updated` are present. ok is false when either key is
// absent; an error means a key was present but malformed.
func FromFrontmatter(fields map[string]any) (Timestamp, bool, error) {
	created, haveCreated := fields["created"]
	updated, haveUpdated := fields["updated"]
	if !haveCreated || !haveUpdated {
		return Timestamp{}, false, nil
	}

	ctime, err := parseInstant(created)
	if err != nil {
		return Timestamp{}, false, fmt.Errorf("frontmatter created: %w", err)
	}
	mtime, err := parseInstant(updated)
	if err != nil {
		return Timestamp{}, false, fmt.Errorf("frontmatter updated: %w", err)
	}
	return Timestamp{Created: ctime, Modified: mtime}, true, nil
}
