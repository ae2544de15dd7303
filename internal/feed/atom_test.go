package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notesite/internal/timestamp"
	"git.home.luguber.info/inful/notesite/internal/vault"
)

func TestBuild_EntriesCarryEscapedHTML(t *testing.T) {
	p := &vault.Page{
		RawTitle: "A",
		URLPath:  "notes/a.html",
		HTML:     `<p>hello <a href="/notes/b.html">B</a></p>`,
		Times: timestamp.Timestamp{
			Created:  time.Date(2022, 4, 8, 0, 0, 0, 0, time.UTC),
			Modified: time.Date(2023, 10, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	f := Build("My Notes", "https://notes.example", "atom.xml", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), []*vault.Page{p})
	out, err := f.Marshal()
	require.NoError(t, err)

	doc := string(out)
	require.True(t, strings.HasPrefix(doc, "<?xml"))
	require.Contains(t, doc, `xmlns="http://www.w3.org/2005/Atom"`)
	require.Contains(t, doc, "<title>My Notes</title>")
	require.Contains(t, doc, "https://notes.example/notes/a.html")
	require.Contains(t, doc, "2022-04-08T00:00:00Z")
	// The encoder escapes the HTML body, as Atom type="html" requires.
	require.Contains(t, doc, "&lt;p&gt;hello")
	require.NotContains(t, doc, "<p>hello")
}

func TestBuild_SelfLinkPointsAtFeedDocument(t *testing.T) {
	f := Build("Projects", "https://notes.example", "projects.atom.xml", time.Now(), nil)
	out, err := f.Marshal()
	require.NoError(t, err)

	doc := string(out)
	require.Contains(t, doc, `<link href="https://notes.example/projects.atom.xml" rel="self">`)
	require.Contains(t, doc, `<link href="https://notes.example/" rel="alternate">`)
}

func TestBuild_EmptyPageList(t *testing.T) {
	f := Build("Empty", "https://x.example", "atom.xml", time.Now(), nil)
	out, err := f.Marshal()
	require.NoError(t, err)
	require.Contains(t, string(out), "<feed")
	require.NotContains(t, string(out), "<entry>")
}
