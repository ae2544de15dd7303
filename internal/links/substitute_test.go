package links

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notesite/internal/vault"
)

func TestApply_CrosslinkRewritesToAnchor(t *testing.T) {
	ix := indexWith([]*vault.Page{page("notes/b", "B")}, nil)
	p := page("notes/a", "A")
	p.Source = "See [[B]] for details"

	NewSubstituter(ix).Apply(p)
	require.Equal(t, `See <a href="/notes/b.html">B</a> for details`, p.Source)
}

func TestApply_CrosslinkAliasAndAnchor(t *testing.T) {
	ix := indexWith([]*vault.Page{page("notes/b", "B")}, nil)
	p := page("notes/a", "A")
	p.Source = "[[B#Day 2|the second day]]"

	NewSubstituter(ix).Apply(p)
	require.Equal(t, `<a href="/notes/b.html#day-2">the second day</a>`, p.Source)
}

func TestApply_UnresolvedCrosslinkLeftInert(t *testing.T) {
	ix := indexWith(nil, nil)
	p := page("notes/a", "A")
	p.Source = "df[[Missing]] stays put"

	NewSubstituter(ix).Apply(p)
	require.Equal(t, "df[[Missing]] stays put", p.Source)
}

func TestApply_EmbedImage(t *testing.T) {
	ix := indexWith(nil, []*vault.Attachment{{
		RawTitle: "pic", CanonTitle: "pic", FileName: "pic.png", URLPath: "notes/pic.png",
	}})
	p := page("notes/a", "A")
	p.Source = "before ![[pic.png]] after"

	NewSubstituter(ix).Apply(p)
	require.Equal(t, `before <a href="/notes/pic.png"><img src="/notes/pic.png" style="max-width: 800px"></a> after`, p.Source)
}

func TestApply_EmbedDispatchByExtension(t *testing.T) {
	cases := []struct {
		file string
		want string
	}{
		{"doc.pdf", `<iframe src="/doc.pdf" width="800" height="1200"></iframe>`},
		{"clip.mov", `<video controls><source src="/clip.mov" type="video/quicktime" /><a href="/clip.mov">download</a></video>`},
		{"clip.mp4", `<video controls><source src="/clip.mp4" type="video/mp4" /><a href="/clip.mp4">download</a></video>`},
		{"clip.webm", `<video controls><source src="/clip.webm" type="video/webm" /><a href="/clip.webm">download</a></video>`},
	}
	for _, tc := range cases {
		ix := indexWith(nil, []*vault.Attachment{{
			RawTitle: tc.file, CanonTitle: tc.file, FileName: tc.file, URLPath: tc.file,
		}})
		p := page("a", "A")
		p.Source = "![[" + tc.file + "]]"

		NewSubstituter(ix).Apply(p)
		require.Equal(t, tc.want, p.Source, tc.file)
	}
}

func TestApply_UnresolvedEmbedRemoved(t *testing.T) {
	ix := indexWith(nil, nil)
	p := page("notes/a", "A")
	p.Source = "x ![[gone.png]] y"

	NewSubstituter(ix).Apply(p)
	require.Equal(t, "x  y", p.Source)
}
