package links

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notesite/internal/vault"
)

func indexWith(pages []*vault.Page, attachments []*vault.Attachment) *vault.Index {
	ix := vault.NewIndex()
	for _, p := range pages {
		ix.AddPage(p)
	}
	for _, a := range attachments {
		ix.AddAttachment(a)
	}
	return ix
}

func page(titlePath, title string) *vault.Page {
	return &vault.Page{
		RawTitle:   title,
		CanonTitle: titleLower(title),
		TitlePath:  titlePath,
		URLPath:    titlePath + ".html",
	}
}

func titleLower(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + ('a' - 'A')
		}
	}
	return string(out)
}

func TestResolvePage_ByTitle(t *testing.T) {
	ix := indexWith([]*vault.Page{page("notes/b", "B")}, nil)
	require.NotNil(t, ResolvePage(ix, "B"))
	require.NotNil(t, ResolvePage(ix, "b"))
}

func TestResolvePage_ByTitlepath(t *testing.T) {
	ix := indexWith([]*vault.Page{page("Data_Analytics/duckdb", "Duckdb")}, nil)
	require.NotNil(t, ResolvePage(ix, "Data Analytics/Duckdb"))
}

func TestResolvePage_Unresolved(t *testing.T) {
	ix := indexWith([]*vault.Page{page("notes/b", "B")}, nil)
	require.Nil(t, ResolvePage(ix, "Missing"))
}

func TestResolvePage_AmbiguousTitlePicksLowestTitlepath(t *testing.T) {
	ix := indexWith([]*vault.Page{
		page("z/note", "Note"),
		page("a/note", "Note"),
	}, nil)

	got := ResolvePage(ix, "Note")
	require.NotNil(t, got)
	require.Equal(t, "a/note", got.TitlePath)
}

func TestResolve_AttachmentByRawFileName(t *testing.T) {
	ix := indexWith(nil, []*vault.Attachment{{
		RawTitle: "pic", CanonTitle: "pic", FileName: "pic.png", URLPath: "notes/pic.png",
	}})

	got := Resolve(ix, "pic.png")
	require.NotNil(t, got)
	require.Equal(t, "notes/pic.png", got.LinkPath())
}

func TestResolve_PagesTakePrecedenceOverAttachments(t *testing.T) {
	ix := indexWith(
		[]*vault.Page{page("notes/pic.png", "pic.png")},
		[]*vault.Attachment{{RawTitle: "pic", CanonTitle: "pic", FileName: "pic.png", URLPath: "other/pic.png"}},
	)

	got := Resolve(ix, "pic.png")
	_, isPage := got.(*vault.Page)
	require.True(t, isPage)
}
