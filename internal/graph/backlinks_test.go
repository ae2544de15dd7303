package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notesite/internal/vault"
)

func mkPage(titlePath, title string, tokens ...string) *vault.Page {
	return &vault.Page{
		RawTitle:   title,
		CanonTitle: lower(title),
		TitlePath:  titlePath,
		URLPath:    titlePath + ".html",
		Links:      tokens,
	}
}

func lower(s string) string {
	out := []byte(s)
	for i := range out {
		if out[i] >= 'A' && out[i] <= 'Z' {
			out[i] += 'a' - 'A'
		}
	}
	return string(out)
}

func TestComputeBacklinks_AddsEdgeOnResolution(t *testing.T) {
	ix := vault.NewIndex()
	a := mkPage("notes/a", "A", "B")
	b := mkPage("notes/b", "B")
	ix.AddPage(a)
	ix.AddPage(b)

	require.Empty(t, b.BacklinkKeys()) // not before

	ComputeBacklinks(ix)
	require.Equal(t, []string{"notes/a"}, b.BacklinkKeys()) // and after
	require.Empty(t, a.BacklinkKeys())
}

func TestComputeBacklinks_AttachmentTargets(t *testing.T) {
	ix := vault.NewIndex()
	a := mkPage("notes/a", "A", "pic.png")
	pic := &vault.Attachment{RawTitle: "pic", CanonTitle: "pic", FileName: "pic.png", URLPath: "notes/pic.png"}
	ix.AddPage(a)
	ix.AddAttachment(pic)

	ComputeBacklinks(ix)
	require.Equal(t, []string{"notes/a"}, pic.BacklinkKeys())
}

func TestComputeBacklinks_UnresolvedIsNotFatal(t *testing.T) {
	ix := vault.NewIndex()
	a := mkPage("notes/a", "A", "Missing")
	ix.AddPage(a)

	require.Equal(t, 1, ComputeBacklinks(ix))
	require.NotContains(t, ix.ByTitle, "missing")
}

func TestComputeBacklinks_ColldingSourceTitlesShareOneSlot(t *testing.T) {
	ix := vault.NewIndex()
	ix.AddPage(mkPage("x/src", "Src", "Target"))
	ix.AddPage(mkPage("y/src", "Src", "Target"))
	target := mkPage("t/target", "Target")
	ix.AddPage(target)

	ComputeBacklinks(ix)
	require.Len(t, target.BacklinkKeys(), 1)
}
