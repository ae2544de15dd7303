package vault

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notesite/internal/timestamp"
)

func mkPage(titlePath, title string, modified time.Time) *Page {
	return &Page{
		RawTitle:   title,
		CanonTitle: title, // tests use lower-case titles already
		TitlePath:  titlePath,
		URLPath:    titlePath + ".html",
		Times:      timestamp.Timestamp{Modified: modified},
	}
}

func TestAddPage_CollisionReplacesEarlierEverywhere(t *testing.T) {
	ix := NewIndex()
	first := mkPage("notes/b", "b", time.Time{})
	second := mkPage("notes/b", "b", time.Time{})

	ix.AddPage(first)
	ix.AddPage(second)

	require.Same(t, second, ix.ByTitlePath["notes/b"])
	require.Len(t, ix.ByTitle["b"], 1)
	require.Same(t, second, ix.ByTitle["b"][0])

	e, ok := ix.Entity("notes/b")
	require.True(t, ok)
	require.Same(t, second, e.(*Page))
}

func TestByTitle_GroupsDuplicateTitlesInWalkOrder(t *testing.T) {
	ix := NewIndex()
	ix.AddPage(mkPage("a/note", "note", time.Time{}))
	ix.AddPage(mkPage("z/note", "note", time.Time{}))

	require.Len(t, ix.ByTitle["note"], 2)
	require.Equal(t, "a/note", ix.ByTitle["note"][0].TitlePath)
	require.Equal(t, "z/note", ix.ByTitle["note"][1].TitlePath)
}

func TestPagesByModified_MostRecentFirstStableTies(t *testing.T) {
	ix := NewIndex()
	old := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ix.AddPage(mkPage("z/tied", "tied", old))
	ix.AddPage(mkPage("a/tied2", "tied2", old))
	ix.AddPage(mkPage("m/fresh", "fresh", recent))

	ordered := ix.PagesByModified()
	require.Equal(t, "m/fresh", ordered[0].TitlePath)
	require.Equal(t, "a/tied2", ordered[1].TitlePath)
	require.Equal(t, "z/tied", ordered[2].TitlePath)
}

func TestNode_FindDirDepthFirst(t *testing.T) {
	root := NewDirNode("")
	a := NewDirNode("a")
	ab := NewDirNode("a/target")
	z := NewDirNode("target")
	a.Children = append(a.Children, ab)
	root.Children = append(root.Children, a, z)

	found := root.FindDir("target")
	require.NotNil(t, found)
	// Depth-first: the nested directory under "a" is discovered first.
	require.Equal(t, "a/target", found.Dir)
	require.Nil(t, root.FindDir("absent"))
}

func TestBacklinks_TitleIdentityDeduplicates(t *testing.T) {
	target := mkPage("t/page", "page", time.Time{})
	target.AddBacklink("source", "a/source")
	target.AddBacklink("source", "z/source") // same title, different page
	target.AddBacklink("other", "o/other")

	keys := target.BacklinkKeys()
	require.Len(t, keys, 2)
}
