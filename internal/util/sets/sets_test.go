package sets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_PrepopulatesValues(t *testing.T) {
	s := New("a", "b")
	require.True(t, s.Has("a"))
	require.True(t, s.Has("b"))
	require.False(t, s.Has("c"))
}

func TestUnion_MergesIntoReceiver(t *testing.T) {
	s := New("a")
	s.Union(New("b", "c"))
	require.Len(t, s, 3)
	require.True(t, s.Has("c"))
}

func TestSorted_ReturnsAscendingOrder(t *testing.T) {
	s := New("zebra", "apple", "mango")
	require.Equal(t, []string{"apple", "mango", "zebra"}, Sorted(s))
}

func TestClone_IsIndependent(t *testing.T) {
	s := New("a")
	c := s.Clone()
	c.Add("b")
	require.False(t, s.Has("b"))
}
