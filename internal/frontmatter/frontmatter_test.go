package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\ndraft: true\n---\n# Title\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("draft: true\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\nkey: value\n# Title\n")

	_, _, had, _, err := Split(input)
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestParse_Mapping_ReturnsFields(t *testing.T) {
	fields, err := Parse([]byte("created: 2022-04-08\nupdated: 2023-10-30\n"))
	require.NoError(t, err)
	require.Contains(t, fields, "created")
	require.Contains(t, fields, "updated")
}

func TestParse_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := Parse(nil)
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestParse_NonMapping_ReturnsErrNotMapping(t *testing.T) {
	for _, in := range []string{"- a\n- b\n", "just a scalar\n", "42\n"} {
		_, err := Parse([]byte(in))
		require.Error(t, err, in)
		require.True(t, errors.Is(err, ErrNotMapping), in)
	}
}

func TestIsDraft_Truthiness(t *testing.T) {
	cases := []struct {
		fields map[string]any
		want   bool
	}{
		{map[string]any{"draft": true}, true},
		{map[string]any{"draft": false}, false},
		{map[string]any{"draft": "yes"}, true},
		{map[string]any{"draft": ""}, false},
		{map[string]any{"draft": 1}, true},
		{map[string]any{"draft": 0}, false},
		{map[string]any{"draft": nil}, false},
		{map[string]any{}, false},
	}
	for i, tc := range cases {
		require.Equal(t, tc.want, IsDraft(tc.fields), "case %d", i)
	}
}
