package vtcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows is a rowSource over an in-memory slice, letting search tests run
// without a live Terminal/Grid.
type fakeRows []string

func (f fakeRows) ForEachRow(fn func(stable StableRowIndex, text string)) {
	for i, text := range f {
		fn(StableRowIndex(i), text)
	}
}

func TestSearchPlainCaseSensitive(t *testing.T) {
	s := NewSearchState()
	s.Query = "cat"
	s.CaseSensitive = true

	s.Run(fakeRows{"the cat sat", "no match here", "Cat at start"})

	matches := s.Matches()
	require.Len(t, matches, 1)
	assert.Equal(t, StableRowIndex(0), matches[0].Row)
	assert.Equal(t, 4, matches[0].StartCol)
	assert.Equal(t, 7, matches[0].EndCol)
}

func TestSearchPlainCaseInsensitive(t *testing.T) {
	s := NewSearchState()
	s.Query = "cat"
	s.CaseSensitive = false

	s.Run(fakeRows{"the cat sat", "Cat at start"})

	matches := s.Matches()
	require.Len(t, matches, 2)
	assert.Equal(t, StableRowIndex(0), matches[0].Row)
	assert.Equal(t, StableRowIndex(1), matches[1].Row)
}

func TestSearchRegex(t *testing.T) {
	s := NewSearchState()
	s.Query = `c.t`
	s.Regex = true

	s.Run(fakeRows{"the cat sat on the cot"})

	matches := s.Matches()
	require.Len(t, matches, 2)
	assert.Equal(t, 4, matches[0].StartCol)
	assert.Equal(t, 19, matches[1].StartCol)
}

func TestSearchInvalidRegexYieldsNoMatches(t *testing.T) {
	s := NewSearchState()
	s.Query = `[unterminated`
	s.Regex = true

	s.Run(fakeRows{"anything at all"})

	assert.Empty(t, s.Matches(), "an invalid regex must not panic and must report zero matches")
	_, ok := s.Focused()
	assert.False(t, ok)
}

func TestSearchEmptyQueryClearsMatches(t *testing.T) {
	s := NewSearchState()
	s.Query = "cat"
	s.Run(fakeRows{"the cat sat"})
	require.NotEmpty(t, s.Matches())

	s.Query = ""
	s.Run(fakeRows{"the cat sat"})
	assert.Empty(t, s.Matches())
}

func TestSearchFocusNextPrevWraps(t *testing.T) {
	s := NewSearchState()
	s.Query = "a"
	s.Run(fakeRows{"a a a"})

	require.Len(t, s.Matches(), 3)

	first, ok := s.Focused()
	require.True(t, ok)
	assert.Equal(t, 0, first.StartCol)

	s.FocusNext()
	s.FocusNext()
	second, ok := s.Focused()
	require.True(t, ok)
	assert.Equal(t, 4, second.StartCol)

	s.FocusNext() // wraps back to the first match
	wrapped, ok := s.Focused()
	require.True(t, ok)
	assert.Equal(t, 0, wrapped.StartCol)

	s.FocusPrev() // wraps back to the last match
	wrappedBack, ok := s.Focused()
	require.True(t, ok)
	assert.Equal(t, 4, wrappedBack.StartCol)
}

func TestSearchFindFromBinarySearch(t *testing.T) {
	s := NewSearchState()
	s.Query = "x"
	s.Run(fakeRows{"x", "no", "x x"})

	idx, ok := s.FindFrom(StableRowIndex(2), 1)
	require.True(t, ok)
	assert.Equal(t, StableRowIndex(2), s.Matches()[idx].Row)
	assert.Equal(t, 2, s.Matches()[idx].StartCol)

	_, ok = s.FindFrom(StableRowIndex(10), 0)
	assert.False(t, ok, "a position past every match should report not-found")
}

func TestSearchOnTerminalScrollback(t *testing.T) {
	term := New(WithSize(5, 20))
	for i := 0; i < 10; i++ {
		term.WriteString("needle in haystack\r\n")
	}

	term.Find("needle", true, false)
	matches := term.SearchMatches()
	assert.NotEmpty(t, matches)
	for _, m := range matches {
		assert.Equal(t, 0, m.StartCol)
	}
}
