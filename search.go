package vtcore

import (
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// SearchMatch is a single-row match: the row's stable identity plus the
// half-open range [StartCol, EndCol). The range counts runes of the row's
// text as [Row.String] renders it, which skips wide-character spacer cells
// and includes attached zero-width runes, so it equals the grid column
// range only for rows that contain neither.
type SearchMatch struct {
	Row      StableRowIndex
	StartCol int
	EndCol   int
}

// SearchState holds a search query and its sorted result set. Matches
// never span rows, so a match is fully identified by (stable row, start
// column) and the whole result set sorts by that pair, letting FindFrom
// binary-search for the first match at or after a given position.
type SearchState struct {
	Query         string
	CaseSensitive bool
	Regex         bool

	matches []SearchMatch
	focused int
}

// NewSearchState returns an empty, unfocused search.
func NewSearchState() *SearchState {
	return &SearchState{focused: -1}
}

// rowSource supplies row text for searching, keyed by stable index; the
// caller (Terminal) adapts scrollback + viewport into this shape.
type rowSource interface {
	ForEachRow(fn func(stable StableRowIndex, text string))
}

// Run executes the current query against source, replacing the match list.
// An invalid regex (when Regex is set) yields an empty match list rather
// than an error surfaced to the caller.
func (s *SearchState) Run(source rowSource) {
	s.matches = s.matches[:0]
	s.focused = -1
	if s.Query == "" {
		return
	}

	if s.Regex {
		opts := regexp2.None
		if !s.CaseSensitive {
			opts |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(s.Query, opts)
		if err != nil {
			return
		}
		source.ForEachRow(func(stable StableRowIndex, text string) {
			s.findRegexMatches(re, stable, text)
		})
	} else {
		query := s.Query
		if !s.CaseSensitive {
			query = strings.ToLower(query)
		}
		source.ForEachRow(func(stable StableRowIndex, text string) {
			s.findPlainMatches(query, stable, text)
		})
	}

	sort.Slice(s.matches, func(i, j int) bool {
		if s.matches[i].Row != s.matches[j].Row {
			return s.matches[i].Row < s.matches[j].Row
		}
		return s.matches[i].StartCol < s.matches[j].StartCol
	})
	if len(s.matches) > 0 {
		s.focused = 0
	}
}

func (s *SearchState) findPlainMatches(query string, row StableRowIndex, text string) {
	haystack := text
	if !s.CaseSensitive {
		haystack = strings.ToLower(haystack)
	}
	runes := []rune(haystack)
	qrunes := []rune(query)
	if len(qrunes) == 0 {
		return
	}
	for i := 0; i+len(qrunes) <= len(runes); i++ {
		match := true
		for j, qr := range qrunes {
			if runes[i+j] != qr {
				match = false
				break
			}
		}
		if match {
			s.matches = append(s.matches, SearchMatch{Row: row, StartCol: i, EndCol: i + len(qrunes)})
		}
	}
}

func (s *SearchState) findRegexMatches(re *regexp2.Regexp, row StableRowIndex, text string) {
	runes := []rune(text)
	m, err := re.FindStringMatch(text)
	for err == nil && m != nil {
		// regexp2 reports Index and Length in runes, not bytes.
		start := m.Index
		end := start + m.Length
		if end > len(runes) {
			end = len(runes)
		}
		s.matches = append(s.matches, SearchMatch{Row: row, StartCol: start, EndCol: end})
		m, err = re.FindNextMatch(m)
	}
}

// Matches returns the sorted match list.
func (s *SearchState) Matches() []SearchMatch {
	return s.matches
}

// Focused returns the currently focused match and whether one exists.
func (s *SearchState) Focused() (SearchMatch, bool) {
	if s.focused < 0 || s.focused >= len(s.matches) {
		return SearchMatch{}, false
	}
	return s.matches[s.focused], true
}

// FocusNext advances the focused match forward, wrapping around.
func (s *SearchState) FocusNext() {
	if len(s.matches) == 0 {
		return
	}
	s.focused = (s.focused + 1) % len(s.matches)
}

// FocusPrev moves the focused match backward, wrapping around.
func (s *SearchState) FocusPrev() {
	if len(s.matches) == 0 {
		return
	}
	s.focused = (s.focused - 1 + len(s.matches)) % len(s.matches)
}

// FindFrom returns the index of the first match at or after (row, col) in
// sort order, via binary search, and whether one was found.
func (s *SearchState) FindFrom(row StableRowIndex, col int) (int, bool) {
	i := sort.Search(len(s.matches), func(i int) bool {
		m := s.matches[i]
		if m.Row != row {
			return m.Row > row
		}
		return m.StartCol >= col
	})
	if i >= len(s.matches) {
		return 0, false
	}
	return i, true
}
