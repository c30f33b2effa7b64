package vtcore

import (
	"github.com/rivo/uniseg"
	"github.com/unilibs/uniwidth"
)

// runeWidth returns the display width: 2 for wide characters (CJK, emoji),
// 1 for normal, 0 for zero-width (combining marks, control chars).
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// isWideRune returns true if the rune occupies 2 columns (CJK ideographs,
// fullwidth forms, emoji).
func isWideRune(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}

// StringWidth returns the total display width of a string (sum of rune
// widths).
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}

// isCombiningMark reports whether r is a zero-width grapheme extender -
// combining marks, variation selectors, and similar - that should attach
// to the preceding cell rather than advance the cursor. uniwidth already
// reports these as width 0; uniseg's grapheme-cluster boundary logic lets
// us distinguish "extends the previous cluster" from "independent
// zero-width control character" (e.g. a bare control code, which should
// simply be discarded).
func isCombiningMark(r rune) bool {
	if runeWidth(r) != 0 {
		return false
	}
	clusters := uniseg.NewGraphemes("a" + string(r))
	clusters.Next()
	return len(clusters.Runes()) > 1
}
