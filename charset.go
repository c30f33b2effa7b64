package vtcore

// Charset selects the character encoding variant applied on input.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetLineDrawing
)

// CharsetIndex selects one of the four designatable charset slots (G0-G3).
type CharsetIndex int

const (
	CharsetIndexG0 CharsetIndex = iota
	CharsetIndexG1
	CharsetIndexG2
	CharsetIndexG3
)

// lineDrawingTable maps ASCII bytes to their DEC Special Graphics
// (line-drawing) glyph when CharsetLineDrawing is the active charset,
// designated via ESC ( 0 / ESC ) 0 / etc.
var lineDrawingTable = map[rune]rune{
	'j': '┘', 'k': '┐', 'l': '┌', 'm': '└', 'n': '┼',
	'q': '─', 't': '├', 'u': '┤', 'v': '┴', 'w': '┬', 'x': '│',
	'a': '▒', 'f': '°', 'g': '±', '`': '◆', '~': '·',
	'o': '⎺', 'p': '⎻', 'r': '⎼', 's': '⎽',
	'y': '≤', 'z': '≥', '{': 'π', '|': '≠', '}': '£',
}

// translateCharset applies charset to r, returning the glyph that should
// actually be written to the grid.
func translateCharset(charset Charset, r rune) rune {
	if charset != CharsetLineDrawing {
		return r
	}
	if g, ok := lineDrawingTable[r]; ok {
		return g
	}
	return r
}
