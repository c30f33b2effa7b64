package vtcore

import "unsafe"

// CellFlags is a bitmask of cell rendering attributes.
type CellFlags uint16

const (
	CellFlagBold CellFlags = 1 << iota
	CellFlagDim
	CellFlagItalic
	CellFlagUnderline
	CellFlagBlink
	CellFlagInverse
	CellFlagHidden
	CellFlagStrikethrough
	CellFlagWideChar
	CellFlagWideCharSpacer
	CellFlagWrap
	CellFlagUnderlineCurly
	CellFlagUnderlineDotted
	CellFlagUnderlineDashed
	CellFlagUnderlineDouble
	CellFlagLeadingWideCharSpacer
)

// underlineStyleMask is the set of flags that together select the
// underline rendering style; SGR 4 sub-parameters are mutually exclusive
// over this set.
const underlineStyleMask = CellFlagUnderline | CellFlagUnderlineCurly |
	CellFlagUnderlineDotted | CellFlagUnderlineDashed | CellFlagUnderlineDouble

// ColorKind identifies which variant a ColorRef holds.
type ColorKind uint8

const (
	// ColorDefault means "use the palette's default foreground/background".
	ColorDefault ColorKind = iota
	// ColorNamed indexes one of the palette's named slots (0-15 ANSI plus
	// the 256-269 semantic slots).
	ColorNamed
	// ColorIndexed indexes the full 256-slot palette.
	ColorIndexed
	// ColorSpec carries an explicit RGB triple.
	ColorSpec
)

// ColorRef is a compact, unresolved colour reference: one of Default,
// Named(slot), Indexed(slot), or Spec(r,g,b). It is deliberately a 4-byte
// value type rather than a boxed interface so that [Cell] can stay within
// its 24-byte budget; resolution to a concrete RGB triple happens once, at
// snapshot time, against the terminal's [Palette].
type ColorRef uint32

const colorKindMask ColorRef = 0x3

// Kind reports which variant c holds.
func (c ColorRef) Kind() ColorKind {
	return ColorKind(c & colorKindMask)
}

// NewNamedColor returns a ColorRef naming palette slot n (0-15 for the
// standard ANSI colours, 256-269 for semantic slots).
func NewNamedColor(n uint16) ColorRef {
	return ColorRef(ColorNamed) | ColorRef(n)<<2
}

// NamedIndex returns the named palette slot c refers to. Only meaningful
// when c.Kind() == ColorNamed.
func (c ColorRef) NamedIndex() uint16 {
	return uint16(c >> 2)
}

// NewIndexedColor returns a ColorRef naming palette slot i (0-255).
func NewIndexedColor(i uint8) ColorRef {
	return ColorRef(ColorIndexed) | ColorRef(i)<<2
}

// Index returns the indexed palette slot c refers to. Only meaningful when
// c.Kind() == ColorIndexed.
func (c ColorRef) Index() uint8 {
	return uint8(c >> 2)
}

// NewSpecColor returns a ColorRef carrying an explicit RGB triple.
func NewSpecColor(r, g, b uint8) ColorRef {
	return ColorRef(ColorSpec) | ColorRef(r)<<2 | ColorRef(g)<<10 | ColorRef(b)<<18
}

// RGB returns the RGB triple c carries. Only meaningful when
// c.Kind() == ColorSpec.
func (c ColorRef) RGB() (r, g, b uint8) {
	return uint8(c >> 2), uint8(c >> 10), uint8(c >> 18)
}

// DefaultColor is the zero ColorRef: "use the palette default".
var DefaultColor = ColorRef(ColorDefault)

// Hyperlink associates a cell with a clickable link (OSC 8).
type Hyperlink struct {
	ID  string
	URI string
}

// CellExtra holds the attributes that most cells never use: an explicit
// underline colour, a hyperlink, and any zero-width combining characters
// attached to the base rune. It is allocated lazily so the common case
// (plain text) pays nothing beyond the nil pointer in [Cell].
type CellExtra struct {
	UnderlineColor ColorRef
	HasUnderline   bool
	Hyperlink      *Hyperlink
	Zerowidth      []rune
}

// Clone returns a deep copy of e, or nil if e is nil.
func (e *CellExtra) Clone() *CellExtra {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Zerowidth != nil {
		clone.Zerowidth = append([]rune(nil), e.Zerowidth...)
	}
	return &clone
}

// Cell is a single character position in the grid: base rune, unresolved
// foreground/background colour references, a flags bitset, and an optional
// CellExtra for the uncommon attributes. Its size is bounded to 24 bytes
// on 64-bit platforms (asserted below at compile time) so that a full
// 240x80 grid plus scrollback stays cheap to allocate and copy.
type Cell struct {
	Char  rune
	Fg    ColorRef
	Bg    ColorRef
	Flags CellFlags
	Extra *CellExtra
}

// Compile-time assertion that Cell fits the 24-byte budget. If Cell grows
// past 24 bytes this array has a negative length and the package fails to
// build.
var _ [24 - int(unsafe.Sizeof(Cell{}))]byte

// NewCell returns a cell holding a space with default colours and no flags.
func NewCell() Cell {
	return Cell{Char: ' ', Fg: DefaultColor, Bg: DefaultColor}
}

// Reset clears c back to a default space cell, freeing any CellExtra.
func (c *Cell) Reset() {
	c.Char = ' '
	c.Fg = DefaultColor
	c.Bg = DefaultColor
	c.Flags = 0
	c.Extra = nil
}

// HasFlag reports whether flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool {
	return c.Flags&flag != 0
}

// SetFlag sets flag without affecting others.
func (c *Cell) SetFlag(flag CellFlags) {
	c.Flags |= flag
}

// ClearFlag clears flag without affecting others.
func (c *Cell) ClearFlag(flag CellFlags) {
	c.Flags &^= flag
}

// IsWide reports whether c is the base of a double-width character pair.
func (c *Cell) IsWide() bool {
	return c.HasFlag(CellFlagWideChar)
}

// IsWideSpacer reports whether c is the trailing half of a double-width
// character pair and should be skipped when rendering or reading text.
func (c *Cell) IsWideSpacer() bool {
	return c.HasFlag(CellFlagWideCharSpacer)
}

// IsEmpty reports whether c is indistinguishable from a freshly reset cell.
func (c *Cell) IsEmpty() bool {
	return c.Char == ' ' && c.Flags == 0 && c.Fg == DefaultColor && c.Bg == DefaultColor && c.Extra == nil
}

// ensureExtra returns c's CellExtra, allocating it on first use.
func (c *Cell) ensureExtra() *CellExtra {
	if c.Extra == nil {
		c.Extra = &CellExtra{}
	}
	return c.Extra
}

// AppendZerowidth attaches a combining/zero-width rune to c without
// advancing past it; r is appended to Extra.Zerowidth.
func (c *Cell) AppendZerowidth(r rune) {
	e := c.ensureExtra()
	e.Zerowidth = append(e.Zerowidth, r)
}

// SetHyperlink attaches a hyperlink to c, or clears it when link is nil.
func (c *Cell) SetHyperlink(link *Hyperlink) {
	if link == nil {
		if c.Extra != nil {
			c.Extra.Hyperlink = nil
		}
		return
	}
	c.ensureExtra().Hyperlink = link
}

// HyperlinkRef returns c's hyperlink, or nil if it has none.
func (c *Cell) HyperlinkRef() *Hyperlink {
	if c.Extra == nil {
		return nil
	}
	return c.Extra.Hyperlink
}

// SetUnderlineColor sets an explicit underline colour distinct from the
// foreground colour.
func (c *Cell) SetUnderlineColor(ref ColorRef) {
	e := c.ensureExtra()
	e.UnderlineColor = ref
	e.HasUnderline = true
}

// ClearUnderlineColor removes any explicit underline colour, reverting to
// the foreground colour for underline rendering.
func (c *Cell) ClearUnderlineColor() {
	if c.Extra != nil {
		c.Extra.HasUnderline = false
	}
}

// UnderlineColor returns the explicit underline colour and whether one is
// set; when ok is false the underline should render in the foreground
// colour.
func (c *Cell) UnderlineColor() (ref ColorRef, ok bool) {
	if c.Extra == nil || !c.Extra.HasUnderline {
		return ColorRef(0), false
	}
	return c.Extra.UnderlineColor, true
}

// Copy returns a deep copy of c, cloning its CellExtra if present.
func (c Cell) Copy() Cell {
	c.Extra = c.Extra.Clone()
	return c
}
