package vtcore

import colorful "github.com/lucasb-eyer/go-colorful"

// RGB is a resolved, fully opaque colour triple — the form every colour
// ends up in once it reaches a [RenderableContent] snapshot.
type RGB struct {
	R, G, B uint8
}

// Named palette slots. 0-15 are the standard ANSI colours (and are also
// addressable as indexed-palette slots 0-15 — the same underlying storage).
// 256-269 are semantic slots layered on top of the 256-entry indexed
// palette, bringing the palette to 270 total slots.
const (
	SlotDefaultForeground = 256
	SlotDefaultBackground = 257
	SlotCursor            = 258
	SlotSelectionForeground = 259
	SlotSelectionBackground = 260
	SlotUnderlineDefault    = 261
	SlotDimBlack            = 262
	SlotDimRed              = 263
	SlotDimGreen            = 264
	SlotDimYellow           = 265
	SlotDimBlue             = 266
	SlotDimMagenta          = 267
	SlotDimCyan             = 268
	SlotDimWhite            = 269

	paletteSize = 270
)

// Palette holds 270 resolvable colour slots: 0-15 named ANSI colours,
// 16-231 the 6x6x6 colour cube, 232-255 a 24-step grayscale ramp, and
// 256-269 named semantic slots (default fg/bg, cursor, selection fg/bg,
// default underline colour, and eight "dim" variants of the ANSI colours).
// Palette mutations (OSC 4/10/11/12/104) only ever touch these slots;
// already-written cells store an unresolved [ColorRef] and are
// automatically recoloured the next time they are resolved.
type Palette struct {
	slots [paletteSize]RGB
}

// NewPalette returns a palette initialised to the standard xterm-like
// defaults.
func NewPalette() *Palette {
	p := &Palette{}
	p.resetAll()
	return p
}

var defaultANSI16 = [16]RGB{
	{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
	{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
	{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
	{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
}

// resetAll restores every slot to its default value.
func (p *Palette) resetAll() {
	copy(p.slots[0:16], defaultANSI16[:])

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p.slots[i] = cubeStep(r, g, b)
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		p.slots[232+j] = RGB{gray, gray, gray}
	}

	p.slots[SlotDefaultForeground] = RGB{229, 229, 229}
	p.slots[SlotDefaultBackground] = RGB{0, 0, 0}
	p.slots[SlotCursor] = RGB{229, 229, 229}
	p.slots[SlotSelectionForeground] = RGB{0, 0, 0}
	p.slots[SlotSelectionBackground] = RGB{38, 79, 120}
	p.slots[SlotUnderlineDefault] = p.slots[SlotDefaultForeground]
	for n := 0; n < 8; n++ {
		p.slots[SlotDimBlack+n] = dim(p.slots[n])
	}
}

// cubeStep computes one entry of the 6x6x6 colour cube with the standard
// xterm channel levels (0, 95, 135, 175, 215, 255), converted back to 8-bit
// channels through go-colorful's RGB255.
func cubeStep(r, g, b int) RGB {
	step := func(n int) float64 {
		if n == 0 {
			return 0
		}
		return float64(n)*40 + 55
	}
	c := colorful.Color{R: step(r) / 255, G: step(g) / 255, B: step(b) / 255}
	cr, cg, cb := c.RGB255()
	return RGB{cr, cg, cb}
}

// dim blends base 66% toward itself and 34% toward black, matching the
// conventional terminal "dim" attribute rendering.
func dim(base RGB) RGB {
	c := colorful.Color{R: float64(base.R) / 255, G: float64(base.G) / 255, B: float64(base.B) / 255}
	blended := c.BlendRgb(colorful.Color{R: 0, G: 0, B: 0}, 0.34)
	r, g, b := blended.RGB255()
	return RGB{r, g, b}
}

// Set assigns slot to c. Out-of-range slots are ignored: an invalid OSC 4
// index should never corrupt palette state.
func (p *Palette) Set(slot int, c RGB) {
	if slot < 0 || slot >= paletteSize {
		return
	}
	p.slots[slot] = c
}

// Get returns the colour stored in slot. Out-of-range slots resolve to the
// default foreground.
func (p *Palette) Get(slot int) RGB {
	if slot < 0 || slot >= paletteSize {
		return p.slots[SlotDefaultForeground]
	}
	return p.slots[slot]
}

// ResetSlot restores slot to its startup default.
func (p *Palette) ResetSlot(slot int) {
	fresh := NewPalette()
	p.Set(slot, fresh.Get(slot))
}

// Resolve converts an unresolved ColorRef into a concrete RGB using this
// palette. isFg selects the appropriate default when ref is ColorDefault.
func (p *Palette) Resolve(ref ColorRef, isFg bool) RGB {
	switch ref.Kind() {
	case ColorNamed:
		return p.Get(int(ref.NamedIndex()))
	case ColorIndexed:
		return p.Get(int(ref.Index()))
	case ColorSpec:
		r, g, b := ref.RGB()
		return RGB{r, g, b}
	default:
		if isFg {
			return p.Get(SlotDefaultForeground)
		}
		return p.Get(SlotDefaultBackground)
	}
}
