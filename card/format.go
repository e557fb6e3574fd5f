// Package card composes photos into instant-film style cards and exports
// them as PNG. It is pure image work: no HTTP, no sessions, no I/O beyond
// the readers and writers handed to it.
package card

// Format selects one of the two supported instant-film shapes.
type Format string

const (
	FormatMini Format = "mini"
	FormatWide Format = "wide"
)

// ParseFormat maps a raw form value to a Format, defaulting to mini.
func ParseFormat(s string) Format {
	if s == string(FormatWide) {
		return FormatWide
	}
	return FormatMini
}

// Geometry holds the layout parameters derived from a Format. It is a pure
// function of the Format: resolving the same Format always yields the same
// Geometry.
type Geometry struct {
	OuterWidth  int // card width in px at 1x
	AspectW     int // photo window aspect ratio, width term
	AspectH     int // photo window aspect ratio, height term
	StripHeight int // caption strip height in px at 1x
}

// Resolve returns the Geometry for a Format. Total over both formats;
// ParseFormat guarantees no other value reaches this switch.
//
// The mini photo window uses the 54:86 print ratio of real Instax Mini
// film (54x86 mm image area).
func Resolve(f Format) Geometry {
	switch f {
	case FormatWide:
		return Geometry{OuterWidth: 400, AspectW: 99, AspectH: 62, StripHeight: 48}
	default:
		return Geometry{OuterWidth: 320, AspectW: 54, AspectH: 86, StripHeight: 40}
	}
}

// Layout is the pixel-level plan for drawing a card at a given scale.
// Everything the compositor needs is derived here so that preview (1x) and
// export (4x) renders differ only by the scale factor.
type Layout struct {
	Scale int

	CardW, CardH     int // the card body
	WindowW, WindowH int // the clipped photo region
	FramePad         int // inset of the photo window from the card edges
	StripH           int // caption band below the window
	BorderW          int // inset border at the window edge
	CornerR          int // card corner radius
	Margin           int // transparent margin around the card for the shadow

	CanvasW, CanvasH int // full output raster
}

const (
	framePad1x = 16
	borderW1x  = 3
	cornerR1x  = 10
	margin1x   = 16
)

// Layout derives the drawing plan for this Geometry at the given scale.
// The window height follows the aspect ratio of the format, so aspect
// mismatches with the source photo are resolved by cover-fit cropping,
// never by stretching.
//
// All dimensions are derived at 1x and then multiplied by the scale, so a
// 4x render is exactly 4x the 1x render in both axes.
func (g Geometry) Layout(scale int) Layout {
	if scale < 1 {
		scale = 1
	}
	windowW1 := g.OuterWidth - 2*framePad1x
	windowH1 := windowW1 * g.AspectH / g.AspectW
	cardH1 := framePad1x + windowH1 + g.StripHeight + framePad1x
	return Layout{
		Scale:    scale,
		CardW:    g.OuterWidth * scale,
		CardH:    cardH1 * scale,
		WindowW:  windowW1 * scale,
		WindowH:  windowH1 * scale,
		FramePad: framePad1x * scale,
		StripH:   g.StripHeight * scale,
		BorderW:  borderW1x * scale,
		CornerR:  cornerR1x * scale,
		Margin:   margin1x * scale,
		CanvasW:  (g.OuterWidth + 2*margin1x) * scale,
		CanvasH:  (cardH1 + 2*margin1x) * scale,
	}
}
