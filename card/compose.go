package card

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Cosmetic constants for the film look. All alpha values are out of 255;
// the pixel sizes are at 1x and get multiplied by the render scale.
const (
	contrastBoost   = 12
	saturationBoost = 18
	brightnessBoost = 6

	shadowOffset1x = 5
	shadowSigma1x  = 3.0

	reflectionSpan  = 0.55 // fraction of (w+h) the gradient reaches across
	reflectionAlpha = 70
	insetWidth1x    = 8
	insetAlpha      = 46

	captionSize1x = 15.0
	dateSize1x    = 11.0
)

var (
	paperColor   = color.NRGBA{R: 0xFA, G: 0xF7, B: 0xF0, A: 0xFF}
	shadowColor  = color.NRGBA{A: 90}
	captionColor = color.NRGBA{R: 0x3C, G: 0x3C, B: 0x3C, A: 0xFF}
	dateColor    = color.NRGBA{R: 0x9A, G: 0x94, B: 0x8C, A: 0xFF}
)

// Compose draws the full card onto a transparent canvas and returns it.
// The layer order is fixed: drop shadow, card body, cover-fitted photo with
// the tone filter multiplied against the paper color, light reflection,
// inset shadow, window border, caption strip.
//
// text and date are display-ready strings (see ClampCaption and FormatDate);
// empty values render as empty slots. A nil photo skips the window layers
// and yields a blank card — callers normally guard against it, but it is
// not an error here.
func Compose(photo image.Image, f Format, text, date string, scale int) (*image.NRGBA, error) {
	lay := Resolve(f).Layout(scale)

	cardRect := image.Rect(lay.Margin, lay.Margin, lay.Margin+lay.CardW, lay.Margin+lay.CardH)
	windowRect := image.Rect(
		cardRect.Min.X+lay.FramePad,
		cardRect.Min.Y+lay.FramePad,
		cardRect.Min.X+lay.FramePad+lay.WindowW,
		cardRect.Min.Y+lay.FramePad+lay.WindowH,
	)

	canvas := imaging.New(lay.CanvasW, lay.CanvasH, color.NRGBA{})

	// Drop shadow: a blurred dark rounded rect slightly below the card.
	shadow := imaging.New(lay.CanvasW, lay.CanvasH, color.NRGBA{})
	fillRoundedRect(shadow, cardRect.Add(image.Pt(0, shadowOffset1x*lay.Scale)), lay.CornerR, shadowColor)
	shadow = imaging.Blur(shadow, shadowSigma1x*float64(lay.Scale))
	canvas = imaging.Overlay(canvas, shadow, image.Point{}, 1.0)

	// Card body.
	fillRoundedRect(canvas, cardRect, lay.CornerR, paperColor)

	if photo != nil {
		// Cover-fit crops aspect mismatches instead of distorting.
		fitted := imaging.Fill(photo, lay.WindowW, lay.WindowH, imaging.Center, imaging.Lanczos)
		toned := imaging.AdjustBrightness(
			imaging.AdjustSaturation(
				imaging.AdjustContrast(fitted, contrastBoost),
				saturationBoost),
			brightnessBoost)
		multiplyTint(toned, paperColor)
		canvas = imaging.Paste(canvas, toned, windowRect.Min)

		drawReflection(canvas, windowRect)
		drawInsetShadow(canvas, windowRect, insetWidth1x*lay.Scale)
		drawBorder(canvas, windowRect, lay.BorderW, paperColor)
	}

	strip := image.Rect(cardRect.Min.X+lay.FramePad, windowRect.Max.Y, cardRect.Max.X-lay.FramePad, windowRect.Max.Y+lay.StripH)
	if err := drawCaptions(canvas, strip, text, date, lay.Scale); err != nil {
		return nil, err
	}

	return canvas, nil
}

// multiplyTint multiplies every pixel's channels against c in place,
// emulating the multiply blend of the tone layer against the paper
// beneath it. Alpha is left untouched.
func multiplyTint(img *image.NRGBA, c color.NRGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = uint8(uint16(img.Pix[i+0]) * uint16(c.R) / 255)
		img.Pix[i+1] = uint8(uint16(img.Pix[i+1]) * uint16(c.G) / 255)
		img.Pix[i+2] = uint8(uint16(img.Pix[i+2]) * uint16(c.B) / 255)
	}
}

// drawReflection lays a diagonal white gradient over the window, brightest
// in the top-left corner and fading to nothing along the diagonal.
func drawReflection(dst *image.NRGBA, r image.Rectangle) {
	span := float64(r.Dx()+r.Dy()) * reflectionSpan
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d := float64((x - r.Min.X) + (y - r.Min.Y))
			if d >= span {
				continue
			}
			a := reflectionAlpha * (1 - d/span)
			blendOver(dst, x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(a + 0.5)})
		}
	}
}

// drawInsetShadow darkens a soft ring just inside the window edge.
func drawInsetShadow(dst *image.NRGBA, r image.Rectangle, width int) {
	if width <= 0 {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			edge := min(x-r.Min.X, r.Max.X-1-x, y-r.Min.Y, r.Max.Y-1-y)
			if edge >= width {
				continue
			}
			a := insetAlpha * (1 - float64(edge)/float64(width))
			blendOver(dst, x, y, color.NRGBA{A: uint8(a + 0.5)})
		}
	}
}

// drawBorder draws a solid inset ring of the given width at the window
// edge, visually separating the photo from the clip boundary.
func drawBorder(dst *image.NRGBA, r image.Rectangle, w int, col color.NRGBA) {
	src := image.NewUniform(col)
	sides := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), // top
		image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), // bottom
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y), // left
		image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y), // right
	}
	for _, side := range sides {
		draw.Draw(dst, side, src, image.Point{}, draw.Src)
	}
}

// drawCaptions renders the caption (primary line) centered above the date
// (secondary, smaller, muted) inside the strip band. Empty values render
// nothing.
func drawCaptions(dst *image.NRGBA, strip image.Rectangle, text, date string, scale int) error {
	if text == "" && date == "" {
		return nil
	}
	centerX := (strip.Min.X + strip.Max.X) / 2
	maxW := strip.Dx()

	if text != "" {
		face, err := fittedFace(text, captionSize1x*float64(scale), maxW)
		if err != nil {
			return err
		}
		baseline := strip.Min.Y + strip.Dy()*45/100
		drawCentered(dst, text, centerX, baseline, captionColor, face)
	}
	if date != "" {
		face, err := captionFace(dateSize1x * float64(scale))
		if err != nil {
			return err
		}
		baseline := strip.Min.Y + strip.Dy()*82/100
		drawCentered(dst, date, centerX, baseline, dateColor, face)
	}
	return nil
}

// fittedFace returns a face at the requested size, shrunk proportionally
// when the string would overflow maxW. A 50-char caption still fits the
// strip this way instead of bleeding off the card.
func fittedFace(s string, size float64, maxW int) (font.Face, error) {
	face, err := captionFace(size)
	if err != nil {
		return nil, err
	}
	w := font.MeasureString(face, s).Ceil()
	if w <= maxW {
		return face, nil
	}
	shrunk := size * float64(maxW) / float64(w)
	return captionFace(shrunk)
}

func drawCentered(dst draw.Image, s string, cx, baseline int, col color.NRGBA, face font.Face) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(cx, baseline),
	}
	d.Dot.X -= font.MeasureString(face, s) / 2
	d.DrawString(s)
}

// fillRoundedRect fills r with col, rounding the corners with the given
// radius and anti-aliasing the arc edge by pixel coverage.
func fillRoundedRect(dst *image.NRGBA, r image.Rectangle, radius int, col color.NRGBA) {
	rad := float64(radius)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cov := roundedCoverage(x, y, r, rad)
			if cov <= 0 {
				continue
			}
			c := col
			if cov < 1 {
				c.A = uint8(float64(col.A)*cov + 0.5)
			}
			blendOver(dst, x, y, c)
		}
	}
}

// roundedCoverage returns how much of the pixel at (x, y) a rounded rect
// covers, in [0, 1]. A rounded rect is the set of points within radius of
// the rect inset by radius, so the distance to that core rect decides.
func roundedCoverage(x, y int, r image.Rectangle, radius float64) float64 {
	fx, fy := float64(x)+0.5, float64(y)+0.5
	cx := clampF(fx, float64(r.Min.X)+radius, float64(r.Max.X)-radius)
	cy := clampF(fy, float64(r.Min.Y)+radius, float64(r.Max.Y)-radius)
	d := math.Hypot(fx-cx, fy-cy)
	switch {
	case d <= radius-0.5:
		return 1
	case d >= radius+0.5:
		return 0
	default:
		return radius + 0.5 - d
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// blendOver composites the non-premultiplied color c over the pixel at
// (x, y) with standard source-over math.
func blendOver(dst *image.NRGBA, x, y int, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	if c.A == 0xFF {
		dst.SetNRGBA(x, y, c)
		return
	}
	i := dst.PixOffset(x, y)
	sa := uint32(c.A)
	da := uint32(dst.Pix[i+3])
	db := da * (255 - sa) / 255
	oa := sa + db
	if oa == 0 {
		dst.Pix[i+0], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = 0, 0, 0, 0
		return
	}
	blend := func(s, d uint8) uint8 {
		return uint8((uint32(s)*sa + uint32(d)*db) / oa)
	}
	dst.Pix[i+0] = blend(c.R, dst.Pix[i+0])
	dst.Pix[i+1] = blend(c.G, dst.Pix[i+1])
	dst.Pix[i+2] = blend(c.B, dst.Pix[i+2])
	dst.Pix[i+3] = uint8(oa)
}
