package card

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// The caption strip uses the embedded Go Regular font so composed cards
// look identical on every host, with no font files to locate at runtime.
var (
	fontOnce   sync.Once
	fontParsed *opentype.Font
	fontErr    error
)

func captionFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		fontParsed, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse embedded font: %w", fontErr)
	}
	return fontParsed, nil
}

// captionFace returns a font.Face at the given pixel size.
func captionFace(size float64) (font.Face, error) {
	parsed, err := captionFont()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}
