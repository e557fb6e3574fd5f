package card

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"time"
)

// ExportScale is the fixed upscaling factor between the on-screen preview
// and the exported raster.
const ExportScale = 4

// ErrExportFailure wraps any rasterization or encoding error on the
// export path.
var ErrExportFailure = errors.New("export failed")

// Artifact is the transient export result: PNG bytes plus the generated
// download name. It has no lifecycle beyond the single export that
// produced it.
type Artifact struct {
	Filename string
	Data     []byte
}

// Export composes the card at ExportScale on a transparent backing and
// encodes it as a lossless PNG. The filename embeds the format and the
// export time in unix milliseconds: instax-{mini|wide}-{millis}.png.
//
// Identical inputs produce byte-identical PNG data; only the filename
// timestamp varies between calls.
func Export(photo image.Image, f Format, text, date string, now time.Time) (Artifact, error) {
	if photo == nil {
		return Artifact{}, fmt.Errorf("%w: no image loaded", ErrExportFailure)
	}
	img, err := Compose(photo, f, text, date, ExportScale)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrExportFailure, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrExportFailure, err)
	}
	return Artifact{
		Filename: fmt.Sprintf("instax-%s-%d.png", f, now.UnixMilli()),
		Data:     buf.Bytes(),
	}, nil
}
