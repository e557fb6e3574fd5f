package card

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	// imaging registers jpeg, png, gif, tiff and bmp decoders; webp and
	// heif cover the remaining formats phones actually produce.
	_ "golang.org/x/image/webp"
)

// Error taxonomy for the upload path. Both are terminal for the attempted
// upload only and never touch previously loaded state.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrDecodeFailure   = errors.New("image decode failed")
)

// LoadedImage is the decoded photo plus the little metadata worth keeping.
// It is replaced wholesale on every successful upload and never mutated.
type LoadedImage struct {
	Image  image.Image
	Name   string // original filename as uploaded
	Format string // decoder name: "jpeg", "png", "heif", ...
}

// Accepted reports whether an upload should be attempted at all: the file
// must declare an image/* MIME type or carry a .heic extension (HEIC files
// often arrive with a blank or application/octet-stream type).
func Accepted(mimeType, filename string) bool {
	if strings.HasPrefix(mimeType, "image/") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".heic")
}

// Load decodes an uploaded file into a LoadedImage. It fails with
// ErrUnsupportedType before reading any bytes when the file kind is not
// accepted, and with ErrDecodeFailure when the bytes cannot be decoded.
func Load(r io.Reader, filename, mimeType string) (*LoadedImage, error) {
	if !Accepted(mimeType, filename) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, filename, mimeType)
	}
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	return &LoadedImage{Image: img, Name: filename, Format: format}, nil
}
