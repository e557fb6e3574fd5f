package card

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestAccepted(t *testing.T) {
	cases := []struct {
		mime, name string
		want       bool
	}{
		{"image/jpeg", "photo.jpg", true},
		{"image/png", "shot.png", true},
		{"image/webp", "shot.webp", true},
		{"", "IMG_0042.HEIC", true},
		{"application/octet-stream", "img_0042.heic", true},
		{"text/plain", "notes.txt", false},
		{"application/pdf", "scan.pdf", false},
		{"", "photo.jpg", false},
	}
	for _, tc := range cases {
		if got := Accepted(tc.mime, tc.name); got != tc.want {
			t.Fatalf("Accepted(%q, %q) = %v, want %v", tc.mime, tc.name, got, tc.want)
		}
	}
}

func TestLoadDecodesPNG(t *testing.T) {
	data := pngBytes(t, 8, 8, color.NRGBA{R: 200, A: 255})
	img, err := Load(bytes.NewReader(data), "shot.png", "image/png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Format != "png" {
		t.Fatalf("format = %q, want png", img.Format)
	}
	if img.Name != "shot.png" {
		t.Fatalf("name = %q, want shot.png", img.Name)
	}
	if img.Image.Bounds().Dx() != 8 {
		t.Fatalf("decoded width = %d, want 8", img.Image.Bounds().Dx())
	}
}

func TestLoadRejectsUnsupportedType(t *testing.T) {
	_, err := Load(strings.NewReader("just some text"), "notes.txt", "text/plain")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestLoadReportsDecodeFailure(t *testing.T) {
	garbage := bytes.Repeat([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 64)
	_, err := Load(bytes.NewReader(garbage), "broken.jpg", "image/jpeg")
	if !errors.Is(err, ErrDecodeFailure) {
		t.Fatalf("expected ErrDecodeFailure, got %v", err)
	}
}
