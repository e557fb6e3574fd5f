package instaframe

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/mkume/instaframe/card"
)

func testPNG(t *testing.T, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func upload(t *testing.T, s *Studio, data []byte, name, mime string) bool {
	t.Helper()
	gen := s.BeginUpload()
	img, err := card.Load(bytes.NewReader(data), name, mime)
	return s.ApplyUpload(gen, img, err)
}

func TestUploadSuccessClearsError(t *testing.T) {
	s := newStudio()

	if !upload(t, s, []byte("not an image"), "notes.txt", "text/plain") {
		t.Fatalf("expected current-generation result to land")
	}
	if s.View().Error != msgUnsupportedType {
		t.Fatalf("error slot = %q, want unsupported-type message", s.View().Error)
	}
	if s.View().HasImage {
		t.Fatalf("failed upload must not set an image")
	}

	if !upload(t, s, testPNG(t, color.NRGBA{R: 200, A: 255}), "ok.png", "image/png") {
		t.Fatalf("expected upload to land")
	}
	v := s.View()
	if !v.HasImage {
		t.Fatalf("successful upload should set the image")
	}
	if v.Error != "" {
		t.Fatalf("successful upload should clear the error slot, got %q", v.Error)
	}
	if v.ImageName != "ok.png" {
		t.Fatalf("image name = %q, want ok.png", v.ImageName)
	}
}

func TestUploadFailureKeepsPreviousImage(t *testing.T) {
	s := newStudio()
	if !upload(t, s, testPNG(t, color.NRGBA{G: 200, A: 255}), "first.png", "image/png") {
		t.Fatalf("seed upload failed to land")
	}

	upload(t, s, []byte{0xDE, 0xAD}, "broken.jpg", "image/jpeg")

	v := s.View()
	if !v.HasImage || v.ImageName != "first.png" {
		t.Fatalf("decode failure must leave the previous image untouched, got %+v", v)
	}
	if v.Error != msgDecodeFailure {
		t.Fatalf("error slot = %q, want decode-failure message", v.Error)
	}
}

func TestStaleDecodeDiscarded(t *testing.T) {
	s := newStudio()

	// Two uploads in flight: the first one's decode settles after the
	// second has already landed.
	gen1 := s.BeginUpload()
	gen2 := s.BeginUpload()

	newer, err := card.Load(bytes.NewReader(testPNG(t, color.NRGBA{B: 250, A: 255})), "newer.png", "image/png")
	if err != nil {
		t.Fatalf("load newer: %v", err)
	}
	if !s.ApplyUpload(gen2, newer, nil) {
		t.Fatalf("newest generation should land")
	}

	older, err := card.Load(bytes.NewReader(testPNG(t, color.NRGBA{R: 250, A: 255})), "older.png", "image/png")
	if err != nil {
		t.Fatalf("load older: %v", err)
	}
	if s.ApplyUpload(gen1, older, nil) {
		t.Fatalf("stale generation must be discarded")
	}
	if v := s.View(); v.ImageName != "newer.png" {
		t.Fatalf("stale decode overwrote the newer image: %+v", v)
	}

	// A stale failure must not set the error slot either.
	if s.ApplyUpload(gen1, nil, card.ErrDecodeFailure) {
		t.Fatalf("stale failure must be discarded")
	}
	if v := s.View(); v.Error != "" {
		t.Fatalf("stale failure set the error slot: %q", v.Error)
	}
}

func TestSetCaptionClamp(t *testing.T) {
	s := newStudio()
	s.SetCaption("Tokyo 2024")
	s.SetCaption(strings.Repeat("x", card.MaxCaptionLen+1))
	if v := s.View(); v.Caption != "Tokyo 2024" {
		t.Fatalf("oversize caption should be silently rejected, got %q", v.Caption)
	}
}

func TestViewFormatsDate(t *testing.T) {
	s := newStudio()
	s.SetDate("2024-12-24")
	v := s.View()
	if v.Date != "2024-12-24" {
		t.Fatalf("raw date = %q", v.Date)
	}
	if v.CaptionDate != "Dec 24, 2024" {
		t.Fatalf("display date = %q, want Dec 24, 2024", v.CaptionDate)
	}
}

func TestExportWithoutImageIsNoop(t *testing.T) {
	s := newStudio()
	art, ok := s.Export(time.Now())
	if ok {
		t.Fatalf("export with no image should be a no-op")
	}
	if len(art.Data) != 0 {
		t.Fatalf("no-op export produced data")
	}
	if v := s.View(); v.Error != "" {
		t.Fatalf("no-op export must not set an error, got %q", v.Error)
	}
}

func TestExportProducesDownload(t *testing.T) {
	s := newStudio()
	if !upload(t, s, testPNG(t, color.NRGBA{R: 120, G: 90, B: 200, A: 255}), "pic.png", "image/png") {
		t.Fatalf("upload failed to land")
	}
	s.SetFormat(card.FormatWide)
	s.SetCaption("Tokyo 2024")
	s.SetDate("2024-12-24")

	art, ok := s.Export(time.UnixMilli(1735030800000))
	if !ok {
		t.Fatalf("export should succeed: %q", s.View().Error)
	}
	if art.Filename != "instax-wide-1735030800000.png" {
		t.Fatalf("filename = %q", art.Filename)
	}
	decoded, err := png.Decode(bytes.NewReader(art.Data))
	if err != nil {
		t.Fatalf("export is not a decodable PNG: %v", err)
	}
	preview := card.Resolve(card.FormatWide).Layout(1)
	if decoded.Bounds().Dx() != card.ExportScale*preview.CanvasW {
		t.Fatalf("export width = %d, want %d", decoded.Bounds().Dx(), card.ExportScale*preview.CanvasW)
	}
}

func TestRenderWithoutImage(t *testing.T) {
	s := newStudio()
	img, ok, err := s.Render(1)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if ok || img != nil {
		t.Fatalf("render with no image should report nothing to draw")
	}
}

func TestRegistryCreatesAndPurges(t *testing.T) {
	r := &Registry{studios: make(map[string]*Studio), ttl: time.Minute}

	first := r.Get("abc")
	if r.Get("abc") != first {
		t.Fatalf("same session ID should return the same studio")
	}
	if r.Get("other") == first {
		t.Fatalf("different sessions must not share a studio")
	}

	// Everything is idle relative to a future cutoff, so it all goes.
	r.purge(time.Now().Add(time.Hour))
	if r.Get("abc") == first {
		t.Fatalf("idle studio should have been dropped")
	}
}
