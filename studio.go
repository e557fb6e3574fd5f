package instaframe

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/mkume/instaframe/card"
	"github.com/mkume/instaframe/views"
)

// User-facing messages for the single error slot. Exactly one is shown at
// a time; the next error replaces it and a new upload attempt clears it.
const (
	msgUnsupportedType = "That file doesn't look like a photo. Upload an image or a .heic file."
	msgDecodeFailure   = "Couldn't read that photo. The file may be damaged."
	msgTooLarge        = "That photo is too large to upload."
	msgExportFailure   = "Failed to save the photo. Try again."
)

// errUploadTooLarge marks uploads rejected at the size cap before any
// decode is attempted.
var errUploadTooLarge = errors.New("upload too large")

// Studio is one session's volatile editing state: the loaded photo, the
// selected format, the caption fields and the error slot. Nothing in here
// ever touches disk; when the session goes idle the whole thing is dropped
// by the registry.
type Studio struct {
	mu       sync.Mutex
	img      *card.LoadedImage
	format   card.Format
	caption  string
	date     string // raw "2006-01-02" from the date input
	errMsg   string
	gen      uint64 // upload generation, latest-wins guard
	version  uint64 // bumped on every visible change; busts the preview cache
	lastSeen time.Time
}

func newStudio() *Studio {
	return &Studio{format: card.FormatMini, lastSeen: time.Now()}
}

func (s *Studio) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// BeginUpload starts a new upload attempt: the error slot is cleared and a
// fresh generation is issued. Only the result carrying the newest
// generation is allowed to land, so a slow decode from a superseded upload
// can never overwrite a newer photo.
func (s *Studio) BeginUpload() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.errMsg = ""
	s.version++
	s.lastSeen = time.Now()
	return s.gen
}

// ApplyUpload lands the settled result of an upload attempt. A stale
// generation is discarded and false returned. On error the message slot is
// set and the previously loaded image is left untouched; on success the
// image is replaced wholesale and the error slot cleared.
func (s *Studio) ApplyUpload(gen uint64, img *card.LoadedImage, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	if err != nil {
		switch {
		case errors.Is(err, card.ErrUnsupportedType):
			s.errMsg = msgUnsupportedType
		case errors.Is(err, errUploadTooLarge):
			s.errMsg = msgTooLarge
		default:
			s.errMsg = msgDecodeFailure
		}
	} else {
		s.img = img
		s.errMsg = ""
	}
	s.version++
	return true
}

// SetFormat switches the frame format. The loaded photo is untouched;
// geometry is re-derived on the next render.
func (s *Studio) SetFormat(f card.Format) {
	s.mu.Lock()
	s.format = f
	s.version++
	s.mu.Unlock()
}

// SetCaption applies the silent length clamp: oversize input keeps the
// previous caption.
func (s *Studio) SetCaption(candidate string) {
	s.mu.Lock()
	s.caption = card.ClampCaption(s.caption, candidate)
	s.version++
	s.mu.Unlock()
}

// SetDate stores the raw calendar date ("" clears it).
func (s *Studio) SetDate(raw string) {
	s.mu.Lock()
	s.date = raw
	s.version++
	s.mu.Unlock()
}

// Render composes the current card at the given scale. ok is false when no
// photo is loaded, which renders nothing by design.
func (s *Studio) Render(scale int) (img *image.NRGBA, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return nil, false, nil
	}
	img, err = card.Compose(s.img.Image, s.format, s.caption, card.FormatDate(s.date), scale)
	if err != nil {
		return nil, true, err
	}
	return img, true, nil
}

// Export produces the downloadable artifact for the current composition.
// With no photo loaded it is a no-op. The error slot is cleared before the
// attempt and set on failure; the composition itself is never touched, so
// a retry after a failure can succeed.
func (s *Studio) Export(now time.Time) (card.Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return card.Artifact{}, false
	}
	s.errMsg = ""
	art, err := card.Export(s.img.Image, s.format, s.caption, card.FormatDate(s.date), now)
	if err != nil {
		s.errMsg = msgExportFailure
		s.version++
		return card.Artifact{}, false
	}
	return art, true
}

// View snapshots the studio for page rendering.
func (s *Studio) View() views.Studio {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := views.Studio{
		HasImage:    s.img != nil,
		Format:      string(s.format),
		Caption:     s.caption,
		Date:        s.date,
		CaptionDate: card.FormatDate(s.date),
		Error:       s.errMsg,
		Version:     s.version,
	}
	if s.img != nil {
		v.ImageName = s.img.Name
	}
	return v
}

// Registry maps session IDs to their studios and drops studios that have
// been idle longer than the TTL.
type Registry struct {
	mu      sync.Mutex
	studios map[string]*Studio
	ttl     time.Duration
}

// NewRegistry creates a Registry with a background janitor.
func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		studios: make(map[string]*Studio),
		ttl:     ttl,
	}
	go r.cleanup()
	return r
}

func (r *Registry) cleanup() {
	ticker := time.NewTicker(r.ttl)
	for range ticker.C {
		r.purge(time.Now().Add(-r.ttl))
	}
}

func (r *Registry) purge(cutoff time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.studios {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(r.studios, id)
		}
	}
}

// Get returns the studio for a session, creating it on first sight.
func (r *Registry) Get(id string) *Studio {
	r.mu.Lock()
	s, ok := r.studios[id]
	if !ok {
		s = newStudio()
		r.studios[id] = s
	}
	r.mu.Unlock()
	s.touch()
	return s
}
