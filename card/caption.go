package card

import (
	"time"
	"unicode/utf8"
)

// MaxCaptionLen is the hard cap on caption length, counted in runes.
const MaxCaptionLen = 50

// ClampCaption applies the caption length rule: a candidate within the cap
// replaces the previous value exactly; an oversize candidate is silently
// rejected and the previous value is kept. There is no error path — this
// mirrors an input field that simply stops accepting characters.
func ClampCaption(prev, candidate string) string {
	if utf8.RuneCountInString(candidate) > MaxCaptionLen {
		return prev
	}
	return candidate
}

// FormatDate turns a calendar date in ISO form ("2006-01-02", what an HTML
// date input emits) into the display form "Jan 2, 2006". Empty input yields
// an empty string. Malformed input also yields an empty string rather than
// an error; the date always comes from a constrained picker.
func FormatDate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
