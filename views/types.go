package views

// SiteConfig holds site-wide display settings.
type SiteConfig struct {
	Name string
}

// Studio is the page-side snapshot of one session's editing state.
type Studio struct {
	HasImage    bool
	ImageName   string // original upload filename
	Format      string // "mini" or "wide"
	Caption     string
	Date        string // raw value for the date input, "2006-01-02"
	CaptionDate string // display form, "Jan 2, 2006"
	Error       string // single user-visible error slot, "" when clear
	Version     uint64 // cache-buster for the preview image
}
