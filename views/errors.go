package views

import (
	"bytes"

	"github.com/a-h/templ"
)

// NotFound renders the styled 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return page(cfg.Name+" – not found", func(buf *bytes.Buffer) {
		buf.WriteString("<main class=\"studio\"><h1>404</h1>")
		buf.WriteString("<p>Nothing here. <a href=\"/\">Back to the studio</a>.</p></main>")
	})
}

// ServerError renders the styled 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return page(cfg.Name+" – error", func(buf *bytes.Buffer) {
		buf.WriteString("<main class=\"studio\"><h1>Something broke</h1>")
		buf.WriteString("<p>Try again in a moment. <a href=\"/\">Back to the studio</a>.</p></main>")
	})
}
