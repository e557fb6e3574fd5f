package views

import (
	"bytes"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

func esc(s string) string {
	return html.EscapeString(s)
}

// page wraps a body-writing function in the shared HTML shell and returns
// it as a templ component.
func page(title string, body func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!doctype html><html lang=\"en\"><head>")
		buf.WriteString("<meta charset=\"utf-8\">")
		buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		buf.WriteString("<title>" + esc(title) + "</title>")
		buf.WriteString("<link rel=\"stylesheet\" href=\"/public/styles.css\">")
		buf.WriteString("</head><body>")
		body(&buf)
		buf.WriteString("</body></html>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func classIf(cond bool, base, extra string) string {
	if cond {
		return base + " " + extra
	}
	return base
}
