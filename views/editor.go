package views

import (
	"bytes"
	"fmt"

	"github.com/a-h/templ"
)

// Editor renders the single-page studio: upload surface, format toggle,
// caption fields, the live preview and the export trigger. The export form
// only appears once a photo is loaded.
func Editor(cfg SiteConfig, st Studio, csrf string) templ.Component {
	return page(cfg.Name, func(buf *bytes.Buffer) {
		buf.WriteString("<main class=\"studio\">")
		buf.WriteString("<h1>" + esc(cfg.Name) + "</h1>")

		if st.Error != "" {
			buf.WriteString("<p class=\"error\" role=\"alert\">" + esc(st.Error) + "</p>")
		}

		writeControls(buf, st, csrf)
		writePreview(buf, st, csrf)

		buf.WriteString("</main>")
	})
}

func writeControls(buf *bytes.Buffer, st Studio, csrf string) {
	buf.WriteString("<section class=\"controls\">")

	// Upload. The accept attribute is a UI affordance only; the server
	// re-checks the file kind.
	buf.WriteString("<form class=\"upload\" method=\"post\" action=\"/upload/\" enctype=\"multipart/form-data\">")
	buf.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(csrf) + "\">")
	buf.WriteString("<label for=\"photo\">Photo</label>")
	buf.WriteString("<input type=\"file\" id=\"photo\" name=\"photo\" accept=\"image/*,.heic\" required>")
	buf.WriteString("<button type=\"submit\">Upload</button>")
	if st.ImageName != "" {
		buf.WriteString("<span class=\"filename\">" + esc(st.ImageName) + "</span>")
	}
	buf.WriteString("</form>")

	// Format toggle + caption fields.
	buf.WriteString("<form class=\"settings\" method=\"post\" action=\"/studio/\">")
	buf.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(csrf) + "\">")

	buf.WriteString("<div class=\"toggle\" role=\"group\" aria-label=\"Film format\">")
	buf.WriteString("<button type=\"submit\" name=\"format\" value=\"mini\" class=\"" +
		classIf(st.Format == "mini", "format", "active") + "\">Mini</button>")
	buf.WriteString("<button type=\"submit\" name=\"format\" value=\"wide\" class=\"" +
		classIf(st.Format == "wide", "format", "active") + "\">Wide</button>")
	buf.WriteString("</div>")

	buf.WriteString("<label for=\"caption\">Caption</label>")
	buf.WriteString("<input type=\"text\" id=\"caption\" name=\"caption\" maxlength=\"50\" value=\"" + esc(st.Caption) + "\" placeholder=\"Write something\">")

	buf.WriteString("<label for=\"date\">Date</label>")
	buf.WriteString("<input type=\"date\" id=\"date\" name=\"date\" value=\"" + esc(st.Date) + "\">")

	buf.WriteString("<button type=\"submit\">Apply</button>")
	buf.WriteString("</form>")

	buf.WriteString("</section>")
}

func writePreview(buf *bytes.Buffer, st Studio, csrf string) {
	buf.WriteString("<section class=\"preview\">")
	if st.HasImage {
		buf.WriteString(fmt.Sprintf("<img class=\"preview-card\" src=\"/card.png?v=%d\" alt=\"Composed instant photo\">", st.Version))

		buf.WriteString("<form class=\"export\" method=\"post\" action=\"/export/\">")
		buf.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(csrf) + "\">")
		buf.WriteString("<button type=\"submit\" id=\"export\">Download PNG</button>")
		buf.WriteString("</form>")
		// Disable the trigger while an export is in flight so two exports
		// can't race on the same composition.
		buf.WriteString("<script>document.querySelector('form.export').addEventListener('submit',function(){var b=document.getElementById('export');b.disabled=true;setTimeout(function(){b.disabled=false},3000)});</script>")
	} else {
		buf.WriteString("<p class=\"empty\">Upload a photo to get started.</p>")
	}
	buf.WriteString("</section>")
}
