package instaframe

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/mkume/instaframe/card"
	"github.com/mkume/instaframe/views"
)

// studio resolves the request's session to its in-memory studio.
func (a *App) studio(c echo.Context) (*Studio, error) {
	id, err := studioID(c)
	if err != nil {
		return nil, err
	}
	return a.Studios.Get(id), nil
}

func (a *App) siteConfig() views.SiteConfig {
	return views.SiteConfig{Name: a.Config.Name}
}

// handleHome serves the editor page.
func (a *App) handleHome(c echo.Context) error {
	st, err := a.studio(c)
	if err != nil {
		return err
	}
	return render(c, views.Editor(a.siteConfig(), st.View(), csrfToken(c)))
}

// handleUpload receives the photo, runs the accept check and decode, and
// lands the result through the studio's generation guard. Each request
// runs in its own goroutine, so two rapid uploads from one session race;
// the guard makes sure only the newest one wins.
func (a *App) handleUpload(c echo.Context) error {
	st, err := a.studio(c)
	if err != nil {
		return err
	}
	if !a.uploadLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many uploads. Slow down a little.")
	}

	gen := st.BeginUpload()

	fh, err := c.FormFile("photo")
	if err != nil {
		st.ApplyUpload(gen, nil, fmt.Errorf("%w: no file in request", card.ErrUnsupportedType))
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if fh.Size > a.Config.MaxUploadBytes {
		st.ApplyUpload(gen, nil, errUploadTooLarge)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	src, err := fh.Open()
	if err != nil {
		st.ApplyUpload(gen, nil, fmt.Errorf("%w: %v", card.ErrDecodeFailure, err))
		return c.Redirect(http.StatusSeeOther, "/")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, a.Config.MaxUploadBytes+1))
	if err != nil {
		st.ApplyUpload(gen, nil, fmt.Errorf("%w: %v", card.ErrDecodeFailure, err))
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if int64(len(data)) > a.Config.MaxUploadBytes {
		st.ApplyUpload(gen, nil, errUploadTooLarge)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	img, lerr := card.Load(bytes.NewReader(data), fh.Filename, fh.Header.Get("Content-Type"))
	if lerr != nil {
		c.Logger().Errorf("upload %q: %v", fh.Filename, lerr)
	}
	st.ApplyUpload(gen, img, lerr)
	return c.Redirect(http.StatusSeeOther, "/")
}

// handleStudio applies the settings form: format toggle, caption, date.
func (a *App) handleStudio(c echo.Context) error {
	st, err := a.studio(c)
	if err != nil {
		return err
	}
	if v := c.FormValue("format"); v != "" {
		st.SetFormat(card.ParseFormat(v))
	}
	st.SetCaption(c.FormValue("caption"))
	st.SetDate(c.FormValue("date"))
	return c.Redirect(http.StatusSeeOther, "/")
}

// handlePreview serves the 1x composition of the current card.
func (a *App) handlePreview(c echo.Context) error {
	st, err := a.studio(c)
	if err != nil {
		return err
	}
	img, ok, err := st.Render(1)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no photo loaded")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// handleExport composes the card at 4x and delivers it as a PNG download.
// With no photo loaded this is a no-op redirect — the export button is
// only rendered once an image exists.
func (a *App) handleExport(c echo.Context) error {
	st, err := a.studio(c)
	if err != nil {
		return err
	}
	art, ok := st.Export(time.Now())
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", art.Filename))
	return c.Blob(http.StatusOK, "image/png", art.Data)
}

func handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}

// httpErrorHandler renders styled 404/500 pages instead of Echo's JSON.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = renderStatus(c, http.StatusNotFound, views.NotFound(a.siteConfig()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = renderStatus(c, code, views.ServerError(a.siteConfig()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// render writes a templ component as an HTTP 200 HTML response.
func render(c echo.Context, cmp templ.Component) error {
	return renderStatus(c, http.StatusOK, cmp)
}

func renderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}
