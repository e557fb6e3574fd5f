// Package instaframe is a small web app that frames a photo inside a
// stylized instant-film card (mini or wide), adds an optional caption and
// date stamp, and exports the composed card as a PNG download.
//
// Everything is in-memory and per-session: uploaded photos never touch
// disk or a database, and a session's state evaporates after an idle TTL.
package instaframe

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// App wires together the config, session registry, middleware and routes.
type App struct {
	Config  Config
	Echo    *echo.Echo
	Studios *Registry

	uploadLimiter *UploadLimiter
}

// New creates an App with the given configuration.
func New(cfg Config) *App {
	cfg.setDefaults()
	return &App{
		Config: cfg,
		Echo:   echo.New(),
	}
}

// Start initializes the registry, middleware and routes, then serves.
func (a *App) Start() error {
	a.Studios = NewRegistry(a.Config.StudioTTL)
	a.uploadLimiter = NewUploadLimiter(30, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", "public")
	e.GET("/robots.txt", handleRobots)

	e.GET("/", a.handleHome)
	e.POST("/upload/", a.handleUpload)
	e.POST("/studio/", a.handleStudio)
	e.GET("/card.png", a.handlePreview)
	e.POST("/export/", a.handleExport)
}
