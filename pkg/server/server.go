package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"

	"github.com/eventlens/eventlens/pkg/adminauth"
	"github.com/eventlens/eventlens/pkg/binder"
	"github.com/eventlens/eventlens/pkg/config"
	"github.com/eventlens/eventlens/pkg/drive"
	"github.com/eventlens/eventlens/pkg/errcodes"
	"github.com/eventlens/eventlens/pkg/events"
	"github.com/eventlens/eventlens/pkg/folders"
	"github.com/eventlens/eventlens/pkg/imageproxy"
	"github.com/eventlens/eventlens/pkg/uploads"
)

func New(cfg *config.Config, client *drive.Client) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())

	corsConfig := middleware.DefaultCORSConfig
	if cfg.FrontendURL != "" {
		corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	}
	e.Use(middleware.CORSWithConfig(corsConfig))

	health.RegisterRoutes(e)

	authn := adminauth.NewKeyAuthenticator(cfg.AdminKey)

	events.RegisterRoutes(e, client, cfg, authn)
	folders.RegisterRoutes(e, client, authn)
	uploads.RegisterRoutes(e, client, cfg, authn)
	imageproxy.RegisterRoutes(e, client)

	// The gallery frontend is plain static pages; event pages all render
	// from the same template.
	if cfg.PublicDir != "" {
		e.Static("/", cfg.PublicDir)
		e.File("/events/:id", filepath.Join(cfg.PublicDir, "event.html"))
	}

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
