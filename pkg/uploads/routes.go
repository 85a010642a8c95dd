package uploads

import (
	"github.com/labstack/echo/v4"

	"github.com/eventlens/eventlens/pkg/adminauth"
	"github.com/eventlens/eventlens/pkg/config"
	"github.com/eventlens/eventlens/pkg/drive"
)

func RegisterRoutes(e *echo.Echo, client *drive.Client, cfg *config.Config, authn adminauth.Authenticator) {
	uploadService := NewService(client)

	h := &handler{
		uploadService:  uploadService,
		authn:          authn,
		maxFiles:       cfg.MaxUploadFiles,
		maxUploadBytes: cfg.MaxUploadBytes,
	}

	// Event roots are plain folders, so both surfaces share one handler.
	e.POST("/api/events/:id/upload", h.upload)
	e.POST("/api/folders/:id/upload", h.upload)
}
