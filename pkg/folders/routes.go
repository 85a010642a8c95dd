package folders

import (
	"github.com/labstack/echo/v4"

	"github.com/eventlens/eventlens/pkg/adminauth"
	"github.com/eventlens/eventlens/pkg/drive"
)

func RegisterRoutes(e *echo.Echo, client *drive.Client, authn adminauth.Authenticator) {
	folderService := NewService(client)

	h := &handler{
		folderService: folderService,
		authn:         authn,
	}

	e.GET("/api/folders/:id/contents", h.contents)
	e.POST("/api/folders/:id/create", h.create)
	e.POST("/api/rename/:id", h.rename)
	e.POST("/api/delete/:id", h.delete)
}
