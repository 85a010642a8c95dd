package imageproxy

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, provider Provider) {
	h := &handler{provider: provider}

	e.GET("/api/imageproxy/:id", h.resolve)
}
