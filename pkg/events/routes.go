package events

import (
	"github.com/labstack/echo/v4"

	"github.com/eventlens/eventlens/pkg/adminauth"
	"github.com/eventlens/eventlens/pkg/archive"
	"github.com/eventlens/eventlens/pkg/config"
	"github.com/eventlens/eventlens/pkg/drive"
	"github.com/eventlens/eventlens/pkg/walker"
)

func RegisterRoutes(e *echo.Echo, client *drive.Client, cfg *config.Config, authn adminauth.Authenticator) {
	eventService := NewService(client, cfg.RootFolderID)
	treeWalker := walker.New(client, walker.Options{
		MaxDepth: cfg.WalkMaxDepth,
		Fanout:   cfg.WalkFanout,
	})
	streamer := archive.NewStreamer(client)

	h := &handler{
		eventService: eventService,
		walker:       treeWalker,
		streamer:     streamer,
		authn:        authn,
	}

	e.GET("/api/events", h.list)
	e.POST("/api/events", h.create)
	e.GET("/api/events/:id/photos", h.photos)
	e.GET("/api/events/:id/download", h.download)
}
