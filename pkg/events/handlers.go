package events

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"

	"github.com/eventlens/eventlens/pkg/adminauth"
	"github.com/eventlens/eventlens/pkg/archive"
	"github.com/eventlens/eventlens/pkg/drive"
	"github.com/eventlens/eventlens/pkg/errcodes"
	"github.com/eventlens/eventlens/pkg/walker"
)

type handler struct {
	eventService *Service
	walker       *walker.Walker
	streamer     *archive.Streamer
	authn        adminauth.Authenticator
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	events, err := h.eventService.ListEvents(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return errors.WithStack(c.JSON(http.StatusOK, events))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateEventPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	// Spooled multipart parts are removed whether creation succeeds or not.
	if form := c.Request().MultipartForm; form != nil {
		defer form.RemoveAll()
	}

	if err := h.authn.Authorize(params.AdminKey); err != nil {
		return err
	}

	opts := CreateEventOptions{Name: params.Name}
	if header, ok := params.FormFiles["coverPhoto"]; ok {
		file, err := header.Open()
		if err != nil {
			return errors.WithStack(err)
		}
		defer file.Close()
		opts.Cover = &CoverUpload{
			Filename: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Content:  file,
		}
	}

	event, err := h.eventService.CreateEvent(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Success bool   `json:"success"`
		Event   *Event `json:"event"`
	}{true, event}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) photos(c echo.Context) error {
	ctx := c.Request().Context()

	photos, err := h.eventService.ListPhotos(ctx, c.Param("id"))
	if err != nil {
		if drive.IsNotFound(err) {
			return errcodes.NotFound("Event")
		}
		return errors.WithStack(err)
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return errors.WithStack(c.JSON(http.StatusOK, photos))
}

// download streams a zip of the requested photos. An explicit ids list wins
// over recursive; otherwise either the folder's direct images or the whole
// subtree are archived.
func (h *handler) download(c echo.Context) error {
	ctx := c.Request().Context()
	folderID := c.Param("id")

	params := DownloadQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	var files []walker.FlattenedFile
	switch {
	case params.IDs != "":
		files = h.streamer.ResolveIDs(ctx, strings.Split(params.IDs, ","))
	case params.Recursive:
		files = h.walker.Walk(ctx, folderID)
	default:
		var err error
		files, err = h.eventService.DirectFiles(ctx, folderID)
		if err != nil {
			if drive.IsNotFound(err) {
				return errcodes.NotFound("Event")
			}
			return errors.WithStack(err)
		}
	}

	filename := fmt.Sprintf("photos-%s.zip", time.Now().Format("20060102-150405"))
	c.Response().Header().Set(echo.HeaderContentType, "application/zip")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().WriteHeader(http.StatusOK)

	// Headers are gone out; all that's left on failure is to log and stop.
	if err := h.streamer.Stream(ctx, files, c.Response()); err != nil {
		logger.FromContext(ctx).Err(err).Warn("zip stream aborted", logger.Data{"folder_id": folderID})
	}
	return nil
}
