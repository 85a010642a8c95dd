// Package imageproxy serves image bytes to browsers, either a provider-side
// thumbnail rendition or the full-resolution original.
package imageproxy

import (
	"context"
	"io"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"

	"github.com/eventlens/eventlens/pkg/drive"
	"github.com/eventlens/eventlens/pkg/errcodes"
)

// thumbSizeRE matches Drive's thumbnail sz syntax, e.g. "w400" or
// "w400-h400".
var thumbSizeRE = regexp.MustCompile(`^w\d{2,4}(-h\d{2,4})?$`)

// cacheControl is applied to successful responses. Bytes at a given id+size
// never change for the lifetime of that file id, so a day of caching is
// safe.
const cacheControl = "public, max-age=86400"

// Provider is the slice of the Drive client the proxy uses.
type Provider interface {
	Get(ctx context.Context, id string) (*drive.File, error)
	Content(ctx context.Context, id string) (io.ReadCloser, error)
	Thumbnail(ctx context.Context, id, size string) (io.ReadCloser, string, error)
}

type handler struct {
	provider Provider
}

// SizeQuery picks the rendition: a thumbnail size class or "full".
type SizeQuery struct {
	Size string `query:"size" json:"size,omitempty" default:"w400"`
}

func (h *handler) resolve(c echo.Context) error {
	ctx := c.Request().Context()
	fileID := c.Param("id")

	params := SizeQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Metadata first: no byte stream is ever opened for a non-image.
	meta, err := h.provider.Get(ctx, fileID)
	if err != nil {
		if drive.IsNotFound(err) {
			return errcodes.NotFound("Image")
		}
		return errors.WithStack(err)
	}
	if !meta.IsImage() {
		return errcodes.NotAnImage()
	}

	switch {
	case params.Size == "full":
		return h.full(c, meta)
	case thumbSizeRE.MatchString(params.Size):
		return h.thumbnail(c, fileID, params.Size)
	default:
		// An unrecognized size hint gets the placeholder rather than
		// silently serving the wrong resolution.
		return h.placeholder(c)
	}
}

func (h *handler) full(c echo.Context, meta *drive.File) error {
	content, err := h.provider.Content(c.Request().Context(), meta.ID)
	if err != nil {
		if drive.IsNotFound(err) {
			return errcodes.NotFound("Image")
		}
		return errors.WithStack(err)
	}
	defer content.Close()

	c.Response().Header().Set("Cache-Control", cacheControl)
	return errors.WithStack(c.Stream(http.StatusOK, meta.MimeType, content))
}

func (h *handler) thumbnail(c echo.Context, fileID, size string) error {
	thumb, contentType, err := h.provider.Thumbnail(c.Request().Context(), fileID, size)
	if err != nil {
		// Thumbnails must never break page layout; any upstream failure
		// degrades to the placeholder.
		logger.FromContext(c.Request().Context()).Err(err).Warn("thumbnail fetch failed", logger.Data{"file_id": fileID, "size": size})
		return h.placeholder(c)
	}
	defer thumb.Close()

	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.Response().Header().Set("Cache-Control", cacheControl)
	return errors.WithStack(c.Stream(http.StatusOK, contentType, thumb))
}

func (h *handler) placeholder(c echo.Context) error {
	return errors.WithStack(c.Blob(http.StatusOK, placeholderContentType, placeholderSVG))
}
