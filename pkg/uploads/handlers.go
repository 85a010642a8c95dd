package uploads

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"

	"github.com/eventlens/eventlens/pkg/adminauth"
	"github.com/eventlens/eventlens/pkg/errcodes"
)

type handler struct {
	uploadService  *Service
	authn          adminauth.Authenticator
	maxFiles       int
	maxUploadBytes int64
}

// upload handles photo uploads into the folder named by the path id. The
// binder's single-file-per-key convention doesn't fit a 50-part form, so the
// multipart form is read directly here.
func (h *handler) upload(c echo.Context) error {
	ctx := c.Request().Context()
	folderID := c.Param("id")

	form, err := c.MultipartForm()
	if err != nil {
		return errcodes.MalformedPayload()
	}
	// Spool files from the parsed form are removed on every exit path.
	defer form.RemoveAll()

	if err := h.authn.Authorize(c.FormValue("adminKey")); err != nil {
		return err
	}

	files := form.File["photos"]
	if len(files) == 0 {
		return errcodes.ValidationError(`"photos" is required`)
	}
	if len(files) > h.maxFiles {
		return errcodes.TooManyFiles(h.maxFiles)
	}
	for _, header := range files {
		if header.Size > h.maxUploadBytes {
			return errcodes.FileTooLarge(header.Filename, h.maxUploadBytes)
		}
	}

	log := logger.FromContext(ctx)

	uploaded := make([]*UploadedFile, 0, len(files))
	for _, header := range files {
		file, err := h.uploadService.UploadPhoto(ctx, folderID, header)
		if err != nil {
			if errors.Is(err, ErrNotAnImage) {
				return errcodes.ValidationError(`"` + header.Filename + `" is not an image`)
			}
			// One bad upload shouldn't sink the batch.
			log.Err(err).Error("photo upload failed", logger.Data{"folder_id": folderID, "name": header.Filename})
			continue
		}
		uploaded = append(uploaded, file)
	}

	resp := struct {
		Success bool            `json:"success"`
		Files   []*UploadedFile `json:"files"`
	}{true, uploaded}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
