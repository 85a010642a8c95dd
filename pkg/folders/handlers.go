package folders

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eventlens/eventlens/pkg/adminauth"
	"github.com/eventlens/eventlens/pkg/drive"
	"github.com/eventlens/eventlens/pkg/errcodes"
)

type handler struct {
	folderService *Service
	authn         adminauth.Authenticator
}

func (h *handler) contents(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.folderService.ListContents(ctx, c.Param("id"))
	if err != nil {
		if drive.IsNotFound(err) {
			return errcodes.NotFound("Folder")
		}
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, items))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateFolderPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if err := h.authn.Authorize(params.AdminKey); err != nil {
		return err
	}

	folder, err := h.folderService.CreateSubfolder(ctx, c.Param("id"), params.Name)
	if err != nil {
		if drive.IsNotFound(err) {
			return errcodes.NotFound("Folder")
		}
		return errors.WithStack(err)
	}

	resp := struct {
		Success bool    `json:"success"`
		Folder  *Folder `json:"folder"`
	}{true, folder}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) rename(c echo.Context) error {
	ctx := c.Request().Context()

	params := RenamePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if err := h.authn.Authorize(params.AdminKey); err != nil {
		return err
	}

	if err := h.folderService.Rename(ctx, c.Param("id"), params.Name); err != nil {
		if drive.IsNotFound(err) {
			return errcodes.NotFound("Node")
		}
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]bool{"success": true}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	params := DeletePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if err := h.authn.Authorize(params.AdminKey); err != nil {
		return err
	}

	if err := h.folderService.Delete(ctx, c.Param("id")); err != nil {
		if drive.IsNotFound(err) {
			return errcodes.NotFound("Node")
		}
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]bool{"success": true}))
}
