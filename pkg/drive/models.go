package drive

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// FolderMimeType is the mime type Google Drive assigns to folders.
const FolderMimeType = "application/vnd.google-apps.folder"

// File is a single Drive node, either a folder or a regular file.
type File struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	MimeType      string            `json:"mimeType"`
	CreatedTime   string            `json:"createdTime,omitempty"`
	ThumbnailLink string            `json:"thumbnailLink,omitempty"`
	AppProperties map[string]string `json:"appProperties,omitempty"`
}

// IsFolder reports whether the file is a Drive folder.
func (f *File) IsFolder() bool {
	return f.MimeType == FolderMimeType
}

// IsImage reports whether the file is an image. Only image files are visible
// to the gallery; everything else is filtered out of listings.
func (f *File) IsImage() bool {
	return strings.HasPrefix(f.MimeType, "image/")
}

type listResponse struct {
	Files         []*File `json:"files"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
}

// UpdateMetadata holds the mutable fields of a Drive file. Zero values are
// left untouched.
type UpdateMetadata struct {
	Name          string            `json:"name,omitempty"`
	AppProperties map[string]string `json:"appProperties,omitempty"`
}

// Error is a failed Drive API call.
type Error struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("drive API error (%d) %s: %s", e.StatusCode, e.Status, e.Message)
}

// IsNotFound reports whether err is a Drive 404.
func IsNotFound(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.StatusCode == http.StatusNotFound
}
