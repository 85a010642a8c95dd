// Package uploads moves multipart photo uploads into Drive folders. Parts
// are spooled to disk first so the content can be sniffed before anything is
// sent upstream, and spool files are removed on success and failure alike.
package uploads

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/eventlens/eventlens/pkg/drive"
)

// Provider is the single Drive call the upload service needs.
type Provider interface {
	Upload(ctx context.Context, parentID, name, mimeType string, content io.Reader) (*drive.File, error)
}

type Service struct {
	provider Provider
	spoolDir string
}

func NewService(provider Provider) *Service {
	return &Service{
		provider: provider,
		spoolDir: filepath.Join(os.TempDir(), "eventlens-uploads"),
	}
}

// UploadedFile is a successfully stored photo as rendered to clients.
type UploadedFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
	DownloadURL  string `json:"downloadUrl"`
}

// ErrNotAnImage rejects parts whose sniffed content is not an image,
// whatever their declared Content-Type says.
var ErrNotAnImage = errors.New("uploaded file is not an image")

// UploadPhoto spools one multipart part, verifies it is an image by content,
// and streams it into the target folder.
func (s *Service) UploadPhoto(ctx context.Context, folderID string, header *multipart.FileHeader) (*UploadedFile, error) {
	path, err := s.spool(header)
	if path != "" {
		defer os.Remove(path)
	}
	if err != nil {
		return nil, err
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, errors.WithStack(ErrNotAnImage)
	}

	spooled, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer spooled.Close()

	file, err := s.provider.Upload(ctx, folderID, header.Filename, mtype.String(), spooled)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &UploadedFile{
		ID:           file.ID,
		Name:         file.Name,
		MimeType:     file.MimeType,
		ThumbnailURL: "/api/imageproxy/" + file.ID + "?size=w400",
		DisplayURL:   "/api/imageproxy/" + file.ID + "?size=full",
		DownloadURL:  "/api/imageproxy/" + file.ID + "?size=full",
	}, nil
}

func (s *Service) spool(header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.spoolDir, 0o755); err != nil {
		return "", errors.WithStack(err)
	}

	src, err := header.Open()
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer src.Close()

	path := filepath.Join(s.spoolDir, uuid.NewString())
	dst, err := os.Create(path)
	if err != nil {
		return "", errors.WithStack(err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return path, errors.WithStack(err)
	}
	return path, errors.WithStack(dst.Close())
}
