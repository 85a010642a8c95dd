package events

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/eventlens/eventlens/pkg/covers"
	"github.com/eventlens/eventlens/pkg/drive"
	"github.com/eventlens/eventlens/pkg/foldericon"
	"github.com/eventlens/eventlens/pkg/walker"
)

// coverLookupFanout bounds concurrent per-event cover queries so a long
// event list doesn't fire one provider call per folder all at once.
const coverLookupFanout = 4

// Provider is the slice of the Drive client the event service uses.
type Provider interface {
	List(ctx context.Context, q drive.ListQuery) ([]*drive.File, error)
	CreateFolder(ctx context.Context, parentID, name string) (*drive.File, error)
	Upload(ctx context.Context, parentID, name, mimeType string, content io.Reader) (*drive.File, error)
	Update(ctx context.Context, id string, meta drive.UpdateMetadata) (*drive.File, error)
}

type Service struct {
	provider     Provider
	rootFolderID string
}

func NewService(provider Provider, rootFolderID string) *Service {
	return &Service{provider: provider, rootFolderID: rootFolderID}
}

// ListEvents returns all top-level event folders, newest first, with covers
// resolved.
func (s *Service) ListEvents(ctx context.Context) ([]*Event, error) {
	folders, err := s.provider.List(ctx, drive.ListQuery{
		ParentID:    s.rootFolderID,
		FoldersOnly: true,
		OrderBy:     "createdTime desc",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	events := make([]*Event, len(folders))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(coverLookupFanout)

	for i, folder := range folders {
		group.Go(func() error {
			event := &Event{
				ID:          folder.ID,
				Name:        folder.Name,
				CreatedTime: folder.CreatedTime,
				CoverID:     covers.Resolve(groupCtx, s.provider, folder),
			}
			if event.CoverID == "" {
				event.FolderIcon = foldericon.Render(folder.Name)
			}
			events[i] = event
			return nil
		})
	}
	_ = group.Wait()

	return events, nil
}

// CoverUpload is an optional cover photo attached to event creation.
type CoverUpload struct {
	Filename string
	MimeType string
	Content  io.Reader
}

type CreateEventOptions struct {
	Name  string
	Cover *CoverUpload
}

// CreateEvent creates a top-level folder and, when a cover photo is
// supplied, uploads it into the new folder and pins it via the folder's
// appProperties.
func (s *Service) CreateEvent(ctx context.Context, opts CreateEventOptions) (*Event, error) {
	folder, err := s.provider.CreateFolder(ctx, s.rootFolderID, opts.Name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	event := &Event{
		ID:          folder.ID,
		Name:        folder.Name,
		CreatedTime: folder.CreatedTime,
	}

	if opts.Cover != nil {
		cover, err := s.provider.Upload(ctx, folder.ID, "_cover_"+opts.Cover.Filename, opts.Cover.MimeType, opts.Cover.Content)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if _, err := s.provider.Update(ctx, folder.ID, drive.UpdateMetadata{AppProperties: covers.Property(cover.ID)}); err != nil {
			return nil, errors.WithStack(err)
		}
		event.CoverID = cover.ID
	}
	if event.CoverID == "" {
		event.FolderIcon = foldericon.Render(opts.Name)
	}

	return event, nil
}

// ListPhotos returns the direct image children of a folder, newest first.
func (s *Service) ListPhotos(ctx context.Context, folderID string) ([]*Photo, error) {
	files, err := s.provider.List(ctx, drive.ListQuery{
		ParentID:   folderID,
		ImagesOnly: true,
		OrderBy:    "createdTime desc",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	photos := make([]*Photo, 0, len(files))
	for _, file := range files {
		photos = append(photos, &Photo{
			ID:           file.ID,
			Name:         file.Name,
			MimeType:     file.MimeType,
			ThumbnailURL: "/api/imageproxy/" + file.ID + "?size=w400",
			DisplayURL:   "/api/imageproxy/" + file.ID + "?size=full",
			DownloadURL:  "/api/imageproxy/" + file.ID + "?size=full",
		})
	}
	return photos, nil
}

// DirectFiles returns the direct image children of a folder as flattened
// descriptors for archiving (no recursion, empty folder paths).
func (s *Service) DirectFiles(ctx context.Context, folderID string) ([]walker.FlattenedFile, error) {
	files, err := s.provider.List(ctx, drive.ListQuery{
		ParentID:   folderID,
		ImagesOnly: true,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	flattened := make([]walker.FlattenedFile, 0, len(files))
	for _, file := range files {
		flattened = append(flattened, walker.FlattenedFile{
			ID:       file.ID,
			Name:     file.Name,
			MimeType: file.MimeType,
		})
	}
	return flattened, nil
}
