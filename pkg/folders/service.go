package folders

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/eventlens/eventlens/pkg/covers"
	"github.com/eventlens/eventlens/pkg/drive"
	"github.com/eventlens/eventlens/pkg/foldericon"
)

const coverLookupFanout = 4

// Provider is the slice of the Drive client the folder service uses.
type Provider interface {
	List(ctx context.Context, q drive.ListQuery) ([]*drive.File, error)
	CreateFolder(ctx context.Context, parentID, name string) (*drive.File, error)
	Update(ctx context.Context, id string, meta drive.UpdateMetadata) (*drive.File, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// ListContents returns a folder's direct children classified as folders or
// images, newest first. Folder entries get their cover resolved, one extra
// single-item query each, so the cost is O(children) rather than O(tree).
func (s *Service) ListContents(ctx context.Context, folderID string) ([]*ContentItem, error) {
	children, err := s.provider.List(ctx, drive.ListQuery{
		ParentID: folderID,
		OrderBy:  "createdTime desc",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	items := make([]*ContentItem, len(children))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(coverLookupFanout)

	for i, child := range children {
		switch {
		case child.IsFolder():
			group.Go(func() error {
				item := &ContentItem{
					ID:          child.ID,
					Name:        child.Name,
					MimeType:    child.MimeType,
					CreatedTime: child.CreatedTime,
					Type:        TypeFolder,
					CoverID:     covers.Resolve(groupCtx, s.provider, child),
				}
				if item.CoverID == "" {
					item.FolderIcon = foldericon.Render(child.Name)
				}
				items[i] = item
				return nil
			})
		case child.IsImage():
			items[i] = &ContentItem{
				ID:           child.ID,
				Name:         child.Name,
				MimeType:     child.MimeType,
				CreatedTime:  child.CreatedTime,
				Type:         TypeImage,
				ThumbnailURL: "/api/imageproxy/" + child.ID + "?size=w400",
				DownloadURL:  "/api/imageproxy/" + child.ID + "?size=full",
			}
		}
	}
	_ = group.Wait()

	// Compact away dropped mime types while keeping listing order.
	result := make([]*ContentItem, 0, len(items))
	for _, item := range items {
		if item != nil {
			result = append(result, item)
		}
	}
	return result, nil
}

// CreateSubfolder creates a folder under any parent, event root or nested.
func (s *Service) CreateSubfolder(ctx context.Context, parentID, name string) (*Folder, error) {
	folder, err := s.provider.CreateFolder(ctx, parentID, name)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Folder{
		ID:          folder.ID,
		Name:        folder.Name,
		CreatedTime: folder.CreatedTime,
		FolderIcon:  foldericon.Render(name),
	}, nil
}

// Rename changes a node's display name. Works on folders and files alike.
func (s *Service) Rename(ctx context.Context, id, name string) error {
	_, err := s.provider.Update(ctx, id, drive.UpdateMetadata{Name: name})
	return errors.WithStack(err)
}

// Delete removes a node. Deleting a folder removes its whole subtree on the
// provider side.
func (s *Service) Delete(ctx context.Context, id string) error {
	return errors.WithStack(s.provider.Delete(ctx, id))
}
