// Package covers resolves the representative image for a folder.
package covers

import (
	"context"

	"github.com/robinjoseph08/golib/logger"

	"github.com/eventlens/eventlens/pkg/drive"
)

// coverIDProperty is the folder appProperty that pins an explicit cover.
const coverIDProperty = "coverId"

// Lister is the single provider call cover discovery needs.
type Lister interface {
	List(ctx context.Context, q drive.ListQuery) ([]*drive.File, error)
}

// Resolve returns the cover image id for folder, or "" when it has none. An
// explicitly stored coverId always wins; otherwise the first image the
// provider happens to return is used. The fallback makes no ordering
// promise, so callers must not assume it is stable across calls.
func Resolve(ctx context.Context, provider Lister, folder *drive.File) string {
	if id := folder.AppProperties[coverIDProperty]; id != "" {
		return id
	}

	images, err := provider.List(ctx, drive.ListQuery{
		ParentID:   folder.ID,
		ImagesOnly: true,
		PageSize:   1,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Error("cover discovery failed", logger.Data{"folder_id": folder.ID})
		return ""
	}
	if len(images) == 0 {
		return ""
	}
	return images[0].ID
}

// Property returns the appProperties patch that pins id as a folder's cover.
func Property(id string) map[string]string {
	return map[string]string{coverIDProperty: id}
}
