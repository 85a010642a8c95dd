// Package walker materializes a Drive folder tree into a flat,
// path-qualified list of image files.
package walker

import (
	"context"

	"github.com/robinjoseph08/golib/logger"
	"golang.org/x/sync/errgroup"

	"github.com/eventlens/eventlens/pkg/drive"
)

// Lister is the single provider call the walker needs.
type Lister interface {
	List(ctx context.Context, q drive.ListQuery) ([]*drive.File, error)
}

// FlattenedFile is an image annotated with its path relative to the walk
// root. FolderPath is the /-joined chain of ancestor folder names, exclusive
// of the root; empty for direct children. It is recomputed on every walk and
// never cached.
type FlattenedFile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MimeType   string `json:"mimeType"`
	FolderPath string `json:"folderPath"`
}

// ArchivePath is the name the file gets inside a zip archive.
func (f FlattenedFile) ArchivePath() string {
	if f.FolderPath == "" {
		return f.Name
	}
	return f.FolderPath + "/" + f.Name
}

type Walker struct {
	provider Lister
	maxDepth int
	fanout   int
}

// Options tunes a Walker. Zero values fall back to the defaults (depth 5,
// fan-out 4).
type Options struct {
	MaxDepth int
	Fanout   int
}

func New(provider Lister, opts Options) *Walker {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 5
	}
	if opts.Fanout <= 0 {
		opts.Fanout = 4
	}
	return &Walker{provider: provider, maxDepth: opts.MaxDepth, fanout: opts.Fanout}
}

// Walk returns every image reachable from folderID within the depth cap.
// Failures are absorbed: a subtree whose listing call fails contributes
// nothing, and its siblings are unaffected. A partial archive beats no
// archive for batch downloads, so no error is returned.
func (w *Walker) Walk(ctx context.Context, folderID string) []FlattenedFile {
	return w.walk(ctx, folderID, 0)
}

func (w *Walker) walk(ctx context.Context, folderID string, depth int) []FlattenedFile {
	// The provider doesn't guarantee a strict tree, so the depth cap is the
	// sole defense against cycle-looking structures.
	if depth > w.maxDepth {
		return nil
	}
	if ctx.Err() != nil {
		return nil
	}

	log := logger.FromContext(ctx)

	children, err := w.provider.List(ctx, drive.ListQuery{ParentID: folderID})
	if err != nil {
		log.Err(err).Error("folder listing failed during walk", logger.Data{"folder_id": folderID, "depth": depth})
		return nil
	}

	// One result slot per child so sibling subtrees can fan out while the
	// provider's listing order survives the stitch-up.
	results := make([][]FlattenedFile, len(children))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(w.fanout)

	for i, child := range children {
		switch {
		case child.IsFolder():
			group.Go(func() error {
				sub := w.walk(groupCtx, child.ID, depth+1)
				for j := range sub {
					if sub[j].FolderPath == "" {
						sub[j].FolderPath = child.Name
					} else {
						sub[j].FolderPath = child.Name + "/" + sub[j].FolderPath
					}
				}
				results[i] = sub
				return nil
			})
		case child.IsImage():
			results[i] = []FlattenedFile{{
				ID:       child.ID,
				Name:     child.Name,
				MimeType: child.MimeType,
			}}
		}
		// Anything else is invisible to the gallery.
	}

	// Subtree failures are already absorbed, so the group never errors.
	_ = group.Wait()

	var files []FlattenedFile
	for _, r := range results {
		files = append(files, r...)
	}
	return files
}
