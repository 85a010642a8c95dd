package walker

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventlens/eventlens/pkg/drive"
)

type fakeLister struct {
	mu       sync.Mutex
	children map[string][]*drive.File
	failing  map[string]bool
	calls    int
}

func (f *fakeLister) List(_ context.Context, q drive.ListQuery) ([]*drive.File, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.failing[q.ParentID] {
		return nil, errors.New("listing failed")
	}
	return f.children[q.ParentID], nil
}

func folder(id, name string) *drive.File {
	return &drive.File{ID: id, Name: name, MimeType: drive.FolderMimeType}
}

func image(id, name string) *drive.File {
	return &drive.File{ID: id, Name: name, MimeType: "image/jpeg"}
}

func TestWalk_NestedTree(t *testing.T) {
	t.Parallel()
	provider := &fakeLister{children: map[string][]*drive.File{
		"A": {folder("B", "B"), image("y", "y.jpg")},
		"B": {image("x", "x.jpg")},
	}}

	w := New(provider, Options{})
	files := w.Walk(context.Background(), "A")

	require.Len(t, files, 2)
	assert.Equal(t, FlattenedFile{ID: "x", Name: "x.jpg", MimeType: "image/jpeg", FolderPath: "B"}, files[0])
	assert.Equal(t, FlattenedFile{ID: "y", Name: "y.jpg", MimeType: "image/jpeg", FolderPath: ""}, files[1])
}

func TestWalk_DeepPathsJoinAncestorNames(t *testing.T) {
	t.Parallel()
	provider := &fakeLister{children: map[string][]*drive.File{
		"root": {folder("l1", "Summer")},
		"l1":   {folder("l2", "Beach"), image("a", "a.jpg")},
		"l2":   {image("b", "b.jpg")},
	}}

	w := New(provider, Options{})
	files := w.Walk(context.Background(), "root")

	require.Len(t, files, 2)
	assert.Equal(t, "Summer/Beach", files[0].FolderPath)
	assert.Equal(t, "b.jpg", files[0].Name)
	assert.Equal(t, "Summer", files[1].FolderPath)
	assert.Equal(t, "Summer/Beach/b.jpg", files[0].ArchivePath())
}

func TestWalk_NonImageFilesAreDropped(t *testing.T) {
	t.Parallel()
	provider := &fakeLister{children: map[string][]*drive.File{
		"A": {
			{ID: "v", Name: "v.mp4", MimeType: "video/mp4"},
			{ID: "d", Name: "d.pdf", MimeType: "application/pdf"},
		},
	}}

	w := New(provider, Options{})
	files := w.Walk(context.Background(), "A")

	assert.Empty(t, files)
}

func TestWalk_DepthCapTruncatesSubtree(t *testing.T) {
	t.Parallel()
	provider := &fakeLister{children: map[string][]*drive.File{
		"root": {folder("f1", "f1"), image("top", "top.jpg")},
		"f1":   {folder("f2", "f2")},
		"f2":   {image("deep", "deep.jpg")},
	}}

	w := New(provider, Options{MaxDepth: 1})
	files := w.Walk(context.Background(), "root")

	// f2's subtree sits past the cap; its listing never happens.
	require.Len(t, files, 1)
	assert.Equal(t, "top", files[0].ID)
}

func TestWalk_PastDepthCapMakesNoProviderCall(t *testing.T) {
	t.Parallel()
	provider := &fakeLister{children: map[string][]*drive.File{
		"A": {image("x", "x.jpg")},
	}}

	w := New(provider, Options{MaxDepth: 5})
	files := w.walk(context.Background(), "A", 6)

	assert.Empty(t, files)
	assert.Equal(t, 0, provider.calls)
}

func TestWalk_FailedSubtreeDoesNotAffectSiblings(t *testing.T) {
	t.Parallel()
	provider := &fakeLister{
		children: map[string][]*drive.File{
			"root":   {folder("broken", "Broken"), folder("intact", "Intact")},
			"intact": {image("ok", "ok.jpg")},
		},
		failing: map[string]bool{"broken": true},
	}

	w := New(provider, Options{})
	files := w.Walk(context.Background(), "root")

	require.Len(t, files, 1)
	assert.Equal(t, "ok", files[0].ID)
	assert.Equal(t, "Intact", files[0].FolderPath)
}

func TestWalk_RootListingFailureYieldsEmpty(t *testing.T) {
	t.Parallel()
	provider := &fakeLister{failing: map[string]bool{"root": true}}

	w := New(provider, Options{})
	files := w.Walk(context.Background(), "root")

	assert.Empty(t, files)
}
