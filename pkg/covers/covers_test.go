package covers

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/eventlens/eventlens/pkg/drive"
)

type fakeLister struct {
	images []*drive.File
	err    error
	calls  int
}

func (f *fakeLister) List(_ context.Context, q drive.ListQuery) ([]*drive.File, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.images, nil
}

func TestResolve_ExplicitCoverWins(t *testing.T) {
	t.Parallel()
	provider := &fakeLister{images: []*drive.File{{ID: "older-image"}}}
	folder := &drive.File{
		ID:            "f",
		AppProperties: map[string]string{"coverId": "pinned"},
	}

	id := Resolve(context.Background(), provider, folder)

	assert.Equal(t, "pinned", id)
	// The pinned cover short-circuits discovery entirely.
	assert.Equal(t, 0, provider.calls)
}

func TestResolve_FallsBackToFirstImage(t *testing.T) {
	t.Parallel()
	provider := &fakeLister{images: []*drive.File{{ID: "i1"}}}

	id := Resolve(context.Background(), provider, &drive.File{ID: "f"})

	assert.Equal(t, "i1", id)
}

func TestResolve_NoImagesMeansNoCover(t *testing.T) {
	t.Parallel()
	provider := &fakeLister{}

	id := Resolve(context.Background(), provider, &drive.File{ID: "f"})

	assert.Equal(t, "", id)
}

func TestResolve_DiscoveryFailureMeansNoCover(t *testing.T) {
	t.Parallel()
	provider := &fakeLister{err: errors.New("listing failed")}

	id := Resolve(context.Background(), provider, &drive.File{ID: "f"})

	assert.Equal(t, "", id)
}
