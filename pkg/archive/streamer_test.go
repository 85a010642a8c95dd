package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventlens/eventlens/pkg/drive"
	"github.com/eventlens/eventlens/pkg/walker"
)

type fakeProvider struct {
	meta        map[string]*drive.File
	content     map[string]string
	failContent map[string]bool
	fetches     int
}

func (f *fakeProvider) Get(_ context.Context, id string) (*drive.File, error) {
	file, ok := f.meta[id]
	if !ok {
		return nil, &drive.Error{StatusCode: 404, Status: "NOT_FOUND", Message: "file not found"}
	}
	return file, nil
}

func (f *fakeProvider) Content(_ context.Context, id string) (io.ReadCloser, error) {
	f.fetches++
	if f.failContent[id] {
		return nil, errors.New("content stream failed")
	}
	body, ok := f.content[id]
	if !ok {
		return nil, errors.New("no content")
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = string(body)
	}
	return entries
}

func TestStream_WritesAllEntriesWithFolderPaths(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{content: map[string]string{
		"x": "x-bytes",
		"y": "y-bytes",
	}}
	s := NewStreamer(provider)

	var buf bytes.Buffer
	err := s.Stream(context.Background(), []walker.FlattenedFile{
		{ID: "x", Name: "x.jpg", FolderPath: "B"},
		{ID: "y", Name: "y.jpg"},
	}, &buf)
	require.NoError(t, err)

	entries := readZip(t, buf.Bytes())
	assert.Equal(t, map[string]string{
		"B/x.jpg": "x-bytes",
		"y.jpg":   "y-bytes",
	}, entries)
}

func TestStream_SkipsFailedFilesAndFinalizes(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{
		content:     map[string]string{"a": "aa", "c": "cc"},
		failContent: map[string]bool{"b": true},
	}
	s := NewStreamer(provider)

	var buf bytes.Buffer
	err := s.Stream(context.Background(), []walker.FlattenedFile{
		{ID: "a", Name: "a.jpg"},
		{ID: "b", Name: "b.jpg"},
		{ID: "c", Name: "c.jpg"},
	}, &buf)
	require.NoError(t, err)

	entries := readZip(t, buf.Bytes())
	require.Len(t, entries, 2)
	assert.Contains(t, entries, "a.jpg")
	assert.Contains(t, entries, "c.jpg")
}

func TestStream_EmptyInputProducesValidEmptyZip(t *testing.T) {
	t.Parallel()
	s := NewStreamer(&fakeProvider{})

	var buf bytes.Buffer
	err := s.Stream(context.Background(), nil, &buf)
	require.NoError(t, err)

	entries := readZip(t, buf.Bytes())
	assert.Empty(t, entries)
}

// brokenSink fails every write, like a response writer whose client has
// disconnected.
type brokenSink struct{}

func (brokenSink) Write([]byte) (int, error) {
	return 0, errors.New("client went away")
}

func TestStream_AbortsPromptlyOnSinkFailure(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{content: map[string]string{
		"a": "aa", "b": "bb", "c": "cc", "d": "dd",
	}}
	s := NewStreamer(provider)

	err := s.Stream(context.Background(), []walker.FlattenedFile{
		{ID: "a", Name: "a.jpg"},
		{ID: "b", Name: "b.jpg"},
		{ID: "c", Name: "c.jpg"},
		{ID: "d", Name: "d.jpg"},
	}, brokenSink{})

	require.Error(t, err)
	// The per-entry flush surfaces the dead sink right after the first
	// append; no further bytes are pulled for a reader that's gone.
	assert.Equal(t, 1, provider.fetches)
}

func TestResolveIDs_DropsUnresolvableIDs(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{meta: map[string]*drive.File{
		"a": {ID: "a", Name: "a.jpg", MimeType: "image/jpeg"},
	}}
	s := NewStreamer(provider)

	files := s.ResolveIDs(context.Background(), []string{"a", "missing", ""})

	require.Len(t, files, 1)
	assert.Equal(t, walker.FlattenedFile{ID: "a", Name: "a.jpg", MimeType: "image/jpeg"}, files[0])
}
