// Package archive streams batches of Drive images into a zip archive without
// ever materializing the archive in memory or on disk.
package archive

import (
	"archive/zip"
	"compress/flate"
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"

	"github.com/eventlens/eventlens/pkg/drive"
	"github.com/eventlens/eventlens/pkg/walker"
)

// compressionLevel trades speed for size. Image payloads are already
// compressed, so maximum deflate would burn CPU for nothing.
const compressionLevel = 5

// Provider supplies file metadata and content streams.
type Provider interface {
	Get(ctx context.Context, id string) (*drive.File, error)
	Content(ctx context.Context, id string) (io.ReadCloser, error)
}

type Streamer struct {
	provider Provider
}

func NewStreamer(provider Provider) *Streamer {
	return &Streamer{provider: provider}
}

// ResolveIDs fetches metadata for an explicit id list and returns the
// descriptors that resolved. Unresolvable ids are logged and dropped.
func (s *Streamer) ResolveIDs(ctx context.Context, ids []string) []walker.FlattenedFile {
	log := logger.FromContext(ctx)

	files := make([]walker.FlattenedFile, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		file, err := s.provider.Get(ctx, id)
		if err != nil {
			log.Err(err).Error("file metadata fetch failed", logger.Data{"file_id": id})
			continue
		}
		files = append(files, walker.FlattenedFile{
			ID:       file.ID,
			Name:     file.Name,
			MimeType: file.MimeType,
		})
	}
	return files
}

// Stream fetches each file's content and writes it through a zip encoder
// into w, incrementally. A file whose fetch fails is logged and skipped; the
// archive is finalized even if every file failed. Memory use is bounded by
// the single open content stream, not by archive size.
//
// A write failure on w (the client went away) aborts the remaining fetch
// loop instead of pulling more bytes nobody will read.
func (s *Streamer) Stream(ctx context.Context, files []walker.FlattenedFile, w io.Writer) error {
	log := logger.FromContext(ctx)

	sink := &sinkWriter{w: w}
	zw := zip.NewWriter(sink)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, compressionLevel)
	})

	for _, file := range files {
		if sink.err != nil || ctx.Err() != nil {
			break
		}

		if err := s.appendFile(ctx, zw, file); err != nil {
			if sink.err != nil {
				break
			}
			// Skip the file, keep the archive going.
			log.Err(err).Error("file skipped during archive stream", logger.Data{"file_id": file.ID, "name": file.Name})
		}

		// zip.Writer buffers the sink, so a dead client only shows up once
		// enough output accumulates. Flushing after every entry surfaces the
		// write failure before the next content fetch.
		if err := zw.Flush(); err != nil {
			break
		}
	}

	closeErr := zw.Close()
	if sink.err != nil {
		return errors.Wrap(sink.err, "archive sink write failed")
	}
	if ctx.Err() != nil {
		return errors.WithStack(ctx.Err())
	}
	return errors.WithStack(closeErr)
}

func (s *Streamer) appendFile(ctx context.Context, zw *zip.Writer, file walker.FlattenedFile) error {
	content, err := s.provider.Content(ctx, file.ID)
	if err != nil {
		return errors.Wrap(err, "content stream open failed")
	}
	defer content.Close()

	entry, err := zw.Create(file.ArchivePath())
	if err != nil {
		return errors.Wrap(err, "zip entry create failed")
	}

	if _, err := io.Copy(entry, content); err != nil {
		return errors.Wrap(err, "zip entry write failed")
	}
	return nil
}

// sinkWriter remembers the first write error so the stream loop can tell a
// dead response sink apart from a flaky upstream read.
type sinkWriter struct {
	w   io.Writer
	err error
}

func (s *sinkWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}
