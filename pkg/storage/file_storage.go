package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// TimestampLayout names saved images with second resolution, so two saves
// within the same second write to the same file.
const TimestampLayout = "2006-01-02_15-04-05"

const imageExt = ".png"

type Option func(*FileStorage)

// WithClock overrides the time source used for file names.
func WithClock(now func() time.Time) Option {
	return func(s *FileStorage) {
		s.now = now
	}
}

// FileStorage writes images into a flat local directory.
type FileStorage struct {
	dir string
	now func() time.Time
}

// NewFileStorage creates dir (and parents) if needed.
func NewFileStorage(dir string, opts ...Option) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}

	s := &FileStorage{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *FileStorage) Dir() string {
	return s.dir
}

// PathFor returns the file path an image saved at t would get.
func (s *FileStorage) PathFor(t time.Time) string {
	return filepath.Join(s.dir, t.Format(TimestampLayout)+imageExt)
}

// Save copies r verbatim into a new timestamped file and returns its path.
// A failed copy may leave a truncated file behind.
func (s *FileStorage) Save(ctx context.Context, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	path := s.PathFor(s.now())

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("creating image file: %w", err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return path, n, fmt.Errorf("writing image file: %w", err)
	}

	return path, n, nil
}
