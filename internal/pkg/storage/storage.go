package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid file path")
)

// FileStorage keeps rendered documents. Paths are keys relative to the storage root.
type FileStorage interface {
	// Upload writes the content at path, replacing any existing file, and returns the stored key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download opens a stored file; the caller closes it
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	Delete(ctx context.Context, path string) error

	// GetURL returns an address the document can be fetched from
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, path string) (bool, error)
}
