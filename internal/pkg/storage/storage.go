package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage holds scan photos for the attendance audit trail. Paths
// are storage-relative keys like "scans/2026-03-02/<id>.jpg".
type FileStorage interface {
	// Upload stores a file under path and returns the stored key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// GetURL resolves a stored key to a URL the admin UI can load.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
