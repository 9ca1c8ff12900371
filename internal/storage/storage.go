// internal/storage/storage.go
package storage

import "context"

// ObjectStorage captures the minimal operations report archival needs.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, contentType string, data []byte) error
	DownloadObject(ctx context.Context, key string) ([]byte, error)
}

// Noop discards uploads and never finds objects, used when archival is
// disabled.
type Noop struct{}

func (Noop) UploadObject(ctx context.Context, key string, contentType string, data []byte) error {
	return nil
}

func (Noop) DownloadObject(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrObjectNotFound
}
