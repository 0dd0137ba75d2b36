package storage

import (
	"context"
	"io"
)

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket    string
	KeyPrefix string
}

// Service writes database snapshots to remote object storage.
type Service interface {
	Upload(ctx context.Context, key string, body io.Reader, opts UploadOptions) (string, error)
}
