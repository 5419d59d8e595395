// Package storage provides the object-store backends checkpoints are mirrored to.
package storage

import (
	"context"
	"io"
	"time"
)

// Kind identifies a storage backend implementation.
type Kind string

const (
	// KindS3 is the Amazon S3 (or S3-compatible) backend.
	KindS3 Kind = "s3"

	// KindGCS is the Google Cloud Storage backend.
	KindGCS Kind = "gcs"

	// KindMemory is the in-memory backend used by tests.
	KindMemory Kind = "memory"
)

// Config holds the storage location captured at construction.
type Config struct {
	Kind   Kind
	Bucket string

	// Options carries backend-specific settings (s3: region, endpoint, path_style).
	Options map[string]any
}

// Backend is the three-operation contract shared by all storage backends.
// Implementations address exactly one bucket, fixed at construction.
type Backend interface {
	// Kind returns the backend kind.
	Kind() Kind

	// Bucket returns the bucket name this backend addresses.
	Bucket() string

	// Upload writes the reader's bytes verbatim to key, overwriting any
	// existing object at that key.
	Upload(ctx context.Context, key string, r io.Reader) error

	// List returns every object in the bucket. Implementations aggregate
	// all listing pages before returning.
	List(ctx context.Context) ([]ObjectInfo, error)

	// Download materializes the object at key into localPath, creating
	// parent directories and overwriting an existing file.
	Download(ctx context.Context, key, localPath string) error

	// Close releases resources.
	Close() error
}

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}
