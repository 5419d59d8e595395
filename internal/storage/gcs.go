package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// gcsBackend implements Backend on Google Cloud Storage.
type gcsBackend struct {
	bucket string
	client *gcs.Client
}

func newGCS(ctx context.Context, cfg Config) (*gcsBackend, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &gcsBackend{
		bucket: cfg.Bucket,
		client: client,
	}, nil
}

func (b *gcsBackend) Kind() Kind {
	return KindGCS
}

func (b *gcsBackend) Bucket() string {
	return b.bucket
}

func (b *gcsBackend) Upload(ctx context.Context, key string, r io.Reader) error {
	w := b.client.Bucket(b.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to upload object to gs://%s/%s: %w", b.bucket, key, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to upload object to gs://%s/%s: %w", b.bucket, key, err)
	}

	return nil
}

func (b *gcsBackend) List(ctx context.Context) ([]ObjectInfo, error) {
	it := b.client.Bucket(b.bucket).Objects(ctx, nil)

	var objects []ObjectInfo
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in bucket %s: %w", b.bucket, err)
		}

		objects = append(objects, ObjectInfo{
			Key:          attrs.Name,
			Size:         attrs.Size,
			LastModified: attrs.Updated,
		})
	}

	return objects, nil
}

func (b *gcsBackend) Download(ctx context.Context, key, localPath string) error {
	r, err := b.client.Bucket(b.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return fmt.Errorf("failed to download object gs://%s/%s: %w", b.bucket, key, err)
	}
	defer r.Close()

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(localPath), err)
	}

	file, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", localPath, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return fmt.Errorf("failed to download object gs://%s/%s: %w", b.bucket, key, err)
	}

	return nil
}

func (b *gcsBackend) Close() error {
	return b.client.Close()
}

// Verify interface compliance.
var _ Backend = (*gcsBackend)(nil)
