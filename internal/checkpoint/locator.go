package checkpoint

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ekisa-team/ckmirror/internal/storage"
	"github.com/ekisa-team/ckmirror/internal/xfs"
)

// Locator finds the most recent checkpoint in remote storage and
// materializes it locally so training can resume from it.
type Locator struct {
	backend storage.Backend
}

// NewLocator creates a locator over the configured storage location.
func NewLocator(backend storage.Backend) *Locator {
	return &Locator{backend: backend}
}

// FetchLatest downloads the most recently produced checkpoint directory
// under localRoot and returns its local path.
//
// The newest group is the one containing the object with the greatest
// LastModified, ties broken by lexicographic key. Group membership is
// decided by exact run and directory segment equality. An empty location
// is an error, and nothing is written locally in that case.
func (l *Locator) FetchLatest(ctx context.Context, localRoot string) (string, error) {
	objects, err := l.backend.List(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: listing bucket %s: %v", ErrStorageRead, l.backend.Bucket(), err)
	}

	if len(objects) == 0 {
		return "", fmt.Errorf("%w: bucket %s", ErrEmptyLocation, l.backend.Bucket())
	}

	sortObjects(objects)

	runName, dir, ok := newestGroup(objects)
	if !ok {
		return "", fmt.Errorf("%w: bucket %s holds no checkpoint keys", ErrEmptyLocation, l.backend.Bucket())
	}

	members := groupMembers(objects, runName, dir)
	slog.Info("Latest checkpoint selected", "run", runName, "dir", dir, "files", len(members))

	localDir := filepath.Join(localRoot, runName, dir)
	if err := xfs.EnsureDir(localDir); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrLocalRead, localDir, err)
	}

	for _, obj := range members {
		localPath := filepath.Join(localRoot, filepath.FromSlash(obj.Key))
		if err := l.backend.Download(ctx, obj.Key, localPath); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrStorageRead, obj.Key, err)
		}

		slog.Info("Checkpoint file downloaded", "bucket", l.backend.Bucket(), "key", obj.Key, "path", localPath)
	}

	return localDir, nil
}
