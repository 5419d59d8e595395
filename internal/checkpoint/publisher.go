package checkpoint

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/ekisa-team/ckmirror/internal/storage"
)

// Publisher mirrors locally saved checkpoint directories to remote storage.
// It holds no state beyond its construction-time configuration.
type Publisher struct {
	backend storage.Backend
	runName string
}

// NewPublisher creates a publisher for one training run.
func NewPublisher(backend storage.Backend, runName string) *Publisher {
	return &Publisher{
		backend: backend,
		runName: runName,
	}
}

// RunName returns the run prefix this publisher uploads under.
func (p *Publisher) RunName() string {
	return p.runName
}

// Publish uploads every regular file under localDir to the configured
// bucket, one object per file, keyed <run>/<dir>/<relative path>. It
// returns the number of files uploaded.
//
// Publish fails fast: the first failed upload aborts the remaining ones.
// Files uploaded before the failure are left in place, so a failed call may
// leave a partial checkpoint remotely; a later retry overwrites per object.
func (p *Publisher) Publish(ctx context.Context, localDir string) (int, error) {
	info, err := os.Stat(localDir)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrLocalRead, localDir, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%w: %s is not a directory", ErrLocalRead, localDir)
	}

	dirName := filepath.Base(filepath.Clean(localDir))

	uploaded := 0
	err = filepath.WalkDir(localDir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: walking %s: %v", ErrLocalRead, filePath, err)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(localDir, filePath)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrLocalRead, filePath, err)
		}

		key := path.Join(p.runName, dirName, filepath.ToSlash(rel))

		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrLocalRead, filePath, err)
		}

		if err := p.backend.Upload(ctx, key, file); err != nil {
			file.Close()
			return fmt.Errorf("%w: %s: %v", ErrStorageWrite, key, err)
		}
		file.Close()

		uploaded++
		slog.Info("Checkpoint file uploaded", "bucket", p.backend.Bucket(), "key", key)

		return nil
	})
	if err != nil {
		return uploaded, err
	}

	slog.Info("Checkpoint published", "run", p.runName, "dir", dirName, "files", uploaded)

	return uploaded, nil
}

// SaveEvent is the save-completion notification delivered by the training
// loop after it finishes writing a local checkpoint directory.
type SaveEvent struct {
	GlobalStep int
	Dir        string
}

// SaveHook is invoked synchronously on each save-completion notification.
type SaveHook func(ctx context.Context, ev SaveEvent) error

// Hook adapts the publisher to a training-loop save hook. The returned
// error tells the caller the checkpoint was not mirrored; whether that
// aborts training is the caller's decision.
func (p *Publisher) Hook() SaveHook {
	return func(ctx context.Context, ev SaveEvent) error {
		if _, err := p.Publish(ctx, ev.Dir); err != nil {
			slog.Error("Failed to publish checkpoint", "step", ev.GlobalStep, "dir", ev.Dir, "error", err)
			return err
		}

		return nil
	}
}
