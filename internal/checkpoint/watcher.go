package checkpoint

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ekisa-team/ckmirror/internal/run"
	"github.com/ekisa-team/ckmirror/internal/storage"
)

const publishTimeout = 10 * time.Minute

// Watcher observes a run directory and publishes checkpoint directories as
// the training loop finishes writing them. A failed publish is recorded in
// the registry and logged, never fatal to the watch loop.
type Watcher struct {
	runDir    string
	backend   storage.Backend
	publisher *Publisher
	registry  *run.Registry

	mu        sync.Mutex
	pending   map[string]*time.Timer
	debounce  time.Duration
	publishes atomic.Uint32
}

// NewWatcher creates a watcher over runDir. Checkpoint directories already
// present locally but missing remotely are published before watching starts.
func NewWatcher(ctx context.Context, runDir string, backend storage.Backend, publisher *Publisher, registry *run.Registry) (*Watcher, error) {
	w := &Watcher{
		runDir:    runDir,
		backend:   backend,
		publisher: publisher,
		registry:  registry,
		pending:   map[string]*time.Timer{},
		debounce:  500 * time.Millisecond,
	}

	if err := w.catchUp(ctx); err != nil {
		return nil, fmt.Errorf("failed initial checkpoint sync: %w", err)
	}

	go w.watch()

	return w, nil
}

// PublishCount returns the number of checkpoints published so far.
func (w *Watcher) PublishCount() uint32 {
	return w.publishes.Load()
}

// catchUp publishes local checkpoint directories that are not yet present
// in remote storage, so a restarted watcher does not miss saves.
func (w *Watcher) catchUp(ctx context.Context) error {
	entries, err := os.ReadDir(w.runDir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLocalRead, w.runDir, err)
	}

	var local []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, ok := ParseStep(entry.Name()); ok {
			local = append(local, entry.Name())
		}
	}

	if len(local) == 0 {
		return nil
	}

	objects, err := w.backend.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: listing bucket %s: %v", ErrStorageRead, w.backend.Bucket(), err)
	}

	remote := map[string]bool{}
	for _, obj := range objects {
		if runName, dir, _, ok := SplitKey(obj.Key); ok && runName == w.publisher.RunName() {
			remote[dir] = true
		}
	}

	for _, name := range local {
		if remote[name] {
			continue
		}

		slog.Info("Publishing checkpoint missed while not watching", "dir", name)
		w.publish(filepath.Join(w.runDir, name))
	}

	return nil
}

// watch runs the fsnotify loop. A new checkpoint directory is published
// after its writes have been quiet for the debounce interval.
func (w *Watcher) watch() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("Failed to create file watcher", "error", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(w.runDir); err != nil {
		slog.Error("Failed to watch run directory", "path", w.runDir, "error", err)
		return
	}

	slog.Info("Watching run directory", "path", w.runDir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			w.handleEvent(watcher, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}

			slog.Error("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	dirPath, ok := w.checkpointDirOf(event.Name)
	if !ok {
		return
	}

	if event.Op&fsnotify.Create == fsnotify.Create && event.Name == dirPath {
		// Watch inside the new directory so later writes reset the timer.
		if info, err := os.Stat(dirPath); err != nil || !info.IsDir() {
			return
		}
		if err := watcher.Add(dirPath); err != nil {
			slog.Warn("Failed to watch checkpoint directory", "path", dirPath, "error", err)
		}
	}

	w.schedule(watcher, dirPath)
}

// checkpointDirOf maps an event path to the checkpoint directory it belongs
// to, if any.
func (w *Watcher) checkpointDirOf(eventPath string) (string, bool) {
	rel, err := filepath.Rel(w.runDir, eventPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}

	top := rel
	if i := strings.IndexByte(filepath.ToSlash(rel), '/'); i >= 0 {
		top = rel[:i]
	}

	if _, ok := ParseStep(top); !ok {
		return "", false
	}

	return filepath.Join(w.runDir, top), true
}

// schedule arms (or re-arms) the debounce timer for a checkpoint directory.
func (w *Watcher) schedule(watcher *fsnotify.Watcher, dirPath string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[dirPath]; ok {
		timer.Stop()
	}

	w.pending[dirPath] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, dirPath)
		w.mu.Unlock()

		if err := watcher.Remove(dirPath); err != nil {
			slog.Debug("Failed to unwatch checkpoint directory", "path", dirPath, "error", err)
		}

		w.publish(dirPath)
	})
}

// publish mirrors one checkpoint directory and records the outcome.
func (w *Watcher) publish(dirPath string) {
	name := filepath.Base(dirPath)
	step, _ := ParseStep(name)

	instance := run.NewInstance(step, name)
	instance.SetStatus(run.StatusPublishing)
	w.registry.Set(instance)

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	files, err := w.publisher.Publish(ctx, dirPath)
	if err != nil {
		instance.SetStatus(run.StatusFailed)
		instance.SetError(err)
		slog.Error("Failed to publish checkpoint, training continues unmirrored", "dir", name, "error", err)
		return
	}

	instance.Files = files
	instance.SetStatus(run.StatusPublished)
	w.publishes.Add(1)

	slog.Info("Checkpoint mirrored", "dir", name, "step", step, "files", files, "published", w.publishes.Load())
}
