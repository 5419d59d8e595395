package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Memory is an in-memory Backend for tests. It is safe for concurrent use.
type Memory struct {
	bucket  string
	mu      sync.RWMutex
	objects map[string]memObject
	now     func() time.Time
}

type memObject struct {
	data     []byte
	modified time.Time
}

// NewMemory creates an in-memory backend addressing the named bucket.
func NewMemory(bucket string) *Memory {
	return &Memory{
		bucket:  bucket,
		objects: make(map[string]memObject),
		now:     time.Now,
	}
}

func (m *Memory) Kind() Kind {
	return KindMemory
}

func (m *Memory) Bucket() string {
	return m.bucket
}

func (m *Memory) Upload(_ context.Context, key string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read object body for %s: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = memObject{data: data, modified: m.now()}
	return nil
}

func (m *Memory) List(_ context.Context) ([]ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	objects := make([]ObjectInfo, 0, len(m.objects))
	for key, obj := range m.objects {
		objects = append(objects, ObjectInfo{
			Key:          key,
			Size:         int64(len(obj.data)),
			LastModified: obj.modified,
		})
	}

	// Stores list in lexicographic key order.
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })

	return objects, nil
}

func (m *Memory) Download(_ context.Context, key, localPath string) error {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("object %s not found in bucket %s", key, m.bucket)
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(localPath), err)
	}

	if err := os.WriteFile(localPath, obj.data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", localPath, err)
	}

	return nil
}

func (m *Memory) Close() error {
	return nil
}

// SetModTime overrides an object's modification time. Test helper.
func (m *Memory) SetModTime(key string, t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj, ok := m.objects[key]; ok {
		obj.modified = t
		m.objects[key] = obj
	}
}

// Object returns a stored object's bytes. Test helper.
func (m *Memory) Object(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	return obj.data, ok
}

// Verify interface compliance.
var _ Backend = (*Memory)(nil)
