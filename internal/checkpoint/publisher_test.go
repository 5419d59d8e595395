package checkpoint

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/ckmirror/internal/storage"
)

// --- Mock types ---

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Kind() storage.Kind {
	args := m.Called()
	return storage.Kind(args.String(0))
}

func (m *MockBackend) Bucket() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockBackend) Upload(ctx context.Context, key string, r io.Reader) error {
	args := m.Called(ctx, key, r)
	return args.Error(0)
}

func (m *MockBackend) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	args := m.Called(ctx)
	if objects, ok := args.Get(0).([]storage.ObjectInfo); ok {
		return objects, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) Download(ctx context.Context, key, localPath string) error {
	args := m.Called(ctx, key, localPath)
	return args.Error(0)
}

func (m *MockBackend) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- Helpers ---

func writeCheckpoint(t *testing.T, root, dir string, files map[string][]byte) string {
	t.Helper()

	dirPath := filepath.Join(root, dir)
	for rel, data := range files {
		full := filepath.Join(dirPath, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, data, 0o644))
	}

	return dirPath
}

// --- Tests ---

func TestPublisher_OneObjectPerFile(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory("ckpts")

	dir := writeCheckpoint(t, t.TempDir(), "checkpoint-10", map[string][]byte{
		"weights.bin":         []byte("wwwww"),
		"config.json":         []byte("{}"),
		"optimizer/state.bin": []byte("state"),
	})

	uploaded, err := NewPublisher(backend, "demo").Publish(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 3, uploaded)

	objects, err := backend.List(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 3)

	// Relative paths are reproduced verbatim under the run prefix.
	assert.Equal(t, "demo/checkpoint-10/config.json", objects[0].Key)
	assert.Equal(t, "demo/checkpoint-10/optimizer/state.bin", objects[1].Key)
	assert.Equal(t, "demo/checkpoint-10/weights.bin", objects[2].Key)
}

func TestPublisher_SingleFileBytes(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory("ckpts")

	dir := writeCheckpoint(t, t.TempDir(), "checkpoint-10", map[string][]byte{
		"weights.bin": []byte("12345"),
	})

	uploaded, err := NewPublisher(backend, "demo").Publish(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, uploaded)

	data, ok := backend.Object("demo/checkpoint-10/weights.bin")
	require.True(t, ok)
	assert.Equal(t, []byte("12345"), data)
}

func TestPublisher_MissingDirectory(t *testing.T) {
	backend := storage.NewMemory("ckpts")

	_, err := NewPublisher(backend, "demo").Publish(context.Background(), filepath.Join(t.TempDir(), "checkpoint-404"))
	assert.ErrorIs(t, err, ErrLocalRead)
}

func TestPublisher_NotADirectory(t *testing.T) {
	backend := storage.NewMemory("ckpts")

	file := filepath.Join(t.TempDir(), "checkpoint-10")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := NewPublisher(backend, "demo").Publish(context.Background(), file)
	assert.ErrorIs(t, err, ErrLocalRead)
}

func TestPublisher_FailFastOnUploadError(t *testing.T) {
	dir := writeCheckpoint(t, t.TempDir(), "checkpoint-10", map[string][]byte{
		"a.bin": []byte("a"),
		"b.bin": []byte("b"),
	})

	backend := new(MockBackend)
	backend.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	uploaded, err := NewPublisher(backend, "demo").Publish(context.Background(), dir)

	// First failure aborts the walk; the second file is never attempted.
	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.Equal(t, 0, uploaded)
	backend.AssertNumberOfCalls(t, "Upload", 1)
}

func TestPublisher_Hook(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory("ckpts")

	dir := writeCheckpoint(t, t.TempDir(), "checkpoint-25", map[string][]byte{
		"weights.bin": []byte("w"),
	})

	hook := NewPublisher(backend, "demo").Hook()
	require.NoError(t, hook(ctx, SaveEvent{GlobalStep: 25, Dir: dir}))

	_, ok := backend.Object("demo/checkpoint-25/weights.bin")
	assert.True(t, ok)
}

func TestPublisher_HookPropagatesFailure(t *testing.T) {
	backend := storage.NewMemory("ckpts")

	hook := NewPublisher(backend, "demo").Hook()
	err := hook(context.Background(), SaveEvent{GlobalStep: 25, Dir: filepath.Join(t.TempDir(), "gone")})

	assert.ErrorIs(t, err, ErrLocalRead)
}
