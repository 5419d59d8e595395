package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewestLocalCheckpoint(t *testing.T) {
	runDir := t.TempDir()
	for _, name := range []string{"checkpoint-9", "checkpoint-100", "checkpoint-20", "tensorboard"} {
		require.NoError(t, os.Mkdir(filepath.Join(runDir, name), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "checkpoint-999"), []byte("not a dir"), 0o644))

	dir, err := newestLocalCheckpoint(runDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(runDir, "checkpoint-100"), dir)
}

func TestNewestLocalCheckpoint_Empty(t *testing.T) {
	_, err := newestLocalCheckpoint(t.TempDir())
	assert.Error(t, err)
}

func TestNewestLocalCheckpoint_Unconfigured(t *testing.T) {
	_, err := newestLocalCheckpoint("")
	assert.Error(t, err)
}
