package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaPath = "../../schema/ckmirror.v1.schema.json"

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `
version: "1"
run:
  name: demo-run
  local_dir: ~/runs/demo
storage:
  backend: s3
  bucket: training-ckpts
  options:
    region: us-east-1
    path_style: true
fetch:
  dest_dir: ~/runs/restore
`)

	cfg, err := LoadAndValidate(path, schemaPath)
	require.NoError(t, err)

	assert.Equal(t, "demo-run", cfg.Run.Name)
	assert.Equal(t, BackendKindS3, cfg.Storage.Backend)
	assert.Equal(t, "training-ckpts", cfg.Storage.Bucket)
	assert.Equal(t, "us-east-1", cfg.Storage.Options["region"])
	assert.Equal(t, true, cfg.Storage.Options["path_style"])
	assert.Equal(t, "~/runs/restore", cfg.Fetch.DestDir)
}

func TestLoadAndValidate_UnknownBackend(t *testing.T) {
	path := writeConfig(t, `
version: "1"
run:
  name: demo-run
storage:
  backend: azure
  bucket: training-ckpts
`)

	_, err := LoadAndValidate(path, schemaPath)
	assert.Error(t, err)
}

func TestLoadAndValidate_MissingBucket(t *testing.T) {
	path := writeConfig(t, `
version: "1"
run:
  name: demo-run
storage:
  backend: gcs
`)

	_, err := LoadAndValidate(path, schemaPath)
	assert.Error(t, err)
}

func TestLoadAndValidate_RunNameWithSlash(t *testing.T) {
	path := writeConfig(t, `
version: "1"
run:
  name: demo/run
storage:
  backend: s3
  bucket: training-ckpts
`)

	// Run names become key prefix segments; slashes would corrupt grouping.
	_, err := LoadAndValidate(path, schemaPath)
	assert.Error(t, err)
}

func TestLoadAndValidate_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "version: [unterminated")

	_, err := LoadAndValidate(path, schemaPath)
	assert.Error(t, err)
}

func TestLoadAndValidate_MissingFile(t *testing.T) {
	_, err := LoadAndValidate(filepath.Join(t.TempDir(), "gone.yaml"), schemaPath)
	assert.Error(t, err)
}
