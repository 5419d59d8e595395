package config

// BackendKind is the configured remote object-store kind.
type BackendKind string

const (
	// BackendKindS3 selects the Amazon S3 (or S3-compatible) backend.
	BackendKindS3 BackendKind = "s3"

	// BackendKindGCS selects the Google Cloud Storage backend.
	BackendKindGCS BackendKind = "gcs"
)

// Config holds the main configuration for the application.
type Config struct {
	Version string        `json:"version"         yaml:"version"`
	Run     RunConfig     `json:"run"             yaml:"run"`
	Storage StorageConfig `json:"storage"         yaml:"storage"`
	Fetch   FetchConfig   `json:"fetch,omitempty" yaml:"fetch,omitempty"`
}

// RunConfig identifies one training run.
type RunConfig struct {
	// Name namespaces this run's checkpoints within the shared bucket.
	Name string `json:"name" yaml:"name"`

	// LocalDir is the directory the training loop writes checkpoints into.
	LocalDir string `json:"local_dir,omitempty" yaml:"local_dir,omitempty"`
}

// StorageConfig holds the remote storage location.
type StorageConfig struct {
	Backend BackendKind `json:"backend" yaml:"backend"`
	Bucket  string      `json:"bucket"  yaml:"bucket"`

	// Options carries backend-specific settings (s3: region, endpoint, path_style).
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// FetchConfig holds settings for retrieving checkpoints.
type FetchConfig struct {
	// DestDir is the local root fetched checkpoints are materialized under.
	DestDir string `json:"dest_dir,omitempty" yaml:"dest_dir,omitempty"`
}
