package checkpoint

import "errors"

// Error definitions for the checkpoint package.
var (
	ErrLocalRead     = errors.New("local checkpoint directory is not readable")
	ErrStorageWrite  = errors.New("remote checkpoint write failed")
	ErrStorageRead   = errors.New("remote checkpoint read failed")
	ErrEmptyLocation = errors.New("no checkpoints found in storage location")
)
