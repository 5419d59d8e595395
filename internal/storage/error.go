package storage

import "errors"

// Error definitions for the storage package.
var (
	ErrUnknownKind = errors.New("unknown storage backend kind")
)
