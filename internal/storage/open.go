package storage

import (
	"context"
	"fmt"
)

// Open constructs the backend for the configured kind.
// The kind set is closed; anything else fails with ErrUnknownKind before
// any SDK or network call. The memory backend is test-only and is not
// reachable from configuration.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	switch cfg.Kind {
	case KindS3:
		return newS3(ctx, cfg)
	case KindGCS:
		return newGCS(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}
