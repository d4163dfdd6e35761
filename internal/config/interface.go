package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths and overlays it on base.
	Load(ctx context.Context, base *Model, paths ...string) (*Model, error)
}
