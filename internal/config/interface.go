package config

import "context"

// Loader is implemented by configuration frontends. The HCL implementation
// lives in the hcl package; tests may substitute their own.
type Loader interface {
	// Load reads the file or directory at path and returns the merged,
	// fully translated document.
	Load(ctx context.Context, path string) (*Document, error)
}
