package config

import (
	"context"
	"path/filepath"
	"strings"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads the manifest at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Model, error)
}

// NormalizeKey maps manifest attribute names onto option keys, so that
// "preview_line_limit" and "preview-line-limit" are the same option.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// ResolvePath makes p absolute relative to base. Empty paths stay empty.
func ResolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
