package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/textembed/internal/config"
	"github.com/vk/textembed/internal/hcl"
	"github.com/vk/textembed/internal/yaml"
)

// loaderFor picks the manifest loader by file extension.
func loaderFor(path string) (config.Loader, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".yaml", ".yml":
		return yaml.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported manifest format %q: expected .hcl, .yaml or .yml", ext)
	}
}
