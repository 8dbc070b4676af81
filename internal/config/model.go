package config

import (
	"fmt"

	"github.com/vk/textembed/internal/engine"
)

// Model is the unified, format-agnostic representation of a manifest.
type Model struct {
	// Path is the manifest file the model was loaded from.
	Path string
	// BaseDir is the directory include and exclude patterns are relative to.
	BaseDir string
	// Output is the directory generated units are written to. Relative
	// values have already been resolved against BaseDir.
	Output string
	// Global holds build-wide options such as auto-embed and project-root.
	Global engine.RawOptions
	// Texts are applied in order; later groups override earlier ones key by key.
	Texts []*TextGroup
}

// TextGroup selects resources by glob and attaches per-resource metadata.
type TextGroup struct {
	Name     string
	Include  []string
	Exclude  []string
	Metadata engine.RawOptions
}

// Validate reports structural problems that no loader can express on its own.
func (m *Model) Validate() error {
	for i, t := range m.Texts {
		if len(t.Include) == 0 {
			return fmt.Errorf("texts group %d (%q) has no include patterns", i, t.Name)
		}
	}
	return nil
}
