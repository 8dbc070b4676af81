// Package yaml provides a YAML implementation of the config.Loader
// interface for teams that keep build metadata in YAML.
package yaml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/textembed/internal/config"
	"github.com/vk/textembed/internal/ctxlog"
	"github.com/vk/textembed/internal/engine"
	"gopkg.in/yaml.v3"
)

type manifestFile struct {
	Output string            `yaml:"output"`
	Global map[string]scalar `yaml:"global"`
	Texts  []textsEntry      `yaml:"texts"`
}

type textsEntry struct {
	Name     string            `yaml:"name"`
	Include  []string          `yaml:"include"`
	Exclude  []string          `yaml:"exclude"`
	Metadata map[string]scalar `yaml:"metadata"`
}

// scalar accepts any YAML scalar and keeps its literal text, so `true`,
// `"true"` and `20` all reach the engine as strings.
type scalar struct {
	value string
	set   bool
}

func (s *scalar) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: must be a string, number, or bool", n.Line)
	}
	if n.ShortTag() == "!!null" {
		return nil
	}
	s.value, s.set = n.Value, true
	return nil
}

// Loader reads YAML manifests.
type Loader struct{}

// NewLoader creates a new YAML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the manifest at path. Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving manifest path %s: %w", path, err)
	}
	f, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML file %s: %w", path, err)
	}
	defer f.Close()

	var root manifestFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	baseDir := filepath.Dir(absPath)
	model := &config.Model{
		Path:    absPath,
		BaseDir: baseDir,
		Output:  config.ResolvePath(baseDir, root.Output),
		Global:  toOptions(root.Global),
	}
	if v, ok := model.Global[engine.KeyProjectRoot]; ok {
		model.Global[engine.KeyProjectRoot] = config.ResolvePath(baseDir, v)
	}
	for _, t := range root.Texts {
		model.Texts = append(model.Texts, &config.TextGroup{
			Name:     t.Name,
			Include:  t.Include,
			Exclude:  t.Exclude,
			Metadata: toOptions(t.Metadata),
		})
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	logger.Debug("YAML loading complete.", "globals", len(model.Global), "texts", len(model.Texts))
	return model, nil
}

func toOptions(in map[string]scalar) engine.RawOptions {
	out := make(engine.RawOptions, len(in))
	for k, v := range in {
		if v.set {
			out[config.NormalizeKey(k)] = v.value
		}
	}
	return out
}
