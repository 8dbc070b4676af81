package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/textembed/internal/config"
	"github.com/vk/textembed/internal/ctxlog"
	"github.com/vk/textembed/internal/engine"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the manifest at path and translates it into the agnostic
// model. Expressions can reference manifest_dir, the absolute directory of
// the manifest file.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving manifest path %s: %w", path, err)
	}
	baseDir := filepath.Dir(absPath)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(absPath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"manifest_dir": cty.StringVal(baseDir),
		},
		Functions: manifestFunctions(),
	}

	var root manifestFile
	diags = gohcl.DecodeBody(file.Body, evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model := &config.Model{
		Path:    absPath,
		BaseDir: baseDir,
		Output:  config.ResolvePath(baseDir, root.Output),
		Global:  engine.RawOptions{},
	}

	for _, g := range root.Globals {
		opts, err := decodeOptions(ctx, g.Body, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to decode global block in %s: %w", path, err)
		}
		for k, v := range opts {
			model.Global[k] = v
		}
	}
	if v, ok := model.Global[engine.KeyProjectRoot]; ok {
		model.Global[engine.KeyProjectRoot] = config.ResolvePath(baseDir, v)
	}

	for _, t := range root.Texts {
		metadata, err := decodeOptions(ctx, t.Body, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to decode texts block %q in %s: %w", t.Name, path, err)
		}
		model.Texts = append(model.Texts, &config.TextGroup{
			Name:     t.Name,
			Include:  t.Include,
			Exclude:  t.Exclude,
			Metadata: metadata,
		})
		logger.Debug("Translated texts block.", "name", t.Name, "include", t.Include, "metadata_keys", len(metadata))
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	logger.Debug("HCL loading complete.", "globals", len(model.Global), "texts", len(model.Texts))
	return model, nil
}
