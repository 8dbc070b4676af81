// Package fsutil provides file system utility functions for resource discovery.
package fsutil

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/vk/textembed/internal/config"
	"github.com/vk/textembed/internal/ctxlog"
	"github.com/vk/textembed/internal/engine"
)

// Resource is a discovered file together with its merged per-resource metadata.
type Resource struct {
	// Path is absolute.
	Path     string
	Metadata engine.RawOptions
}

// Discover walks the manifest's base directory and returns every file
// selected by at least one text group, in lexical path order. When several
// groups select a file their metadata is merged in manifest order. The
// output directory is never searched.
func Discover(ctx context.Context, model *config.Model) ([]Resource, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resource discovery started.", "base_dir", model.BaseDir, "groups", len(model.Texts))

	for _, t := range model.Texts {
		for _, p := range append(append([]string(nil), t.Include...), t.Exclude...) {
			if err := ValidatePattern(p); err != nil {
				return nil, fmt.Errorf("texts group %q: invalid pattern %q: %w", t.Name, p, err)
			}
		}
	}

	var resources []Resource
	err := filepath.WalkDir(model.BaseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if model.Output != "" && p == model.Output {
				logger.Debug("Skipping output directory.", "path", p)
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(model.BaseDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		var metadata engine.RawOptions
		for _, t := range model.Texts {
			selected, err := selects(t, rel)
			if err != nil {
				return err
			}
			if selected {
				metadata = metadata.Merge(t.Metadata)
			}
		}
		if metadata != nil {
			resources = append(resources, Resource{Path: p, Metadata: metadata})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error discovering resources in %s: %w", model.BaseDir, err)
	}

	logger.Debug("Resource discovery finished.", "count", len(resources))
	return resources, nil
}

func selects(t *config.TextGroup, rel string) (bool, error) {
	included := false
	for _, p := range t.Include {
		ok, err := Match(p, rel)
		if err != nil {
			return false, err
		}
		if ok {
			included = true
			break
		}
	}
	if !included {
		return false, nil
	}
	for _, p := range t.Exclude {
		ok, err := Match(p, rel)
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
	}
	return true, nil
}
