// Package output writes generated units to disk.
package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/textembed/internal/ctxlog"
	"github.com/vk/textembed/internal/engine"
)

// GeneratedSuffix marks files owned by the writer. Only such files are pruned.
const GeneratedSuffix = ".g.cs"

// Stats summarizes one Write call.
type Stats struct {
	Written   int
	Unchanged int
	Pruned    int
}

// Writer materializes units under a single output directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Write stores every unit at <dir>/<HintName>. Files whose bytes already
// match are left alone so their modification times stay stable. Generated
// files not produced by this call are removed afterwards.
func (w *Writer) Write(ctx context.Context, units []*engine.Unit) (Stats, error) {
	logger := ctxlog.FromContext(ctx)
	var stats Stats

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return stats, fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}

	keep := make(map[string]struct{}, len(units))
	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		path := filepath.Join(w.dir, filepath.FromSlash(u.HintName()))
		keep[path] = struct{}{}

		data := []byte(u.Source())
		if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
			stats.Unchanged++
			continue
		}
		if err := writeFileAtomic(path, data, 0o644); err != nil {
			return stats, fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Debug("Wrote generated source.", "path", path, "key", u.Key().String())
		stats.Written++
	}

	pruned, err := w.prune(ctx, keep)
	stats.Pruned = pruned
	if err != nil {
		return stats, err
	}
	logger.Debug("Output written.", "dir", w.dir, "written", stats.Written, "unchanged", stats.Unchanged, "pruned", stats.Pruned)
	return stats, nil
}

func (w *Writer) prune(ctx context.Context, keep map[string]struct{}) (int, error) {
	logger := ctxlog.FromContext(ctx)
	var dirs []string
	pruned := 0

	err := filepath.WalkDir(w.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != w.dir {
				dirs = append(dirs, p)
			}
			return nil
		}
		if !strings.HasSuffix(p, GeneratedSuffix) {
			return nil
		}
		if _, ok := keep[p]; ok {
			return nil
		}
		if err := os.Remove(p); err != nil {
			return err
		}
		logger.Debug("Pruned stale generated source.", "path", p)
		pruned++
		return nil
	})
	if err != nil {
		return pruned, fmt.Errorf("failed to prune %s: %w", w.dir, err)
	}

	// Deepest first, so parents become empty before they are visited.
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	for _, d := range dirs {
		entries, err := os.ReadDir(d)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(d); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return pruned, fmt.Errorf("failed to remove empty directory %s: %w", d, err)
		}
	}
	return pruned, nil
}

// writeFileAtomic writes data to a temporary sibling and renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
