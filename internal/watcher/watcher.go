// Package watcher re-runs generation when files under the manifest
// directory change.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/textembed/internal/ctxlog"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before triggering.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches a directory tree recursively. Directories created while
// watching are added automatically.
type Watcher struct {
	fsw      *fsnotify.Watcher
	root     string
	ignore   []string
	debounce time.Duration
	onChange func(context.Context)
}

// New creates a watcher for root. Paths under any of ignore are neither
// watched nor reported; the output directory belongs there so that writing
// generated files does not retrigger a pass.
func New(root string, ignore []string, onChange func(context.Context)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		root:     filepath.Clean(root),
		debounce: DefaultDebounce,
		onChange: onChange,
	}
	for _, p := range ignore {
		if p != "" {
			w.ignore = append(w.ignore, filepath.Clean(p))
		}
	}
	if err := w.addTree(w.root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// SetDebounce overrides DefaultDebounce. It must be called before Run.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Run delivers debounced change notifications until ctx is cancelled, then
// releases the underlying watcher. onChange runs on the Run goroutine, so
// events arriving during a pass are coalesced into the next one.
func (w *Watcher) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	logger.Info("Watching for changes.", "root", w.root)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watcher stopping.")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.handle(ctx, event) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)

		case <-timer.C:
			logger.Debug("Change detected, regenerating.")
			w.onChange(ctx)
		}
	}
}

// handle reports whether event should trigger a pass.
func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) bool {
	if w.ignored(event.Name) || event.Op == fsnotify.Chmod {
		return false
	}
	ctxlog.FromContext(ctx).Debug("File event.", "path", event.Name, "op", event.Op.String())

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				ctxlog.FromContext(ctx).Warn("Failed to watch new directory.", "path", event.Name, "error", err)
			}
		}
	}
	return true
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(p) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(p string) bool {
	p = filepath.Clean(p)
	for _, ig := range w.ignore {
		if p == ig || strings.HasPrefix(p, ig+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
