// Package executor runs one generation pass: every discovered resource is
// read and handed to the embedding engine on a bounded pool of workers.
package executor

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/textembed/internal/ctxlog"
	"github.com/vk/textembed/internal/engine"
	"github.com/vk/textembed/internal/fsutil"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome for a single resource. Exactly one of three cases
// holds: Unit is set, Err is set, or both are nil because the resource was
// excluded by its options.
type Result struct {
	Path string
	Unit *engine.Unit
	Err  error
}

// Excluded reports whether the resource was skipped by the enable rule.
func (r Result) Excluded() bool {
	return r.Unit == nil && r.Err == nil
}

// Executor processes resources concurrently. It holds no per-pass state and
// can be reused across passes.
type Executor struct {
	workers  int
	global   engine.RawOptions
	readFile func(string) ([]byte, error)
}

// New creates an executor with the given worker count and global options.
func New(workers int, global engine.RawOptions) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		workers:  workers,
		global:   global.Clone(),
		readFile: os.ReadFile,
	}
}

// Run processes every resource and returns one result per resource in the
// input order. A failing resource never stops the others; the returned error
// is non-nil only when ctx is cancelled before the pass completes.
func (e *Executor) Run(ctx context.Context, resources []fsutil.Resource) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Generation pass starting.", "resources", len(resources), "workers", e.workers)

	results := make([]Result, len(resources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, res := range resources {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = e.process(ctxlog.WithResource(gctx, res.Path), res)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generation pass cancelled: %w", err)
	}
	logger.Debug("Generation pass finished.")
	return results, nil
}
