package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/vk/textembed/internal/config"
	"github.com/vk/textembed/internal/ctxlog"
	"github.com/vk/textembed/internal/engine"
	"github.com/vk/textembed/internal/executor"
	"github.com/vk/textembed/internal/fsutil"
	"github.com/vk/textembed/internal/inmemorystore"
	"github.com/vk/textembed/internal/output"
	"github.com/vk/textembed/internal/watcher"
)

// DefaultOutputDir is used, relative to the manifest, when neither the
// manifest nor the configuration names an output directory.
const DefaultOutputDir = "Generated"

// ErrDiagnostics is returned when at least one resource could not be
// generated. Units of the remaining resources are still written.
var ErrDiagnostics = errors.New("generation produced diagnostics")

// Report summarizes one generation pass.
type Report struct {
	BaseDir     string
	OutputDir   string
	Resources   int
	Generated   int
	Excluded    int
	Diagnostics []error
	Output      output.Stats
}

// Run executes the main application logic. Without watch mode it performs a
// single generation pass. In watch mode it regenerates on every change until
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.", "manifest", a.config.ManifestPath, "watch", a.config.Watch)

	if !a.config.Watch {
		_, err := a.Generate(ctx)
		return err
	}
	return a.watch(ctx)
}

// Generate performs one complete pass: load the manifest, discover
// resources, generate units and write them.
func (a *App) Generate(ctx context.Context) (*Report, error) {
	report, err := a.generate(ctxlog.WithLogger(ctx, a.logger))
	a.status.Store(&passStatus{err: err})
	return report, err
}

func (a *App) generate(ctx context.Context) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	model, err := a.loader.Load(ctx, a.config.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	global, err := a.globalOptions(ctx, model)
	if err != nil {
		return nil, err
	}
	model.Output = a.outputDir(model)

	report := &Report{BaseDir: model.BaseDir, OutputDir: model.Output}

	resources, err := fsutil.Discover(ctx, model)
	if err != nil {
		return report, fmt.Errorf("failed to discover resources: %w", err)
	}
	report.Resources = len(resources)

	results, err := executor.New(a.config.WorkerCount, global).Run(ctx, resources)
	if err != nil {
		return report, fmt.Errorf("execution failed: %w", err)
	}

	store := inmemorystore.New()
	for _, r := range results {
		switch {
		case r.Err != nil:
			report.Diagnostics = append(report.Diagnostics, r.Err)
		case r.Excluded():
			report.Excluded++
		default:
			if err := store.Put(ctx, r.Unit); err != nil {
				report.Diagnostics = append(report.Diagnostics, err)
				if kept, getErr := store.Get(ctx, r.Unit.Key()); getErr == nil && kept != nil {
					logger.Warn("Duplicate unit key, keeping the first resource.",
						"key", r.Unit.Key().String(), "kept", kept.RelativePath, "dropped", r.Unit.RelativePath)
				}
			}
		}
	}

	units, err := store.Units(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list generated units: %w", err)
	}
	report.Generated = len(units)

	stats, err := output.NewWriter(model.Output).Write(ctx, units)
	report.Output = stats
	if err != nil {
		return report, fmt.Errorf("failed to write output: %w", err)
	}

	for _, d := range report.Diagnostics {
		logger.Error("Resource failed.", "error", d)
	}
	logger.Info("🏁 Generation finished.",
		"resources", report.Resources,
		"generated", report.Generated,
		"excluded", report.Excluded,
		"diagnostics", len(report.Diagnostics),
		"written", stats.Written,
		"unchanged", stats.Unchanged,
		"pruned", stats.Pruned,
	)

	if n := len(report.Diagnostics); n > 0 {
		return report, fmt.Errorf("%d resource(s) failed: %w", n, ErrDiagnostics)
	}
	return report, nil
}

// globalOptions layers manifest, env file and command line options, in
// increasing precedence.
func (a *App) globalOptions(ctx context.Context, model *config.Model) (engine.RawOptions, error) {
	logger := ctxlog.FromContext(ctx)
	global := model.Global.Clone()

	if a.config.EnvFile != "" {
		env, err := godotenv.Read(a.config.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", a.config.EnvFile, err)
		}
		envDir := filepath.Dir(a.config.EnvFile)
		for name, key := range envKeys {
			v, ok := env[name]
			if !ok {
				continue
			}
			if key == engine.KeyProjectRoot {
				v = config.ResolvePath(envDir, v)
			}
			global[key] = v
		}
		logger.Debug("Env file applied.", "path", a.config.EnvFile)
	}

	overrides := a.config.Global.Clone()
	if v, ok := overrides[engine.KeyProjectRoot]; ok && v != "" {
		abs, err := filepath.Abs(v)
		if err != nil {
			return nil, fmt.Errorf("error resolving project root %s: %w", v, err)
		}
		overrides[engine.KeyProjectRoot] = abs
	}
	return global.Merge(overrides), nil
}

func (a *App) outputDir(model *config.Model) string {
	switch {
	case a.config.OutputDir != "":
		if abs, err := filepath.Abs(a.config.OutputDir); err == nil {
			return abs
		}
		return a.config.OutputDir
	case model.Output != "":
		return model.Output
	default:
		return filepath.Join(model.BaseDir, DefaultOutputDir)
	}
}

func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	a.healthCheckServer()
	defer a.closeHealthCheckServer()

	report, err := a.Generate(ctx)
	if report == nil {
		// Without a loaded manifest there is nothing to watch.
		return err
	}
	if err != nil {
		logger.Error("Initial generation failed.", "error", err)
	}

	w, err := watcher.New(report.BaseDir, []string{report.OutputDir}, func(ctx context.Context) {
		if _, err := a.Generate(ctx); err != nil {
			logger.Error("Regeneration failed.", "error", err)
		}
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
