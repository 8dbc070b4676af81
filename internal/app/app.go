package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/vk/textembed/internal/config"
	"github.com/vk/textembed/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	outW       io.Writer
	logger     *slog.Logger
	logCloser  io.Closer
	config     *Config
	loader     config.Loader
	httpServer *http.Server

	// status is nil until the first pass completes.
	status atomic.Pointer[passStatus]
}

type passStatus struct {
	err error
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. Close must be
// called to release the log file, if any.
func NewApp(outW io.Writer, cfg *Config) (*App, error) {
	loader, err := loaderFor(cfg.ManifestPath)
	if err != nil {
		return nil, err
	}

	logW, closer := logOutput(cfg.LogFile, outW)
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.", "log_file", cfg.LogFile)

	return &App{
		ctx:       ctxlog.WithLogger(context.Background(), logger),
		outW:      outW,
		logger:    logger,
		logCloser: closer,
		config:    cfg,
		loader:    loader,
	}, nil
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.logCloser == nil {
		return nil
	}
	return a.logCloser.Close()
}
