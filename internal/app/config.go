package app

import (
	"errors"
	"fmt"

	"github.com/vk/textembed/internal/engine"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string
	// OutputDir overrides the manifest's output directory when set.
	OutputDir string
	// Global holds option overrides given on the command line. They win over
	// both the manifest and the env file.
	Global  engine.RawOptions
	EnvFile string

	LogFormat       string
	LogLevel        string
	LogFile         string
	HealthcheckPort int
	WorkerCount     int
	Watch           bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}
	if _, err := loaderFor(cfg.ManifestPath); err != nil {
		return nil, err
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("WorkerCount must be at least 1, got %d", cfg.WorkerCount)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("HealthcheckPort %d is out of range", cfg.HealthcheckPort)
	}
	if cfg.HealthcheckPort > 0 && !cfg.Watch {
		return nil, errors.New("HealthcheckPort requires watch mode")
	}
	if cfg.Global == nil {
		cfg.Global = engine.RawOptions{}
	}
	return &cfg, nil
}

// envKeys maps env file variables onto global option keys.
var envKeys = map[string]string{
	"TEXTEMBED_ROOT_NAMESPACE": engine.KeyRootNamespace,
	"TEXTEMBED_PROJECT_ROOT":   engine.KeyProjectRoot,
	"TEXTEMBED_AUTO_EMBED":     engine.KeyAutoEmbed,
}
