package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/textembed/internal/app"
	"github.com/vk/textembed/internal/engine"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("textembed", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
TextEmbed - Embeds text files as C# raw string literals.

Usage:
  textembed [options] [MANIFEST]

Arguments:
  MANIFEST
    Path to a .hcl, .yaml or .yml manifest selecting the files to embed.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "", "Path to the manifest file.")
	mFlag := flagSet.String("m", "", "Path to the manifest file (shorthand).")
	outFlag := flagSet.String("out", "", "Output directory. Defaults to the manifest's output, or Generated next to it.")
	oFlag := flagSet.String("o", "", "Output directory (shorthand).")
	rootNamespaceFlag := flagSet.String("root-namespace", "", "Root namespace prepended to derived namespaces.")
	projectRootFlag := flagSet.String("project-root", "", "Project root that resource paths are made relative to.")
	autoEmbedFlag := flagSet.String("auto-embed", "", "Embed every selected file unless opted out. Options: 'true' or 'false'.")
	envFileFlag := flagSet.String("env-file", "", "Path to a .env file with TEXTEMBED_* global options.")
	workersFlag := flagSet.Int("workers", 10, "Number of concurrent workers for the generation pass.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFileFlag := flagSet.String("log-file", "", "Write logs to a rotating file instead of stdout.")
	watchFlag := flagSet.Bool("watch", false, "Regenerate whenever files under the manifest directory change.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server in watch mode. 0 is disabled.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *manifestFlag != "" {
		path = *manifestFlag
	} else if *mFlag != "" {
		path = *mFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Manifest path determined.", "path", path)

	if path == "" {
		slog.Debug("No manifest path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	out := *outFlag
	if out == "" {
		out = *oFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	// Only flags given explicitly override the manifest.
	global := engine.RawOptions{}
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "root-namespace":
			global[engine.KeyRootNamespace] = *rootNamespaceFlag
		case "project-root":
			global[engine.KeyProjectRoot] = *projectRootFlag
		case "auto-embed":
			global[engine.KeyAutoEmbed] = *autoEmbedFlag
		}
	})
	if v, ok := global[engine.KeyAutoEmbed]; ok && !strings.EqualFold(v, "true") && !strings.EqualFold(v, "false") {
		return nil, false, &ExitError{Code: 2, Message: "invalid auto-embed: must be 'true' or 'false'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ManifestPath:    path,
		OutputDir:       out,
		Global:          global,
		EnvFile:         *envFileFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		LogFile:         *logFileFlag,
		HealthcheckPort: *healthPortFlag,
		WorkerCount:     *workersFlag,
		Watch:           *watchFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
