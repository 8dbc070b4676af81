// Package testutil provides a harness for running full generation passes
// over fixture trees in integration tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/textembed/internal/app"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Root      string
	LogOutput string
	Err       error
	Report    *app.Report
	App       *app.App
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, manifest string, files map[string]string) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, manifest, files)
}

// RunIntegrationTestWithContext writes files into a fresh directory and runs
// one generation pass with the manifest at the relative path manifest.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, manifest string, files map[string]string) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg, err := app.NewConfig(app.Config{
		ManifestPath: filepath.Join(root, filepath.FromSlash(manifest)),
		LogLevel:     "debug",
		LogFormat:    "text",
		WorkerCount:  4,
	})
	require.NoError(t, err)

	logBuffer := &app.SafeBuffer{}
	testApp, err := app.NewApp(logBuffer, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testApp.Close() })

	report, runErr := testApp.Generate(ctx)

	if os.Getenv("TEXTEMBED_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Root:      root,
		LogOutput: logBuffer.String(),
		Err:       runErr,
		Report:    report,
		App:       testApp,
	}
}

// Generated returns the content of the generated file at the slash-separated
// hint name, failing the test if it does not exist.
func (r *HarnessResult) Generated(t *testing.T, hint string) string {
	t.Helper()
	require.NotNil(t, r.Report, "no report: %v", r.Err)
	data, err := os.ReadFile(filepath.Join(r.Report.OutputDir, filepath.FromSlash(hint)))
	require.NoError(t, err, "expected generated file %s", hint)
	return string(data)
}
