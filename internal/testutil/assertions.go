package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertNotGenerated checks that no file exists at the given hint name.
func AssertNotGenerated(t *testing.T, result *HarnessResult, hint string) {
	t.Helper()
	require.NotNil(t, result.Report, "no report: %v", result.Err)

	_, err := os.Stat(filepath.Join(result.Report.OutputDir, filepath.FromSlash(hint)))
	require.True(t, os.IsNotExist(err), "expected %s not to be generated", hint)
}

// AssertLogged checks that the log output contains substr.
func AssertLogged(t *testing.T, result *HarnessResult, substr string) {
	t.Helper()
	require.Contains(t, result.LogOutput, substr)
}
