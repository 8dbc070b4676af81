package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/textembed/internal/app"
	"github.com/vk/textembed/internal/testutil"
	"github.com/vk/textembed/internal/unitstore"
)

// Test for: two resources mapping to the same member are rejected by the store
func TestErrorHandling_DuplicateKey(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"textembed.hcl": `
global {
  project_root = manifest_dir
}

texts "all" {
  include        = ["a/Data.txt", "b/Data.txt"]
  namespace      = "Same"
  container_name = "Data"
}
`,
		"a/Data.txt": "first",
		"b/Data.txt": "second",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, "textembed.hcl", files)

	// --- Assert ---
	require.ErrorIs(t, result.Err, app.ErrDiagnostics)
	require.Len(t, result.Report.Diagnostics, 1)
	require.ErrorIs(t, result.Report.Diagnostics[0], unitstore.ErrDuplicateKey)
	assert.Equal(t, 1, result.Report.Generated)
	assert.Contains(t, result.Generated(t, "Same/Data/Content.g.cs"), "first")
}
