package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/textembed/internal/testutil"
)

// Test for: expressions can reference manifest_dir and mix value types
func TestHCLFeatures_ExpressionsAndTypes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"textembed.hcl": `
output = "obj/gen"

global {
  root_namespace = "My.${"App"}"
  project_root   = manifest_dir
}

texts "docs" {
  include            = ["docs/**/*.md"]
  exclude            = ["docs/drafts/**"]
  preview_line_limit = 1 + 1
  is_constant        = true
  preview_style      = "entities"
}
`,
		"docs/Intro.md":        "# Intro\n<b>one</b>\nthree",
		"docs/deep/Deep.md":    "deep",
		"docs/drafts/Draft.md": "draft",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, "textembed.hcl", files)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, 2, result.Report.Generated)

	intro := result.Generated(t, "My.App.docs/Intro_md/Content.g.cs")
	assert.Contains(t, intro, "namespace My.App.docs;")
	assert.Contains(t, intro, "public const string Content = ")
	assert.Contains(t, intro, "    /// &lt;b&gt;one&lt;/b&gt;\n")
	assert.Contains(t, intro, "[1 more lines (3 total)]")
	assert.NotContains(t, intro, "CDATA")

	result.Generated(t, "My.App.docs.deep/Deep_md/Content.g.cs")
	testutil.AssertNotGenerated(t, result, "My.App.docs.drafts/Draft_md/Content.g.cs")
}
