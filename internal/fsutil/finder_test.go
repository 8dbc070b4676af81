package fsutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/textembed/internal/config"
	"github.com/vk/textembed/internal/engine"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		pattern, name string
		want          bool
	}{
		{"*.txt", "a.txt", true},
		{"*.txt", "dir/a.txt", false},
		{"**/*.txt", "a.txt", true},
		{"**/*.txt", "dir/sub/a.txt", true},
		{"Files/**", "Files/a/b/c.md", true},
		{"Files/**", "Other/a.md", false},
		{"Files/**/Data.json", "Files/Data.json", true},
		{"Files/**/Data.json", "Files/x/y/Data.json", true},
		{"Files/?.txt", "Files/a.txt", true},
		{"Files/[ab].txt", "Files/c.txt", false},
		{"a/b", "a/b/c", false},
	}

	for _, tc := range testCases {
		got, err := Match(tc.pattern, tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "pattern %q name %q", tc.pattern, tc.name)
	}
}

func TestValidatePattern(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidatePattern("Files/**/*.txt"))
	assert.Error(t, ValidatePattern("Files/[a"))
}

func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		p := filepath.Join(root, filepath.FromSlash(r))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(r), 0o600))
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	touch(t, root,
		"Files/Text.txt",
		"Files/Ignored/Ignored.txt",
		"Files/Ignored/Unignored.txt",
		"Files/Data.json",
		"Generated/Project/Old.g.cs",
		"Generated/stale.txt",
		"README.md",
	)
	model := &config.Model{
		BaseDir: root,
		Output:  filepath.Join(root, "Generated"),
		Texts: []*config.TextGroup{
			{Name: "texts", Include: []string{"**/*.txt"}},
			{Name: "ignored", Include: []string{"Files/Ignored/**"}, Metadata: engine.RawOptions{engine.KeyEmbed: "false"}},
			{Name: "unignored", Include: []string{"Files/Ignored/Unignored.txt"}, Metadata: engine.RawOptions{engine.KeyEmbed: "true"}},
			{Name: "json", Include: []string{"Files/*.json"}, Exclude: []string{"**/Data.json"}},
		},
	}

	// --- Act ---
	resources, err := Discover(context.Background(), model)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []Resource{
		{Path: filepath.Join(root, "Files", "Ignored", "Ignored.txt"), Metadata: engine.RawOptions{engine.KeyEmbed: "false"}},
		{Path: filepath.Join(root, "Files", "Ignored", "Unignored.txt"), Metadata: engine.RawOptions{engine.KeyEmbed: "true"}},
		{Path: filepath.Join(root, "Files", "Text.txt"), Metadata: engine.RawOptions{}},
	}, resources)
}

func TestDiscover_InvalidPattern(t *testing.T) {
	t.Parallel()

	model := &config.Model{
		BaseDir: t.TempDir(),
		Texts:   []*config.TextGroup{{Name: "bad", Include: []string{"[a"}}},
	}

	_, err := Discover(context.Background(), model)

	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid pattern")
}

func TestDiscover_MissingBaseDir(t *testing.T) {
	t.Parallel()

	model := &config.Model{
		BaseDir: filepath.Join(t.TempDir(), "missing"),
		Texts:   []*config.TextGroup{{Name: "all", Include: []string{"**"}}},
	}

	_, err := Discover(context.Background(), model)
	require.Error(t, err)
}
