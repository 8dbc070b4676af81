package output

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/textembed/internal/engine"
)

func generate(t *testing.T, root, rel, content string) *engine.Unit {
	t.Helper()
	u, err := engine.Process(
		engine.Resource{Path: filepath.Join(root, filepath.FromSlash(rel)), Content: content},
		engine.RawOptions{engine.KeyRootNamespace: "Project", engine.KeyProjectRoot: root},
		nil,
	)
	require.NoError(t, err)
	return u
}

func TestWrite_CreatesFilesAtHintNames(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	out := filepath.Join(root, "Generated")
	units := []*engine.Unit{
		generate(t, root, "Default.txt", "Default Content"),
		generate(t, root, "Files/Text.txt", "text"),
	}

	// --- Act ---
	stats, err := NewWriter(out).Write(context.Background(), units)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, Stats{Written: 2}, stats)
	for _, u := range units {
		data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(u.HintName())))
		require.NoError(t, err)
		assert.Equal(t, u.Source(), string(data))
	}
	assert.FileExists(t, filepath.Join(out, "Project", "Default_txt", "Content.g.cs"))
	assert.FileExists(t, filepath.Join(out, "Project.Files", "Text_txt", "Content.g.cs"))
}

func TestWrite_SkipsUnchangedFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	out := filepath.Join(root, "Generated")
	w := NewWriter(out)
	u := generate(t, root, "A.txt", "same")
	_, err := w.Write(context.Background(), []*engine.Unit{u})
	require.NoError(t, err)

	path := filepath.Join(out, filepath.FromSlash(u.HintName()))
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	// --- Act ---
	stats, err := w.Write(context.Background(), []*engine.Unit{u})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, Stats{Unchanged: 1}, stats)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "unchanged file must not be rewritten")
}

func TestWrite_RewritesChangedContent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w := NewWriter(filepath.Join(root, "Generated"))
	_, err := w.Write(context.Background(), []*engine.Unit{generate(t, root, "A.txt", "v1")})
	require.NoError(t, err)

	u := generate(t, root, "A.txt", "v2")
	stats, err := w.Write(context.Background(), []*engine.Unit{u})

	require.NoError(t, err)
	assert.Equal(t, Stats{Written: 1}, stats)
	data, err := os.ReadFile(filepath.Join(w.Dir(), filepath.FromSlash(u.HintName())))
	require.NoError(t, err)
	assert.Contains(t, string(data), "v2")
}

func TestWrite_PrunesStaleGeneratedFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	out := filepath.Join(root, "Generated")
	w := NewWriter(out)
	gone := generate(t, root, "Old/Gone.txt", "bye")
	kept := generate(t, root, "Kept.txt", "hi")
	_, err := w.Write(context.Background(), []*engine.Unit{gone, kept})
	require.NoError(t, err)
	handWritten := filepath.Join(out, "notes.md")
	require.NoError(t, os.WriteFile(handWritten, []byte("mine"), 0o600))

	// --- Act ---
	stats, err := w.Write(context.Background(), []*engine.Unit{kept})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, Stats{Unchanged: 1, Pruned: 1}, stats)
	assert.NoFileExists(t, filepath.Join(out, filepath.FromSlash(gone.HintName())))
	assert.NoDirExists(t, filepath.Join(out, "Project.Old"))
	assert.FileExists(t, handWritten)
}

func TestWrite_NoUnitsPrunesEverything(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w := NewWriter(filepath.Join(root, "Generated"))
	_, err := w.Write(context.Background(), []*engine.Unit{generate(t, root, "A.txt", "a")})
	require.NoError(t, err)

	stats, err := w.Write(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pruned)
	entries, err := os.ReadDir(w.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
