package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for File Manager:
// - ResolveInputPaths expands a glob into sorted regular files
// - Directories are excluded from matches
// - A pattern matching nothing resolves to an empty list without error
// - A literal existing file path resolves to itself
// - A malformed pattern is an error
// - GenerateOutputFileName expands built-in and custom placeholders
// - EnsureDir / FileExists / IsDir behave on fresh paths

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestResolveInputPaths_GlobSorted(t *testing.T) {
	dir := t.TempDir()
	b := touch(t, dir, "b.835")
	a := touch(t, dir, "a.835")
	touch(t, dir, "notes.txt")

	files, err := ResolveInputPaths(filepath.Join(dir, "*.835"))

	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestResolveInputPaths_ExcludesDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.835"), 0755))
	file := touch(t, dir, "a.835")

	files, err := ResolveInputPaths(filepath.Join(dir, "*.835"))

	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)
}

func TestResolveInputPaths_NoMatches(t *testing.T) {
	files, err := ResolveInputPaths(filepath.Join(t.TempDir(), "*.835"))

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestResolveInputPaths_LiteralFile(t *testing.T) {
	path := touch(t, t.TempDir(), "claim[1].835")

	// The brackets make this a character class for glob, so the pattern
	// matches nothing; the literal-path fallback must still find the file.
	files, err := ResolveInputPaths(path)

	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestResolveInputPaths_BadPattern(t *testing.T) {
	_, err := ResolveInputPaths("[")

	assert.Error(t, err)
}

func TestGenerateOutputFileName_Placeholders(t *testing.T) {
	name := GenerateOutputFileName("remit_{run}.json", map[string]string{"run": "abc123"})
	assert.Equal(t, "remit_abc123.json", name)

	stamped := GenerateOutputFileName("{date}_{time}.json", nil)
	assert.Regexp(t, `^\d{8}_\d{6}\.json$`, stamped)

	unique := GenerateOutputFileName("{uuid}.json", nil)
	assert.Regexp(t, `^[0-9a-f-]{36}\.json$`, unique)
}

func TestDirectoryHelpers(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	require.NoError(t, EnsureDir(dir))
	assert.True(t, IsDir(dir))
	assert.False(t, FileExists(dir))

	file := touch(t, dir, "f.json")
	assert.True(t, FileExists(file))
	assert.False(t, IsDir(file))
}
