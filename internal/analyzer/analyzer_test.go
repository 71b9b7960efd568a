package analyzer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Batch Analyzer:
// - AnalyzeFile runs the full pipeline and returns findings
// - AnalyzeFile on an unreadable path returns an error result, not a panic
// - FileResult JSON is the findings payload or an {"error": ...} marker
// - AnalyzeBatch with a glob yields one entry per matched file
// - A broken path inside a batch becomes an error entry while the other
//   files still succeed
// - A pattern matching nothing yields an empty batch, not an error
// - A literal file path that glob does not expand still resolves
// - ParseBatch returns decoded segment stores instead of findings
// - Concurrent batches aggregate deterministically by path
// - Summary counts succeeded and failed files

const sampleRemit = "ISA*00*AUTH~ST*835*0001~" +
	"CAS*CO*45*100*150*50~" +
	"LQ*HE*N123~" +
	"REF*EA*M15~" +
	"SE*6*0001~"

func newTestAnalyzer() *Analyzer {
	return New(Options{Logger: NopLogger{}})
}

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleRemit), 0644))
	return path
}

func TestAnalyzeFile_Findings(t *testing.T) {
	path := writeSample(t, t.TempDir(), "remit.835")

	result := newTestAnalyzer().AnalyzeFile(path)

	require.NoError(t, result.Err)
	require.NotNil(t, result.Findings)
	assert.Len(t, result.Findings.CARC, 2)
	// LQ exact hit plus heuristic hits from REF ("EA", "M15").
	assert.Len(t, result.Findings.RARC, 3)
}

func TestAnalyzeFile_UnreadablePath(t *testing.T) {
	result := newTestAnalyzer().AnalyzeFile(filepath.Join(t.TempDir(), "missing.835"))

	require.Error(t, result.Err)
	assert.Nil(t, result.Findings)
}

func TestFileResult_JSONShapes(t *testing.T) {
	path := writeSample(t, t.TempDir(), "remit.835")
	a := newTestAnalyzer()

	good, err := json.Marshal(a.AnalyzeFile(path))
	require.NoError(t, err)
	assert.Contains(t, string(good), `"carc"`)
	assert.Contains(t, string(good), `"rarc"`)

	bad, err := json.Marshal(a.AnalyzeFile(path + ".nope"))
	require.NoError(t, err)

	var marker map[string]string
	require.NoError(t, json.Unmarshal(bad, &marker))
	assert.Contains(t, marker, "error")
}

func TestAnalyzeBatch_Glob(t *testing.T) {
	dir := t.TempDir()
	first := writeSample(t, dir, "a.835")
	second := writeSample(t, dir, "b.835")

	batch, summary, err := newTestAnalyzer().AnalyzeBatch(filepath.Join(dir, "*.835"))

	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.NoError(t, batch[first].Err)
	assert.NoError(t, batch[second].Err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.NotEmpty(t, summary.RunID)
}

func TestAnalyzeBatch_IsolatesBrokenFile(t *testing.T) {
	dir := t.TempDir()
	good := writeSample(t, dir, "good.835")

	// A dangling symlink matches the glob but cannot be read.
	broken := filepath.Join(dir, "broken.835")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.835"), broken))

	batch, summary, err := newTestAnalyzer().AnalyzeBatch(filepath.Join(dir, "*.835"))

	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.NoError(t, batch[good].Err)
	require.Error(t, batch[broken].Err)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
}

func TestAnalyzeBatch_EmptyMatch(t *testing.T) {
	batch, summary, err := newTestAnalyzer().AnalyzeBatch(filepath.Join(t.TempDir(), "*.835"))

	require.NoError(t, err)
	assert.Empty(t, batch)
	assert.Equal(t, 0, summary.Total)
}

func TestAnalyzeBatch_LiteralFilePath(t *testing.T) {
	path := writeSample(t, t.TempDir(), "remit.835")

	batch, _, err := newTestAnalyzer().AnalyzeBatch(path)

	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.NoError(t, batch[path].Err)
}

func TestParseBatch_SegmentStores(t *testing.T) {
	path := writeSample(t, t.TempDir(), "remit.835")

	batch, _, err := newTestAnalyzer().ParseBatch(path)

	require.NoError(t, err)
	result := batch[path]
	require.NoError(t, result.Err)
	require.NotNil(t, result.Segments)
	assert.Nil(t, result.Findings)
	assert.Len(t, result.Segments.Get("CAS"), 1)
}

func TestAnalyzeBatch_ConcurrentDeterministicByPath(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 16; i++ {
		writeSample(t, dir, fmt.Sprintf("f%02d.835", i))
	}

	a := New(Options{Concurrency: 8, Logger: NopLogger{}})

	batch, summary, err := a.AnalyzeBatch(filepath.Join(dir, "*.835"))

	require.NoError(t, err)
	assert.Len(t, batch, 16)
	assert.Equal(t, 16, summary.Succeeded)

	for path, result := range batch {
		assert.Equal(t, path, result.Path)
		require.NotNil(t, result.Findings)
		assert.Len(t, result.Findings.CARC, 2)
	}
}
