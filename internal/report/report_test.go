package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/medredux/edi-remit-analyzer/internal/analyzer"
	"github.com/medredux/edi-remit-analyzer/internal/extractor"
)

// Test Plan for Report Writers:
// - JSON payload maps paths to findings or {"error": ...} markers
// - Flatten emits adjustment rows before remark rows, files in path order,
//   and skips error-marked files
// - CSV output carries the standard header; amount is blank for remark rows
// - The qualifier column carries the CAS group for CARC rows and the LQ
//   qualifier for RARC rows
// - XLSX output writes the same rows plus a summary sheet

func amount(s string) *string { return &s }

func sampleBatch() analyzer.BatchResult {
	findings := extractor.Findings{
		CARC: []extractor.CodeEntry{
			{
				Kind:    extractor.KindAdjustment,
				Segment: "CAS",
				Group:   "CO",
				Code:    "45",
				Amount:  amount("100"),
				Raw:     []string{"CAS", "CO", "45", "100"},
			},
		},
		RARC: []extractor.CodeEntry{
			{
				Kind:      extractor.KindRemark,
				Segment:   "LQ",
				Qualifier: "HE",
				Code:      "N123",
				Raw:       []string{"LQ", "HE", "N123"},
			},
			{
				Kind:    extractor.KindRemark,
				Segment: "REF",
				Code:    "M15",
				Raw:     []string{"REF", "EA", "M15"},
			},
		},
	}

	return analyzer.BatchResult{
		"input/a.835": {Path: "input/a.835", Findings: &findings},
		"input/b.835": {Path: "input/b.835", Err: errors.New("failed to read file: no such file")},
	}
}

func TestWriteJSON_Payload(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSON(&buf, sampleBatch()))

	out := buf.String()
	assert.Contains(t, out, `"input/a.835"`)
	assert.Contains(t, out, `"carc"`)
	assert.Contains(t, out, `"rarc"`)
	assert.Contains(t, out, `"code": "45"`)
	assert.Contains(t, out, `"error": "failed to read file: no such file"`)
}

func TestFlatten_RowsAndOrdering(t *testing.T) {
	rows := Flatten(sampleBatch())

	// The error-marked file contributes nothing; adjustments come first.
	require.Len(t, rows, 3)
	assert.Equal(t, Row{
		File: "input/a.835", Segment: "CAS", Type: "CARC",
		Code: "45", Amount: "100", Qualifier: "CO",
	}, rows[0])
	assert.Equal(t, "N123", rows[1].Code)
	assert.Equal(t, "HE", rows[1].Qualifier)
	assert.Equal(t, "M15", rows[2].Code)
}

func TestWriteCSV_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, sampleBatch()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4)
	assert.Equal(t, []string{"file", "segment", "type", "code", "amount", "qualifier"}, records[0])
	assert.Equal(t, []string{"input/a.835", "CAS", "CARC", "45", "100", "CO"}, records[1])
	// Remark rows keep the amount column blank.
	assert.Equal(t, []string{"input/a.835", "LQ", "RARC", "N123", "", "HE"}, records[2])
	assert.Equal(t, []string{"input/a.835", "REF", "RARC", "M15", "", ""}, records[3])
}

func TestSaveCSV_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.csv")

	require.NoError(t, SaveCSV(path, sampleBatch()))

	assert.FileExists(t, path)
}

func TestSaveXLSX_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.xlsx")
	summary := analyzer.Summary{RunID: "run-1", Total: 2, Succeeded: 1, Failed: 1}

	require.NoError(t, SaveXLSX(path, sampleBatch(), summary))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(codesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"file", "segment", "type", "code", "amount", "qualifier"}, rows[0])
	assert.Equal(t, "45", rows[1][3])

	summaryRows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.NotEmpty(t, summaryRows)
	assert.Equal(t, []string{"run_id", "run-1"}, summaryRows[0])
}
