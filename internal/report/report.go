// =============================================================================
// EDI Remit Analyzer - Report Writers
// =============================================================================
//
// This module serializes a batch result into its output forms:
//
//   JSON (always): map from file path to {"carc": [...], "rarc": [...]} for
//   successful files or {"error": "..."} for failed ones. Written to stdout
//   unless an output path is given.
//
//   CSV (optional): the flattened tabular form, one row per code entry with
//   header file,segment,type,code,amount,qualifier. The amount column is
//   blank for remark rows; the qualifier column carries the CAS group for
//   adjustment rows and the LQ qualifier for remark rows.
//
//   XLSX (optional): the same flattened rows in a workbook, plus a summary
//   sheet with per-run counts.
//
// Files that failed contribute their error marker to the JSON payload only;
// the flattened forms carry code rows exclusively.
//
// =============================================================================

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/medredux/edi-remit-analyzer/internal/analyzer"
	"github.com/medredux/edi-remit-analyzer/internal/extractor"
)

// =============================================================================
// FLATTENED ROWS
// =============================================================================

// Row is one flattened code finding for tabular output.
type Row struct {
	File      string
	Segment   string
	Type      string
	Code      string
	Amount    string
	Qualifier string
}

// csvHeader is the column order for CSV and XLSX output.
var csvHeader = []string{"file", "segment", "type", "code", "amount", "qualifier"}

// Flatten turns a batch result into tabular rows: files in sorted path
// order, adjustments before remarks within each file, entries in extraction
// order. Error-marked files contribute no rows.
func Flatten(batch analyzer.BatchResult) []Row {
	paths := make([]string, 0, len(batch))
	for path := range batch {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var rows []Row
	for _, path := range paths {
		result := batch[path]
		if result.Err != nil || result.Findings == nil {
			continue
		}
		for _, entry := range result.Findings.CARC {
			rows = append(rows, entryRow(path, entry))
		}
		for _, entry := range result.Findings.RARC {
			rows = append(rows, entryRow(path, entry))
		}
	}
	return rows
}

// entryRow flattens one code entry.
func entryRow(path string, entry extractor.CodeEntry) Row {
	row := Row{
		File:    path,
		Segment: entry.Segment,
		Type:    string(entry.Kind),
		Code:    entry.Code,
	}

	switch entry.Kind {
	case extractor.KindAdjustment:
		if entry.Amount != nil {
			row.Amount = *entry.Amount
		}
		row.Qualifier = entry.Group
	case extractor.KindRemark:
		row.Qualifier = entry.Qualifier
	}

	return row
}

// =============================================================================
// JSON OUTPUT
// =============================================================================

// WriteJSON writes the indented JSON payload to w.
func WriteJSON(w io.Writer, batch analyzer.BatchResult) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal batch result: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}

// SaveJSON writes the JSON payload to a file.
func SaveJSON(path string, batch analyzer.BatchResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON output file: %w", err)
	}
	defer file.Close()

	return WriteJSON(file, batch)
}

// =============================================================================
// CSV OUTPUT
// =============================================================================

// WriteCSV writes the flattened rows to w with the standard header.
func WriteCSV(w io.Writer, batch analyzer.BatchResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range Flatten(batch) {
		record := []string{row.File, row.Segment, row.Type, row.Code, row.Amount, row.Qualifier}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

// SaveCSV writes the flattened CSV form to a file.
func SaveCSV(path string, batch analyzer.BatchResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV output file: %w", err)
	}
	defer file.Close()

	return WriteCSV(file, batch)
}
