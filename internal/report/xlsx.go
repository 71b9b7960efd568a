// =============================================================================
// EDI Remit Analyzer - XLSX Report Writer
// =============================================================================
//
// Writes the flattened code findings into a workbook for reviewers who work
// in spreadsheets rather than piping JSON. Two sheets:
//
//   Codes   - one row per code entry, same columns as the CSV form
//   Summary - run ID and per-batch counts
//
// =============================================================================

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/medredux/edi-remit-analyzer/internal/analyzer"
)

const (
	codesSheet   = "Codes"
	summarySheet = "Summary"
)

// SaveXLSX writes the workbook report to a file.
func SaveXLSX(path string, batch analyzer.BatchResult, summary analyzer.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	// excelize creates a default "Sheet1"; rename it rather than leaving an
	// empty sheet behind.
	if err := f.SetSheetName("Sheet1", codesSheet); err != nil {
		return fmt.Errorf("failed to set up workbook: %w", err)
	}

	if err := writeCodesSheet(f, batch); err != nil {
		return err
	}
	if err := writeSummarySheet(f, batch, summary); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save XLSX output file: %w", err)
	}
	return nil
}

// writeCodesSheet fills the Codes sheet with the flattened rows.
func writeCodesSheet(f *excelize.File, batch analyzer.BatchResult) error {
	if err := setRow(f, codesSheet, 1, csvHeader); err != nil {
		return err
	}

	for i, row := range Flatten(batch) {
		values := []string{row.File, row.Segment, row.Type, row.Code, row.Amount, row.Qualifier}
		if err := setRow(f, codesSheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

// writeSummarySheet fills the Summary sheet with batch-level counts.
func writeSummarySheet(f *excelize.File, batch analyzer.BatchResult, summary analyzer.Summary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	carcCount, rarcCount := 0, 0
	for _, result := range batch {
		if result.Findings == nil {
			continue
		}
		carcCount += len(result.Findings.CARC)
		rarcCount += len(result.Findings.RARC)
	}

	lines := [][]string{
		{"run_id", summary.RunID},
		{"files_total", fmt.Sprintf("%d", summary.Total)},
		{"files_succeeded", fmt.Sprintf("%d", summary.Succeeded)},
		{"files_failed", fmt.Sprintf("%d", summary.Failed)},
		{"carc_codes", fmt.Sprintf("%d", carcCount)},
		{"rarc_codes", fmt.Sprintf("%d", rarcCount)},
		{"elapsed", summary.Elapsed.String()},
	}

	for i, line := range lines {
		if err := setRow(f, summarySheet, i+1, line); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes a row of string cells starting at column A.
func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to compute cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}
