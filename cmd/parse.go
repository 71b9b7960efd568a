// =============================================================================
// EDI Remit Analyzer - Parse Command
// =============================================================================
//
// This file defines the 'parse' command: the decode-only half of the
// pipeline. It resolves the same path pattern as 'analyze' but stops after
// segment decoding, emitting each file's segment store as JSON. Useful for
// inspecting how a file decodes before worrying about code extraction.
//
// COMMAND USAGE:
//   remit-analyzer parse --path "./input/*"
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/medredux/edi-remit-analyzer/internal/report"
)

// parseOutputPath receives the JSON payload; stdout when empty.
var parseOutputPath string

// parsePathPattern is the literal file path or glob pattern to decode.
var parsePathPattern string

// parseCmd represents the 'parse' command.
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Decode EDI files into segment records without code extraction",
	Long: `The parse command decodes each matched EDI file into its segment records
and emits them as JSON, keyed by file path: a map from segment identifier to
the ordered list of decoded occurrences. Unrecognized segment types decode to
generic positional fields ("field_0", "field_1", ...) so no data is lost.

Files that cannot be read are recorded as {"error": ...} entries and the
batch continues.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(cmd)
	},
}

// init registers the parse command and its flags.
func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parsePathPattern, "path", "",
		"File path or glob pattern for input EDI files (default from config)")
	parseCmd.Flags().StringVar(&parseOutputPath, "output", "",
		"Write the JSON payload to this file (stdout if omitted)")
}

// runParse runs the decode-only batch and writes the JSON payload.
func runParse(cmd *cobra.Command) error {
	cfg, a, err := buildAnalyzer(cmd)
	if err != nil {
		return err
	}

	pattern := parsePathPattern
	if pattern == "" {
		pattern = cfg.DefaultPattern
	}

	batch, summary, err := a.ParseBatch(pattern)
	if err != nil {
		return err
	}

	if parseOutputPath == "" {
		if err := report.WriteJSON(os.Stdout, batch); err != nil {
			return err
		}
	} else {
		if err := report.SaveJSON(parseOutputPath, batch); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote JSON summary to %s\n", parseOutputPath)
	}

	fmt.Fprintf(os.Stderr, "Decoded %d file(s): %d ok, %d failed in %s\n",
		summary.Total, summary.Succeeded, summary.Failed, summary.Elapsed)

	return nil
}
