// =============================================================================
// EDI Remit Analyzer - Analyze Command
// =============================================================================
//
// This file defines the 'analyze' command, the main command for extracting
// CARC/RARC codes from EDI files.
//
// COMMAND USAGE:
//   remit-analyzer analyze [flags]
//
// PROCESSING PIPELINE:
//   1. Load configuration (optional config.yaml + flag overrides)
//   2. Build the segment schema registry (built-ins + YAML overrides)
//   3. Resolve --path to a concrete list of input files
//   4. For each file (bounded worker pool):
//      a. Tokenize the content into segments
//      b. Decode segments against the schema registry
//      c. Extract adjustment and remark code candidates
//   5. Aggregate per-file results (or per-file errors) into one batch
//   6. Emit JSON (stdout or --output) and optionally CSV / XLSX
//
// EXIT BEHAVIOR:
//   Once the batch runs, the command exits 0 even if every file failed;
//   per-file failures are visible only inside the JSON payload. A caller
//   needing a hard failure signal must inspect the output content.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/medredux/edi-remit-analyzer/internal/analyzer"
	"github.com/medredux/edi-remit-analyzer/internal/config"
	"github.com/medredux/edi-remit-analyzer/internal/extractor"
	"github.com/medredux/edi-remit-analyzer/internal/report"
	"github.com/medredux/edi-remit-analyzer/internal/schema"
	"github.com/medredux/edi-remit-analyzer/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// pathPattern is the literal file path or glob pattern to analyze.
var pathPattern string

// outputPath receives the JSON payload; stdout when empty.
var outputPath string

// csvPath optionally receives the flattened CSV form.
var csvPath string

// xlsxPath optionally receives the workbook report.
var xlsxPath string

// segmentTerminator and elementDelimiter override the configured delimiters.
var segmentTerminator string
var elementDelimiter string

// concurrency overrides the configured worker-pool bound.
var concurrency int

// strictRemarks narrows the heuristic remark scan.
var strictRemarks bool

// =============================================================================
// ANALYZE COMMAND DEFINITION
// =============================================================================

// analyzeCmd represents the 'analyze' command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract CARC/RARC codes from EDI files",
	Long: `The analyze command resolves a file path or glob pattern, decodes each
matched EDI file into segment records, and extracts Claim Adjustment Reason
Code and Remittance Advice Remark Code candidates.

Each file is processed independently; a file that cannot be read is recorded
as an {"error": ...} entry in the batch result and processing continues for
the remaining files. The JSON payload is written to stdout unless --output is
given, so progress messages go to stderr.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd)
	},
}

// init registers the analyze command and its flags.
func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&pathPattern, "path", "",
		"File path or glob pattern for input EDI files (default from config)")
	analyzeCmd.Flags().StringVar(&outputPath, "output", "",
		"Write the JSON payload to this file or directory (stdout if omitted)")
	analyzeCmd.Flags().StringVar(&csvPath, "csv", "",
		"Also write the flattened CSV form to this path")
	analyzeCmd.Flags().StringVar(&xlsxPath, "xlsx", "",
		"Also write the workbook report to this path")
	analyzeCmd.Flags().StringVar(&segmentTerminator, "segment-terminator", "",
		"Segment terminator character (default from config, usually '~')")
	analyzeCmd.Flags().StringVar(&elementDelimiter, "element-delimiter", "",
		"Element delimiter character (default from config, usually '*')")
	analyzeCmd.Flags().IntVar(&concurrency, "concurrency", 0,
		"Maximum number of files processed concurrently (default from config)")
	analyzeCmd.Flags().BoolVar(&strictRemarks, "strict-remarks", false,
		"Only flag remark candidates shaped like official RARC identifiers")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runAnalyze orchestrates the batch pipeline and report writing.
func runAnalyze(cmd *cobra.Command) error {
	cfg, a, err := buildAnalyzer(cmd)
	if err != nil {
		return err
	}

	pattern := pathPattern
	if pattern == "" {
		pattern = cfg.DefaultPattern
	}

	batch, summary, err := a.AnalyzeBatch(pattern)
	if err != nil {
		return err
	}

	// JSON payload: stdout unless --output names a file or directory.
	if outputPath == "" {
		if err := report.WriteJSON(os.Stdout, batch); err != nil {
			return err
		}
	} else {
		target, err := resolveOutputTarget(outputPath, summary.RunID)
		if err != nil {
			return err
		}
		if err := report.SaveJSON(target, batch); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote JSON summary to %s\n", target)
	}

	if csvPath != "" {
		if err := report.SaveCSV(csvPath, batch); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote CSV to %s\n", csvPath)
	}

	if xlsxPath != "" {
		if err := report.SaveXLSX(xlsxPath, batch, summary); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote XLSX report to %s\n", xlsxPath)
	}

	fmt.Fprintf(os.Stderr, "Processed %d file(s): %d ok, %d failed in %s\n",
		summary.Total, summary.Succeeded, summary.Failed, summary.Elapsed)

	// Per-file failures live inside the payload; the batch itself succeeded.
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// buildAnalyzer loads the configuration, applies flag overrides, assembles
// the schema registry, and constructs the analyzer. Shared with the parse
// command.
func buildAnalyzer(cmd *cobra.Command) (*config.MainConfig, *analyzer.Analyzer, error) {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Flag overrides take precedence over the config file.
	if cmd.Flags().Changed("segment-terminator") {
		cfg.SegmentTerminator = segmentTerminator
	}
	if cmd.Flags().Changed("element-delimiter") {
		cfg.ElementDelimiter = elementDelimiter
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.MaxConcurrency = concurrency
	}
	if cmd.Flags().Changed("strict-remarks") {
		cfg.StrictRemarks = strictRemarks
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	reg := schema.NewRegistry()
	if err := reg.LoadOverrides(cfg.SchemasDir); err != nil {
		return nil, nil, fmt.Errorf("failed to load schema overrides: %w", err)
	}

	level := analyzer.ParseLevel(cfg.LogLevel)
	if verbose {
		level = analyzer.LevelDebug
	}

	a := analyzer.New(analyzer.Options{
		Terminator:  cfg.Terminator(),
		Delimiter:   cfg.Delimiter(),
		Registry:    reg,
		Extract:     extractor.Options{StrictRemarks: cfg.StrictRemarks},
		Concurrency: cfg.MaxConcurrency,
		Logger:      analyzer.NewStderrLogger(level),
	})

	return cfg, a, nil
}

// resolveOutputTarget turns an --output value into a concrete file path.
// When the value names an existing directory, a generated file name with the
// run ID and timestamp is placed inside it.
func resolveOutputTarget(out, runID string) (string, error) {
	if !utils.IsDir(out) {
		return out, nil
	}

	name := utils.GenerateOutputFileName("remit_{timestamp}_{run}.json",
		map[string]string{"run": runID})
	return filepath.Join(out, name), nil
}
