// =============================================================================
// EDI Remit Analyzer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (remit-analyzer)
//   ├── analyzeCmd (remit-analyzer analyze)
//   ├── parseCmd   (remit-analyzer parse)
//   └── versionCmd (remit-analyzer version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose progress output when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "remit-analyzer",
	Short: "EDI Remit Analyzer - Extract CARC/RARC codes from EDI healthcare files",
	Long: `EDI Remit Analyzer decodes delimiter-terminated EDI healthcare transaction
files (835 remittances, 837 claims and their acknowledgements) into structured
segment records, then mines those records for Claim Adjustment Reason Codes
(CARC) and Remittance Advice Remark Codes (RARC) — the standardized codes that
explain why a claim was paid, reduced, or denied.

Key Features:
  - Schema-driven segment decoding with a lossless fallback for unknown types
  - Exact CAS pairing and heuristic remark-code scanning
  - Per-file error isolation: one bad file never aborts the batch
  - JSON, CSV, and XLSX report output
  - Extensible segment schemas via YAML override files

Example Usage:
  remit-analyzer analyze --path "./input/*.edi"        # JSON to stdout
  remit-analyzer analyze --path claims.835 --csv out.csv
  remit-analyzer parse --path "./input/*"              # decoded segments only`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the global flags.
func init() {
	// --config flag: configuration is optional; defaults apply when the
	// file does not exist.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (optional)",
	)

	// --verbose flag: enables per-file debug output on stderr.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
