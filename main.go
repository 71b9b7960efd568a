// =============================================================================
// EDI Remit Analyzer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the EDI Remit Analyzer CLI. It initializes
// the Cobra CLI framework and delegates command execution to the cmd package.
//
// USAGE:
//   remit-analyzer analyze      - Extract CARC/RARC codes from EDI files
//   remit-analyzer parse        - Decode EDI files into segment records
//   remit-analyzer version      - Display the application version
//
// ARCHITECTURE:
//   cmd/           : CLI command definitions (Cobra)
//   internal/      : Core pipeline (tokenizer, schema, decoder, extractor,
//                    analyzer, report)
//   pkg/           : Shared utilities
//   schemas/       : Optional YAML segment-schema overrides
//
// =============================================================================

package main

import (
	"github.com/medredux/edi-remit-analyzer/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
