// =============================================================================
// EDI Remit Analyzer - File Manager Utility
// =============================================================================
//
// This module provides the file-side plumbing for the analyzer:
//   - Input path resolution (literal path or glob pattern)
//   - Output file naming with placeholder expansion
//   - Directory management helpers
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// INPUT RESOLUTION
// =============================================================================

// ResolveInputPaths expands a literal file path or glob pattern into a
// sorted list of regular files.
//
// RESOLUTION RULES:
//   - The pattern is expanded with filepath.Glob; directories are dropped
//     from the matches.
//   - If the pattern matches nothing but is itself an existing file path
//     (a literal name containing glob metacharacters, say), it resolves to
//     that single file.
//   - A pattern matching nothing at all resolves to an empty list, not an
//     error. Only a syntactically malformed pattern fails.
//
// Results are sorted so batch output is order-stable across runs.
func ResolveInputPaths(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}

	var files []string
	for _, match := range matches {
		// Directories are dropped; paths that cannot be stat'ed (broken
		// symlinks, permission walls) stay in so the per-file pipeline can
		// report them as error entries instead of silently skipping them.
		if info, err := os.Stat(match); err == nil && info.IsDir() {
			continue
		}
		files = append(files, match)
	}

	// A literal path that glob did not expand still counts as a single-file
	// match when it exists.
	if len(files) == 0 {
		if info, err := os.Stat(pattern); err == nil && !info.IsDir() {
			files = append(files, pattern)
		}
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// GenerateOutputFileName builds an output file name from a format string
// with placeholders.
//
// SUPPORTED PLACEHOLDERS:
//   {uuid}      - A random UUID
//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//   {date}      - Current date (YYYYMMDD)
//   {time}      - Current time (HHMMSS)
//
// Additional placeholders come from params, e.g. {"run": "<run id>"}
// enables {run}.
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return result
}

// =============================================================================
// DIRECTORY HELPERS
// =============================================================================

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
