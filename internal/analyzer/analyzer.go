// =============================================================================
// EDI Remit Analyzer - Batch Analyzer
// =============================================================================
//
// This module orchestrates the per-file pipeline (read -> tokenize ->
// decode -> extract) across a batch of input files and aggregates the
// outcomes into one batch result keyed by file path.
//
// FAILURE ISOLATION:
//   Any failure inside one file's pipeline — an unreadable path, an I/O
//   error mid-read — becomes that file's error marker in the batch result.
//   A bad file never aborts the batch and never corrupts another file's
//   entry. Malformed EDI content is not a failure at all: the decoder's
//   null-fallback tolerates it, so this path is reserved for true I/O
//   errors.
//
// CONCURRENCY:
//   Files are processed by a bounded worker pool. Each file's pipeline
//   touches only that file's bytes and its own transient segment store, so
//   the only synchronization point is the final aggregation join. Results
//   are keyed by path, which keeps the batch output deterministic
//   regardless of completion order.
//
// =============================================================================

package analyzer

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medredux/edi-remit-analyzer/internal/decoder"
	"github.com/medredux/edi-remit-analyzer/internal/extractor"
	"github.com/medredux/edi-remit-analyzer/internal/schema"
	"github.com/medredux/edi-remit-analyzer/internal/tokenizer"
	"github.com/medredux/edi-remit-analyzer/pkg/utils"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// FileResult is the outcome of one file's pipeline: extraction findings, a
// decode-only segment dump, or an error marker. Exactly one of Findings,
// Segments, and Err is set.
type FileResult struct {
	// Path is the input file the result belongs to.
	Path string

	// Findings holds the extracted codes (analyze mode).
	Findings *extractor.Findings

	// Segments holds the decoded segment store (parse mode).
	Segments *decoder.SegmentStore

	// Err is the per-file error, nil on success.
	Err error

	// Elapsed is the time spent on this file's pipeline.
	Elapsed time.Duration
}

// MarshalJSON renders either the payload or an {"error": ...} marker, the
// shape consumers key on per path.
func (r FileResult) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(map[string]string{"error": r.Err.Error()})
	}
	if r.Segments != nil {
		return json.Marshal(r.Segments)
	}
	return json.Marshal(r.Findings)
}

// BatchResult maps each input path to its FileResult. encoding/json emits
// map keys in sorted order, so serialization is deterministic.
type BatchResult map[string]FileResult

// Summary aggregates batch-level counts for progress reporting.
type Summary struct {
	// RunID uniquely identifies this batch invocation.
	RunID string

	// Total is the number of files the pattern resolved to.
	Total int

	// Succeeded is the number of files processed without error.
	Succeeded int

	// Failed is the number of files recorded as error markers.
	Failed int

	// Elapsed is the wall-clock time for the whole batch.
	Elapsed time.Duration
}

// =============================================================================
// ANALYZER
// =============================================================================

// Analyzer runs the decode-and-extract pipeline over batches of files.
type Analyzer struct {
	// terminator and delimiter configure the tokenizer.
	terminator rune
	delimiter  rune

	// registry resolves segment identifiers to field-naming rules. It is
	// read-only once the analyzer is constructed, so worker goroutines
	// share it safely.
	registry *schema.Registry

	// extractOpts tunes the code-extraction rules.
	extractOpts extractor.Options

	// concurrency bounds the worker pool. Always >= 1.
	concurrency int

	logger Logger
}

// Options configures a new Analyzer.
type Options struct {
	// Terminator is the segment terminator rune. Zero means the default '~'.
	Terminator rune

	// Delimiter is the element delimiter rune. Zero means the default '*'.
	Delimiter rune

	// Registry is the schema registry. Nil means the built-in registry.
	Registry *schema.Registry

	// Extract tunes the code-extraction rules.
	Extract extractor.Options

	// Concurrency bounds the worker pool. Values below 1 mean sequential.
	Concurrency int

	// Logger receives progress output. Nil means a stderr logger at info
	// level; progress never mixes into a stdout JSON payload.
	Logger Logger
}

// New creates an Analyzer.
func New(opts Options) *Analyzer {
	if opts.Terminator == 0 {
		opts.Terminator = tokenizer.DefaultSegmentTerminator
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = tokenizer.DefaultElementDelimiter
	}
	if opts.Registry == nil {
		opts.Registry = schema.NewRegistry()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Logger == nil {
		opts.Logger = NewStderrLogger(LevelInfo)
	}

	return &Analyzer{
		terminator:  opts.Terminator,
		delimiter:   opts.Delimiter,
		registry:    opts.Registry,
		extractOpts: opts.Extract,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
	}
}

// =============================================================================
// PER-FILE PIPELINE
// =============================================================================

// AnalyzeFile runs the full pipeline for a single file.
func (a *Analyzer) AnalyzeFile(path string) FileResult {
	start := time.Now()

	store, err := a.decodeFile(path)
	if err != nil {
		return FileResult{Path: path, Err: err, Elapsed: time.Since(start)}
	}

	findings := extractor.Extract(store, a.extractOpts)
	return FileResult{Path: path, Findings: &findings, Elapsed: time.Since(start)}
}

// ParseFile runs the decode-only pipeline for a single file, returning the
// segment store without code extraction.
func (a *Analyzer) ParseFile(path string) FileResult {
	start := time.Now()

	store, err := a.decodeFile(path)
	if err != nil {
		return FileResult{Path: path, Err: err, Elapsed: time.Since(start)}
	}

	return FileResult{Path: path, Segments: store, Elapsed: time.Since(start)}
}

// decodeFile reads and decodes one file into a fresh segment store.
func (a *Analyzer) decodeFile(path string) (*decoder.SegmentStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	segments := tokenizer.Tokenize(string(data), a.terminator, a.delimiter)
	return decoder.DecodeAll(segments, a.registry), nil
}

// =============================================================================
// BATCH PROCESSING
// =============================================================================

// AnalyzeBatch resolves a path or glob pattern and runs the full pipeline
// over every matched file. A pattern matching nothing yields an empty batch,
// not an error; only a syntactically invalid pattern fails.
func (a *Analyzer) AnalyzeBatch(pattern string) (BatchResult, Summary, error) {
	return a.runBatch(pattern, a.AnalyzeFile)
}

// ParseBatch is AnalyzeBatch without the extraction stage.
func (a *Analyzer) ParseBatch(pattern string) (BatchResult, Summary, error) {
	return a.runBatch(pattern, a.ParseFile)
}

// runBatch fans the per-file pipeline out over a bounded worker pool and
// joins the results into a path-keyed batch.
func (a *Analyzer) runBatch(pattern string, pipeline func(string) FileResult) (BatchResult, Summary, error) {
	start := time.Now()
	summary := Summary{RunID: uuid.NewString()}

	paths, err := utils.ResolveInputPaths(pattern)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to resolve input pattern %q: %w", pattern, err)
	}

	summary.Total = len(paths)
	a.logger.Info("run %s: %d file(s) matched %q", summary.RunID, len(paths), pattern)

	batch := make(BatchResult, len(paths))
	if len(paths) == 0 {
		summary.Elapsed = time.Since(start)
		return batch, summary, nil
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, a.concurrency)
	results := make(chan FileResult, len(paths))

	for _, path := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results <- pipeline(path)
		}(path)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		batch[result.Path] = result
		if result.Err != nil {
			summary.Failed++
			a.logger.Warn("%s: %v", result.Path, result.Err)
		} else {
			summary.Succeeded++
			a.logger.Debug("%s: ok in %s", result.Path, result.Elapsed)
		}
	}

	summary.Elapsed = time.Since(start)
	return batch, summary, nil
}
