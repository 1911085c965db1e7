package batch

import (
	"context"
	"time"

	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"
	"faturas/fatura-csv/internal/parser"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is used when a non-positive worker count is configured.
const DefaultWorkers = 4

// FileResult is the outcome of parsing one input file.
type FileResult struct {
	File   string
	Result models.ParseResult
	Err    error
}

// OK reports whether the file was parsed without error.
func (r FileResult) OK() bool {
	return r.Err == nil
}

// Processor parses several invoice files in parallel with a bounded number
// of workers. Results keep the order of the input files.
type Processor struct {
	parser  parser.InvoiceParser
	workers int
	logger  logging.Logger
}

// NewProcessor creates a new processor
func NewProcessor(p parser.InvoiceParser, workers int, logger logging.Logger) *Processor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Processor{
		parser:  p,
		workers: workers,
		logger:  logger,
	}
}

// Workers returns the configured worker count.
func (p *Processor) Workers() int {
	return p.workers
}

// ProcessFiles parses every file. A failing file is recorded in its
// FileResult and does not stop the others; the returned error is only set
// when ctx is cancelled before all files were handled.
func (p *Processor) ProcessFiles(ctx context.Context, files []string) ([]FileResult, error) {
	results := make([]FileResult, len(files))
	start := time.Now()

	// Use sequential processing for a single file to avoid overhead
	if len(files) <= 1 || p.workers == 1 {
		for i, file := range files {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			results[i] = p.processFile(ctx, file)
		}
		p.logCompletion(results, start)
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.processFile(gctx, file)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	p.logCompletion(results, start)
	return results, nil
}

func (p *Processor) processFile(ctx context.Context, file string) FileResult {
	result, err := p.parser.ParseFile(ctx, file)
	if err != nil {
		p.logger.WithError(err).Warn("Failed to parse file", logging.F(logging.FieldFile, file))
	}
	return FileResult{File: file, Result: result, Err: err}
}

func (p *Processor) logCompletion(results []FileResult, start time.Time) {
	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	p.logger.Info("Batch processing completed",
		logging.F(logging.FieldCount, len(results)),
		logging.F(logging.FieldWorkers, p.workers),
		logging.F(logging.FieldStatus, map[string]int{"succeeded": len(results) - failed, "failed": failed}),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
}
