package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	syntree "github.com/alnah/go-syntree"
	"github.com/alnah/go-syntree/internal/config"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadCSS      = errors.New("failed to read CSS file")
	ErrServiceInit  = errors.New("failed to initialize converter")
	ErrFailedBlocks = errors.New("syntax trees failed to render")
)

// firstHeading matches a level-one ATX heading.
var firstHeading = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t#]*$`)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	PDFPath    string
	Blocks     int
	Failed     int
	Err        error
	Duration   time.Duration
}

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	css    string
	title  string
	pdf    bool
	strict bool
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadSettings(flags.common, flags.renderer)
	if err != nil {
		return err
	}
	mergeConvertFlags(flags, cfg)

	inputPath, err := resolveInputPath(args)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, cfg.Output.DefaultDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	css, err := readCSS(flags.css)
	if err != nil {
		return err
	}

	renderer, err := buildRenderer(cfg, env)
	if err != nil {
		return err
	}

	convOpts := []syntree.ConverterOption{
		syntree.WithRenderer(renderer),
		syntree.WithWorkers(cfg.Workers),
		syntree.WithStyle(cfg.Style),
		syntree.WithConverterLogger(env.Logger),
	}
	if len(flags.languages) > 0 {
		convOpts = append(convOpts, syntree.WithLanguages(flags.languages...))
	}

	// Fail fast on a bad style before spawning workers.
	probe, err := syntree.NewConverter(convOpts...)
	if err != nil {
		return err
	}

	size := min(syntree.ResolvePoolSize(cfg.Workers), len(files))
	env.Logger.Debug("starting conversion", "files", len(files), "workers", size)

	first := true
	var firstMu sync.Mutex
	pool := &poolAdapter{pool: syntree.NewConverterPool(size, func() (*syntree.Converter, error) {
		firstMu.Lock()
		defer firstMu.Unlock()
		if first {
			first = false
			return probe, nil
		}
		return syntree.NewConverter(convOpts...)
	})}
	defer func() {
		if err := pool.pool.Close(); err != nil {
			env.Logger.Warn("closing converters", "error", err)
		}
	}()

	params := &conversionParams{
		css:    css,
		title:  flags.title,
		pdf:    cfg.Output.PDF,
		strict: flags.strict,
	}

	results := convertBatch(ctx, pool, files, params)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed: %w", failedCount, firstError(results))
	}
	return nil
}

// mergeConvertFlags merges convert flags into config. CLI values override config values.
func mergeConvertFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.style != "" {
		cfg.Style = flags.style
	}
	if flags.noStyle {
		cfg.Style = ""
	}
	if flags.pdf {
		cfg.Output.PDF = true
	}
}

// resolveInputPath determines the input path from args.
func resolveInputPath(args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrNoInput
	}
	return args[0], nil
}

// readCSS reads the extra CSS file, if any.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

// extractFirstHeading returns the text of the first level-one heading.
func extractFirstHeading(markdown string) string {
	m := firstHeading.FindStringSubmatch(markdown)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %w", ErrServiceInit, err),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	title := params.title
	if title == "" {
		title = extractFirstHeading(string(content))
	}

	sourceDir, err := filepath.Abs(filepath.Dir(f.InputPath))
	if err != nil {
		sourceDir = filepath.Dir(f.InputPath)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err))
	}

	res, err := conv.Convert(ctx, syntree.Input{
		Markdown:  string(content),
		CSS:       params.css,
		Title:     title,
		SourceDir: sourceDir,
		PDF:       params.pdf,
	})
	if err != nil {
		return fail(err)
	}
	result.Blocks, result.Failed = res.Blocks, res.Failed

	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(f.OutputPath, res.HTML, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	if params.pdf {
		result.PDFPath = pdfOutputPath(f.OutputPath)
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(result.PDFPath, res.PDF, filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
	}

	if params.strict && res.Failed > 0 {
		return fail(fmt.Errorf("%w: %d of %d", ErrFailedBlocks, res.Failed, res.Blocks))
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded   int
	Failed      int
	FailedTrees int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		summary.FailedTrees += r.Failed
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// firstError returns the first conversion error, for exit code mapping.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// printResultsWithWriter outputs conversion results and returns the
// number of failed files.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if r.Failed > 0 {
			env.Logger.Warn("trees failed to render", "file", r.InputPath, "failed", r.Failed, "total", r.Blocks)
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d trees, %v)\n",
				r.InputPath, r.OutputPath, r.Blocks, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		if r.PDFPath != "" {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.PDFPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
