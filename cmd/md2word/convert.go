package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alnah/go-md2word"
	"github.com/alnah/go-md2word/internal/config"
	"github.com/alnah/go-md2word/internal/fileutil"
	"github.com/alnah/go-md2word/internal/hints"
)

// stdinArg selects standard input explicitly.
const stdinArg = "-"

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positionalArgs, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positionalArgs) > 1 {
		return fmt.Errorf("%w: convert takes at most one input, got %d", ErrUsage, len(positionalArgs))
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, envCfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeRenderFlags(&flags.render, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}

	if len(positionalArgs) == 0 || positionalArgs[0] == stdinArg {
		return convertStdin(ctx, conv, flags, cfg, env)
	}

	ext := "html"
	if flags.text {
		ext = "txt"
	}

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	files, err := discoverFiles(positionalArgs[0], outputDir, ext)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, positionalArgs[0])
	}

	workers = resolveWorkers(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d file(s) with %d worker(s)\n", len(files), workers)
	}

	params := &conversionParams{
		text:          flags.text,
		maxInputBytes: cfg.Render.MaxInputBytes,
	}
	results := convertBatch(ctx, conv, files, params, workers)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		if failedCount == len(results) {
			// Surface the cause so the exit code reflects it.
			return fmt.Errorf("%d conversion(s) failed: %w", failedCount, results[0].Err)
		}
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// convertStdin converts standard input and writes the fragment (or text) to
// stdout, or to the -o file as a document.
func convertStdin(ctx context.Context, conv CLIConverter, flags *convertFlags, cfg *config.Config, env *Environment) error {
	// Read one byte past the limit so the converter reports oversize input.
	data, err := io.ReadAll(io.LimitReader(env.Stdin, int64(cfg.Render.MaxInputBytes)+1))
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}

	res, err := conv.Convert(ctx, md2word.Input{Markdown: string(data)})
	if err != nil {
		if errors.Is(err, md2word.ErrInputTooLarge) {
			return fmt.Errorf("%w%s", err, hints.ForInputTooLarge(cfg.Render.MaxInputBytes))
		}
		return err
	}

	if flags.output == "" {
		out := res.HTML
		if flags.text {
			out = res.Text
		}
		if out == "" {
			return nil
		}
		_, err := fmt.Fprintln(env.Stdout, out)
		return err
	}

	title := documentTitle(flags.output)
	if err := fileutil.WriteFileAtomic(flags.output, []byte(renderOutput(res, flags.text, title)), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stdout, "stdin -> %s (%d paragraphs)\n", filepath.Clean(flags.output), res.Paragraphs)
	} else if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}
