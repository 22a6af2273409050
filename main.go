package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"ctox/pkg/cli"
	"ctox/pkg/config"
	"ctox/pkg/ctxlog"
	"ctox/pkg/diag"
	"ctox/pkg/lower"
	"ctox/pkg/utils"
)

func main() {
	// Use a minimal logger until the flags are parsed.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fileResult is what one input produced. Exactly one of res and err is set.
type fileResult struct {
	path    string
	outPath string
	res     *lower.Result
	err     error
}

// run translates every input file. Files are processed concurrently but
// reported in command-line order.
func run(stdout, stderr io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse(args, stdout)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := ctxlog.New(stderr, opts.LogFormat, opts.LogLevel)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	cfg := config.Default()
	if opts.Config != "" {
		if cfg, err = config.Load(ctx, opts.Config); err != nil {
			return &cli.ExitError{Code: 1, Message: err.Error()}
		}
	}
	if opts.Strict {
		cfg.Mode = lower.Strict
	}
	if opts.OutDir != "" {
		cfg.OutputDir = opts.OutDir
	}

	backend, err := cfg.Backend(opts.Lang)
	if err != nil {
		return cli.Usage("%s", err.Error())
	}
	logger.Debug("Translator configured.", "backend", backend.Name(), "mode", cfg.Mode, "files", len(opts.Files))

	names, err := outputNames(opts.Files, cfg.OutputName)
	if err != nil && !opts.Stdout {
		return err
	}

	results := make([]fileResult, len(opts.Files))
	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, path := range opts.Files {
		g.Go(func() error {
			results[i] = translateFile(ctx, path, names[i], backend, cfg, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !report(stdout, stderr, r, opts.Stdout) {
			failed++
		}
	}

	switch {
	case failed == 0:
		return nil
	case len(results) == 1:
		return &cli.ExitError{Code: 1, Message: "translation failed"}
	default:
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("%d of %d files failed", failed, len(results))}
	}
}

// outputNames picks the output file name for each input: the configured
// name for a single file, the file stem otherwise. Two inputs that would
// write the same file are a usage error.
func outputNames(files []string, single string) ([]string, error) {
	names := make([]string, len(files))
	if len(files) == 1 {
		names[0] = single
		return names, nil
	}

	seen := make(map[string]string, len(files))
	for i, path := range files {
		names[i] = utils.Stem(path)
		if prev, ok := seen[names[i]]; ok {
			return names, cli.Usage("%s and %s would both be written as %q; translate them separately or rename one", prev, path, names[i])
		}
		seen[names[i]] = path
	}
	return names, nil
}

func translateFile(ctx context.Context, path, name string, b lower.Backend, cfg *config.Config, opts *cli.Options) fileResult {
	r := fileResult{path: path}
	src, err := os.ReadFile(path)
	if err != nil {
		r.err = fmt.Errorf("failed to read source file: %w", err)
		return r
	}

	res, err := lower.Translate(ctx, string(src), b, cfg.Options())
	if err != nil {
		r.err = err
		return r
	}
	r.res = res
	if opts.Stdout {
		return r
	}

	r.outPath = utils.OutputPath(cfg.OutputDir, name, res.Extension)
	if err := utils.WriteOutput(r.outPath, res.Source); err != nil {
		r.err = err
		r.res = nil
	}
	return r
}

// report prints what happened to one file and reports whether it succeeded.
func report(stdout, stderr io.Writer, r fileResult, toStdout bool) bool {
	format := diag.Format
	if isTerminal(stderr) {
		format = diag.FormatColor
	}

	if r.err != nil {
		var derr *diag.Error
		if errors.As(r.err, &derr) {
			_ = format(stderr, diag.List{derr.Diagnostic}, r.path)
		} else {
			fmt.Fprintf(stderr, "%s: %v\n", r.path, r.err)
		}
		return false
	}

	_ = format(stderr, r.res.Diagnostics, r.path)
	if toStdout {
		fmt.Fprintln(stdout, r.res.Source)
		return true
	}
	fmt.Fprintf(stdout, "translated %s -> %s (%s)\n", r.path, r.outPath, diag.Summary(r.res.Diagnostics))
	return true
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
