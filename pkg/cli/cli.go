// Package cli parses the batch translator's command line and carries the
// process exit code back to main.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ExitError is an error with the exit code the process should use.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Usage is 2, the code for bad invocations.
func Usage(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Options holds the parsed command line.
type Options struct {
	Files     []string
	Lang      string
	Config    string
	Strict    bool
	OutDir    string
	Stdout    bool
	Workers   int
	LogLevel  string
	LogFormat string
}

// Parse processes args. It returns the options, whether the program should
// exit cleanly without doing anything (help was requested), or an ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("ctox", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ctox - translate a small C subset into Python or Java source.

Usage:
  ctox [options] FILE.c [FILE.c ...]

Options:
`)
		flagSet.PrintDefaults()
	}

	langFlag := flagSet.String("lang", "python", "Target language. Options: 'python' or 'java'.")
	configFlag := flagSet.String("config", "", "Path to a ctox.hcl configuration file.")
	strictFlag := flagSet.Bool("strict", false, "Fail on the first unsupported construct or type mapping miss.")
	outFlag := flagSet.String("out", "", "Output directory. Overrides the config file.")
	stdoutFlag := flagSet.Bool("stdout", false, "Print translated source to stdout instead of writing files.")
	workersFlag := flagSet.Int("workers", 4, "Number of files translated concurrently.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, Usage("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, false, Usage("no input file given")
	}

	lang := strings.ToLower(*langFlag)
	switch lang {
	case "python", "py", "java":
	default:
		return nil, false, Usage("invalid lang %q: must be 'python' or 'java'", *langFlag)
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, Usage("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, Usage("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if *workersFlag < 1 {
		return nil, false, Usage("invalid workers: must be at least 1")
	}

	opts := &Options{
		Files:     flagSet.Args(),
		Lang:      lang,
		Config:    *configFlag,
		Strict:    *strictFlag,
		OutDir:    *outFlag,
		Stdout:    *stdoutFlag,
		Workers:   *workersFlag,
		LogLevel:  logLevel,
		LogFormat: logFormat,
	}
	slog.Debug("CLI parser finished successfully.", "options", opts)
	return opts, false, nil
}
