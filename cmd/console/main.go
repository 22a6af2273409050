// Command console is the interactive front-end: it asks which language to
// produce, translates one C file and saves the result.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"ctox/pkg/config"
	"ctox/pkg/ctxlog"
	"ctox/pkg/diag"
	"ctox/pkg/lower"
	"ctox/pkg/utils"
)

const menu = `Choose the target language:
  1. Python
  2. Java
Choice [1]: `

func main() {
	isTTY := term.IsTerminal(int(os.Stdin.Fd()))
	if err := run(os.Stdin, os.Stdout, os.Args[1:], isTTY); err != nil {
		log.Fatal(err)
	}
}

// parseChoice maps the menu answer onto a backend name. An empty answer
// picks Python.
func parseChoice(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "1", "python", "py":
		return "python", nil
	case "2", "java":
		return "java", nil
	default:
		return "", fmt.Errorf("invalid choice %q: enter 1 for Python or 2 for Java", strings.TrimSpace(s))
	}
}

func run(in io.Reader, out io.Writer, args []string, isTTY bool) error {
	fs := flag.NewFlagSet("console", flag.ContinueOnError)
	fs.SetOutput(out)
	cfgPath := fs.String("config", "", "path to a ctox.hcl configuration file")
	outDir := fs.String("out", "", "output directory (default from config, \"output\")")
	strict := fs.Bool("strict", false, "fail on the first unsupported construct")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: console [-config ctox.hcl] [-out dir] [-strict] file.c")
	}

	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(out, "text", "warn"))

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(ctx, *cfgPath); err != nil {
			return err
		}
	}
	if *strict {
		cfg.Mode = lower.Strict
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}

	fullPath, _, err := utils.GetPathInfo(fs.Arg(0))
	if err != nil {
		return err
	}
	source, err := os.ReadFile(fullPath)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	if isTTY {
		fmt.Fprint(out, menu)
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	lang, err := parseChoice(answer)
	if err != nil {
		return err
	}

	backend, err := cfg.Backend(lang)
	if err != nil {
		return err
	}
	res, err := lower.Translate(ctx, string(source), backend, cfg.Options())
	if err != nil {
		var derr *diag.Error
		if errors.As(err, &derr) {
			_ = diag.Format(out, diag.List{derr.Diagnostic}, fs.Arg(0))
		}
		return fmt.Errorf("translation failed: %w", err)
	}
	if err := diag.Format(out, res.Diagnostics, fs.Arg(0)); err != nil {
		return err
	}

	path := utils.OutputPath(cfg.OutputDir, cfg.OutputName, res.Extension)
	if err := utils.WriteOutput(path, res.Source); err != nil {
		return err
	}
	fmt.Fprintf(out, "Converted code saved to %s\n", path)
	return nil
}
