// Command cdump prints every stage of the translation pipeline for one C
// file: stripped directives, tokens, the syntax tree, the translated
// source and the diagnostics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"ctox/pkg/compiler"
	"ctox/pkg/ctxlog"
	"ctox/pkg/diag"
	"ctox/pkg/lower"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var stages = []string{"directives", "tokens", "ast", "output", "diagnostics"}

func run(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("cdump", flag.ContinueOnError)
	fs.SetOutput(out)
	lang := fs.String("lang", "python", "target language: python or java")
	only := fs.String("stage", "", "print only this stage: "+strings.Join(stages, ", "))
	strict := fs.Bool("strict", false, "lower in strict mode")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: cdump [-lang python|java] [-stage name] [-strict] file.c")
	}
	if *only != "" && !contains(stages, *only) {
		return fmt.Errorf("unknown stage %q", *only)
	}
	show := func(stage string) bool { return *only == "" || *only == stage }

	filename := fs.Arg(0)
	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read input file %q: %w", filename, err)
	}

	parsed, err := compiler.ParseSource(string(src))
	if err != nil {
		var derr *diag.Error
		if errors.As(err, &derr) {
			_ = diag.Format(out, diag.List{derr.Diagnostic}, filename)
		}
		return fmt.Errorf("parse failed: %w", err)
	}

	if show("directives") {
		fmt.Fprintln(out, "== Directives")
		for _, d := range parsed.Directives {
			fmt.Fprintf(out, "  %4d  %s\n", d.Line, d.Text)
		}
		fmt.Fprintln(out)
	}

	if show("tokens") {
		fmt.Fprintln(out, "== Tokens")
		for _, t := range parsed.Tokens {
			fmt.Fprintln(out, " ", t)
		}
		fmt.Fprintln(out)
	}

	if show("ast") {
		fmt.Fprintln(out, "== AST")
		d := &dumper{w: out, depth: 1}
		for _, decl := range parsed.Program.Decls {
			if err := decl.Accept(d); err != nil {
				return err
			}
		}
		fmt.Fprintln(out)
	}

	if !show("output") && !show("diagnostics") {
		return nil
	}

	backend, err := lower.BackendFor(*lang)
	if err != nil {
		return err
	}
	opts := lower.Options{}
	if *strict {
		opts.Mode = lower.Strict
	}
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.Discard())
	res, err := lower.Convert(ctx, parsed.Program, backend, opts)
	if err != nil {
		return fmt.Errorf("lowering failed: %w", err)
	}
	diags := append(lower.DirectiveNotes(parsed.Directives), res.Diagnostics...)

	if show("output") {
		fmt.Fprintf(out, "== Output (%s)\n", backend.Name())
		fmt.Fprintln(out, res.Source)
		fmt.Fprintln(out)
	}
	if show("diagnostics") {
		fmt.Fprintf(out, "== Diagnostics (%s)\n", diag.Summary(diags))
		if err := diag.Format(out, diags, filename); err != nil {
			return err
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
