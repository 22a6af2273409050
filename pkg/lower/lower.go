// Package lower turns a parsed C program into Python or Java source text.
//
// Convert walks the tree once, in source order, and asks a Backend how to
// spell each construct. Anything without a rule is reported as a
// diagnostic: Strict mode stops at the first error or warning, Lenient
// mode emits a placeholder and keeps going.
package lower

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ctox/pkg/compiler"
	"ctox/pkg/ctxlog"
	"ctox/pkg/diag"
)

// Mode selects how recoverable findings are treated.
type Mode int

const (
	Lenient Mode = iota
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// ParseMode maps "strict" or "lenient" onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	default:
		return Lenient, fmt.Errorf("unknown mode %q (want strict or lenient)", s)
	}
}

// DefaultIndent is four spaces.
const DefaultIndent = "    "

// Options tune one lowering pass.
type Options struct {
	Mode   Mode
	Indent string // per-depth indentation; empty means DefaultIndent
}

// Result is the output of a successful pass.
type Result struct {
	Source      string
	Extension   string
	Diagnostics diag.List
}

// Convert lowers prog with backend b. The tree is not modified. In Strict
// mode the first error or warning is returned as a *diag.Error.
func Convert(ctx context.Context, prog *compiler.Program, b Backend, opts Options) (*Result, error) {
	return convert(ctx, prog, b, opts, nil)
}

// Translate parses src and lowers it. Parse failures are returned
// unchanged; stripped preprocessor directives are reported as notes.
func Translate(ctx context.Context, src string, b Backend, opts Options) (*Result, error) {
	parsed, err := compiler.ParseSource(src)
	if err != nil {
		return nil, err
	}

	return convert(ctx, parsed.Program, b, opts, DirectiveNotes(parsed.Directives))
}

// DirectiveNotes reports each stripped preprocessor directive as a note.
// Callers that parse separately and then Convert can prepend these to
// Result.Diagnostics.
func DirectiveNotes(directives []compiler.Directive) diag.List {
	var notes diag.List
	for _, d := range directives {
		notes = append(notes, diag.Diagnostic{
			Kind:     diag.KindDirectiveStripped,
			Severity: diag.SeverityNote,
			Stage:    diag.StagePreprocess,
			Message:  fmt.Sprintf("directive %q removed before parsing", d.Text),
			Span:     diag.Span{Line: d.Line, Column: 1},
		})
	}
	return notes
}

func convert(ctx context.Context, prog *compiler.Program, b Backend, opts Options, seed diag.List) (*Result, error) {
	if prog == nil {
		return nil, errors.New("lower: nil program")
	}
	if b == nil {
		return nil, errors.New("lower: nil backend")
	}
	if opts.Indent == "" {
		opts.Indent = DefaultIndent
	}

	l := &lowerer{
		log:   ctxlog.FromContext(ctx).With("backend", b.Name()),
		b:     b,
		mode:  opts.Mode,
		out:   &emitter{indent: opts.Indent},
		diags: seed,
	}
	if err := l.program(prog); err != nil {
		return nil, err
	}
	return &Result{Source: l.out.String(), Extension: b.Extension(), Diagnostics: l.diags}, nil
}

// lowerer is the state of one pass. It is never shared between calls.
type lowerer struct {
	log   *slog.Logger
	b     Backend
	mode  Mode
	out   *emitter
	depth int
	fn    *compiler.FunctionDecl // function being lowered, nil at top level
	body  int                    // index of the first line inside the frame
	diags diag.List
}

func (l *lowerer) program(prog *compiler.Program) error {
	open, closing, framed := l.b.Frame()
	if framed {
		l.out.emit(0, open)
		l.depth = 1
	}
	l.body = l.out.len()

	for _, decl := range prog.Decls {
		if err := decl.Accept(l); err != nil {
			return err
		}
	}

	if framed {
		l.out.emit(0, closing)
	}
	return nil
}

func (l *lowerer) emit(text string) { l.out.emit(l.depth, text) }

// report records a diagnostic. In Strict mode anything above a note is
// returned as a fatal *diag.Error.
func (l *lowerer) report(kind diag.Kind, sev diag.Severity, at compiler.Node, msg string) error {
	d := diag.Diagnostic{
		Kind:     kind,
		Severity: sev,
		Stage:    diag.StageLowering,
		Message:  msg,
		Backend:  l.b.Name(),
	}
	if at != nil {
		pos := at.Position()
		d.Node = at.Kind()
		d.Span = diag.Span{Line: pos.Line, Column: pos.Col}
	}
	l.diags = append(l.diags, d)
	l.log.Debug("diagnostic recorded", "kind", kind, "severity", sev, "line", d.Span.Line, "message", msg)

	if l.mode == Strict && sev != diag.SeverityNote {
		return &diag.Error{Diagnostic: d}
	}
	return nil
}

func (l *lowerer) unsupported(n compiler.Node) error {
	return l.report(diag.KindUnsupported, diag.SeverityError, n,
		fmt.Sprintf("%s backend has no rule for %s", l.b.Name(), n.Kind()))
}

//  Renderer

func (l *lowerer) Expr(e compiler.Expr) (string, error) {
	return e.Accept(l)
}

func (l *lowerer) Type(name string, at compiler.Node) (string, error) {
	tm := l.b.Types()
	if tm == nil {
		return "", nil
	}
	mapped, ok := tm.Lookup(name)
	if !ok {
		err := l.report(diag.KindTypeMappingMiss, diag.SeverityWarning, at,
			fmt.Sprintf("no %s spelling for type %q; using %s", l.b.Name(), name, mapped))
		if err != nil {
			return "", err
		}
	}
	return mapped, nil
}

func (l *lowerer) Note(kind diag.Kind, at compiler.Node, format string, args ...any) {
	_ = l.report(kind, diag.SeverityNote, at, fmt.Sprintf(format, args...))
}
