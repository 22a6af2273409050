// Package diag defines the diagnostics produced while turning C source
// into target-language text: what went wrong, where, and how bad it is.
package diag

import (
	"fmt"
	"sort"
)

// Stage identifies which phase produced the diagnostic.
type Stage string

const (
	StagePreprocess Stage = "preprocess"
	StageLexer      Stage = "lexer"
	StageParser     Stage = "parser"
	StageLowering   Stage = "lowering"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// rank orders severities so that errors sort first.
func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// Kind is a stable identifier for a class of diagnostic.
type Kind string

const (
	KindParseFailure       Kind = "PARSE_FAILURE"
	KindUnsupported        Kind = "UNSUPPORTED_CONSTRUCT"
	KindTypeMappingMiss    Kind = "TYPE_MAPPING_MISS"
	KindLoopReconstruction Kind = "LOOP_RECONSTRUCTION"
	KindPrototypeSkipped   Kind = "PROTOTYPE_SKIPPED"
	KindDirectiveStripped  Kind = "DIRECTIVE_STRIPPED"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0
}

// Diagnostic is a single finding surfaced to the caller.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Stage    Stage
	Message  string
	Node     string // node kind the finding is about, e.g. "while loop"
	Backend  string // target language, empty for front-end findings
	Span     Span
}

func (d Diagnostic) String() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s[%s]: %s", d.Span, d.Severity, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Kind, d.Message)
}

// WithFilename returns a copy of the diagnostic whose span names filename.
func (d Diagnostic) WithFilename(filename string) Diagnostic {
	d.Span.Filename = filename
	return d
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// HasErrors reports whether any diagnostic has error severity.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns how many diagnostics have the given severity.
func (l List) Count(sev Severity) int {
	n := 0
	for _, d := range l {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// OfKind returns the diagnostics of the given kind, in order.
func (l List) OfKind(k Kind) List {
	var out List
	for _, d := range l {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// Sorted returns a copy ordered by position, then severity.
func (l List) Sorted() List {
	out := make(List, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Span, out[j].Span
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return out[i].Severity.rank() < out[j].Severity.rank()
	})
	return out
}
