package diag_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/gookit/color"

	"ctox/pkg/diag"
)

func TestErrorMatchesKindSentinel(t *testing.T) {
	err := fmt.Errorf("lowering: %w", &diag.Error{Diagnostic: diag.Diagnostic{
		Kind:     diag.KindUnsupported,
		Severity: diag.SeverityError,
		Message:  "while loop has no lowering rule",
	}})

	if !errors.Is(err, diag.ErrUnsupportedConstruct) {
		t.Fatalf("expected errors.Is to match ErrUnsupportedConstruct")
	}
	if errors.Is(err, diag.ErrTypeMappingMiss) {
		t.Fatalf("did not expect a match for ErrTypeMappingMiss")
	}

	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected errors.As to find *diag.Error")
	}
	if de.Diagnostic.Message != "while loop has no lowering rule" {
		t.Fatalf("unexpected message %q", de.Diagnostic.Message)
	}
}

func TestParseFailureKeepsMessageVerbatim(t *testing.T) {
	cause := errors.New("line 3: expected SEMICOLON, got RBRACE (\"}\")")
	err := diag.ParseFailure(diag.StageParser, 3, cause)

	if err.Error() != cause.Error() {
		t.Fatalf("expected verbatim message %q, got %q", cause.Error(), err.Error())
	}
	if !errors.Is(err, diag.ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected the cause to be reachable through Unwrap")
	}
	if err.Diagnostic.Stage != diag.StageParser {
		t.Fatalf("expected stage %q, got %q", diag.StageParser, err.Diagnostic.Stage)
	}
}

func TestListSortedAndCounts(t *testing.T) {
	l := diag.List{
		{Kind: diag.KindLoopReconstruction, Severity: diag.SeverityNote, Message: "c", Span: diag.Span{Line: 4, Column: 1}},
		{Kind: diag.KindUnsupported, Severity: diag.SeverityError, Message: "a", Span: diag.Span{Line: 2, Column: 5}},
		{Kind: diag.KindTypeMappingMiss, Severity: diag.SeverityWarning, Message: "b", Span: diag.Span{Line: 2, Column: 5}},
	}

	sorted := l.Sorted()
	got := []string{sorted[0].Message, sorted[1].Message, sorted[2].Message}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if l[0].Message != "c" {
		t.Fatalf("Sorted must not reorder the receiver")
	}

	if !l.HasErrors() {
		t.Fatalf("expected HasErrors")
	}
	if n := len(l.OfKind(diag.KindTypeMappingMiss)); n != 1 {
		t.Fatalf("expected 1 type mapping miss, got %d", n)
	}
	if s := diag.Summary(l); s != "1 error, 1 warning, 1 note" {
		t.Fatalf("unexpected summary %q", s)
	}
}

func TestFormat(t *testing.T) {
	l := diag.List{
		{Kind: diag.KindUnsupported, Severity: diag.SeverityError, Message: "while loop has no lowering rule for python", Span: diag.Span{Line: 3, Column: 5}},
		{Kind: diag.KindPrototypeSkipped, Severity: diag.SeverityNote, Message: "prototype skipped"},
	}

	var buf bytes.Buffer
	if err := diag.Format(&buf, l, "prog.c"); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	want := "note[PROTOTYPE_SKIPPED]: prototype skipped\n" +
		"prog.c:3:5: error[UNSUPPORTED_CONSTRUCT]: while loop has no lowering rule for python\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatColorWithoutColorSupport(t *testing.T) {
	prev := color.Enable
	color.Enable = false
	t.Cleanup(func() { color.Enable = prev })

	l := diag.List{
		{Kind: diag.KindTypeMappingMiss, Severity: diag.SeverityWarning, Message: "no java spelling for type \"size_t\"", Span: diag.Span{Line: 2, Column: 1}},
	}

	var plain, colored bytes.Buffer
	if err := diag.Format(&plain, l, "prog.c"); err != nil {
		t.Fatal(err)
	}
	if err := diag.FormatColor(&colored, l, "prog.c"); err != nil {
		t.Fatal(err)
	}
	if colored.String() != plain.String() {
		t.Fatalf("FormatColor = %q, want %q", colored.String(), plain.String())
	}
}
