package lower

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ctox/pkg/compiler"
	"ctox/pkg/diag"
)

func translate(t *testing.T, src string, b Backend, opts Options) *Result {
	t.Helper()
	res, err := Translate(context.Background(), src, b, opts)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	return res
}

func python() Backend { return NewPython(PythonOptions{}) }
func java() Backend   { return NewJava(JavaOptions{}) }

func lines(s ...string) string { return strings.Join(s, "\n") }

func TestScenarios(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		backend Backend
		want    string
	}{
		{
			name:    "add to python",
			src:     "int add(int a, int b){ return a + b; }",
			backend: python(),
			want:    "def add(a, b):\n    return a + b",
		},
		{
			name:    "add to java",
			src:     "int add(int a, int b){ return a + b; }",
			backend: java(),
			want:    "public static int add(int a, int b) {\n    return a + b;\n}",
		},
		{
			name:    "main to java",
			src:     "int main(){ int x = 5; return x; }",
			backend: java(),
			want:    "public static void main(String[] args) {\n    int x = 5;\n    System.out.println(x);\n}",
		},
		{
			name:    "main to python",
			src:     "int main(){ int x = 5; return x; }",
			backend: python(),
			want:    "def main():\n    x = 5\n    return x",
		},
		{
			name:    "counted loop to python",
			src:     "void f() { for (i = 0; i < 10; i = i + 1) { x = x + 1; } }",
			backend: python(),
			want: lines(
				"def f():",
				"    for i in range(0, 10):",
				"        x = x + 1",
			),
		},
		{
			name:    "counted loop to java",
			src:     "void f() { for (i = 0; i < 10; i = i + 1) { x = x + 1; } }",
			backend: java(),
			want: lines(
				"public static void f() {",
				"    for (i = 0; i < 10; i = i + 1) {",
				"        x = x + 1;",
				"    }",
				"}",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := translate(t, tt.src, tt.backend, Options{})
			if diff := cmp.Diff(tt.want, res.Source); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	if got := translate(t, "int x;", python(), Options{}).Extension; got != ".py" {
		t.Errorf("python extension: %q", got)
	}
	if got := translate(t, "int x;", java(), Options{}).Extension; got != ".java" {
		t.Errorf("java extension: %q", got)
	}
}

const nested = `int f(int n) {
    int s = 0;
    for (i = 0; i < n; i = i + 1) {
        if (i > 2) {
            s = s + i;
        } else {
            s = s - 1;
        }
    }
    return s;
}`

func TestNestingDepth(t *testing.T) {
	py := translate(t, nested, python(), Options{})
	wantPy := lines(
		"def f(n):",
		"    s = 0",
		"    for i in range(0, n):",
		"        if i > 2:",
		"            s = s + i",
		"        else:",
		"            s = s - 1",
		"    return s",
	)
	if diff := cmp.Diff(wantPy, py.Source); diff != "" {
		t.Errorf("python mismatch (-want +got):\n%s", diff)
	}

	jv := translate(t, nested, java(), Options{Indent: "  "})
	wantJava := lines(
		"public static int f(int n) {",
		"  int s = 0;",
		"  for (i = 0; i < n; i = i + 1) {",
		"    if (i > 2) {",
		"      s = s + i;",
		"    }",
		"    else {",
		"      s = s - 1;",
		"    }",
		"  }",
		"  return s;",
		"}",
	)
	if diff := cmp.Diff(wantJava, jv.Source); diff != "" {
		t.Errorf("java mismatch (-want +got):\n%s", diff)
	}

	// Braces balance at every point of the Java output.
	open := 0
	for _, ln := range strings.Split(jv.Source, "\n") {
		open += strings.Count(ln, "{") - strings.Count(ln, "}")
		if open < 0 {
			t.Fatalf("unbalanced braces at %q", ln)
		}
	}
	if open != 0 {
		t.Errorf("expected balanced braces, %d left open", open)
	}
}

// Straight-line bodies map one statement to one line.
func TestLineMapping(t *testing.T) {
	pool := []string{"int a = 1;", "a = a + 2;", "int b;", "b = a * 3;", "a += b;", "return a;"}
	for n := 1; n <= len(pool); n++ {
		src := "int f() {\n" + strings.Join(pool[:n], "\n") + "\n}"

		py := translate(t, src, python(), Options{})
		if got := strings.Count(py.Source, "\n") + 1; got != n+1 {
			t.Errorf("python, %d statements: got %d lines\n%s", n, got, py.Source)
		}
		jv := translate(t, src, java(), Options{})
		if got := strings.Count(jv.Source, "\n") + 1; got != n+2 {
			t.Errorf("java, %d statements: got %d lines\n%s", n, got, jv.Source)
		}
	}
}

func TestEntryPoint(t *testing.T) {
	src := `int main(int argc) {
    int x = 1;
    if (x > 0) {
        return x + 1;
    } else {
        return;
    }
    return 0;
}`
	res := translate(t, src, java(), Options{})
	want := lines(
		"public static void main(String[] args) {",
		"    int x = 1;",
		"    if (x > 0) {",
		"        System.out.println(x + 1);",
		"    }",
		"    else {",
		"    }",
		"    System.out.println(0);",
		"}",
	)
	if diff := cmp.Diff(want, res.Source); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(res.Source, "return") {
		t.Errorf("main must not contain a return statement:\n%s", res.Source)
	}

	// Python keeps both returns verbatim.
	py := translate(t, src, python(), Options{})
	if !strings.Contains(py.Source, "        return x + 1\n") || !strings.Contains(py.Source, "        return\n") {
		t.Errorf("python should keep returns in main:\n%s", py.Source)
	}
}

func TestPythonLoopBounds(t *testing.T) {
	tests := []struct {
		header string
		want   string
		notes  int
	}{
		{"for (i = 0; i < 10; i = i + 1)", "for i in range(0, 10):", 0},
		{"for (k = 5; k < 100; k += 1)", "for k in range(5, 100):", 0},
		{"for (int j = 2; j < n; j++)", "for j in range(2, n):", 0},
		{"for (i = 1; i < N; ++i)", "for i in range(1, N):", 0},
		{"for (; i < 7; i = i + 1)", "for i in range(0, 7):", 1},
		{"for (i = 0; i <= 7; i = i + 2)", "for i in range(0, 7):", 2},
		{"for (i = 9; i > 0; i--)", "for i in range(9, 0):", 2},
		{"for (i = 0; x; i++)", "for i in range(0, 10):", 1},
		{"for (;;)", "for i in range(0, 10):", 3},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			res := translate(t, "void f() { "+tt.header+" { x = x + 1; } }", python(), Options{})
			got := strings.Split(res.Source, "\n")[1]
			if got != "    "+tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if n := len(res.Diagnostics.OfKind(diag.KindLoopReconstruction)); n != tt.notes {
				t.Errorf("expected %d loop notes, got %d: %v", tt.notes, n, res.Diagnostics)
			}
			if res.Diagnostics.Count(diag.SeverityNote) != len(res.Diagnostics) {
				t.Errorf("loop fallbacks must be notes only: %v", res.Diagnostics)
			}
		})
	}
}

func TestJavaLoopHeaders(t *testing.T) {
	tests := []struct {
		header string
		want   string
		notes  int
	}{
		{"for (i = 0; i < 10; i = i + 1)", "for (i = 0; i < 10; i = i + 1) {", 0},
		{"for (int j = 0; j < n; j++)", "for (int j = 0; j < n; j++) {", 0},
		{"for (i = 10; i > 0; i -= 1)", "for (i = 10; i > 0; i -= 1) {", 0},
		{"for (i = 10; i >= 0; --i)", "for (i = 10; i >= 0; --i) {", 0},
		{"for (;;)", "for (int i = 0; i < 10; i++) {", 3},
		{"for (i = 0; ok; f(i))", "for (i = 0; i < 10; i++) {", 2},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			res := translate(t, "void f() { "+tt.header+" { x = 1; } }", java(), Options{})
			got := strings.Split(res.Source, "\n")[1]
			if got != "    "+tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if n := len(res.Diagnostics.OfKind(diag.KindLoopReconstruction)); n != tt.notes {
				t.Errorf("expected %d loop notes, got %d: %v", tt.notes, n, res.Diagnostics)
			}
		})
	}
}

func TestLiteralNormalization(t *testing.T) {
	for _, spelling := range []string{"TRUE", "True", "true"} {
		src := "int f() { _Bool b = " + spelling + "; return FALSE; }"
		res := translate(t, src, java(), Options{})
		want := "public static int f() {\n    boolean b = true;\n    return false;\n}"
		if diff := cmp.Diff(want, res.Source); diff != "" {
			t.Errorf("%s: (-want +got):\n%s", spelling, diff)
		}

		py := translate(t, src, python(), Options{})
		if !strings.Contains(py.Source, "b = "+spelling) {
			t.Errorf("python should keep %s verbatim:\n%s", spelling, py.Source)
		}
	}
}

func TestParenthesization(t *testing.T) {
	tests := []struct {
		expr   string
		python string
		java   string
	}{
		{"(a + b) * c", "(a + b) * c", "(a + b) * c"},
		{"a * b + c", "a * b + c", "a * b + c"},
		{"a - (b - c)", "a - (b - c)", "a - (b - c)"},
		{"a - b - c", "a - b - c", "a - b - c"},
		{"a < b == c", "(a < b) == c", "a < b == c"},
		{"a && b || c", "a and b or c", "a && b || c"},
		{"a || b && c", "a or b and c", "a || b && c"},
		{"(a || b) && c", "(a or b) and c", "(a || b) && c"},
		{"a < b && b != c", "a < b and b != c", "a < b && b != c"},
		{"x % 2 == 0", "x % 2 == 0", "x % 2 == 0"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			src := "int f() { return " + tt.expr + "; }"
			py := translate(t, src, python(), Options{})
			if got := strings.Split(py.Source, "\n")[1]; got != "    return "+tt.python {
				t.Errorf("python: got %q, want %q", got, tt.python)
			}
			jv := translate(t, src, java(), Options{})
			if got := strings.Split(jv.Source, "\n")[1]; got != "    return "+tt.java+";" {
				t.Errorf("java: got %q, want %q", got, tt.java)
			}
		})
	}
}

func TestUnsupportedStrict(t *testing.T) {
	src := "int main() {\n    int x = 0;\n    while (x < 3) { x = x + 1; }\n    return x;\n}"
	for _, b := range []Backend{python(), java()} {
		t.Run(b.Name(), func(t *testing.T) {
			res, err := Translate(context.Background(), src, b, Options{Mode: Strict})
			if res != nil {
				t.Errorf("expected no result in strict mode, got %q", res.Source)
			}
			if !errors.Is(err, diag.ErrUnsupportedConstruct) {
				t.Fatalf("expected ErrUnsupportedConstruct, got %v", err)
			}
			if !strings.Contains(err.Error(), "while loop") {
				t.Errorf("error should name the construct: %v", err)
			}
			var de *diag.Error
			if !errors.As(err, &de) || de.Diagnostic.Span.Line != 3 || de.Diagnostic.Node != "while loop" {
				t.Errorf("unexpected diagnostic: %+v", de)
			}
		})
	}
}

func TestUnsupportedLenient(t *testing.T) {
	src := "int main() {\n    int x = 0;\n    while (x < 3) { x = x + 1; }\n    return -x;\n}"

	py := translate(t, src, python(), Options{})
	wantPy := lines(
		"def main():",
		"    x = 0",
		"    pass  # unsupported: while loop",
		"    return None",
	)
	if diff := cmp.Diff(wantPy, py.Source); diff != "" {
		t.Errorf("python (-want +got):\n%s", diff)
	}

	jv := translate(t, src, java(), Options{})
	wantJava := lines(
		"public static void main(String[] args) {",
		"    int x = 0;",
		"    // unsupported: while loop",
		"    System.out.println(null);",
		"}",
	)
	if diff := cmp.Diff(wantJava, jv.Source); diff != "" {
		t.Errorf("java (-want +got):\n%s", diff)
	}

	for _, res := range []*Result{py, jv} {
		got := res.Diagnostics.OfKind(diag.KindUnsupported)
		if len(got) != 2 || got[0].Node != "while loop" || got[1].Node != "unary expression" {
			t.Errorf("expected two unsupported diagnostics, got %v", got)
		}
		if !res.Diagnostics.HasErrors() {
			t.Error("unsupported constructs must be reported as errors")
		}
	}
}

func TestCalls(t *testing.T) {
	src := "int add(int a, int b) { return a + b; }\nint main() { return add(1, add(2, x)); }"

	jv := translate(t, src, java(), Options{})
	if !strings.Contains(jv.Source, "    System.out.println(add(1, add(2, x)));") {
		t.Errorf("java call not rendered:\n%s", jv.Source)
	}

	py := translate(t, src, python(), Options{})
	if !strings.Contains(py.Source, "    return None") {
		t.Errorf("python call should become a placeholder:\n%s", py.Source)
	}
	calls := py.Diagnostics.OfKind(diag.KindUnsupported)
	if len(calls) != 1 || calls[0].Node != "call expression" || calls[0].Backend != "python" {
		t.Errorf("expected one unsupported call diagnostic, got %v", calls)
	}

	_, err := Translate(context.Background(), src, python(), Options{Mode: Strict})
	if !errors.Is(err, diag.ErrUnsupportedConstruct) {
		t.Errorf("strict python call: expected ErrUnsupportedConstruct, got %v", err)
	}
}

func TestTypeMapping(t *testing.T) {
	src := "long grow(long n, double d) { char c = 'a'; return n; }"

	res := translate(t, src, java(), Options{})
	want := lines(
		"public static Object grow(Object n, double d) {",
		"    char c = 'a';",
		"    return n;",
		"}",
	)
	if diff := cmp.Diff(want, res.Source); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	misses := res.Diagnostics.OfKind(diag.KindTypeMappingMiss)
	if len(misses) != 2 || misses[0].Severity != diag.SeverityWarning {
		t.Errorf("expected two type-miss warnings, got %v", misses)
	}

	_, err := Translate(context.Background(), src, java(), Options{Mode: Strict})
	if !errors.Is(err, diag.ErrTypeMappingMiss) {
		t.Errorf("strict: expected ErrTypeMappingMiss, got %v", err)
	}

	custom := NewJava(JavaOptions{Types: map[string]string{"long": "long"}})
	res = translate(t, src, custom, Options{Mode: Strict})
	if !strings.HasPrefix(res.Source, "public static long grow(long n, double d) {") {
		t.Errorf("override not applied:\n%s", res.Source)
	}
}

func TestPythonTypeHints(t *testing.T) {
	src := "int add(int a, double b) { char c = 'x'; _Bool ok; return a + b; }\nvoid noop() { }\nunsigned u;"
	res := translate(t, src, NewPython(PythonOptions{TypeHints: true}), Options{})
	want := lines(
		"def add(a: int, b: float) -> int:",
		"    c: str = 'x'",
		"    ok: bool = None",
		"    return a + b",
		"",
		"def noop() -> None:",
		"    pass",
		"u: object = None",
	)
	if diff := cmp.Diff(want, res.Source); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if n := len(res.Diagnostics.OfKind(diag.KindTypeMappingMiss)); n != 1 {
		t.Errorf("expected one miss for unsigned, got %d", n)
	}
}

func TestGlobalsPrototypesAndFrame(t *testing.T) {
	src := `int add(int a, int b);
int counter = 0;
int add(int a, int b) {
    return a + b;
}
int main() {
    { counter = add(counter, 1); }
    return counter;
}`

	res := translate(t, src, NewJava(JavaOptions{ClassName: "Program"}), Options{})
	want := lines(
		"class Program {",
		"    static int counter = 0;",
		"",
		"    public static int add(int a, int b) {",
		"        return a + b;",
		"    }",
		"",
		"    public static void main(String[] args) {",
		"        counter = add(counter, 1);",
		"        System.out.println(counter);",
		"    }",
		"}",
	)
	if diff := cmp.Diff(want, res.Source); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if n := len(res.Diagnostics.OfKind(diag.KindPrototypeSkipped)); n != 1 {
		t.Errorf("expected one prototype note, got %d", n)
	}

	py := translate(t, "int g;\nvoid f() { }", python(), Options{})
	if diff := cmp.Diff("g = None\n\ndef f():\n    pass", py.Source); diff != "" {
		t.Errorf("python (-want +got):\n%s", diff)
	}
}

func TestEmptyAndElidedBodies(t *testing.T) {
	res := translate(t, "int main() { return; }", java(), Options{})
	if diff := cmp.Diff("public static void main(String[] args) {\n}", res.Source); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	py := translate(t, "void f() { if (x) { } else { { } } }", python(), Options{})
	want := lines(
		"def f():",
		"    if x:",
		"        pass",
		"    else:",
		"        pass",
	)
	if diff := cmp.Diff(want, py.Source); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCompoundAssignmentKeepsOperator(t *testing.T) {
	src := "void f() { x += 2; x -= 1; x *= 3; }"
	py := translate(t, src, python(), Options{})
	if diff := cmp.Diff("def f():\n    x += 2\n    x -= 1\n    x *= 3", py.Source); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestTranslateDirectivesAndParseFailure(t *testing.T) {
	res := translate(t, "#include <stdio.h>\nint f() { return 1; }", python(), Options{Mode: Strict})
	notes := res.Diagnostics.OfKind(diag.KindDirectiveStripped)
	if len(notes) != 1 || notes[0].Span.Line != 1 || notes[0].Stage != diag.StagePreprocess {
		t.Errorf("expected one directive note on line 1, got %v", notes)
	}

	_, err := Translate(context.Background(), "int main() {\n    int *p;\n}", java(), Options{})
	if !errors.Is(err, diag.ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
	if want := "line 2: pointer declarations are not supported\n  |> int *p;"; err.Error() != want {
		t.Errorf("parse failure must be verbatim:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestConvertDoesNotMutate(t *testing.T) {
	parsed, err := compiler.ParseSource(nested)
	if err != nil {
		t.Fatal(err)
	}
	before := parsed.Program.Decls[0].String()
	fn := parsed.Program.Decls[0].(*compiler.FunctionDecl)
	stmts := len(fn.Body.Stmts)

	for _, b := range []Backend{python(), java()} {
		if _, err := Convert(context.Background(), parsed.Program, b, Options{}); err != nil {
			t.Fatal(err)
		}
	}
	if parsed.Program.Decls[0].String() != before || len(fn.Body.Stmts) != stmts {
		t.Error("Convert modified the program")
	}

	if _, err := Convert(context.Background(), nil, python(), Options{}); err == nil {
		t.Error("expected error for nil program")
	}
}

func TestBackendFor(t *testing.T) {
	for name, want := range map[string]string{"python": "python", "py": "python", "Java": "java"} {
		b, err := BackendFor(name)
		if err != nil || b.Name() != want {
			t.Errorf("BackendFor(%q) = %v, %v", name, b, err)
		}
	}
	if _, err := BackendFor("rust"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("strict"); err != nil || m != Strict {
		t.Errorf("strict: %v %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != Lenient {
		t.Errorf("empty: %v %v", m, err)
	}
	if _, err := ParseMode("loose"); err == nil {
		t.Error("expected error")
	}
}
