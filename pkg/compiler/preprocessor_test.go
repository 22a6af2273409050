package compiler

import (
	"reflect"
	"strings"
	"testing"
)

func TestPreprocessStripsDirectives(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		expected   string
		directives []Directive
	}{
		{
			name: "Include and Define",
			src: `#include <stdio.h>
#define N 10
int x = N;`,
			expected: "\n\nint x = N;",
			directives: []Directive{
				{Line: 1, Name: "include", Text: "#include <stdio.h>"},
				{Line: 2, Name: "define", Text: "#define N 10"},
			},
		},
		{
			name:     "Indented Directive",
			src:      "int a;\n   #  pragma once\nint b;",
			expected: "int a;\n\nint b;",
			directives: []Directive{
				{Line: 2, Name: "pragma", Text: "#  pragma once"},
			},
		},
		{
			name:     "Continuation Lines",
			src:      "#define MAX(a, b) \\\n  ((a) > (b) ? (a) : (b))\nint y;",
			expected: "\n\nint y;",
			directives: []Directive{
				{Line: 1, Name: "define", Text: "#define MAX(a, b)  ((a) > (b) ? (a) : (b))"},
			},
		},
		{
			name:     "No Directives",
			src:      "int main() {\n    return 0;\n}\n",
			expected: "int main() {\n    return 0;\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, directives := Preprocess(tt.src)
			if got != tt.expected {
				t.Errorf("source mismatch\n got: %q\nwant: %q", got, tt.expected)
			}
			if !reflect.DeepEqual(directives, tt.directives) {
				t.Errorf("directives mismatch\n got: %+v\nwant: %+v", directives, tt.directives)
			}
		})
	}
}

// Line numbers reported by later stages must match the original file.
func TestPreprocessPreservesLineCount(t *testing.T) {
	src := "#include <stdio.h>\n#define A \\\n  1\n\nint main() {\n  return @;\n}"
	cleaned, _ := Preprocess(src)
	if got, want := strings.Count(cleaned, "\n"), strings.Count(src, "\n"); got != want {
		t.Fatalf("line count changed: got %d newlines, want %d", got, want)
	}

	_, err := Lex(cleaned)
	if err == nil || !strings.Contains(err.Error(), "line 6") {
		t.Fatalf("expected lexer error on line 6, got %v", err)
	}
}
