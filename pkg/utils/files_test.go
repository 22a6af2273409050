package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetPathInfo(t *testing.T) {
	full, parent, err := GetPathInfo(filepath.Join("a", "..", "b", "prog.c"))
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(full) {
		t.Errorf("full path %q is not absolute", full)
	}
	if filepath.Base(full) != "prog.c" || filepath.Base(parent) != "b" {
		t.Errorf("got %q in %q", full, parent)
	}
}

func TestResolveOutputDir(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "src")
	abs := filepath.Join(string(filepath.Separator), "tmp", "out")

	tests := []struct {
		dir  string
		want string
	}{
		{"", filepath.Join(base, "output")},
		{"build", filepath.Join(base, "build")},
		{abs, abs},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			if got := ResolveOutputDir(base, tt.dir); got != tt.want {
				t.Errorf("ResolveOutputDir(%q) = %q, want %q", tt.dir, got, tt.want)
			}
		})
	}
}

func TestOutputPathAndStem(t *testing.T) {
	if got, want := OutputPath("out", "translated", ".py"), filepath.Join("out", "translated.py"); got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}
	if got := Stem(filepath.Join("dir", "loop.test.c")); got != "loop.test" {
		t.Errorf("Stem = %q", got)
	}
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "translated.java")

	if err := WriteOutput(path, "class Program {\n}"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "class Program {\n}\n" {
		t.Errorf("file contents = %q", data)
	}

	// Already terminated text is not given a second newline.
	if err := WriteOutput(path, "x = 1\n"); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "x = 1\n" {
		t.Errorf("file contents = %q", data)
	}
}
