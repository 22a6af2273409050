package compiler

import (
	"strings"
)

// Directive is a preprocessor line that was removed from the source.
type Directive struct {
	Line int    // 1-based line of the '#'
	Name string // e.g. "include", "define"
	Text string // the full directive, continuation lines joined
}

// Preprocess removes every preprocessor directive from src and returns the
// remaining source together with the directives it dropped. Macros are not
// expanded and includes are not followed. Each removed line is replaced by an
// empty line so token line numbers still match the original file.
func Preprocess(src string) (string, []Directive) {
	lines := strings.Split(src, "\n")
	var result strings.Builder
	var directives []Directive

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "#") {
			result.WriteString(lines[i])
			if i < len(lines)-1 {
				result.WriteString("\n")
			}
			continue
		}

		d := Directive{Line: i + 1}
		text := []string{strings.TrimSuffix(trimmed, "\\")}
		// A trailing backslash continues the directive onto the next line.
		for strings.HasSuffix(strings.TrimRight(lines[i], " \t\r"), "\\") && i+1 < len(lines) {
			result.WriteString("\n")
			i++
			text = append(text, strings.TrimSuffix(strings.TrimSpace(lines[i]), "\\"))
		}
		d.Text = strings.TrimSpace(strings.Join(text, " "))
		d.Name = directiveName(d.Text)
		directives = append(directives, d)

		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String(), directives
}

// directiveName returns the word after '#', e.g. "include" for "#  include <x.h>".
func directiveName(text string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(text, "#"))
	end := strings.IndexFunc(rest, func(r rune) bool {
		return !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
	})
	if end < 0 {
		return rest
	}
	return rest[:end]
}
