package compiler

import (
	"errors"
	"fmt"

	"ctox/pkg/diag"
)

// Parsed is the result of running the front-end pipeline over one file.
type Parsed struct {
	Program    *Program
	Directives []Directive
	Tokens     []Token
}

// ParseSource runs Preprocess, Lex and Parse over src. Any failure is
// reported as a *diag.Error of kind PARSE_FAILURE whose message is the
// underlying error text verbatim.
func ParseSource(src string) (*Parsed, error) {
	cleaned, directives := Preprocess(src)

	tokens, err := Lex(cleaned)
	if err != nil {
		line := 0
		var lexErr *LexError
		if errors.As(err, &lexErr) {
			line = lexErr.Line
		}
		return nil, diag.ParseFailure(diag.StageLexer, line, err)
	}

	prog, err := Parse(tokens, cleaned)
	if err != nil {
		return nil, diag.ParseFailure(diag.StageParser, errorLine(err), err)
	}

	return &Parsed{Program: prog, Directives: directives, Tokens: tokens}, nil
}

// errorLine recovers the line number from a "line N: ..." parse error.
func errorLine(err error) int {
	var n int
	if _, scanErr := fmt.Sscanf(err.Error(), "line %d:", &n); scanErr != nil {
		return 0
	}
	return n
}
