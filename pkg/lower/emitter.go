package lower

import "strings"

type line struct {
	depth int
	text  string
}

// emitter accumulates output lines and joins them once lowering is done.
type emitter struct {
	indent string
	lines  []line
}

func (e *emitter) emit(depth int, text string) {
	e.lines = append(e.lines, line{depth: depth, text: text})
}

// blank adds an empty separator line.
func (e *emitter) blank() { e.emit(0, "") }

func (e *emitter) len() int { return len(e.lines) }

// String joins the lines with '\n'. There is no trailing newline and blank
// lines carry no indentation.
func (e *emitter) String() string {
	var sb strings.Builder
	for i, ln := range e.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if ln.text == "" {
			continue
		}
		sb.WriteString(strings.Repeat(e.indent, ln.depth))
		sb.WriteString(ln.text)
	}
	return sb.String()
}
