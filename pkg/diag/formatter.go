package diag

import (
	"fmt"
	"io"

	"github.com/gookit/color"
)

// Format writes one line per diagnostic, ordered by position, in the
// familiar file:line:col form. filename overrides any filename already
// recorded in the spans.
func Format(w io.Writer, l List, filename string) error {
	for _, d := range l.Sorted() {
		if filename != "" {
			d = d.WithFilename(filename)
		}
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}

var severityStyle = map[Severity]color.Style{
	SeverityError:   color.New(color.FgRed, color.OpBold),
	SeverityWarning: color.New(color.FgYellow, color.OpBold),
	SeverityNote:    color.New(color.FgCyan),
}

// FormatColor is Format with the severity highlighted for terminals.
// Output is plain when color support is off.
func FormatColor(w io.Writer, l List, filename string) error {
	for _, d := range l.Sorted() {
		if filename != "" {
			d = d.WithFilename(filename)
		}
		label := severityStyle[d.Severity].Sprint(fmt.Sprintf("%s[%s]", d.Severity, d.Kind))
		var err error
		if d.Span.IsValid() {
			_, err = fmt.Fprintf(w, "%s: %s: %s\n", d.Span, label, d.Message)
		} else {
			_, err = fmt.Fprintf(w, "%s: %s\n", label, d.Message)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Summary renders counts as "2 errors, 1 warning, 3 notes".
func Summary(l List) string {
	return fmt.Sprintf("%s, %s, %s",
		plural(l.Count(SeverityError), "error"),
		plural(l.Count(SeverityWarning), "warning"),
		plural(l.Count(SeverityNote), "note"))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
