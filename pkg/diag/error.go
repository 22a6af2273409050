package diag

// kindError is a sentinel that matches any *Error of the same kind.
type kindError Kind

func (k kindError) Error() string { return string(k) }

// Sentinels for errors.Is.
var (
	ErrParseFailure         error = kindError(KindParseFailure)
	ErrUnsupportedConstruct error = kindError(KindUnsupported)
	ErrTypeMappingMiss      error = kindError(KindTypeMappingMiss)
)

// Error is a fatal diagnostic. Err, when set, is the underlying cause and
// its message is reported verbatim.
type Error struct {
	Diagnostic Diagnostic
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Diagnostic.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinels declared in this package.
func (e *Error) Is(target error) bool {
	k, ok := target.(kindError)
	return ok && Kind(k) == e.Diagnostic.Kind
}

// ParseFailure wraps a front-end error so callers can classify it while
// still printing the original message unchanged.
func ParseFailure(stage Stage, line int, err error) *Error {
	return &Error{
		Diagnostic: Diagnostic{
			Kind:     KindParseFailure,
			Severity: SeverityError,
			Stage:    stage,
			Message:  err.Error(),
			Span:     Span{Line: line},
		},
		Err: err,
	}
}
