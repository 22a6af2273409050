package lower

import (
	"fmt"
	"strings"

	"ctox/pkg/compiler"
	"ctox/pkg/diag"
)

// Backend is the policy for one target language. The lowering engine owns
// the traversal; a Backend only decides how each piece is spelled.
type Backend interface {
	Name() string
	// Extension is the output file extension including the dot.
	Extension() string
	// Frame returns lines that wrap the whole program, if any.
	Frame() (open, close string, ok bool)

	// Open turns a block header into its opening line, e.g. "if x" -> "if x:".
	Open(header string) string
	// Close returns the line that ends a block, if the language has one.
	Close() (string, bool)
	// Empty returns the line emitted for a block with no statements.
	Empty() (string, bool)

	// Types returns the declared-type table, or nil when declared types are
	// not rendered at all.
	Types() *TypeMap
	Operator(op string) string
	// Precedence returns the binding strength of a binary operator. nonAssoc
	// operands of equal strength are always parenthesised.
	Precedence(op string) (level int, nonAssoc bool)
	Literal(lit *compiler.Literal) string
	// Call renders a call expression. ok is false when calls have no rule.
	Call(name string, args []string) (string, bool)
	// Placeholder stands in for an expression that could not be lowered.
	Placeholder() string
	// Unsupported is the line emitted in place of a statement that could not be lowered.
	Unsupported(kind string) string

	Function(fn *compiler.FunctionDecl, r Renderer) (string, error)
	Declare(d *compiler.VariableDecl, r Renderer, global bool) (string, error)
	Assign(a *compiler.Assignment, r Renderer) (string, error)
	If(cond string) string
	Else() string
	Loop(f *compiler.ForStmt, r Renderer) (string, error)
	// Return renders a return statement inside fn. emit is false when the
	// statement produces no line at all.
	Return(ret *compiler.ReturnStmt, fn *compiler.FunctionDecl, r Renderer) (line string, emit bool, err error)
}

// Renderer is the part of the engine a Backend may call back into.
type Renderer interface {
	// Expr lowers an expression with the active backend.
	Expr(e compiler.Expr) (string, error)
	// Type maps a declared C type. A miss records TYPE_MAPPING_MISS and
	// yields the fallback; in strict mode the miss is returned as an error.
	Type(name string, at compiler.Node) (string, error)
	// Note records an informational diagnostic. Notes never abort.
	Note(kind diag.Kind, at compiler.Node, format string, args ...any)
}

// BackendFor returns the backend registered under name with default options.
func BackendFor(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case "python", "py":
		return NewPython(PythonOptions{}), nil
	case "java":
		return NewJava(JavaOptions{}), nil
	default:
		return nil, fmt.Errorf("unknown target language %q (want python or java)", name)
	}
}
