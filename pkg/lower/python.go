package lower

import (
	"fmt"

	"ctox/pkg/compiler"
	"ctox/pkg/diag"
)

// PythonOptions configure the indentation-style backend.
type PythonOptions struct {
	// TypeHints adds annotations to parameters, returns and declarations.
	TypeHints bool
	// Types adds or overrides C type -> annotation entries.
	Types map[string]string
}

// Python renders indentation-delimited Python 3.
type Python struct {
	types *TypeMap // nil without type hints
}

func NewPython(opts PythonOptions) *Python {
	p := &Python{}
	if opts.TypeHints {
		p.types = NewTypeMap("object", pythonTypes).With(opts.Types)
	}
	return p
}

func (*Python) Name() string                  { return "python" }
func (*Python) Extension() string             { return ".py" }
func (*Python) Frame() (string, string, bool) { return "", "", false }
func (*Python) Open(header string) string     { return header + ":" }
func (*Python) Close() (string, bool)         { return "", false }
func (*Python) Empty() (string, bool)         { return "pass", true }
func (p *Python) Types() *TypeMap             { return p.types }
func (*Python) Placeholder() string           { return "None" }

func (*Python) Unsupported(kind string) string { return "pass  # unsupported: " + kind }

// Calls have no Python rule.
func (*Python) Call(string, []string) (string, bool) { return "", false }

// Literal passes the raw spelling through.
func (*Python) Literal(lit *compiler.Literal) string { return lit.Value }

var pythonOps = map[string]string{
	"&&": "and",
	"||": "or",
}

func (*Python) Operator(op string) string {
	if mapped, ok := pythonOps[op]; ok {
		return mapped
	}
	return op
}

// Python comparisons chain, so a comparison nested in another one needs
// parentheses to keep C's grouping.
var pythonPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"<":  4,
	">":  4,
	"<=": 4,
	">=": 4,
	"==": 4,
	"!=": 4,
	"|":  5,
	"^":  6,
	"&":  7,
	"<<": 8,
	">>": 8,
	"+":  9,
	"-":  9,
	"*":  10,
	"/":  10,
	"%":  10,
}

func (*Python) Precedence(op string) (int, bool) {
	level := pythonPrec[op]
	return level, level == 4
}

// annotate renders "name: type" when hints are on.
func (p *Python) annotate(name, ctype string, at compiler.Node, r Renderer) (string, error) {
	if p.types == nil {
		return name, nil
	}
	t, err := r.Type(ctype, at)
	if err != nil {
		return "", err
	}
	return name + ": " + t, nil
}

func (p *Python) Function(fn *compiler.FunctionDecl, r Renderer) (string, error) {
	params := make([]string, len(fn.Params))
	for i, prm := range fn.Params {
		text, err := p.annotate(prm.Name, prm.Type, fn, r)
		if err != nil {
			return "", err
		}
		params[i] = text
	}
	header := fmt.Sprintf("def %s(%s)", fn.Name, joinArgs(params))
	if p.types != nil {
		ret, err := r.Type(fn.ReturnType, fn)
		if err != nil {
			return "", err
		}
		header += " -> " + ret
	}
	return header, nil
}

func (p *Python) Declare(d *compiler.VariableDecl, r Renderer, _ bool) (string, error) {
	target, err := p.annotate(d.Name, d.Type, d, r)
	if err != nil {
		return "", err
	}
	value := "None"
	if d.Init != nil {
		if value, err = r.Expr(d.Init); err != nil {
			return "", err
		}
	}
	return target + " = " + value, nil
}

func (*Python) Assign(a *compiler.Assignment, r Renderer) (string, error) {
	value, err := r.Expr(a.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", a.Name, a.Op, value), nil
}

func (*Python) If(cond string) string { return "if " + cond }
func (*Python) Else() string          { return "else" }

// Loop always produces an ascending range that advances by one. The
// comparison operator and the step are not carried over; a note records
// each case where the C loop says something different.
func (*Python) Loop(f *compiler.ForStmt, r Renderer) (string, error) {
	name, start := "i", "0"
	var err error
	switch init := f.Init.(type) {
	case *compiler.Assignment:
		name = init.Name
		if start, err = r.Expr(init.Value); err != nil {
			return "", err
		}
	case *compiler.VariableDecl:
		name = init.Name
		if init.Init == nil {
			r.Note(diag.KindLoopReconstruction, f, "loop variable %s has no start value; using 0", name)
			break
		}
		if start, err = r.Expr(init.Init); err != nil {
			return "", err
		}
	default:
		r.Note(diag.KindLoopReconstruction, f, "loop initializer is not an assignment; using i = 0")
	}

	bound := "10"
	if cond, ok := f.Cond.(*compiler.BinaryExpr); ok {
		if bound, err = r.Expr(cond.Right); err != nil {
			return "", err
		}
		if cond.Op != "<" {
			r.Note(diag.KindLoopReconstruction, f, "loop condition uses %q; range stops before %s", cond.Op, bound)
		}
	} else {
		r.Note(diag.KindLoopReconstruction, f, "loop condition is not a comparison; using bound 10")
	}

	if !isUnitStep(f.Post, name) {
		r.Note(diag.KindLoopReconstruction, f, "loop step is not %s += 1; range advances by one", name)
	}

	return fmt.Sprintf("for %s in range(%s, %s)", name, start, bound), nil
}

func (*Python) Return(ret *compiler.ReturnStmt, _ *compiler.FunctionDecl, r Renderer) (string, bool, error) {
	if ret.Expr == nil {
		return "return", true, nil
	}
	value, err := r.Expr(ret.Expr)
	if err != nil {
		return "", false, err
	}
	return "return " + value, true, nil
}

// isUnitStep reports whether step adds exactly one to name: i = i + 1,
// i += 1, i++ or ++i.
func isUnitStep(step compiler.Stmt, name string) bool {
	isOne := func(e compiler.Expr) bool {
		lit, ok := e.(*compiler.Literal)
		return ok && lit.Value == "1"
	}
	isVar := func(e compiler.Expr) bool {
		ref, ok := e.(*compiler.VarRef)
		return ok && ref.Name == name
	}

	switch s := step.(type) {
	case *compiler.Assignment:
		if s.Name != name {
			return false
		}
		if s.Op == "+=" {
			return isOne(s.Value)
		}
		sum, ok := s.Value.(*compiler.BinaryExpr)
		return s.Op == "=" && ok && sum.Op == "+" &&
			((isVar(sum.Left) && isOne(sum.Right)) || (isOne(sum.Left) && isVar(sum.Right)))
	case *compiler.ExprStmt:
		switch e := s.Expr.(type) {
		case *compiler.PostfixExpr:
			return e.Op == "++" && isVar(e.Left)
		case *compiler.UnaryExpr:
			return e.Op == "++" && isVar(e.Right)
		}
	}
	return false
}
