package lower

import (
	"fmt"
	"strings"

	"ctox/pkg/compiler"
	"ctox/pkg/diag"
)

// JavaOptions configure the brace-style backend.
type JavaOptions struct {
	// ClassName, when set, wraps the output in "class <ClassName> { ... }".
	ClassName string
	// Types adds or overrides C type -> Java type entries.
	Types map[string]string
}

// Java renders brace-delimited Java with every function as a static method.
type Java struct {
	className string
	types     *TypeMap
}

func NewJava(opts JavaOptions) *Java {
	return &Java{
		className: opts.ClassName,
		types:     NewTypeMap("Object", javaTypes).With(opts.Types),
	}
}

func (*Java) Name() string      { return "java" }
func (*Java) Extension() string { return ".java" }

func (j *Java) Frame() (string, string, bool) {
	if j.className == "" {
		return "", "", false
	}
	return "class " + j.className + " {", "}", true
}

func (*Java) Open(header string) string { return header + " {" }
func (*Java) Close() (string, bool)     { return "}", true }
func (*Java) Empty() (string, bool)     { return "", false }
func (j *Java) Types() *TypeMap         { return j.types }
func (*Java) Operator(op string) string { return op }
func (*Java) Placeholder() string       { return "null" }

func (*Java) Unsupported(kind string) string { return "// unsupported: " + kind }

func (*Java) Call(name string, args []string) (string, bool) {
	return name + "(" + joinArgs(args) + ")", true
}

// Literal lowercases boolean spellings such as TRUE or False; everything
// else keeps its raw spelling.
func (*Java) Literal(lit *compiler.Literal) string {
	if strings.EqualFold(lit.Value, "true") || strings.EqualFold(lit.Value, "false") {
		return strings.ToLower(lit.Value)
	}
	return lit.Value
}

var javaPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6,
	"!=": 6,
	"<":  7,
	">":  7,
	"<=": 7,
	">=": 7,
	"<<": 8,
	">>": 8,
	"+":  9,
	"-":  9,
	"*":  10,
	"/":  10,
	"%":  10,
}

func (*Java) Precedence(op string) (int, bool) { return javaPrec[op], false }

// Function renders the method signature. main always gets the standard
// entry signature regardless of its declared parameters and return type.
func (j *Java) Function(fn *compiler.FunctionDecl, r Renderer) (string, error) {
	if fn.IsEntryPoint() {
		return "public static void main(String[] args)", nil
	}
	ret, err := r.Type(fn.ReturnType, fn)
	if err != nil {
		return "", err
	}
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		t, err := r.Type(p.Type, fn)
		if err != nil {
			return "", err
		}
		params[i] = t + " " + p.Name
	}
	return fmt.Sprintf("public static %s %s(%s)", ret, fn.Name, joinArgs(params)), nil
}

func (j *Java) Declare(d *compiler.VariableDecl, r Renderer, global bool) (string, error) {
	decl, err := j.typedName(d, r)
	if err != nil {
		return "", err
	}
	if global {
		decl = "static " + decl
	}
	if d.Init == nil {
		return decl + ";", nil
	}
	value, err := r.Expr(d.Init)
	if err != nil {
		return "", err
	}
	return decl + " = " + value + ";", nil
}

func (j *Java) typedName(d *compiler.VariableDecl, r Renderer) (string, error) {
	t, err := r.Type(d.Type, d)
	if err != nil {
		return "", err
	}
	return t + " " + d.Name, nil
}

func (*Java) Assign(a *compiler.Assignment, r Renderer) (string, error) {
	text, err := assignment(a, r)
	if err != nil {
		return "", err
	}
	return text + ";", nil
}

// assignment renders "name op value" without a terminator.
func assignment(a *compiler.Assignment, r Renderer) (string, error) {
	value, err := r.Expr(a.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", a.Name, a.Op, value), nil
}

func (*Java) If(cond string) string { return "if (" + cond + ")" }
func (*Java) Else() string          { return "else" }

// Loop keeps the C header. Parts that do not have the expected shape fall
// back to int i = 0, i < 10 and i++.
func (j *Java) Loop(f *compiler.ForStmt, r Renderer) (string, error) {
	init, err := j.loopInit(f, r)
	if err != nil {
		return "", err
	}

	cond := "i < 10"
	if c, ok := f.Cond.(*compiler.BinaryExpr); ok {
		if cond, err = r.Expr(c); err != nil {
			return "", err
		}
	} else {
		r.Note(diag.KindLoopReconstruction, f, "loop condition is not a comparison; using i < 10")
	}

	step, err := j.loopStep(f, r)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("for (%s; %s; %s)", init, cond, step), nil
}

func (j *Java) loopInit(f *compiler.ForStmt, r Renderer) (string, error) {
	switch init := f.Init.(type) {
	case *compiler.Assignment:
		return assignment(init, r)
	case *compiler.VariableDecl:
		if init.Init != nil {
			decl, err := j.typedName(init, r)
			if err != nil {
				return "", err
			}
			value, err := r.Expr(init.Init)
			if err != nil {
				return "", err
			}
			return decl + " = " + value, nil
		}
	}
	r.Note(diag.KindLoopReconstruction, f, "loop initializer is not an assignment; using int i = 0")
	return "int i = 0", nil
}

func (*Java) loopStep(f *compiler.ForStmt, r Renderer) (string, error) {
	switch step := f.Post.(type) {
	case *compiler.Assignment:
		return assignment(step, r)
	case *compiler.ExprStmt:
		switch e := step.Expr.(type) {
		case *compiler.PostfixExpr:
			if v, ok := e.Left.(*compiler.VarRef); ok {
				return v.Name + e.Op, nil
			}
		case *compiler.UnaryExpr:
			if v, ok := e.Right.(*compiler.VarRef); ok && (e.Op == "++" || e.Op == "--") {
				return e.Op + v.Name, nil
			}
		}
	}
	r.Note(diag.KindLoopReconstruction, f, "loop step is not an assignment or increment; using i++")
	return "i++", nil
}

// Return turns value returns in main into System.out.println and drops
// bare returns there.
func (*Java) Return(ret *compiler.ReturnStmt, fn *compiler.FunctionDecl, r Renderer) (string, bool, error) {
	entry := fn != nil && fn.IsEntryPoint()
	if ret.Expr == nil {
		if entry {
			return "", false, nil
		}
		return "return;", true, nil
	}
	value, err := r.Expr(ret.Expr)
	if err != nil {
		return "", false, err
	}
	if entry {
		return "System.out.println(" + value + ");", true, nil
	}
	return "return " + value + ";", true, nil
}
