package lower

import (
	"fmt"
	"strings"

	"ctox/pkg/compiler"
)

// placeholderExpr records an unsupported expression and, in Lenient mode,
// substitutes the backend's placeholder.
func (l *lowerer) placeholderExpr(e compiler.Expr) (string, error) {
	if err := l.unsupported(e); err != nil {
		return "", err
	}
	return l.b.Placeholder(), nil
}

func (l *lowerer) VisitLiteral(lit *compiler.Literal) (string, error) {
	return l.b.Literal(lit), nil
}

func (l *lowerer) VisitVarRef(v *compiler.VarRef) (string, error) {
	return v.Name, nil
}

func (l *lowerer) VisitBinary(b *compiler.BinaryExpr) (string, error) {
	left, err := l.operand(b, b.Left, false)
	if err != nil {
		return "", err
	}
	right, err := l.operand(b, b.Right, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", left, l.b.Operator(b.Op), right), nil
}

// operand renders one side of parent, adding parentheses when the target
// language would otherwise group it differently.
func (l *lowerer) operand(parent *compiler.BinaryExpr, child compiler.Expr, right bool) (string, error) {
	text, err := l.Expr(child)
	if err != nil {
		return "", err
	}
	inner, ok := child.(*compiler.BinaryExpr)
	if !ok {
		return text, nil
	}

	outerLevel, outerNonAssoc := l.b.Precedence(parent.Op)
	innerLevel, innerNonAssoc := l.b.Precedence(inner.Op)
	switch {
	case innerLevel < outerLevel,
		right && innerLevel == outerLevel,
		outerNonAssoc && innerNonAssoc && innerLevel == outerLevel:
		return "(" + text + ")", nil
	}
	return text, nil
}

func (l *lowerer) VisitCall(c *compiler.FunctionCall) (string, error) {
	if _, ok := l.b.Call(c.Name, nil); !ok {
		return l.placeholderExpr(c)
	}
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		text, err := l.Expr(a)
		if err != nil {
			return "", err
		}
		args[i] = text
	}
	text, _ := l.b.Call(c.Name, args)
	return text, nil
}

func (l *lowerer) VisitUnary(u *compiler.UnaryExpr) (string, error)     { return l.placeholderExpr(u) }
func (l *lowerer) VisitPostfix(p *compiler.PostfixExpr) (string, error) { return l.placeholderExpr(p) }
func (l *lowerer) VisitCast(c *compiler.CastExpr) (string, error)       { return l.placeholderExpr(c) }

// joinArgs renders a parameter or argument list.
func joinArgs(parts []string) string { return strings.Join(parts, ", ") }
