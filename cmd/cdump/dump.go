package main

import (
	"fmt"
	"io"
	"strings"

	"ctox/pkg/compiler"
)

// dumper prints a statement tree one node per line, indented by depth.
type dumper struct {
	w     io.Writer
	depth int
}

func (d *dumper) line(n compiler.Node, format string, args ...any) {
	fmt.Fprintf(d.w, "%s%-6s %s\n", strings.Repeat("  ", d.depth), n.Position(), fmt.Sprintf(format, args...))
}

func (d *dumper) nested(stmts ...compiler.Stmt) error {
	d.depth++
	defer func() { d.depth-- }()
	for _, s := range stmts {
		if s == nil {
			continue
		}
		if err := s.Accept(d); err != nil {
			return err
		}
	}
	return nil
}

// block accepts nil so optional branches can be passed straight through.
func (d *dumper) block(label string, b *compiler.BlockStmt) error {
	if b == nil {
		return nil
	}
	fmt.Fprintf(d.w, "%s%s:\n", strings.Repeat("  ", d.depth+1), label)
	d.depth++
	defer func() { d.depth-- }()
	return d.nested(b.Stmts...)
}

func (d *dumper) VisitFunctionDecl(fn *compiler.FunctionDecl) error {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = strings.TrimSpace(p.Type + " " + p.Name)
	}
	if fn.Body == nil {
		d.line(fn, "prototype %s %s(%s)", fn.ReturnType, fn.Name, strings.Join(params, ", "))
		return nil
	}
	d.line(fn, "function %s %s(%s)", fn.ReturnType, fn.Name, strings.Join(params, ", "))
	return d.nested(fn.Body.Stmts...)
}

func (d *dumper) VisitVariableDecl(s *compiler.VariableDecl) error {
	if s.Init == nil {
		d.line(s, "declare %s %s", s.Type, s.Name)
		return nil
	}
	d.line(s, "declare %s %s = %s", s.Type, s.Name, s.Init)
	return nil
}

func (d *dumper) VisitAssignment(s *compiler.Assignment) error {
	d.line(s, "assign %s %s %s", s.Name, s.Op, s.Value)
	return nil
}

func (d *dumper) VisitIf(s *compiler.IfStmt) error {
	d.line(s, "if %s", s.Cond)
	if err := d.block("then", s.Then); err != nil {
		return err
	}
	return d.block("else", s.Else)
}

func (d *dumper) VisitFor(s *compiler.ForStmt) error {
	d.line(s, "for cond=%v", s.Cond)
	if err := d.nested(s.Init, s.Post); err != nil {
		return err
	}
	return d.block("body", s.Body)
}

func (d *dumper) VisitWhile(s *compiler.WhileStmt) error {
	d.line(s, "while %s", s.Cond)
	return d.block("body", s.Body)
}

func (d *dumper) VisitDoWhile(s *compiler.DoWhileStmt) error {
	d.line(s, "do-while %s", s.Cond)
	return d.block("body", s.Body)
}

func (d *dumper) VisitSwitch(s *compiler.SwitchStmt) error {
	d.line(s, "switch %s", s.Target)
	for _, c := range s.Cases {
		if err := d.block(fmt.Sprintf("case %s", c.Value), &compiler.BlockStmt{Stmts: c.Body}); err != nil {
			return err
		}
	}
	if s.Default != nil {
		return d.block("default", &compiler.BlockStmt{Stmts: s.Default})
	}
	return nil
}

func (d *dumper) VisitReturn(s *compiler.ReturnStmt) error {
	if s.Expr == nil {
		d.line(s, "return")
		return nil
	}
	d.line(s, "return %s", s.Expr)
	return nil
}

func (d *dumper) VisitBlock(s *compiler.BlockStmt) error {
	d.line(s, "block")
	return d.nested(s.Stmts...)
}

func (d *dumper) VisitBreak(s *compiler.BreakStmt) error {
	d.line(s, "break")
	return nil
}

func (d *dumper) VisitContinue(s *compiler.ContinueStmt) error {
	d.line(s, "continue")
	return nil
}

func (d *dumper) VisitExprStmt(s *compiler.ExprStmt) error {
	d.line(s, "expr %s", s.Expr)
	return nil
}
