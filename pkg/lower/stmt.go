package lower

import (
	"fmt"

	"ctox/pkg/compiler"
	"ctox/pkg/diag"
)

// block lowers b one level deeper than the current depth and restores the
// depth on return.
func (l *lowerer) block(b *compiler.BlockStmt) error {
	l.depth++
	defer func() { l.depth-- }()

	start := l.out.len()
	if err := l.stmts(b.Stmts); err != nil {
		return err
	}
	if l.out.len() == start {
		if text, ok := l.b.Empty(); ok {
			l.emit(text)
		}
	}
	return nil
}

func (l *lowerer) stmts(list []compiler.Stmt) error {
	for _, s := range list {
		if err := s.Accept(l); err != nil {
			return err
		}
	}
	return nil
}

// closeBlock emits the backend's block terminator, if it has one.
func (l *lowerer) closeBlock() {
	if text, ok := l.b.Close(); ok {
		l.emit(text)
	}
}

// placeholder records an unsupported statement and, in Lenient mode,
// leaves a marker line in its place.
func (l *lowerer) placeholder(s compiler.Stmt) error {
	if err := l.unsupported(s); err != nil {
		return err
	}
	l.emit(l.b.Unsupported(s.Kind()))
	return nil
}

func (l *lowerer) VisitFunctionDecl(fn *compiler.FunctionDecl) error {
	if fn.Body == nil {
		l.Note(diag.KindPrototypeSkipped, fn, "prototype for %s produces no output", fn.Name)
		return nil
	}
	l.log.Debug("lowering function", "function", fn.Name, "entry", fn.IsEntryPoint())
	if l.out.len() > l.body {
		l.out.blank()
	}

	header, err := l.b.Function(fn, l)
	if err != nil {
		return fmt.Errorf("function %s: %w", fn.Name, err)
	}
	l.emit(l.b.Open(header))

	l.fn = fn
	defer func() { l.fn = nil }()
	if err := l.block(fn.Body); err != nil {
		return err
	}
	l.closeBlock()
	return nil
}

func (l *lowerer) VisitVariableDecl(d *compiler.VariableDecl) error {
	text, err := l.b.Declare(d, l, l.fn == nil)
	if err != nil {
		return err
	}
	l.emit(text)
	return nil
}

func (l *lowerer) VisitAssignment(a *compiler.Assignment) error {
	text, err := l.b.Assign(a, l)
	if err != nil {
		return err
	}
	l.emit(text)
	return nil
}

func (l *lowerer) VisitIf(s *compiler.IfStmt) error {
	cond, err := l.Expr(s.Cond)
	if err != nil {
		return err
	}
	l.emit(l.b.Open(l.b.If(cond)))
	if err := l.block(s.Then); err != nil {
		return err
	}
	l.closeBlock()

	if s.Else == nil {
		return nil
	}
	l.emit(l.b.Open(l.b.Else()))
	if err := l.block(s.Else); err != nil {
		return err
	}
	l.closeBlock()
	return nil
}

func (l *lowerer) VisitFor(f *compiler.ForStmt) error {
	header, err := l.b.Loop(f, l)
	if err != nil {
		return err
	}
	l.emit(l.b.Open(header))
	if err := l.block(f.Body); err != nil {
		return err
	}
	l.closeBlock()
	return nil
}

func (l *lowerer) VisitReturn(r *compiler.ReturnStmt) error {
	text, ok, err := l.b.Return(r, l.fn, l)
	if err != nil {
		return err
	}
	if ok {
		l.emit(text)
	}
	return nil
}

// VisitBlock handles a bare { ... } inside a body. Its statements are
// flattened into the enclosing block.
func (l *lowerer) VisitBlock(b *compiler.BlockStmt) error {
	return l.stmts(b.Stmts)
}

func (l *lowerer) VisitWhile(s *compiler.WhileStmt) error       { return l.placeholder(s) }
func (l *lowerer) VisitDoWhile(s *compiler.DoWhileStmt) error   { return l.placeholder(s) }
func (l *lowerer) VisitSwitch(s *compiler.SwitchStmt) error     { return l.placeholder(s) }
func (l *lowerer) VisitBreak(s *compiler.BreakStmt) error       { return l.placeholder(s) }
func (l *lowerer) VisitContinue(s *compiler.ContinueStmt) error { return l.placeholder(s) }
func (l *lowerer) VisitExprStmt(s *compiler.ExprStmt) error     { return l.placeholder(s) }
