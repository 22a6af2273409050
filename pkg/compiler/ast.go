package compiler

import (
	"fmt"
	"strings"
)

// Pos is a 1-based source position. The zero value means "unknown".
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Node is implemented by every AST node.
type Node interface {
	Position() Pos
	// Kind names the construct in diagnostics, e.g. "while loop".
	Kind() string
	String() string
}

//  Expression nodes

// Expr is implemented by every node that produces a value.
type Expr interface {
	Node
	Accept(v ExprVisitor) (string, error)
}

// LiteralKind classifies a literal's raw text.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	CharLit
	StringLit
	BoolLit
)

// Literal is a constant kept exactly as spelled in the source.
//
//	int x = 10u;
//	        ^^^  Literal{Type: IntLit, Value: "10u"}
//	x = TRUE;
//	    ^^^^  Literal{Type: BoolLit, Value: "TRUE"}
type Literal struct {
	Pos   Pos
	Type  LiteralKind
	Value string
}

// VarRef is a read of a named variable.
//
//	return x;
//	       ^  VarRef{Name: "x"}
type VarRef struct {
	Pos  Pos
	Name string
}

// BinaryExpr represents a binary operation: Left Op Right.
//
//	x + 1
//	^ ^ ^
//	| | |
//	| | Right
//	| Op
//	Left
type BinaryExpr struct {
	Pos   Pos
	Op    string
	Left  Expr
	Right Expr
}

// UnaryExpr represents a prefix operation such as !x, -x, ~x or ++x.
type UnaryExpr struct {
	Pos   Pos
	Op    string
	Right Expr
}

// PostfixExpr represents Left++ or Left--.
type PostfixExpr struct {
	Pos  Pos
	Op   string
	Left Expr
}

// FunctionCall represents name(args).
type FunctionCall struct {
	Pos  Pos
	Name string
	Args []Expr
}

// CastExpr represents (Type) Expr.
type CastExpr struct {
	Pos  Pos
	Type string
	Expr Expr
}

//  Statement nodes

// Stmt is implemented by every node that does not produce a value.
type Stmt interface {
	Node
	Accept(v StmtVisitor) error
}

// VariableDecl represents  int name = expr;
type VariableDecl struct {
	Pos  Pos
	Name string
	Type string // e.g. "int", "unsigned long"
	Init Expr   // may be nil
}

// Assignment represents  name = value;  or a compound form such as name += value;
type Assignment struct {
	Pos   Pos
	Name  string
	Op    string // "=", "+=", "-=", "*=", "/=", "%="
	Value Expr
}

// ReturnStmt represents  return [expr];
type ReturnStmt struct {
	Pos  Pos
	Expr Expr // may be nil
}

// BlockStmt represents { statement; ... }
type BlockStmt struct {
	Pos   Pos
	Stmts []Stmt
}

// IfStmt represents if (cond) then [else else]. A non-block branch is
// wrapped in a one-statement BlockStmt by the parser.
type IfStmt struct {
	Pos  Pos
	Cond Expr
	Then *BlockStmt
	Else *BlockStmt // may be nil
}

// ForStmt represents for (init; cond; post) body. Any of Init, Cond and
// Post may be nil.
type ForStmt struct {
	Pos  Pos
	Init Stmt
	Cond Expr
	Post Stmt
	Body *BlockStmt
}

// WhileStmt represents while (cond) body.
type WhileStmt struct {
	Pos  Pos
	Cond Expr
	Body *BlockStmt
}

// DoWhileStmt represents do body while (cond);
type DoWhileStmt struct {
	Pos  Pos
	Body *BlockStmt
	Cond Expr
}

// CaseClause represents case Value: Body
type CaseClause struct {
	Value Expr
	Body  []Stmt
}

// SwitchStmt represents switch (Target) { Cases... Default... }
type SwitchStmt struct {
	Pos     Pos
	Target  Expr
	Cases   []CaseClause
	Default []Stmt
}

// BreakStmt represents break;
type BreakStmt struct{ Pos Pos }

// ContinueStmt represents continue;
type ContinueStmt struct{ Pos Pos }

// ExprStmt represents an expression evaluated for its side effects (e.g. a call or i++).
type ExprStmt struct {
	Pos  Pos
	Expr Expr
}

// Param is one function parameter.
type Param struct {
	Name string
	Type string
}

// FunctionDecl represents  type name(params) { body }. Body is nil for a
// prototype such as  int add(int a, int b);
type FunctionDecl struct {
	Pos        Pos
	Name       string
	Params     []Param
	ReturnType string
	Body       *BlockStmt
}

// IsEntryPoint reports whether the function is the program's main.
func (f *FunctionDecl) IsEntryPoint() bool { return f.Name == "main" }

// Program is the root of the tree: top-level declarations in source order.
type Program struct {
	Decls []Stmt
}

// Functions returns the function definitions (prototypes excluded).
func (p *Program) Functions() []*FunctionDecl {
	var fns []*FunctionDecl
	for _, d := range p.Decls {
		if fn, ok := d.(*FunctionDecl); ok && fn.Body != nil {
			fns = append(fns, fn)
		}
	}
	return fns
}

//  Position / Kind / String

func (l *Literal) Position() Pos      { return l.Pos }
func (v *VarRef) Position() Pos       { return v.Pos }
func (b *BinaryExpr) Position() Pos   { return b.Pos }
func (u *UnaryExpr) Position() Pos    { return u.Pos }
func (p *PostfixExpr) Position() Pos  { return p.Pos }
func (c *FunctionCall) Position() Pos { return c.Pos }
func (c *CastExpr) Position() Pos     { return c.Pos }

func (d *VariableDecl) Position() Pos { return d.Pos }
func (a *Assignment) Position() Pos   { return a.Pos }
func (r *ReturnStmt) Position() Pos   { return r.Pos }
func (b *BlockStmt) Position() Pos    { return b.Pos }
func (i *IfStmt) Position() Pos       { return i.Pos }
func (f *ForStmt) Position() Pos      { return f.Pos }
func (w *WhileStmt) Position() Pos    { return w.Pos }
func (d *DoWhileStmt) Position() Pos  { return d.Pos }
func (s *SwitchStmt) Position() Pos   { return s.Pos }
func (b *BreakStmt) Position() Pos    { return b.Pos }
func (c *ContinueStmt) Position() Pos { return c.Pos }
func (e *ExprStmt) Position() Pos     { return e.Pos }
func (f *FunctionDecl) Position() Pos { return f.Pos }

func (*Literal) Kind() string      { return "literal" }
func (*VarRef) Kind() string       { return "identifier" }
func (*BinaryExpr) Kind() string   { return "binary expression" }
func (*UnaryExpr) Kind() string    { return "unary expression" }
func (*PostfixExpr) Kind() string  { return "postfix expression" }
func (*FunctionCall) Kind() string { return "call expression" }
func (*CastExpr) Kind() string     { return "cast expression" }

func (*VariableDecl) Kind() string { return "variable declaration" }
func (*Assignment) Kind() string   { return "assignment" }
func (*ReturnStmt) Kind() string   { return "return statement" }
func (*BlockStmt) Kind() string    { return "block" }
func (*IfStmt) Kind() string       { return "if statement" }
func (*ForStmt) Kind() string      { return "for loop" }
func (*WhileStmt) Kind() string    { return "while loop" }
func (*DoWhileStmt) Kind() string  { return "do-while loop" }
func (*SwitchStmt) Kind() string   { return "switch statement" }
func (*BreakStmt) Kind() string    { return "break statement" }
func (*ContinueStmt) Kind() string { return "continue statement" }
func (*ExprStmt) Kind() string     { return "expression statement" }
func (*FunctionDecl) Kind() string { return "function definition" }

func (l *Literal) String() string { return l.Value }
func (v *VarRef) String() string  { return v.Name }
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}
func (u *UnaryExpr) String() string   { return fmt.Sprintf("(%s %s)", u.Op, u.Right) }
func (p *PostfixExpr) String() string { return fmt.Sprintf("(%s %s)", p.Left, p.Op) }
func (c *FunctionCall) String() string {
	return fmt.Sprintf("FunctionCall(%s, args=%v)", c.Name, c.Args)
}
func (c *CastExpr) String() string { return fmt.Sprintf("Cast(%s, %s)", c.Type, c.Expr) }

func (d *VariableDecl) String() string {
	return fmt.Sprintf("VariableDecl(%s %s = %v)", d.Type, d.Name, d.Init)
}
func (a *Assignment) String() string {
	return fmt.Sprintf("Assignment(%s %s %s)", a.Name, a.Op, a.Value)
}
func (r *ReturnStmt) String() string { return fmt.Sprintf("ReturnStmt(%v)", r.Expr) }
func (b *BlockStmt) String() string  { return fmt.Sprintf("BlockStmt(len=%d)", len(b.Stmts)) }
func (i *IfStmt) String() string {
	if i.Else != nil {
		return fmt.Sprintf("IfStmt(if %s then %s else %s)", i.Cond, i.Then, i.Else)
	}
	return fmt.Sprintf("IfStmt(if %s then %s)", i.Cond, i.Then)
}
func (f *ForStmt) String() string {
	return fmt.Sprintf("ForStmt(init=%v, cond=%v, post=%v, body=%s)", f.Init, f.Cond, f.Post, f.Body)
}
func (w *WhileStmt) String() string {
	return fmt.Sprintf("WhileStmt(while %s do %s)", w.Cond, w.Body)
}
func (d *DoWhileStmt) String() string {
	return fmt.Sprintf("DoWhileStmt(do %s while %s)", d.Body, d.Cond)
}
func (s *SwitchStmt) String() string {
	return fmt.Sprintf("SwitchStmt(target=%s, cases=%d, default=%d)", s.Target, len(s.Cases), len(s.Default))
}
func (*BreakStmt) String() string    { return "BreakStmt" }
func (*ContinueStmt) String() string { return "ContinueStmt" }
func (e *ExprStmt) String() string   { return fmt.Sprintf("ExprStmt(%s)", e.Expr) }
func (f *FunctionDecl) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type + " " + p.Name
	}
	return fmt.Sprintf("FunctionDecl(%s %s(%s), body=%v)", f.ReturnType, f.Name, strings.Join(params, ", "), f.Body)
}
