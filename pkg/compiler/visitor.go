package compiler

// StmtVisitor is implemented by consumers that walk statements. Each method
// returns an error so a walk can stop at the first failure.
type StmtVisitor interface {
	VisitFunctionDecl(*FunctionDecl) error
	VisitVariableDecl(*VariableDecl) error
	VisitAssignment(*Assignment) error
	VisitIf(*IfStmt) error
	VisitFor(*ForStmt) error
	VisitWhile(*WhileStmt) error
	VisitDoWhile(*DoWhileStmt) error
	VisitSwitch(*SwitchStmt) error
	VisitReturn(*ReturnStmt) error
	VisitBlock(*BlockStmt) error
	VisitBreak(*BreakStmt) error
	VisitContinue(*ContinueStmt) error
	VisitExprStmt(*ExprStmt) error
}

// ExprVisitor renders or evaluates an expression into a string.
type ExprVisitor interface {
	VisitLiteral(*Literal) (string, error)
	VisitVarRef(*VarRef) (string, error)
	VisitBinary(*BinaryExpr) (string, error)
	VisitUnary(*UnaryExpr) (string, error)
	VisitPostfix(*PostfixExpr) (string, error)
	VisitCall(*FunctionCall) (string, error)
	VisitCast(*CastExpr) (string, error)
}

func (d *FunctionDecl) Accept(v StmtVisitor) error { return v.VisitFunctionDecl(d) }
func (d *VariableDecl) Accept(v StmtVisitor) error { return v.VisitVariableDecl(d) }
func (a *Assignment) Accept(v StmtVisitor) error   { return v.VisitAssignment(a) }
func (i *IfStmt) Accept(v StmtVisitor) error       { return v.VisitIf(i) }
func (f *ForStmt) Accept(v StmtVisitor) error      { return v.VisitFor(f) }
func (w *WhileStmt) Accept(v StmtVisitor) error    { return v.VisitWhile(w) }
func (d *DoWhileStmt) Accept(v StmtVisitor) error  { return v.VisitDoWhile(d) }
func (s *SwitchStmt) Accept(v StmtVisitor) error   { return v.VisitSwitch(s) }
func (r *ReturnStmt) Accept(v StmtVisitor) error   { return v.VisitReturn(r) }
func (b *BlockStmt) Accept(v StmtVisitor) error    { return v.VisitBlock(b) }
func (b *BreakStmt) Accept(v StmtVisitor) error    { return v.VisitBreak(b) }
func (c *ContinueStmt) Accept(v StmtVisitor) error { return v.VisitContinue(c) }
func (e *ExprStmt) Accept(v StmtVisitor) error     { return v.VisitExprStmt(e) }

func (l *Literal) Accept(v ExprVisitor) (string, error)      { return v.VisitLiteral(l) }
func (r *VarRef) Accept(v ExprVisitor) (string, error)       { return v.VisitVarRef(r) }
func (b *BinaryExpr) Accept(v ExprVisitor) (string, error)   { return v.VisitBinary(b) }
func (u *UnaryExpr) Accept(v ExprVisitor) (string, error)    { return v.VisitUnary(u) }
func (p *PostfixExpr) Accept(v ExprVisitor) (string, error)  { return v.VisitPostfix(p) }
func (c *FunctionCall) Accept(v ExprVisitor) (string, error) { return v.VisitCall(c) }
func (c *CastExpr) Accept(v ExprVisitor) (string, error)     { return v.VisitCast(c) }
