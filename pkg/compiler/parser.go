package compiler

import (
	"fmt"
	"strings"
)

// Parser consumes the flat token slice produced by the Lexer and builds an AST.
//
// Grammar (scalar C subset):
//
//	program      = (functionDecl | prototype | varDecl)* EOF
//	functionDecl = typeSpec IDENTIFIER "(" params ")" block
//	prototype    = typeSpec IDENTIFIER "(" params ")" ";"
//	varDecl      = typeSpec IDENTIFIER ("=" expression)? ";"
//	typeSpec     = qualifier* typeKeyword+ qualifier*
//	statement    = varDecl | simple ";" | returnStmt | block | if | for
//	             | while | doWhile | switch | "break" ";" | "continue" ";" | ";"
//	simple       = IDENTIFIER assignOp expression | expression
//	expression   = logical_or
//	logical_or   = logical_and ("||" logical_and)*
//	logical_and  = bitwise_or ("&&" bitwise_or)*
//	bitwise_or   = bitwise_xor ("|" bitwise_xor)*
//	bitwise_xor  = bitwise_and ("^" bitwise_and)*
//	bitwise_and  = equality ("&" equality)*
//	equality     = relational (("=="|"!=") relational)*
//	relational   = shift (("<"|">"|"<="|">=") shift)*
//	shift        = additive (("<<"|">>") additive)*
//	additive     = multiplicative (("+"|"-") multiplicative)*
//	multiplicative = unary (("*"|"/"|"%") unary)*
//	unary        = ("-"|"+"|"!"|"~"|"++"|"--") unary | "(" typeSpec ")" unary | postfix
//	postfix      = primary ("(" args ")" | "++" | "--")*
//	primary      = INTEGER | FLOAT | CHAR_LIT | STRING | IDENTIFIER | "(" expression ")"
//
// Pointers, arrays, aggregates and typedefs are rejected with a parse error.
type Parser struct {
	tokens      []Token
	pos         int
	sourceLines []string
}

func NewParser(tokens []Token, rawSource string) *Parser {
	return &Parser{tokens: tokens, sourceLines: strings.Split(rawSource, "\n")}
}

// fmtError wraps an error message with the source line where the token appears.
func (p *Parser) fmtError(tok Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	lineIdx := tok.Line - 1 // Lines are 1-based

	snippet := "<source unavailable>"
	if lineIdx >= 0 && lineIdx < len(p.sourceLines) {
		snippet = strings.TrimSpace(p.sourceLines[lineIdx])
	}

	return fmt.Errorf("line %d: %s\n  |> %s", tok.Line, msg, snippet)
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	return p.peekAt(0)
}

// peekAt returns the token at the given offset from the current position.
func (p *Parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		if len(p.tokens) > 0 {
			last := p.tokens[len(p.tokens)-1]
			return Token{Type: EOF, Line: last.Line, Col: last.Col}
		}
		return Token{Type: EOF}
	}
	return p.tokens[p.pos+offset]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.fmtError(tok, "expected %s, got %s (%q)", tt, tok.Type, tok.Lexeme)
	}
	return p.advance(), nil
}

// startsType reports whether tt can begin a declaration.
func startsType(tt TokenType) bool {
	return tt.IsTypeKeyword() || tt.IsQualifier() ||
		tt == STRUCT || tt == UNION || tt == ENUM || tt == TYPEDEF
}

// parseTypeSpec reads a run of type keywords and returns them joined by
// single spaces, e.g. "unsigned long". Qualifiers are consumed and dropped.
func (p *Parser) parseTypeSpec() (string, Token, error) {
	first := p.peek()
	var words []string
	for {
		tok := p.peek()
		switch {
		case tok.Type.IsQualifier():
			p.advance()
		case tok.Type.IsTypeKeyword():
			words = append(words, p.advance().Lexeme)
		case tok.Type == STRUCT || tok.Type == UNION || tok.Type == ENUM:
			return "", first, p.fmtError(tok, "%s types are not supported", tok.Lexeme)
		case tok.Type == TYPEDEF:
			return "", first, p.fmtError(tok, "typedef is not supported")
		default:
			if len(words) == 0 {
				return "", first, p.fmtError(tok, "expected type, got %s (%q)", tok.Type, tok.Lexeme)
			}
			return strings.Join(words, " "), first, nil
		}
	}
}

// parseDeclarator reads the name that follows a type specifier.
func (p *Parser) parseDeclarator() (Token, error) {
	if tok := p.peek(); tok.Type == STAR {
		return tok, p.fmtError(tok, "pointer declarations are not supported")
	}
	return p.expect(IDENTIFIER)
}

//  Expressions

// parseExpression is the entry point for expression parsing.
func (p *Parser) parseExpression() (Expr, error) {
	return p.parseLogicalOr()
}

// parseBinaryLevel parses a left-associative chain of operators drawn from ops,
// with operands produced by next.
func (p *Parser) parseBinaryLevel(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		matched := false
		for _, op := range ops {
			if tok.Type == op {
				matched = true
				break
			}
		}
		if !matched {
			return expr, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Pos: expr.Position(), Op: tok.Lexeme, Left: expr, Right: right}
	}
}

// parseLogicalOr handles ||
func (p *Parser) parseLogicalOr() (Expr, error) {
	return p.parseBinaryLevel(p.parseLogicalAnd, OR_LOGICAL)
}

// parseLogicalAnd handles &&
func (p *Parser) parseLogicalAnd() (Expr, error) {
	return p.parseBinaryLevel(p.parseBitwiseOr, AND_LOGICAL)
}

func (p *Parser) parseBitwiseOr() (Expr, error) {
	return p.parseBinaryLevel(p.parseBitwiseXor, PIPE)
}

func (p *Parser) parseBitwiseXor() (Expr, error) {
	return p.parseBinaryLevel(p.parseBitwiseAnd, CARET)
}

// parseBitwiseAnd handles binary &. Unary & is rejected in parseUnary.
func (p *Parser) parseBitwiseAnd() (Expr, error) {
	return p.parseBinaryLevel(p.parseEquality, AND)
}

func (p *Parser) parseEquality() (Expr, error) {
	return p.parseBinaryLevel(p.parseRelational, EQUALS, NOT_EQ)
}

func (p *Parser) parseRelational() (Expr, error) {
	return p.parseBinaryLevel(p.parseShift, LESS, GREATER, LESS_EQ, GREATER_EQ)
}

func (p *Parser) parseShift() (Expr, error) {
	return p.parseBinaryLevel(p.parseAdditive, SHL_OP, SHR_OP)
}

func (p *Parser) parseAdditive() (Expr, error) {
	return p.parseBinaryLevel(p.parseMultiplicative, PLUS, MINUS)
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	return p.parseBinaryLevel(p.parseUnary, STAR, SLASH, PERCENT)
}

// parseUnary handles casts and the prefix operators - + ! ~ ++ --.
func (p *Parser) parseUnary() (Expr, error) {
	tok := p.peek()

	// Cast: "(" typeSpec ")" unary
	if tok.Type == LPAREN && startsType(p.peekAt(1).Type) {
		p.advance()
		typ, _, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		if star := p.peek(); star.Type == STAR {
			return nil, p.fmtError(star, "pointer casts are not supported")
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &CastExpr{Pos: tok.Pos(), Type: typ, Expr: operand}, nil
	}

	switch tok.Type {
	case AND, STAR:
		return nil, p.fmtError(tok, "pointer operator %q is not supported", tok.Lexeme)
	case MINUS, PLUS, NOT, TILDE, PLUS_PLUS, MINUS_MINUS:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		// -5 is kept as a single negative literal.
		if lit, ok := operand.(*Literal); ok && tok.Type == MINUS &&
			(lit.Type == IntLit || lit.Type == FloatLit) && !strings.HasPrefix(lit.Value, "-") {
			return &Literal{Pos: tok.Pos(), Type: lit.Type, Value: "-" + lit.Value}, nil
		}
		return &UnaryExpr{Pos: tok.Pos(), Op: tok.Lexeme, Right: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles function calls and postfix ++ / --.
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		switch tok.Type {
		case LPAREN:
			ref, ok := expr.(*VarRef)
			if !ok {
				return nil, p.fmtError(tok, "expected function name before '('")
			}
			p.advance()
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			expr = &FunctionCall{Pos: ref.Pos, Name: ref.Name, Args: args}
		case PLUS_PLUS, MINUS_MINUS:
			p.advance()
			expr = &PostfixExpr{Pos: expr.Position(), Op: tok.Lexeme, Left: expr}
		case LBRACKET:
			return nil, p.fmtError(tok, "array indexing is not supported")
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseCallArgs() ([]Expr, error) {
	var args []Expr
	if p.peek().Type != RPAREN {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.peek().Type != COMMA {
				break
			}
			p.advance()
		}
	}

	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// parsePrimary handles literals, variables, and parenthesised expressions.
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case INTEGER:
		p.advance()
		return &Literal{Pos: tok.Pos(), Type: IntLit, Value: tok.Lexeme}, nil

	case FLOAT:
		p.advance()
		return &Literal{Pos: tok.Pos(), Type: FloatLit, Value: tok.Lexeme}, nil

	case CHAR_LIT:
		p.advance()
		return &Literal{Pos: tok.Pos(), Type: CharLit, Value: tok.Lexeme}, nil

	case STRING:
		p.advance()
		return &Literal{Pos: tok.Pos(), Type: StringLit, Value: tok.Lexeme}, nil

	case IDENTIFIER:
		p.advance()
		if strings.EqualFold(tok.Lexeme, "true") || strings.EqualFold(tok.Lexeme, "false") {
			return &Literal{Pos: tok.Pos(), Type: BoolLit, Value: tok.Lexeme}, nil
		}
		return &VarRef{Pos: tok.Pos(), Name: tok.Lexeme}, nil

	case LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, p.fmtError(tok, "expected expression, got %s (%q)", tok.Type, tok.Lexeme)
	}
}

//  Statements

// parseVarDecl parses  typeSpec name [= expr] ;
func (p *Parser) parseVarDecl() (*VariableDecl, error) {
	typ, first, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.parseDeclarator()
	if err != nil {
		return nil, err
	}
	return p.finishVarDecl(typ, first, nameTok)
}

// finishVarDecl parses the optional initializer and terminating ';' of a
// declaration whose type and name have already been read.
func (p *Parser) finishVarDecl(typ string, first, nameTok Token) (*VariableDecl, error) {
	decl := &VariableDecl{Pos: first.Pos(), Name: nameTok.Lexeme, Type: typ}

	if tok := p.peek(); tok.Type == LBRACKET {
		return nil, p.fmtError(tok, "array declarations are not supported")
	}

	if p.peek().Type == ASSIGN {
		p.advance()
		if tok := p.peek(); tok.Type == LBRACE {
			return nil, p.fmtError(tok, "initializer lists are not supported")
		}
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}

	if tok := p.peek(); tok.Type == COMMA {
		return nil, p.fmtError(tok, "multiple declarators in one declaration are not supported")
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseSimple parses an assignment or expression statement without its
// terminator. It is shared by statements and for-loop clauses.
func (p *Parser) parseSimple() (Stmt, error) {
	tok := p.peek()
	if tok.Type == IDENTIFIER && p.peekAt(1).Type.IsAssignOp() {
		p.advance()
		op := p.advance().Lexeme
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &Assignment{Pos: tok.Pos(), Name: tok.Lexeme, Op: op, Value: val}, nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if next := p.peek(); next.Type.IsAssignOp() {
		return nil, p.fmtError(next, "assignment target must be a plain variable")
	}
	return &ExprStmt{Pos: tok.Pos(), Expr: expr}, nil
}

// parseReturn parses  return [expr] ;
// The leading RETURN token has already been consumed by parseStatement.
func (p *Parser) parseReturn(ret Token) (Stmt, error) {
	stmt := &ReturnStmt{Pos: ret.Pos()}
	if p.peek().Type != SEMICOLON {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Expr = expr
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseBlock parses { stmt1; stmt2; ... }
// The leading LBRACE token has already been consumed.
func (p *Parser) parseBlock(open Token) (*BlockStmt, error) {
	block := &BlockStmt{Pos: open.Pos()}
	for p.peek().Type != RBRACE && p.peek().Type != EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

// parseBody parses the body of a control statement. A single statement is
// wrapped in a BlockStmt so every body has the same shape.
func (p *Parser) parseBody() (*BlockStmt, error) {
	start := p.peek()
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	switch s := stmt.(type) {
	case *BlockStmt:
		return s, nil
	case nil:
		return &BlockStmt{Pos: start.Pos()}, nil
	default:
		return &BlockStmt{Pos: start.Pos(), Stmts: []Stmt{s}}, nil
	}
}

// parseCondition parses ( expr ).
func (p *Parser) parseCondition() (Expr, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseIf parses if ( cond ) body [ else elseBody ]
// The leading IF token has already been consumed by parseStatement.
func (p *Parser) parseIf(kw Token) (Stmt, error) {
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Pos: kw.Pos(), Cond: cond, Then: then}
	if p.peek().Type == ELSE {
		p.advance()
		// else if (...) becomes an else block holding the nested IfStmt.
		stmt.Else, err = p.parseBody()
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// parseWhile parses while ( cond ) body
func (p *Parser) parseWhile(kw Token) (Stmt, error) {
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Pos: kw.Pos(), Cond: cond, Body: body}, nil
}

// parseDoWhile parses do body while ( cond ) ;
func (p *Parser) parseDoWhile(kw Token) (Stmt, error) {
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(WHILE); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &DoWhileStmt{Pos: kw.Pos(), Body: body, Cond: cond}, nil
}

// parseCaseBody collects statements up to the next label or the closing brace.
func (p *Parser) parseCaseBody() ([]Stmt, error) {
	var body []Stmt
	for {
		switch p.peek().Type {
		case CASE, DEFAULT, RBRACE, EOF:
			return body, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			body = append(body, stmt)
		}
	}
}

// parseSwitch parses switch ( expr ) { case val: ... default: ... }
func (p *Parser) parseSwitch(kw Token) (Stmt, error) {
	target, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}

	stmt := &SwitchStmt{Pos: kw.Pos(), Target: target}
	hasDefault := false

	for p.peek().Type != RBRACE && p.peek().Type != EOF {
		tok := p.advance()
		switch tok.Type {
		case CASE:
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(COLON); err != nil {
				return nil, err
			}
			body, err := p.parseCaseBody()
			if err != nil {
				return nil, err
			}
			stmt.Cases = append(stmt.Cases, CaseClause{Value: val, Body: body})

		case DEFAULT:
			if hasDefault {
				return nil, p.fmtError(tok, "multiple default labels in switch")
			}
			hasDefault = true
			if _, err := p.expect(COLON); err != nil {
				return nil, err
			}
			body, err := p.parseCaseBody()
			if err != nil {
				return nil, err
			}
			stmt.Default = body

		default:
			return nil, p.fmtError(tok, "expected case or default in switch, got %s", tok.Type)
		}
	}

	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseFor parses for ( init; cond; post ) body
func (p *Parser) parseFor(kw Token) (Stmt, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	stmt := &ForStmt{Pos: kw.Pos()}

	switch tt := p.peek().Type; {
	case tt == SEMICOLON:
		p.advance()
	case startsType(tt):
		decl, err := p.parseVarDecl() // consumes ';'
		if err != nil {
			return nil, err
		}
		stmt.Init = decl
	default:
		init, err := p.parseSimple()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		stmt.Init = init
	}

	if p.peek().Type != SEMICOLON {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Cond = cond
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}

	if p.peek().Type != RPAREN {
		post, err := p.parseSimple()
		if err != nil {
			return nil, err
		}
		stmt.Post = post
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

// expectSemicolon finishes a keyword statement such as break; or continue;
func (p *Parser) expectSemicolon(stmt Stmt) (Stmt, error) {
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseStatement dispatches to the correct sub-parser based on the leading token.
// It returns (nil, nil) for an empty statement.
func (p *Parser) parseStatement() (Stmt, error) {
	tok := p.peek()
	switch tok.Type {

	case LBRACE:
		p.advance()
		return p.parseBlock(tok)

	case IF:
		p.advance()
		return p.parseIf(tok)

	case WHILE:
		p.advance()
		return p.parseWhile(tok)

	case DO:
		p.advance()
		return p.parseDoWhile(tok)

	case FOR:
		p.advance()
		return p.parseFor(tok)

	case SWITCH:
		p.advance()
		return p.parseSwitch(tok)

	case BREAK:
		p.advance()
		return p.expectSemicolon(&BreakStmt{Pos: tok.Pos()})

	case CONTINUE:
		p.advance()
		return p.expectSemicolon(&ContinueStmt{Pos: tok.Pos()})

	case RETURN:
		p.advance()
		return p.parseReturn(tok)

	case SEMICOLON:
		p.advance()
		return nil, nil

	case EOF:
		return nil, p.fmtError(tok, "unexpected end of input")

	case CASE, DEFAULT, ELSE:
		return nil, p.fmtError(tok, "unexpected %q", tok.Lexeme)
	}

	if startsType(tok.Type) {
		return p.parseVarDecl()
	}

	stmt, err := p.parseSimple()
	if err != nil {
		return nil, err
	}
	return p.expectSemicolon(stmt)
}

// parseParams parses a parameter list up to and including the closing ')'.
// The opening '(' has already been consumed. (void) means no parameters.
func (p *Parser) parseParams() ([]Param, error) {
	if p.peek().Type == VOID && p.peekAt(1).Type == RPAREN {
		p.advance()
	}

	var params []Param
	if p.peek().Type != RPAREN {
		for {
			typ, _, err := p.parseTypeSpec()
			if err != nil {
				return nil, err
			}
			param := Param{Type: typ}
			switch tok := p.peek(); tok.Type {
			case STAR:
				return nil, p.fmtError(tok, "pointer parameters are not supported")
			case IDENTIFIER:
				param.Name = p.advance().Lexeme
			}
			if tok := p.peek(); tok.Type == LBRACKET {
				return nil, p.fmtError(tok, "array parameters are not supported")
			}
			params = append(params, param)

			if p.peek().Type != COMMA {
				break
			}
			p.advance()
		}
	}

	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

// parseFunctionDecl parses the rest of  type name(params) { ... }  or a
// prototype ending in ';'. The type and name have already been read.
func (p *Parser) parseFunctionDecl(retType string, first, nameTok Token) (Stmt, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	fn := &FunctionDecl{Pos: first.Pos(), Name: nameTok.Lexeme, Params: params, ReturnType: retType}

	if p.peek().Type == SEMICOLON {
		p.advance()
		return fn, nil
	}

	for i, param := range params {
		if param.Name == "" {
			return nil, p.fmtError(nameTok, "parameter %d of %s has no name", i+1, fn.Name)
		}
	}

	open, err := p.expect(LBRACE)
	if err != nil {
		return nil, err
	}
	fn.Body, err = p.parseBlock(open)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// parseTopLevel parses a function definition, prototype or global variable.
func (p *Parser) parseTopLevel() (Stmt, error) {
	tok := p.peek()
	if !startsType(tok.Type) {
		return nil, p.fmtError(tok, "executable statement %q found outside of function body", tok.Lexeme)
	}

	typ, first, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.parseDeclarator()
	if err != nil {
		return nil, err
	}
	if p.peek().Type == LPAREN {
		return p.parseFunctionDecl(typ, first, nameTok)
	}
	return p.finishVarDecl(typ, first, nameTok)
}

// Parse builds a Program from a token stream. Only declarations are allowed
// at the top level.
func Parse(tokens []Token, rawSource string) (*Program, error) {
	p := NewParser(tokens, rawSource)
	prog := &Program{}
	for p.peek().Type != EOF {
		decl, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, decl)
	}
	return prog, nil
}
