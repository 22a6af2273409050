package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable / function name
	INTEGER    // integer literal, raw text incl. suffix, e.g. 10u, 0x1F
	FLOAT      // floating literal, raw text, e.g. 3.14, 1e-3, 2.0f
	CHAR_LIT   // character literal, raw text incl. quotes, e.g. 'a'
	STRING     // string literal, raw text incl. quotes

	// Type keywords
	INT      // "int"
	CHAR     // "char"
	FLOAT_KW // "float"
	DOUBLE   // "double"
	VOID     // "void"
	LONG     // "long"
	SHORT    // "short"
	SIGNED   // "signed"
	UNSIGNED // "unsigned"
	BOOL     // "_Bool" or "bool"

	// Qualifiers and storage classes (accepted and dropped)
	CONST    // "const"
	VOLATILE // "volatile"
	STATIC   // "static"
	EXTERN   // "extern"
	REGISTER // "register"

	// Aggregate keywords (rejected by the parser)
	STRUCT  // "struct"
	UNION   // "union"
	ENUM    // "enum"
	TYPEDEF // "typedef"

	// Control keywords
	IF       // "if"
	ELSE     // "else"
	WHILE    // "while"
	DO       // "do"
	FOR      // "for"
	RETURN   // "return"
	SWITCH   // "switch"
	CASE     // "case"
	DEFAULT  // "default"
	BREAK    // "break"
	CONTINUE // "continue"

	// Paired delimiters
	LBRACE   // {
	RBRACE   // }
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]

	// Punctuation
	SEMICOLON // ;
	COMMA     // ,
	COLON     // :

	// Arithmetic operators
	PLUS        // +
	MINUS       // -
	STAR        // *
	SLASH       // /
	PERCENT     // %
	AND         // &
	PIPE        // |
	CARET       // ^
	TILDE       // ~
	SHL_OP      // <<
	SHR_OP      // >>
	AND_LOGICAL // &&
	OR_LOGICAL  // ||
	NOT         // !

	PLUS_PLUS   // ++
	MINUS_MINUS // --

	// Assignment / comparison  (order matters: ASSIGN before EQUALS)
	ASSIGN         // =
	PLUS_ASSIGN    // +=
	MINUS_ASSIGN   // -=
	STAR_ASSIGN    // *=
	SLASH_ASSIGN   // /=
	PERCENT_ASSIGN // %=

	EQUALS     // ==
	NOT_EQ     // !=
	LESS       // <
	GREATER    // >
	LESS_EQ    // <=
	GREATER_EQ // >=
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:            "EOF",
	IDENTIFIER:     "IDENTIFIER",
	INTEGER:        "INTEGER",
	FLOAT:          "FLOAT",
	CHAR_LIT:       "CHAR_LIT",
	STRING:         "STRING",
	INT:            "INT",
	CHAR:           "CHAR",
	FLOAT_KW:       "FLOAT_KW",
	DOUBLE:         "DOUBLE",
	VOID:           "VOID",
	LONG:           "LONG",
	SHORT:          "SHORT",
	SIGNED:         "SIGNED",
	UNSIGNED:       "UNSIGNED",
	BOOL:           "BOOL",
	CONST:          "CONST",
	VOLATILE:       "VOLATILE",
	STATIC:         "STATIC",
	EXTERN:         "EXTERN",
	REGISTER:       "REGISTER",
	STRUCT:         "STRUCT",
	UNION:          "UNION",
	ENUM:           "ENUM",
	TYPEDEF:        "TYPEDEF",
	IF:             "IF",
	ELSE:           "ELSE",
	WHILE:          "WHILE",
	DO:             "DO",
	FOR:            "FOR",
	RETURN:         "RETURN",
	SWITCH:         "SWITCH",
	CASE:           "CASE",
	DEFAULT:        "DEFAULT",
	BREAK:          "BREAK",
	CONTINUE:       "CONTINUE",
	LBRACE:         "LBRACE",
	RBRACE:         "RBRACE",
	LPAREN:         "LPAREN",
	RPAREN:         "RPAREN",
	LBRACKET:       "LBRACKET",
	RBRACKET:       "RBRACKET",
	SEMICOLON:      "SEMICOLON",
	COMMA:          "COMMA",
	COLON:          "COLON",
	PLUS:           "PLUS",
	MINUS:          "MINUS",
	STAR:           "STAR",
	SLASH:          "SLASH",
	PERCENT:        "PERCENT",
	AND:            "AND",
	PIPE:           "PIPE",
	CARET:          "CARET",
	TILDE:          "TILDE",
	SHL_OP:         "SHL_OP",
	SHR_OP:         "SHR_OP",
	AND_LOGICAL:    "AND_LOGICAL",
	OR_LOGICAL:     "OR_LOGICAL",
	NOT:            "NOT",
	PLUS_PLUS:      "PLUS_PLUS",
	MINUS_MINUS:    "MINUS_MINUS",
	ASSIGN:         "ASSIGN",
	PLUS_ASSIGN:    "PLUS_ASSIGN",
	MINUS_ASSIGN:   "MINUS_ASSIGN",
	STAR_ASSIGN:    "STAR_ASSIGN",
	SLASH_ASSIGN:   "SLASH_ASSIGN",
	PERCENT_ASSIGN: "PERCENT_ASSIGN",
	EQUALS:         "EQUALS",
	NOT_EQ:         "NOT_EQ",
	LESS:           "LESS",
	GREATER:        "GREATER",
	LESS_EQ:        "LESS_EQ",
	GREATER_EQ:     "GREATER_EQ",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsTypeKeyword reports whether tt can start a type specifier.
func (tt TokenType) IsTypeKeyword() bool {
	return tt >= INT && tt <= BOOL
}

// IsQualifier reports whether tt is a qualifier or storage class that the
// parser accepts and drops.
func (tt TokenType) IsQualifier() bool {
	return tt >= CONST && tt <= REGISTER
}

// IsAssignOp reports whether tt is = or a compound assignment.
func (tt TokenType) IsAssignOp() bool {
	return tt >= ASSIGN && tt <= PERCENT_ASSIGN
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
	Col    int    // 1-based source column
}

// Pos returns the token's source position.
func (t Token) Pos() Pos { return Pos{Line: t.Line, Col: t.Col} }

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d:%d", t.Type, t.Lexeme, t.Line, t.Col)
}
