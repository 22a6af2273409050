package compiler

import (
	"fmt"
	"unicode"
)

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"int":      INT,
	"char":     CHAR,
	"float":    FLOAT_KW,
	"double":   DOUBLE,
	"void":     VOID,
	"long":     LONG,
	"short":    SHORT,
	"signed":   SIGNED,
	"unsigned": UNSIGNED,
	"_Bool":    BOOL,
	"bool":     BOOL,
	"const":    CONST,
	"volatile": VOLATILE,
	"static":   STATIC,
	"extern":   EXTERN,
	"register": REGISTER,
	"struct":   STRUCT,
	"union":    UNION,
	"enum":     ENUM,
	"typedef":  TYPEDEF,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"do":       DO,
	"for":      FOR,
	"return":   RETURN,
	"switch":   SWITCH,
	"case":     CASE,
	"default":  DEFAULT,
	"break":    BREAK,
	"continue": CONTINUE,
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
	col  int // current 1-based source column
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1, col: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// skipLineComment discards everything from the current position to end-of-line.
// The opening "//" must already have been consumed.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment discards everything up to and including the closing "*/".
// The opening "/*" must already have been consumed.
func (l *Lexer) skipBlockComment() error {
	startLine := l.line
	for l.pos < len(l.src) {
		if l.peek() == '*' && l.peek2() == '/' {
			l.advance() // *
			l.advance() // /
			return nil
		}
		l.advance()
	}
	return fmt.Errorf("unterminated block comment (opened on line %d)", startLine)
}

// scanIdent collects a full identifier or keyword token.
// The first character (letter or '_') must still be at l.peek().
func (l *Lexer) scanIdent() Token {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) {
		r := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tt := IDENTIFIER
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	}
	return Token{Type: tt, Lexeme: lexeme, Line: line, Col: col}
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// scanNumber collects an integer or floating literal and keeps its raw
// spelling, suffixes included. The first character (a digit, or '.'
// followed by a digit) must still be at l.peek().
func (l *Lexer) scanNumber() (Token, error) {
	line, col := l.line, l.col
	start := l.pos
	isFloat := false

	if l.peek() == '0' && (l.peek2() == 'x' || l.peek2() == 'X') {
		l.advance() // '0'
		l.advance() // 'x'
		if !isHexDigit(l.peek()) {
			return Token{}, fmt.Errorf("malformed hex literal on line %d", line)
		}
		for isHexDigit(l.peek()) {
			l.advance()
		}
	} else {
		for unicode.IsDigit(l.peek()) {
			l.advance()
		}
		if l.peek() == '.' {
			isFloat = true
			l.advance()
			for unicode.IsDigit(l.peek()) {
				l.advance()
			}
		}
		if l.peek() == 'e' || l.peek() == 'E' {
			isFloat = true
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			if !unicode.IsDigit(l.peek()) {
				return Token{}, fmt.Errorf("malformed exponent in numeric literal on line %d", line)
			}
			for unicode.IsDigit(l.peek()) {
				l.advance()
			}
		}
	}

	// Suffixes: u, l, ul, ll for integers; f, l for floats.
	for {
		r := l.peek()
		if r == 'u' || r == 'U' || r == 'l' || r == 'L' {
			l.advance()
			continue
		}
		if (r == 'f' || r == 'F') && (isFloat || !isHexLexeme(l.src[start:l.pos])) {
			isFloat = true
			l.advance()
			continue
		}
		break
	}

	if r := l.peek(); unicode.IsLetter(r) || r == '_' {
		return Token{}, fmt.Errorf("invalid suffix %q on numeric literal on line %d", r, line)
	}

	tt := INTEGER
	if isFloat {
		tt = FLOAT
	}
	return Token{Type: tt, Lexeme: string(l.src[start:l.pos]), Line: line, Col: col}, nil
}

func isHexLexeme(r []rune) bool {
	return len(r) > 1 && r[0] == '0' && (r[1] == 'x' || r[1] == 'X')
}

// scanEscape validates the escape sequence after a backslash. The
// backslash must already have been consumed; the escaped rune is consumed
// here.
func (l *Lexer) scanEscape(line int) error {
	next := l.peek()
	switch next {
	case 'n', 'r', 't', '0', '\\', '\'', '"', 'a', 'b', 'f', 'v', '?':
		l.advance()
		return nil
	case 'x':
		l.advance()
		if !isHexDigit(l.peek()) {
			return fmt.Errorf("malformed \\x escape on line %d", line)
		}
		for isHexDigit(l.peek()) {
			l.advance()
		}
		return nil
	default:
		return fmt.Errorf("unknown escape sequence \\%c on line %d", next, line)
	}
}

// scanChar collects a character literal 'c', keeping the quotes.
func (l *Lexer) scanChar() (Token, error) {
	line, col := l.line, l.col
	start := l.pos
	l.advance() // consume opening '

	switch l.peek() {
	case '\'':
		return Token{}, fmt.Errorf("empty character literal on line %d", line)
	case '\\':
		l.advance()
		if err := l.scanEscape(line); err != nil {
			return Token{}, err
		}
	case '\n', 0:
		return Token{}, fmt.Errorf("unterminated character literal on line %d", line)
	default:
		l.advance()
	}

	if l.peek() != '\'' {
		return Token{}, fmt.Errorf("unterminated character literal on line %d", line)
	}
	l.advance() // consume closing '

	return Token{Type: CHAR_LIT, Lexeme: string(l.src[start:l.pos]), Line: line, Col: col}, nil
}

// scanString collects a string literal "...", keeping the quotes and the
// escape sequences exactly as written.
func (l *Lexer) scanString() (Token, error) {
	line, col := l.line, l.col
	start := l.pos
	l.advance() // consume opening "

	for l.pos < len(l.src) {
		r := l.peek()
		if r == '"' {
			break
		}
		if r == '\n' {
			return Token{}, fmt.Errorf("unterminated string literal on line %d", line)
		}
		if r == '\\' {
			l.advance()
			if err := l.scanEscape(line); err != nil {
				return Token{}, err
			}
			continue
		}
		l.advance()
	}

	if l.pos >= len(l.src) {
		return Token{}, fmt.Errorf("unterminated string literal on line %d", line)
	}
	l.advance() // consume closing "

	return Token{Type: STRING, Lexeme: string(l.src[start:l.pos]), Line: line, Col: col}, nil
}

// nextToken skips whitespace/comments and returns the next Token.
func (l *Lexer) nextToken() (Token, error) {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			return Token{Type: EOF, Lexeme: "", Line: l.line, Col: l.col}, nil
		}
		if l.peek() == '/' && l.peek2() == '/' {
			l.advance()
			l.advance()
			l.skipLineComment()
			continue
		}
		if l.peek() == '/' && l.peek2() == '*' {
			l.advance()
			l.advance()
			if err := l.skipBlockComment(); err != nil {
				return Token{}, err
			}
			continue
		}
		break
	}

	ch := l.peek()
	line, col := l.line, l.col

	if unicode.IsLetter(ch) || ch == '_' {
		return l.scanIdent(), nil
	}
	if unicode.IsDigit(ch) || (ch == '.' && unicode.IsDigit(l.peek2())) {
		return l.scanNumber()
	}
	if ch == '"' {
		return l.scanString()
	}
	if ch == '\'' {
		return l.scanChar()
	}

	tok := func(tt TokenType, lexeme string) (Token, error) {
		return Token{Type: tt, Lexeme: lexeme, Line: line, Col: col}, nil
	}

	l.advance() // consume the character before the switch
	switch ch {
	case '{':
		return tok(LBRACE, "{")
	case '}':
		return tok(RBRACE, "}")
	case '(':
		return tok(LPAREN, "(")
	case ')':
		return tok(RPAREN, ")")
	case '[':
		return tok(LBRACKET, "[")
	case ']':
		return tok(RBRACKET, "]")
	case ';':
		return tok(SEMICOLON, ";")
	case ',':
		return tok(COMMA, ",")
	case ':':
		return tok(COLON, ":")

	case '+':
		if l.peek() == '+' {
			l.advance()
			return tok(PLUS_PLUS, "++")
		}
		if l.peek() == '=' {
			l.advance()
			return tok(PLUS_ASSIGN, "+=")
		}
		return tok(PLUS, "+")
	case '-':
		if l.peek() == '-' {
			l.advance()
			return tok(MINUS_MINUS, "--")
		}
		if l.peek() == '=' {
			l.advance()
			return tok(MINUS_ASSIGN, "-=")
		}
		return tok(MINUS, "-")
	case '*':
		if l.peek() == '=' {
			l.advance()
			return tok(STAR_ASSIGN, "*=")
		}
		return tok(STAR, "*")
	case '/':
		if l.peek() == '=' {
			l.advance()
			return tok(SLASH_ASSIGN, "/=")
		}
		return tok(SLASH, "/")
	case '%':
		if l.peek() == '=' {
			l.advance()
			return tok(PERCENT_ASSIGN, "%=")
		}
		return tok(PERCENT, "%")
	case '&':
		if l.peek() == '&' {
			l.advance()
			return tok(AND_LOGICAL, "&&")
		}
		return tok(AND, "&")
	case '|':
		if l.peek() == '|' {
			l.advance()
			return tok(OR_LOGICAL, "||")
		}
		return tok(PIPE, "|")
	case '^':
		return tok(CARET, "^")
	case '~':
		return tok(TILDE, "~")
	case '!':
		if l.peek() == '=' {
			l.advance()
			return tok(NOT_EQ, "!=")
		}
		return tok(NOT, "!")
	case '<':
		if l.peek() == '=' {
			l.advance()
			return tok(LESS_EQ, "<=")
		}
		if l.peek() == '<' {
			l.advance()
			return tok(SHL_OP, "<<")
		}
		return tok(LESS, "<")
	case '>':
		if l.peek() == '=' {
			l.advance()
			return tok(GREATER_EQ, ">=")
		}
		if l.peek() == '>' {
			l.advance()
			return tok(SHR_OP, ">>")
		}
		return tok(GREATER, ">")
	case '=':
		if l.peek() == '=' { // lookahead: distinguish = vs ==
			l.advance()
			return tok(EQUALS, "==")
		}
		return tok(ASSIGN, "=")
	default:
		return Token{}, fmt.Errorf("unexpected character %q on line %d", ch, line)
	}
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It returns a non-nil error on the first illegal character or unterminated comment.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return tokens, &LexError{Line: l.line, Err: err}
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// LexError records the line the scanner stopped on alongside the cause.
type LexError struct {
	Line int
	Err  error
}

func (e *LexError) Error() string { return e.Err.Error() }
func (e *LexError) Unwrap() error { return e.Err }
