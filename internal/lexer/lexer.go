// Package lexer implements the tlc lexical analyzer.
// The lexer is byte oriented and pull based: each NextToken call scans
// exactly one token and reports the first malformed lexeme as an error.
package lexer

import (
	"github.com/tinylang/tlc/internal/errors"
	"github.com/tinylang/tlc/internal/position"
)

// Lexer represents the lexical analyzer state
type Lexer struct {
	source       *position.SourceFile
	input        string
	position     int  // offset of ch
	readPosition int  // offset of the byte after ch
	ch           byte // current byte, 0 at end of input
	line         int  // line of ch
	column       int  // column of ch
}

// New creates a lexer for input with no file name.
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a lexer whose positions carry filename.
func NewWithFilename(input, filename string) *Lexer {
	return NewFromSource(position.NewSourceFile(filename, input))
}

// NewFromSource creates a lexer over an already loaded source file.
func NewFromSource(src *position.SourceFile) *Lexer {
	l := &Lexer{
		source: src,
		input:  src.Content,
		line:   1,
	}
	l.readChar()
	return l
}

// Source returns the file being scanned.
func (l *Lexer) Source() *position.SourceFile {
	return l.source
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) currentPosition() position.Position {
	return position.Position{
		Filename: l.source.Filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   min(l.position, len(l.input)),
	}
}

// skipWhitespace skips ASCII whitespace and // line comments.
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case isSpace(l.ch):
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

// NextToken scans the next token. At end of input it keeps returning EOF.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	start := l.currentPosition()

	switch {
	case l.ch == 0:
		return Token{Type: TokenEOF, Literal: "EOF", Span: position.Span{Start: start, End: start}}, nil
	case isLetter(l.ch):
		ident := l.readIdentifier()
		return l.tokenFrom(LookupIdent(ident), ident, start), nil
	case isDigit(l.ch):
		return l.readNumber(start)
	case l.ch == '"':
		return l.readString(start)
	case l.ch == '\'':
		return l.readCharLiteral(start)
	}

	return l.readOperator(start)
}

// Tokenize drains the lexer. The returned slice ends with the EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) tokenFrom(tokenType TokenType, literal string, start position.Position) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Span:    position.Span{Start: start, End: l.currentPosition()},
	}
}

func (l *Lexer) errorFrom(start position.Position, msg string) error {
	end := l.currentPosition()
	if end.Offset == start.Offset {
		end.Column++
		end.Offset++
	}
	return errors.Lexical(l.source, position.Span{Start: start, End: end}, msg)
}

// readIdentifier reads letters, digits and underscores
func (l *Lexer) readIdentifier() string {
	pos := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.position]
}

// readNumber reads digits and dots. Whether the literal is an int or a
// double is decided later by the presence of the dot.
func (l *Lexer) readNumber(start position.Position) (Token, error) {
	pos := l.position
	dots := 0
	for isDigit(l.ch) || l.ch == '.' {
		if l.ch == '.' {
			dots++
		}
		l.readChar()
	}
	if dots > 1 {
		return Token{}, l.errorFrom(start, "'.' occurs more than once!")
	}
	return l.tokenFrom(TokenNumber, l.input[pos:l.position], start), nil
}

// readString reads a double quoted literal. Escapes are validated but kept
// verbatim in the literal.
func (l *Lexer) readString(start position.Position) (Token, error) {
	l.readChar()
	pos := l.position
	for l.ch != '"' {
		if l.ch == 0 {
			return Token{}, l.errorFrom(start, "\" not closed")
		}
		if err := l.readEscape(); err != nil {
			return Token{}, err
		}
		if l.ch == '\n' {
			return Token{}, l.errorFrom(start, "String should not be contain new line")
		}
		l.readChar()
	}
	literal := l.input[pos:l.position]
	l.readChar()
	return l.tokenFrom(TokenString, literal, start), nil
}

// readCharLiteral reads a single, optionally escaped, character between quotes.
func (l *Lexer) readCharLiteral(start position.Position) (Token, error) {
	l.readChar()
	pos := l.position
	switch l.ch {
	case 0, '\n':
		return Token{}, l.errorFrom(start, "' not closed")
	case '\'':
		return Token{}, l.errorFrom(start, "Empty char literal")
	}
	if err := l.readEscape(); err != nil {
		return Token{}, err
	}
	l.readChar()
	if l.ch != '\'' {
		return Token{}, l.errorFrom(start, "' not closed")
	}
	literal := l.input[pos:l.position]
	l.readChar()
	return l.tokenFrom(TokenChar, literal, start), nil
}

// readEscape advances over a backslash and validates the escaped byte,
// leaving ch on it.
func (l *Lexer) readEscape() error {
	if l.ch != '\\' {
		return nil
	}
	escStart := l.currentPosition()
	l.readChar()
	if !isEscape(l.ch) {
		if l.ch != 0 && l.ch != '\n' {
			l.readChar()
		}
		return l.errorFrom(escStart, "Unknown escape sequence")
	}
	return nil
}

func (l *Lexer) readOperator(start position.Position) (Token, error) {
	tokenType, ok := l.matchOperator()
	if !ok {
		l.readChar()
		return Token{}, l.errorFrom(start, "Unknown token!")
	}
	l.readChar()
	return l.tokenFrom(tokenType, l.input[start.Offset:l.position], start), nil
}

// matchOperator classifies ch using one byte of lookahead for the two byte
// forms. On a two byte match ch is left on the second byte.
func (l *Lexer) matchOperator() (TokenType, bool) {
	switch l.ch {
	case '+':
		return l.either('+', TokenIncrement, TokenPlus), true
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			return TokenArrow, true
		}
		return l.either('-', TokenDecrement, TokenMinus), true
	case '*':
		return TokenStar, true
	case '/':
		return TokenSlash, true
	case '%':
		return TokenPercent, true
	case '=':
		return l.either('=', TokenEqual, TokenAssign), true
	case '!':
		return l.either('=', TokenNotEqual, TokenBang), true
	case '<':
		if l.peekChar() == '<' {
			l.readChar()
			return TokenShiftLeft, true
		}
		return l.either('=', TokenLessEqual, TokenLessThan), true
	case '>':
		if l.peekChar() == '>' {
			l.readChar()
			return TokenShiftRight, true
		}
		return l.either('=', TokenGreaterEqual, TokenGreaterThan), true
	case '&':
		return l.either('&', TokenAnd, TokenAmpersand), true
	case '|':
		return l.either('|', TokenOr, TokenPipe), true
	case '^':
		return TokenCaret, true
	case '~':
		return TokenTilde, true
	case '(':
		return TokenLParen, true
	case ')':
		return TokenRParen, true
	case '{':
		return TokenLBrace, true
	case '}':
		return TokenRBrace, true
	case '[':
		return TokenLBracket, true
	case ']':
		return TokenRBracket, true
	case ',':
		return TokenComma, true
	case '.':
		return TokenDot, true
	case ';':
		return TokenSemicolon, true
	case ':':
		return TokenColon, true
	}
	return TokenEOF, false
}

// either returns double and consumes the peeked byte when it equals next.
func (l *Lexer) either(next byte, double, single TokenType) TokenType {
	if l.peekChar() == next {
		l.readChar()
		return double
	}
	return single
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

func isEscape(ch byte) bool {
	switch ch {
	case 'a', 'b', 'f', 'n', 'r', 't', 'v', '\\', '\'', '"', '0':
		return true
	}
	return false
}
