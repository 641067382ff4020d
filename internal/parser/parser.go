// Package parser implements the tlc recursive descent parser.
//
// The parser keeps a window of three tokens: the one being parsed (current),
// one token of lookahead (peek) and the previously consumed token, which only
// anchors end of input errors. Every parse function is entered with current
// on the first token of its construct and returns with current on the last
// one. The first error aborts the parse.
package parser

import (
	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/errors"
	"github.com/tinylang/tlc/internal/lexer"
	"github.com/tinylang/tlc/internal/position"
)

// Parser represents the recursive descent parser
type Parser struct {
	lexer  *lexer.Lexer
	source *position.SourceFile

	previous lexer.Token
	current  lexer.Token
	peek     lexer.Token
	primed   bool
}

// New creates a parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{
		lexer:  l,
		source: l.Source(),
	}
}

// Parse parses the whole input into a Program.
func (p *Parser) Parse() (*ast.Program, error) {
	if !p.primed {
		// fill current and peek
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		p.primed = true
	}
	return p.parseProgram()
}

// nextToken slides the window one token forward. Lexical errors surface here.
func (p *Parser) nextToken() error {
	p.previous = p.current
	p.current = p.peek
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

func (p *Parser) currentIs(tt lexer.TokenType) bool { return p.current.Type == tt }

func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peek.Type == tt }

// expect checks the current token without consuming it.
func (p *Parser) expect(tt lexer.TokenType) error {
	if !p.currentIs(tt) {
		return p.errorf("Expect %s found %s", tt, p.current.Type)
	}
	return nil
}

// expectPeek advances one token then expects tt.
func (p *Parser) expectPeek(tt lexer.TokenType) error {
	if err := p.nextToken(); err != nil {
		return err
	}
	return p.expect(tt)
}

// skip advances over n tokens.
func (p *Parser) skip(n int) error {
	for i := 0; i < n; i++ {
		if err := p.nextToken(); err != nil {
			return err
		}
	}
	return nil
}

// errorf creates a syntactic error anchored at the current token.
func (p *Parser) errorf(format string, args ...interface{}) error {
	return errors.Syntactic(p.source, p.current.Span, format, args...)
}

// missingf reports an unterminated construct at end of input. The error sits
// just past the last consumed token so trailing blank lines and comments do
// not push the caret off the code.
func (p *Parser) missingf(format string, args ...interface{}) error {
	end := p.previous.Span.End
	if !end.IsValid() {
		return p.errorf(format, args...)
	}
	return errors.Syntactic(p.source, position.Span{Start: end, End: end}, format, args...)
}

// spanFrom returns the span from start to the end of the current token.
func (p *Parser) spanFrom(start position.Position) position.Span {
	return position.Span{Start: start, End: p.current.Span.End}
}

func (p *Parser) identifier() *ast.Identifier {
	return &ast.Identifier{Span: p.current.Span, Value: p.current.Literal}
}

// parseList parses comma separated items following the opening token in
// current, up to and including close. item is entered on the first token of
// an element and must leave current on its last token. A trailing comma is
// accepted.
func (p *Parser) parseList(close lexer.TokenType, item func() error) error {
	for {
		if err := p.nextToken(); err != nil {
			return err
		}
		if p.currentIs(close) {
			return nil
		}
		if p.currentIs(lexer.TokenEOF) {
			return p.missingf("Missing %s", close)
		}
		if err := item(); err != nil {
			return err
		}
		if err := p.nextToken(); err != nil {
			return err
		}
		switch p.current.Type {
		case lexer.TokenComma:
			continue
		case close:
			return nil
		}
		return p.errorf("Expect Comma or %s but found %s", close, p.current.Type)
	}
}
