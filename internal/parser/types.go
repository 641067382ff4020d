package parser

import (
	"strconv"

	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/lexer"
)

var primitiveTypes = map[lexer.TokenType]ast.TypeSpecifier{
	lexer.TokenInt:         ast.Int,
	lexer.TokenUsize:       ast.Usize,
	lexer.TokenFloat:       ast.Float,
	lexer.TokenDouble:      ast.Double,
	lexer.TokenBool:        ast.Bool,
	lexer.TokenCharKeyword: ast.Char,
	lexer.TokenStr:         ast.Str,
	lexer.TokenVoid:        ast.Void,
}

// parseType parses a type specifier: a builtin keyword or a user type name,
// followed by either one `[size]` suffix or any number of `*`.
func (p *Parser) parseType() (ast.TypeSpecifier, error) {
	var typ ast.TypeSpecifier
	if prim, ok := primitiveTypes[p.current.Type]; ok {
		typ = prim
	} else if p.currentIs(lexer.TokenIdentifier) {
		typ = ast.UserType(p.current.Literal)
	} else {
		return typ, p.errorf("Unknown TypeSpecifier")
	}

	if p.peekIs(lexer.TokenLBracket) {
		if err := p.skip(2); err != nil {
			return typ, err
		}
		size, err := strconv.Atoi(p.current.Literal)
		if err != nil || size < 0 {
			return typ, p.errorf("Invalid array size %q", p.current.Literal)
		}
		if err := p.expectPeek(lexer.TokenRBracket); err != nil {
			return typ, err
		}
		return ast.ArrayOf(typ, size), nil
	}

	for p.peekIs(lexer.TokenStar) {
		if err := p.nextToken(); err != nil {
			return typ, err
		}
		typ = ast.PointerTo(typ)
	}
	return typ, nil
}
