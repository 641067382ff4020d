package parser

import (
	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/lexer"
	"github.com/tinylang/tlc/internal/position"
)

func (p *Parser) parseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	start := p.current.Span.Start

	for !p.currentIs(lexer.TokenEOF) {
		decl, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		program.Declarations = append(program.Declarations, decl)
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}

	program.Span = p.spanFrom(start)
	return program, nil
}

// parseDeclaration parses one top-level item with its optional `pub`.
func (p *Parser) parseDeclaration() (ast.Declaration, error) {
	start := p.current.Span.Start
	access := ast.AccessPrivate
	if p.currentIs(lexer.TokenPub) {
		access = ast.AccessPublic
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}

	switch p.current.Type {
	case lexer.TokenFn:
		return p.parseFunction(start, access)
	case lexer.TokenStruct:
		return p.parseStruct(start, access)
	case lexer.TokenEnum:
		return p.parseEnum(start, access)
	case lexer.TokenImpl:
		if access == ast.AccessPublic {
			return nil, p.errorf("Unexpected access specifier")
		}
		return p.parseImpl(start)
	}
	return nil, p.errorf("Unknown declarations")
}

// signature holds the pieces shared by functions and methods.
type signature struct {
	name       *ast.Identifier
	params     []*ast.Parameter
	returnType ast.TypeSpecifier
	body       *ast.BlockStatement
}

// parseSignature parses `name(params) [-> T] { body }` with current on the
// token before the name.
func (p *Parser) parseSignature() (*signature, error) {
	if err := p.expectPeek(lexer.TokenIdentifier); err != nil {
		return nil, err
	}
	sig := &signature{name: p.identifier(), returnType: ast.Void}

	if err := p.expectPeek(lexer.TokenLParen); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	sig.params = params

	if p.peekIs(lexer.TokenArrow) {
		if err := p.skip(2); err != nil {
			return nil, err
		}
		if sig.returnType, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	if err := p.expectPeek(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	if sig.body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return sig, nil
}

func (p *Parser) parseFunction(start position.Position, access ast.Access) (*ast.FunctionDeclaration, error) {
	sig, err := p.parseSignature()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{
		Span:       p.spanFrom(start),
		Access:     access,
		Name:       sig.name,
		Parameters: sig.params,
		ReturnType: sig.returnType,
		Body:       sig.body,
	}, nil
}

func (p *Parser) parseParameters() ([]*ast.Parameter, error) {
	var params []*ast.Parameter
	err := p.parseList(lexer.TokenRParen, func() error {
		param, err := p.parseParameter()
		if err != nil {
			return err
		}
		params = append(params, param)
		return nil
	})
	return params, err
}

// parseParameter parses `name: T`.
func (p *Parser) parseParameter() (*ast.Parameter, error) {
	if err := p.expect(lexer.TokenIdentifier); err != nil {
		return nil, err
	}
	start := p.current.Span.Start
	name := p.identifier()

	if err := p.expectPeek(lexer.TokenColon); err != nil {
		return nil, err
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.Parameter{Span: p.spanFrom(start), Name: name, Type: typ}, nil
}

func (p *Parser) parseStruct(start position.Position, access ast.Access) (*ast.StructDeclaration, error) {
	if err := p.expectPeek(lexer.TokenIdentifier); err != nil {
		return nil, err
	}
	decl := &ast.StructDeclaration{Access: access, Name: p.identifier()}

	if err := p.expectPeek(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	err := p.parseList(lexer.TokenRBrace, func() error {
		field, err := p.parseField()
		if err != nil {
			return err
		}
		decl.Fields = append(decl.Fields, field)
		return nil
	})
	if err != nil {
		return nil, err
	}

	decl.Span = p.spanFrom(start)
	return decl, nil
}

// parseField parses `[pub] name: T`.
func (p *Parser) parseField() (*ast.FieldDeclaration, error) {
	start := p.current.Span.Start
	access := ast.AccessPrivate
	if p.currentIs(lexer.TokenPub) {
		access = ast.AccessPublic
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}

	param, err := p.parseParameter()
	if err != nil {
		return nil, err
	}
	return &ast.FieldDeclaration{
		Span:   p.spanFrom(start),
		Access: access,
		Name:   param.Name,
		Type:   param.Type,
	}, nil
}

func (p *Parser) parseEnum(start position.Position, access ast.Access) (*ast.EnumDeclaration, error) {
	if err := p.expectPeek(lexer.TokenIdentifier); err != nil {
		return nil, err
	}
	decl := &ast.EnumDeclaration{Access: access, Name: p.identifier()}

	if err := p.expectPeek(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	err := p.parseList(lexer.TokenRBrace, func() error {
		if err := p.expect(lexer.TokenIdentifier); err != nil {
			return err
		}
		decl.Items = append(decl.Items, p.identifier())
		return nil
	})
	if err != nil {
		return nil, err
	}

	decl.Span = p.spanFrom(start)
	return decl, nil
}

func (p *Parser) parseImpl(start position.Position) (*ast.ImplDeclaration, error) {
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	targetStart := p.current.Span.Start
	target, err := p.parseType()
	if err != nil {
		return nil, err
	}
	decl := &ast.ImplDeclaration{Target: target, TargetSpan: p.spanFrom(targetStart)}

	if err := p.expectPeek(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	for {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if p.currentIs(lexer.TokenRBrace) {
			break
		}
		if p.currentIs(lexer.TokenEOF) {
			return nil, p.missingf("Missing close curly brace '}'")
		}
		method, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		decl.Methods = append(decl.Methods, method)
	}

	decl.Span = p.spanFrom(start)
	return decl, nil
}

// parseMethod parses `[pub] fn [(self: T)] name(params) [-> T] { body }`.
func (p *Parser) parseMethod() (*ast.MethodDeclaration, error) {
	start := p.current.Span.Start
	access := ast.AccessPrivate
	if p.currentIs(lexer.TokenPub) {
		access = ast.AccessPublic
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(lexer.TokenFn); err != nil {
		return nil, err
	}

	var receiver *ast.Parameter
	if p.peekIs(lexer.TokenLParen) {
		if err := p.skip(2); err != nil {
			return nil, err
		}
		var err error
		if receiver, err = p.parseParameter(); err != nil {
			return nil, err
		}
		if err := p.expectPeek(lexer.TokenRParen); err != nil {
			return nil, err
		}
	}

	sig, err := p.parseSignature()
	if err != nil {
		return nil, err
	}
	return &ast.MethodDeclaration{
		Span:       p.spanFrom(start),
		Access:     access,
		Receiver:   receiver,
		Name:       sig.name,
		Parameters: sig.params,
		ReturnType: sig.returnType,
		Body:       sig.body,
	}, nil
}
