package parser

import (
	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/lexer"
)

// parseBlock parses `{ statements }` with current on the opening brace.
func (p *Parser) parseBlock() (*ast.BlockStatement, error) {
	if err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	start := p.current.Span.Start
	block := &ast.BlockStatement{}

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
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}

	block.Span = p.spanFrom(start)
	return block, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current.Type {
	case lexer.TokenLet:
		return p.parseLetStatement()
	case lexer.TokenReturn:
		return p.parseReturnStatement()
	case lexer.TokenLBrace:
		return p.parseBlock()
	case lexer.TokenDefer:
		return p.parseDeferStatement()
	case lexer.TokenFor:
		return p.parseForStatement()
	case lexer.TokenWhile:
		return p.parseWhileStatement()
	case lexer.TokenIf:
		return p.parseIfStatement()
	}
	return p.parseExpressionStatement()
}

// parseLetStatement parses `let name [: T] [= value];`.
func (p *Parser) parseLetStatement() (*ast.LetStatement, error) {
	start := p.current.Span.Start
	if err := p.expectPeek(lexer.TokenIdentifier); err != nil {
		return nil, err
	}
	stmt := &ast.LetStatement{Name: p.identifier()}

	if p.peekIs(lexer.TokenColon) {
		if err := p.skip(2); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		stmt.Type = &typ
	}

	if p.peekIs(lexer.TokenAssign) {
		if err := p.skip(2); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}

	if stmt.Type == nil && stmt.Value == nil {
		return nil, p.errorf("Expect TypeSpecifier")
	}
	if err := p.expectPeek(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	stmt.Span = p.spanFrom(start)
	return stmt, nil
}

func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, error) {
	start := p.current.Span.Start
	stmt := &ast.ReturnStatement{}

	if !p.peekIs(lexer.TokenSemicolon) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if err := p.expectPeek(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	stmt.Span = p.spanFrom(start)
	return stmt, nil
}

func (p *Parser) parseDeferStatement() (*ast.DeferStatement, error) {
	start := p.current.Span.Start
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.DeferStatement{Span: p.spanFrom(start), Expression: expr}, nil
}

func (p *Parser) parseExpressionStatement() (*ast.ExpressionStatement, error) {
	start := p.current.Span.Start
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Span: p.spanFrom(start), Expression: expr}, nil
}

// parseCondition parses `(expression)` with current on the token before the
// opening parenthesis.
func (p *Parser) parseCondition() (ast.Expression, error) {
	if err := p.expectPeek(lexer.TokenLParen); err != nil {
		return nil, err
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseBody parses the block following a condition.
func (p *Parser) parseBody() (*ast.BlockStatement, error) {
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return p.parseBlock()
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	start := p.current.Span.Start
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Condition: cond, Consequence: body}

	for p.peekIs(lexer.TokenElse) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if !p.peekIs(lexer.TokenIf) {
			if stmt.Alternative, err = p.parseBody(); err != nil {
				return nil, err
			}
			break
		}

		clauseStart := p.current.Span.Start
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, &ast.ElseIfClause{
			Span:      p.spanFrom(clauseStart),
			Condition: cond,
			Body:      body,
		})
	}

	stmt.Span = p.spanFrom(start)
	return stmt, nil
}

func (p *Parser) parseWhileStatement() (*ast.WhileStatement, error) {
	start := p.current.Span.Start
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Span: p.spanFrom(start), Condition: cond, Body: body}, nil
}

// parseForStatement parses `for (init; condition; increment) { body }`.
func (p *Parser) parseForStatement() (*ast.ForStatement, error) {
	start := p.current.Span.Start
	if err := p.expectPeek(lexer.TokenLParen); err != nil {
		return nil, err
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	init, err := p.parseForInit()
	if err != nil {
		return nil, err
	}
	stmt := &ast.ForStatement{Init: init}

	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if stmt.Condition, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if err := p.expectPeek(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if stmt.Increment, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if err := p.expectPeek(lexer.TokenRParen); err != nil {
		return nil, err
	}

	if stmt.Body, err = p.parseBody(); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(start)
	return stmt, nil
}

// parseForInit parses a `let` or an assignment followed by `;`.
func (p *Parser) parseForInit() (ast.Statement, error) {
	if p.currentIs(lexer.TokenLet) {
		return p.parseLetStatement()
	}

	start := p.current.Span.Start
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, ok := expr.(*ast.AssignmentExpression); !ok {
		return nil, p.errorf("Expect assignment expression")
	}
	if err := p.expectPeek(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Span: p.spanFrom(start), Expression: expr}, nil
}
