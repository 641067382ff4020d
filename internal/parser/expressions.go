package parser

import (
	"strings"

	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/lexer"
	"github.com/tinylang/tlc/internal/position"
)

// Expressions are parsed by two ladders. The outer ladder, loosest first:
//
//	Binary > Assignment > Unary > ArrayIndex > MemberAccess > FunctionCall >
//	ArrayInit > ObjectInit > Cast > Identifier > Primitive
//
// Binary expands into the operator levels below, each left associative. The
// operands of the tightest level (product) are parsed at Assignment, and the
// right side of an assignment re-enters at Binary.
var binaryLevels = []map[lexer.TokenType]ast.BinaryOperator{
	{lexer.TokenOr: ast.OpOr},
	{lexer.TokenAnd: ast.OpAnd},
	{lexer.TokenPipe: ast.OpBitOr},
	{lexer.TokenCaret: ast.OpBitXor},
	{lexer.TokenAmpersand: ast.OpBitAnd},
	{lexer.TokenShiftLeft: ast.OpBitLeft, lexer.TokenShiftRight: ast.OpBitRight},
	{lexer.TokenEqual: ast.OpEqual, lexer.TokenNotEqual: ast.OpNotEqual},
	{
		lexer.TokenLessThan:     ast.OpLessThan,
		lexer.TokenLessEqual:    ast.OpLessEqual,
		lexer.TokenGreaterThan:  ast.OpGreaterThan,
		lexer.TokenGreaterEqual: ast.OpGreaterEqual,
	},
	{lexer.TokenPlus: ast.OpAdd, lexer.TokenMinus: ast.OpSubtract},
	{lexer.TokenStar: ast.OpMultiply, lexer.TokenSlash: ast.OpDivide, lexer.TokenPercent: ast.OpModulo},
}

var prefixOperators = map[lexer.TokenType]ast.UnaryOperator{
	lexer.TokenPlus:      ast.OpPlus,
	lexer.TokenMinus:     ast.OpMinus,
	lexer.TokenIncrement: ast.OpIncrement,
	lexer.TokenDecrement: ast.OpDecrement,
	lexer.TokenBang:      ast.OpLogicalNot,
	lexer.TokenTilde:     ast.OpBitwiseNot,
	lexer.TokenAmpersand: ast.OpAddress,
	lexer.TokenStar:      ast.OpDereference,
}

var postfixOperators = map[lexer.TokenType]ast.UnaryOperator{
	lexer.TokenIncrement: ast.OpIncrement,
	lexer.TokenDecrement: ast.OpDecrement,
}

// parseExpression parses a full expression starting at the current token.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseBinary(0)
}

func (p *Parser) parseBinary(level int) (ast.Expression, error) {
	if level == len(binaryLevels) {
		return p.parseAssignment()
	}

	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binaryLevels[level][p.peek.Type]
		if !ok {
			return left, nil
		}
		if err := p.skip(2); err != nil {
			return nil, err
		}
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Span:     spanOf(left, right),
			Left:     left,
			Operator: op,
			Right:    right,
		}
	}
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if !p.peekIs(lexer.TokenAssign) {
		return left, nil
	}

	if err := p.skip(2); err != nil {
		return nil, err
	}
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpression{Span: spanOf(left, right), Target: left, Value: right}, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if op, ok := prefixOperators[p.current.Type]; ok {
		start := p.current.Span.Start
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		operand, err := p.parseArrayIndex()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Span: p.spanFrom(start), Operator: op, Operand: operand}, nil
	}

	operand, err := p.parseArrayIndex()
	if err != nil {
		return nil, err
	}
	if op, ok := postfixOperators[p.peek.Type]; ok {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{
			Span:     p.spanFrom(operand.GetSpan().Start),
			Operator: op,
			Operand:  operand,
			Postfix:  true,
		}, nil
	}
	return operand, nil
}

// parseArrayIndex parses `array[index]` and `array[index, second]`.
func (p *Parser) parseArrayIndex() (ast.Expression, error) {
	array, err := p.parseMemberAccess()
	if err != nil {
		return nil, err
	}
	if !p.peekIs(lexer.TokenLBracket) {
		return array, nil
	}

	if err := p.skip(2); err != nil {
		return nil, err
	}
	expr := &ast.ArrayIndexExpression{Array: array}
	if expr.Index, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if p.peekIs(lexer.TokenComma) {
		if err := p.skip(2); err != nil {
			return nil, err
		}
		if expr.SecondIndex, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if err := p.expectPeek(lexer.TokenRBracket); err != nil {
		return nil, err
	}

	expr.Span = p.spanFrom(array.GetSpan().Start)
	return expr, nil
}

// parseMemberAccess parses `object.property` and `object->property`. The
// property is parsed at this level again, so chains nest to the right.
func (p *Parser) parseMemberAccess() (ast.Expression, error) {
	object, err := p.parseFunctionCall()
	if err != nil {
		return nil, err
	}
	if !p.peekIs(lexer.TokenDot) && !p.peekIs(lexer.TokenArrow) {
		return object, nil
	}

	arrow := p.peekIs(lexer.TokenArrow)
	if err := p.skip(2); err != nil {
		return nil, err
	}
	property, err := p.parseMemberAccess()
	if err != nil {
		return nil, err
	}
	return &ast.MemberAccessExpression{
		Span:     spanOf(object, property),
		Object:   object,
		Arrow:    arrow,
		Property: property,
	}, nil
}

// parseFunctionCall parses `[Namespace::]name(args)`. A namespaced name that
// is not called is an enum value.
func (p *Parser) parseFunctionCall() (ast.Expression, error) {
	function, err := p.parseArrayInit()
	if err != nil {
		return nil, err
	}

	var namespace ast.Expression
	if p.peekIs(lexer.TokenColon) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if err := p.expectPeek(lexer.TokenColon); err != nil {
			return nil, err
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		namespace = function
		if function, err = p.parseArrayInit(); err != nil {
			return nil, err
		}
	}

	if !p.peekIs(lexer.TokenLParen) {
		if namespace == nil {
			return function, nil
		}
		enum, ok := namespace.(*ast.Identifier)
		item, isIdent := function.(*ast.Identifier)
		if !ok || !isIdent {
			return nil, p.errorf("Invalid namespace expression")
		}
		return &ast.EnumValueExpression{Span: spanOf(enum, item), Enum: enum, Item: item}, nil
	}

	if err := p.nextToken(); err != nil {
		return nil, err
	}
	call := &ast.CallExpression{Namespace: namespace, Function: function}
	err = p.parseList(lexer.TokenRParen, func() error {
		arg, err := p.parseExpression()
		if err != nil {
			return err
		}
		call.Arguments = append(call.Arguments, arg)
		return nil
	})
	if err != nil {
		return nil, err
	}

	start := function.GetSpan().Start
	if namespace != nil {
		start = namespace.GetSpan().Start
	}
	call.Span = p.spanFrom(start)
	return call, nil
}

// parseArrayInit parses `[a, b, c]`.
func (p *Parser) parseArrayInit() (ast.Expression, error) {
	if !p.currentIs(lexer.TokenLBracket) {
		return p.parseObjectInit()
	}

	start := p.current.Span.Start
	init := &ast.ArrayInitExpression{}
	err := p.parseList(lexer.TokenRBracket, func() error {
		elem, err := p.parseExpression()
		if err != nil {
			return err
		}
		init.Elements = append(init.Elements, elem)
		return nil
	})
	if err != nil {
		return nil, err
	}

	init.Span = p.spanFrom(start)
	return init, nil
}

// parseObjectInit parses `Type { field: value, shorthand }`.
func (p *Parser) parseObjectInit() (ast.Expression, error) {
	object, err := p.parseCast()
	if err != nil {
		return nil, err
	}
	if !p.peekIs(lexer.TokenLBrace) {
		return object, nil
	}

	if err := p.nextToken(); err != nil {
		return nil, err
	}
	init := &ast.ObjectInitExpression{Object: object}
	err = p.parseList(lexer.TokenRBrace, func() error {
		field, err := p.parseFieldInit()
		if err != nil {
			return err
		}
		init.Fields = append(init.Fields, field)
		return nil
	})
	if err != nil {
		return nil, err
	}

	init.Span = p.spanFrom(object.GetSpan().Start)
	return init, nil
}

func (p *Parser) parseFieldInit() (*ast.FieldInit, error) {
	if err := p.expect(lexer.TokenIdentifier); err != nil {
		return nil, err
	}
	name := p.identifier()

	if p.peekIs(lexer.TokenComma) || p.peekIs(lexer.TokenRBrace) {
		value := &ast.Identifier{Span: name.Span, Value: name.Value}
		return &ast.FieldInit{Span: name.Span, Name: name, Value: value, Shorthand: true}, nil
	}

	if err := p.expectPeek(lexer.TokenColon); err != nil {
		return nil, err
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.FieldInit{Span: p.spanFrom(name.Span.Start), Name: name, Value: value}, nil
}

// parseCast parses `expression as T`.
func (p *Parser) parseCast() (ast.Expression, error) {
	expr, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if !p.peekIs(lexer.TokenAs) {
		return expr, nil
	}

	if err := p.skip(2); err != nil {
		return nil, err
	}
	target, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.CastExpression{Span: p.spanFrom(expr.GetSpan().Start), Expression: expr, Target: target}, nil
}

func (p *Parser) parseIdentifier() (ast.Expression, error) {
	if p.currentIs(lexer.TokenIdentifier) {
		return p.identifier(), nil
	}
	return p.parsePrimitive()
}

// parsePrimitive parses literals and parenthesized groups.
func (p *Parser) parsePrimitive() (ast.Expression, error) {
	tok := p.current
	switch tok.Type {
	case lexer.TokenLParen:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.TokenNumber:
		typ := ast.Int
		if strings.Contains(tok.Literal, ".") {
			typ = ast.Double
		}
		return &ast.Literal{Span: tok.Span, Type: typ, Value: tok.Literal}, nil
	case lexer.TokenString:
		return &ast.Literal{Span: tok.Span, Type: ast.Str, Value: tok.Literal}, nil
	case lexer.TokenChar:
		return &ast.Literal{Span: tok.Span, Type: ast.Char, Value: tok.Literal}, nil
	case lexer.TokenTrue, lexer.TokenFalse:
		return &ast.Literal{Span: tok.Span, Type: ast.Bool, Value: tok.Literal}, nil
	}
	return nil, p.errorf("Unknown Expression")
}

func spanOf(first, last ast.Node) position.Span {
	return first.GetSpan().Union(last.GetSpan())
}
