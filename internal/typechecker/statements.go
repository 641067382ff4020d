package typechecker

import (
	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/errors"
	"github.com/tinylang/tlc/internal/resolver"
)

func (c *Checker) checkStatements(stmts []ast.Statement, scope resolver.ScopeID) error {
	for _, stmt := range stmts {
		if err := c.checkStatement(stmt, scope); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStatement(stmt ast.Statement, scope resolver.ScopeID) error {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		return c.checkLet(s, scope)
	case *ast.ReturnStatement:
		return c.checkReturn(s, scope)
	case *ast.DeferStatement:
		_, err := c.checkExpression(s.Expression, scope)
		return err
	case *ast.ExpressionStatement:
		_, err := c.checkExpression(s.Expression, scope)
		return err
	case *ast.IfStatement:
		return c.checkIf(s, scope)
	case *ast.WhileStatement:
		if err := c.checkCondition(s.Condition, scope); err != nil {
			return err
		}
		body := c.table.InsertBlock(scope, resolver.BlockWhile, s.Body.Span)
		return c.checkStatements(s.Body.Statements, body)
	case *ast.ForStatement:
		return c.checkFor(s, scope)
	case *ast.BlockStatement:
		block := c.table.InsertBlock(scope, resolver.BlockBare, s.Span)
		return c.checkStatements(s.Statements, block)
	}
	return errors.Semantic(stmt.GetSpan(), "Unknown Statement")
}

// checkLet infers or verifies the binding type, then registers the variable
// in scope.
func (c *Checker) checkLet(s *ast.LetStatement, scope resolver.ScopeID) error {
	var typ ast.TypeSpecifier
	switch {
	case s.Value != nil:
		valueType, err := c.checkExpression(s.Value, scope)
		if err != nil {
			return err
		}
		if s.Type != nil && !s.Type.Equal(valueType) {
			return errors.Semantic(s.Span, "Miss matched types")
		}
		typ = valueType
	case s.Type != nil:
		typ = *s.Type
	default:
		return errors.Semantic(s.Span, "Expect TypeSpecifier")
	}

	c.table.InsertVariable(scope, s.Name.Value, typ, s.Name.Span)
	return nil
}

func (c *Checker) checkReturn(s *ast.ReturnStatement, scope resolver.ScopeID) error {
	fnID, ok := c.table.EnclosingFunction(scope)
	if !ok {
		return errors.Semantic(s.Span, "Return outside of function")
	}
	fn, _ := c.table.Get(fnID).Function()

	if s.Value == nil {
		if fn.ReturnType.Kind == ast.TypeVoid {
			return nil
		}
		return errors.Semantic(s.Span, "Return value and return type of function does not match")
	}

	valueType, err := c.checkExpression(s.Value, scope)
	if err != nil {
		return err
	}
	if !valueType.Equal(fn.ReturnType) {
		return errors.Semantic(s.Value.GetSpan(), "Return value and return type of function does not match")
	}
	return nil
}

func (c *Checker) checkCondition(cond ast.Expression, scope resolver.ScopeID) error {
	t, err := c.checkExpression(cond, scope)
	if err != nil {
		return err
	}
	if t.Kind != ast.TypeBool {
		return errors.Semantic(cond.GetSpan(), "Condition type must be boolean")
	}
	return nil
}

// checkIf evaluates every condition in the enclosing scope and each arm in
// its own block.
func (c *Checker) checkIf(s *ast.IfStatement, scope resolver.ScopeID) error {
	if err := c.checkCondition(s.Condition, scope); err != nil {
		return err
	}
	body := c.table.InsertBlock(scope, resolver.BlockIf, s.Consequence.Span)
	if err := c.checkStatements(s.Consequence.Statements, body); err != nil {
		return err
	}

	for _, clause := range s.ElseIfs {
		if err := c.checkCondition(clause.Condition, scope); err != nil {
			return err
		}
		body := c.table.InsertBlock(scope, resolver.BlockElseIf, clause.Body.Span)
		if err := c.checkStatements(clause.Body.Statements, body); err != nil {
			return err
		}
	}

	if s.Alternative != nil {
		body := c.table.InsertBlock(scope, resolver.BlockElse, s.Alternative.Span)
		return c.checkStatements(s.Alternative.Statements, body)
	}
	return nil
}

// checkFor opens one block holding the init binding, the condition, the
// increment and the body.
func (c *Checker) checkFor(s *ast.ForStatement, scope resolver.ScopeID) error {
	block := c.table.InsertBlock(scope, resolver.BlockFor, s.Span)
	if err := c.checkStatement(s.Init, block); err != nil {
		return err
	}
	if err := c.checkCondition(s.Condition, block); err != nil {
		return err
	}
	if _, err := c.checkExpression(s.Increment, block); err != nil {
		return err
	}
	return c.checkStatements(s.Body.Statements, block)
}
