// Package typechecker implements the semantic analysis pass.
//
// The checker walks the program once against a scope tree produced by
// resolver.Collect. Every analysis receives the scope it runs in; struct,
// enum and function lookups always start from the Global root. Block and
// let scopes are inserted into the tree as their constructs are visited.
// The first violation aborts the walk.
package typechecker

import (
	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/errors"
	"github.com/tinylang/tlc/internal/resolver"
)

// Checker performs semantic analysis over one program.
type Checker struct {
	table *resolver.SymbolTable
	root  resolver.ScopeID
	types map[ast.Expression]ast.TypeSpecifier
}

// New creates a checker bound to a collected symbol table.
func New(table *resolver.SymbolTable) *Checker {
	return &Checker{
		table: table,
		root:  table.Root(),
		types: make(map[ast.Expression]ast.TypeSpecifier),
	}
}

// Check analyzes the body of every function and method in program. The
// declarations must already be in the table.
func (c *Checker) Check(program *ast.Program) error {
	for _, decl := range program.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDeclaration:
			id, ok := c.table.FindFunction(c.root, d.Name.Value)
			if !ok {
				return errors.Semantic(d.Name.Span, "Function not found")
			}
			if err := c.checkFunctionBody(id, d.ReturnType, d.Body); err != nil {
				return err
			}
		case *ast.ImplDeclaration:
			if err := c.checkImpl(d); err != nil {
				return err
			}
		}
	}
	return nil
}

// TypeOf returns the type inferred for expr by the last Check.
func (c *Checker) TypeOf(expr ast.Expression) (ast.TypeSpecifier, bool) {
	t, ok := c.types[expr]
	return t, ok
}

// Check runs a fresh checker over program.
func Check(program *ast.Program, table *resolver.SymbolTable) error {
	return New(table).Check(program)
}

func (c *Checker) checkImpl(impl *ast.ImplDeclaration) error {
	structID, ok := c.table.ImplTarget(impl)
	if !ok {
		return errors.Semantic(impl.TargetSpan, "Struct not found")
	}
	for _, m := range impl.Methods {
		id, ok := c.table.FindFunction(structID, m.Name.Value)
		if !ok {
			return errors.Semantic(m.Name.Span, "Function not found")
		}
		if err := c.checkFunctionBody(id, m.ReturnType, m.Body); err != nil {
			return err
		}
	}
	return nil
}

// checkFunctionBody analyzes body with the function node as scope. A
// non-void function must end with a return statement.
func (c *Checker) checkFunctionBody(fn resolver.ScopeID, ret ast.TypeSpecifier, body *ast.BlockStatement) error {
	if err := c.checkStatements(body.Statements, fn); err != nil {
		return err
	}
	if ret.Kind == ast.TypeVoid {
		return nil
	}

	last, ok := body.LastStatement()
	if !ok {
		return errors.Semantic(body.Span, "Statement expected")
	}
	if _, ok := last.(*ast.ReturnStatement); !ok {
		return errors.Semantic(last.GetSpan(), "Return Statement Expected")
	}
	return nil
}
