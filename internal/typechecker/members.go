package typechecker

import (
	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/errors"
	"github.com/tinylang/tlc/internal/position"
	"github.com/tinylang/tlc/internal/resolver"
)

// checkMemberAccess types `object.property` and `object->property`.
func (c *Checker) checkMemberAccess(m *ast.MemberAccessExpression, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	switch m.Object.(type) {
	case *ast.BinaryExpression, *ast.AssignmentExpression, *ast.ArrayInitExpression,
		*ast.Literal, *ast.MemberAccessExpression:
		return ast.TypeSpecifier{}, errors.Semantic(m.Object.GetSpan(), "Invalid object expression")
	}

	objectType, err := c.checkExpression(m.Object, scope)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}
	owner, err := memberOwner(objectType, m.Arrow, m.Span)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}
	return c.checkProperty(m.Property, owner, scope)
}

// memberOwner returns the struct name reached through a value of type t.
// Plain struct values take `.`, pointers to structs take `->`.
func memberOwner(t ast.TypeSpecifier, arrow bool, span position.Span) (string, error) {
	switch t.Kind {
	case ast.TypeUserDefine:
		if arrow {
			return "", errors.Semantic(span, "Use dot('.') operator to access member")
		}
		return t.Name, nil
	case ast.TypePointer:
		inner, _ := t.Inner()
		if inner.Kind != ast.TypeUserDefine {
			break
		}
		if !arrow {
			return "", errors.Semantic(span, "Use arrow('->') operator to access member with pointer type")
		}
		return inner.Name, nil
	}
	return "", errors.Semantic(span, "Member access only can use with user define type")
}

// checkProperty resolves a field, a method call or a nested access on the
// struct named owner. Method arguments are evaluated in the caller's scope.
func (c *Checker) checkProperty(prop ast.Expression, owner string, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	structID, ok := c.table.FindStruct(c.root, owner)
	if !ok {
		return ast.TypeSpecifier{}, errors.Semantic(prop.GetSpan(), "Cannot find the struct")
	}

	var (
		t   ast.TypeSpecifier
		err error
	)
	switch p := prop.(type) {
	case *ast.Identifier:
		t, err = c.checkField(p, structID, scope)
	case *ast.CallExpression:
		t, err = c.checkMethodCall(p, structID, scope)
	case *ast.MemberAccessExpression:
		t, err = c.checkNestedAccess(p, owner, scope)
	default:
		return ast.TypeSpecifier{}, errors.Semantic(prop.GetSpan(), "Invalid property expression")
	}
	if err != nil {
		return ast.TypeSpecifier{}, err
	}
	c.types[prop] = t
	return t, nil
}

func (c *Checker) checkField(name *ast.Identifier, structID, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	fieldID, ok := c.table.FindStructField(structID, name.Value)
	if !ok {
		return ast.TypeSpecifier{}, errors.Semantic(name.Span, "Cannot find the struct field")
	}
	if err := c.checkAccess(fieldID, structID, scope, name.Span); err != nil {
		return ast.TypeSpecifier{}, err
	}
	field, _ := c.table.Get(fieldID).Field()
	return field.Type, nil
}

func (c *Checker) checkMethodCall(call *ast.CallExpression, structID, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	if call.Namespace != nil {
		return ast.TypeSpecifier{}, errors.Semantic(call.Span, "Invalid property expression")
	}
	fnID, err := c.findFunction(call, structID)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}
	if err := c.checkAccess(fnID, structID, scope, call.Function.GetSpan()); err != nil {
		return ast.TypeSpecifier{}, err
	}
	return c.checkArguments(fnID, call, scope)
}

// checkNestedAccess handles the right-nested chain `a.b.c`, where the object
// of the inner access is itself a member of owner.
func (c *Checker) checkNestedAccess(m *ast.MemberAccessExpression, owner string, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	objectType, err := c.checkProperty(m.Object, owner, scope)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}
	next, err := memberOwner(objectType, m.Arrow, m.Span)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}
	return c.checkProperty(m.Property, next, scope)
}

// checkAccess enforces visibility: private members are reachable only from
// functions declared in the owning struct.
func (c *Checker) checkAccess(member, structID, scope resolver.ScopeID, span position.Span) error {
	if c.table.Get(member).Access == resolver.AccessPublic {
		return nil
	}
	if fnID, ok := c.table.EnclosingFunction(scope); ok {
		if parent, ok := c.table.Parent(fnID); ok && parent == structID {
			return nil
		}
	}
	return errors.Semantic(span, "Property is private")
}
