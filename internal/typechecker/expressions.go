package typechecker

import (
	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/errors"
	"github.com/tinylang/tlc/internal/resolver"
)

// checkExpression returns the type of expr evaluated in scope and records it.
func (c *Checker) checkExpression(expr ast.Expression, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	t, err := c.inferExpression(expr, scope)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}
	c.types[expr] = t
	return t, nil
}

func (c *Checker) inferExpression(expr ast.Expression, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Type, nil
	case *ast.Identifier:
		return c.checkIdentifier(e, scope)
	case *ast.BinaryExpression:
		return c.checkBinary(e, scope)
	case *ast.AssignmentExpression:
		return c.checkAssignment(e, scope)
	case *ast.UnaryExpression:
		return c.checkUnary(e, scope)
	case *ast.CastExpression:
		return c.checkCast(e, scope)
	case *ast.ArrayIndexExpression:
		return c.checkArrayIndex(e, scope)
	case *ast.ArrayInitExpression:
		return c.checkArrayInit(e, scope)
	case *ast.ObjectInitExpression:
		return c.checkObjectInit(e, scope)
	case *ast.CallExpression:
		return c.checkCall(e, scope)
	case *ast.EnumValueExpression:
		return c.checkEnumValue(e)
	case *ast.MemberAccessExpression:
		return c.checkMemberAccess(e, scope)
	}
	return ast.TypeSpecifier{}, errors.Semantic(expr.GetSpan(), "Unknown Expression")
}

func (c *Checker) checkIdentifier(id *ast.Identifier, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	varID, ok := c.table.LookupVariable(scope, id.Value)
	if !ok {
		return ast.TypeSpecifier{}, errors.Semantic(id.Span, "Cannot find the variable")
	}
	v, _ := c.table.Get(varID).Variable()
	return v.Type, nil
}

func (c *Checker) checkBinary(b *ast.BinaryExpression, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	left, err := c.checkExpression(b.Left, scope)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}
	right, err := c.checkExpression(b.Right, scope)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}

	if !left.Equal(right) {
		return ast.TypeSpecifier{}, errors.Semantic(b.Span, "Left and Right hand-side must be the same type")
	}
	if !left.IsPrimitive() {
		return ast.TypeSpecifier{}, errors.Semantic(b.Span, "Cannot apply binary operation to complex type")
	}
	if b.Operator.YieldsBool() {
		return ast.Bool, nil
	}
	return left, nil
}

// isLvalueShaped reports whether expr may be the operand of ++, --, & or *.
func isLvalueShaped(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Identifier, *ast.MemberAccessExpression, *ast.ArrayIndexExpression, *ast.UnaryExpression:
		return true
	}
	return false
}

func isAggregateInit(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.ArrayInitExpression, *ast.ObjectInitExpression:
		return true
	}
	return false
}

func (c *Checker) checkUnary(u *ast.UnaryExpression, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	switch u.Operator {
	case ast.OpPlus, ast.OpMinus, ast.OpLogicalNot, ast.OpBitwiseNot:
		if isAggregateInit(u.Operand) {
			return ast.TypeSpecifier{}, errors.Semantic(u.Span, "Unexpected expression")
		}
	default:
		if !isLvalueShaped(u.Operand) {
			return ast.TypeSpecifier{}, errors.Semantic(u.Span, "Unexpected expression")
		}
	}

	operand, err := c.checkExpression(u.Operand, scope)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}

	switch u.Operator {
	case ast.OpPlus, ast.OpMinus, ast.OpIncrement, ast.OpDecrement:
		if !operand.IsNumeric() {
			return ast.TypeSpecifier{}, errors.Semantic(u.Span, "Value is not supported for the operator")
		}
		return operand, nil
	case ast.OpBitwiseNot:
		if operand.Kind != ast.TypeInt && operand.Kind != ast.TypeUsize {
			return ast.TypeSpecifier{}, errors.Semantic(u.Span, "Type not supported for the operation")
		}
		return operand, nil
	case ast.OpLogicalNot:
		if operand.Kind != ast.TypeBool {
			return ast.TypeSpecifier{}, errors.Semantic(u.Span, "Type not supported for the operation")
		}
		return operand, nil
	case ast.OpAddress:
		return ast.PointerTo(operand), nil
	}

	// dereference
	if operand.Kind != ast.TypePointer {
		return ast.TypeSpecifier{}, errors.Semantic(u.Span, "Expected pointer type")
	}
	inner, _ := operand.Inner()
	return inner, nil
}

func (c *Checker) checkAssignment(a *ast.AssignmentExpression, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	switch a.Target.(type) {
	case *ast.BinaryExpression, *ast.CallExpression, *ast.ArrayInitExpression, *ast.ObjectInitExpression,
		*ast.Literal, *ast.CastExpression, *ast.AssignmentExpression, *ast.EnumValueExpression:
		return ast.TypeSpecifier{}, errors.Semantic(a.Target.GetSpan(), "Left hand side expression is not valid")
	}

	left, err := c.checkExpression(a.Target, scope)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}
	if left.Kind == ast.TypeArray {
		return ast.TypeSpecifier{}, errors.Semantic(a.Target.GetSpan(), "Cannot assign to array")
	}

	right, err := c.checkExpression(a.Value, scope)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}
	if !left.Equal(right) {
		return ast.TypeSpecifier{}, errors.Semantic(a.Span, "Left and Right types are not matched")
	}
	return left, nil
}

func (c *Checker) checkCast(cast *ast.CastExpression, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	source, err := c.checkExpression(cast.Expression, scope)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}
	if !source.IsPrimitive() {
		return ast.TypeSpecifier{}, errors.Semantic(cast.Span, "Cannot cast the complex type")
	}
	return cast.Target, nil
}

func (c *Checker) checkIndex(index ast.Expression, scope resolver.ScopeID) error {
	if isAggregateInit(index) {
		return errors.Semantic(index.GetSpan(), "Index cannot be an object or array init expression")
	}
	if u, ok := index.(*ast.UnaryExpression); ok && !u.Postfix && u.Operator == ast.OpMinus {
		return errors.Semantic(index.GetSpan(), "Index cannot be negative")
	}

	t, err := c.checkExpression(index, scope)
	if err != nil {
		return err
	}
	if t.Kind != ast.TypeUsize && t.Kind != ast.TypeInt {
		return errors.Semantic(index.GetSpan(), "Array index type must be usize")
	}
	return nil
}

func (c *Checker) checkArrayIndex(a *ast.ArrayIndexExpression, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	if err := c.checkIndex(a.Index, scope); err != nil {
		return ast.TypeSpecifier{}, err
	}
	if a.SecondIndex != nil {
		if err := c.checkIndex(a.SecondIndex, scope); err != nil {
			return ast.TypeSpecifier{}, err
		}
	}

	switch a.Array.(type) {
	case *ast.Identifier, *ast.MemberAccessExpression, *ast.CallExpression:
	default:
		return ast.TypeSpecifier{}, errors.Semantic(a.Array.GetSpan(),
			"Array type must be Identifier, Member Access or Function Call expression")
	}

	arrayType, err := c.checkExpression(a.Array, scope)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}

	switch arrayType.Kind {
	case ast.TypeArray:
		elem, _ := arrayType.Inner()
		if elem.Kind == ast.TypeStr {
			return ast.Char, nil
		}
		if inner, ok := elem.Inner(); ok && elem.Kind == ast.TypeArray && a.SecondIndex != nil {
			return inner, nil
		}
		return elem, nil
	case ast.TypePointer:
		elem, _ := arrayType.Inner()
		return elem, nil
	}
	return ast.TypeSpecifier{}, errors.Semantic(a.Array.GetSpan(), "Expect the array type")
}

func (c *Checker) checkArrayInit(a *ast.ArrayInitExpression, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	if len(a.Elements) == 0 {
		return ast.TypeSpecifier{}, errors.Semantic(a.Span, "Cannot infer type of empty array")
	}

	elem, err := c.checkExpression(a.Elements[0], scope)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}
	for _, e := range a.Elements[1:] {
		t, err := c.checkExpression(e, scope)
		if err != nil {
			return ast.TypeSpecifier{}, err
		}
		if !t.Equal(elem) {
			return ast.TypeSpecifier{}, errors.Semantic(e.GetSpan(), "Array item types must be same!")
		}
	}
	return ast.ArrayOf(elem, len(a.Elements)), nil
}

// checkObjectInit requires every field of the struct exactly once. Field
// values are evaluated in the caller's scope.
func (c *Checker) checkObjectInit(o *ast.ObjectInitExpression, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	name, ok := o.Object.(*ast.Identifier)
	if !ok {
		return ast.TypeSpecifier{}, errors.Semantic(o.Object.GetSpan(), "Cannot find the struct")
	}
	structID, ok := c.table.FindStruct(c.root, name.Value)
	if !ok {
		return ast.TypeSpecifier{}, errors.Semantic(name.Span, "Cannot find the struct")
	}

	count := c.table.CountKind(structID, resolver.KindStructField)
	if len(o.Fields) > count {
		return ast.TypeSpecifier{}, errors.Semantic(o.Span, "Too many fields")
	}
	if len(o.Fields) < count {
		return ast.TypeSpecifier{}, errors.Semantic(o.Span, "Missing fields")
	}

	seen := make(map[string]bool, len(o.Fields))
	for _, field := range o.Fields {
		fieldID, ok := c.table.FindStructField(structID, field.Name.Value)
		if !ok {
			return ast.TypeSpecifier{}, errors.Semantic(field.Name.Span, "Cannot find the struct field named %s", field.Name.Value)
		}
		if seen[field.Name.Value] {
			return ast.TypeSpecifier{}, errors.Semantic(field.Name.Span, "Duplicate field named %s", field.Name.Value)
		}
		seen[field.Name.Value] = true

		t, err := c.checkExpression(field.Value, scope)
		if err != nil {
			return ast.TypeSpecifier{}, err
		}
		declared, _ := c.table.Get(fieldID).Field()
		if !declared.Type.Equal(t) {
			return ast.TypeSpecifier{}, errors.Semantic(field.Span, "Struct type and expression types do not matches")
		}
	}
	return ast.UserType(name.Value), nil
}

func (c *Checker) checkEnumValue(e *ast.EnumValueExpression) (ast.TypeSpecifier, error) {
	enumID, ok := c.table.FindEnum(c.root, e.Enum.Value)
	if !ok {
		return ast.TypeSpecifier{}, errors.Semantic(e.Enum.Span, "Cannot find the enum")
	}
	if _, ok := c.table.FindEnumItem(enumID, e.Item.Value); !ok {
		return ast.TypeSpecifier{}, errors.Semantic(e.Item.Span, "Cannot find the enum item")
	}
	return ast.UserType(e.Enum.Value), nil
}

// checkCall resolves a free function, or a struct function when the call is
// namespaced, and checks the arguments against its parameters.
func (c *Checker) checkCall(call *ast.CallExpression, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	owner := c.root
	if call.Namespace != nil {
		ns, ok := call.Namespace.(*ast.Identifier)
		if !ok {
			return ast.TypeSpecifier{}, errors.Semantic(call.Namespace.GetSpan(), "Cannot find the struct")
		}
		if owner, ok = c.table.FindStruct(c.root, ns.Value); !ok {
			return ast.TypeSpecifier{}, errors.Semantic(ns.Span, "Cannot find the struct")
		}
	}

	fnID, err := c.findFunction(call, owner)
	if err != nil {
		return ast.TypeSpecifier{}, err
	}
	if call.Namespace != nil {
		if err := c.checkAccess(fnID, owner, scope, call.Function.GetSpan()); err != nil {
			return ast.TypeSpecifier{}, err
		}
	}
	return c.checkArguments(fnID, call, scope)
}

func (c *Checker) findFunction(call *ast.CallExpression, owner resolver.ScopeID) (resolver.ScopeID, error) {
	name, ok := call.Function.(*ast.Identifier)
	if !ok {
		return resolver.NoScope, errors.Semantic(call.Function.GetSpan(), "Cannot find the function")
	}
	fnID, ok := c.table.FindFunction(owner, name.Value)
	if !ok {
		return resolver.NoScope, errors.Semantic(name.Span, "Cannot find the function")
	}
	return fnID, nil
}

// checkArguments evaluates the arguments in scope, the caller's scope.
func (c *Checker) checkArguments(fnID resolver.ScopeID, call *ast.CallExpression, scope resolver.ScopeID) (ast.TypeSpecifier, error) {
	fn, _ := c.table.Get(fnID).Function()
	if len(call.Arguments) > len(fn.Params) {
		return ast.TypeSpecifier{}, errors.Semantic(call.Span, "Too many parameter")
	}
	if len(call.Arguments) < len(fn.Params) {
		return ast.TypeSpecifier{}, errors.Semantic(call.Span, "Missing parameter")
	}

	for i, arg := range call.Arguments {
		t, err := c.checkExpression(arg, scope)
		if err != nil {
			return ast.TypeSpecifier{}, err
		}
		if !t.Equal(fn.Params[i]) {
			return ast.TypeSpecifier{}, errors.Semantic(arg.GetSpan(), "Parameter expression type does not match")
		}
	}
	return fn.ReturnType, nil
}
