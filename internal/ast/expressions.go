package ast

import (
	"fmt"
	"strings"

	"github.com/tinylang/tlc/internal/position"
)

// BinaryOperator enumerates infix operators.
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpEqual
	OpNotEqual
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpGreaterThan
	OpLessThan
	OpGreaterEqual
	OpLessEqual
	OpBitLeft
	OpBitRight
)

var binaryOperatorSymbols = map[BinaryOperator]string{
	OpAdd:          "+",
	OpSubtract:     "-",
	OpMultiply:     "*",
	OpDivide:       "/",
	OpModulo:       "%",
	OpEqual:        "==",
	OpNotEqual:     "!=",
	OpAnd:          "&&",
	OpOr:           "||",
	OpBitAnd:       "&",
	OpBitOr:        "|",
	OpBitXor:       "^",
	OpGreaterThan:  ">",
	OpLessThan:     "<",
	OpGreaterEqual: ">=",
	OpLessEqual:    "<=",
	OpBitLeft:      "<<",
	OpBitRight:     ">>",
}

func (op BinaryOperator) String() string {
	return binaryOperatorSymbols[op]
}

// YieldsBool reports whether the operator is a comparison or a logical
// connective, whose result is always bool.
func (op BinaryOperator) YieldsBool() bool {
	switch op {
	case OpEqual, OpNotEqual, OpAnd, OpOr, OpGreaterThan, OpLessThan, OpGreaterEqual, OpLessEqual:
		return true
	}
	return false
}

// UnaryOperator enumerates prefix and postfix operators.
type UnaryOperator int

const (
	OpPlus UnaryOperator = iota
	OpMinus
	OpIncrement
	OpDecrement
	OpLogicalNot
	OpBitwiseNot
	OpAddress
	OpDereference
)

var unaryOperatorSymbols = map[UnaryOperator]string{
	OpPlus:        "+",
	OpMinus:       "-",
	OpIncrement:   "++",
	OpDecrement:   "--",
	OpLogicalNot:  "!",
	OpBitwiseNot:  "~",
	OpAddress:     "&",
	OpDereference: "*",
}

func (op UnaryOperator) String() string {
	return unaryOperatorSymbols[op]
}

// Identifier is a name reference. It is also used for declaration names.
type Identifier struct {
	Span  position.Span
	Value string
}

func (i *Identifier) GetSpan() position.Span             { return i.Span }
func (i *Identifier) String() string                     { return i.Value }
func (i *Identifier) Accept(visitor Visitor) interface{} { return visitor.VisitIdentifier(i) }
func (i *Identifier) expressionNode()                    {}

// Literal is a number, string, char or boolean constant. Type is fixed at
// parse time: numbers containing a dot are double, others int.
type Literal struct {
	Span  position.Span
	Type  TypeSpecifier
	Value string
}

func (l *Literal) GetSpan() position.Span { return l.Span }
func (l *Literal) String() string {
	switch l.Type.Kind {
	case TypeStr:
		return `"` + l.Value + `"`
	case TypeChar:
		return "'" + l.Value + "'"
	}
	return l.Value
}
func (l *Literal) Accept(visitor Visitor) interface{} { return visitor.VisitLiteral(l) }
func (l *Literal) expressionNode()                    {}

// BinaryExpression represents `left op right`
type BinaryExpression struct {
	Span     position.Span
	Left     Expression
	Operator BinaryOperator
	Right    Expression
}

func (b *BinaryExpression) GetSpan() position.Span { return b.Span }
func (b *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Operator, b.Right)
}
func (b *BinaryExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitBinaryExpression(b)
}
func (b *BinaryExpression) expressionNode() {}

// AssignmentExpression represents `target = value`
type AssignmentExpression struct {
	Span   position.Span
	Target Expression
	Value  Expression
}

func (a *AssignmentExpression) GetSpan() position.Span { return a.Span }
func (a *AssignmentExpression) String() string {
	return fmt.Sprintf("(%s = %s)", a.Target, a.Value)
}
func (a *AssignmentExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitAssignmentExpression(a)
}
func (a *AssignmentExpression) expressionNode() {}

// UnaryExpression represents a prefix or postfix operator application.
type UnaryExpression struct {
	Span     position.Span
	Operator UnaryOperator
	Operand  Expression
	Postfix  bool
}

func (u *UnaryExpression) GetSpan() position.Span { return u.Span }
func (u *UnaryExpression) String() string {
	if u.Postfix {
		return fmt.Sprintf("(%s%s)", u.Operand, u.Operator)
	}
	return fmt.Sprintf("(%s%s)", u.Operator, u.Operand)
}
func (u *UnaryExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitUnaryExpression(u)
}
func (u *UnaryExpression) expressionNode() {}

// ArrayIndexExpression represents `array[index]` or `array[index, second]`.
type ArrayIndexExpression struct {
	Span        position.Span
	Array       Expression
	Index       Expression
	SecondIndex Expression
}

func (a *ArrayIndexExpression) GetSpan() position.Span { return a.Span }
func (a *ArrayIndexExpression) String() string {
	if a.SecondIndex != nil {
		return fmt.Sprintf("%s[%s, %s]", a.Array, a.Index, a.SecondIndex)
	}
	return fmt.Sprintf("%s[%s]", a.Array, a.Index)
}
func (a *ArrayIndexExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitArrayIndexExpression(a)
}
func (a *ArrayIndexExpression) expressionNode() {}

// MemberAccessExpression represents `object.property` or `object->property`.
// Property is an Identifier, a CallExpression or a nested member access.
type MemberAccessExpression struct {
	Span     position.Span
	Object   Expression
	Arrow    bool
	Property Expression
}

func (m *MemberAccessExpression) GetSpan() position.Span { return m.Span }
func (m *MemberAccessExpression) String() string {
	op := "."
	if m.Arrow {
		op = "->"
	}
	return fmt.Sprintf("%s%s%s", m.Object, op, m.Property)
}
func (m *MemberAccessExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitMemberAccessExpression(m)
}
func (m *MemberAccessExpression) expressionNode() {}

// CallExpression represents `[Namespace::]function(arguments)`.
type CallExpression struct {
	Span      position.Span
	Namespace Expression
	Function  Expression
	Arguments []Expression
}

func (c *CallExpression) GetSpan() position.Span { return c.Span }
func (c *CallExpression) String() string {
	prefix := ""
	if c.Namespace != nil {
		prefix = c.Namespace.String() + "::"
	}
	return fmt.Sprintf("%s%s(%s)", prefix, c.Function, joinExpressions(c.Arguments))
}
func (c *CallExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitCallExpression(c)
}
func (c *CallExpression) expressionNode() {}

// EnumValueExpression represents `Enum::Item`.
type EnumValueExpression struct {
	Span position.Span
	Enum *Identifier
	Item *Identifier
}

func (e *EnumValueExpression) GetSpan() position.Span { return e.Span }
func (e *EnumValueExpression) String() string         { return e.Enum.Value + "::" + e.Item.Value }
func (e *EnumValueExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitEnumValueExpression(e)
}
func (e *EnumValueExpression) expressionNode() {}

// ArrayInitExpression represents `[a, b, c]`
type ArrayInitExpression struct {
	Span     position.Span
	Elements []Expression
}

func (a *ArrayInitExpression) GetSpan() position.Span { return a.Span }
func (a *ArrayInitExpression) String() string         { return "[" + joinExpressions(a.Elements) + "]" }
func (a *ArrayInitExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitArrayInitExpression(a)
}
func (a *ArrayInitExpression) expressionNode() {}

// FieldInit is one `name: value` entry of an object initializer. For the
// shorthand form `name` the value is an Identifier of the same name.
type FieldInit struct {
	Span      position.Span
	Name      *Identifier
	Value     Expression
	Shorthand bool
}

func (f *FieldInit) GetSpan() position.Span { return f.Span }
func (f *FieldInit) String() string {
	if f.Shorthand {
		return f.Name.Value
	}
	return fmt.Sprintf("%s: %s", f.Name.Value, f.Value)
}
func (f *FieldInit) Accept(visitor Visitor) interface{} { return visitor.VisitFieldInit(f) }

// ObjectInitExpression represents `Type { field: value, ... }`
type ObjectInitExpression struct {
	Span   position.Span
	Object Expression
	Fields []*FieldInit
}

func (o *ObjectInitExpression) GetSpan() position.Span { return o.Span }
func (o *ObjectInitExpression) String() string {
	parts := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%s{%s}", o.Object, strings.Join(parts, ", "))
}
func (o *ObjectInitExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitObjectInitExpression(o)
}
func (o *ObjectInitExpression) expressionNode() {}

// CastExpression represents `expression as Type`
type CastExpression struct {
	Span       position.Span
	Expression Expression
	Target     TypeSpecifier
}

func (c *CastExpression) GetSpan() position.Span { return c.Span }
func (c *CastExpression) String() string {
	return fmt.Sprintf("(%s as %s)", c.Expression, c.Target)
}
func (c *CastExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitCastExpression(c)
}
func (c *CastExpression) expressionNode() {}

func joinExpressions(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
