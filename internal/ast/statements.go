package ast

import (
	"fmt"

	"github.com/tinylang/tlc/internal/position"
)

// BlockStatement represents `{ statements }`
type BlockStatement struct {
	Span       position.Span
	Statements []Statement
}

func (b *BlockStatement) GetSpan() position.Span             { return b.Span }
func (b *BlockStatement) String() string                     { return fmt.Sprintf("{ %d statements }", len(b.Statements)) }
func (b *BlockStatement) Accept(visitor Visitor) interface{} { return visitor.VisitBlockStatement(b) }
func (b *BlockStatement) statementNode()                     {}

// LastStatement returns the final statement of the block, if any.
func (b *BlockStatement) LastStatement() (Statement, bool) {
	if len(b.Statements) == 0 {
		return nil, false
	}
	return b.Statements[len(b.Statements)-1], true
}

// LetStatement represents `let name[: type] [= value];`. Type is nil when
// the type is inferred from Value.
type LetStatement struct {
	Span  position.Span
	Name  *Identifier
	Type  *TypeSpecifier
	Value Expression
}

func (l *LetStatement) GetSpan() position.Span { return l.Span }
func (l *LetStatement) String() string {
	s := "let " + l.Name.Value
	if l.Type != nil {
		s += ": " + l.Type.String()
	}
	if l.Value != nil {
		s += " = " + l.Value.String()
	}
	return s
}
func (l *LetStatement) Accept(visitor Visitor) interface{} { return visitor.VisitLetStatement(l) }
func (l *LetStatement) statementNode()                     {}

// ReturnStatement represents `return [value];`
type ReturnStatement struct {
	Span  position.Span
	Value Expression
}

func (r *ReturnStatement) GetSpan() position.Span { return r.Span }
func (r *ReturnStatement) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}
func (r *ReturnStatement) Accept(visitor Visitor) interface{} { return visitor.VisitReturnStatement(r) }
func (r *ReturnStatement) statementNode()                     {}

// DeferStatement represents `defer expression;`
type DeferStatement struct {
	Span       position.Span
	Expression Expression
}

func (d *DeferStatement) GetSpan() position.Span             { return d.Span }
func (d *DeferStatement) String() string                     { return "defer " + d.Expression.String() }
func (d *DeferStatement) Accept(visitor Visitor) interface{} { return visitor.VisitDeferStatement(d) }
func (d *DeferStatement) statementNode()                     {}

// ExpressionStatement is an expression terminated by a semicolon.
type ExpressionStatement struct {
	Span       position.Span
	Expression Expression
}

func (e *ExpressionStatement) GetSpan() position.Span { return e.Span }
func (e *ExpressionStatement) String() string         { return e.Expression.String() }
func (e *ExpressionStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitExpressionStatement(e)
}
func (e *ExpressionStatement) statementNode() {}

// ElseIfClause is one `else if (condition) { body }` arm.
type ElseIfClause struct {
	Span      position.Span
	Condition Expression
	Body      *BlockStatement
}

func (e *ElseIfClause) GetSpan() position.Span             { return e.Span }
func (e *ElseIfClause) String() string                     { return "else if " + e.Condition.String() }
func (e *ElseIfClause) Accept(visitor Visitor) interface{} { return visitor.VisitElseIfClause(e) }

// IfStatement represents an if / else if / else chain.
type IfStatement struct {
	Span        position.Span
	Condition   Expression
	Consequence *BlockStatement
	ElseIfs     []*ElseIfClause
	Alternative *BlockStatement
}

func (i *IfStatement) GetSpan() position.Span             { return i.Span }
func (i *IfStatement) String() string                     { return "if " + i.Condition.String() }
func (i *IfStatement) Accept(visitor Visitor) interface{} { return visitor.VisitIfStatement(i) }
func (i *IfStatement) statementNode()                     {}

// WhileStatement represents `while (condition) { body }`
type WhileStatement struct {
	Span      position.Span
	Condition Expression
	Body      *BlockStatement
}

func (w *WhileStatement) GetSpan() position.Span             { return w.Span }
func (w *WhileStatement) String() string                     { return "while " + w.Condition.String() }
func (w *WhileStatement) Accept(visitor Visitor) interface{} { return visitor.VisitWhileStatement(w) }
func (w *WhileStatement) statementNode()                     {}

// ForStatement represents `for (init; condition; increment) { body }`.
// Init is a *LetStatement or an *ExpressionStatement wrapping an assignment.
type ForStatement struct {
	Span      position.Span
	Init      Statement
	Condition Expression
	Increment Expression
	Body      *BlockStatement
}

func (f *ForStatement) GetSpan() position.Span { return f.Span }
func (f *ForStatement) String() string {
	return fmt.Sprintf("for (%s; %s; %s)", f.Init, f.Condition, f.Increment)
}
func (f *ForStatement) Accept(visitor Visitor) interface{} { return visitor.VisitForStatement(f) }
func (f *ForStatement) statementNode()                     {}
