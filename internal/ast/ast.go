// Package ast defines the Abstract Syntax Tree produced by the tlc parser.
//
// The tree is strictly owned: every node holds its children exclusively and
// carries the source span it was parsed from. Nodes implement the Visitor
// pattern for traversal; the semantic analyzer walks them with type switches.
package ast

import (
	"fmt"
	"strings"

	"github.com/tinylang/tlc/internal/position"
)

// Node is the base interface for all AST nodes
type Node interface {
	// GetSpan returns the source span covered by this node
	GetSpan() position.Span
	// String returns a human-readable representation of the node
	String() string
	// Accept implements the visitor pattern for AST traversal
	Accept(visitor Visitor) interface{}
}

// Statement represents all statement nodes in the AST
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes in the AST
type Expression interface {
	Node
	expressionNode()
}

// Declaration represents all top-level declaration nodes in the AST
type Declaration interface {
	Node
	declarationNode()
}

// Access is the visibility written before a declaration.
type Access int

const (
	AccessPrivate Access = iota
	AccessPublic
)

func (a Access) String() string {
	if a == AccessPublic {
		return "public"
	}
	return "private"
}

// ===== Program Structure =====

// Program represents the root of the AST
type Program struct {
	Span         position.Span
	Declarations []Declaration
}

func (p *Program) GetSpan() position.Span             { return p.Span }
func (p *Program) String() string                     { return fmt.Sprintf("Program(%d declarations)", len(p.Declarations)) }
func (p *Program) Accept(visitor Visitor) interface{} { return visitor.VisitProgram(p) }

// ===== Declarations =====

// Parameter is a `name: type` pair used for parameters and method receivers.
type Parameter struct {
	Span position.Span
	Name *Identifier
	Type TypeSpecifier
}

func (p *Parameter) GetSpan() position.Span             { return p.Span }
func (p *Parameter) String() string                     { return fmt.Sprintf("%s: %s", p.Name.Value, p.Type) }
func (p *Parameter) Accept(visitor Visitor) interface{} { return visitor.VisitParameter(p) }

// FunctionDeclaration represents `fn name(params) -> type { body }`
type FunctionDeclaration struct {
	Span       position.Span
	Access     Access
	Name       *Identifier
	Parameters []*Parameter
	ReturnType TypeSpecifier
	Body       *BlockStatement
}

func (f *FunctionDeclaration) GetSpan() position.Span { return f.Span }
func (f *FunctionDeclaration) String() string {
	return fmt.Sprintf("fn %s(%s) -> %s", f.Name.Value, joinParams(f.Parameters), f.ReturnType)
}
func (f *FunctionDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitFunctionDeclaration(f)
}
func (f *FunctionDeclaration) declarationNode() {}

// FieldDeclaration is one field of a struct.
type FieldDeclaration struct {
	Span   position.Span
	Access Access
	Name   *Identifier
	Type   TypeSpecifier
}

func (f *FieldDeclaration) GetSpan() position.Span { return f.Span }
func (f *FieldDeclaration) String() string         { return fmt.Sprintf("%s: %s", f.Name.Value, f.Type) }
func (f *FieldDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitFieldDeclaration(f)
}

// StructDeclaration represents `struct Name { fields }`
type StructDeclaration struct {
	Span   position.Span
	Access Access
	Name   *Identifier
	Fields []*FieldDeclaration
}

func (s *StructDeclaration) GetSpan() position.Span { return s.Span }
func (s *StructDeclaration) String() string         { return fmt.Sprintf("struct %s", s.Name.Value) }
func (s *StructDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitStructDeclaration(s)
}
func (s *StructDeclaration) declarationNode() {}

// EnumDeclaration represents `enum Name { A, B }`
type EnumDeclaration struct {
	Span   position.Span
	Access Access
	Name   *Identifier
	Items  []*Identifier
}

func (e *EnumDeclaration) GetSpan() position.Span { return e.Span }
func (e *EnumDeclaration) String() string         { return fmt.Sprintf("enum %s", e.Name.Value) }
func (e *EnumDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitEnumDeclaration(e)
}
func (e *EnumDeclaration) declarationNode() {}

// MethodDeclaration is a member function inside an impl block. Receiver is
// nil for functions without a `(self: T)` clause.
type MethodDeclaration struct {
	Span       position.Span
	Access     Access
	Receiver   *Parameter
	Name       *Identifier
	Parameters []*Parameter
	ReturnType TypeSpecifier
	Body       *BlockStatement
}

func (m *MethodDeclaration) GetSpan() position.Span { return m.Span }
func (m *MethodDeclaration) String() string {
	recv := ""
	if m.Receiver != nil {
		recv = "(" + m.Receiver.String() + ") "
	}
	return fmt.Sprintf("fn %s%s(%s) -> %s", recv, m.Name.Value, joinParams(m.Parameters), m.ReturnType)
}
func (m *MethodDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitMethodDeclaration(m)
}

// ImplDeclaration attaches methods to a previously declared struct.
type ImplDeclaration struct {
	Span       position.Span
	Target     TypeSpecifier
	TargetSpan position.Span
	Methods    []*MethodDeclaration
}

func (i *ImplDeclaration) GetSpan() position.Span { return i.Span }
func (i *ImplDeclaration) String() string         { return fmt.Sprintf("impl %s", i.Target) }
func (i *ImplDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitImplDeclaration(i)
}
func (i *ImplDeclaration) declarationNode() {}

func joinParams(params []*Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
