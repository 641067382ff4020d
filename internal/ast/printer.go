package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented outline of the tree rooted at node.
func Fprint(w io.Writer, node Node) error {
	p := &printer{}
	p.print(node, 0)
	_, err := io.WriteString(w, p.buf.String())
	return err
}

// Sprint returns the outline produced by Fprint.
func Sprint(node Node) string {
	var sb strings.Builder
	_ = Fprint(&sb, node)
	return sb.String()
}

type printer struct {
	buf strings.Builder
}

func (p *printer) print(node Node, depth int) {
	label, _ := node.Accept(p).(string)
	p.buf.WriteString(strings.Repeat("  ", depth))
	p.buf.WriteString(label)
	p.buf.WriteByte('\n')

	for _, child := range Children(node) {
		// names are already part of the parent label
		if id, ok := child.(*Identifier); ok && isDeclName(node, id) {
			continue
		}
		p.print(child, depth+1)
	}
}

func isDeclName(parent Node, id *Identifier) bool {
	switch n := parent.(type) {
	case *FunctionDeclaration:
		return n.Name == id
	case *MethodDeclaration:
		return n.Name == id
	case *StructDeclaration:
		return n.Name == id
	case *FieldDeclaration:
		return n.Name == id
	case *EnumDeclaration:
		return n.Name == id
	case *Parameter:
		return n.Name == id
	case *LetStatement:
		return n.Name == id
	case *FieldInit:
		return n.Name == id
	case *EnumValueExpression:
		return true
	}
	return false
}

func (p *printer) VisitProgram(node *Program) interface{} { return "Program" }

func (p *printer) VisitFunctionDeclaration(node *FunctionDeclaration) interface{} {
	return fmt.Sprintf("FnDeclaration %s (%s) -> %s", node.Name.Value, node.Access, node.ReturnType)
}

func (p *printer) VisitParameter(node *Parameter) interface{} {
	return fmt.Sprintf("Param %s: %s", node.Name.Value, node.Type)
}

func (p *printer) VisitStructDeclaration(node *StructDeclaration) interface{} {
	return fmt.Sprintf("StructDeclaration %s (%s)", node.Name.Value, node.Access)
}

func (p *printer) VisitFieldDeclaration(node *FieldDeclaration) interface{} {
	return fmt.Sprintf("Field %s: %s (%s)", node.Name.Value, node.Type, node.Access)
}

func (p *printer) VisitEnumDeclaration(node *EnumDeclaration) interface{} {
	return fmt.Sprintf("EnumDeclaration %s (%s)", node.Name.Value, node.Access)
}

func (p *printer) VisitImplDeclaration(node *ImplDeclaration) interface{} {
	return fmt.Sprintf("ImplDeclaration %s", node.Target)
}

func (p *printer) VisitMethodDeclaration(node *MethodDeclaration) interface{} {
	return fmt.Sprintf("MemberFunction %s (%s) -> %s", node.Name.Value, node.Access, node.ReturnType)
}

func (p *printer) VisitBlockStatement(node *BlockStatement) interface{} { return "Block" }

func (p *printer) VisitLetStatement(node *LetStatement) interface{} {
	if node.Type != nil {
		return fmt.Sprintf("Let %s: %s", node.Name.Value, node.Type)
	}
	return fmt.Sprintf("Let %s", node.Name.Value)
}

func (p *printer) VisitReturnStatement(node *ReturnStatement) interface{} { return "Return" }

func (p *printer) VisitDeferStatement(node *DeferStatement) interface{} { return "Defer" }

func (p *printer) VisitExpressionStatement(node *ExpressionStatement) interface{} {
	return "ExpressionStatement"
}

func (p *printer) VisitIfStatement(node *IfStatement) interface{} { return "If" }

func (p *printer) VisitElseIfClause(node *ElseIfClause) interface{} { return "ElseIf" }

func (p *printer) VisitWhileStatement(node *WhileStatement) interface{} { return "While" }

func (p *printer) VisitForStatement(node *ForStatement) interface{} { return "For" }

func (p *printer) VisitIdentifier(node *Identifier) interface{} {
	return "Identifier " + node.Value
}

func (p *printer) VisitLiteral(node *Literal) interface{} {
	return fmt.Sprintf("Primitive %s (%s)", node, node.Type)
}

func (p *printer) VisitBinaryExpression(node *BinaryExpression) interface{} {
	return "Binary " + node.Operator.String()
}

func (p *printer) VisitAssignmentExpression(node *AssignmentExpression) interface{} {
	return "Assignment"
}

func (p *printer) VisitUnaryExpression(node *UnaryExpression) interface{} {
	if node.Postfix {
		return "Unary postfix " + node.Operator.String()
	}
	return "Unary prefix " + node.Operator.String()
}

func (p *printer) VisitArrayIndexExpression(node *ArrayIndexExpression) interface{} {
	return "ArrayIndex"
}

func (p *printer) VisitMemberAccessExpression(node *MemberAccessExpression) interface{} {
	if node.Arrow {
		return "MemberAccess ->"
	}
	return "MemberAccess ."
}

func (p *printer) VisitCallExpression(node *CallExpression) interface{} {
	return fmt.Sprintf("FnCall (%d args)", len(node.Arguments))
}

func (p *printer) VisitEnumValueExpression(node *EnumValueExpression) interface{} {
	return "EnumValue " + node.String()
}

func (p *printer) VisitArrayInitExpression(node *ArrayInitExpression) interface{} {
	return fmt.Sprintf("ArrayInit (%d items)", len(node.Elements))
}

func (p *printer) VisitFieldInit(node *FieldInit) interface{} {
	return "FieldInit " + node.Name.Value
}

func (p *printer) VisitObjectInitExpression(node *ObjectInitExpression) interface{} {
	return "ObjectInit"
}

func (p *printer) VisitCastExpression(node *CastExpression) interface{} {
	return "Cast as " + node.Target.String()
}
