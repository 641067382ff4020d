package ast

// Visitor has one method per concrete node type.
type Visitor interface {
	VisitProgram(node *Program) interface{}

	// Declarations
	VisitFunctionDeclaration(node *FunctionDeclaration) interface{}
	VisitParameter(node *Parameter) interface{}
	VisitStructDeclaration(node *StructDeclaration) interface{}
	VisitFieldDeclaration(node *FieldDeclaration) interface{}
	VisitEnumDeclaration(node *EnumDeclaration) interface{}
	VisitImplDeclaration(node *ImplDeclaration) interface{}
	VisitMethodDeclaration(node *MethodDeclaration) interface{}

	// Statements
	VisitBlockStatement(node *BlockStatement) interface{}
	VisitLetStatement(node *LetStatement) interface{}
	VisitReturnStatement(node *ReturnStatement) interface{}
	VisitDeferStatement(node *DeferStatement) interface{}
	VisitExpressionStatement(node *ExpressionStatement) interface{}
	VisitIfStatement(node *IfStatement) interface{}
	VisitElseIfClause(node *ElseIfClause) interface{}
	VisitWhileStatement(node *WhileStatement) interface{}
	VisitForStatement(node *ForStatement) interface{}

	// Expressions
	VisitIdentifier(node *Identifier) interface{}
	VisitLiteral(node *Literal) interface{}
	VisitBinaryExpression(node *BinaryExpression) interface{}
	VisitAssignmentExpression(node *AssignmentExpression) interface{}
	VisitUnaryExpression(node *UnaryExpression) interface{}
	VisitArrayIndexExpression(node *ArrayIndexExpression) interface{}
	VisitMemberAccessExpression(node *MemberAccessExpression) interface{}
	VisitCallExpression(node *CallExpression) interface{}
	VisitEnumValueExpression(node *EnumValueExpression) interface{}
	VisitArrayInitExpression(node *ArrayInitExpression) interface{}
	VisitFieldInit(node *FieldInit) interface{}
	VisitObjectInitExpression(node *ObjectInitExpression) interface{}
	VisitCastExpression(node *CastExpression) interface{}
}

// Children returns the direct child nodes of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if n != nil && !isNilNode(n) {
				out = append(out, n)
			}
		}
	}

	switch n := node.(type) {
	case *Program:
		for _, d := range n.Declarations {
			add(d)
		}
	case *FunctionDeclaration:
		add(n.Name)
		for _, p := range n.Parameters {
			add(p)
		}
		add(n.Body)
	case *Parameter:
		add(n.Name)
	case *StructDeclaration:
		add(n.Name)
		for _, f := range n.Fields {
			add(f)
		}
	case *FieldDeclaration:
		add(n.Name)
	case *EnumDeclaration:
		add(n.Name)
		for _, item := range n.Items {
			add(item)
		}
	case *ImplDeclaration:
		for _, m := range n.Methods {
			add(m)
		}
	case *MethodDeclaration:
		add(n.Receiver, n.Name)
		for _, p := range n.Parameters {
			add(p)
		}
		add(n.Body)
	case *BlockStatement:
		for _, s := range n.Statements {
			add(s)
		}
	case *LetStatement:
		add(n.Name, n.Value)
	case *ReturnStatement:
		add(n.Value)
	case *DeferStatement:
		add(n.Expression)
	case *ExpressionStatement:
		add(n.Expression)
	case *IfStatement:
		add(n.Condition, n.Consequence)
		for _, e := range n.ElseIfs {
			add(e)
		}
		add(n.Alternative)
	case *ElseIfClause:
		add(n.Condition, n.Body)
	case *WhileStatement:
		add(n.Condition, n.Body)
	case *ForStatement:
		add(n.Init, n.Condition, n.Increment, n.Body)
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *AssignmentExpression:
		add(n.Target, n.Value)
	case *UnaryExpression:
		add(n.Operand)
	case *ArrayIndexExpression:
		add(n.Array, n.Index, n.SecondIndex)
	case *MemberAccessExpression:
		add(n.Object, n.Property)
	case *CallExpression:
		add(n.Namespace, n.Function)
		for _, a := range n.Arguments {
			add(a)
		}
	case *EnumValueExpression:
		add(n.Enum, n.Item)
	case *ArrayInitExpression:
		for _, e := range n.Elements {
			add(e)
		}
	case *FieldInit:
		add(n.Name, n.Value)
	case *ObjectInitExpression:
		add(n.Object)
		for _, f := range n.Fields {
			add(f)
		}
	case *CastExpression:
		add(n.Expression)
	}
	return out
}

// isNilNode catches typed nil pointers stored in interface fields.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *Parameter:
		return v == nil
	case *BlockStatement:
		return v == nil
	}
	return false
}

// Inspect traverses the tree depth first, calling fn for each node. When fn
// returns false the children of that node are skipped.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, fn)
	}
}
