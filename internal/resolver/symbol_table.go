// Package resolver provides the scope tree shared by the collection pass and
// the semantic analyzer.
//
// Scopes live in an arena owned by the SymbolTable and are addressed by
// ScopeID. Each node records its parent and its children in insertion order;
// named children are also indexed by name, so a later insertion under the same
// name replaces the earlier binding. Blocks are never indexed: their generated
// names are legal identifiers and must not collide with user bindings.
package resolver

import (
	"fmt"

	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/errors"
	"github.com/tinylang/tlc/internal/position"
)

// ScopeID represents a unique scope identifier.
type ScopeID int

// NoScope is the parent of the root.
const NoScope ScopeID = -1

// NodeKind represents the kind of a scope node.
type NodeKind int

const (
	KindGlobal NodeKind = iota
	KindStruct
	KindStructField
	KindEnum
	KindEnumItem
	KindBlock
	KindFunction
	KindVariable
)

// String returns the string representation of NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindGlobal:
		return "Global"
	case KindStruct:
		return "Struct"
	case KindStructField:
		return "StructField"
	case KindEnum:
		return "Enum"
	case KindEnumItem:
		return "EnumItem"
	case KindBlock:
		return "Block"
	case KindFunction:
		return "Function"
	case KindVariable:
		return "Variable"
	default:
		return "Unknown"
	}
}

// Access represents symbol visibility. Parameters, receivers and let
// bindings are Local.
type Access int

const (
	AccessPrivate Access = iota
	AccessPublic
	AccessLocal
)

// String returns the string representation of Access.
func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "Public"
	case AccessLocal:
		return "Local"
	default:
		return "Private"
	}
}

// AccessOf converts a declaration access specifier.
func AccessOf(a ast.Access) Access {
	if a == ast.AccessPublic {
		return AccessPublic
	}
	return AccessPrivate
}

// FunctionSymbol is the payload of a Function node. Params excludes the
// method receiver.
type FunctionSymbol struct {
	ReturnType ast.TypeSpecifier
	Params     []ast.TypeSpecifier
}

// VariableSymbol is the payload of a Variable node.
type VariableSymbol struct {
	Type ast.TypeSpecifier
}

// FieldSymbol is the payload of a StructField node.
type FieldSymbol struct {
	Type ast.TypeSpecifier
}

// Symbol is one node of the scope tree.
type Symbol struct {
	ID     ScopeID
	Name   string
	Access Access
	Kind   NodeKind
	Span   position.Span
	Parent ScopeID

	children []ScopeID
	index    map[string]ScopeID

	function *FunctionSymbol
	variable *VariableSymbol
	field    *FieldSymbol
}

// Function returns the function payload when the node is a Function.
func (s *Symbol) Function() (FunctionSymbol, bool) {
	if s.Kind != KindFunction || s.function == nil {
		return FunctionSymbol{}, false
	}
	return *s.function, true
}

// Variable returns the variable payload when the node is a Variable.
func (s *Symbol) Variable() (VariableSymbol, bool) {
	if s.Kind != KindVariable || s.variable == nil {
		return VariableSymbol{}, false
	}
	return *s.variable, true
}

// Field returns the field payload when the node is a StructField.
func (s *Symbol) Field() (FieldSymbol, bool) {
	if s.Kind != KindStructField || s.field == nil {
		return FieldSymbol{}, false
	}
	return *s.field, true
}

// Children returns the child IDs in insertion order.
func (s *Symbol) Children() []ScopeID {
	out := make([]ScopeID, len(s.children))
	copy(out, s.children)
	return out
}

// SymbolTable manages the scope tree of one program.
type SymbolTable struct {
	nodes  []*Symbol
	blocks int
}

// NewSymbolTable creates a table holding only the Global root.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{}
	st.nodes = append(st.nodes, &Symbol{
		ID:     0,
		Name:   "global",
		Access: AccessPublic,
		Kind:   KindGlobal,
		Parent: NoScope,
		index:  make(map[string]ScopeID),
	})
	return st
}

// Root returns the Global scope.
func (st *SymbolTable) Root() ScopeID { return 0 }

// Len returns the number of nodes in the arena, including replaced ones.
func (st *SymbolTable) Len() int { return len(st.nodes) }

// Get returns the node for id, or nil when id is not valid.
func (st *SymbolTable) Get(id ScopeID) *Symbol {
	if id < 0 || int(id) >= len(st.nodes) {
		return nil
	}
	return st.nodes[id]
}

// Parent returns the parent of id; the root has none.
func (st *SymbolTable) Parent(id ScopeID) (ScopeID, bool) {
	node := st.Get(id)
	if node == nil || node.Parent == NoScope {
		return NoScope, false
	}
	return node.Parent, true
}

// Child returns the named child of parent. Blocks are not bound by name.
func (st *SymbolTable) Child(parent ScopeID, name string) (ScopeID, bool) {
	node := st.Get(parent)
	if node == nil {
		return NoScope, false
	}
	id, ok := node.index[name]
	return id, ok
}

func (st *SymbolTable) find(parent ScopeID, name string, kind NodeKind) (ScopeID, bool) {
	id, ok := st.Child(parent, name)
	if !ok || st.nodes[id].Kind != kind {
		return NoScope, false
	}
	return id, true
}

// FindFunction looks up a function among the direct children of scope.
func (st *SymbolTable) FindFunction(scope ScopeID, name string) (ScopeID, bool) {
	return st.find(scope, name, KindFunction)
}

// FindStruct looks up a struct among the direct children of scope.
func (st *SymbolTable) FindStruct(scope ScopeID, name string) (ScopeID, bool) {
	return st.find(scope, name, KindStruct)
}

// FindEnum looks up an enum among the direct children of scope.
func (st *SymbolTable) FindEnum(scope ScopeID, name string) (ScopeID, bool) {
	return st.find(scope, name, KindEnum)
}

// FindVariable looks up a variable among the direct children of scope.
func (st *SymbolTable) FindVariable(scope ScopeID, name string) (ScopeID, bool) {
	return st.find(scope, name, KindVariable)
}

// FindStructField looks up a field among the direct children of scope.
func (st *SymbolTable) FindStructField(scope ScopeID, name string) (ScopeID, bool) {
	return st.find(scope, name, KindStructField)
}

// FindBlock looks up a block among the direct children of scope.
func (st *SymbolTable) FindBlock(scope ScopeID, name string) (ScopeID, bool) {
	node := st.Get(scope)
	if node == nil {
		return NoScope, false
	}
	for _, id := range node.children {
		if child := st.nodes[id]; child.Kind == KindBlock && child.Name == name {
			return id, true
		}
	}
	return NoScope, false
}

// FindEnumItem looks up an enum item among the direct children of scope.
func (st *SymbolTable) FindEnumItem(scope ScopeID, name string) (ScopeID, bool) {
	return st.find(scope, name, KindEnumItem)
}

// CountKind counts the direct children of scope with the given kind.
func (st *SymbolTable) CountKind(scope ScopeID, kind NodeKind) int {
	node := st.Get(scope)
	if node == nil {
		return 0
	}
	n := 0
	for _, id := range node.children {
		if st.nodes[id].Kind == kind {
			n++
		}
	}
	return n
}

// LookupVariable searches scope and then each ancestor for a variable.
func (st *SymbolTable) LookupVariable(scope ScopeID, name string) (ScopeID, bool) {
	if st.Get(scope) == nil {
		return NoScope, false
	}
	for id := scope; id != NoScope; id = st.nodes[id].Parent {
		if found, ok := st.FindVariable(id, name); ok {
			return found, true
		}
	}
	return NoScope, false
}

// EnclosingFunction returns the nearest Function node at or above scope.
func (st *SymbolTable) EnclosingFunction(scope ScopeID) (ScopeID, bool) {
	if st.Get(scope) == nil {
		return NoScope, false
	}
	for id := scope; id != NoScope; id = st.nodes[id].Parent {
		if st.nodes[id].Kind == KindFunction {
			return id, true
		}
	}
	return NoScope, false
}

// add stores sym in the arena with parent as its parent. The caller links it
// into the parent's children.
func (st *SymbolTable) add(parent ScopeID, sym *Symbol) ScopeID {
	sym.ID = ScopeID(len(st.nodes))
	sym.Parent = parent
	sym.index = make(map[string]ScopeID)
	st.nodes = append(st.nodes, sym)
	return sym.ID
}

// insert appends a node under parent and binds it by name, replacing any
// previous binding of that name in place.
func (st *SymbolTable) insert(parent ScopeID, sym *Symbol) ScopeID {
	p := st.nodes[parent]
	st.add(parent, sym)

	if old, ok := p.index[sym.Name]; ok {
		for i, id := range p.children {
			if id == old {
				p.children[i] = sym.ID
				break
			}
		}
	} else {
		p.children = append(p.children, sym.ID)
	}
	p.index[sym.Name] = sym.ID
	return sym.ID
}

// Declare inserts a declaration-level node and rejects a sibling of the same
// name.
func (st *SymbolTable) Declare(parent ScopeID, sym *Symbol) (ScopeID, error) {
	if st.Get(parent) == nil {
		return NoScope, fmt.Errorf("invalid parent scope %d", parent)
	}
	if _, exists := st.Child(parent, sym.Name); exists {
		return NoScope, errors.Semantic(sym.Span, "Redeclaration of %s", sym.Name)
	}
	return st.insert(parent, sym), nil
}

// DeclareStruct adds a struct under the root.
func (st *SymbolTable) DeclareStruct(name string, access Access, span position.Span) (ScopeID, error) {
	return st.Declare(st.Root(), &Symbol{Name: name, Access: access, Kind: KindStruct, Span: span})
}

// DeclareEnum adds an enum under the root.
func (st *SymbolTable) DeclareEnum(name string, access Access, span position.Span) (ScopeID, error) {
	return st.Declare(st.Root(), &Symbol{Name: name, Access: access, Kind: KindEnum, Span: span})
}

// DeclareEnumItem adds an item to an enum. Items are always public.
func (st *SymbolTable) DeclareEnumItem(enum ScopeID, name string, span position.Span) (ScopeID, error) {
	return st.Declare(enum, &Symbol{Name: name, Access: AccessPublic, Kind: KindEnumItem, Span: span})
}

// DeclareField adds a field to a struct.
func (st *SymbolTable) DeclareField(structID ScopeID, name string, access Access, typ ast.TypeSpecifier, span position.Span) (ScopeID, error) {
	return st.Declare(structID, &Symbol{
		Name:   name,
		Access: access,
		Kind:   KindStructField,
		Span:   span,
		field:  &FieldSymbol{Type: typ},
	})
}

// DeclareFunction adds a free function under the root or a method under a
// struct.
func (st *SymbolTable) DeclareFunction(parent ScopeID, name string, access Access, fn FunctionSymbol, span position.Span) (ScopeID, error) {
	return st.Declare(parent, &Symbol{
		Name:     name,
		Access:   access,
		Kind:     KindFunction,
		Span:     span,
		function: &fn,
	})
}

// DeclareParameter adds a Local variable for a parameter or receiver.
func (st *SymbolTable) DeclareParameter(fn ScopeID, name string, typ ast.TypeSpecifier, span position.Span) (ScopeID, error) {
	return st.Declare(fn, &Symbol{
		Name:     name,
		Access:   AccessLocal,
		Kind:     KindVariable,
		Span:     span,
		variable: &VariableSymbol{Type: typ},
	})
}

// InsertVariable binds a let variable. A later binding of the same name in
// the same scope shadows the earlier one.
func (st *SymbolTable) InsertVariable(parent ScopeID, name string, typ ast.TypeSpecifier, span position.Span) ScopeID {
	return st.insert(parent, &Symbol{
		Name:     name,
		Access:   AccessLocal,
		Kind:     KindVariable,
		Span:     span,
		variable: &VariableSymbol{Type: typ},
	})
}

// Block name prefixes.
const (
	BlockIf     = "if"
	BlockElseIf = "else_if"
	BlockElse   = "else"
	BlockWhile  = "while"
	BlockFor    = "for"
	BlockBare   = "block"
)

// InsertBlock creates a Block scope named prefix_N, N counting every block
// of the table. The block is appended to parent's children but never bound
// by name, so a variable called for_1 and the block for_1 coexist.
func (st *SymbolTable) InsertBlock(parent ScopeID, prefix string, span position.Span) ScopeID {
	st.blocks++
	id := st.add(parent, &Symbol{
		Name:   fmt.Sprintf("%s_%d", prefix, st.blocks),
		Access: AccessLocal,
		Kind:   KindBlock,
		Span:   span,
	})
	p := st.nodes[parent]
	p.children = append(p.children, id)
	return id
}
