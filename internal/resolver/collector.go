package resolver

import (
	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/errors"
)

// Collect builds the declaration-level scope tree of program. Functions,
// structs and enums are registered in source order; impl blocks are attached
// in a second sweep so they may appear before their struct. Bodies are left
// for the analyzer.
func Collect(program *ast.Program) (*SymbolTable, error) {
	st := NewSymbolTable()

	for _, decl := range program.Declarations {
		var err error
		switch d := decl.(type) {
		case *ast.FunctionDeclaration:
			err = st.collectFunction(d)
		case *ast.StructDeclaration:
			err = st.collectStruct(d)
		case *ast.EnumDeclaration:
			err = st.collectEnum(d)
		}
		if err != nil {
			return nil, err
		}
	}

	for _, decl := range program.Declarations {
		if impl, ok := decl.(*ast.ImplDeclaration); ok {
			if err := st.collectImpl(impl); err != nil {
				return nil, err
			}
		}
	}

	return st, nil
}

func (st *SymbolTable) collectFunction(fn *ast.FunctionDeclaration) error {
	id, err := st.DeclareFunction(st.Root(), fn.Name.Value, AccessOf(fn.Access),
		functionSymbol(fn.ReturnType, fn.Parameters), fn.Name.Span)
	if err != nil {
		return err
	}
	return st.collectParameters(id, fn.Parameters)
}

func (st *SymbolTable) collectParameters(fn ScopeID, params []*ast.Parameter) error {
	for _, param := range params {
		if _, err := st.DeclareParameter(fn, param.Name.Value, param.Type, param.Span); err != nil {
			return err
		}
	}
	return nil
}

func (st *SymbolTable) collectStruct(s *ast.StructDeclaration) error {
	id, err := st.DeclareStruct(s.Name.Value, AccessOf(s.Access), s.Name.Span)
	if err != nil {
		return err
	}
	for _, field := range s.Fields {
		if _, err := st.DeclareField(id, field.Name.Value, AccessOf(field.Access), field.Type, field.Span); err != nil {
			return err
		}
	}
	return nil
}

func (st *SymbolTable) collectEnum(e *ast.EnumDeclaration) error {
	id, err := st.DeclareEnum(e.Name.Value, AccessOf(e.Access), e.Name.Span)
	if err != nil {
		return err
	}
	for _, item := range e.Items {
		if _, err := st.DeclareEnumItem(id, item.Value, item.Span); err != nil {
			return err
		}
	}
	return nil
}

func (st *SymbolTable) collectImpl(impl *ast.ImplDeclaration) error {
	structID, ok := st.ImplTarget(impl)
	if !ok {
		return errors.Semantic(impl.TargetSpan, "Struct not found")
	}

	for _, m := range impl.Methods {
		id, err := st.DeclareFunction(structID, m.Name.Value, AccessOf(m.Access),
			functionSymbol(m.ReturnType, m.Parameters), m.Name.Span)
		if err != nil {
			return err
		}
		if m.Receiver != nil {
			if _, err := st.DeclareParameter(id, m.Receiver.Name.Value, m.Receiver.Type, m.Receiver.Span); err != nil {
				return err
			}
		}
		if err := st.collectParameters(id, m.Parameters); err != nil {
			return err
		}
	}
	return nil
}

// ImplTarget resolves the struct an impl block is attached to.
func (st *SymbolTable) ImplTarget(impl *ast.ImplDeclaration) (ScopeID, bool) {
	if impl.Target.Kind != ast.TypeUserDefine {
		return NoScope, false
	}
	return st.FindStruct(st.Root(), impl.Target.Name)
}

func functionSymbol(ret ast.TypeSpecifier, params []*ast.Parameter) FunctionSymbol {
	fn := FunctionSymbol{ReturnType: ret}
	for _, p := range params {
		fn.Params = append(fn.Params, p.Type)
	}
	return fn
}
