package ast

import "fmt"

// TypeKind identifies the variant of a TypeSpecifier.
type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeUsize
	TypeFloat
	TypeDouble
	TypeChar
	TypeStr
	TypeBool
	TypeVoid
	TypeUserDefine
	TypePointer
	TypeArray
)

var typeKindNames = map[TypeKind]string{
	TypeInt:        "int",
	TypeUsize:      "usize",
	TypeFloat:      "float",
	TypeDouble:     "double",
	TypeChar:       "char",
	TypeStr:        "str",
	TypeBool:       "bool",
	TypeVoid:       "void",
	TypeUserDefine: "user-define",
	TypePointer:    "pointer",
	TypeArray:      "array",
}

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// TypeSpecifier is a declared or inferred type. Name is set for
// UserDefine, Elem for Pointer and Array, Size for Array.
type TypeSpecifier struct {
	Kind TypeKind
	Name string
	Elem *TypeSpecifier
	Size int
}

var (
	Int    = TypeSpecifier{Kind: TypeInt}
	Usize  = TypeSpecifier{Kind: TypeUsize}
	Float  = TypeSpecifier{Kind: TypeFloat}
	Double = TypeSpecifier{Kind: TypeDouble}
	Char   = TypeSpecifier{Kind: TypeChar}
	Str    = TypeSpecifier{Kind: TypeStr}
	Bool   = TypeSpecifier{Kind: TypeBool}
	Void   = TypeSpecifier{Kind: TypeVoid}
)

// UserType returns the type named by a struct or enum declaration.
func UserType(name string) TypeSpecifier {
	return TypeSpecifier{Kind: TypeUserDefine, Name: name}
}

// PointerTo returns a pointer to elem.
func PointerTo(elem TypeSpecifier) TypeSpecifier {
	return TypeSpecifier{Kind: TypePointer, Elem: &elem}
}

// ArrayOf returns a fixed size array of elem.
func ArrayOf(elem TypeSpecifier, size int) TypeSpecifier {
	return TypeSpecifier{Kind: TypeArray, Elem: &elem, Size: size}
}

// Equal reports structural equality.
func (t TypeSpecifier) Equal(other TypeSpecifier) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case TypeUserDefine:
		return t.Name == other.Name
	case TypePointer:
		return t.Elem.Equal(*other.Elem)
	case TypeArray:
		return t.Size == other.Size && t.Elem.Equal(*other.Elem)
	}
	return true
}

// IsPrimitive reports whether t is one of the scalar builtin types.
func (t TypeSpecifier) IsPrimitive() bool {
	switch t.Kind {
	case TypeInt, TypeUsize, TypeFloat, TypeDouble, TypeChar, TypeStr, TypeBool:
		return true
	}
	return false
}

// IsNumeric reports whether unary arithmetic applies to t.
func (t TypeSpecifier) IsNumeric() bool {
	switch t.Kind {
	case TypeInt, TypeUsize, TypeFloat, TypeDouble:
		return true
	}
	return false
}

// Inner returns the element type of a pointer or array.
func (t TypeSpecifier) Inner() (TypeSpecifier, bool) {
	if (t.Kind == TypePointer || t.Kind == TypeArray) && t.Elem != nil {
		return *t.Elem, true
	}
	return TypeSpecifier{}, false
}

// String renders the type the way it is written in source.
func (t TypeSpecifier) String() string {
	switch t.Kind {
	case TypeUserDefine:
		return t.Name
	case TypePointer:
		return t.Elem.String() + "*"
	case TypeArray:
		return fmt.Sprintf("%s[%d]", t.Elem.String(), t.Size)
	}
	return t.Kind.String()
}
