package typechecker

import (
	"strings"
	"testing"

	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/errors"
	"github.com/tinylang/tlc/internal/lexer"
	"github.com/tinylang/tlc/internal/parser"
	"github.com/tinylang/tlc/internal/resolver"
)

func analyze(t *testing.T, input string) (*ast.Program, *resolver.SymbolTable, *Checker, error) {
	t.Helper()
	program, err := parser.New(lexer.New(input)).Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	table, err := resolver.Collect(program)
	if err != nil {
		return program, nil, nil, err
	}
	checker := New(table)
	return program, table, checker, checker.Check(program)
}

func TestCheckValidProgram(t *testing.T) {
	input := `
fn main() -> int {
	let p = Point::make(3);
	let q: Point* = &p;
	let c = Color::Red;
	let a: int[3] = [1, 2, 3];
	let s = "abc";
	let n = q->x + a[0] + p.getY();
	for (let i = 0; i < 3; i++) { n = n + i; }
	{ let inner = n * 2; }
	let d = n as double;
	defer helper(n);
	return n;
}

fn helper(v: int) {}

struct Point { pub x: int, y: int }

impl Point {
	pub fn (self: Point) getY() -> int {
		if (true) {
			while (false) { return self.y; }
		}
		return self.y;
	}
	fn hidden() -> int { return 1; }
	pub fn make(x: int) -> Point { return Point { x, y: 0 }; }
}

enum Color { Red, Green }
`
	_, table, _, err := analyze(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mainID, _ := table.FindFunction(table.Root(), "main")
	for _, name := range []string{"p", "q", "c", "a", "s", "n", "d"} {
		if _, ok := table.FindVariable(mainID, name); !ok {
			t.Fatalf("variable %s not registered in main", name)
		}
	}
	qID, _ := table.FindVariable(mainID, "q")
	q, _ := table.Get(qID).Variable()
	if !q.Type.Equal(ast.PointerTo(ast.UserType("Point"))) {
		t.Fatalf("q type wrong: %s", q.Type)
	}
	dID, _ := table.FindVariable(mainID, "d")
	d, _ := table.Get(dID).Variable()
	if !d.Type.Equal(ast.Double) {
		t.Fatalf("d type wrong: %s", d.Type)
	}
	if _, ok := table.FindBlock(mainID, "for_1"); !ok {
		t.Fatalf("for block missing:\n%s", table)
	}
	if _, ok := table.FindBlock(mainID, "block_2"); !ok {
		t.Fatalf("bare block missing:\n%s", table)
	}
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"fn f() -> bool { return 1; }", "Return value and return type of function does not match"},
		{"fn f() -> int { return; }", "Return value and return type of function does not match"},
		{"fn f() -> int { }", "Statement expected"},
		{"fn f() -> int { let x = 1; }", "Return Statement Expected"},
		{"fn f() { let x: int = true; }", "Miss matched types"},
		{"fn f() { let x = y; }", "Cannot find the variable"},
		{"fn f() { { let x = 1; } let y = x; }", "Cannot find the variable"},
		{"fn f() { for (let i = 0; i < 3; i++) {} let y = i; }", "Cannot find the variable"},
		{"fn f() { let x = 1 + true; }", "Left and Right hand-side must be the same type"},
		{"struct S {} fn f(a: S, b: S) { let x = a + b; }", "Cannot apply binary operation to complex type"},
		{"fn f() { let x = -true; }", "Value is not supported for the operator"},
		{"fn f() { let x = -[1]; }", "Unexpected expression"},
		{"fn f(b: bool) { b++; }", "Value is not supported for the operator"},
		{"fn f() { let x = !1; }", "Type not supported for the operation"},
		{"fn f() { let x = ~1.5; }", "Type not supported for the operation"},
		{"fn f() { let x = &1; }", "Unexpected expression"},
		{"fn f(a: int) { let x = *a; }", "Expected pointer type"},
		{"fn f() { 1 = 2; }", "Left hand side expression is not valid"},
		{"fn f(a: int[2], b: int[2]) { a = b; }", "Cannot assign to array"},
		{"fn f(a: int) { a = true; }", "Left and Right types are not matched"},
		{"struct S {} fn f(s: S) { let x = s as int; }", "Cannot cast the complex type"},
		{`fn f(a: int[2]) { let x = a["x"]; }`, "Array index type must be usize"},
		{"fn f(a: int[2]) { let x = a[-1]; }", "Index cannot be negative"},
		{"fn f(a: int[2]) { let x = a[[1]]; }", "Index cannot be an object or array init expression"},
		{"fn f() { let x = 1[0]; }", "Array type must be Identifier, Member Access or Function Call expression"},
		{"fn f(a: int) { let x = a[0]; }", "Expect the array type"},
		{"fn f() { let x = []; }", "Cannot infer type of empty array"},
		{"fn f() { let x = [1, true]; }", "Array item types must be same!"},
		{"fn f() { g(); }", "Cannot find the function"},
		{"fn g(a: int) {} fn f() { g(1, 2); }", "Too many parameter"},
		{"fn g(a: int) {} fn f() { g(); }", "Missing parameter"},
		{"fn g(a: int) {} fn f() { g(true); }", "Parameter expression type does not match"},
		{"fn f() { Nope::g(); }", "Cannot find the struct"},
		{"fn f() { let x = E::B; }", "Cannot find the enum"},
		{"enum E { A } fn f() { let x = E::B; }", "Cannot find the enum item"},
		{"struct S {} fn f() { let s = S { a: 1 }; }", "Too many fields"},
		{"struct S { a: int } fn f() { let s = S {}; }", "Missing fields"},
		{"struct S { a: int } fn f() { let s = S { b: 1 }; }", "Cannot find the struct field named b"},
		{"struct S { a: int } fn f() { let s = S { a: true }; }", "Struct type and expression types do not matches"},
		{"struct S { a: int, b: int } fn f() { let s = S { a: 1, a: 2 }; }", "Duplicate field named a"},
		{"fn f() { let s = T { a: 1 }; }", "Cannot find the struct"},
		{"fn f() { if (1) {} }", "Condition type must be boolean"},
		{"fn f() { if (true) {} else if (2) {} }", "Condition type must be boolean"},
		{"fn f() { while (1) {} }", "Condition type must be boolean"},
		{"fn f() { for (let i = 0; i; i++) {} }", "Condition type must be boolean"},
		{"fn f() { let v = (1 + 2).x; }", "Invalid object expression"},
		{"fn f(s: int) { let v = s.x; }", "Member access only can use with user define type"},
		{"struct S { pub x: int } fn f(s: S) { let v = s->x; }", "Use dot('.') operator to access member"},
		{"struct S { pub x: int } fn f(s: S*) { let v = s.x; }", "Use arrow('->') operator to access member with pointer type"},
		{"struct S { pub x: int } fn f(s: S) { let v = s.y; }", "Cannot find the struct field"},
		{"struct S { pub x: int } fn f(s: S) { let v = s.m(); }", "Cannot find the function"},
		{"struct S { x: int } fn f(s: S) { let v = s.x; }", "Property is private"},
		{"struct S {} impl S { fn m() -> int { return 1; } } fn f() { let v = S::m(); }", "Property is private"},
		{"struct S {} impl S { fn (self: S) m() {} } fn f(s: S) { s.m(); }", "Property is private"},
		{"struct S {} impl S { fn m() -> bool { return 1; } }", "Return value and return type of function does not match"},
	}

	for i, tt := range tests {
		_, _, _, err := analyze(t, tt.input)
		ce, ok := errors.AsCompilerError(err)
		if !ok {
			t.Fatalf("tests[%d] - expected CompilerError for %q, got %v", i, tt.input, err)
		}
		if ce.Kind != errors.KindSemantic || ce.Message != tt.message {
			t.Fatalf("tests[%d] - expected=%q, got=%q (%s)", i, tt.message, ce.Message, ce.Kind)
		}
		if !ce.Span.Start.IsValid() {
			t.Fatalf("tests[%d] - error for %q has no position", i, tt.input)
		}
	}
}

func TestObjectInit(t *testing.T) {
	if _, _, _, err := analyze(t, "struct S {} fn f() { let s = S {}; }"); err != nil {
		t.Fatalf("empty struct init rejected: %v", err)
	}
	_, _, _, err := analyze(t, "struct S {} fn f() { let s = S { a: 1 }; }")
	if ce, ok := errors.AsCompilerError(err); !ok || ce.Message != "Too many fields" {
		t.Fatalf("expected Too many fields, got %v", err)
	}
}

func TestVisibility(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"struct S { x: int } impl S { fn (self: S) get() -> int { return self.x; } }", true},
		{"struct S { x: int } impl S { fn (self: S) get() -> int { if (true) { while (true) { return self.x; } } return 0; } }", true},
		{"struct S { x: int } impl S { fn (self: S) a() {} fn (self: S) b() { { self.a(); } } }", true},
		{"struct S {} impl S { fn m() {} fn n() { S::m(); } }", true},
		{"struct S { pub x: int } fn f(s: S) -> int { return s.x; }", true},
		{"struct S { x: int } fn f(s: S) -> int { return s.x; }", false},
		{"struct S { x: int } fn f(s: S) -> int { if (true) { return s.x; } return 0; }", false},
		{"struct S { x: int } struct T {} impl T { fn (self: T) peek(s: S) -> int { return s.x; } }", false},
	}

	for i, tt := range tests {
		_, _, _, err := analyze(t, tt.input)
		if tt.ok && err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if !tt.ok {
			ce, ok := errors.AsCompilerError(err)
			if !ok || ce.Message != "Property is private" {
				t.Fatalf("tests[%d] - expected Property is private, got %v", i, err)
			}
		}
	}
}

func TestMethodArgumentsUseCallerScope(t *testing.T) {
	input := `
struct S {}
impl S { pub fn (self: S) twice(v: int) -> int { return v + v; } }
fn f(s: S, k: int) -> int { return s.twice(k); }
`
	if _, _, _, err := analyze(t, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNestedMemberAccess(t *testing.T) {
	input := `
struct Inner { pub v: int }
struct Outer { pub in: Inner, pub ptr: Inner* }
fn f(o: Outer) -> int { return o.in.v + o.ptr->v; }
`
	if _, _, _, err := analyze(t, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, _, err := analyze(t, "struct Inner { pub v: int } struct Outer { pub in: Inner } fn f(o: Outer) -> int { return o.in->v; }")
	if ce, ok := errors.AsCompilerError(err); !ok || ce.Message != "Use dot('.') operator to access member" {
		t.Fatalf("expected dot operator error, got %v", err)
	}
}

func returnValue(t *testing.T, program *ast.Program, fn int) ast.Expression {
	t.Helper()
	decl := program.Declarations[fn].(*ast.FunctionDeclaration)
	last, ok := decl.Body.LastStatement()
	if !ok {
		t.Fatalf("function %s has no statements", decl.Name.Value)
	}
	return last.(*ast.ReturnStatement).Value
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.TypeSpecifier
	}{
		{"fn f(a: int[3]) -> int { return a[0]; }", ast.Int},
		{"fn f(a: usize) -> bool { return a > a; }", ast.Bool},
		{"fn f(a: str[2]) -> char { return a[1]; }", ast.Char},
		{"fn f(p: int*) -> int { return p[0]; }", ast.Int},
		{"fn f() -> int { let m = [[1, 2], [3, 4]]; return m[0, 1]; }", ast.Int},
		{"fn f() -> int[2] { let m = [[1, 2], [3, 4]]; return m[0]; }", ast.ArrayOf(ast.Int, 2)},
		{"fn f(x: int) -> int* { return &x; }", ast.PointerTo(ast.Int)},
		{"fn f(x: int*) -> int { return *x; }", ast.Int},
		{"fn f(x: int) -> double { return x as double; }", ast.Double},
		{"fn f() -> double { return 1.5 * 2.0; }", ast.Double},
		{"enum E { A } fn f() -> E { return E::A; }", ast.UserType("E")},
	}

	for i, tt := range tests {
		program, _, checker, err := analyze(t, tt.input)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		expr := returnValue(t, program, len(program.Declarations)-1)
		got, ok := checker.TypeOf(expr)
		if !ok {
			t.Fatalf("tests[%d] - no type recorded for %s", i, expr)
		}
		if !got.Equal(tt.expected) {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s", i, tt.expected, got)
		}
	}
}

func TestLetInferenceMatchesDeclaredType(t *testing.T) {
	_, inferred, _, err := analyze(t, "fn f() { let x = 1; let s = \"a\"; }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, declared, _, err := analyze(t, "fn f() { let x: int = 1; let s: str = \"a\"; }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inferred.String() != declared.String() {
		t.Fatalf("inferred and declared tables differ:\n%s\n---\n%s", inferred, declared)
	}
}

func TestLetShadowing(t *testing.T) {
	_, table, _, err := analyze(t, "fn f() -> str { let x = 1; let x = \"s\"; return x; }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fnID, _ := table.FindFunction(table.Root(), "f")
	id, _ := table.FindVariable(fnID, "x")
	v, _ := table.Get(id).Variable()
	if !v.Type.Equal(ast.Str) {
		t.Fatalf("latest binding should win, got %s", v.Type)
	}
}

func TestBlockNamesDoNotHideVariables(t *testing.T) {
	tests := []struct {
		input    string
		block    string
		variable string
	}{
		{"fn f() { let for_1: int = 1; for (let i = 0; i < 3; i++) {} let y: int = for_1; }", "for_1", "for_1"},
		{"fn f() { let if_1: int = 1; if (true) {} let y: int = if_1; }", "if_1", "if_1"},
		{"fn f() { { let z = 1; } let block_1 = 2; let y: int = block_1; }", "block_1", "block_1"},
		{"fn f() { while (false) { let w = 1; } let while_1: str = \"s\"; let y: str = while_1; }", "while_1", "while_1"},
	}

	for i, tt := range tests {
		_, table, _, err := analyze(t, tt.input)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		fnID, _ := table.FindFunction(table.Root(), "f")
		blockID, ok := table.FindBlock(fnID, tt.block)
		if !ok {
			t.Fatalf("tests[%d] - block %s missing:\n%s", i, tt.block, table)
		}
		if _, ok := table.FindVariable(fnID, tt.variable); !ok {
			t.Fatalf("tests[%d] - variable %s missing:\n%s", i, tt.variable, table)
		}
		if _, ok := table.Child(fnID, tt.block); !ok {
			t.Fatalf("tests[%d] - variable %s should stay bound by name", i, tt.variable)
		}

		dump := table.String()
		if !strings.Contains(dump, "Name:"+tt.block+" Access:Local NodeType:Block Parent:f") {
			t.Fatalf("tests[%d] - block %s dropped from dump:\n%s", i, tt.block, dump)
		}
		if !strings.Contains(dump, "Name:"+tt.variable+" Access:Local NodeType:Variable(") {
			t.Fatalf("tests[%d] - variable %s dropped from dump:\n%s", i, tt.variable, dump)
		}
		if table.Get(blockID).Kind != resolver.KindBlock {
			t.Fatalf("tests[%d] - FindBlock returned a %s", i, table.Get(blockID).Kind)
		}
	}
}

func TestCheckIsDeterministic(t *testing.T) {
	input := `
struct P { pub x: int }
fn f(p: P) -> int {
	if (p.x > 0) { let a = 1; } else if (p.x < 0) { let b = 2; } else { let c = 3; }
	while (false) {}
	return p.x;
}
`
	_, first, _, err := analyze(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, second, _, err := analyze(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("scope dumps differ:\n%s\n---\n%s", first, second)
	}

	fnID, _ := first.FindFunction(first.Root(), "f")
	for _, name := range []string{"if_1", "else_if_2", "else_3", "while_4"} {
		if _, ok := first.FindBlock(fnID, name); !ok {
			t.Fatalf("block %s missing:\n%s", name, first)
		}
	}
}
