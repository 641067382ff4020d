package compiler

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tinylang/tlc/internal/errors"
	"github.com/tinylang/tlc/internal/lexer"
)

const validProgram = `struct P { pub x: int }
fn main() -> int {
	let p = P { x: 1 };
	return p.x;
}
`

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.tl")
	if err := os.WriteFile(path, []byte(validProgram), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	result, err := Analyze(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Program == nil || result.Table == nil || result.Source == nil {
		t.Fatalf("result incomplete: %+v", result)
	}
	if result.Source.Filename != path {
		t.Fatalf("source filename wrong: %s", result.Source.Filename)
	}
	mainID, ok := result.Table.FindFunction(result.Table.Root(), "main")
	if !ok {
		t.Fatalf("main not in table")
	}
	if _, ok := result.Table.FindVariable(mainID, "p"); !ok {
		t.Fatalf("let binding not recorded:\n%s", result.Table)
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := Analyze(filepath.Join(t.TempDir(), "nope.tl"))
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestAnalyzeSourceErrors(t *testing.T) {
	tests := []struct {
		input   string
		kind    errors.Kind
		message string
		line    int
	}{
		{"fn f() { let s = \"abc; }", errors.KindLexical, "\" not closed", 1},
		{"fn f() {\n  1 + ;\n}", errors.KindSyntactic, "Unknown Expression", 2},
		{"struct A {}\nstruct A {}", errors.KindSemantic, "Redeclaration of A", 2},
		{"fn f() {\n\n  let x = y;\n}", errors.KindSemantic, "Cannot find the variable", 3},
	}

	for i, tt := range tests {
		_, err := AnalyzeSource("input.tl", tt.input)
		ce, ok := errors.AsCompilerError(err)
		if !ok {
			t.Fatalf("tests[%d] - expected CompilerError, got %v", i, err)
		}
		if ce.Kind != tt.kind || ce.Message != tt.message {
			t.Fatalf("tests[%d] - expected %s %q, got %s %q", i, tt.kind, tt.message, ce.Kind, ce.Message)
		}
		if ce.Span.Start.Line != tt.line {
			t.Fatalf("tests[%d] - line wrong. expected=%d, got=%d", i, tt.line, ce.Span.Start.Line)
		}
		if ce.Source == nil {
			t.Fatalf("tests[%d] - source not attached", i)
		}
		if !strings.HasPrefix(ce.Error(), "input.tl:") {
			t.Fatalf("tests[%d] - error lacks file name: %s", i, ce.Error())
		}
	}
}

func TestStages(t *testing.T) {
	// Parse only: bodies are never checked.
	parsed, err := Parse("x.tl", "fn f() -> int { return y; }")
	if err != nil {
		t.Fatalf("parse stage should accept unresolved names: %v", err)
	}
	if parsed.Table != nil {
		t.Fatalf("parse stage must not build a table")
	}

	collected, err := Collect("x.tl", "fn f() -> int { return y; }")
	if err != nil {
		t.Fatalf("collect stage should not check bodies: %v", err)
	}
	if _, ok := collected.Table.FindFunction(collected.Table.Root(), "f"); !ok {
		t.Fatalf("collect stage lost function f")
	}

	if _, err := AnalyzeSource("x.tl", "fn f() -> int { return y; }"); err == nil {
		t.Fatalf("full analysis should reject unresolved names")
	}
}

func TestTokenize(t *testing.T) {
	tokens, err := Tokenize("t.tl", "let x = 1;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []lexer.TokenType{
		lexer.TokenLet, lexer.TokenIdentifier, lexer.TokenAssign,
		lexer.TokenNumber, lexer.TokenSemicolon, lexer.TokenEOF,
	}
	if len(tokens) != len(expected) {
		t.Fatalf("token count wrong: %v", tokens)
	}
	for i, tt := range expected {
		if tokens[i].Type != tt {
			t.Fatalf("tests[%d] - token type wrong. expected=%s, got=%s", i, tt, tokens[i].Type)
		}
	}

	_, err = Tokenize("t.tl", "let c = 'ab';")
	if !errors.IsKind(err, errors.KindLexical) {
		t.Fatalf("expected lexical error, got %v", err)
	}
}
