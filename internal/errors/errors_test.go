package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tinylang/tlc/internal/position"
)

func TestCompilerErrorMessage(t *testing.T) {
	src := position.NewSourceFile("main.tl", "let x = 12.3.4;")
	span := position.Span{
		Start: position.Position{Filename: "main.tl", Line: 1, Column: 9, Offset: 8},
		End:   position.Position{Filename: "main.tl", Line: 1, Column: 15, Offset: 14},
	}

	err := Lexical(src, span, "'.' occurs more than once!")
	expected := "main.tl:1:9: lexical error: '.' occurs more than once!"
	if err.Error() != expected {
		t.Fatalf("message wrong. expected=%q, got=%q", expected, err.Error())
	}
	if !strings.Contains(err.Snippet(), "^^^^^^") {
		t.Fatalf("snippet should underline the literal. got=%q", err.Snippet())
	}
}

func TestSemanticWithoutSpan(t *testing.T) {
	err := Semantic(position.Span{}, "Struct not found")
	if err.Error() != "semantic error: Struct not found" {
		t.Fatalf("message wrong. got=%q", err.Error())
	}
	if err.Snippet() != "" {
		t.Fatalf("snippet should be empty without source. got=%q", err.Snippet())
	}
}

func TestAsCompilerErrorThroughWrap(t *testing.T) {
	base := Syntactic(nil, position.Span{}, "Expect %s found %s", "Identifier", "Number")
	wrapped := fmt.Errorf("analyzing main.tl: %w", base)

	ce, ok := AsCompilerError(wrapped)
	if !ok {
		t.Fatalf("expected CompilerError through wrap")
	}
	if ce.Message != "Expect Identifier found Number" {
		t.Fatalf("formatted message wrong. got=%q", ce.Message)
	}
	if !IsKind(wrapped, KindSyntactic) || IsKind(wrapped, KindSemantic) {
		t.Fatalf("IsKind mismatch for %v", wrapped)
	}
	if _, ok := AsCompilerError(fmt.Errorf("plain")); ok {
		t.Fatalf("plain error should not convert")
	}
}
