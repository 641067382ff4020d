package lexer

import (
	"testing"

	"github.com/tinylang/tlc/internal/errors"
)

func TestBasicTokens(t *testing.T) {
	input := `fn main() -> int {
	let x: usize = 10;
	return x;
}`

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{TokenFn, "fn"},
		{TokenIdentifier, "main"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenArrow, "->"},
		{TokenInt, "int"},
		{TokenLBrace, "{"},
		{TokenLet, "let"},
		{TokenIdentifier, "x"},
		{TokenColon, ":"},
		{TokenUsize, "usize"},
		{TokenAssign, "="},
		{TokenNumber, "10"},
		{TokenSemicolon, ";"},
		{TokenReturn, "return"},
		{TokenIdentifier, "x"},
		{TokenSemicolon, ";"},
		{TokenRBrace, "}"},
		{TokenEOF, "EOF"},
	}

	l := New(input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedValue {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `let fn break case char const continue default do double else enum float for if int bool return usize sizeof static struct switch void while str impl pub true false defer as`

	expected := []TokenType{
		TokenLet, TokenFn, TokenBreak, TokenCase, TokenCharKeyword, TokenConst, TokenContinue,
		TokenDefault, TokenDo, TokenDouble, TokenElse, TokenEnum, TokenFloat, TokenFor, TokenIf,
		TokenInt, TokenBool, TokenReturn, TokenUsize, TokenSizeof, TokenStatic, TokenStruct,
		TokenSwitch, TokenVoid, TokenWhile, TokenStr, TokenImpl, TokenPub, TokenTrue, TokenFalse,
		TokenDefer, TokenAs, TokenEOF,
	}

	tokens, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != len(expected) {
		t.Fatalf("token count wrong. expected=%d, got=%d", len(expected), len(tokens))
	}
	for i, tt := range expected {
		if tokens[i].Type != tt {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, tt, tokens[i].Type)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `== != <= >= && || -> ++ -- << >> + - * / % = ! < > & | ^ ~ ( ) { } [ ] , . ; : ::`

	expected := []TokenType{
		TokenEqual, TokenNotEqual, TokenLessEqual, TokenGreaterEqual, TokenAnd, TokenOr,
		TokenArrow, TokenIncrement, TokenDecrement, TokenShiftLeft, TokenShiftRight,
		TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent, TokenAssign, TokenBang,
		TokenLessThan, TokenGreaterThan, TokenAmpersand, TokenPipe, TokenCaret, TokenTilde,
		TokenLParen, TokenRParen, TokenLBrace, TokenRBrace, TokenLBracket, TokenRBracket,
		TokenComma, TokenDot, TokenSemicolon, TokenColon, TokenColon, TokenColon, TokenEOF,
	}

	tokens, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, tt := range expected {
		if i >= len(tokens) {
			t.Fatalf("tests[%d] - missing token %q", i, tt)
		}
		if tokens[i].Type != tt {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%q)",
				i, tt, tokens[i].Type, tokens[i].Literal)
		}
	}
}

func TestAdjacentOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
	}{
		{"a--b", []TokenType{TokenIdentifier, TokenDecrement, TokenIdentifier, TokenEOF}},
		{"p->x", []TokenType{TokenIdentifier, TokenArrow, TokenIdentifier, TokenEOF}},
		{"a<<=b", []TokenType{TokenIdentifier, TokenShiftLeft, TokenAssign, TokenIdentifier, TokenEOF}},
		{"x=-1", []TokenType{TokenIdentifier, TokenAssign, TokenMinus, TokenNumber, TokenEOF}},
	}

	for i, tt := range tests {
		tokens, err := New(tt.input).Tokenize()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if len(tokens) != len(tt.expected) {
			t.Fatalf("tests[%d] - token count wrong. expected=%d, got=%d", i, len(tt.expected), len(tokens))
		}
		for j, typ := range tt.expected {
			if tokens[j].Type != typ {
				t.Fatalf("tests[%d][%d] - tokentype wrong. expected=%q, got=%q", i, j, typ, tokens[j].Type)
			}
		}
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input         string
		expectedType  TokenType
		expectedValue string
	}{
		{`42`, TokenNumber, "42"},
		{`3.14`, TokenNumber, "3.14"},
		{`"hello"`, TokenString, "hello"},
		{`"tab\tquote\""`, TokenString, `tab\tquote\"`},
		{`""`, TokenString, ""},
		{`'a'`, TokenChar, "a"},
		{`'\n'`, TokenChar, `\n`},
		{`_under_score9`, TokenIdentifier, "_under_score9"},
	}

	for i, tt := range tests {
		tok, err := New(tt.input).NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedValue {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedValue, tok.Literal)
		}
	}
}

func TestPositions(t *testing.T) {
	input := "let a\n  = 12;"

	tests := []struct {
		line, column, offset int
		endColumn            int
	}{
		{1, 1, 0, 4},
		{1, 5, 4, 6},
		{2, 3, 8, 4},
		{2, 5, 10, 7},
		{2, 7, 12, 8},
	}

	l := NewWithFilename(input, "pos.tl")
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		start := tok.Span.Start
		if start.Line != tt.line || start.Column != tt.column || start.Offset != tt.offset {
			t.Fatalf("tests[%d] - start wrong. expected=%d:%d@%d, got=%d:%d@%d",
				i, tt.line, tt.column, tt.offset, start.Line, start.Column, start.Offset)
		}
		if tok.Span.End.Column != tt.endColumn {
			t.Fatalf("tests[%d] - end column wrong. expected=%d, got=%d", i, tt.endColumn, tok.Span.End.Column)
		}
		if start.Filename != "pos.tl" {
			t.Fatalf("tests[%d] - filename wrong. got=%q", i, start.Filename)
		}
	}
}

func TestComments(t *testing.T) {
	input := "// header\nlet x; // trailing\n// last"

	tokens, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []TokenType{TokenLet, TokenIdentifier, TokenSemicolon, TokenEOF}
	if len(tokens) != len(expected) {
		t.Fatalf("token count wrong. expected=%d, got=%d", len(expected), len(tokens))
	}
	if tokens[0].Span.Start.Line != 2 {
		t.Fatalf("comment should not hide line counting. got line %d", tokens[0].Span.Start.Line)
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
		column  int
	}{
		{`12.3.4`, "'.' occurs more than once!", 1},
		{`"abc`, "\" not closed", 1},
		{"\"ab\ncd\"", "String should not be contain new line", 1},
		{`"a\qb"`, "Unknown escape sequence", 3},
		{`'\q'`, "Unknown escape sequence", 2},
		{`'ab'`, "' not closed", 1},
		{`''`, "Empty char literal", 1},
		{`let @`, "Unknown token!", 5},
	}

	for i, tt := range tests {
		_, err := New(tt.input).Tokenize()
		if err == nil {
			t.Fatalf("tests[%d] - expected error for %q", i, tt.input)
		}
		ce, ok := errors.AsCompilerError(err)
		if !ok {
			t.Fatalf("tests[%d] - expected CompilerError, got %T", i, err)
		}
		if ce.Kind != errors.KindLexical {
			t.Fatalf("tests[%d] - kind wrong. got=%s", i, ce.Kind)
		}
		if ce.Message != tt.message {
			t.Fatalf("tests[%d] - message wrong. expected=%q, got=%q", i, tt.message, ce.Message)
		}
		if ce.Span.Start.Column != tt.column {
			t.Fatalf("tests[%d] - column wrong. expected=%d, got=%d", i, tt.column, ce.Span.Start.Column)
		}
		if ce.Snippet() == "" {
			t.Fatalf("tests[%d] - lexical error should render a snippet", i)
		}
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := New("x")
	for i := 0; i < 3; i++ {
		if _, err := l.NextToken(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	tok, _ := l.NextToken()
	if tok.Type != TokenEOF {
		t.Fatalf("expected EOF after end of input, got %q", tok.Type)
	}
}
