package lexer

import (
	"fmt"

	"github.com/tinylang/tlc/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

const (
	TokenEOF TokenType = iota

	// Literals
	TokenIdentifier
	TokenNumber
	TokenString
	TokenChar

	// Keywords
	TokenLet
	TokenFn
	TokenBreak
	TokenCase
	TokenCharKeyword
	TokenConst
	TokenContinue
	TokenDefault
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenFloat
	TokenFor
	TokenIf
	TokenInt
	TokenBool
	TokenReturn
	TokenUsize
	TokenSizeof
	TokenStatic
	TokenStruct
	TokenSwitch
	TokenVoid
	TokenWhile
	TokenStr
	TokenImpl
	TokenPub
	TokenTrue
	TokenFalse
	TokenDefer
	TokenAs

	// Operators
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenAssign
	TokenEqual
	TokenNotEqual
	TokenBang
	TokenLessThan
	TokenLessEqual
	TokenGreaterThan
	TokenGreaterEqual
	TokenAnd
	TokenOr
	TokenAmpersand
	TokenPipe
	TokenCaret
	TokenTilde
	TokenShiftLeft
	TokenShiftRight
	TokenIncrement
	TokenDecrement
	TokenArrow

	// Delimiters
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenDot
	TokenSemicolon
	TokenColon
)

var tokenNames = map[TokenType]string{
	TokenEOF: "EOF",

	TokenIdentifier: "Identifier",
	TokenNumber:     "Number",
	TokenString:     "String",
	TokenChar:       "Char",

	TokenLet:         "Let",
	TokenFn:          "Fn",
	TokenBreak:       "Break",
	TokenCase:        "Case",
	TokenCharKeyword: "CharKeyword",
	TokenConst:       "Const",
	TokenContinue:    "Continue",
	TokenDefault:     "Default",
	TokenDo:          "Do",
	TokenDouble:      "Double",
	TokenElse:        "Else",
	TokenEnum:        "Enum",
	TokenFloat:       "Float",
	TokenFor:         "For",
	TokenIf:          "If",
	TokenInt:         "Int",
	TokenBool:        "Bool",
	TokenReturn:      "Return",
	TokenUsize:       "Usize",
	TokenSizeof:      "Sizeof",
	TokenStatic:      "Static",
	TokenStruct:      "Struct",
	TokenSwitch:      "Switch",
	TokenVoid:        "Void",
	TokenWhile:       "While",
	TokenStr:         "Str",
	TokenImpl:        "Impl",
	TokenPub:         "Pub",
	TokenTrue:        "True",
	TokenFalse:       "False",
	TokenDefer:       "Defer",
	TokenAs:          "As",

	TokenPlus:         "Plus",
	TokenMinus:        "Minus",
	TokenStar:         "Multiply",
	TokenSlash:        "Divide",
	TokenPercent:      "Percent",
	TokenAssign:       "Assign",
	TokenEqual:        "Equal",
	TokenNotEqual:     "NotEqual",
	TokenBang:         "Bang",
	TokenLessThan:     "LessThan",
	TokenLessEqual:    "LessEqual",
	TokenGreaterThan:  "GreaterThan",
	TokenGreaterEqual: "GreaterEqual",
	TokenAnd:          "And",
	TokenOr:           "Or",
	TokenAmpersand:    "BitAnd",
	TokenPipe:         "BitOr",
	TokenCaret:        "BitXor",
	TokenTilde:        "Tilde",
	TokenShiftLeft:    "BitLeft",
	TokenShiftRight:   "BitRight",
	TokenIncrement:    "Increment",
	TokenDecrement:    "Decrement",
	TokenArrow:        "Arrow",

	TokenLParen:    "OpenParen",
	TokenRParen:    "CloseParen",
	TokenLBrace:    "OpenCurlyBrace",
	TokenRBrace:    "CloseCurlyBrace",
	TokenLBracket:  "OpenBracket",
	TokenRBracket:  "CloseBracket",
	TokenComma:     "Comma",
	TokenDot:       "Dot",
	TokenSemicolon: "Semicolon",
	TokenColon:     "Colon",
}

var keywords = map[string]TokenType{
	"let":      TokenLet,
	"fn":       TokenFn,
	"break":    TokenBreak,
	"case":     TokenCase,
	"char":     TokenCharKeyword,
	"const":    TokenConst,
	"continue": TokenContinue,
	"default":  TokenDefault,
	"do":       TokenDo,
	"double":   TokenDouble,
	"else":     TokenElse,
	"enum":     TokenEnum,
	"float":    TokenFloat,
	"for":      TokenFor,
	"if":       TokenIf,
	"int":      TokenInt,
	"bool":     TokenBool,
	"return":   TokenReturn,
	"usize":    TokenUsize,
	"sizeof":   TokenSizeof,
	"static":   TokenStatic,
	"struct":   TokenStruct,
	"switch":   TokenSwitch,
	"void":     TokenVoid,
	"while":    TokenWhile,
	"str":      TokenStr,
	"impl":     TokenImpl,
	"pub":      TokenPub,
	"true":     TokenTrue,
	"false":    TokenFalse,
	"defer":    TokenDefer,
	"as":       TokenAs,
}

// LookupIdent returns the keyword type for ident, or TokenIdentifier.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// Token represents a lexical token with position information.
// For string and char literals Literal holds the text between the quotes.
type Token struct {
	Type    TokenType
	Literal string
	Span    position.Span
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Span: %s}", t.Type, t.Literal, t.Span)
}

// Is reports whether the token has the given type.
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}
