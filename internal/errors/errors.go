// Package errors defines the error type shared by every stage of the front end.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/tinylang/tlc/internal/position"
)

// Kind represents the stage that rejected the program.
type Kind string

const (
	KindLexical   Kind = "lexical"
	KindSyntactic Kind = "syntactic"
	KindSemantic  Kind = "semantic"
)

// CompilerError is the single fatal error produced by a failed analysis.
// Span may be zero for semantic errors raised without a source anchor.
type CompilerError struct {
	Kind    Kind
	Message string
	Span    position.Span
	Source  *position.SourceFile
}

// Error implements the error interface
func (e *CompilerError) Error() string {
	if e.Span.Start.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s error: %s", e.filename(), e.Span.Start.Line, e.Span.Start.Column, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *CompilerError) filename() string {
	if e.Span.Start.Filename != "" {
		return e.Span.Start.Filename
	}
	if e.Source != nil {
		return e.Source.Filename
	}
	return "<input>"
}

// Snippet returns the source excerpt with carets under the span, or "" when
// no source is attached.
func (e *CompilerError) Snippet() string {
	if e.Source == nil || !e.Span.Start.IsValid() {
		return ""
	}
	return position.NewSpanHighlighter(e.Source).HighlightSpan(e.Span)
}

// Lexical creates a lexical error.
func Lexical(src *position.SourceFile, span position.Span, format string, args ...interface{}) *CompilerError {
	return newError(KindLexical, src, span, format, args...)
}

// Syntactic creates a syntactic error.
func Syntactic(src *position.SourceFile, span position.Span, format string, args ...interface{}) *CompilerError {
	return newError(KindSyntactic, src, span, format, args...)
}

// Semantic creates a semantic error.
func Semantic(span position.Span, format string, args ...interface{}) *CompilerError {
	return newError(KindSemantic, nil, span, format, args...)
}

func newError(kind Kind, src *position.SourceFile, span position.Span, format string, args ...interface{}) *CompilerError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &CompilerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
		Source:  src,
	}
}

// AsCompilerError unwraps err into a CompilerError when it is one.
func AsCompilerError(err error) (*CompilerError, bool) {
	var ce *CompilerError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsKind reports whether err is a CompilerError of the given kind.
func IsKind(err error, kind Kind) bool {
	ce, ok := AsCompilerError(err)
	return ok && ce.Kind == kind
}
