// Package compiler wires the front end stages into one pipeline:
// lexing, parsing, declaration collection and semantic analysis.
package compiler

import (
	"fmt"
	"os"

	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/errors"
	"github.com/tinylang/tlc/internal/lexer"
	"github.com/tinylang/tlc/internal/parser"
	"github.com/tinylang/tlc/internal/position"
	"github.com/tinylang/tlc/internal/resolver"
	"github.com/tinylang/tlc/internal/typechecker"
)

// Stage names the pipeline step that produced a Result or an error.
type Stage string

const (
	StageParse   Stage = "parse"
	StageCollect Stage = "collect"
	StageCheck   Stage = "check"
)

// Result is the outcome of a successful analysis.
type Result struct {
	Program *ast.Program
	Table   *resolver.SymbolTable
	Source  *position.SourceFile
}

// Analyze reads path and runs the full pipeline over it.
func Analyze(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return AnalyzeSource(path, string(data))
}

// AnalyzeSource runs the full pipeline over text. The first error of any
// stage aborts the analysis and is returned with the source attached.
func AnalyzeSource(filename, text string) (*Result, error) {
	return analyze(position.NewSourceFile(filename, text), StageCheck)
}

// Parse runs only the lexer and parser.
func Parse(filename, text string) (*Result, error) {
	return analyze(position.NewSourceFile(filename, text), StageParse)
}

// Collect parses text and builds the declaration scope tree without
// checking function bodies.
func Collect(filename, text string) (*Result, error) {
	return analyze(position.NewSourceFile(filename, text), StageCollect)
}

// Tokenize returns every token of text, ending with EOF.
func Tokenize(filename, text string) ([]lexer.Token, error) {
	src := position.NewSourceFile(filename, text)
	tokens, err := lexer.NewFromSource(src).Tokenize()
	return tokens, attachSource(err, src)
}

func analyze(src *position.SourceFile, until Stage) (*Result, error) {
	result := &Result{Source: src}

	program, err := parser.New(lexer.NewFromSource(src)).Parse()
	if err != nil {
		return nil, attachSource(err, src)
	}
	result.Program = program
	if until == StageParse {
		return result, nil
	}

	table, err := resolver.Collect(program)
	if err != nil {
		return nil, attachSource(err, src)
	}
	result.Table = table
	if until == StageCollect {
		return result, nil
	}

	if err := typechecker.Check(program, table); err != nil {
		return nil, attachSource(err, src)
	}
	return result, nil
}

// attachSource gives semantic errors, which are raised without a file, the
// source text needed for snippets and file names.
func attachSource(err error, src *position.SourceFile) error {
	if ce, ok := errors.AsCompilerError(err); ok && ce.Source == nil {
		ce.Source = src
	}
	return err
}
