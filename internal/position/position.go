// Package position provides source position tracking for the tlc front end.
// Every token, AST node and diagnostic carries a Span built from these types.
package position

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Position represents a single point in source code
type Position struct {
	Filename string // Source file name
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Offset   int    // 0-based byte offset in source
}

// IsValid returns true if the position is valid
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String returns a string representation of the position
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before returns true if this position comes before other
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// Span represents a range of source code between two positions
type Span struct {
	Start Position // Starting position (inclusive)
	End   Position // Ending position (exclusive)
}

// IsValid returns true if the span is valid
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && s.Start.Offset <= s.End.Offset
}

// String returns a string representation of the span
func (s Span) String() string {
	prefix := ""
	if s.Start.Filename != "" {
		prefix = filepath.Base(s.Start.Filename) + ":"
	}
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s%d:%d-%d", prefix, s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s%d:%d-%d:%d", prefix, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// Union returns a span that encompasses both this span and other
func (s Span) Union(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() {
		return s
	}

	start := s.Start
	if other.Start.Before(start) {
		start = other.Start
	}
	end := s.End
	if end.Before(other.End) {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Width returns the number of bytes covered by the span.
func (s Span) Width() int {
	return s.End.Offset - s.Start.Offset
}

// SourceFile holds the text of one compilation unit split into lines.
type SourceFile struct {
	Filename string
	Content  string
	Lines    []string
}

// NewSourceFile creates a SourceFile and indexes its lines.
func NewSourceFile(filename, content string) *SourceFile {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &SourceFile{
		Filename: filename,
		Content:  content,
		Lines:    lines,
	}
}

// GetLine returns the 1-based line, or "" when out of range.
func (sf *SourceFile) GetLine(line int) string {
	if line < 1 || line > len(sf.Lines) {
		return ""
	}
	return sf.Lines[line-1]
}

// LineCount returns the number of lines in the file.
func (sf *SourceFile) LineCount() int {
	return len(sf.Lines)
}
