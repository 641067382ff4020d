package position

import (
	"fmt"
	"strings"
)

// SpanHighlighter renders source excerpts with the span underlined by carets.
type SpanHighlighter struct {
	file *SourceFile
	// ContextLines is the number of lines printed before the span.
	ContextLines int
}

// NewSpanHighlighter creates a highlighter over file with two context lines.
func NewSpanHighlighter(file *SourceFile) *SpanHighlighter {
	return &SpanHighlighter{file: file, ContextLines: 2}
}

// HighlightSpan returns the lines leading up to span.Start.Line followed by a
// caret line under the highlighted columns.
func (sh *SpanHighlighter) HighlightSpan(span Span) string {
	if sh.file == nil || !span.Start.IsValid() {
		return ""
	}

	var result strings.Builder

	line := span.Start.Line
	startLine := max(1, line-sh.ContextLines)
	for lineNum := startLine; lineNum <= line && lineNum <= sh.file.LineCount(); lineNum++ {
		result.WriteString(fmt.Sprintf("%4d | %s\n", lineNum, sh.file.GetLine(lineNum)))
	}

	result.WriteString("     | ")
	result.WriteString(caretLine(sh.file.GetLine(line), span))
	result.WriteString("\n")

	return result.String()
}

// caretLine builds the underline for span on its first line. Tabs in the
// source prefix are preserved so the carets stay aligned.
func caretLine(text string, span Span) string {
	startCol := span.Start.Column
	endCol := span.End.Column
	if span.End.Line != span.Start.Line {
		endCol = len(text) + 1
	}
	width := max(1, endCol-startCol)

	var b strings.Builder
	for i := 0; i < startCol-1; i++ {
		if i < len(text) && text[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString(strings.Repeat("^", width))
	return b.String()
}
