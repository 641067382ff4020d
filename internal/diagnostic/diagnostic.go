// Package diagnostic renders front end errors for terminal display.
package diagnostic

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tinylang/tlc/internal/errors"
)

// ColorMode selects when Render output is colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const (
	ansiBoldRed = "\033[1;31m"
	ansiRed     = "\033[31m"
	ansiReset   = "\033[0m"
)

// ParseColorMode validates a -color flag or config value. The empty string
// means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(s)) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Enabled reports whether output written to f should be colorized.
func (m ColorMode) Enabled(f *os.File) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || f == nil {
		return false
	}
	return isTerminal(f.Fd())
}

// Render writes err to w. Compiler errors with an attached source get the
// offending lines and a caret line carrying the message; anything else is
// printed on a single line.
func Render(w io.Writer, err error, color bool) error {
	if err == nil {
		return nil
	}

	ce, ok := errors.AsCompilerError(err)
	if !ok {
		_, werr := fmt.Fprintf(w, "%s\n", paint(color, ansiBoldRed, "error: "+err.Error()))
		return werr
	}

	if _, werr := fmt.Fprintf(w, "%s\n", paint(color, ansiBoldRed, ce.Error())); werr != nil {
		return werr
	}

	snippet := ce.Snippet()
	if snippet == "" {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(snippet, "\n"), "\n")
	last := len(lines) - 1
	for _, line := range lines[:last] {
		if _, werr := fmt.Fprintln(w, line); werr != nil {
			return werr
		}
	}

	// The caret line is "     | " followed by the underline.
	gutter, carets := splitGutter(lines[last])
	_, werr := fmt.Fprintf(w, "%s%s\n", gutter, paint(color, ansiRed, carets+" "+ce.Message))
	return werr
}

// Sprint renders err without color.
func Sprint(err error) string {
	var b strings.Builder
	_ = Render(&b, err, false)
	return b.String()
}

func splitGutter(line string) (string, string) {
	if i := strings.Index(line, "| "); i >= 0 {
		return line[:i+2], line[i+2:]
	}
	return "", line
}

func paint(color bool, code, text string) string {
	if !color {
		return text
	}
	return code + text + ansiReset
}
