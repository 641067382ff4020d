package cli

import (
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"
)

func fixedLogger(verbose, debug bool) (*Logger, *strings.Builder) {
	var b strings.Builder
	l := NewLogger(verbose, debug)
	l.Out = &b
	l.now = func() time.Time { return time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC) }
	return l, &b
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		verbose, debug bool
		expected       string
	}{
		{false, false, "[WARN] 15:04:05: w 3\n[ERROR] 15:04:05: e 4\n"},
		{true, false, "[INFO] 15:04:05: i 1\n[WARN] 15:04:05: w 3\n[ERROR] 15:04:05: e 4\n"},
		{false, true, "[INFO] 15:04:05: i 1\n[DEBUG] 15:04:05: d 2\n[WARN] 15:04:05: w 3\n[ERROR] 15:04:05: e 4\n"},
	}

	for i, tt := range tests {
		l, out := fixedLogger(tt.verbose, tt.debug)
		l.Info("i %d", 1)
		l.Debug("d %d", 2)
		l.Warn("w %d", 3)
		l.Error("e %d", 4)
		if out.String() != tt.expected {
			t.Fatalf("tests[%d] - log output wrong.\nexpected=%q\ngot=     %q", i, tt.expected, out.String())
		}
	}
}

func TestPrintVersion(t *testing.T) {
	var text strings.Builder
	if err := PrintVersion(&text, "tlc", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(text.String(), "tlc v"+Version+"\n") {
		t.Fatalf("text version wrong: %q", text.String())
	}

	var js strings.Builder
	if err := PrintVersion(&js, "tlc", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded struct {
		Tool        string      `json:"tool"`
		VersionInfo VersionInfo `json:"version_info"`
	}
	if err := json.Unmarshal([]byte(js.String()), &decoded); err != nil {
		t.Fatalf("version JSON invalid: %v", err)
	}
	if decoded.Tool != "tlc" || decoded.VersionInfo.Version != Version {
		t.Fatalf("version JSON wrong: %+v", decoded)
	}
}

func TestPrintUsage(t *testing.T) {
	var b strings.Builder
	PrintUsage(&b, "tlc", []CommandInfo{
		{Name: "check", Description: "Analyze a source file", Examples: []string{"tlc check main.tl"}},
	}, []FlagInfo{{Name: "color", Usage: "colorize output", Default: "auto"}})

	out := b.String()
	for _, want := range []string{"COMMANDS:", "check", "Analyze a source file", "-color", "(default: auto)", "tlc check main.tl"} {
		if !strings.Contains(out, want) {
			t.Fatalf("usage missing %q:\n%s", want, out)
		}
	}
}

func TestValidateArgs(t *testing.T) {
	if err := ValidateArgs([]string{"a"}, 1, "tlc check <file>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateArgs(nil, 1, "tlc check <file>"); err == nil {
		t.Fatalf("expected insufficient arguments error")
	}
}

func TestExitWithCode(t *testing.T) {
	tests := []struct {
		code     int
		format   string
		args     []interface{}
		expected string
	}{
		{0, "", nil, ""},
		{1, "", nil, ""},
		{2, "unknown command: %s", []interface{}{"frob"}, "unknown command: frob\n"},
	}

	defer func(e func(int), w io.Writer) { exit, exitOut = e, w }(exit, exitOut)
	for i, tt := range tests {
		var b strings.Builder
		got := -1
		exit = func(code int) { got = code }
		exitOut = &b

		ExitWithCode(tt.code, tt.format, tt.args...)
		if got != tt.code {
			t.Fatalf("tests[%d] - exit code wrong. expected=%d, got=%d", i, tt.code, got)
		}
		if b.String() != tt.expected {
			t.Fatalf("tests[%d] - message wrong. expected=%q, got=%q", i, tt.expected, b.String())
		}
	}
}
