package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tinylang/tlc/internal/compiler"
	"github.com/tinylang/tlc/internal/diagnostic"
)

func writeSource(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "main.tl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func runTLC(args ...string) (int, string, string) {
	var stdout, stderr strings.Builder
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "fn main() -> int { return 0; }\n")

	code, stdout, stderr := runTLC("-color=never", "check", path)
	if code != exitOK {
		t.Fatalf("check failed (%d): %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "Name:global Access:Public NodeType:Global") {
		t.Fatalf("symbols should be printed by default:\n%s", stdout)
	}

	bad := writeSource(t, t.TempDir(), "fn main() -> int {\n  return true;\n}\n")
	code, _, stderr = runTLC("-color=never", "check", bad)
	if code != exitFailed {
		t.Fatalf("expected failure exit, got %d", code)
	}
	if !strings.Contains(stderr, "semantic error: Return value and return type of function does not match") {
		t.Fatalf("diagnostic missing:\n%s", stderr)
	}
	if !strings.Contains(stderr, "   2 |   return true;") {
		t.Fatalf("snippet missing:\n%s", stderr)
	}
}

func TestConfigControlsOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "fn main() {}\n")
	cfg := filepath.Join(dir, "tlc.toml")
	if err := os.WriteFile(cfg, []byte("[output]\nast = true\nsymbols = false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	code, stdout, stderr := runTLC("check", path)
	if code != exitOK {
		t.Fatalf("check failed (%d): %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "Program\n") || strings.Contains(stdout, "NodeType:") {
		t.Fatalf("config output flags ignored:\n%s", stdout)
	}

	if err := os.WriteFile(cfg, []byte("[compiler]\nversion = \">= 99.0.0\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	code, _, stderr = runTLC("check", path)
	if code != exitUsage || !strings.Contains(stderr, "does not satisfy") {
		t.Fatalf("version constraint not enforced (%d): %s", code, stderr)
	}
}

func TestTokensAndASTCommands(t *testing.T) {
	path := writeSource(t, t.TempDir(), "fn f() { g(); }\n")

	code, stdout, stderr := runTLC("tokens", path)
	if code != exitOK {
		t.Fatalf("tokens failed (%d): %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if !strings.HasPrefix(lines[0], "1:1\tFn") || !strings.Contains(lines[len(lines)-1], "EOF") {
		t.Fatalf("token listing wrong:\n%s", stdout)
	}

	// Parsing does not resolve names, so an unknown callee is fine here.
	code, stdout, stderr = runTLC("ast", path)
	if code != exitOK {
		t.Fatalf("ast failed (%d): %s", code, stderr)
	}
	if !strings.Contains(stdout, "FnDeclaration f") || !strings.Contains(stdout, "FnCall (0 args)") {
		t.Fatalf("ast output wrong:\n%s", stdout)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		args []string
		code int
	}{
		{nil, exitUsage},
		{[]string{"frobnicate"}, exitUsage},
		{[]string{"check"}, exitUsage},
		{[]string{"-color=sometimes", "check", "x.tl"}, exitUsage},
		{[]string{"-nope"}, exitUsage},
		{[]string{"help"}, exitOK},
		{[]string{"-json", "version"}, exitOK},
		{[]string{"check", filepath.Join(os.TempDir(), "tlc-missing", "main.tl")}, exitFailed},
	}

	for i, tt := range tests {
		code, _, _ := runTLC(tt.args...)
		if code != tt.code {
			t.Fatalf("tests[%d] - exit code wrong for %v. expected=%d, got=%d", i, tt.args, tt.code, code)
		}
	}
}

func TestAnalyzingCommandsMatchAnalyze(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "fn main() -> int {\n  return y;\n}\n")
	missing := filepath.Join(dir, "gone", "main.tl")

	tests := []struct {
		command string
		path    string
	}{
		{"check", bad},
		{"symbols", bad},
		{"check", missing},
		{"symbols", missing},
	}

	for i, tt := range tests {
		_, err := compiler.Analyze(tt.path)
		if err == nil {
			t.Fatalf("tests[%d] - expected analysis of %s to fail", i, tt.path)
		}
		expected := diagnostic.Sprint(err)

		code, _, stderr := runTLC("-color=never", tt.command, tt.path)
		if code != exitFailed {
			t.Fatalf("tests[%d] - exit code wrong. expected=%d, got=%d", i, exitFailed, code)
		}
		if stderr != expected {
			t.Fatalf("tests[%d] - %s output differs from Analyze.\nexpected=%q\ngot=     %q", i, tt.command, expected, stderr)
		}
	}
}
