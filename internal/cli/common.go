// Package cli holds the pieces shared by the tlc command: version data,
// leveled logging and usage output.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"
)

// Version information, overridable at link time.
var (
	Version   = "0.1.0"
	BuildDate = "2026-10-18"
	CommitSHA = "unknown"
)

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	CommitSHA string `json:"commit_sha"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns structured version information
func GetVersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		CommitSHA: CommitSHA,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintVersion writes version information as text or JSON.
func PrintVersion(w io.Writer, toolName string, jsonOutput bool) error {
	info := GetVersionInfo()

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "%s v%s\n", toolName, info.Version)
	fmt.Fprintf(w, "Build Date: %s\n", info.BuildDate)
	if info.CommitSHA != "unknown" && info.CommitSHA != "" {
		fmt.Fprintf(w, "Commit: %s\n", info.CommitSHA)
	}
	fmt.Fprintf(w, "Go Version: %s\n", info.GoVersion)
	_, err := fmt.Fprintf(w, "Platform: %s/%s\n", info.Platform, info.Arch)
	return err
}

// Process exit hooks, replaced in tests.
var (
	exit    func(int) = os.Exit
	exitOut io.Writer = os.Stderr
)

// ExitWithCode exits with the specified code, printing the message first
// when format is not empty.
func ExitWithCode(code int, format string, args ...interface{}) {
	if format != "" {
		fmt.Fprintf(exitOut, format+"\n", args...)
	}
	exit(code)
}

// Logger writes leveled messages. Info needs Verbose and Debug needs
// DebugMode; warnings and errors are always written.
type Logger struct {
	Verbose   bool
	DebugMode bool
	Out       io.Writer

	now func() time.Time
}

// NewLogger creates a logger writing to stderr.
func NewLogger(verbose, debug bool) *Logger {
	return &Logger{
		Verbose:   verbose,
		DebugMode: debug,
		Out:       os.Stderr,
		now:       time.Now,
	}
}

func (l *Logger) log(level, format string, args ...interface{}) {
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	out := l.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, "[%s] %s: %s\n", level, now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose || l.DebugMode {
		l.log("INFO", format, args...)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		l.log("DEBUG", format, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log("WARN", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

// CommandInfo represents information about a CLI command
type CommandInfo struct {
	Name        string
	Usage       string
	Description string
	Examples    []string
}

// FlagInfo represents information about a global flag
type FlagInfo struct {
	Name    string
	Usage   string
	Default string
}

// PrintUsage prints a standardized usage message
func PrintUsage(w io.Writer, tool string, commands []CommandInfo, flags []FlagInfo) {
	fmt.Fprintf(w, "%s - tinylang front end\n\n", tool)
	fmt.Fprintf(w, "USAGE:\n")
	fmt.Fprintf(w, "    %s [OPTIONS] <command> <file>\n\n", tool)

	if len(commands) > 0 {
		fmt.Fprintf(w, "COMMANDS:\n")
		for _, cmd := range commands {
			fmt.Fprintf(w, "    %-12s %s\n", cmd.Name, cmd.Description)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(flags) > 0 {
		fmt.Fprintf(w, "OPTIONS:\n")
		for _, flag := range flags {
			flagStr := fmt.Sprintf("    -%s", flag.Name)
			fmt.Fprintf(w, "%-20s %s", flagStr, flag.Usage)
			if flag.Default != "" {
				fmt.Fprintf(w, " (default: %s)", flag.Default)
			}
			fmt.Fprintf(w, "\n")
		}
		fmt.Fprintf(w, "\n")
	}

	var examples []string
	for _, cmd := range commands {
		examples = append(examples, cmd.Examples...)
	}
	if len(examples) > 0 {
		fmt.Fprintf(w, "EXAMPLES:\n")
		for _, example := range examples {
			fmt.Fprintf(w, "    %s\n", example)
		}
	}
}

// ValidateArgs validates command line arguments
func ValidateArgs(args []string, minArgs int, usage string) error {
	if len(args) < minArgs {
		return fmt.Errorf("insufficient arguments\nUsage: %s", usage)
	}
	return nil
}
