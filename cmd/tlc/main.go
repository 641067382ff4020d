// Package main provides the tlc command: it lexes, parses and checks tinylang
// source files and prints the intermediate results.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tinylang/tlc/internal/ast"
	"github.com/tinylang/tlc/internal/cli"
	"github.com/tinylang/tlc/internal/compiler"
	"github.com/tinylang/tlc/internal/config"
	"github.com/tinylang/tlc/internal/diagnostic"
	"github.com/tinylang/tlc/internal/watch"
)

const toolName = "tlc"

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

var commands = []cli.CommandInfo{
	{Name: "check", Description: "Analyze a source file and report the first error", Examples: []string{"tlc check main.tl"}},
	{Name: "tokens", Description: "Print the token stream"},
	{Name: "ast", Description: "Print the syntax tree"},
	{Name: "symbols", Description: "Analyze and print the scope tree", Examples: []string{"tlc -color=never symbols main.tl"}},
	{Name: "watch", Description: "Re-check a file whenever it changes", Examples: []string{"tlc -v watch main.tl"}},
	{Name: "version", Description: "Show version information"},
	{Name: "help", Description: "Show this help"},
}

var globalFlags = []cli.FlagInfo{
	{Name: "config", Usage: "path to tlc.toml (searched upward from the source by default)"},
	{Name: "v", Usage: "verbose output"},
	{Name: "debug", Usage: "debug output"},
	{Name: "color", Usage: "auto, always or never", Default: "config or auto"},
	{Name: "json", Usage: "print version information as JSON"},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	cli.ExitWithCode(code, "")
}

// app carries the state shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *cli.Logger

	configPath string
	colorFlag  string
	cfg        *config.Config
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { cli.PrintUsage(stderr, toolName, commands, globalFlags) }

	configPath := fs.String("config", "", "path to tlc.toml")
	verbose := fs.Bool("v", false, "verbose output")
	debug := fs.Bool("debug", false, "debug output")
	color := fs.String("color", "", "auto, always or never")
	jsonOutput := fs.Bool("json", false, "print version information as JSON")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	logger := cli.NewLogger(*verbose, *debug)
	logger.Out = stderr
	a := &app{
		stdout:     stdout,
		stderr:     stderr,
		logger:     logger,
		configPath: *configPath,
		colorFlag:  *color,
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return exitUsage
	}

	sub, rest := rest[0], rest[1:]
	switch sub {
	case "help":
		cli.PrintUsage(stdout, toolName, commands, globalFlags)
		return exitOK
	case "version":
		if err := cli.PrintVersion(stdout, toolName, *jsonOutput); err != nil {
			logger.Error("%v", err)
			return exitFailed
		}
		return exitOK
	case "check", "tokens", "ast", "symbols", "watch":
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", sub)
		fs.Usage()
		return exitUsage
	}

	if err := cli.ValidateArgs(rest, 1, fmt.Sprintf("%s %s <file>", toolName, sub)); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	file := rest[0]

	if err := a.loadConfig(file); err != nil {
		logger.Error("%v", err)
		return exitUsage
	}

	switch sub {
	case "tokens":
		return a.tokens(file)
	case "ast":
		return a.printAST(file)
	case "symbols":
		return a.check(file, false, true)
	case "watch":
		return a.watch(ctx, file)
	}
	return a.check(file, a.cfg.Output.AST, a.cfg.Output.Symbols)
}

func (a *app) loadConfig(file string) error {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if a.configPath != "" {
		cfg, err = config.Load(a.configPath)
		path = a.configPath
	} else {
		cfg, path, err = config.FindAndLoad(filepath.Dir(file))
	}
	if err != nil {
		return err
	}
	if path != "" {
		a.logger.Info("using config %s", path)
	}

	if err := cfg.CheckVersion(cli.Version); err != nil {
		return err
	}
	if a.colorFlag != "" {
		if _, err := diagnostic.ParseColorMode(a.colorFlag); err != nil {
			return err
		}
		cfg.Output.Color = a.colorFlag
	}
	a.cfg = cfg
	return nil
}

func (a *app) colorEnabled() bool {
	f, _ := a.stderr.(*os.File)
	return a.cfg.ColorMode().Enabled(f)
}

func (a *app) report(err error) int {
	if rerr := diagnostic.Render(a.stderr, err, a.colorEnabled()); rerr != nil {
		a.logger.Error("failed to write diagnostic: %v", rerr)
	}
	return exitFailed
}

func (a *app) readSource(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read source file: %w", err)
	}
	a.logger.Debug("read %s (%d bytes)", file, len(data))
	return string(data), nil
}

func (a *app) tokens(file string) int {
	text, err := a.readSource(file)
	if err != nil {
		return a.report(err)
	}
	tokens, err := compiler.Tokenize(file, text)
	for _, tok := range tokens {
		fmt.Fprintf(a.stdout, "%d:%d\t%-16s %q\n", tok.Span.Start.Line, tok.Span.Start.Column, tok.Type, tok.Literal)
	}
	if err != nil {
		return a.report(err)
	}
	return exitOK
}

func (a *app) printAST(file string) int {
	text, err := a.readSource(file)
	if err != nil {
		return a.report(err)
	}
	result, err := compiler.Parse(file, text)
	if err != nil {
		return a.report(err)
	}
	if err := ast.Fprint(a.stdout, result.Program); err != nil {
		a.logger.Error("%v", err)
		return exitFailed
	}
	return exitOK
}

func (a *app) check(file string, showAST, showSymbols bool) int {
	a.logger.Debug("analyzing %s", file)
	result, err := compiler.Analyze(file)
	if err != nil {
		return a.report(err)
	}

	if showAST {
		if err := ast.Fprint(a.stdout, result.Program); err != nil {
			a.logger.Error("%v", err)
			return exitFailed
		}
	}
	if showSymbols {
		if err := result.Table.Dump(a.stdout); err != nil {
			a.logger.Error("%v", err)
			return exitFailed
		}
	}
	a.logger.Info("%s: ok (%d declarations, %d scopes)", file, len(result.Program.Declarations), result.Table.Len())
	return exitOK
}

func (a *app) watch(ctx context.Context, file string) int {
	w, err := watch.New(file, a.cfg.Debounce(), func(ctx context.Context, path string) {
		if a.check(path, a.cfg.Output.AST, a.cfg.Output.Symbols) == exitOK {
			fmt.Fprintf(a.stderr, "%s: ok\n", path)
		}
	}, a.logger)
	if err != nil {
		a.logger.Error("%v", err)
		return exitFailed
	}
	if err := w.Run(ctx); err != nil {
		a.logger.Error("%v", err)
		return exitFailed
	}
	return exitOK
}
