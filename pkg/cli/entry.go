// Package cli implements the corvid command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/corvid-lang/corvid/internal/analyzer"
	"github.com/corvid-lang/corvid/internal/config"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/evaluator"
	"github.com/corvid-lang/corvid/internal/lexer"
	"github.com/corvid-lang/corvid/internal/parser"
	"github.com/corvid-lang/corvid/internal/pipeline"
	"github.com/corvid-lang/corvid/internal/prettyprinter"
	"github.com/corvid-lang/corvid/internal/transform"
	"github.com/corvid-lang/corvid/internal/typedast"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// isSourceFile checks if a file has a recognized source extension.
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Run executes the CLI and returns the process exit code.
func Run(args []string) int {
	if len(args) < 2 {
		printUsage(os.Stderr)
		return 1
	}

	switch args[1] {
	case "check":
		return handleCheck(args[2:])
	case "run":
		return handleRun(args[2:])
	case "lower":
		return handleLower(args[2:])
	case "help", "-help", "--help":
		printUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[1])
		printUsage(os.Stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: corvid <command> [args...]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  check <file...>        type check source files")
	fmt.Fprintln(w, "  run <file> [function]  run a function (default: main)")
	fmt.Fprintln(w, "  lower <file>           print the early-return lowered source")
	fmt.Fprintln(w, "  help                   show this help")
}

// loadProjectConfig finds corvid.yaml relative to the first source file.
func loadProjectConfig(sourcePath string) (*config.Config, error) {
	found, err := config.FindConfig(filepath.Dir(sourcePath))
	if err != nil || found == "" {
		return config.Default(), err
	}
	return config.LoadConfig(found)
}

// compileFile runs the full pipeline over one file. Lowering is applied
// when the config enables it and the analysis produced no errors.
func compileFile(path string, cfg *config.Config) *pipeline.PipelineContext {
	source, err := os.ReadFile(path)
	if err != nil {
		ctx := pipeline.NewContext("", path)
		ctx.Errors = append(ctx.Errors, &diagnostics.DiagnosticError{
			Code:    diagnostics.ErrL001,
			Message: fmt.Sprintf("cannot read %s: %s", path, err),
			File:    path,
		})
		return ctx
	}

	processors := []pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.AnalyzerProcessor{},
	}
	if cfg.ShouldLower() {
		processors = append(processors, &transform.TransformProcessor{})
	}

	ctx := pipeline.NewContext(string(source), path)
	return pipeline.New(processors...).Run(ctx)
}

// reportDiagnostics prints every non-suppressed diagnostic and reports
// whether the compilation should be treated as failed.
func reportDiagnostics(ctx *pipeline.PipelineContext, cfg *config.Config) bool {
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	failed := false
	for _, diag := range ctx.Errors {
		if cfg.Suppressed(string(diag.Code)) {
			continue
		}
		if diag.File == "" {
			diag.File = ctx.FilePath
		}
		if !diag.Warning || cfg.WarningsAsErrors {
			failed = true
		}

		line := diag.Error()
		if color {
			if diag.Warning {
				line = ansiYellow + line + ansiReset
			} else {
				line = ansiRed + line + ansiReset
			}
		}
		fmt.Fprintln(os.Stderr, line)
	}
	return failed
}

func handleCheck(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: corvid check <file...>")
		return 1
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
		if info.IsDir() {
			entries, err := os.ReadDir(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading directory: %s\n", err)
				return 1
			}
			for _, entry := range entries {
				if !entry.IsDir() && isSourceFile(entry.Name()) {
					files = append(files, filepath.Join(arg, entry.Name()))
				}
			}
		} else {
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No source files found")
		return 1
	}

	cfg, err := loadProjectConfig(files[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	exitCode := 0
	for _, file := range files {
		ctx := compileFile(file, cfg)
		if reportDiagnostics(ctx, cfg) {
			exitCode = 1
		}
	}
	return exitCode
}

func handleRun(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: corvid run <file> [function]")
		return 1
	}
	path := args[0]
	entry := "main"
	if len(args) > 1 {
		entry = args[1]
	}

	cfg, err := loadProjectConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	ctx := compileFile(path, cfg)
	if reportDiagnostics(ctx, cfg) {
		return 1
	}

	module, ok := ctx.TypedModule.(*typedast.Module)
	if !ok {
		fmt.Fprintln(os.Stderr, "Internal error: no typed module produced")
		return 1
	}

	eval := evaluator.New()
	env := eval.EvalModule(module)
	result := eval.CallFunction(env, entry)
	if result != nil && result.Type() == evaluator.ERROR_OBJ {
		fmt.Fprintf(os.Stderr, "Runtime error: %s\n", result.Inspect())
		return 1
	}
	if result != nil && result.Type() != evaluator.NIL_OBJ {
		fmt.Println(result.Inspect())
	}
	return 0
}

func handleLower(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: corvid lower <file>")
		return 1
	}
	path := args[0]

	cfg, err := loadProjectConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	ctx := compileFile(path, cfg)
	if reportDiagnostics(ctx, cfg) {
		return 1
	}

	module, ok := ctx.TypedModule.(*typedast.Module)
	if !ok {
		fmt.Fprintln(os.Stderr, "Internal error: no typed module produced")
		return 1
	}
	if !cfg.ShouldLower() {
		transform.LowerModule(module)
	}

	fmt.Print(prettyprinter.Print(module))
	return 0
}
