package pipeline

import (
	"github.com/google/uuid"

	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/token"
)

// PipelineContext is the shared state threaded through the compilation
// stages. Stage outputs are stored as interface{} where they would otherwise
// create an import cycle between this package and the stage packages.
type PipelineContext struct {
	// BuildID identifies one compilation for debug output.
	BuildID string

	SourceCode string
	FilePath   string

	TokenStream []token.Token

	// AstRoot is the *ast.Module produced by the parser.
	AstRoot interface{}

	// TypedModule is the *typedast.Module produced by the analyzer and
	// rewritten in place by the lowering stage.
	TypedModule interface{}

	Errors []*diagnostics.DiagnosticError
}

// NewContext creates a context for compiling a single source buffer.
func NewContext(source, filePath string) *PipelineContext {
	return &PipelineContext{
		BuildID:    uuid.NewString(),
		SourceCode: source,
		FilePath:   filePath,
	}
}

// HasErrors reports whether any non-warning diagnostic was recorded.
func (ctx *PipelineContext) HasErrors() bool {
	for _, e := range ctx.Errors {
		if !e.Warning {
			return true
		}
	}
	return false
}
