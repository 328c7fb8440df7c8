package analyzer

import (
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/pipeline"
	"github.com/corvid-lang/corvid/internal/token"
)

// AnalyzerProcessor type checks the parsed module and stores the typed tree
// on the context.
type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	module, ok := ctx.AstRoot.(*ast.Module)
	if !ok || module == nil {
		err := diagnostics.NewError(diagnostics.ErrA001, token.Token{}, "analyzer: no module to check")
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	ctx.TypedModule = New(ctx).Analyze(module)
	return ctx
}
