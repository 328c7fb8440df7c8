package transform

import (
	"github.com/corvid-lang/corvid/internal/pipeline"
	"github.com/corvid-lang/corvid/internal/typedast"
)

// TransformProcessor lowers early returns in every function of the typed
// module. It runs after the analyzer and rewrites the typed tree in place.
type TransformProcessor struct{}

func (tp *TransformProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	module, ok := ctx.TypedModule.(*typedast.Module)
	if !ok || module == nil {
		return ctx
	}

	LowerModule(module)
	return ctx
}

// LowerModule rewrites all function bodies in the module.
func LowerModule(module *typedast.Module) {
	for _, fn := range module.Functions {
		fn.Body = LowerFunctionBody(fn.Body)
	}
	for _, constant := range module.Constants {
		// Constants cannot return early, but their values may hold
		// anonymous functions that can.
		t := newTransformer()
		constant.Value = t.transformExpressionSimple(constant.Value)
	}
}
