package parser

import (
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/lexer"
	"github.com/corvid-lang/corvid/internal/pipeline"
	"github.com/corvid-lang/corvid/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		err := diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	module := parser.ParseModule()
	module.File = ctx.FilePath
	ctx.AstRoot = module

	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}

	return ctx
}

// Parse is a convenience for tests and tools that want an AST straight from
// source text.
func Parse(source, filePath string) (*ast.Module, *pipeline.PipelineContext) {
	ctx := pipeline.NewContext(source, filePath)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)

	parser := New(ctx.TokenStream, ctx)
	module := parser.ParseModule()
	module.File = filePath
	ctx.AstRoot = module
	return module, ctx
}
