package lexer

import (
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/pipeline"
	"github.com/corvid-lang/corvid/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)

	var stream []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			message := "unexpected character"
			if msg, ok := tok.Literal.(string); ok && msg != tok.Lexeme && msg != "" {
				message = msg
			}
			err := diagnostics.NewError(diagnostics.ErrL001, tok, message+": "+tok.Lexeme)
			err.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, err)
		}
		stream = append(stream, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	ctx.TokenStream = stream
	return ctx
}
