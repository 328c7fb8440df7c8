package parser

import (
	"fmt"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/token"
)

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	// Ctor(..base, label: value) is a record update, not a call.
	if p.peekTokenIs(token.DOT_DOT) {
		return p.parseRecordUpdate(function)
	}

	call := &ast.CallExpression{Token: p.curToken, Function: function}
	call.Arguments = p.parseCallArguments()
	return call
}

// parseCallArguments parses (a, label: b). curToken is '(' on entry and ')'
// on exit.
func (p *Parser) parseCallArguments() []*ast.CallArg {
	var args []*ast.CallArg

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args
	}

	for {
		p.nextToken()
		arg := &ast.CallArg{Token: p.curToken}
		if p.curTokenIs(token.NAME) && p.peekTokenIs(token.COLON) {
			arg.Label = p.curToken.Lexeme
			p.nextToken()
			p.nextToken()
		}
		arg.Value = p.parseExpression(LOWEST)
		if arg.Value == nil {
			return args
		}
		args = append(args, arg)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		p.skipToStatementBoundary()
	}
	return args
}

// parseRecordUpdate parses Ctor(..base, label: value, ...). curToken is '('
// on entry.
func (p *Parser) parseRecordUpdate(constructor ast.Expression) ast.Expression {
	update := &ast.RecordUpdate{Token: p.curToken, Constructor: constructor}

	p.nextToken() // the '..'
	p.nextToken()
	update.Base = p.parseExpression(LOWEST)
	if update.Base == nil {
		return nil
	}

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.NAME) {
			p.skipToStatementBoundary()
			return nil
		}
		field := &ast.RecordUpdateField{Token: p.curToken, Label: p.curToken.Lexeme}
		if !p.expectPeek(token.COLON) {
			p.skipToStatementBoundary()
			return nil
		}
		p.nextToken()
		field.Value = p.parseExpression(LOWEST)
		if field.Value == nil {
			return nil
		}
		update.Fields = append(update.Fields, field)
	}

	if !p.expectPeek(token.RPAREN) {
		p.skipToStatementBoundary()
		return nil
	}
	return update
}

// parseAccessExpression handles value.label, pair.0 and module.Ctor.
// curToken is '.' on entry.
func (p *Parser) parseAccessExpression(left ast.Expression) ast.Expression {
	dot := p.curToken

	switch p.peekToken.Type {
	case token.INT:
		p.nextToken()
		index, ok := p.curToken.Literal.(int64)
		if !ok {
			p.addError(diagnostics.ErrP003, p.curToken,
				"could not parse "+p.curToken.Lexeme+" as tuple index")
			return nil
		}
		return &ast.TupleIndex{Token: dot, Container: left, Index: int(index)}
	case token.NAME:
		p.nextToken()
		return &ast.FieldAccess{Token: dot, Container: left, Label: p.curToken.Lexeme}
	case token.UPNAME:
		p.nextToken()
		if module, ok := left.(*ast.Identifier); ok {
			return &ast.Constructor{Token: p.curToken, Module: module.Value, Name: p.curToken.Lexeme}
		}
		p.addError(diagnostics.ErrP001, p.curToken,
			"constructors can only be qualified with a module name")
		return nil
	default:
		p.addError(diagnostics.ErrP001, p.peekToken,
			fmt.Sprintf("expected a label or tuple index after ., got %s", p.peekToken.Type))
		return nil
	}
}

func (p *Parser) parsePipelineExpression(left ast.Expression) ast.Expression {
	pipe, ok := left.(*ast.PipelineExpression)
	if !ok {
		pipe = &ast.PipelineExpression{Token: p.curToken, First: left}
	}

	p.nextToken()
	stage := p.parseExpression(PIPELINE)
	if stage == nil {
		return nil
	}
	pipe.Stages = append(pipe.Stages, stage)
	return pipe
}
