package parser

import (
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/token"
)

// parseEarlyReturn parses $return value. curToken is the keyword on entry.
func (p *Parser) parseEarlyReturn() ast.Expression {
	keyword := p.curToken

	if p.fnDepth == 0 {
		p.addError(diagnostics.ErrP009, keyword,
			"$return is only allowed inside a function body")
	}

	if !p.canStartExpression(p.peekToken.Type) {
		p.addError(diagnostics.ErrP008, keyword,
			"expected an expression after $return")
		return nil
	}

	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.EarlyReturnExpression{Token: keyword, Value: value}
}

func (p *Parser) parseCaseExpression() ast.Expression {
	ce := &ast.CaseExpression{Token: p.curToken}

	for {
		p.nextToken()
		subject := p.parseExpression(LOWEST)
		if subject == nil {
			p.skipToStatementBoundary()
			return nil
		}
		ce.Subjects = append(ce.Subjects, subject)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.LBRACE) {
		p.skipToStatementBoundary()
		return nil
	}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		clause := &ast.CaseClause{Token: p.curToken}

		for {
			pattern := p.parsePattern()
			if pattern == nil {
				p.skipToStatementBoundary()
				return nil
			}
			clause.Patterns = append(clause.Patterns, pattern)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
			p.nextToken()
		}

		if !p.expectPeek(token.ARROW) {
			p.skipToStatementBoundary()
			return nil
		}
		p.nextToken()
		clause.Body = p.parseExpression(LOWEST)
		if clause.Body == nil {
			p.skipToStatementBoundary()
			return nil
		}
		ce.Clauses = append(ce.Clauses, clause)
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return ce
}

// parseFunctionLiteral parses fn(a, b) { body }. Anonymous functions open a
// fresh early-return scope.
func (p *Parser) parseFunctionLiteral() ast.Expression {
	fl := &ast.FunctionLiteral{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	fl.Parameters = p.parseFunctionParameters()

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		fl.ReturnType = p.parseTypeAnnotation()
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	p.fnDepth++
	fl.Body = p.parseStatementsUntilRBrace()
	p.fnDepth--

	return fl
}

func (p *Parser) parseEchoExpression() ast.Expression {
	ee := &ast.EchoExpression{Token: p.curToken}

	// Bare echo is the pipeline-stage form: the value flows in via |>.
	if p.canStartExpression(p.peekToken.Type) {
		p.nextToken()
		ee.Expression = p.parseExpression(LOWEST)
		if ee.Expression == nil {
			return nil
		}
	}

	if p.peekTokenIs(token.AS) {
		p.nextToken()
		p.nextToken()
		ee.Message = p.parseExpression(LOWEST)
		if ee.Message == nil {
			return nil
		}
	}
	return ee
}

func (p *Parser) parseTodoExpression() ast.Expression {
	te := &ast.TodoExpression{Token: p.curToken}
	if p.peekTokenIs(token.AS) {
		p.nextToken()
		p.nextToken()
		te.Message = p.parseExpression(LOWEST)
		if te.Message == nil {
			return nil
		}
	}
	return te
}

func (p *Parser) parsePanicExpression() ast.Expression {
	pe := &ast.PanicExpression{Token: p.curToken}
	if p.peekTokenIs(token.AS) {
		p.nextToken()
		p.nextToken()
		pe.Message = p.parseExpression(LOWEST)
		if pe.Message == nil {
			return nil
		}
	}
	return pe
}
