package parser

import (
	"fmt"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/token"
)

// parsePattern parses one pattern. curToken is the first token of the
// pattern on entry and the last on exit.
func (p *Parser) parsePattern() ast.Pattern {
	switch p.curToken.Type {
	case token.NAME:
		// A lowercase name followed by .Ctor is a module qualifier.
		if p.peekTokenIs(token.DOT) {
			module := p.curToken.Lexeme
			p.nextToken()
			if !p.expectPeek(token.UPNAME) {
				return nil
			}
			return p.parseConstructorPattern(module)
		}
		return &ast.VariablePattern{Token: p.curToken, Name: p.curToken.Lexeme}
	case token.DISCARD:
		return &ast.DiscardPattern{Token: p.curToken, Name: p.curToken.Lexeme}
	case token.INT:
		value, _ := p.curToken.Literal.(int64)
		return &ast.IntPattern{Token: p.curToken, Value: value}
	case token.FLOAT:
		value, _ := p.curToken.Literal.(float64)
		return &ast.FloatPattern{Token: p.curToken, Value: value}
	case token.STRING:
		value, _ := p.curToken.Literal.(string)
		return &ast.StringPattern{Token: p.curToken, Value: value}
	case token.MINUS:
		tok := p.curToken
		if p.peekTokenIs(token.INT) {
			p.nextToken()
			value, _ := p.curToken.Literal.(int64)
			return &ast.IntPattern{Token: tok, Value: -value}
		}
		if p.peekTokenIs(token.FLOAT) {
			p.nextToken()
			value, _ := p.curToken.Literal.(float64)
			return &ast.FloatPattern{Token: tok, Value: -value}
		}
		p.addError(diagnostics.ErrP005, p.peekToken,
			fmt.Sprintf("expected a number after - in pattern, got %s", p.peekToken.Type))
		return nil
	case token.UPNAME:
		return p.parseConstructorPattern("")
	case token.HASH:
		return p.parseTuplePattern()
	default:
		p.addError(diagnostics.ErrP005, p.curToken,
			fmt.Sprintf("expected a pattern, got %s", p.curToken.Type))
		return nil
	}
}

// parseConstructorPattern parses Ctor or Ctor(pat, ...). curToken is the
// UPNAME on entry.
func (p *Parser) parseConstructorPattern(module string) ast.Pattern {
	pattern := &ast.ConstructorPattern{Token: p.curToken, Module: module, Name: p.curToken.Lexeme}

	if !p.peekTokenIs(token.LPAREN) {
		return pattern
	}
	p.nextToken()

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return pattern
	}

	for {
		p.nextToken()
		arg := p.parsePattern()
		if arg == nil {
			return nil
		}
		pattern.Args = append(pattern.Args, arg)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return pattern
}

// parseTuplePattern parses #(pat, ...). curToken is '#' on entry.
func (p *Parser) parseTuplePattern() ast.Pattern {
	pattern := &ast.TuplePattern{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return pattern
	}

	for {
		p.nextToken()
		element := p.parsePattern()
		if element == nil {
			return nil
		}
		pattern.Elements = append(pattern.Elements, element)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return pattern
}
