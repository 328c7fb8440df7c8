package parser

import (
	"fmt"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/token"
)

// parseTypeAnnotation parses a type expression. curToken is the first token
// of the type on entry and the last on exit.
func (p *Parser) parseTypeAnnotation() ast.TypeAnnotation {
	switch p.curToken.Type {
	case token.UPNAME:
		return p.parseNamedType("")
	case token.NAME:
		// module.Type or a lowercase type variable.
		if p.peekTokenIs(token.DOT) {
			module := p.curToken.Lexeme
			p.nextToken()
			if !p.expectPeek(token.UPNAME) {
				return nil
			}
			return p.parseNamedType(module)
		}
		return &ast.NamedType{Token: p.curToken, Name: p.curToken.Lexeme}
	case token.HASH:
		return p.parseTupleType()
	case token.FN:
		return p.parseFnType()
	default:
		p.addError(diagnostics.ErrP007, p.curToken,
			fmt.Sprintf("expected a type, got %s", p.curToken.Type))
		return nil
	}
}

// parseNamedType parses Name or Name(args). curToken is the UPNAME on
// entry.
func (p *Parser) parseNamedType(module string) ast.TypeAnnotation {
	named := &ast.NamedType{Token: p.curToken, Module: module, Name: p.curToken.Lexeme}

	if !p.peekTokenIs(token.LPAREN) {
		return named
	}
	p.nextToken()

	for {
		p.nextToken()
		arg := p.parseTypeAnnotation()
		if arg == nil {
			return nil
		}
		named.Args = append(named.Args, arg)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return named
}

// parseTupleType parses #(A, B). curToken is '#' on entry.
func (p *Parser) parseTupleType() ast.TypeAnnotation {
	tuple := &ast.TupleType{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return tuple
	}

	for {
		p.nextToken()
		element := p.parseTypeAnnotation()
		if element == nil {
			return nil
		}
		tuple.Elements = append(tuple.Elements, element)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return tuple
}

// parseFnType parses fn(A, B) -> C. curToken is 'fn' on entry.
func (p *Parser) parseFnType() ast.TypeAnnotation {
	fnType := &ast.FnType{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	if !p.peekTokenIs(token.RPAREN) {
		for {
			p.nextToken()
			param := p.parseTypeAnnotation()
			if param == nil {
				return nil
			}
			fnType.Params = append(fnType.Params, param)

			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		fnType.ReturnType = p.parseTypeAnnotation()
		if fnType.ReturnType == nil {
			return nil
		}
	}
	return fnType
}
