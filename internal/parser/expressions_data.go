package parser

import (
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/token"
)

func (p *Parser) parseListLiteral() ast.Expression {
	list := &ast.ListLiteral{Token: p.curToken}

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return list
	}

	for {
		p.nextToken()
		if p.curTokenIs(token.DOT_DOT) {
			p.nextToken()
			list.Tail = p.parseExpression(LOWEST)
			if list.Tail == nil {
				return nil
			}
			break
		}

		element := p.parseExpression(LOWEST)
		if element == nil {
			return nil
		}
		list.Elements = append(list.Elements, element)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RBRACKET) {
		p.skipToStatementBoundary()
		return nil
	}
	return list
}

func (p *Parser) parseTupleLiteral() ast.Expression {
	tuple := &ast.TupleLiteral{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return tuple
	}

	for {
		p.nextToken()
		element := p.parseExpression(LOWEST)
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
		p.skipToStatementBoundary()
		return nil
	}
	return tuple
}

func (p *Parser) parseBitArrayLiteral() ast.Expression {
	arr := &ast.BitArrayLiteral{Token: p.curToken}

	if p.peekTokenIs(token.GT_GT) {
		p.nextToken()
		return arr
	}

	for {
		p.nextToken()
		segment := p.parseBitArraySegment()
		if segment == nil {
			return nil
		}
		arr.Segments = append(arr.Segments, segment)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.GT_GT) {
		p.skipToStatementBoundary()
		return nil
	}
	return arr
}

// parseBitArraySegment parses value[:option[-option...]].
func (p *Parser) parseBitArraySegment() *ast.BitArraySegment {
	segment := &ast.BitArraySegment{Token: p.curToken}

	segment.Value = p.parseExpression(LOWEST)
	if segment.Value == nil {
		return nil
	}

	if !p.peekTokenIs(token.COLON) {
		return segment
	}
	p.nextToken()

	for {
		p.nextToken()
		option := p.parseSegmentOption()
		if option == nil {
			return nil
		}
		segment.Options = append(segment.Options, option)

		if !p.peekTokenIs(token.MINUS) {
			break
		}
		p.nextToken()
	}
	return segment
}

// parseSegmentOption parses one segment option: a bare name (big, utf8), a
// sized name (size(8), unit(1)), or the numeric shorthand for size.
func (p *Parser) parseSegmentOption() *ast.SegmentOption {
	switch p.curToken.Type {
	case token.INT:
		value := p.parseIntegerLiteral()
		if value == nil {
			return nil
		}
		return &ast.SegmentOption{Token: p.curToken, Name: "size", Value: value}
	case token.NAME:
		option := &ast.SegmentOption{Token: p.curToken, Name: p.curToken.Lexeme}
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			p.nextToken()
			option.Value = p.parseExpression(LOWEST)
			if option.Value == nil {
				return nil
			}
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
		}
		return option
	default:
		p.addError(diagnostics.ErrP001, p.curToken,
			"expected a bit array segment option, got "+string(p.curToken.Type))
		return nil
	}
}
