package parser

import (
	"strconv"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		if !p.inRecursionRecovery {
			p.addError(diagnostics.ErrP006, p.curToken,
				"expression too complex: recursion depth limit exceeded")
			p.inRecursionRecovery = true
		}
		// Skip the rest of the statement to avoid a cascade of errors.
		p.skipToStatementBoundary()
		p.inRecursionRecovery = false
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseConstructor() ast.Expression {
	return &ast.Constructor{Token: p.curToken, Name: p.curToken.Lexeme}
}

func (p *Parser) parseDiscardReference() ast.Expression {
	p.addError(diagnostics.ErrP001, p.curToken,
		"discard name "+p.curToken.Lexeme+" cannot be used as a value")
	return nil
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curToken}
	if value, ok := p.curToken.Literal.(int64); ok {
		lit.Value = value
		return lit
	}
	value, err := strconv.ParseInt(p.curToken.Lexeme, 10, 64)
	if err != nil {
		p.addError(diagnostics.ErrP003, p.curToken,
			"could not parse "+p.curToken.Lexeme+" as integer")
		return nil
	}
	lit.Value = value
	return lit
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	lit := &ast.FloatLiteral{Token: p.curToken}
	if value, ok := p.curToken.Literal.(float64); ok {
		lit.Value = value
		return lit
	}
	value, err := strconv.ParseFloat(p.curToken.Lexeme, 64)
	if err != nil {
		p.addError(diagnostics.ErrP003, p.curToken,
			"could not parse "+p.curToken.Lexeme+" as float")
		return nil
	}
	lit.Value = value
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(string)
	return &ast.StringLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Lexeme}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Lexeme,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseBlockExpression() ast.Expression {
	block := &ast.BlockExpression{Token: p.curToken}
	block.Statements = p.parseStatementsUntilRBrace()
	block.RBraceToken = p.curToken
	return block
}
