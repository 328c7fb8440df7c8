package parser

import (
	"fmt"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/token"
)

// ParseModule parses a whole compilation unit.
func (p *Parser) ParseModule() *ast.Module {
	module := &ast.Module{}

	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.IMPORT:
			if imp := p.parseImport(); imp != nil {
				module.Imports = append(module.Imports, imp)
			}
		case token.PUB:
			if stmt := p.parsePublicStatement(); stmt != nil {
				module.Statements = append(module.Statements, stmt)
			}
		case token.FN:
			if fn := p.parseNamedFunction(false); fn != nil {
				module.Statements = append(module.Statements, fn)
			}
		case token.CONST:
			if c := p.parseConstant(false); c != nil {
				module.Statements = append(module.Statements, c)
			}
		case token.TYPE:
			if t := p.parseCustomType(false); t != nil {
				module.Statements = append(module.Statements, t)
			}
		case token.EARLY_RETURN:
			// Early return has no function to abort at module level.
			p.addError(diagnostics.ErrP009, p.curToken,
				"$return is only allowed inside a function body")
			p.nextToken()
			p.skipToStatementBoundary()
		case token.ILLEGAL:
			p.nextToken()
		default:
			p.addError(diagnostics.ErrP001, p.curToken,
				fmt.Sprintf("unexpected token %s at module level", p.curToken.Type))
			p.nextToken()
			p.skipToStatementBoundary()
		}
	}

	return module
}

func (p *Parser) parsePublicStatement() ast.ModuleStatement {
	switch p.peekToken.Type {
	case token.FN:
		p.nextToken()
		return p.parseNamedFunction(true)
	case token.CONST:
		p.nextToken()
		return p.parseConstant(true)
	case token.TYPE:
		p.nextToken()
		return p.parseCustomType(true)
	default:
		p.addError(diagnostics.ErrP001, p.peekToken,
			fmt.Sprintf("expected fn, const or type after pub, got %s", p.peekToken.Type))
		p.nextToken()
		p.skipToStatementBoundary()
		return nil
	}
}

func (p *Parser) parseImport() *ast.Import {
	imp := &ast.Import{Token: p.curToken}

	if !p.expectPeek(token.STRING) {
		p.skipToStatementBoundary()
		return nil
	}
	value, _ := p.curToken.Literal.(string)
	imp.Path = &ast.StringLiteral{Token: p.curToken, Value: value}

	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.NAME) {
			p.skipToStatementBoundary()
			return nil
		}
		imp.Alias = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	}

	p.nextToken()
	return imp
}

// parseNamedFunction parses fn name(params) -> Type { body }. curToken is
// the fn keyword on entry.
func (p *Parser) parseNamedFunction(public bool) *ast.Function {
	fn := &ast.Function{Token: p.curToken, Public: public}

	if !p.expectPeek(token.NAME) {
		p.skipToStatementBoundary()
		return nil
	}
	fn.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.LPAREN) {
		p.skipToStatementBoundary()
		return nil
	}
	fn.Parameters = p.parseFunctionParameters()

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		fn.ReturnType = p.parseTypeAnnotation()
	}

	if !p.expectPeek(token.LBRACE) {
		p.skipToStatementBoundary()
		return nil
	}

	p.fnDepth++
	fn.Body = p.parseStatementsUntilRBrace()
	p.fnDepth--
	fn.EndToken = p.curToken

	p.nextToken()
	return fn
}

// parseFunctionParameters parses (a: Int, _b: Float). curToken is '(' on
// entry and ')' on exit.
func (p *Parser) parseFunctionParameters() []*ast.Parameter {
	var params []*ast.Parameter

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		p.nextToken()
		param := &ast.Parameter{Token: p.curToken}
		switch p.curToken.Type {
		case token.NAME:
			param.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		case token.DISCARD:
			param.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
			param.IsIgnored = true
		default:
			p.addError(diagnostics.ErrP001, p.curToken,
				fmt.Sprintf("expected parameter name, got %s", p.curToken.Type))
			p.skipToStatementBoundary()
			return params
		}

		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			param.Type = p.parseTypeAnnotation()
		}
		params = append(params, param)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		p.skipToStatementBoundary()
	}
	return params
}

func (p *Parser) parseConstant(public bool) *ast.ConstantDeclaration {
	c := &ast.ConstantDeclaration{Token: p.curToken, Public: public}

	if !p.expectPeek(token.NAME) {
		p.skipToStatementBoundary()
		return nil
	}
	c.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		c.TypeAnnotation = p.parseTypeAnnotation()
	}

	if !p.expectPeek(token.ASSIGN) {
		p.skipToStatementBoundary()
		return nil
	}
	p.nextToken()
	c.Value = p.parseExpression(LOWEST)

	p.nextToken()
	return c
}

func (p *Parser) parseCustomType(public bool) *ast.CustomTypeDeclaration {
	td := &ast.CustomTypeDeclaration{Token: p.curToken, Public: public}

	if !p.expectPeek(token.UPNAME) {
		p.skipToStatementBoundary()
		return nil
	}
	td.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	// Optional type parameters: type Wrap(a) { ... }
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		for {
			if !p.expectPeek(token.NAME) {
				p.skipToStatementBoundary()
				return nil
			}
			td.TypeParams = append(td.TypeParams, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.expectPeek(token.RPAREN) {
			p.skipToStatementBoundary()
			return nil
		}
	}

	if !p.expectPeek(token.LBRACE) {
		p.skipToStatementBoundary()
		return nil
	}

	for p.peekTokenIs(token.UPNAME) {
		p.nextToken()
		ctor := &ast.TypeConstructor{Token: p.curToken, Name: p.curToken.Lexeme}
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			ctor.Fields = p.parseConstructorFields()
		}
		td.Constructors = append(td.Constructors, ctor)
	}

	if !p.expectPeek(token.RBRACE) {
		p.skipToStatementBoundary()
		return nil
	}
	p.nextToken()
	return td
}

func (p *Parser) parseConstructorFields() []*ast.ConstructorField {
	var fields []*ast.ConstructorField

	for {
		p.nextToken()
		field := &ast.ConstructorField{Token: p.curToken}
		// label: Type or just Type.
		if p.curTokenIs(token.NAME) && p.peekTokenIs(token.COLON) {
			field.Label = p.curToken.Lexeme
			p.nextToken()
			p.nextToken()
		}
		field.Type = p.parseTypeAnnotation()
		fields = append(fields, field)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		p.skipToStatementBoundary()
	}
	return fields
}

// parseStatementsUntilRBrace parses a function or block body. curToken is
// '{' on entry and '}' on exit.
func (p *Parser) parseStatementsUntilRBrace() []ast.Statement {
	var statements []ast.Statement

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			statements = append(statements, stmt)
		}
	}

	if p.curTokenIs(token.EOF) {
		p.addError(diagnostics.ErrP002, p.curToken, "expected } to close block")
	}
	return statements
}

// parseStatement parses one body statement and leaves curToken on the first
// token after it.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.USE:
		return p.parseUseStatement()
	case token.ASSERT:
		return p.parseAssertStatement()
	case token.ILLEGAL:
		p.nextToken()
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() *ast.LetStatement {
	stmt := &ast.LetStatement{Token: p.curToken}

	p.nextToken()
	stmt.Pattern = p.parsePattern()
	if stmt.Pattern == nil {
		p.skipToStatementBoundary()
		return nil
	}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		stmt.Annotation = p.parseTypeAnnotation()
	}

	if !p.expectPeek(token.ASSIGN) {
		p.skipToStatementBoundary()
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		p.skipToStatementBoundary()
		return nil
	}

	p.nextToken()
	return stmt
}

func (p *Parser) parseUseStatement() *ast.UseStatement {
	stmt := &ast.UseStatement{Token: p.curToken}

	// use <- f() binds nothing; otherwise patterns are comma separated.
	if !p.peekTokenIs(token.L_ARROW) {
		for {
			p.nextToken()
			pat := p.parsePattern()
			if pat == nil {
				p.skipToStatementBoundary()
				return nil
			}
			stmt.Patterns = append(stmt.Patterns, pat)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
	}

	if !p.expectPeek(token.L_ARROW) {
		p.skipToStatementBoundary()
		return nil
	}
	p.nextToken()
	stmt.Call = p.parseExpression(LOWEST)
	if stmt.Call == nil {
		p.skipToStatementBoundary()
		return nil
	}

	p.nextToken()
	return stmt
}

func (p *Parser) parseAssertStatement() *ast.AssertStatement {
	stmt := &ast.AssertStatement{Token: p.curToken}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		p.skipToStatementBoundary()
		return nil
	}

	if p.peekTokenIs(token.AS) {
		p.nextToken()
		p.nextToken()
		stmt.Message = p.parseExpression(LOWEST)
	}

	p.nextToken()
	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}

	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		p.nextToken()
		return nil
	}

	p.nextToken()
	return stmt
}
