package parser

import (
	"fmt"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/config"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/pipeline"
	"github.com/corvid-lang/corvid/internal/token"
)

const MaxRecursionDepth = config.MaxRecursionDepth

// Operator precedences, lowest binds loosest.
const (
	_ int = iota
	LOWEST
	PIPELINE    // |>
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + - <>
	PRODUCT     // * / %
	PREFIX      // -x !x
	CALL        // f(x)
	ACCESS      // value.label pair.0
)

var precedences = map[token.TokenType]int{
	token.PIPE_GT: PIPELINE,
	token.OR:      OR,
	token.AND:     AND,
	token.EQ:      EQUALS,
	token.NOT_EQ:  EQUALS,
	token.LT:      LESSGREATER,
	token.GT:      LESSGREATER,
	token.LTE:     LESSGREATER,
	token.GTE:     LESSGREATER,
	token.PLUS:    SUM,
	token.MINUS:   SUM,
	token.CONCAT:  SUM,
	token.STAR:    PRODUCT,
	token.SLASH:   PRODUCT,
	token.PERCENT: PRODUCT,
	token.LPAREN:  CALL,
	token.DOT:     ACCESS,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens   []token.Token
	position int

	curToken  token.Token
	peekToken token.Token

	ctx *pipeline.PipelineContext

	// fnDepth counts enclosing function bodies; $return is only legal when
	// it is positive.
	fnDepth int

	depth               int
	inRecursionRecovery bool

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.NAME, p.parseIdentifier)
	p.registerPrefix(token.UPNAME, p.parseConstructor)
	p.registerPrefix(token.DISCARD, p.parseDiscardReference)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACE, p.parseBlockExpression)
	p.registerPrefix(token.LBRACKET, p.parseListLiteral)
	p.registerPrefix(token.HASH, p.parseTupleLiteral)
	p.registerPrefix(token.LT_LT, p.parseBitArrayLiteral)
	p.registerPrefix(token.CASE, p.parseCaseExpression)
	p.registerPrefix(token.FN, p.parseFunctionLiteral)
	p.registerPrefix(token.ECHO, p.parseEchoExpression)
	p.registerPrefix(token.TODO, p.parseTodoExpression)
	p.registerPrefix(token.PANIC, p.parsePanicExpression)
	p.registerPrefix(token.EARLY_RETURN, p.parseEarlyReturn)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, op := range []token.TokenType{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.CONCAT, token.EQ, token.NOT_EQ, token.LT, token.GT,
		token.LTE, token.GTE, token.AND, token.OR,
	} {
		p.registerInfix(op, p.parseInfixExpression)
	}
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.DOT, p.parseAccessExpression)
	p.registerInfix(token.PIPE_GT, p.parsePipelineExpression)

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.position < len(p.tokens) {
		p.peekToken = p.tokens[p.position]
		p.position++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, message string) {
	err := diagnostics.NewError(code, tok, message)
	err.File = p.ctx.FilePath
	p.ctx.Errors = append(p.ctx.Errors, err)
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError(diagnostics.ErrP002, p.peekToken,
		fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type))
}

func (p *Parser) noPrefixParseFnError(t token.TokenType) {
	p.addError(diagnostics.ErrP001, p.curToken,
		fmt.Sprintf("unexpected token %s in expression", t))
}

// canStartExpression reports whether a token could begin an expression.
// Used to decide if optional trailing expressions (after echo, $return) are
// present.
func (p *Parser) canStartExpression(t token.TokenType) bool {
	_, ok := p.prefixParseFns[t]
	return ok
}

// skipToStatementBoundary advances past the current broken construct so one
// syntax error does not cascade.
func (p *Parser) skipToStatementBoundary() {
	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.LET, token.USE, token.ASSERT, token.RBRACE,
			token.FN, token.PUB, token.CONST, token.TYPE, token.IMPORT:
			return
		}
		p.nextToken()
	}
}
