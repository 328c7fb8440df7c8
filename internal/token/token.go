package token

type TokenType string

// Token is a single lexeme with its position in the source buffer.
// Start/End are byte offsets (half-open); Line/Column are 1-based and
// used for diagnostics only.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // int64 for INT, float64 for FLOAT, string for STRING
	Start   int
	End     int
	Line    int
	Column  int
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	NAME    TokenType = "NAME"    // lowercase: variables, functions, labels
	UPNAME  TokenType = "UPNAME"  // uppercase: types, constructors
	DISCARD TokenType = "DISCARD" // _, _name
	INT     TokenType = "INT"     // 123
	FLOAT   TokenType = "FLOAT"   // 1.5
	STRING  TokenType = "STRING"  // "abc"

	// Keywords
	FN     TokenType = "FN"
	PUB    TokenType = "PUB"
	CASE   TokenType = "CASE"
	LET    TokenType = "LET"
	USE    TokenType = "USE"
	ASSERT TokenType = "ASSERT"
	ECHO   TokenType = "ECHO"
	TODO   TokenType = "TODO"
	PANIC  TokenType = "PANIC"
	CONST  TokenType = "CONST"
	TYPE   TokenType = "TYPE"
	IMPORT TokenType = "IMPORT"
	AS     TokenType = "AS"

	// The early-return keyword, `$return`. Lexed only when the exact
	// lexeme appears at an identifier boundary.
	EARLY_RETURN TokenType = "EARLY_RETURN"

	// Punctuation
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"
	COMMA    TokenType = ","
	COLON    TokenType = ":"
	DOT      TokenType = "."
	DOT_DOT  TokenType = ".."
	HASH     TokenType = "#"
	ARROW    TokenType = "->"
	L_ARROW  TokenType = "<-"
	PIPE_GT  TokenType = "|>"
	LT_LT    TokenType = "<<"
	GT_GT    TokenType = ">>"

	// Operators
	ASSIGN  TokenType = "="
	PLUS    TokenType = "+"
	MINUS   TokenType = "-"
	STAR    TokenType = "*"
	SLASH   TokenType = "/"
	PERCENT TokenType = "%"
	CONCAT  TokenType = "<>"
	EQ      TokenType = "=="
	NOT_EQ  TokenType = "!="
	LT      TokenType = "<"
	GT      TokenType = ">"
	LTE     TokenType = "<="
	GTE     TokenType = ">="
	AND     TokenType = "&&"
	OR      TokenType = "||"
	BANG    TokenType = "!"
)

var keywords = map[string]TokenType{
	"fn":     FN,
	"pub":    PUB,
	"case":   CASE,
	"let":    LET,
	"use":    USE,
	"assert": ASSERT,
	"echo":   ECHO,
	"todo":   TODO,
	"panic":  PANIC,
	"const":  CONST,
	"type":   TYPE,
	"import": IMPORT,
	"as":     AS,
}

// LookupIdent returns the keyword token type for ident, or NAME.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return NAME
}
