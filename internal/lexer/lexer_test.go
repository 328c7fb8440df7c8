package lexer

import (
	"testing"

	"github.com/corvid-lang/corvid/internal/token"
)

func collect(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestNextTokenBasics(t *testing.T) {
	input := `pub fn add(a: Int, b: Int) -> Int {
  a + b
}`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
	}{
		{token.PUB, "pub"},
		{token.FN, "fn"},
		{token.NAME, "add"},
		{token.LPAREN, "("},
		{token.NAME, "a"},
		{token.COLON, ":"},
		{token.UPNAME, "Int"},
		{token.COMMA, ","},
		{token.NAME, "b"},
		{token.COLON, ":"},
		{token.UPNAME, "Int"},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.UPNAME, "Int"},
		{token.LBRACE, "{"},
		{token.NAME, "a"},
		{token.PLUS, "+"},
		{token.NAME, "b"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - wrong token type. expected=%q, got=%q (%q)", i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - wrong lexeme. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestEarlyReturnToken(t *testing.T) {
	toks := collect("$return 42")
	if toks[0].Type != token.EARLY_RETURN {
		t.Fatalf("expected EARLY_RETURN, got %q", toks[0].Type)
	}
	if toks[0].Lexeme != "$return" {
		t.Fatalf("expected lexeme $return, got %q", toks[0].Lexeme)
	}
	if toks[0].Start != 0 || toks[0].End != 7 {
		t.Fatalf("expected span [0,7), got [%d,%d)", toks[0].Start, toks[0].End)
	}
	if toks[1].Type != token.INT {
		t.Fatalf("expected INT after keyword, got %q", toks[1].Type)
	}
}

func TestEarlyReturnAtEndOfInput(t *testing.T) {
	toks := collect("$return")
	if toks[0].Type != token.EARLY_RETURN {
		t.Fatalf("expected EARLY_RETURN, got %q", toks[0].Type)
	}
	if toks[1].Type != token.EOF {
		t.Fatalf("expected EOF, got %q", toks[1].Type)
	}
}

func TestEarlyReturnBeforePunctuation(t *testing.T) {
	// Punctuation is a valid boundary: `$return(x)` is keyword + call-less
	// parenthesised expression.
	toks := collect("$return(x)")
	expected := []token.TokenType{token.EARLY_RETURN, token.LPAREN, token.NAME, token.RPAREN, token.EOF}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Fatalf("tokens[%d]: expected %q, got %q", i, want, toks[i].Type)
		}
	}
}

func TestEarlyReturnDoesNotFireInsideIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		types []token.TokenType
	}{
		// Trailing identifier characters break the keyword.
		{"$returned", []token.TokenType{token.ILLEGAL, token.NAME, token.EOF}},
		{"$return2", []token.TokenType{token.ILLEGAL, token.NAME, token.EOF}},
		{"$return_", []token.TokenType{token.ILLEGAL, token.NAME, token.EOF}},
		// A truncated lexeme is just an illegal dollar sign.
		{"$ret", []token.TokenType{token.ILLEGAL, token.NAME, token.EOF}},
		{"$", []token.TokenType{token.ILLEGAL, token.EOF}},
		// Plain `return` is an ordinary name, never a keyword.
		{"return", []token.TokenType{token.NAME, token.EOF}},
		{"my_return", []token.TokenType{token.NAME, token.EOF}},
	}

	for _, tt := range tests {
		toks := collect(tt.input)
		if len(toks) != len(tt.types) {
			t.Fatalf("%q: expected %d tokens, got %d", tt.input, len(tt.types), len(toks))
		}
		for i, want := range tt.types {
			if toks[i].Type != want {
				t.Fatalf("%q tokens[%d]: expected %q, got %q", tt.input, i, want, toks[i].Type)
			}
		}
	}
}

func TestOperators(t *testing.T) {
	input := "<< >> |> <- -> .. <> == != <= >= && || < > ! % *"
	expected := []token.TokenType{
		token.LT_LT, token.GT_GT, token.PIPE_GT, token.L_ARROW, token.ARROW,
		token.DOT_DOT, token.CONCAT, token.EQ, token.NOT_EQ, token.LTE,
		token.GTE, token.AND, token.OR, token.LT, token.GT, token.BANG,
		token.PERCENT, token.STAR, token.EOF,
	}

	toks := collect(input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Fatalf("tokens[%d]: expected %q, got %q (%q)", i, want, toks[i].Type, toks[i].Lexeme)
		}
	}
}

func TestNumbers(t *testing.T) {
	toks := collect("42 3.25 pair.0")

	if toks[0].Type != token.INT || toks[0].Literal.(int64) != 42 {
		t.Fatalf("expected INT 42, got %q %v", toks[0].Type, toks[0].Literal)
	}
	if toks[1].Type != token.FLOAT || toks[1].Literal.(float64) != 3.25 {
		t.Fatalf("expected FLOAT 3.25, got %q %v", toks[1].Type, toks[1].Literal)
	}
	// Tuple access stays three tokens, not a float.
	expected := []token.TokenType{token.NAME, token.DOT, token.INT}
	for i, want := range expected {
		if toks[2+i].Type != want {
			t.Fatalf("tokens[%d]: expected %q, got %q", 2+i, want, toks[2+i].Type)
		}
	}
}

func TestStringsAndEscapes(t *testing.T) {
	toks := collect(`"hello" "a\nb" "say \"hi\""`)

	if toks[0].Literal.(string) != "hello" {
		t.Fatalf("expected hello, got %q", toks[0].Literal)
	}
	if toks[1].Literal.(string) != "a\nb" {
		t.Fatalf("expected escaped newline, got %q", toks[1].Literal)
	}
	if toks[2].Literal.(string) != `say "hi"` {
		t.Fatalf("expected escaped quotes, got %q", toks[2].Literal)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	input := `let x = 1 // trailing comment with $return inside
let y = 2`
	toks := collect(input)
	expected := []token.TokenType{
		token.LET, token.NAME, token.ASSIGN, token.INT,
		token.LET, token.NAME, token.ASSIGN, token.INT,
		token.EOF,
	}
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Fatalf("tokens[%d]: expected %q, got %q", i, want, toks[i].Type)
		}
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	toks := collect("let\n  x")
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Fatalf("let: expected 1:1, got %d:%d", toks[0].Line, toks[0].Column)
	}
	if toks[1].Line != 2 || toks[1].Column != 3 {
		t.Fatalf("x: expected 2:3, got %d:%d", toks[1].Line, toks[1].Column)
	}
}

func TestByteSpans(t *testing.T) {
	toks := collect("case $return")
	if toks[0].Start != 0 || toks[0].End != 4 {
		t.Fatalf("case: expected span [0,4), got [%d,%d)", toks[0].Start, toks[0].End)
	}
	if toks[1].Start != 5 || toks[1].End != 12 {
		t.Fatalf("$return: expected span [5,12), got [%d,%d)", toks[1].Start, toks[1].End)
	}
}
