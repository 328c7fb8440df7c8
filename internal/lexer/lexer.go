package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/corvid-lang/corvid/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	start := l.position
	if start > len(l.input) {
		start = len(l.input)
	}
	line, column := l.line, l.column

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			return l.emit(token.EQ, "==", start, line, column)
		}
		return l.emit(token.ASSIGN, "=", start, line, column)
	case '+':
		return l.emit(token.PLUS, "+", start, line, column)
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			return l.emit(token.ARROW, "->", start, line, column)
		}
		return l.emit(token.MINUS, "-", start, line, column)
	case '*':
		return l.emit(token.STAR, "*", start, line, column)
	case '/':
		return l.emit(token.SLASH, "/", start, line, column)
	case '%':
		return l.emit(token.PERCENT, "%", start, line, column)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			return l.emit(token.NOT_EQ, "!=", start, line, column)
		}
		return l.emit(token.BANG, "!", start, line, column)
	case '<':
		switch l.peekChar() {
		case '<':
			l.readChar()
			return l.emit(token.LT_LT, "<<", start, line, column)
		case '-':
			l.readChar()
			return l.emit(token.L_ARROW, "<-", start, line, column)
		case '=':
			l.readChar()
			return l.emit(token.LTE, "<=", start, line, column)
		case '>':
			l.readChar()
			return l.emit(token.CONCAT, "<>", start, line, column)
		}
		return l.emit(token.LT, "<", start, line, column)
	case '>':
		switch l.peekChar() {
		case '>':
			l.readChar()
			return l.emit(token.GT_GT, ">>", start, line, column)
		case '=':
			l.readChar()
			return l.emit(token.GTE, ">=", start, line, column)
		}
		return l.emit(token.GT, ">", start, line, column)
	case '|':
		switch l.peekChar() {
		case '|':
			l.readChar()
			return l.emit(token.OR, "||", start, line, column)
		case '>':
			l.readChar()
			return l.emit(token.PIPE_GT, "|>", start, line, column)
		}
		return l.emit(token.ILLEGAL, "|", start, line, column)
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			return l.emit(token.AND, "&&", start, line, column)
		}
		return l.emit(token.ILLEGAL, "&", start, line, column)
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			return l.emit(token.DOT_DOT, "..", start, line, column)
		}
		return l.emit(token.DOT, ".", start, line, column)
	case '#':
		return l.emit(token.HASH, "#", start, line, column)
	case ',':
		return l.emit(token.COMMA, ",", start, line, column)
	case ':':
		return l.emit(token.COLON, ":", start, line, column)
	case '(':
		return l.emit(token.LPAREN, "(", start, line, column)
	case ')':
		return l.emit(token.RPAREN, ")", start, line, column)
	case '{':
		return l.emit(token.LBRACE, "{", start, line, column)
	case '}':
		return l.emit(token.RBRACE, "}", start, line, column)
	case '[':
		return l.emit(token.LBRACKET, "[", start, line, column)
	case ']':
		return l.emit(token.RBRACKET, "]", start, line, column)
	case '$':
		return l.readEarlyReturn(start, line, column)
	case '"':
		return l.readString(start, line, column)
	case 0:
		return token.Token{Type: token.EOF, Lexeme: "", Start: start, End: start, Line: line, Column: column}
	default:
		if isNameStart(l.ch) {
			return l.readIdentifier(start, line, column)
		}
		if isDigit(l.ch) {
			return l.readNumber(start, line, column)
		}
		return l.emit(token.ILLEGAL, string(l.ch), start, line, column)
	}
}

// emit builds a token for a fixed lexeme ending at the current char and
// advances past it.
func (l *Lexer) emit(tokenType token.TokenType, lexeme string, start, line, column int) token.Token {
	l.readChar()
	end := l.position
	if end > len(l.input) {
		end = len(l.input)
	}
	return token.Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: lexeme,
		Start:   start,
		End:     end,
		Line:    line,
		Column:  column,
	}
}

// readEarlyReturn recognises the exact lexeme `$return`. The token only
// fires when the full word is present and is not followed by another
// identifier character; any other use of '$' is illegal.
func (l *Lexer) readEarlyReturn(start, line, column int) token.Token {
	const lexeme = "$return"
	end := start + len(lexeme)
	if end <= len(l.input) && l.input[start:end] == lexeme {
		next, _ := utf8.DecodeRuneInString(l.input[end:])
		if end == len(l.input) || !isNameContinue(next) {
			for l.position < end {
				l.readChar()
			}
			return token.Token{
				Type:    token.EARLY_RETURN,
				Lexeme:  lexeme,
				Literal: lexeme,
				Start:   start,
				End:     end,
				Line:    line,
				Column:  column,
			}
		}
	}
	return l.emit(token.ILLEGAL, "$", start, line, column)
}

func (l *Lexer) readIdentifier(start, line, column int) token.Token {
	upper := unicode.IsUpper(l.ch)
	discard := l.ch == '_'
	for isNameContinue(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]

	tokenType := token.LookupIdent(lexeme)
	if upper {
		tokenType = token.UPNAME
	} else if discard {
		tokenType = token.DISCARD
	}

	return token.Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: lexeme,
		Start:   start,
		End:     l.position,
		Line:    line,
		Column:  column,
	}
}

func (l *Lexer) readNumber(start, line, column int) token.Token {
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	// A float dot must be followed by a digit so that `pair.0` stays two
	// tokens.
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	lexeme := l.input[start:l.position]
	if isFloat {
		val, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: err.Error(), Start: start, End: l.position, Line: line, Column: column}
		}
		return token.Token{Type: token.FLOAT, Lexeme: lexeme, Literal: val, Start: start, End: l.position, Line: line, Column: column}
	}

	val, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "integer overflow", Start: start, End: l.position, Line: line, Column: column}
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: val, Start: start, End: l.position, Line: line, Column: column}
}

func (l *Lexer) readString(start, line, column int) token.Token {
	var result []byte
	buf := make([]byte, 4)
	for {
		l.readChar()
		if l.ch == '"' {
			break
		}
		if l.ch == 0 {
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:], Literal: "unterminated string", Start: start, End: len(l.input), Line: line, Column: column}
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			case 'r':
				result = append(result, '\r')
			case '\\':
				result = append(result, '\\')
			case '"':
				result = append(result, '"')
			default:
				result = append(result, '\\')
				n := utf8.EncodeRune(buf, l.ch)
				result = append(result, buf[:n]...)
			}
			continue
		}
		n := utf8.EncodeRune(buf, l.ch)
		result = append(result, buf[:n]...)
	}
	l.readChar() // consume closing quote
	return token.Token{
		Type:    token.STRING,
		Lexeme:  l.input[start:l.position],
		Literal: string(result),
		Start:   start,
		End:     l.position,
		Line:    line,
		Column:  column,
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

func isNameStart(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || (ch >= 0x80 && unicode.IsLetter(ch))
}

func isNameContinue(ch rune) bool {
	return isNameStart(ch) || isDigit(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
