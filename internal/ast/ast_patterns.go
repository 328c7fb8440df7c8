package ast

import (
	"github.com/corvid-lang/corvid/internal/token"
)

// VariablePattern binds a name: let x = ...
type VariablePattern struct {
	Token token.Token
	Name  string
}

func (vp *VariablePattern) patternNode()          {}
func (vp *VariablePattern) TokenLiteral() string  { return vp.Token.Lexeme }
func (vp *VariablePattern) GetToken() token.Token { return vp.Token }

// DiscardPattern matches anything without binding: _ or _name.
type DiscardPattern struct {
	Token token.Token
	Name  string
}

func (dp *DiscardPattern) patternNode()          {}
func (dp *DiscardPattern) TokenLiteral() string  { return dp.Token.Lexeme }
func (dp *DiscardPattern) GetToken() token.Token { return dp.Token }

// IntPattern matches an integer literal.
type IntPattern struct {
	Token token.Token
	Value int64
}

func (ip *IntPattern) patternNode()          {}
func (ip *IntPattern) TokenLiteral() string  { return ip.Token.Lexeme }
func (ip *IntPattern) GetToken() token.Token { return ip.Token }

// FloatPattern matches a float literal.
type FloatPattern struct {
	Token token.Token
	Value float64
}

func (fp *FloatPattern) patternNode()          {}
func (fp *FloatPattern) TokenLiteral() string  { return fp.Token.Lexeme }
func (fp *FloatPattern) GetToken() token.Token { return fp.Token }

// StringPattern matches a string literal.
type StringPattern struct {
	Token token.Token
	Value string
}

func (sp *StringPattern) patternNode()          {}
func (sp *StringPattern) TokenLiteral() string  { return sp.Token.Lexeme }
func (sp *StringPattern) GetToken() token.Token { return sp.Token }

// ConstructorPattern matches a data constructor: Ok(x), Error(_).
type ConstructorPattern struct {
	Token  token.Token // The UPNAME token
	Module string
	Name   string
	Args   []Pattern
}

func (cp *ConstructorPattern) patternNode()          {}
func (cp *ConstructorPattern) TokenLiteral() string  { return cp.Token.Lexeme }
func (cp *ConstructorPattern) GetToken() token.Token { return cp.Token }

// TuplePattern matches a tuple: #(a, b).
type TuplePattern struct {
	Token    token.Token
	Elements []Pattern
}

func (tp *TuplePattern) patternNode()          {}
func (tp *TuplePattern) TokenLiteral() string  { return tp.Token.Lexeme }
func (tp *TuplePattern) GetToken() token.Token { return tp.Token }

// BoundVariables returns the names bound by a pattern, in source order.
func BoundVariables(p Pattern) []string {
	switch pat := p.(type) {
	case *VariablePattern:
		return []string{pat.Name}
	case *ConstructorPattern:
		var names []string
		for _, arg := range pat.Args {
			names = append(names, BoundVariables(arg)...)
		}
		return names
	case *TuplePattern:
		var names []string
		for _, el := range pat.Elements {
			names = append(names, BoundVariables(el)...)
		}
		return names
	default:
		return nil
	}
}
