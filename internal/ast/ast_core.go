package ast

import (
	"github.com/corvid-lang/corvid/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node that can appear in a function body.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Pattern is a Node that can appear on the left of a let binding or in a
// case clause.
type Pattern interface {
	Node
	patternNode()
}

// ModuleStatement is a top-level definition.
type ModuleStatement interface {
	Node
	moduleStatementNode()
}

// Module is the root node of every AST our parser produces.
type Module struct {
	File       string // Source file path
	Imports    []*Import
	Statements []ModuleStatement
}

func (m *Module) TokenLiteral() string {
	if len(m.Statements) > 0 {
		return m.Statements[0].TokenLiteral()
	}
	return ""
}

// Import represents an import declaration: import "wibble/wobble".
type Import struct {
	Token token.Token // The 'import' token
	Path  *StringLiteral
	Alias *Identifier // Optional alias
}

func (i *Import) moduleStatementNode() {}
func (i *Import) TokenLiteral() string { return i.Token.Lexeme }
func (i *Import) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// Function represents a named function definition.
// pub fn name(a: Int, b: Int) -> Int { body }
type Function struct {
	Token      token.Token // The 'fn' token
	Public     bool
	Name       *Identifier
	Parameters []*Parameter
	ReturnType TypeAnnotation // Can be nil if inferred
	Body       []Statement
	EndToken   token.Token // The closing '}'
}

func (f *Function) moduleStatementNode() {}
func (f *Function) TokenLiteral() string { return f.Token.Lexeme }
func (f *Function) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Token
}

// Parameter is a single function parameter.
type Parameter struct {
	Token     token.Token
	Name      *Identifier
	IsIgnored bool // True if the parameter is a discard (_ or _name)
	Type      TypeAnnotation
}

// ConstantDeclaration represents a module constant.
// pub const answer: Int = 42
type ConstantDeclaration struct {
	Token          token.Token // The 'const' token
	Public         bool
	Name           *Identifier
	TypeAnnotation TypeAnnotation // Optional
	Value          Expression
}

func (cd *ConstantDeclaration) moduleStatementNode() {}
func (cd *ConstantDeclaration) TokenLiteral() string { return cd.Token.Lexeme }
func (cd *ConstantDeclaration) GetToken() token.Token {
	if cd == nil {
		return token.Token{}
	}
	return cd.Token
}

// CustomTypeDeclaration represents a custom type with its constructors.
// pub type Nucleotide { Adenine Cytosine Guanine Thymine }
type CustomTypeDeclaration struct {
	Token        token.Token // The 'type' token
	Public       bool
	Name         *Identifier
	TypeParams   []*Identifier
	Constructors []*TypeConstructor
}

func (td *CustomTypeDeclaration) moduleStatementNode() {}
func (td *CustomTypeDeclaration) TokenLiteral() string { return td.Token.Lexeme }
func (td *CustomTypeDeclaration) GetToken() token.Token {
	if td == nil {
		return token.Token{}
	}
	return td.Token
}

// TypeConstructor is a single variant of a custom type.
type TypeConstructor struct {
	Token  token.Token // The UPNAME token
	Name   string
	Fields []*ConstructorField
}

// ConstructorField is one argument of a type constructor, optionally
// labelled: Ok(value: a).
type ConstructorField struct {
	Token token.Token
	Label string // "" when positional
	Type  TypeAnnotation
}

// TypeAnnotation is a parsed type expression.
type TypeAnnotation interface {
	Node
	typeAnnotationNode()
}

// NamedType is a (possibly qualified, possibly parameterised) type name:
// Int, List<Int>, wibble.Wobble.
type NamedType struct {
	Token  token.Token
	Module string // "" when unqualified
	Name   string
	Args   []TypeAnnotation
}

func (nt *NamedType) typeAnnotationNode()  {}
func (nt *NamedType) TokenLiteral() string { return nt.Token.Lexeme }
func (nt *NamedType) GetToken() token.Token {
	if nt == nil {
		return token.Token{}
	}
	return nt.Token
}

// TupleType is #(A, B).
type TupleType struct {
	Token    token.Token
	Elements []TypeAnnotation
}

func (tt *TupleType) typeAnnotationNode()  {}
func (tt *TupleType) TokenLiteral() string { return tt.Token.Lexeme }
func (tt *TupleType) GetToken() token.Token {
	if tt == nil {
		return token.Token{}
	}
	return tt.Token
}

// FnType is fn(A, B) -> C.
type FnType struct {
	Token      token.Token
	Params     []TypeAnnotation
	ReturnType TypeAnnotation
}

func (ft *FnType) typeAnnotationNode()  {}
func (ft *FnType) TokenLiteral() string { return ft.Token.Lexeme }
func (ft *FnType) GetToken() token.Token {
	if ft == nil {
		return token.Token{}
	}
	return ft.Token
}

// Identifier represents a lowercase name.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// IntegerLiteral represents an integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token {
	if il == nil {
		return token.Token{}
	}
	return il.Token
}

// FloatLiteral represents a floating point literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token {
	if fl == nil {
		return token.Token{}
	}
	return fl.Token
}

// StringLiteral represents a string, e.g. "hello".
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}

// Constructor represents an uppercase name in expression position:
// a data constructor or type reference, e.g. Ok, Error, Adenine.
type Constructor struct {
	Token  token.Token
	Module string // "" when unqualified
	Name   string
}

func (c *Constructor) expressionNode()      {}
func (c *Constructor) TokenLiteral() string { return c.Token.Lexeme }
func (c *Constructor) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}
