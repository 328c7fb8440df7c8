package ast

import (
	"github.com/corvid-lang/corvid/internal/token"
)

// ExpressionStatement is a statement that consists of a single expression.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// LetStatement represents a let binding: let pattern = value.
type LetStatement struct {
	Token      token.Token // The 'let' token
	Pattern    Pattern
	Annotation TypeAnnotation // Optional: let x: Int = ...
	Value      Expression
}

func (ls *LetStatement) statementNode()        {}
func (ls *LetStatement) TokenLiteral() string  { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token { return ls.Token }

// UseStatement represents use sugar: use a, b <- f(x).
// The remaining statements of the enclosing block become the body of a
// callback appended to the call's arguments.
type UseStatement struct {
	Token    token.Token // The 'use' token
	Patterns []Pattern
	Call     Expression
}

func (us *UseStatement) statementNode()        {}
func (us *UseStatement) TokenLiteral() string  { return us.Token.Lexeme }
func (us *UseStatement) GetToken() token.Token { return us.Token }

// AssertStatement represents assert value [as message].
type AssertStatement struct {
	Token   token.Token // The 'assert' token
	Value   Expression
	Message Expression // Optional
}

func (as *AssertStatement) statementNode()        {}
func (as *AssertStatement) TokenLiteral() string  { return as.Token.Lexeme }
func (as *AssertStatement) GetToken() token.Token { return as.Token }

// BlockExpression represents { statements } in expression position.
type BlockExpression struct {
	Token       token.Token // {
	Statements  []Statement
	RBraceToken token.Token // }
}

func (be *BlockExpression) expressionNode()       {}
func (be *BlockExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BlockExpression) GetToken() token.Token { return be.Token }

// ListLiteral represents a list, e.g. [1, 2, ..rest].
type ListLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
	Tail     Expression // Optional spread tail
}

func (ll *ListLiteral) expressionNode()       {}
func (ll *ListLiteral) TokenLiteral() string  { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token { return ll.Token }

// TupleLiteral represents a tuple, e.g. #(1, "hello").
type TupleLiteral struct {
	Token    token.Token // The '#' token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode()       {}
func (tl *TupleLiteral) TokenLiteral() string  { return tl.Token.Lexeme }
func (tl *TupleLiteral) GetToken() token.Token { return tl.Token }

// CallArg is a single (possibly labelled) call argument.
type CallArg struct {
	Token token.Token
	Label string // "" when positional
	Value Expression
}

// CallExpression represents a function call, e.g. wibble(1, 2).
type CallExpression struct {
	Token     token.Token // The '(' token
	Function  Expression
	Arguments []*CallArg
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// RecordUpdateField is one label: value pair in a record update.
type RecordUpdateField struct {
	Token token.Token
	Label string
	Value Expression
}

// RecordUpdate represents Ctor(..base, label: value).
type RecordUpdate struct {
	Token       token.Token // The '(' token
	Constructor Expression
	Base        Expression
	Fields      []*RecordUpdateField
}

func (ru *RecordUpdate) expressionNode()       {}
func (ru *RecordUpdate) TokenLiteral() string  { return ru.Token.Lexeme }
func (ru *RecordUpdate) GetToken() token.Token { return ru.Token }

// FieldAccess represents dot access on a record or module: value.label.
type FieldAccess struct {
	Token     token.Token // The '.' token
	Container Expression
	Label     string
}

func (fa *FieldAccess) expressionNode()       {}
func (fa *FieldAccess) TokenLiteral() string  { return fa.Token.Lexeme }
func (fa *FieldAccess) GetToken() token.Token { return fa.Token }

// TupleIndex represents tuple element access: pair.0.
type TupleIndex struct {
	Token     token.Token // The '.' token
	Container Expression
	Index     int
}

func (ti *TupleIndex) expressionNode()       {}
func (ti *TupleIndex) TokenLiteral() string  { return ti.Token.Lexeme }
func (ti *TupleIndex) GetToken() token.Token { return ti.Token }

// PrefixExpression represents a prefix operation, e.g. -5 or !ok.
type PrefixExpression struct {
	Token    token.Token // The prefix token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// InfixExpression represents an infix operation, e.g. 5 + 5.
type InfixExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// PipelineExpression represents first |> stage1 |> stage2.
type PipelineExpression struct {
	Token  token.Token // The first '|>' token
	First  Expression
	Stages []Expression
}

func (pe *PipelineExpression) expressionNode()       {}
func (pe *PipelineExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PipelineExpression) GetToken() token.Token { return pe.Token }

// CaseClause is one arm of a case expression. Patterns has one entry per
// case subject.
type CaseClause struct {
	Token    token.Token
	Patterns []Pattern
	Body     Expression
}

// CaseExpression represents case subj1, subj2 { pats -> body ... }.
type CaseExpression struct {
	Token    token.Token // The 'case' token
	Subjects []Expression
	Clauses  []*CaseClause
}

func (ce *CaseExpression) expressionNode()       {}
func (ce *CaseExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CaseExpression) GetToken() token.Token { return ce.Token }

// FunctionLiteral represents an anonymous function: fn(a, b) { body }.
type FunctionLiteral struct {
	Token      token.Token // The 'fn' token
	Parameters []*Parameter
	ReturnType TypeAnnotation // Optional
	Body       []Statement
}

func (fl *FunctionLiteral) expressionNode()       {}
func (fl *FunctionLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FunctionLiteral) GetToken() token.Token { return fl.Token }

// EchoExpression represents echo [expr] [as message].
type EchoExpression struct {
	Token      token.Token // The 'echo' token
	Expression Expression  // Optional
	Message    Expression  // Optional
}

func (ee *EchoExpression) expressionNode()       {}
func (ee *EchoExpression) TokenLiteral() string  { return ee.Token.Lexeme }
func (ee *EchoExpression) GetToken() token.Token { return ee.Token }

// TodoExpression represents todo [as message].
type TodoExpression struct {
	Token   token.Token // The 'todo' token
	Message Expression  // Optional
}

func (te *TodoExpression) expressionNode()       {}
func (te *TodoExpression) TokenLiteral() string  { return te.Token.Lexeme }
func (te *TodoExpression) GetToken() token.Token { return te.Token }

// PanicExpression represents panic [as message].
type PanicExpression struct {
	Token   token.Token // The 'panic' token
	Message Expression  // Optional
}

func (pe *PanicExpression) expressionNode()       {}
func (pe *PanicExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PanicExpression) GetToken() token.Token { return pe.Token }

// SegmentOption is one option on a bit array segment: size(8), unit(1),
// int, float, bytes, utf8, big, little, signed, unsigned. The shorthand
// <<x:8>> parses as size(8).
type SegmentOption struct {
	Token token.Token
	Name  string
	Value Expression // nil for bare options like `big`
}

// BitArraySegment is value:options within a bit array literal.
type BitArraySegment struct {
	Token   token.Token
	Value   Expression
	Options []*SegmentOption
}

// BitArrayLiteral represents <<seg1, seg2>>.
type BitArrayLiteral struct {
	Token    token.Token // The '<<' token
	Segments []*BitArraySegment
}

func (bl *BitArrayLiteral) expressionNode()       {}
func (bl *BitArrayLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BitArrayLiteral) GetToken() token.Token { return bl.Token }

// EarlyReturnExpression represents $return value. It aborts the enclosing
// named function (or anonymous function literal) with the given value.
type EarlyReturnExpression struct {
	Token token.Token // The '$return' token
	Value Expression
}

func (er *EarlyReturnExpression) expressionNode()       {}
func (er *EarlyReturnExpression) TokenLiteral() string  { return er.Token.Lexeme }
func (er *EarlyReturnExpression) GetToken() token.Token { return er.Token }
