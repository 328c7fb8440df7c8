package typedast

import (
	"github.com/corvid-lang/corvid/internal/typesystem"
)

// Expression is a typed expression node. Every node carries its resolved
// type and its source span.
type Expression interface {
	expressionNode()
	SpanOf() Span
	TypeOf() typesystem.Type
}

// Int is an integer literal.
type Int struct {
	Span  Span
	Value int64
}

func (e *Int) expressionNode()         {}
func (e *Int) SpanOf() Span            { return e.Span }
func (e *Int) TypeOf() typesystem.Type { return typesystem.Int }

// Float is a float literal.
type Float struct {
	Span  Span
	Value float64
}

func (e *Float) expressionNode()         {}
func (e *Float) SpanOf() Span            { return e.Span }
func (e *Float) TypeOf() typesystem.Type { return typesystem.Float }

// String is a string literal.
type String struct {
	Span  Span
	Value string
}

func (e *String) expressionNode()         {}
func (e *String) SpanOf() Span            { return e.Span }
func (e *String) TypeOf() typesystem.Type { return typesystem.String }

// Var is a reference to a local variable, function parameter, or
// module-level value.
type Var struct {
	Span   Span
	Type   typesystem.Type
	Name   string
	Origin VariableOrigin
}

func (e *Var) expressionNode()         {}
func (e *Var) SpanOf() Span            { return e.Span }
func (e *Var) TypeOf() typesystem.Type { return e.Type }

// ConstructorRef is a reference to a data constructor in value position.
type ConstructorRef struct {
	Span   Span
	Type   typesystem.Type
	Name   string
	Module string
	Arity  int
}

func (e *ConstructorRef) expressionNode()         {}
func (e *ConstructorRef) SpanOf() Span            { return e.Span }
func (e *ConstructorRef) TypeOf() typesystem.Type { return e.Type }

// ModuleSelect is a qualified reference: module.name. Never recursed into
// by the contains-return predicate.
type ModuleSelect struct {
	Span   Span
	Type   typesystem.Type
	Module string
	Label  string
}

func (e *ModuleSelect) expressionNode()         {}
func (e *ModuleSelect) SpanOf() Span            { return e.Span }
func (e *ModuleSelect) TypeOf() typesystem.Type { return e.Type }

// Block is a brace-delimited statement sequence in expression position.
type Block struct {
	Span       Span
	Statements []Statement
}

func (e *Block) expressionNode()         {}
func (e *Block) SpanOf() Span            { return e.Span }
func (e *Block) TypeOf() typesystem.Type { return BodyType(e.Statements) }

// List is a list literal with an optional spread tail.
type List struct {
	Span     Span
	Type     typesystem.Type
	Elements []Expression
	Tail     Expression // nil when absent
}

func (e *List) expressionNode()         {}
func (e *List) SpanOf() Span            { return e.Span }
func (e *List) TypeOf() typesystem.Type { return e.Type }

// Tuple is a tuple literal. The empty tuple doubles as the unit value.
type Tuple struct {
	Span     Span
	Type     typesystem.Type
	Elements []Expression
}

func (e *Tuple) expressionNode()         {}
func (e *Tuple) SpanOf() Span            { return e.Span }
func (e *Tuple) TypeOf() typesystem.Type { return e.Type }

// NilValue builds the canonical unit value with a synthetic span.
func NilValue(span Span) Expression {
	return &Tuple{Span: GeneratedSpan(span), Type: typesystem.Nil}
}

// CallArg is a single typed call argument.
type CallArg struct {
	Span  Span
	Label string
	Value Expression
	// Implicit marks arguments synthesised by use desugaring.
	Implicit bool
}

// Call is a function or constructor application.
type Call struct {
	Span      Span
	Type      typesystem.Type
	Fun       Expression
	Arguments []*CallArg
}

func (e *Call) expressionNode()         {}
func (e *Call) SpanOf() Span            { return e.Span }
func (e *Call) TypeOf() typesystem.Type { return e.Type }

// BinOp is a binary operator application.
type BinOp struct {
	Span     Span
	Type     typesystem.Type
	Operator string
	Left     Expression
	Right    Expression
}

func (e *BinOp) expressionNode()         {}
func (e *BinOp) SpanOf() Span            { return e.Span }
func (e *BinOp) TypeOf() typesystem.Type { return e.Type }

// Clause is one arm of a case expression.
type Clause struct {
	Span     Span
	Patterns []Pattern
	Body     Expression
}

// Case is a multi-subject case expression.
type Case struct {
	Span     Span
	Type     typesystem.Type
	Subjects []Expression
	Clauses  []*Clause
}

func (e *Case) expressionNode()         {}
func (e *Case) SpanOf() Span            { return e.Span }
func (e *Case) TypeOf() typesystem.Type { return e.Type }

// PipelineAssignment is one stage of a pipeline bound to a generated name.
type PipelineAssignment struct {
	Span  Span
	Name  string
	Value Expression
}

// Pipeline is first |> f |> g, represented as a chain of generated
// assignments followed by the final stage.
type Pipeline struct {
	Span        Span
	Type        typesystem.Type
	Assignments []*PipelineAssignment
	Finally     Expression
}

func (e *Pipeline) expressionNode()         {}
func (e *Pipeline) SpanOf() Span            { return e.Span }
func (e *Pipeline) TypeOf() typesystem.Type { return e.Type }

// FnParameter is one parameter of an anonymous function literal.
type FnParameter struct {
	Span    Span
	Name    string
	Type    typesystem.Type
	Discard bool
}

// Fn is an anonymous function literal. It opens a new early-return scope.
type Fn struct {
	Span       Span
	Type       typesystem.Type
	Parameters []*FnParameter
	Body       []Statement
	ReturnType typesystem.Type
}

func (e *Fn) expressionNode()         {}
func (e *Fn) SpanOf() Span            { return e.Span }
func (e *Fn) TypeOf() typesystem.Type { return e.Type }

// RecordAccess is field access on a custom-type record: value.label.
type RecordAccess struct {
	Span   Span
	Type   typesystem.Type
	Record Expression
	Label  string
	Index  int
}

func (e *RecordAccess) expressionNode()         {}
func (e *RecordAccess) SpanOf() Span            { return e.Span }
func (e *RecordAccess) TypeOf() typesystem.Type { return e.Type }

// TupleIndex is tuple element access: pair.0.
type TupleIndex struct {
	Span  Span
	Type  typesystem.Type
	Tuple Expression
	Index int
}

func (e *TupleIndex) expressionNode()         {}
func (e *TupleIndex) SpanOf() Span            { return e.Span }
func (e *TupleIndex) TypeOf() typesystem.Type { return e.Type }

// RecordUpdate is Ctor(..base, label: value). RecordAssignment binds the
// base record to a generated variable so it is evaluated exactly once.
type RecordUpdate struct {
	Span             Span
	Type             typesystem.Type
	RecordAssignment *Assignment // nil when the base needs no binding
	Constructor      Expression
	Arguments        []*CallArg
}

func (e *RecordUpdate) expressionNode()         {}
func (e *RecordUpdate) SpanOf() Span            { return e.Span }
func (e *RecordUpdate) TypeOf() typesystem.Type { return e.Type }

// NegateBool is boolean negation: !value.
type NegateBool struct {
	Span  Span
	Value Expression
}

func (e *NegateBool) expressionNode()         {}
func (e *NegateBool) SpanOf() Span            { return e.Span }
func (e *NegateBool) TypeOf() typesystem.Type { return typesystem.Bool }

// NegateInt is integer negation: -value.
type NegateInt struct {
	Span  Span
	Value Expression
}

func (e *NegateInt) expressionNode()         {}
func (e *NegateInt) SpanOf() Span            { return e.Span }
func (e *NegateInt) TypeOf() typesystem.Type { return typesystem.Int }

// SegmentOption is one option on a bit array segment. Options are carried
// through lowering unchanged; only Value (for size(n) style options) is an
// expression.
type SegmentOption struct {
	Span  Span
	Name  string
	Value Expression // nil for bare options
}

// BitArraySegment is one value:options segment.
type BitArraySegment struct {
	Span    Span
	Type    typesystem.Type
	Value   Expression
	Options []*SegmentOption
}

// BitArray is <<seg1, seg2, ...>>.
type BitArray struct {
	Span     Span
	Type     typesystem.Type
	Segments []*BitArraySegment
}

func (e *BitArray) expressionNode()         {}
func (e *BitArray) SpanOf() Span            { return e.Span }
func (e *BitArray) TypeOf() typesystem.Type { return e.Type }

// Echo prints a value for debugging and evaluates to it.
type Echo struct {
	Span       Span
	Type       typesystem.Type
	Expression Expression // nil when echoing the pipeline value
	Message    Expression // nil when no `as` clause
}

func (e *Echo) expressionNode()         {}
func (e *Echo) SpanOf() Span            { return e.Span }
func (e *Echo) TypeOf() typesystem.Type { return e.Type }

// TodoKind records how a todo was written.
type TodoKind int

const (
	TodoBare TodoKind = iota
	TodoWithMessage
)

// Todo aborts with a not-yet-implemented error. Polymorphic in its result
// position.
type Todo struct {
	Span    Span
	Type    typesystem.Type
	Kind    TodoKind
	Message Expression // nil for bare todo
}

func (e *Todo) expressionNode()         {}
func (e *Todo) SpanOf() Span            { return e.Span }
func (e *Todo) TypeOf() typesystem.Type { return e.Type }

// Panic aborts the program. Polymorphic in its result position.
type Panic struct {
	Span    Span
	Type    typesystem.Type
	Message Expression // nil when bare
}

func (e *Panic) expressionNode()         {}
func (e *Panic) SpanOf() Span            { return e.Span }
func (e *Panic) TypeOf() typesystem.Type { return e.Type }

// EarlyReturn is $return value. It is polymorphic in its result position,
// like Todo and Panic; Value's type unifies with the declared return type
// of the enclosing function scope.
type EarlyReturn struct {
	Span  Span
	Type  typesystem.Type
	Value Expression
}

func (e *EarlyReturn) expressionNode()         {}
func (e *EarlyReturn) SpanOf() Span            { return e.Span }
func (e *EarlyReturn) TypeOf() typesystem.Type { return e.Type }

// Invalid is a placeholder produced when type checking failed; it lets the
// analyzer keep reporting errors in the rest of the body.
type Invalid struct {
	Span Span
	Type typesystem.Type
}

func (e *Invalid) expressionNode()         {}
func (e *Invalid) SpanOf() Span            { return e.Span }
func (e *Invalid) TypeOf() typesystem.Type { return e.Type }
