package typedast

import (
	"github.com/corvid-lang/corvid/internal/typesystem"
)

// Statement is one element of a typed function body.
type Statement interface {
	statementNode()
	SpanOf() Span
	// TypeOf is the value of the statement when it is last in a body.
	TypeOf() typesystem.Type
}

// ExpressionStatement wraps an expression in statement position.
type ExpressionStatement struct {
	Expression Expression
}

func (s *ExpressionStatement) statementNode()          {}
func (s *ExpressionStatement) SpanOf() Span            { return s.Expression.SpanOf() }
func (s *ExpressionStatement) TypeOf() typesystem.Type { return s.Expression.TypeOf() }

// Assignment is a typed let binding.
type Assignment struct {
	Span         Span
	Kind         AssignmentKind
	Pattern      Pattern
	Value        Expression
	CompiledCase CompiledCase
}

func (s *Assignment) statementNode()          {}
func (s *Assignment) SpanOf() Span            { return s.Span }
func (s *Assignment) TypeOf() typesystem.Type { return typesystem.Nil }

// UseAssignment is one pattern bound by a use statement.
type UseAssignment struct {
	Span    Span
	Pattern Pattern
}

// Use is a typed use statement. Call is the function call the trailing
// statements desugar into during lowering.
type Use struct {
	Span        Span
	Assignments []*UseAssignment
	Call        Expression
}

func (s *Use) statementNode()          {}
func (s *Use) SpanOf() Span            { return s.Span }
func (s *Use) TypeOf() typesystem.Type { return s.Call.TypeOf() }

// Assert is a typed assert statement.
type Assert struct {
	Span    Span
	Value   Expression
	Message Expression // nil when no `as` clause
}

func (s *Assert) statementNode()          {}
func (s *Assert) SpanOf() Span            { return s.Span }
func (s *Assert) TypeOf() typesystem.Type { return typesystem.Nil }

// BodyType returns the value type of a statement sequence: the type of the
// trailing expression, or Nil.
func BodyType(body []Statement) typesystem.Type {
	if len(body) == 0 {
		return typesystem.Nil
	}
	last := body[len(body)-1]
	if expr, ok := last.(*ExpressionStatement); ok {
		return expr.TypeOf()
	}
	return typesystem.Nil
}
