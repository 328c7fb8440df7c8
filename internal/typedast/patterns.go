package typedast

import (
	"github.com/corvid-lang/corvid/internal/typesystem"
)

// Pattern is a typed pattern.
type Pattern interface {
	patternNode()
	SpanOf() Span
	TypeOf() typesystem.Type
}

// VariablePattern binds a name.
type VariablePattern struct {
	Span   Span
	Name   string
	Type   typesystem.Type
	Origin VariableOrigin
}

func (p *VariablePattern) patternNode()            {}
func (p *VariablePattern) SpanOf() Span            { return p.Span }
func (p *VariablePattern) TypeOf() typesystem.Type { return p.Type }

// DiscardPattern matches anything without binding.
type DiscardPattern struct {
	Span Span
	Name string
	Type typesystem.Type
}

func (p *DiscardPattern) patternNode()            {}
func (p *DiscardPattern) SpanOf() Span            { return p.Span }
func (p *DiscardPattern) TypeOf() typesystem.Type { return p.Type }

// IntPattern matches an integer literal.
type IntPattern struct {
	Span  Span
	Value int64
}

func (p *IntPattern) patternNode()            {}
func (p *IntPattern) SpanOf() Span            { return p.Span }
func (p *IntPattern) TypeOf() typesystem.Type { return typesystem.Int }

// FloatPattern matches a float literal.
type FloatPattern struct {
	Span  Span
	Value float64
}

func (p *FloatPattern) patternNode()            {}
func (p *FloatPattern) SpanOf() Span            { return p.Span }
func (p *FloatPattern) TypeOf() typesystem.Type { return typesystem.Float }

// StringPattern matches a string literal.
type StringPattern struct {
	Span  Span
	Value string
}

func (p *StringPattern) patternNode()            {}
func (p *StringPattern) SpanOf() Span            { return p.Span }
func (p *StringPattern) TypeOf() typesystem.Type { return typesystem.String }

// ConstructorPattern matches a data constructor application.
type ConstructorPattern struct {
	Span   Span
	Type   typesystem.Type
	Module string
	Name   string
	Args   []Pattern
}

func (p *ConstructorPattern) patternNode()            {}
func (p *ConstructorPattern) SpanOf() Span            { return p.Span }
func (p *ConstructorPattern) TypeOf() typesystem.Type { return p.Type }

// TuplePattern matches a tuple.
type TuplePattern struct {
	Span     Span
	Type     typesystem.Type
	Elements []Pattern
}

func (p *TuplePattern) patternNode()            {}
func (p *TuplePattern) SpanOf() Span            { return p.Span }
func (p *TuplePattern) TypeOf() typesystem.Type { return p.Type }

// PatternVariables returns the names bound by a pattern in source order.
func PatternVariables(p Pattern) []string {
	switch pat := p.(type) {
	case *VariablePattern:
		return []string{pat.Name}
	case *ConstructorPattern:
		var names []string
		for _, arg := range pat.Args {
			names = append(names, PatternVariables(arg)...)
		}
		return names
	case *TuplePattern:
		var names []string
		for _, el := range pat.Elements {
			names = append(names, PatternVariables(el)...)
		}
		return names
	default:
		return nil
	}
}
