package typedast

import (
	"github.com/corvid-lang/corvid/internal/typesystem"
)

// Module is a fully type-checked compilation unit.
type Module struct {
	File      string
	Functions []*Function
	Constants []*Constant
}

// Function is a typed named function definition. Its body is the unit the
// lowering pass operates on.
type Function struct {
	Span       Span
	Public     bool
	Name       string
	Parameters []*FnParameter
	ReturnType typesystem.Type
	Body       []Statement
}

// Constant is a typed module constant.
type Constant struct {
	Span   Span
	Public bool
	Name   string
	Type   typesystem.Type
	Value  Expression
}
