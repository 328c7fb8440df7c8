package evaluator

import (
	"fmt"
	"strings"

	"github.com/funvibe/funbit/pkg/funbit"

	"github.com/corvid-lang/corvid/internal/typedast"
)

type ObjectType string

const (
	INTEGER_OBJ       = "INTEGER"
	FLOAT_OBJ         = "FLOAT"
	STRING_OBJ        = "STRING"
	BOOLEAN_OBJ       = "BOOLEAN"
	NIL_OBJ           = "NIL"
	LIST_OBJ          = "LIST"
	TUPLE_OBJ         = "TUPLE"
	DATA_INSTANCE_OBJ = "DATA_INSTANCE"
	CONSTRUCTOR_OBJ   = "CONSTRUCTOR"
	FUNCTION_OBJ      = "FUNCTION"
	BITS_OBJ          = "BITS"
	BUILTIN_OBJ       = "BUILTIN"
	RETURN_VALUE_OBJ  = "RETURN_VALUE"
	ERROR_OBJ         = "ERROR"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return fmt.Sprintf("%g", f.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return fmt.Sprintf("%q", s.Value) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "True"
	}
	return "False"
}

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "Nil" }

type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = el.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type Tuple struct {
	Elements []Object
}

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string {
	if len(t.Elements) == 0 {
		return "Nil"
	}
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = el.Inspect()
	}
	return "#(" + strings.Join(parts, ", ") + ")"
}

// DataInstance is a constructed value of a custom type.
type DataInstance struct {
	Name   string
	Fields []Object
}

func (d *DataInstance) Type() ObjectType { return DATA_INSTANCE_OBJ }
func (d *DataInstance) Inspect() string {
	if len(d.Fields) == 0 {
		return d.Name
	}
	parts := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		parts[i] = f.Inspect()
	}
	return d.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Constructor is an unsaturated data constructor awaiting its arguments.
type Constructor struct {
	Name  string
	Arity int
}

func (c *Constructor) Type() ObjectType { return CONSTRUCTOR_OBJ }
func (c *Constructor) Inspect() string  { return c.Name }

// Function is a user function closed over its defining environment.
type Function struct {
	Parameters []*typedast.FnParameter
	Body       []typedast.Statement
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string  { return fmt.Sprintf("fn/%d", len(f.Parameters)) }

// Bits is a bit array value backed by funbit's bit string.
type Bits struct {
	Value *funbit.BitString
}

func (b *Bits) Type() ObjectType { return BITS_OBJ }
func (b *Bits) Inspect() string {
	return fmt.Sprintf("<<%d bits>>", b.Value.Length())
}

// Builtin is a function implemented in the host.
type Builtin struct {
	Fn func(args ...Object) Object
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin function" }

// ReturnValue is the control signal produced by evaluating $return before
// lowering. The lowered tree never produces one.
type ReturnValue struct {
	Value Object
}

func (r *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (r *ReturnValue) Inspect() string  { return r.Value.Inspect() }

type Error struct {
	Message string
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "error: " + e.Message }

func newError(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

func isError(obj Object) bool {
	if obj == nil {
		return false
	}
	return obj.Type() == ERROR_OBJ
}
