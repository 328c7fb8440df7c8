package evaluator

import (
	"github.com/funvibe/funbit/pkg/funbit"

	"github.com/corvid-lang/corvid/internal/typedast"
)

// evalBitArray assembles a bit array value segment by segment with funbit's
// builder, honoring size and unit options.
func (e *Evaluator) evalBitArray(expr *typedast.BitArray, env *Environment) Object {
	builder := funbit.NewBuilder()

	for _, segment := range expr.Segments {
		value := e.evalExpression(segment.Value, env)
		if isError(value) {
			return value
		}
		if rv, ok := value.(*ReturnValue); ok {
			return rv
		}

		var options []funbit.SegmentOption
		kind := "int"
		for _, option := range segment.Options {
			switch option.Name {
			case "size":
				size, obj := e.segmentOptionValue(option.Value, env)
				if obj != nil {
					return obj
				}
				options = append(options, funbit.WithSize(uint(size)))
			case "unit":
				unit, obj := e.segmentOptionValue(option.Value, env)
				if obj != nil {
					return obj
				}
				options = append(options, funbit.WithUnit(uint(unit)))
			case "int", "float", "utf8", "utf16", "utf32", "bytes", "bits":
				kind = option.Name
			}
		}

		switch v := value.(type) {
		case *Integer:
			if kind == "float" {
				funbit.AddFloat(builder, float64(v.Value), options...)
			} else {
				funbit.AddInteger(builder, v.Value, options...)
			}
		case *Float:
			funbit.AddFloat(builder, v.Value, options...)
		case *String:
			funbit.AddUTF8(builder, v.Value)
		case *Bits:
			funbit.AddBitstring(builder, v.Value)
		default:
			return newError("cannot place %s in a bit array", value.Type())
		}
	}

	bits, err := funbit.Build(builder)
	if err != nil {
		return newError("bit array: %s", err.Error())
	}
	return &Bits{Value: bits}
}

// segmentOptionValue evaluates a size or unit option down to an integer. The
// second return value is non-nil when evaluation must abort.
func (e *Evaluator) segmentOptionValue(expression typedast.Expression, env *Environment) (int64, Object) {
	if expression == nil {
		return 0, newError("bit array option requires a value")
	}
	value := e.evalExpression(expression, env)
	if isError(value) {
		return 0, value
	}
	if rv, ok := value.(*ReturnValue); ok {
		return 0, rv
	}
	i, ok := value.(*Integer)
	if !ok {
		return 0, newError("bit array option requires an Int, got %s", value.Type())
	}
	return i.Value, nil
}
