package analyzer

import (
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/typedast"
	"github.com/corvid-lang/corvid/internal/typesystem"
)

// inferPattern checks a pattern against the type of the matched value and
// binds the variables it introduces in the current scope.
func (a *Analyzer) inferPattern(pattern ast.Pattern, expected typesystem.Type) typedast.Pattern {
	switch pat := pattern.(type) {
	case *ast.VariablePattern:
		a.bind(pat.Name, expected)
		return &typedast.VariablePattern{
			Span:   tokenSpan(pat.Token),
			Name:   pat.Name,
			Type:   expected,
			Origin: typedast.SourceOrigin,
		}

	case *ast.DiscardPattern:
		return &typedast.DiscardPattern{
			Span: tokenSpan(pat.Token),
			Name: pat.Name,
			Type: expected,
		}

	case *ast.IntPattern:
		a.unify(expected, typesystem.Int, pat.Token, diagnostics.ErrA002,
			"integer pattern on a non-Int value")
		return &typedast.IntPattern{Span: tokenSpan(pat.Token), Value: pat.Value}

	case *ast.FloatPattern:
		a.unify(expected, typesystem.Float, pat.Token, diagnostics.ErrA002,
			"float pattern on a non-Float value")
		return &typedast.FloatPattern{Span: tokenSpan(pat.Token), Value: pat.Value}

	case *ast.StringPattern:
		a.unify(expected, typesystem.String, pat.Token, diagnostics.ErrA002,
			"string pattern on a non-String value")
		return &typedast.StringPattern{Span: tokenSpan(pat.Token), Value: pat.Value}

	case *ast.ConstructorPattern:
		return a.inferConstructorPattern(pat, expected)

	case *ast.TuplePattern:
		return a.inferTuplePattern(pat, expected)

	default:
		return &typedast.DiscardPattern{Name: "_", Type: expected}
	}
}

func (a *Analyzer) inferConstructorPattern(pat *ast.ConstructorPattern, expected typesystem.Type) typedast.Pattern {
	if pat.Module != "" {
		// Patterns on imported constructors bind loosely.
		var args []typedast.Pattern
		for _, arg := range pat.Args {
			args = append(args, a.inferPattern(arg, a.freshVar()))
		}
		return &typedast.ConstructorPattern{
			Span:   tokenSpan(pat.Token),
			Type:   expected,
			Module: pat.Module,
			Name:   pat.Name,
			Args:   args,
		}
	}

	info, ok := a.constructors[pat.Name]
	if !ok {
		a.errorf(diagnostics.ErrA001, pat.Token, "unknown constructor %s", pat.Name)
		for _, arg := range pat.Args {
			a.inferPattern(arg, a.freshVar())
		}
		return &typedast.DiscardPattern{Span: tokenSpan(pat.Token), Name: "_", Type: expected}
	}

	fields, result := a.instantiate(info)
	if len(pat.Args) != len(fields) {
		a.errorf(diagnostics.ErrA004, pat.Token,
			"%s expects %d arguments, got %d", pat.Name, len(fields), len(pat.Args))
	}
	a.unify(expected, result, pat.Token, diagnostics.ErrA002,
		"constructor pattern does not match the value's type")

	var args []typedast.Pattern
	for i, arg := range pat.Args {
		fieldType := a.freshVar()
		if i < len(fields) {
			fieldType = fields[i]
		}
		args = append(args, a.inferPattern(arg, fieldType))
	}

	return &typedast.ConstructorPattern{
		Span: tokenSpan(pat.Token),
		Type: a.resolve(result),
		Name: pat.Name,
		Args: args,
	}
}

func (a *Analyzer) inferTuplePattern(pat *ast.TuplePattern, expected typesystem.Type) typedast.Pattern {
	elementTypes := make([]typesystem.Type, len(pat.Elements))
	for i := range elementTypes {
		elementTypes[i] = a.freshVar()
	}
	a.unify(expected, typesystem.TTuple{Elements: elementTypes}, pat.Token, diagnostics.ErrA002,
		"tuple pattern does not match the value's type")

	var elements []typedast.Pattern
	for i, el := range pat.Elements {
		elements = append(elements, a.inferPattern(el, elementTypes[i]))
	}

	return &typedast.TuplePattern{
		Span:     tokenSpan(pat.Token),
		Type:     a.resolve(typesystem.TTuple{Elements: elementTypes}),
		Elements: elements,
	}
}
