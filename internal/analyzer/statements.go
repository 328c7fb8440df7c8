package analyzer

import (
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/typedast"
	"github.com/corvid-lang/corvid/internal/typesystem"
)

// inferBody checks a statement sequence, warning about statements that can
// never run because an earlier statement always diverts control.
func (a *Analyzer) inferBody(statements []ast.Statement) []typedast.Statement {
	var body []typedast.Statement
	warned := false

	for i, stmt := range statements {
		typed := a.inferStatement(stmt)
		if typed == nil {
			continue
		}
		body = append(body, typed)

		if i < len(statements)-1 && !warned {
			if expr, ok := typed.(*typedast.ExpressionStatement); ok && divergent(expr.Expression) {
				a.warnf(diagnostics.WarnA100, statements[i+1].GetToken(), "unreachable code")
				warned = true
			}
		}
	}
	return body
}

func (a *Analyzer) inferStatement(statement ast.Statement) typedast.Statement {
	switch stmt := statement.(type) {
	case *ast.LetStatement:
		return a.inferLet(stmt)
	case *ast.UseStatement:
		return a.inferUse(stmt)
	case *ast.AssertStatement:
		return a.inferAssert(stmt)
	case *ast.ExpressionStatement:
		if stmt.Expression == nil {
			return nil
		}
		return &typedast.ExpressionStatement{Expression: a.inferExpression(stmt.Expression)}
	default:
		return nil
	}
}

func (a *Analyzer) inferLet(stmt *ast.LetStatement) typedast.Statement {
	value := a.inferExpression(stmt.Value)

	expected := value.TypeOf()
	if stmt.Annotation != nil {
		annotated := a.resolveAnnotation(stmt.Annotation, map[string]typesystem.Type{})
		a.unify(expected, annotated, stmt.Token, diagnostics.ErrA002,
			"the bound value does not match the annotation")
		expected = annotated
	}

	pattern := a.inferPattern(stmt.Pattern, expected)

	return &typedast.Assignment{
		Span:         tokenSpan(stmt.Token),
		Kind:         typedast.LetAssignment,
		Pattern:      pattern,
		Value:        value,
		CompiledCase: typedast.CompiledCase{Bindings: typedast.PatternVariables(pattern)},
	}
}

// inferUse checks use patterns <- call. The lowering pass later appends a
// callback built from the trailing statements, so the call is checked with
// that extra parameter in mind and the patterns are bound in the current
// scope for the statements that follow.
func (a *Analyzer) inferUse(stmt *ast.UseStatement) typedast.Statement {
	use := &typedast.Use{Span: tokenSpan(stmt.Token)}

	call, ok := stmt.Call.(*ast.CallExpression)
	if !ok {
		a.errorf(diagnostics.ErrA002, stmt.Token, "use requires a function call on the right of <-")
		use.Call = a.inferExpression(stmt.Call)
		a.bindUsePatterns(use, stmt, nil)
		return use
	}

	fun := a.inferExpression(call.Function)
	var args []*typedast.CallArg
	var argTypes []typesystem.Type
	for _, arg := range call.Arguments {
		value := a.inferExpression(arg.Value)
		args = append(args, &typedast.CallArg{
			Span:  tokenSpan(arg.Token),
			Label: arg.Label,
			Value: value,
		})
		argTypes = append(argTypes, value.TypeOf())
	}

	// The implicit callback takes one parameter per pattern, or a single
	// discarded Nil parameter for a bare use.
	var patternTypes []typesystem.Type
	for range stmt.Patterns {
		patternTypes = append(patternTypes, a.freshVar())
	}
	callbackParams := patternTypes
	if len(callbackParams) == 0 {
		callbackParams = []typesystem.Type{typesystem.Nil}
	}
	callbackType := typesystem.TFunc{Params: callbackParams, ReturnType: a.freshVar()}

	resultType := a.freshVar()
	expectedFun := typesystem.TFunc{
		Params:     append(append([]typesystem.Type{}, argTypes...), callbackType),
		ReturnType: resultType,
	}
	a.unify(fun.TypeOf(), expectedFun, call.GetToken(), diagnostics.ErrA002,
		"the use callee does not accept a trailing callback")

	use.Call = &typedast.Call{
		Span:      tokenSpan(call.Token),
		Type:      a.resolve(resultType),
		Fun:       fun,
		Arguments: args,
	}

	a.bindUsePatterns(use, stmt, patternTypes)
	return use
}

func (a *Analyzer) bindUsePatterns(use *typedast.Use, stmt *ast.UseStatement, patternTypes []typesystem.Type) {
	for i, pattern := range stmt.Patterns {
		expected := a.freshVar()
		if i < len(patternTypes) {
			expected = patternTypes[i]
		}
		typed := a.inferPattern(pattern, expected)
		use.Assignments = append(use.Assignments, &typedast.UseAssignment{
			Span:    tokenSpan(pattern.GetToken()),
			Pattern: typed,
		})
	}
}

func (a *Analyzer) inferAssert(stmt *ast.AssertStatement) typedast.Statement {
	value := a.inferExpression(stmt.Value)
	a.unify(value.TypeOf(), typesystem.Bool, stmt.Token, diagnostics.ErrA002,
		"assert requires a Bool condition")

	var message typedast.Expression
	if stmt.Message != nil {
		message = a.inferExpression(stmt.Message)
		a.unify(message.TypeOf(), typesystem.String, stmt.Message.GetToken(), diagnostics.ErrA002,
			"assert message must be a String")
	}

	return &typedast.Assert{
		Span:    tokenSpan(stmt.Token),
		Value:   value,
		Message: message,
	}
}
