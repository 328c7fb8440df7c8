package transform

import (
	"fmt"

	"github.com/corvid-lang/corvid/internal/typedast"
	"github.com/corvid-lang/corvid/internal/typesystem"
)

// LowerFunctionBody rewrites a function body so that early returns become
// ordinary value flow. Bodies without early returns are only visited to
// lower any nested anonymous functions.
func LowerFunctionBody(statements []typedast.Statement) []typedast.Statement {
	if !ContainsReturn(statements) {
		t := newTransformer()
		lowered := make([]typedast.Statement, 0, len(statements))
		for _, stmt := range statements {
			lowered = append(lowered, t.transformStatementSimple(stmt))
		}
		return lowered
	}

	t := newTransformer()
	result := t.transformStatements(statements, returnCont{})

	// Unwrap a top level block back into a statement list.
	if block, ok := result.(*typedast.Block); ok {
		return block.Statements
	}
	return []typedast.Statement{&typedast.ExpressionStatement{Expression: result}}
}

type transformer struct {
	varCounter int
}

func newTransformer() *transformer {
	return &transformer{}
}

func (t *transformer) newVar() string {
	t.varCounter++
	return fmt.Sprintf("_cps_var_%d", t.varCounter)
}

// continuation describes what to do with the value of the expression
// currently being transformed. It is a closed set of variants rather than
// host-language closures so the rewriting stays inspectable.
type continuation interface {
	continuationVariant()
}

// returnCont: the value becomes the function result.
type returnCont struct{}

// discardCont: evaluate the rest of the statements, discarding the value.
type discardCont struct {
	rest []typedast.Statement
	next continuation
}

// bindCont: bind the value with the pending assignment, then the rest.
type bindCont struct {
	assignment *typedast.Assignment
	rest       []typedast.Statement
	next       continuation
}

// assertCont: assert on the value, then the rest.
type assertCont struct {
	assert *typedast.Assert
	rest   []typedast.Statement
	next   continuation
}

// binOpRightCont: the left operand is evaluated, the right is pending.
type binOpRightCont struct {
	operator string
	right    typedast.Expression
	span     typedast.Span
	typ      typesystem.Type
	next     continuation
}

// binOpApplyCont: both operands evaluated, build the operator node.
type binOpApplyCont struct {
	operator string
	left     typedast.Expression
	span     typedast.Span
	typ      typesystem.Type
	next     continuation
}

type callFunCont struct {
	arguments []*typedast.CallArg
	span      typedast.Span
	typ       typesystem.Type
	next      continuation
}

type callArgCont struct {
	fun           typedast.Expression
	evaluatedArgs []*typedast.CallArg
	remainingArgs []*typedast.CallArg
	span          typedast.Span
	typ           typesystem.Type
	next          continuation
}

type listElementCont struct {
	evaluated []typedast.Expression
	remaining []typedast.Expression
	tail      typedast.Expression
	span      typedast.Span
	typ       typesystem.Type
	next      continuation
}

type listTailCont struct {
	elements []typedast.Expression
	span     typedast.Span
	typ      typesystem.Type
	next     continuation
}

type tupleElementCont struct {
	evaluated []typedast.Expression
	remaining []typedast.Expression
	span      typedast.Span
	typ       typesystem.Type
	next      continuation
}

type recordAccessCont struct {
	span  typedast.Span
	typ   typesystem.Type
	label string
	index int
	next  continuation
}

type tupleIndexCont struct {
	span  typedast.Span
	typ   typesystem.Type
	index int
	next  continuation
}

type negateBoolCont struct {
	span typedast.Span
	next continuation
}

type negateIntCont struct {
	span typedast.Span
	next continuation
}

type bitArraySegmentCont struct {
	evaluated      []*typedast.BitArraySegment
	currentOptions []*typedast.SegmentOption
	currentType    typesystem.Type
	currentSpan    typedast.Span
	remaining      []*typedast.BitArraySegment
	span           typedast.Span
	typ            typesystem.Type
	next           continuation
}

type echoCont struct {
	span    typedast.Span
	typ     typesystem.Type
	message typedast.Expression
	next    continuation
}

type recordUpdateRecordCont struct {
	assignment  *typedast.Assignment
	constructor typedast.Expression
	arguments   []*typedast.CallArg
	span        typedast.Span
	typ         typesystem.Type
	next        continuation
}

type recordUpdateConstructorCont struct {
	recordAssignment *typedast.Assignment
	arguments        []*typedast.CallArg
	span             typedast.Span
	typ              typesystem.Type
	next             continuation
}

type recordUpdateArgCont struct {
	recordAssignment *typedast.Assignment
	constructor      typedast.Expression
	evaluatedArgs    []*typedast.CallArg
	remainingArgs    []*typedast.CallArg
	span             typedast.Span
	typ              typesystem.Type
	next             continuation
}

type todoCont struct {
	span typedast.Span
	typ  typesystem.Type
	kind typedast.TodoKind
	next continuation
}

type panicCont struct {
	span typedast.Span
	typ  typesystem.Type
	next continuation
}

func (returnCont) continuationVariant()                  {}
func (discardCont) continuationVariant()                 {}
func (bindCont) continuationVariant()                    {}
func (assertCont) continuationVariant()                  {}
func (binOpRightCont) continuationVariant()              {}
func (binOpApplyCont) continuationVariant()              {}
func (callFunCont) continuationVariant()                 {}
func (callArgCont) continuationVariant()                 {}
func (listElementCont) continuationVariant()             {}
func (listTailCont) continuationVariant()                {}
func (tupleElementCont) continuationVariant()            {}
func (recordAccessCont) continuationVariant()            {}
func (tupleIndexCont) continuationVariant()              {}
func (negateBoolCont) continuationVariant()              {}
func (negateIntCont) continuationVariant()               {}
func (bitArraySegmentCont) continuationVariant()         {}
func (echoCont) continuationVariant()                    {}
func (recordUpdateRecordCont) continuationVariant()      {}
func (recordUpdateConstructorCont) continuationVariant() {}
func (recordUpdateArgCont) continuationVariant()         {}
func (todoCont) continuationVariant()                    {}
func (panicCont) continuationVariant()                   {}

func (t *transformer) transformStatements(statements []typedast.Statement, k continuation) typedast.Expression {
	if len(statements) == 0 {
		// An empty tail evaluates to the unit value.
		return t.applyContinuation(k, typedast.NilValue(typedast.Span{}))
	}

	first := statements[0]
	rest := statements[1:]

	switch stmt := first.(type) {
	case *typedast.ExpressionStatement:
		if len(rest) == 0 {
			// The last expression is the value of the block.
			return t.transformExpression(stmt.Expression, k)
		}
		// The value is discarded unless it returns early.
		return t.transformExpression(stmt.Expression, discardCont{rest: rest, next: k})

	case *typedast.Assignment:
		return t.transformExpression(stmt.Value, bindCont{assignment: stmt, rest: rest, next: k})

	case *typedast.Use:
		// use p <- f(a) followed by rest desugars to f(a, fn(p) { rest }).
		// The callback is a fresh function boundary, so early returns in
		// the trailing statements abort the callback only.
		callbackBody := t.transformStatements(rest, returnCont{})
		callbackStatements := blockStatements(callbackBody)

		var params []*typedast.FnParameter
		var paramTypes []typesystem.Type
		for _, assignment := range stmt.Assignments {
			name := "_"
			discard := true
			if bound := typedast.PatternVariables(assignment.Pattern); len(bound) > 0 {
				name = bound[0]
				discard = false
			}
			params = append(params, &typedast.FnParameter{
				Span:    assignment.Span,
				Name:    name,
				Type:    assignment.Pattern.TypeOf(),
				Discard: discard,
			})
			paramTypes = append(paramTypes, assignment.Pattern.TypeOf())
		}
		if len(params) == 0 {
			params = append(params, &typedast.FnParameter{
				Span:    stmt.Span,
				Name:    "_",
				Type:    typesystem.Nil,
				Discard: true,
			})
			paramTypes = append(paramTypes, typesystem.Nil)
		}

		bodyType := typedast.BodyType(callbackStatements)
		callback := &typedast.Fn{
			Span:       typedast.GeneratedSpan(stmt.Span),
			Type:       typesystem.TFunc{Params: paramTypes, ReturnType: bodyType},
			Parameters: params,
			Body:       callbackStatements,
			ReturnType: bodyType,
		}

		call := stmt.Call
		if c, ok := call.(*typedast.Call); ok {
			arguments := append([]*typedast.CallArg{}, c.Arguments...)
			arguments = append(arguments, &typedast.CallArg{
				Span:     stmt.Span,
				Value:    callback,
				Implicit: true,
			})
			call = &typedast.Call{Span: c.Span, Type: c.Type, Fun: c.Fun, Arguments: arguments}
		}

		return t.transformExpression(call, k)

	case *typedast.Assert:
		return t.transformExpression(stmt.Value, assertCont{assert: stmt, rest: rest, next: k})

	default:
		return t.transformStatements(rest, k)
	}
}

func (t *transformer) transformExpression(expression typedast.Expression, k continuation) typedast.Expression {
	// Expressions without early returns do not need to be broken down. They
	// are only visited for nested anonymous functions.
	if !expressionContainsReturn(expression) {
		transformed := t.transformExpressionSimple(expression)
		return t.applyContinuation(k, transformed)
	}

	switch expr := expression.(type) {
	case *typedast.EarlyReturn:
		// Early return found: the pending continuation is dropped and the
		// value becomes the function result.
		return t.transformExpression(expr.Value, returnCont{})

	case *typedast.Block:
		return t.transformStatements(expr.Statements, k)

	case *typedast.Case:
		subjectsHaveReturn := false
		for _, subject := range expr.Subjects {
			if expressionContainsReturn(subject) {
				subjectsHaveReturn = true
				break
			}
		}

		if subjectsHaveReturn {
			// The first returning subject wins: its early return aborts
			// the whole case before any clause is tried.
			for _, subject := range expr.Subjects {
				if expressionContainsReturn(subject) {
					return t.transformExpression(subject, returnCont{})
				}
			}
		}

		// Subjects are safe. The continuation is pushed into every clause
		// branch, duplicating its code per branch.
		clauses := make([]*typedast.Clause, 0, len(expr.Clauses))
		for _, clause := range expr.Clauses {
			clauses = append(clauses, &typedast.Clause{
				Span:     clause.Span,
				Patterns: clause.Patterns,
				Body:     t.transformExpression(clause.Body, k),
			})
		}
		subjects := make([]typedast.Expression, 0, len(expr.Subjects))
		for _, subject := range expr.Subjects {
			subjects = append(subjects, t.transformExpressionSimple(subject))
		}
		return &typedast.Case{
			Span:     expr.Span,
			Type:     expr.Type,
			Subjects: subjects,
			Clauses:  clauses,
		}

	case *typedast.BinOp:
		return t.transformExpression(expr.Left, binOpRightCont{
			operator: expr.Operator,
			right:    expr.Right,
			span:     expr.Span,
			typ:      expr.Type,
			next:     k,
		})

	case *typedast.Call:
		return t.transformExpression(expr.Fun, callFunCont{
			arguments: expr.Arguments,
			span:      expr.Span,
			typ:       expr.Type,
			next:      k,
		})

	case *typedast.List:
		if len(expr.Elements) == 0 {
			return t.transformTail(expr.Tail, listTailCont{
				span: expr.Span,
				typ:  expr.Type,
				next: k,
			})
		}
		return t.transformExpression(expr.Elements[0], listElementCont{
			remaining: expr.Elements[1:],
			tail:      expr.Tail,
			span:      expr.Span,
			typ:       expr.Type,
			next:      k,
		})

	case *typedast.Tuple:
		if len(expr.Elements) == 0 {
			return t.applyContinuation(k, expr)
		}
		return t.transformExpression(expr.Elements[0], tupleElementCont{
			remaining: expr.Elements[1:],
			span:      expr.Span,
			typ:       expr.Type,
			next:      k,
		})

	case *typedast.Pipeline:
		return t.transformStatements(pipelineToStatements(expr), k)

	case *typedast.NegateBool:
		return t.transformExpression(expr.Value, negateBoolCont{span: expr.Span, next: k})

	case *typedast.NegateInt:
		return t.transformExpression(expr.Value, negateIntCont{span: expr.Span, next: k})

	case *typedast.RecordAccess:
		return t.transformExpression(expr.Record, recordAccessCont{
			span:  expr.Span,
			typ:   expr.Type,
			label: expr.Label,
			index: expr.Index,
			next:  k,
		})

	case *typedast.TupleIndex:
		return t.transformExpression(expr.Tuple, tupleIndexCont{
			span:  expr.Span,
			typ:   expr.Type,
			index: expr.Index,
			next:  k,
		})

	case *typedast.BitArray:
		if len(expr.Segments) == 0 {
			return t.applyContinuation(k, expr)
		}
		first := expr.Segments[0]
		return t.transformExpression(first.Value, bitArraySegmentCont{
			currentOptions: first.Options,
			currentType:    first.Type,
			currentSpan:    first.Span,
			remaining:      expr.Segments[1:],
			span:           expr.Span,
			typ:            expr.Type,
			next:           k,
		})

	case *typedast.Echo:
		switch {
		case expr.Message != nil && expr.Expression != nil:
			return t.transformExpression(expr.Expression, echoCont{
				span:    expr.Span,
				typ:     expr.Type,
				message: expr.Message,
				next:    k,
			})
		case expr.Message != nil:
			return t.transformExpression(expr.Message, echoCont{
				span: expr.Span,
				typ:  expr.Type,
				next: k,
			})
		case expr.Expression != nil:
			return t.transformExpression(expr.Expression, echoCont{
				span: expr.Span,
				typ:  expr.Type,
				next: k,
			})
		default:
			return t.applyContinuation(k, expr)
		}

	case *typedast.RecordUpdate:
		if expr.RecordAssignment != nil {
			return t.transformExpression(expr.RecordAssignment.Value, recordUpdateRecordCont{
				assignment:  expr.RecordAssignment,
				constructor: expr.Constructor,
				arguments:   expr.Arguments,
				span:        expr.Span,
				typ:         expr.Type,
				next:        k,
			})
		}
		return t.transformExpression(expr.Constructor, recordUpdateConstructorCont{
			arguments: expr.Arguments,
			span:      expr.Span,
			typ:       expr.Type,
			next:      k,
		})

	case *typedast.Todo:
		if expr.Message != nil {
			return t.transformExpression(expr.Message, todoCont{
				span: expr.Span,
				typ:  expr.Type,
				kind: expr.Kind,
				next: k,
			})
		}
		return t.applyContinuation(k, expr)

	case *typedast.Panic:
		if expr.Message != nil {
			return t.transformExpression(expr.Message, panicCont{
				span: expr.Span,
				typ:  expr.Type,
				next: k,
			})
		}
		return t.applyContinuation(k, expr)

	default:
		transformed := t.transformExpressionSimple(expression)
		return t.applyContinuation(k, transformed)
	}
}

func (t *transformer) transformTail(tail typedast.Expression, k continuation) typedast.Expression {
	if tail != nil {
		return t.transformExpression(tail, k)
	}
	cont, ok := k.(listTailCont)
	if !ok {
		panic("transform: expected list tail continuation")
	}
	list := &typedast.List{
		Span:     cont.span,
		Type:     cont.typ,
		Elements: cont.elements,
	}
	return t.applyContinuation(cont.next, list)
}

func (t *transformer) applyContinuation(k continuation, value typedast.Expression) typedast.Expression {
	switch cont := k.(type) {
	case returnCont:
		return value

	case discardCont:
		// { value rest... }
		restExpr := t.transformStatements(cont.rest, cont.next)
		return makeBlock(
			[]typedast.Statement{&typedast.ExpressionStatement{Expression: value}},
			restExpr,
			value.SpanOf(),
		)

	case bindCont:
		// let x = value rest...
		assignment := *cont.assignment
		assignment.Value = value
		restExpr := t.transformStatements(cont.rest, cont.next)
		return makeBlock(
			[]typedast.Statement{&assignment},
			restExpr,
			value.SpanOf(),
		)

	case assertCont:
		assert := *cont.assert
		assert.Value = value
		restExpr := t.transformStatements(cont.rest, cont.next)
		return makeBlock(
			[]typedast.Statement{&assert},
			restExpr,
			value.SpanOf(),
		)

	case binOpRightCont:
		// The left operand is evaluated. If the right side can return
		// early, the left value must be pinned to a generated variable so
		// it is evaluated exactly once and in order.
		if expressionContainsReturn(cont.right) {
			varName := t.newVar()
			span := typedast.GeneratedSpan(value.SpanOf())
			varExpr := &typedast.Var{
				Span:   span,
				Type:   value.TypeOf(),
				Name:   varName,
				Origin: typedast.GeneratedOrigin,
			}

			rightExpr := t.transformExpression(cont.right, binOpApplyCont{
				operator: cont.operator,
				left:     varExpr,
				span:     cont.span,
				typ:      cont.typ,
				next:     cont.next,
			})

			assignment := &typedast.Assignment{
				Span: span,
				Kind: typedast.GeneratedAssignment,
				Pattern: &typedast.VariablePattern{
					Span:   span,
					Name:   varName,
					Type:   value.TypeOf(),
					Origin: typedast.GeneratedOrigin,
				},
				Value:        value,
				CompiledCase: typedast.SimpleVariableAssignment(varName),
			}

			return makeBlock([]typedast.Statement{assignment}, rightExpr, cont.span)
		}

		return t.transformExpression(cont.right, binOpApplyCont{
			operator: cont.operator,
			left:     value,
			span:     cont.span,
			typ:      cont.typ,
			next:     cont.next,
		})

	case binOpApplyCont:
		binop := &typedast.BinOp{
			Span:     cont.span,
			Type:     cont.typ,
			Operator: cont.operator,
			Left:     cont.left,
			Right:    value,
		}
		return t.applyContinuation(cont.next, binop)

	case callFunCont:
		return t.transformCallArgs(value, nil, cont.arguments, cont.span, cont.typ, cont.next)

	case callArgCont:
		current := *cont.remainingArgs[0]
		current.Value = value
		evaluated := append(cont.evaluatedArgs, &current)
		remaining := cont.remainingArgs[1:]

		if len(remaining) == 0 {
			call := &typedast.Call{
				Span:      cont.span,
				Type:      cont.typ,
				Fun:       cont.fun,
				Arguments: evaluated,
			}
			return t.applyContinuation(cont.next, call)
		}
		return t.transformExpression(remaining[0].Value, callArgCont{
			fun:           cont.fun,
			evaluatedArgs: evaluated,
			remainingArgs: remaining,
			span:          cont.span,
			typ:           cont.typ,
			next:          cont.next,
		})

	case listElementCont:
		evaluated := append(cont.evaluated, value)
		if len(cont.remaining) == 0 {
			return t.transformTail(cont.tail, listTailCont{
				elements: evaluated,
				span:     cont.span,
				typ:      cont.typ,
				next:     cont.next,
			})
		}
		return t.transformExpression(cont.remaining[0], listElementCont{
			evaluated: evaluated,
			remaining: cont.remaining[1:],
			tail:      cont.tail,
			span:      cont.span,
			typ:       cont.typ,
			next:      cont.next,
		})

	case listTailCont:
		list := &typedast.List{
			Span:     cont.span,
			Type:     cont.typ,
			Elements: cont.elements,
			Tail:     value,
		}
		return t.applyContinuation(cont.next, list)

	case tupleElementCont:
		evaluated := append(cont.evaluated, value)
		if len(cont.remaining) == 0 {
			tuple := &typedast.Tuple{
				Span:     cont.span,
				Type:     cont.typ,
				Elements: evaluated,
			}
			return t.applyContinuation(cont.next, tuple)
		}
		return t.transformExpression(cont.remaining[0], tupleElementCont{
			evaluated: evaluated,
			remaining: cont.remaining[1:],
			span:      cont.span,
			typ:       cont.typ,
			next:      cont.next,
		})

	case recordAccessCont:
		access := &typedast.RecordAccess{
			Span:   cont.span,
			Type:   cont.typ,
			Record: value,
			Label:  cont.label,
			Index:  cont.index,
		}
		return t.applyContinuation(cont.next, access)

	case tupleIndexCont:
		index := &typedast.TupleIndex{
			Span:  cont.span,
			Type:  cont.typ,
			Tuple: value,
			Index: cont.index,
		}
		return t.applyContinuation(cont.next, index)

	case negateBoolCont:
		return t.applyContinuation(cont.next, &typedast.NegateBool{Span: cont.span, Value: value})

	case negateIntCont:
		return t.applyContinuation(cont.next, &typedast.NegateInt{Span: cont.span, Value: value})

	case echoCont:
		if cont.message != nil {
			// value is the echoed expression, the message is still pending.
			if expressionContainsReturn(cont.message) {
				// The message returns early, so the echo never prints:
				// lower the message alone as the function result.
				return t.transformExpression(cont.message, returnCont{})
			}
			echo := &typedast.Echo{
				Span:       cont.span,
				Type:       cont.typ,
				Expression: value,
				Message:    t.transformExpressionSimple(cont.message),
			}
			return t.applyContinuation(cont.next, echo)
		}
		echo := &typedast.Echo{
			Span:       cont.span,
			Type:       cont.typ,
			Expression: value,
		}
		return t.applyContinuation(cont.next, echo)

	case bitArraySegmentCont:
		current := &typedast.BitArraySegment{
			Span:    cont.currentSpan,
			Type:    cont.currentType,
			Value:   value,
			Options: cont.currentOptions,
		}
		evaluated := append(cont.evaluated, current)

		if len(cont.remaining) == 0 {
			arr := &typedast.BitArray{
				Span:     cont.span,
				Type:     cont.typ,
				Segments: evaluated,
			}
			return t.applyContinuation(cont.next, arr)
		}
		first := cont.remaining[0]
		return t.transformExpression(first.Value, bitArraySegmentCont{
			evaluated:      evaluated,
			currentOptions: first.Options,
			currentType:    first.Type,
			currentSpan:    first.Span,
			remaining:      cont.remaining[1:],
			span:           cont.span,
			typ:            cont.typ,
			next:           cont.next,
		})

	case recordUpdateRecordCont:
		assignment := *cont.assignment
		assignment.Value = value
		return t.transformExpression(cont.constructor, recordUpdateConstructorCont{
			recordAssignment: &assignment,
			arguments:        cont.arguments,
			span:             cont.span,
			typ:              cont.typ,
			next:             cont.next,
		})

	case recordUpdateConstructorCont:
		if len(cont.arguments) == 0 {
			update := &typedast.RecordUpdate{
				Span:             cont.span,
				Type:             cont.typ,
				RecordAssignment: cont.recordAssignment,
				Constructor:      value,
			}
			return t.applyContinuation(cont.next, update)
		}
		return t.transformExpression(cont.arguments[0].Value, recordUpdateArgCont{
			recordAssignment: cont.recordAssignment,
			constructor:      value,
			remainingArgs:    cont.arguments,
			span:             cont.span,
			typ:              cont.typ,
			next:             cont.next,
		})

	case recordUpdateArgCont:
		current := *cont.remainingArgs[0]
		current.Value = value
		evaluated := append(cont.evaluatedArgs, &current)
		remaining := cont.remainingArgs[1:]

		if len(remaining) == 0 {
			update := &typedast.RecordUpdate{
				Span:             cont.span,
				Type:             cont.typ,
				RecordAssignment: cont.recordAssignment,
				Constructor:      cont.constructor,
				Arguments:        evaluated,
			}
			return t.applyContinuation(cont.next, update)
		}
		return t.transformExpression(remaining[0].Value, recordUpdateArgCont{
			recordAssignment: cont.recordAssignment,
			constructor:      cont.constructor,
			evaluatedArgs:    evaluated,
			remainingArgs:    remaining,
			span:             cont.span,
			typ:              cont.typ,
			next:             cont.next,
		})

	case todoCont:
		todo := &typedast.Todo{
			Span:    cont.span,
			Type:    cont.typ,
			Kind:    cont.kind,
			Message: value,
		}
		return t.applyContinuation(cont.next, todo)

	case panicCont:
		p := &typedast.Panic{
			Span:    cont.span,
			Type:    cont.typ,
			Message: value,
		}
		return t.applyContinuation(cont.next, p)

	default:
		panic("transform: unknown continuation variant")
	}
}

func (t *transformer) transformCallArgs(
	fun typedast.Expression,
	evaluatedArgs []*typedast.CallArg,
	remainingArgs []*typedast.CallArg,
	span typedast.Span,
	typ typesystem.Type,
	next continuation,
) typedast.Expression {
	if len(remainingArgs) == 0 {
		call := &typedast.Call{
			Span:      span,
			Type:      typ,
			Fun:       fun,
			Arguments: evaluatedArgs,
		}
		return t.applyContinuation(next, call)
	}
	return t.transformExpression(remainingArgs[0].Value, callArgCont{
		fun:           fun,
		evaluatedArgs: evaluatedArgs,
		remainingArgs: remainingArgs,
		span:          span,
		typ:           typ,
		next:          next,
	})
}

// makeBlock prefixes statements onto an expression, flattening nested
// blocks so the lowered output stays readable.
func makeBlock(prefix []typedast.Statement, suffix typedast.Expression, span typedast.Span) typedast.Expression {
	if block, ok := suffix.(*typedast.Block); ok {
		return &typedast.Block{
			Span:       span,
			Statements: append(prefix, block.Statements...),
		}
	}
	prefix = append(prefix, &typedast.ExpressionStatement{Expression: suffix})
	return &typedast.Block{Span: span, Statements: prefix}
}

// pipelineToStatements rewrites a |> b |> c into the equivalent block of
// generated let bindings followed by the final stage.
func pipelineToStatements(pipe *typedast.Pipeline) []typedast.Statement {
	var statements []typedast.Statement
	for _, assignment := range pipe.Assignments {
		span := typedast.GeneratedSpan(assignment.Span)
		statements = append(statements, &typedast.Assignment{
			Span: span,
			Kind: typedast.GeneratedAssignment,
			Pattern: &typedast.VariablePattern{
				Span:   span,
				Name:   assignment.Name,
				Type:   assignment.Value.TypeOf(),
				Origin: typedast.GeneratedOrigin,
			},
			Value:        assignment.Value,
			CompiledCase: typedast.SimpleVariableAssignment(assignment.Name),
		})
	}
	statements = append(statements, &typedast.ExpressionStatement{Expression: pipe.Finally})
	return statements
}

func blockStatements(expr typedast.Expression) []typedast.Statement {
	if block, ok := expr.(*typedast.Block); ok {
		return block.Statements
	}
	return []typedast.Statement{&typedast.ExpressionStatement{Expression: expr}}
}
