package transform

import (
	"github.com/corvid-lang/corvid/internal/typedast"
)

// ContainsReturn reports whether a function body contains any early-return
// expressions. Lowering is skipped for bodies where it is false.
func ContainsReturn(statements []typedast.Statement) bool {
	for _, stmt := range statements {
		if statementContainsReturn(stmt) {
			return true
		}
	}
	return false
}

func statementContainsReturn(statement typedast.Statement) bool {
	switch stmt := statement.(type) {
	case *typedast.ExpressionStatement:
		return expressionContainsReturn(stmt.Expression)
	case *typedast.Assignment:
		return expressionContainsReturn(stmt.Value)
	case *typedast.Use:
		return expressionContainsReturn(stmt.Call)
	case *typedast.Assert:
		return expressionContainsReturn(stmt.Value)
	default:
		return false
	}
}

// expressionContainsReturn recursively checks an expression. Early returns
// inside anonymous functions abort that function, not the enclosing one, so
// the walk stops at Fn boundaries.
func expressionContainsReturn(expression typedast.Expression) bool {
	switch expr := expression.(type) {
	case *typedast.EarlyReturn:
		return true

	case *typedast.Block:
		for _, stmt := range expr.Statements {
			if statementContainsReturn(stmt) {
				return true
			}
		}
		return false

	case *typedast.Pipeline:
		for _, assignment := range expr.Assignments {
			if expressionContainsReturn(assignment.Value) {
				return true
			}
		}
		return expressionContainsReturn(expr.Finally)

	case *typedast.Fn:
		return false

	case *typedast.List:
		for _, element := range expr.Elements {
			if expressionContainsReturn(element) {
				return true
			}
		}
		return expr.Tail != nil && expressionContainsReturn(expr.Tail)

	case *typedast.Call:
		if expressionContainsReturn(expr.Fun) {
			return true
		}
		for _, arg := range expr.Arguments {
			if expressionContainsReturn(arg.Value) {
				return true
			}
		}
		return false

	case *typedast.BinOp:
		return expressionContainsReturn(expr.Left) || expressionContainsReturn(expr.Right)

	case *typedast.Case:
		for _, subject := range expr.Subjects {
			if expressionContainsReturn(subject) {
				return true
			}
		}
		for _, clause := range expr.Clauses {
			if expressionContainsReturn(clause.Body) {
				return true
			}
		}
		return false

	case *typedast.RecordAccess:
		return expressionContainsReturn(expr.Record)

	case *typedast.TupleIndex:
		return expressionContainsReturn(expr.Tuple)

	case *typedast.ModuleSelect:
		return false

	case *typedast.RecordUpdate:
		if expr.RecordAssignment != nil && expressionContainsReturn(expr.RecordAssignment.Value) {
			return true
		}
		if expressionContainsReturn(expr.Constructor) {
			return true
		}
		for _, arg := range expr.Arguments {
			if expressionContainsReturn(arg.Value) {
				return true
			}
		}
		return false

	case *typedast.Tuple:
		for _, element := range expr.Elements {
			if expressionContainsReturn(element) {
				return true
			}
		}
		return false

	case *typedast.Todo:
		return expr.Message != nil && expressionContainsReturn(expr.Message)

	case *typedast.Panic:
		return expr.Message != nil && expressionContainsReturn(expr.Message)

	case *typedast.Echo:
		if expr.Expression != nil && expressionContainsReturn(expr.Expression) {
			return true
		}
		return expr.Message != nil && expressionContainsReturn(expr.Message)

	case *typedast.BitArray:
		for _, segment := range expr.Segments {
			if expressionContainsReturn(segment.Value) {
				return true
			}
		}
		return false

	case *typedast.NegateBool:
		return expressionContainsReturn(expr.Value)

	case *typedast.NegateInt:
		return expressionContainsReturn(expr.Value)

	default:
		// Int, Float, String, Var, ConstructorRef, Invalid
		return false
	}
}
