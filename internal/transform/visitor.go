package transform

import (
	"github.com/corvid-lang/corvid/internal/typedast"
)

// transformExpressionSimple lowers an expression that itself has no early
// returns. Nested anonymous functions still get their bodies lowered, since
// their returns are local to them.
func (t *transformer) transformExpressionSimple(expression typedast.Expression) typedast.Expression {
	switch expr := expression.(type) {
	case *typedast.Fn:
		bodyExpr := t.transformStatements(expr.Body, returnCont{})
		return &typedast.Fn{
			Span:       expr.Span,
			Type:       expr.Type,
			Parameters: expr.Parameters,
			Body:       blockStatements(bodyExpr),
			ReturnType: expr.ReturnType,
		}

	case *typedast.Block:
		statements := make([]typedast.Statement, 0, len(expr.Statements))
		for _, stmt := range expr.Statements {
			statements = append(statements, t.transformStatementSimple(stmt))
		}
		return &typedast.Block{Span: expr.Span, Statements: statements}

	case *typedast.Call:
		arguments := make([]*typedast.CallArg, 0, len(expr.Arguments))
		for _, arg := range expr.Arguments {
			copied := *arg
			copied.Value = t.transformExpressionSimple(arg.Value)
			arguments = append(arguments, &copied)
		}
		return &typedast.Call{
			Span:      expr.Span,
			Type:      expr.Type,
			Fun:       t.transformExpressionSimple(expr.Fun),
			Arguments: arguments,
		}

	default:
		return t.deepTransformSimple(expression)
	}
}

func (t *transformer) transformStatementSimple(statement typedast.Statement) typedast.Statement {
	switch stmt := statement.(type) {
	case *typedast.ExpressionStatement:
		return &typedast.ExpressionStatement{Expression: t.transformExpressionSimple(stmt.Expression)}
	case *typedast.Assignment:
		copied := *stmt
		copied.Value = t.transformExpressionSimple(stmt.Value)
		return &copied
	case *typedast.Use:
		copied := *stmt
		copied.Call = t.transformExpressionSimple(stmt.Call)
		return &copied
	case *typedast.Assert:
		copied := *stmt
		copied.Value = t.transformExpressionSimple(stmt.Value)
		return &copied
	default:
		return statement
	}
}

// deepTransformSimple is the traversal behind transformExpressionSimple: it
// only rewrites Fn bodies and otherwise rebuilds container nodes.
func (t *transformer) deepTransformSimple(expression typedast.Expression) typedast.Expression {
	switch expr := expression.(type) {
	case *typedast.Fn:
		return t.transformExpressionSimple(expr)

	case *typedast.Block:
		statements := make([]typedast.Statement, 0, len(expr.Statements))
		for _, stmt := range expr.Statements {
			statements = append(statements, t.transformStatementSimple(stmt))
		}
		return &typedast.Block{Span: expr.Span, Statements: statements}

	case *typedast.Call:
		arguments := make([]*typedast.CallArg, 0, len(expr.Arguments))
		for _, arg := range expr.Arguments {
			copied := *arg
			copied.Value = t.deepTransformSimple(arg.Value)
			arguments = append(arguments, &copied)
		}
		return &typedast.Call{
			Span:      expr.Span,
			Type:      expr.Type,
			Fun:       t.deepTransformSimple(expr.Fun),
			Arguments: arguments,
		}

	case *typedast.BinOp:
		return &typedast.BinOp{
			Span:     expr.Span,
			Type:     expr.Type,
			Operator: expr.Operator,
			Left:     t.deepTransformSimple(expr.Left),
			Right:    t.deepTransformSimple(expr.Right),
		}

	case *typedast.List:
		elements := make([]typedast.Expression, 0, len(expr.Elements))
		for _, element := range expr.Elements {
			elements = append(elements, t.deepTransformSimple(element))
		}
		var tail typedast.Expression
		if expr.Tail != nil {
			tail = t.deepTransformSimple(expr.Tail)
		}
		return &typedast.List{Span: expr.Span, Type: expr.Type, Elements: elements, Tail: tail}

	case *typedast.Tuple:
		elements := make([]typedast.Expression, 0, len(expr.Elements))
		for _, element := range expr.Elements {
			elements = append(elements, t.deepTransformSimple(element))
		}
		return &typedast.Tuple{Span: expr.Span, Type: expr.Type, Elements: elements}

	case *typedast.Case:
		subjects := make([]typedast.Expression, 0, len(expr.Subjects))
		for _, subject := range expr.Subjects {
			subjects = append(subjects, t.deepTransformSimple(subject))
		}
		clauses := make([]*typedast.Clause, 0, len(expr.Clauses))
		for _, clause := range expr.Clauses {
			clauses = append(clauses, &typedast.Clause{
				Span:     clause.Span,
				Patterns: clause.Patterns,
				Body:     t.deepTransformSimple(clause.Body),
			})
		}
		return &typedast.Case{Span: expr.Span, Type: expr.Type, Subjects: subjects, Clauses: clauses}

	case *typedast.RecordAccess:
		return &typedast.RecordAccess{
			Span:   expr.Span,
			Type:   expr.Type,
			Record: t.deepTransformSimple(expr.Record),
			Label:  expr.Label,
			Index:  expr.Index,
		}

	case *typedast.EarlyReturn:
		return &typedast.EarlyReturn{
			Span:  expr.Span,
			Type:  expr.Type,
			Value: t.deepTransformSimple(expr.Value),
		}

	default:
		return expression
	}
}
