package transform

import (
	"testing"

	"github.com/corvid-lang/corvid/internal/typedast"
	"github.com/corvid-lang/corvid/internal/typesystem"
)

func ret(value typedast.Expression) *typedast.EarlyReturn {
	return &typedast.EarlyReturn{Type: typesystem.TVar{Name: "t0"}, Value: value}
}

func intLit(v int64) *typedast.Int {
	return &typedast.Int{Value: v}
}

func exprStmt(e typedast.Expression) typedast.Statement {
	return &typedast.ExpressionStatement{Expression: e}
}

func TestContainsReturnDirect(t *testing.T) {
	body := []typedast.Statement{exprStmt(ret(intLit(1)))}
	if !ContainsReturn(body) {
		t.Error("expected a direct early return to be found")
	}
}

func TestContainsReturnAbsent(t *testing.T) {
	body := []typedast.Statement{
		exprStmt(intLit(1)),
		exprStmt(&typedast.BinOp{Operator: "+", Left: intLit(1), Right: intLit(2), Type: typesystem.Int}),
	}
	if ContainsReturn(body) {
		t.Error("no early return present, but one was reported")
	}
}

func TestContainsReturnStopsAtFnBoundary(t *testing.T) {
	fn := &typedast.Fn{
		Type: typesystem.TFunc{ReturnType: typesystem.Int},
		Body: []typedast.Statement{exprStmt(ret(intLit(1)))},
	}
	body := []typedast.Statement{exprStmt(fn)}
	if ContainsReturn(body) {
		t.Error("early returns inside anonymous functions are local to them")
	}
}

func TestContainsReturnInContainers(t *testing.T) {
	tests := []struct {
		name string
		expr typedast.Expression
		want bool
	}{
		{"list element", &typedast.List{Elements: []typedast.Expression{ret(intLit(1))}}, true},
		{"list tail", &typedast.List{Tail: ret(intLit(1))}, true},
		{"tuple element", &typedast.Tuple{Elements: []typedast.Expression{intLit(1), ret(intLit(2))}}, true},
		{"binop right", &typedast.BinOp{Operator: "+", Left: intLit(1), Right: ret(intLit(2))}, true},
		{"call argument", &typedast.Call{
			Fun:       &typedast.Var{Name: "f"},
			Arguments: []*typedast.CallArg{{Value: ret(intLit(1))}},
		}, true},
		{"case subject", &typedast.Case{Subjects: []typedast.Expression{ret(intLit(1))}}, true},
		{"case clause body", &typedast.Case{
			Subjects: []typedast.Expression{intLit(1)},
			Clauses:  []*typedast.Clause{{Body: ret(intLit(2))}},
		}, true},
		{"record access", &typedast.RecordAccess{Record: ret(intLit(1))}, true},
		{"tuple index", &typedast.TupleIndex{Tuple: ret(intLit(1))}, true},
		{"bool negation", &typedast.NegateBool{Value: ret(intLit(1))}, true},
		{"echo message", &typedast.Echo{Expression: intLit(1), Message: ret(intLit(2))}, true},
		{"todo message", &typedast.Todo{Message: ret(intLit(1))}, true},
		{"panic message", &typedast.Panic{Message: ret(intLit(1))}, true},
		{"bit array segment", &typedast.BitArray{
			Segments: []*typedast.BitArraySegment{{Value: ret(intLit(1))}},
		}, true},
		{"module select is a leaf", &typedast.ModuleSelect{Module: "wibble", Label: "wobble"}, false},
		{"plain literal", intLit(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expressionContainsReturn(tt.expr)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUseChecksOnlyTheCall(t *testing.T) {
	returningCall := &typedast.Use{
		Call: &typedast.Call{
			Fun:       &typedast.Var{Name: "with"},
			Arguments: []*typedast.CallArg{{Value: ret(intLit(1))}},
		},
	}
	if !statementContainsReturn(returningCall) {
		t.Error("early return in the use call should be found")
	}

	plainCall := &typedast.Use{
		Call: &typedast.Call{
			Fun:       &typedast.Var{Name: "with"},
			Arguments: []*typedast.CallArg{{Value: intLit(1)}},
		},
	}
	if statementContainsReturn(plainCall) {
		t.Error("a use without returns in its call should report false")
	}
}

func TestContainsReturnInPipeline(t *testing.T) {
	pipe := &typedast.Pipeline{
		Assignments: []*typedast.PipelineAssignment{{Name: "_pipe_0", Value: ret(intLit(1))}},
		Finally:     intLit(2),
	}
	if !expressionContainsReturn(pipe) {
		t.Error("early return in a pipeline stage should be found")
	}
}
