package transform

import (
	"testing"

	"github.com/corvid-lang/corvid/internal/analyzer"
	"github.com/corvid-lang/corvid/internal/parser"
	"github.com/corvid-lang/corvid/internal/typedast"
)

// lowerSource runs the full front end on source and lowers the result.
func lowerSource(t *testing.T, source string) *typedast.Module {
	t.Helper()
	module, ctx := parser.Parse(source, "test.cv")
	if ctx.HasErrors() {
		for _, err := range ctx.Errors {
			t.Errorf("parse error: %s", err.Error())
		}
		t.FailNow()
	}
	typed := analyzer.New(ctx).Analyze(module)
	if ctx.HasErrors() {
		for _, err := range ctx.Errors {
			t.Errorf("analyze error: %s", err.Error())
		}
		t.FailNow()
	}
	LowerModule(typed)
	return typed
}

func function(t *testing.T, module *typedast.Module, name string) *typedast.Function {
	t.Helper()
	for _, fn := range module.Functions {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("no function named %s", name)
	return nil
}

func TestBodyWithoutReturnsKeepsItsShape(t *testing.T) {
	module := lowerSource(t, `
pub fn add(a: Int, b: Int) -> Int {
	a + b
}
`)
	fn := function(t, module, "add")
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body))
	}
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	if _, ok := stmt.Expression.(*typedast.BinOp); !ok {
		t.Errorf("expression is %T, want *BinOp", stmt.Expression)
	}
}

func TestDirectReturnBecomesTheValue(t *testing.T) {
	module := lowerSource(t, `
pub fn f(n: Int) -> Int {
	$return n
}
`)
	fn := function(t, module, "f")
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body))
	}
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	v, ok := stmt.Expression.(*typedast.Var)
	if !ok {
		t.Fatalf("expression is %T, want *Var", stmt.Expression)
	}
	if v.Name != "n" {
		t.Errorf("returned value = %s, want n", v.Name)
	}
}

func TestContinuationDuplicatedIntoCaseClauses(t *testing.T) {
	module := lowerSource(t, `
pub fn f(n: Int) -> Int {
	let x = case n {
		0 -> $return 0
		_ -> n + 1
	}
	x * 2
}
`)
	fn := function(t, module, "f")
	if len(fn.Body) != 1 {
		t.Fatalf("expected the case to become the whole body, got %d statements", len(fn.Body))
	}
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	c, ok := stmt.Expression.(*typedast.Case)
	if !ok {
		t.Fatalf("expression is %T, want *Case", stmt.Expression)
	}
	if len(c.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(c.Clauses))
	}

	// The returning clause drops the pending binding and yields the value.
	if _, ok := c.Clauses[0].Body.(*typedast.Int); !ok {
		t.Errorf("returning clause body is %T, want *Int", c.Clauses[0].Body)
	}

	// The other clause carries the binding and the trailing statements.
	block, ok := c.Clauses[1].Body.(*typedast.Block)
	if !ok {
		t.Fatalf("fallthrough clause body is %T, want *Block", c.Clauses[1].Body)
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected binding plus trailing expression, got %d statements", len(block.Statements))
	}
	binding, ok := block.Statements[0].(*typedast.Assignment)
	if !ok {
		t.Fatalf("first statement is %T, want *Assignment", block.Statements[0])
	}
	pattern := binding.Pattern.(*typedast.VariablePattern)
	if pattern.Name != "x" {
		t.Errorf("binding name = %s, want x", pattern.Name)
	}
}

func TestBinOpLeftIsPinnedWhenRightReturns(t *testing.T) {
	module := lowerSource(t, `
pub fn f(n: Int) -> Int {
	n + {
		case n {
			0 -> $return 1
			_ -> n
		}
	}
}
`)
	fn := function(t, module, "f")
	if len(fn.Body) != 2 {
		t.Fatalf("expected pinned left plus case, got %d statements", len(fn.Body))
	}

	binding, ok := fn.Body[0].(*typedast.Assignment)
	if !ok {
		t.Fatalf("first statement is %T, want *Assignment", fn.Body[0])
	}
	if binding.Kind != typedast.GeneratedAssignment {
		t.Error("pinned left operand should use a generated assignment")
	}
	pattern := binding.Pattern.(*typedast.VariablePattern)
	if pattern.Name != "_cps_var_1" {
		t.Errorf("generated name = %s, want _cps_var_1", pattern.Name)
	}
	if pattern.Origin != typedast.GeneratedOrigin {
		t.Error("generated variable should be marked as generated")
	}

	stmt := fn.Body[1].(*typedast.ExpressionStatement)
	c, ok := stmt.Expression.(*typedast.Case)
	if !ok {
		t.Fatalf("second statement is %T, want a *Case expression", stmt.Expression)
	}
	if _, ok := c.Clauses[0].Body.(*typedast.Int); !ok {
		t.Errorf("returning clause body is %T, want *Int", c.Clauses[0].Body)
	}
	binop, ok := c.Clauses[1].Body.(*typedast.BinOp)
	if !ok {
		t.Fatalf("fallthrough clause body is %T, want *BinOp", c.Clauses[1].Body)
	}
	left, ok := binop.Left.(*typedast.Var)
	if !ok || left.Name != "_cps_var_1" {
		t.Errorf("left operand should be the pinned variable, got %v", binop.Left)
	}
}

func TestFirstReturningSubjectWins(t *testing.T) {
	module := lowerSource(t, `
pub fn f(n: Int) -> Int {
	case n, $return 1 {
		_, _ -> 0
	}
}
`)
	fn := function(t, module, "f")
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body))
	}
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	value, ok := stmt.Expression.(*typedast.Int)
	if !ok {
		t.Fatalf("expression is %T, want the returned *Int", stmt.Expression)
	}
	if value.Value != 1 {
		t.Errorf("returned value = %d, want 1", value.Value)
	}
}

func TestUseCallbackKeepsReturnsLocal(t *testing.T) {
	module := lowerSource(t, `
fn with(v: Int, k: fn(Int) -> Int) -> Int {
	k(v)
}

pub fn main() -> Int {
	use x <- with(1)
	$return x
}
`)
	fn := function(t, module, "main")
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body))
	}
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	call, ok := stmt.Expression.(*typedast.Call)
	if !ok {
		t.Fatalf("expression is %T, want *Call", stmt.Expression)
	}
	if len(call.Arguments) != 2 {
		t.Fatalf("expected the explicit argument plus the callback, got %d", len(call.Arguments))
	}

	last := call.Arguments[len(call.Arguments)-1]
	if !last.Implicit {
		t.Error("the synthesised callback argument should be implicit")
	}
	callback, ok := last.Value.(*typedast.Fn)
	if !ok {
		t.Fatalf("callback is %T, want *Fn", last.Value)
	}
	if len(callback.Parameters) != 1 || callback.Parameters[0].Name != "x" {
		t.Errorf("callback should take the bound pattern as its parameter")
	}
	if len(callback.Body) != 1 {
		t.Fatalf("callback body has %d statements, want 1", len(callback.Body))
	}
	inner := callback.Body[0].(*typedast.ExpressionStatement)
	if v, ok := inner.Expression.(*typedast.Var); !ok || v.Name != "x" {
		t.Errorf("the return inside the use body should become the callback result, got %T", inner.Expression)
	}
}

func TestBareUseGetsDiscardCallback(t *testing.T) {
	module := lowerSource(t, `
fn guard(ok: Bool, k: fn(Nil) -> Int) -> Int {
	k(Nil)
}

pub fn main() -> Int {
	use <- guard(True)
	$return 1
}
`)
	fn := function(t, module, "main")
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	call := stmt.Expression.(*typedast.Call)
	callback := call.Arguments[len(call.Arguments)-1].Value.(*typedast.Fn)
	if len(callback.Parameters) != 1 {
		t.Fatalf("expected a single synthesised parameter, got %d", len(callback.Parameters))
	}
	if !callback.Parameters[0].Discard || callback.Parameters[0].Name != "_" {
		t.Error("bare use should get a discarded callback parameter")
	}
}

func TestPipelineWithReturningFirstStage(t *testing.T) {
	module := lowerSource(t, `
fn inc(n: Int) -> Int {
	n + 1
}

pub fn main() -> Int {
	{ $return 2 } |> inc
}
`)
	fn := function(t, module, "main")
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body))
	}
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	value, ok := stmt.Expression.(*typedast.Int)
	if !ok {
		t.Fatalf("expression is %T, want the returned *Int", stmt.Expression)
	}
	if value.Value != 2 {
		t.Errorf("returned value = %d, want 2", value.Value)
	}
}

func TestPipelineWithoutReturnsIsLeftIntact(t *testing.T) {
	module := lowerSource(t, `
fn inc(n: Int) -> Int {
	n + 1
}

pub fn main() -> Int {
	1 |> inc |> inc
}
`)
	fn := function(t, module, "main")
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	if _, ok := stmt.Expression.(*typedast.Pipeline); !ok {
		t.Errorf("expression is %T, want an untouched *Pipeline", stmt.Expression)
	}
}

func TestEchoWithReturningMessageNeverPrints(t *testing.T) {
	module := lowerSource(t, `
pub fn main(n: Int) -> Int {
	echo 1 as case n {
		0 -> $return 5
		_ -> "msg"
	}
}
`)
	fn := function(t, module, "main")
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	c, ok := stmt.Expression.(*typedast.Case)
	if !ok {
		t.Fatalf("expression is %T, want the lowered message *Case", stmt.Expression)
	}
	if _, ok := c.Clauses[0].Body.(*typedast.Int); !ok {
		t.Errorf("returning clause body is %T, want *Int", c.Clauses[0].Body)
	}
	if _, ok := c.Clauses[1].Body.(*typedast.String); !ok {
		t.Errorf("fallthrough clause body is %T, want *String", c.Clauses[1].Body)
	}
}

func TestNestedBlocksAreFlattened(t *testing.T) {
	module := lowerSource(t, `
pub fn main(n: Int) -> Int {
	let a = case n {
		0 -> $return 0
		_ -> 1
	}
	let b = a + 1
	b
}
`)
	fn := function(t, module, "main")
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	c := stmt.Expression.(*typedast.Case)
	block, ok := c.Clauses[1].Body.(*typedast.Block)
	if !ok {
		t.Fatalf("fallthrough clause body is %T, want *Block", c.Clauses[1].Body)
	}
	if len(block.Statements) != 3 {
		t.Fatalf("expected a flat block of 3 statements, got %d", len(block.Statements))
	}
	for _, inner := range block.Statements {
		if es, ok := inner.(*typedast.ExpressionStatement); ok {
			if _, nested := es.Expression.(*typedast.Block); nested {
				t.Error("lowered output should not contain nested blocks")
			}
		}
	}
}

func TestAssertWithReturningCondition(t *testing.T) {
	module := lowerSource(t, `
pub fn main(n: Int) -> Int {
	assert case n {
		0 -> $return 0
		_ -> True
	}
	1
}
`)
	fn := function(t, module, "main")
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	c := stmt.Expression.(*typedast.Case)
	block, ok := c.Clauses[1].Body.(*typedast.Block)
	if !ok {
		t.Fatalf("fallthrough clause body is %T, want *Block", c.Clauses[1].Body)
	}
	if _, ok := block.Statements[0].(*typedast.Assert); !ok {
		t.Errorf("first statement is %T, want the pending *Assert", block.Statements[0])
	}
}

func TestNestedFnBodyIsLoweredOnTheSimplePath(t *testing.T) {
	module := lowerSource(t, `
pub fn main() -> Int {
	let f = fn(n: Int) -> Int {
		$return n
	}
	f(1)
}
`)
	fn := function(t, module, "main")
	binding := fn.Body[0].(*typedast.Assignment)
	inner, ok := binding.Value.(*typedast.Fn)
	if !ok {
		t.Fatalf("binding value is %T, want *Fn", binding.Value)
	}
	stmt := inner.Body[0].(*typedast.ExpressionStatement)
	if _, still := stmt.Expression.(*typedast.EarlyReturn); still {
		t.Error("the nested function body should have been lowered")
	}
	if v, ok := stmt.Expression.(*typedast.Var); !ok || v.Name != "n" {
		t.Errorf("nested body expression is %T, want *Var n", stmt.Expression)
	}
}

func TestReturnInCallArgumentShortCircuitsTheCall(t *testing.T) {
	module := lowerSource(t, `
fn add(a: Int, b: Int) -> Int {
	a + b
}

pub fn main(n: Int) -> Int {
	add(n, case n {
		0 -> $return 9
		_ -> n
	})
}
`)
	fn := function(t, module, "main")
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	c, ok := stmt.Expression.(*typedast.Case)
	if !ok {
		t.Fatalf("expression is %T, want *Case", stmt.Expression)
	}
	if _, ok := c.Clauses[0].Body.(*typedast.Int); !ok {
		t.Errorf("returning clause body is %T, want *Int", c.Clauses[0].Body)
	}
	call, ok := c.Clauses[1].Body.(*typedast.Call)
	if !ok {
		t.Fatalf("fallthrough clause body is %T, want the rebuilt *Call", c.Clauses[1].Body)
	}
	if len(call.Arguments) != 2 {
		t.Errorf("rebuilt call has %d arguments, want 2", len(call.Arguments))
	}
}
