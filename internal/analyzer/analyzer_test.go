package analyzer

import (
	"strings"
	"testing"

	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/parser"
	"github.com/corvid-lang/corvid/internal/pipeline"
	"github.com/corvid-lang/corvid/internal/typedast"
)

func analyze(t *testing.T, source string) (*typedast.Module, *pipeline.PipelineContext) {
	t.Helper()
	module, ctx := parser.Parse(source, "test.cv")
	if ctx.HasErrors() {
		for _, err := range ctx.Errors {
			t.Errorf("parse error: %s", err.Error())
		}
		t.FailNow()
	}
	typed := New(ctx).Analyze(module)
	ctx.TypedModule = typed
	return typed, ctx
}

func expectNoErrors(t *testing.T, ctx *pipeline.PipelineContext) {
	t.Helper()
	if ctx.HasErrors() {
		for _, err := range ctx.Errors {
			t.Errorf("unexpected error: %s", err.Error())
		}
		t.FailNow()
	}
}

func expectError(t *testing.T, ctx *pipeline.PipelineContext, code diagnostics.ErrorCode, fragment string) {
	t.Helper()
	for _, err := range ctx.Errors {
		if err.Code == code && strings.Contains(err.Message, fragment) {
			return
		}
	}
	t.Errorf("expected %s error containing %q, got %d diagnostics:", code, fragment, len(ctx.Errors))
	for _, err := range ctx.Errors {
		t.Errorf("  %s", err.Error())
	}
}

func TestInferSimpleFunction(t *testing.T) {
	typed, ctx := analyze(t, `
pub fn add(a: Int, b: Int) -> Int {
	a + b
}
`)
	expectNoErrors(t, ctx)

	if len(typed.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(typed.Functions))
	}
	fn := typed.Functions[0]
	if fn.ReturnType.String() != "Int" {
		t.Errorf("return type = %s, want Int", fn.ReturnType.String())
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body))
	}
	stmt, ok := fn.Body[0].(*typedast.ExpressionStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ExpressionStatement", fn.Body[0])
	}
	if _, ok := stmt.Expression.(*typedast.BinOp); !ok {
		t.Errorf("expression is %T, want *BinOp", stmt.Expression)
	}
}

func TestBodyReturnTypeMismatch(t *testing.T) {
	_, ctx := analyze(t, `
fn wrong() -> Int {
	"not an int"
}
`)
	expectError(t, ctx, diagnostics.ErrA002, "return type")
}

func TestEarlyReturnMatchesReturnType(t *testing.T) {
	_, ctx := analyze(t, `
pub fn classify(n: Int) -> String {
	case n {
		0 -> $return "zero"
		_ -> Nil
	}
	"other"
}
`)
	expectNoErrors(t, ctx)
}

func TestEarlyReturnTypeMismatch(t *testing.T) {
	_, ctx := analyze(t, `
fn wrong() -> Int {
	$return "nope"
}
`)
	expectError(t, ctx, diagnostics.ErrA003, "returned value does not match")
}

func TestEarlyReturnInFnLiteralTargetsTheLiteral(t *testing.T) {
	_, ctx := analyze(t, `
pub fn outer() -> Int {
	let shout = fn(s: String) -> String {
		$return s
	}
	shout("hey")
	1
}
`)
	expectNoErrors(t, ctx)
}

func TestEarlyReturnInFnLiteralMismatch(t *testing.T) {
	_, ctx := analyze(t, `
pub fn outer() -> Int {
	let f = fn() -> String {
		$return 1
	}
	2
}
`)
	expectError(t, ctx, diagnostics.ErrA003, "returned value does not match")
}

func TestUnknownName(t *testing.T) {
	_, ctx := analyze(t, `
fn f() -> Int {
	missing
}
`)
	expectError(t, ctx, diagnostics.ErrA001, "unknown name missing")
}

func TestUnreachableCodeAfterEarlyReturn(t *testing.T) {
	_, ctx := analyze(t, `
fn f() -> Int {
	$return 1
	2
}
`)
	if ctx.HasErrors() {
		for _, err := range ctx.Errors {
			t.Errorf("unexpected error: %s", err.Error())
		}
	}

	found := false
	for _, err := range ctx.Errors {
		if err.Code == diagnostics.WarnA100 && err.Warning {
			found = true
		}
	}
	if !found {
		t.Error("expected an unreachable code warning")
	}
}

func TestUseCallTyping(t *testing.T) {
	_, ctx := analyze(t, `
fn with(v: Int, k: fn(Int) -> Int) -> Int {
	k(v)
}

pub fn main() -> Int {
	use x <- with(1)
	x + 1
}
`)
	expectNoErrors(t, ctx)
}

func TestUseCalleeWithoutCallbackParameter(t *testing.T) {
	_, ctx := analyze(t, `
fn plain(v: Int) -> Int {
	v
}

pub fn main() -> Int {
	use x <- plain(1)
	x
}
`)
	expectError(t, ctx, diagnostics.ErrA002, "trailing callback")
}

func TestCaseClausesMustAgree(t *testing.T) {
	_, ctx := analyze(t, `
fn f(n: Int) -> Int {
	case n {
		0 -> 1
		_ -> "mixed"
	}
}
`)
	expectError(t, ctx, diagnostics.ErrA002, "same type")
}

func TestWrongArity(t *testing.T) {
	_, ctx := analyze(t, `
fn add(a: Int, b: Int) -> Int {
	a + b
}

fn g() -> Int {
	add(1)
}
`)
	expectError(t, ctx, diagnostics.ErrA004, "expected 2 arguments")
}

func TestConstructorAndFieldAccess(t *testing.T) {
	typed, ctx := analyze(t, `
type Person {
	Person(name: String, age: Int)
}

pub fn age_of(p: Person) -> Int {
	p.age
}
`)
	expectNoErrors(t, ctx)

	fn := typed.Functions[0]
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	access, ok := stmt.Expression.(*typedast.RecordAccess)
	if !ok {
		t.Fatalf("expression is %T, want *RecordAccess", stmt.Expression)
	}
	if access.Index != 1 {
		t.Errorf("field index = %d, want 1", access.Index)
	}
}

func TestRecordUpdate(t *testing.T) {
	typed, ctx := analyze(t, `
type Person {
	Person(name: String, age: Int)
}

pub fn rename(p: Person, new_name: String) -> Person {
	Person(..p, name: new_name)
}
`)
	expectNoErrors(t, ctx)

	fn := typed.Functions[0]
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	update, ok := stmt.Expression.(*typedast.RecordUpdate)
	if !ok {
		t.Fatalf("expression is %T, want *RecordUpdate", stmt.Expression)
	}
	if update.RecordAssignment != nil {
		t.Error("plain variable base should not need a generated binding")
	}
	if len(update.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(update.Arguments))
	}
	if _, ok := update.Arguments[1].Value.(*typedast.RecordAccess); !ok {
		t.Errorf("unmentioned field should be copied from the base, got %T", update.Arguments[1].Value)
	}
}

func TestRecordUpdateUnknownField(t *testing.T) {
	_, ctx := analyze(t, `
type Person {
	Person(name: String, age: Int)
}

fn f(p: Person) -> Person {
	Person(..p, wrong: 1)
}
`)
	expectError(t, ctx, diagnostics.ErrA006, "no field wrong")
}

func TestRecordUpdateComplexBaseIsBoundOnce(t *testing.T) {
	typed, ctx := analyze(t, `
type Person {
	Person(name: String, age: Int)
}

fn make() -> Person {
	Person("wibble", 3)
}

pub fn grow() -> Person {
	Person(..make(), age: 4)
}
`)
	expectNoErrors(t, ctx)

	fn := typed.Functions[1]
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	update := stmt.Expression.(*typedast.RecordUpdate)
	if update.RecordAssignment == nil {
		t.Fatal("call base should be bound to a generated variable")
	}
	if update.RecordAssignment.Kind != typedast.GeneratedAssignment {
		t.Error("base binding should be marked generated")
	}
}

func TestPipelineTyping(t *testing.T) {
	typed, ctx := analyze(t, `
fn inc(n: Int) -> Int {
	n + 1
}

pub fn main() -> Int {
	1 |> inc |> inc
}
`)
	expectNoErrors(t, ctx)

	fn := typed.Functions[1]
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	pipe, ok := stmt.Expression.(*typedast.Pipeline)
	if !ok {
		t.Fatalf("expression is %T, want *Pipeline", stmt.Expression)
	}
	if len(pipe.Assignments) != 2 {
		t.Errorf("expected 2 generated assignments, got %d", len(pipe.Assignments))
	}
	if _, ok := pipe.Finally.(*typedast.Call); !ok {
		t.Errorf("final stage is %T, want *Call", pipe.Finally)
	}
	if pipe.Type.String() != "Int" {
		t.Errorf("pipeline type = %s, want Int", pipe.Type.String())
	}
}

func TestPipelineEchoStage(t *testing.T) {
	typed, ctx := analyze(t, `
fn inc(n: Int) -> Int {
	n + 1
}

pub fn main() -> Int {
	1 |> echo |> inc
}
`)
	expectNoErrors(t, ctx)

	fn := typed.Functions[1]
	stmt := fn.Body[0].(*typedast.ExpressionStatement)
	pipe := stmt.Expression.(*typedast.Pipeline)
	echo, ok := pipe.Assignments[1].Value.(*typedast.Echo)
	if !ok {
		t.Fatalf("echo stage lowered to %T, want *Echo", pipe.Assignments[1].Value)
	}
	if echo.Expression == nil {
		t.Error("echo stage should thread the piped value through")
	}
}

func TestGenericCustomType(t *testing.T) {
	_, ctx := analyze(t, `
type Box(a) {
	Box(content: a)
}

pub fn unbox(b: Box(Int)) -> Int {
	b.content
}

pub fn wrap(n: Int) -> Box(Int) {
	Box(n)
}
`)
	expectNoErrors(t, ctx)
}

func TestTupleIndexTyping(t *testing.T) {
	_, ctx := analyze(t, `
pub fn second(pair: #(Int, String)) -> String {
	pair.1
}
`)
	expectNoErrors(t, ctx)
}

func TestTupleIndexOutOfRange(t *testing.T) {
	_, ctx := analyze(t, `
fn f(pair: #(Int, String)) -> Int {
	pair.5
}
`)
	expectError(t, ctx, diagnostics.ErrA002, "out of range")
}

func TestAssertTyping(t *testing.T) {
	_, ctx := analyze(t, `
pub fn main(n: Int) -> Int {
	assert n > 0 as "n must be positive"
	n
}
`)
	expectNoErrors(t, ctx)
}

func TestAssertRequiresBool(t *testing.T) {
	_, ctx := analyze(t, `
fn f(n: Int) -> Int {
	assert n
	n
}
`)
	expectError(t, ctx, diagnostics.ErrA002, "Bool")
}

func TestConstantTyping(t *testing.T) {
	_, ctx := analyze(t, `
const answer: Int = 42

pub fn f() -> Int {
	answer
}
`)
	expectNoErrors(t, ctx)
}

func TestListTyping(t *testing.T) {
	_, ctx := analyze(t, `
pub fn f(rest: List(Int)) -> List(Int) {
	[1, 2, ..rest]
}
`)
	expectNoErrors(t, ctx)
}

func TestListElementMismatch(t *testing.T) {
	_, ctx := analyze(t, `
fn f() -> List(Int) {
	[1, "two"]
}
`)
	expectError(t, ctx, diagnostics.ErrA002, "share one type")
}

func TestResultConstructors(t *testing.T) {
	_, ctx := analyze(t, `
pub fn parse_sign(n: Int) -> Result(String, String) {
	case n {
		0 -> Error("zero is unsigned")
		_ -> Ok("signed")
	}
}
`)
	expectNoErrors(t, ctx)
}
