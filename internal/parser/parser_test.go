package parser

import (
	"testing"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/pipeline"
)

func parseModule(t *testing.T, input string) (*ast.Module, *pipeline.PipelineContext) {
	t.Helper()
	module, ctx := Parse(input, "test.cv")
	return module, ctx
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

func firstFunction(t *testing.T, module *ast.Module) *ast.Function {
	t.Helper()
	for _, stmt := range module.Statements {
		if fn, ok := stmt.(*ast.Function); ok {
			return fn
		}
	}
	t.Fatalf("module has no function")
	return nil
}

func TestParseNamedFunction(t *testing.T) {
	input := `pub fn add(a: Int, b: Int) -> Int {
  a + b
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	if !fn.Public {
		t.Errorf("expected public function")
	}
	if fn.Name.Value != "add" {
		t.Errorf("expected name add, got %s", fn.Name.Value)
	}
	if len(fn.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Parameters))
	}
	ret, ok := fn.ReturnType.(*ast.NamedType)
	if !ok || ret.Name != "Int" {
		t.Errorf("expected return type Int, got %v", fn.ReturnType)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body))
	}
	stmt, ok := fn.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected expression statement, got %T", fn.Body[0])
	}
	infix, ok := stmt.Expression.(*ast.InfixExpression)
	if !ok || infix.Operator != "+" {
		t.Fatalf("expected a + b, got %T", stmt.Expression)
	}
}

func TestParseEarlyReturnStatement(t *testing.T) {
	input := `fn validate(age: Int) -> Int {
  $return 0
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	stmt, ok := fn.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected expression statement, got %T", fn.Body[0])
	}
	ret, ok := stmt.Expression.(*ast.EarlyReturnExpression)
	if !ok {
		t.Fatalf("expected early return, got %T", stmt.Expression)
	}
	value, ok := ret.Value.(*ast.IntegerLiteral)
	if !ok || value.Value != 0 {
		t.Fatalf("expected value 0, got %v", ret.Value)
	}
}

func TestParseEarlyReturnInsideCaseClause(t *testing.T) {
	input := `fn classify(n: Int) -> Int {
  let doubled = case n {
    0 -> $return 100
    _ -> n * 2
  }
  doubled + 1
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	let, ok := fn.Body[0].(*ast.LetStatement)
	if !ok {
		t.Fatalf("expected let, got %T", fn.Body[0])
	}
	caseExpr, ok := let.Value.(*ast.CaseExpression)
	if !ok {
		t.Fatalf("expected case, got %T", let.Value)
	}
	if len(caseExpr.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(caseExpr.Clauses))
	}
	if _, ok := caseExpr.Clauses[0].Body.(*ast.EarlyReturnExpression); !ok {
		t.Fatalf("expected early return in first clause, got %T", caseExpr.Clauses[0].Body)
	}
}

func TestParseEarlyReturnValueIsFullExpression(t *testing.T) {
	input := `fn f(x: Int) -> Int {
  $return x + 1
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	stmt := fn.Body[0].(*ast.ExpressionStatement)
	ret := stmt.Expression.(*ast.EarlyReturnExpression)
	if _, ok := ret.Value.(*ast.InfixExpression); !ok {
		t.Fatalf("expected $return to capture x + 1, got %T", ret.Value)
	}
}

func TestParseEarlyReturnInFnLiteral(t *testing.T) {
	input := `fn outer() -> Int {
  let f = fn(x: Int) -> Int { $return x }
  f(1)
}`
	_, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)
}

func TestParseLetWithAnnotation(t *testing.T) {
	input := `fn f() {
  let x: Int = 42
  let #(a, b) = #(1, 2)
  let Ok(value) = Ok(3)
  x
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	if len(fn.Body) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(fn.Body))
	}
	let := fn.Body[1].(*ast.LetStatement)
	if _, ok := let.Pattern.(*ast.TuplePattern); !ok {
		t.Fatalf("expected tuple pattern, got %T", let.Pattern)
	}
	let = fn.Body[2].(*ast.LetStatement)
	ctor, ok := let.Pattern.(*ast.ConstructorPattern)
	if !ok || ctor.Name != "Ok" {
		t.Fatalf("expected Ok pattern, got %T", let.Pattern)
	}
}

func TestParseUseStatement(t *testing.T) {
	input := `fn f() {
  use a, b <- with_pair(1, 2)
  a + b
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	use, ok := fn.Body[0].(*ast.UseStatement)
	if !ok {
		t.Fatalf("expected use statement, got %T", fn.Body[0])
	}
	if len(use.Patterns) != 2 {
		t.Fatalf("expected 2 patterns, got %d", len(use.Patterns))
	}
	if _, ok := use.Call.(*ast.CallExpression); !ok {
		t.Fatalf("expected call, got %T", use.Call)
	}
}

func TestParseBareUse(t *testing.T) {
	input := `fn f() {
  use <- defer_thing()
  1
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	use := fn.Body[0].(*ast.UseStatement)
	if len(use.Patterns) != 0 {
		t.Fatalf("expected no patterns, got %d", len(use.Patterns))
	}
}

func TestParsePipeline(t *testing.T) {
	input := `fn f(x: Int) -> Int {
  x |> double |> add(1)
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	stmt := fn.Body[0].(*ast.ExpressionStatement)
	pipe, ok := stmt.Expression.(*ast.PipelineExpression)
	if !ok {
		t.Fatalf("expected pipeline, got %T", stmt.Expression)
	}
	if len(pipe.Stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(pipe.Stages))
	}
	if _, ok := pipe.First.(*ast.Identifier); !ok {
		t.Fatalf("expected identifier first, got %T", pipe.First)
	}
}

func TestParseRecordUpdate(t *testing.T) {
	input := `fn f(p: Person) -> Person {
  Person(..p, age: 30)
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	stmt := fn.Body[0].(*ast.ExpressionStatement)
	update, ok := stmt.Expression.(*ast.RecordUpdate)
	if !ok {
		t.Fatalf("expected record update, got %T", stmt.Expression)
	}
	if len(update.Fields) != 1 || update.Fields[0].Label != "age" {
		t.Fatalf("expected field age, got %v", update.Fields)
	}
}

func TestParseMultiSubjectCase(t *testing.T) {
	input := `fn f(a: Int, b: Int) -> Int {
  case a, b {
    0, 0 -> 0
    _, _ -> 1
  }
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	stmt := fn.Body[0].(*ast.ExpressionStatement)
	caseExpr := stmt.Expression.(*ast.CaseExpression)
	if len(caseExpr.Subjects) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(caseExpr.Subjects))
	}
	if len(caseExpr.Clauses[0].Patterns) != 2 {
		t.Fatalf("expected 2 patterns per clause, got %d", len(caseExpr.Clauses[0].Patterns))
	}
}

func TestParseBitArray(t *testing.T) {
	input := `fn f(v: Int) -> BitArray {
  <<v:size(8), 255:8, v:big>>
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	stmt := fn.Body[0].(*ast.ExpressionStatement)
	arr, ok := stmt.Expression.(*ast.BitArrayLiteral)
	if !ok {
		t.Fatalf("expected bit array, got %T", stmt.Expression)
	}
	if len(arr.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(arr.Segments))
	}
	if arr.Segments[0].Options[0].Name != "size" {
		t.Errorf("expected size option, got %s", arr.Segments[0].Options[0].Name)
	}
	if arr.Segments[1].Options[0].Name != "size" {
		t.Errorf("expected numeric shorthand to become size, got %s", arr.Segments[1].Options[0].Name)
	}
}

func TestParseListWithSpread(t *testing.T) {
	input := `fn f(rest: List(Int)) -> List(Int) {
  [1, 2, ..rest]
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	stmt := fn.Body[0].(*ast.ExpressionStatement)
	list := stmt.Expression.(*ast.ListLiteral)
	if len(list.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(list.Elements))
	}
	if list.Tail == nil {
		t.Fatalf("expected spread tail")
	}
}

func TestParseEchoForms(t *testing.T) {
	input := `fn f(x: Int) -> Int {
  echo x
  echo x as "labelled"
  x |> echo |> double
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	first := fn.Body[0].(*ast.ExpressionStatement).Expression.(*ast.EchoExpression)
	if first.Expression == nil || first.Message != nil {
		t.Fatalf("expected bare echo of x")
	}
	second := fn.Body[1].(*ast.ExpressionStatement).Expression.(*ast.EchoExpression)
	if second.Message == nil {
		t.Fatalf("expected echo message")
	}
	pipe := fn.Body[2].(*ast.ExpressionStatement).Expression.(*ast.PipelineExpression)
	stage, ok := pipe.Stages[0].(*ast.EchoExpression)
	if !ok || stage.Expression != nil {
		t.Fatalf("expected bare echo pipeline stage, got %T", pipe.Stages[0])
	}
}

func TestParseCustomType(t *testing.T) {
	input := `pub type Shape {
  Circle(radius: Float)
  Rect(Float, Float)
  Point
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	td, ok := module.Statements[0].(*ast.CustomTypeDeclaration)
	if !ok {
		t.Fatalf("expected type declaration, got %T", module.Statements[0])
	}
	if len(td.Constructors) != 3 {
		t.Fatalf("expected 3 constructors, got %d", len(td.Constructors))
	}
	if td.Constructors[0].Fields[0].Label != "radius" {
		t.Errorf("expected labelled field radius")
	}
	if len(td.Constructors[2].Fields) != 0 {
		t.Errorf("expected bare constructor Point")
	}
}

func TestParseAssert(t *testing.T) {
	input := `fn f(x: Int) -> Int {
  assert x > 0 as "must be positive"
  x
}`
	module, ctx := parseModule(t, input)
	expectNoErrors(t, ctx)

	fn := firstFunction(t, module)
	assert, ok := fn.Body[0].(*ast.AssertStatement)
	if !ok {
		t.Fatalf("expected assert, got %T", fn.Body[0])
	}
	if assert.Message == nil {
		t.Fatalf("expected assert message")
	}
}
