package parser

import (
	"testing"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/pipeline"
)

func expectError(t *testing.T, ctx *pipeline.PipelineContext, code diagnostics.ErrorCode) {
	t.Helper()
	for _, err := range ctx.Errors {
		if err.Code == code {
			return
		}
	}
	t.Errorf("expected error %s, got %d other errors:", code, len(ctx.Errors))
	for _, err := range ctx.Errors {
		t.Errorf("  %s", err.Error())
	}
}

func TestEarlyReturnWithoutExpression(t *testing.T) {
	input := `fn f() -> Int {
  $return
}`
	_, ctx := parseModule(t, input)
	expectError(t, ctx, diagnostics.ErrP008)
}

func TestEarlyReturnFollowedByCloseParen(t *testing.T) {
	input := `fn f() -> Int {
  g($return)
}`
	_, ctx := parseModule(t, input)
	expectError(t, ctx, diagnostics.ErrP008)
}

func TestEarlyReturnAtModuleLevel(t *testing.T) {
	input := `$return 1`
	_, ctx := parseModule(t, input)
	expectError(t, ctx, diagnostics.ErrP009)
}

func TestEarlyReturnInConstant(t *testing.T) {
	input := `const answer = $return 42`
	_, ctx := parseModule(t, input)
	expectError(t, ctx, diagnostics.ErrP009)
}

func TestEarlyReturnErrorDoesNotCascade(t *testing.T) {
	// The function after the broken one still parses.
	input := `fn broken() -> Int {
  $return
}

fn fine() -> Int {
  1
}`
	module, ctx := parseModule(t, input)
	expectError(t, ctx, diagnostics.ErrP008)

	names := make(map[string]bool)
	for _, stmt := range module.Statements {
		if fn, ok := stmt.(*ast.Function); ok {
			names[fn.Name.Value] = true
		}
	}
	if !names["fine"] {
		t.Errorf("expected function after the broken one to parse, got %v", names)
	}
}

func TestDollarWithoutKeywordIsIllegal(t *testing.T) {
	input := `fn f() -> Int {
  $ret
}`
	_, ctx := parseModule(t, input)
	expectError(t, ctx, diagnostics.ErrL001)
}

func TestUnclosedBlock(t *testing.T) {
	input := `fn f() -> Int {
  1`
	_, ctx := parseModule(t, input)
	expectError(t, ctx, diagnostics.ErrP002)
}

func TestMissingArrowInCaseClause(t *testing.T) {
	input := `fn f(x: Int) -> Int {
  case x {
    0 1
  }
}`
	_, ctx := parseModule(t, input)
	expectError(t, ctx, diagnostics.ErrP002)
}

func TestDiscardInExpressionPosition(t *testing.T) {
	input := `fn f() -> Int {
  _ + 1
}`
	_, ctx := parseModule(t, input)
	expectError(t, ctx, diagnostics.ErrP001)
}
