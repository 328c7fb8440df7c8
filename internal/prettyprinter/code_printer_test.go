package prettyprinter

import (
	"strings"
	"testing"

	"github.com/corvid-lang/corvid/internal/analyzer"
	"github.com/corvid-lang/corvid/internal/parser"
	"github.com/corvid-lang/corvid/internal/transform"
	"github.com/corvid-lang/corvid/internal/typedast"
)

func printSource(t *testing.T, source string, lower bool) string {
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
	if lower {
		transform.LowerModule(typed)
	}
	return Print(typed)
}

func expectContains(t *testing.T, printed string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(printed, fragment) {
			t.Errorf("printed output missing %q:\n%s", fragment, printed)
		}
	}
}

func TestPrintFunction(t *testing.T) {
	printed := printSource(t, `
pub fn add(a: Int, b: Int) -> Int {
	a + b
}
`, false)
	expectContains(t, printed, "pub fn add(a: Int, b: Int) -> Int {", "a + b", "}")
}

func TestPrintConstant(t *testing.T) {
	printed := printSource(t, `
pub const limit = 100
`, false)
	expectContains(t, printed, "pub const limit = 100")
}

func TestPrintCaseAndReturn(t *testing.T) {
	printed := printSource(t, `
pub fn classify(n: Int) -> String {
	case n {
		0 -> $return "zero"
		_ -> "other"
	}
}
`, false)
	expectContains(t, printed,
		"case n {",
		`0 -> $return "zero"`,
		`_ -> "other"`,
	)
}

func TestPrintUseAndAssert(t *testing.T) {
	printed := printSource(t, `
fn with_value(v: Int, k: fn(Int) -> Int) -> Int {
	k(v)
}

pub fn f() -> Int {
	use x <- with_value(1)
	assert x > 0 as "positive"
	x
}
`, false)
	expectContains(t, printed,
		"use x <- with_value(1)",
		`assert x > 0 as "positive"`,
	)
}

func TestPrintLoweredFunction(t *testing.T) {
	printed := printSource(t, `
fn loud(n: Int) -> Int {
	echo n
	n
}

pub fn f(n: Int) -> Int {
	loud(1) + case n {
		0 -> $return 9
		_ -> loud(2)
	}
}
`, true)
	expectContains(t, printed, "let _cps_var_1 = loud(1)", "_cps_var_1 + loud(2)")
}

func TestPrintPatterns(t *testing.T) {
	printed := printSource(t, `
pub fn first(pair: #(Int, String)) -> Int {
	case pair {
		#(n, _) -> n
	}
}
`, false)
	expectContains(t, printed, "#(n, _) -> n")
}

func TestPrintEmptyTupleAsNil(t *testing.T) {
	p := NewCodePrinter()
	p.printExpression(&typedast.Tuple{})
	if got := p.buf.String(); got != "Nil" {
		t.Errorf("empty tuple printed as %q, want Nil", got)
	}
}
