package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/corvid-lang/corvid/internal/typedast"
)

// CodePrinter renders a typed module back into source-shaped text. Its main
// consumers are the CLI's lower command and readable test failures.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func Print(module *typedast.Module) string {
	return NewCodePrinter().PrintModule(module)
}

func (p *CodePrinter) PrintModule(module *typedast.Module) string {
	p.buf.Reset()
	for i, constant := range module.Constants {
		if i > 0 {
			p.write("\n")
		}
		p.printConstant(constant)
	}
	for i, fn := range module.Functions {
		if i > 0 || len(module.Constants) > 0 {
			p.write("\n")
		}
		p.printFunction(fn)
	}
	return p.buf.String()
}

func (p *CodePrinter) printConstant(constant *typedast.Constant) {
	if constant.Public {
		p.write("pub ")
	}
	p.write("const " + constant.Name + " = ")
	p.printExpression(constant.Value)
	p.write("\n")
}

func (p *CodePrinter) printFunction(fn *typedast.Function) {
	if fn.Public {
		p.write("pub ")
	}
	p.write("fn " + fn.Name + "(")
	for i, param := range fn.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Name)
		if param.Type != nil {
			p.write(": " + param.Type.String())
		}
	}
	p.write(")")
	if fn.ReturnType != nil {
		p.write(" -> " + fn.ReturnType.String())
	}
	p.write(" {\n")
	p.indent++
	p.printStatements(fn.Body)
	p.indent--
	p.writeIndent()
	p.write("}\n")
}

func (p *CodePrinter) printStatements(statements []typedast.Statement) {
	for _, stmt := range statements {
		p.writeIndent()
		p.printStatement(stmt)
		p.write("\n")
	}
}

func (p *CodePrinter) printStatement(statement typedast.Statement) {
	switch stmt := statement.(type) {
	case *typedast.ExpressionStatement:
		p.printExpression(stmt.Expression)

	case *typedast.Assignment:
		p.write("let ")
		p.printPattern(stmt.Pattern)
		p.write(" = ")
		p.printExpression(stmt.Value)

	case *typedast.Use:
		p.write("use ")
		for i, assignment := range stmt.Assignments {
			if i > 0 {
				p.write(", ")
			}
			p.printPattern(assignment.Pattern)
		}
		if len(stmt.Assignments) > 0 {
			p.write(" ")
		}
		p.write("<- ")
		p.printExpression(stmt.Call)

	case *typedast.Assert:
		p.write("assert ")
		p.printExpression(stmt.Value)
		if stmt.Message != nil {
			p.write(" as ")
			p.printExpression(stmt.Message)
		}

	default:
		p.write(fmt.Sprintf("// unprintable %T", statement))
	}
}

func (p *CodePrinter) printExpression(expression typedast.Expression) {
	switch expr := expression.(type) {
	case *typedast.Int:
		p.write(strconv.FormatInt(expr.Value, 10))

	case *typedast.Float:
		p.write(strconv.FormatFloat(expr.Value, 'g', -1, 64))

	case *typedast.String:
		p.write(strconv.Quote(expr.Value))

	case *typedast.Var:
		p.write(expr.Name)

	case *typedast.ConstructorRef:
		if expr.Module != "" {
			p.write(expr.Module + ".")
		}
		p.write(expr.Name)

	case *typedast.ModuleSelect:
		p.write(expr.Module + "." + expr.Label)

	case *typedast.Block:
		p.write("{\n")
		p.indent++
		p.printStatements(expr.Statements)
		p.indent--
		p.writeIndent()
		p.write("}")

	case *typedast.List:
		p.write("[")
		for i, element := range expr.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.printExpression(element)
		}
		if expr.Tail != nil {
			if len(expr.Elements) > 0 {
				p.write(", ")
			}
			p.write("..")
			p.printExpression(expr.Tail)
		}
		p.write("]")

	case *typedast.Tuple:
		if len(expr.Elements) == 0 {
			p.write("Nil")
			return
		}
		p.write("#(")
		for i, element := range expr.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.printExpression(element)
		}
		p.write(")")

	case *typedast.Call:
		p.printExpression(expr.Fun)
		p.write("(")
		for i, arg := range expr.Arguments {
			if i > 0 {
				p.write(", ")
			}
			if arg.Label != "" {
				p.write(arg.Label + ": ")
			}
			p.printExpression(arg.Value)
		}
		p.write(")")

	case *typedast.BinOp:
		p.printExpression(expr.Left)
		p.write(" " + expr.Operator + " ")
		p.printExpression(expr.Right)

	case *typedast.Case:
		p.write("case ")
		for i, subject := range expr.Subjects {
			if i > 0 {
				p.write(", ")
			}
			p.printExpression(subject)
		}
		p.write(" {\n")
		p.indent++
		for _, clause := range expr.Clauses {
			p.writeIndent()
			for i, pattern := range clause.Patterns {
				if i > 0 {
					p.write(", ")
				}
				p.printPattern(pattern)
			}
			p.write(" -> ")
			p.printExpression(clause.Body)
			p.write("\n")
		}
		p.indent--
		p.writeIndent()
		p.write("}")

	case *typedast.Pipeline:
		p.write("{\n")
		p.indent++
		for _, assignment := range expr.Assignments {
			p.writeIndent()
			p.write("let " + assignment.Name + " = ")
			p.printExpression(assignment.Value)
			p.write("\n")
		}
		p.writeIndent()
		p.printExpression(expr.Finally)
		p.write("\n")
		p.indent--
		p.writeIndent()
		p.write("}")

	case *typedast.Fn:
		p.write("fn(")
		for i, param := range expr.Parameters {
			if i > 0 {
				p.write(", ")
			}
			p.write(param.Name)
		}
		p.write(") {\n")
		p.indent++
		p.printStatements(expr.Body)
		p.indent--
		p.writeIndent()
		p.write("}")

	case *typedast.RecordAccess:
		p.printExpression(expr.Record)
		p.write("." + expr.Label)

	case *typedast.TupleIndex:
		p.printExpression(expr.Tuple)
		p.write("." + strconv.Itoa(expr.Index))

	case *typedast.RecordUpdate:
		p.printExpression(expr.Constructor)
		p.write("(")
		if expr.RecordAssignment != nil {
			p.write("..")
			p.printExpression(expr.RecordAssignment.Value)
		}
		for i, arg := range expr.Arguments {
			if i > 0 || expr.RecordAssignment != nil {
				p.write(", ")
			}
			if arg.Label != "" {
				p.write(arg.Label + ": ")
			}
			p.printExpression(arg.Value)
		}
		p.write(")")

	case *typedast.NegateBool:
		p.write("!")
		p.printExpression(expr.Value)

	case *typedast.NegateInt:
		p.write("-")
		p.printExpression(expr.Value)

	case *typedast.BitArray:
		p.write("<<")
		for i, segment := range expr.Segments {
			if i > 0 {
				p.write(", ")
			}
			p.printExpression(segment.Value)
			for j, option := range segment.Options {
				if j == 0 {
					p.write(":")
				} else {
					p.write("-")
				}
				p.write(option.Name)
				if option.Value != nil {
					p.write("(")
					p.printExpression(option.Value)
					p.write(")")
				}
			}
		}
		p.write(">>")

	case *typedast.Echo:
		p.write("echo")
		if expr.Expression != nil {
			p.write(" ")
			p.printExpression(expr.Expression)
		}
		if expr.Message != nil {
			p.write(" as ")
			p.printExpression(expr.Message)
		}

	case *typedast.Todo:
		p.write("todo")
		if expr.Message != nil {
			p.write(" as ")
			p.printExpression(expr.Message)
		}

	case *typedast.Panic:
		p.write("panic")
		if expr.Message != nil {
			p.write(" as ")
			p.printExpression(expr.Message)
		}

	case *typedast.EarlyReturn:
		p.write("$return ")
		p.printExpression(expr.Value)

	case *typedast.Invalid:
		p.write("<invalid>")

	default:
		p.write(fmt.Sprintf("<%T>", expression))
	}
}

func (p *CodePrinter) printPattern(pattern typedast.Pattern) {
	switch pat := pattern.(type) {
	case *typedast.VariablePattern:
		p.write(pat.Name)
	case *typedast.DiscardPattern:
		name := pat.Name
		if name == "" {
			name = "_"
		}
		p.write(name)
	case *typedast.IntPattern:
		p.write(strconv.FormatInt(pat.Value, 10))
	case *typedast.FloatPattern:
		p.write(strconv.FormatFloat(pat.Value, 'g', -1, 64))
	case *typedast.StringPattern:
		p.write(strconv.Quote(pat.Value))
	case *typedast.ConstructorPattern:
		if pat.Module != "" {
			p.write(pat.Module + ".")
		}
		p.write(pat.Name)
		if len(pat.Args) > 0 {
			p.write("(")
			for i, arg := range pat.Args {
				if i > 0 {
					p.write(", ")
				}
				p.printPattern(arg)
			}
			p.write(")")
		}
	case *typedast.TuplePattern:
		p.write("#(")
		for i, el := range pat.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.printPattern(el)
		}
		p.write(")")
	}
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	p.buf.WriteString(strings.Repeat("\t", p.indent))
}
