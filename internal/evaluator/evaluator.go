package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/corvid-lang/corvid/internal/typedast"
)

var nilInstance = &Nil{}

// Evaluator walks a typed module tree. It works on both the analyzer's
// output and the lowered tree, which is what the lowering equivalence tests
// rely on: only the unlowered tree ever produces ReturnValue signals.
type Evaluator struct {
	// Output receives echo prints.
	Output io.Writer

	// Trace records observable effects in order: echo output, assertion
	// failures, todo and panic aborts.
	Trace []string
}

func New() *Evaluator {
	return &Evaluator{Output: os.Stdout}
}

func (e *Evaluator) trace(format string, args ...interface{}) {
	entry := fmt.Sprintf(format, args...)
	e.Trace = append(e.Trace, entry)
	if e.Output != nil {
		fmt.Fprintln(e.Output, entry)
	}
}

// EvalModule binds all module-level definitions into a fresh environment.
func (e *Evaluator) EvalModule(module *typedast.Module) *Environment {
	env := NewEnvironment()

	for _, fn := range module.Functions {
		env.Set(fn.Name, &Function{
			Parameters: fn.Parameters,
			Body:       fn.Body,
			Env:        env,
		})
	}
	for _, constant := range module.Constants {
		value := e.evalExpression(constant.Value, env)
		if rv, ok := value.(*ReturnValue); ok {
			value = rv.Value
		}
		env.Set(constant.Name, value)
	}

	return env
}

// CallFunction invokes a module-level function by name.
func (e *Evaluator) CallFunction(env *Environment, name string, args ...Object) Object {
	obj, ok := env.Get(name)
	if !ok {
		return newError("unknown function %s", name)
	}
	fn, ok := obj.(*Function)
	if !ok {
		return newError("%s is not a function", name)
	}
	return e.applyFunction(fn, args)
}

func (e *Evaluator) applyFunction(fn *Function, args []Object) Object {
	if len(args) != len(fn.Parameters) {
		return newError("expected %d arguments, got %d", len(fn.Parameters), len(args))
	}
	env := NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Parameters {
		if !param.Discard {
			env.Set(param.Name, args[i])
		}
	}

	result := e.evalStatements(fn.Body, env)
	// The function boundary absorbs the early-return signal.
	if rv, ok := result.(*ReturnValue); ok {
		return rv.Value
	}
	return result
}

func (e *Evaluator) evalStatements(statements []typedast.Statement, env *Environment) Object {
	var result Object = nilInstance

	for i, statement := range statements {
		switch stmt := statement.(type) {
		case *typedast.ExpressionStatement:
			result = e.evalExpression(stmt.Expression, env)

		case *typedast.Assignment:
			value := e.evalExpression(stmt.Value, env)
			if isError(value) {
				return value
			}
			if rv, ok := value.(*ReturnValue); ok {
				return rv
			}
			if !e.matchPattern(stmt.Pattern, value, env) {
				return newError("let pattern did not match %s", value.Inspect())
			}
			result = nilInstance
			continue

		case *typedast.Use:
			// The rest of the body becomes the callback.
			return e.evalUse(stmt, statements[i+1:], env)

		case *typedast.Assert:
			value := e.evalExpression(stmt.Value, env)
			if isError(value) {
				return value
			}
			if rv, ok := value.(*ReturnValue); ok {
				return rv
			}
			if b, ok := value.(*Boolean); !ok || !b.Value {
				message := "assertion failed"
				if stmt.Message != nil {
					msg := e.evalExpression(stmt.Message, env)
					if s, ok := msg.(*String); ok {
						message = s.Value
					}
				}
				e.trace("assert: %s", message)
				return newError("%s", message)
			}
			result = nilInstance
			continue

		default:
			continue
		}

		if isError(result) {
			return result
		}
		if _, ok := result.(*ReturnValue); ok {
			return result
		}
	}

	return result
}

// evalUse runs use p <- f(a) by calling f with an extra callback built from
// the trailing statements, matching what the lowering pass produces.
func (e *Evaluator) evalUse(stmt *typedast.Use, rest []typedast.Statement, env *Environment) Object {
	call, ok := stmt.Call.(*typedast.Call)
	if !ok {
		return newError("use requires a call")
	}

	fun := e.evalExpression(call.Fun, env)
	if isError(fun) {
		return fun
	}
	if rv, ok := fun.(*ReturnValue); ok {
		return rv
	}

	var args []Object
	for _, arg := range call.Arguments {
		value := e.evalExpression(arg.Value, env)
		if isError(value) {
			return value
		}
		if rv, ok := value.(*ReturnValue); ok {
			return rv
		}
		args = append(args, value)
	}

	patterns := stmt.Assignments
	callback := &Builtin{Fn: func(cbArgs ...Object) Object {
		child := NewEnclosedEnvironment(env)
		for i, assignment := range patterns {
			if i >= len(cbArgs) {
				break
			}
			if !e.matchPattern(assignment.Pattern, cbArgs[i], child) {
				return newError("use pattern did not match %s", cbArgs[i].Inspect())
			}
		}
		result := e.evalStatements(rest, child)
		// Early returns inside the use body abort the callback only.
		if rv, ok := result.(*ReturnValue); ok {
			return rv.Value
		}
		return result
	}}

	return e.applyCall(fun, append(args, callback))
}

func (e *Evaluator) applyCall(fun Object, args []Object) Object {
	switch f := fun.(type) {
	case *Function:
		return e.applyFunction(f, args)
	case *Builtin:
		return f.Fn(args...)
	case *Constructor:
		if len(args) != f.Arity {
			return newError("%s expects %d arguments, got %d", f.Name, f.Arity, len(args))
		}
		return e.makeDataInstance(f.Name, args)
	default:
		return newError("not a function: %s", fun.Type())
	}
}

func (e *Evaluator) makeDataInstance(name string, fields []Object) Object {
	return &DataInstance{Name: name, Fields: fields}
}

func (e *Evaluator) evalExpression(expression typedast.Expression, env *Environment) Object {
	switch expr := expression.(type) {
	case *typedast.Int:
		return &Integer{Value: expr.Value}

	case *typedast.Float:
		return &Float{Value: expr.Value}

	case *typedast.String:
		return &String{Value: expr.Value}

	case *typedast.Var:
		if value, ok := env.Get(expr.Name); ok {
			return value
		}
		return newError("unknown name %s", expr.Name)

	case *typedast.ConstructorRef:
		return e.evalConstructorRef(expr)

	case *typedast.Block:
		return e.evalStatements(expr.Statements, NewEnclosedEnvironment(env))

	case *typedast.List:
		return e.evalList(expr, env)

	case *typedast.Tuple:
		var elements []Object
		for _, element := range expr.Elements {
			value := e.evalExpression(element, env)
			if isError(value) {
				return value
			}
			if rv, ok := value.(*ReturnValue); ok {
				return rv
			}
			elements = append(elements, value)
		}
		return &Tuple{Elements: elements}

	case *typedast.Call:
		return e.evalCall(expr, env)

	case *typedast.BinOp:
		return e.evalBinOp(expr, env)

	case *typedast.Case:
		return e.evalCase(expr, env)

	case *typedast.Pipeline:
		child := NewEnclosedEnvironment(env)
		for _, assignment := range expr.Assignments {
			value := e.evalExpression(assignment.Value, child)
			if isError(value) {
				return value
			}
			if rv, ok := value.(*ReturnValue); ok {
				return rv
			}
			child.Set(assignment.Name, value)
		}
		return e.evalExpression(expr.Finally, child)

	case *typedast.Fn:
		return &Function{Parameters: expr.Parameters, Body: expr.Body, Env: env}

	case *typedast.RecordAccess:
		record := e.evalExpression(expr.Record, env)
		if isError(record) {
			return record
		}
		if rv, ok := record.(*ReturnValue); ok {
			return rv
		}
		instance, ok := record.(*DataInstance)
		if !ok || expr.Index >= len(instance.Fields) {
			return newError("no field %s on %s", expr.Label, record.Inspect())
		}
		return instance.Fields[expr.Index]

	case *typedast.TupleIndex:
		tuple := e.evalExpression(expr.Tuple, env)
		if isError(tuple) {
			return tuple
		}
		if rv, ok := tuple.(*ReturnValue); ok {
			return rv
		}
		t, ok := tuple.(*Tuple)
		if !ok || expr.Index >= len(t.Elements) {
			return newError("no element %d on %s", expr.Index, tuple.Inspect())
		}
		return t.Elements[expr.Index]

	case *typedast.RecordUpdate:
		return e.evalRecordUpdate(expr, env)

	case *typedast.NegateBool:
		value := e.evalExpression(expr.Value, env)
		if isError(value) {
			return value
		}
		if rv, ok := value.(*ReturnValue); ok {
			return rv
		}
		b, ok := value.(*Boolean)
		if !ok {
			return newError("! requires a Bool, got %s", value.Type())
		}
		return &Boolean{Value: !b.Value}

	case *typedast.NegateInt:
		value := e.evalExpression(expr.Value, env)
		if isError(value) {
			return value
		}
		if rv, ok := value.(*ReturnValue); ok {
			return rv
		}
		i, ok := value.(*Integer)
		if !ok {
			return newError("- requires an Int, got %s", value.Type())
		}
		return &Integer{Value: -i.Value}

	case *typedast.BitArray:
		return e.evalBitArray(expr, env)

	case *typedast.Echo:
		return e.evalEcho(expr, env)

	case *typedast.Todo:
		message := "todo"
		if expr.Message != nil {
			msg := e.evalExpression(expr.Message, env)
			if isError(msg) {
				return msg
			}
			if rv, ok := msg.(*ReturnValue); ok {
				return rv
			}
			if s, ok := msg.(*String); ok {
				message = "todo: " + s.Value
			}
		}
		e.trace("%s", message)
		return newError("%s", message)

	case *typedast.Panic:
		message := "panic"
		if expr.Message != nil {
			msg := e.evalExpression(expr.Message, env)
			if isError(msg) {
				return msg
			}
			if rv, ok := msg.(*ReturnValue); ok {
				return rv
			}
			if s, ok := msg.(*String); ok {
				message = "panic: " + s.Value
			}
		}
		e.trace("%s", message)
		return newError("%s", message)

	case *typedast.EarlyReturn:
		value := e.evalExpression(expr.Value, env)
		if isError(value) {
			return value
		}
		if rv, ok := value.(*ReturnValue); ok {
			return rv
		}
		return &ReturnValue{Value: value}

	default:
		return newError("cannot evaluate %T", expression)
	}
}

func (e *Evaluator) evalConstructorRef(expr *typedast.ConstructorRef) Object {
	switch expr.Name {
	case "True":
		return &Boolean{Value: true}
	case "False":
		return &Boolean{Value: false}
	case "Nil":
		return nilInstance
	}
	if expr.Arity == 0 {
		return &DataInstance{Name: expr.Name}
	}
	return &Constructor{Name: expr.Name, Arity: expr.Arity}
}

func (e *Evaluator) evalList(expr *typedast.List, env *Environment) Object {
	var elements []Object
	for _, element := range expr.Elements {
		value := e.evalExpression(element, env)
		if isError(value) {
			return value
		}
		if rv, ok := value.(*ReturnValue); ok {
			return rv
		}
		elements = append(elements, value)
	}
	if expr.Tail != nil {
		tail := e.evalExpression(expr.Tail, env)
		if isError(tail) {
			return tail
		}
		if rv, ok := tail.(*ReturnValue); ok {
			return rv
		}
		list, ok := tail.(*List)
		if !ok {
			return newError("list tail is not a list: %s", tail.Inspect())
		}
		elements = append(elements, list.Elements...)
	}
	return &List{Elements: elements}
}

func (e *Evaluator) evalCall(expr *typedast.Call, env *Environment) Object {
	fun := e.evalExpression(expr.Fun, env)
	if isError(fun) {
		return fun
	}
	if rv, ok := fun.(*ReturnValue); ok {
		return rv
	}

	var args []Object
	for _, arg := range expr.Arguments {
		value := e.evalExpression(arg.Value, env)
		if isError(value) {
			return value
		}
		if rv, ok := value.(*ReturnValue); ok {
			return rv
		}
		args = append(args, value)
	}

	return e.applyCall(fun, args)
}

func (e *Evaluator) evalBinOp(expr *typedast.BinOp, env *Environment) Object {
	left := e.evalExpression(expr.Left, env)
	if isError(left) {
		return left
	}
	if rv, ok := left.(*ReturnValue); ok {
		return rv
	}
	right := e.evalExpression(expr.Right, env)
	if isError(right) {
		return right
	}
	if rv, ok := right.(*ReturnValue); ok {
		return rv
	}

	switch expr.Operator {
	case "==":
		return &Boolean{Value: objectsEqual(left, right)}
	case "!=":
		return &Boolean{Value: !objectsEqual(left, right)}
	case "<>":
		l, lok := left.(*String)
		r, rok := right.(*String)
		if !lok || !rok {
			return newError("<> requires two Strings")
		}
		return &String{Value: l.Value + r.Value}
	case "&&":
		l, lok := left.(*Boolean)
		r, rok := right.(*Boolean)
		if !lok || !rok {
			return newError("&& requires two Bools")
		}
		return &Boolean{Value: l.Value && r.Value}
	case "||":
		l, lok := left.(*Boolean)
		r, rok := right.(*Boolean)
		if !lok || !rok {
			return newError("|| requires two Bools")
		}
		return &Boolean{Value: l.Value || r.Value}
	}

	l, lok := left.(*Integer)
	r, rok := right.(*Integer)
	if !lok || !rok {
		return newError("%s requires two Ints", expr.Operator)
	}
	switch expr.Operator {
	case "+":
		return &Integer{Value: l.Value + r.Value}
	case "-":
		return &Integer{Value: l.Value - r.Value}
	case "*":
		return &Integer{Value: l.Value * r.Value}
	case "/":
		if r.Value == 0 {
			return &Integer{Value: 0}
		}
		return &Integer{Value: l.Value / r.Value}
	case "%":
		if r.Value == 0 {
			return &Integer{Value: 0}
		}
		return &Integer{Value: l.Value % r.Value}
	case "<":
		return &Boolean{Value: l.Value < r.Value}
	case ">":
		return &Boolean{Value: l.Value > r.Value}
	case "<=":
		return &Boolean{Value: l.Value <= r.Value}
	case ">=":
		return &Boolean{Value: l.Value >= r.Value}
	default:
		return newError("unknown operator %s", expr.Operator)
	}
}

func (e *Evaluator) evalCase(expr *typedast.Case, env *Environment) Object {
	var subjects []Object
	for _, subject := range expr.Subjects {
		value := e.evalExpression(subject, env)
		if isError(value) {
			return value
		}
		if rv, ok := value.(*ReturnValue); ok {
			return rv
		}
		subjects = append(subjects, value)
	}

	for _, clause := range expr.Clauses {
		if len(clause.Patterns) != len(subjects) {
			continue
		}
		child := NewEnclosedEnvironment(env)
		matched := true
		for i, pattern := range clause.Patterns {
			if !e.matchPattern(pattern, subjects[i], child) {
				matched = false
				break
			}
		}
		if matched {
			return e.evalExpression(clause.Body, child)
		}
	}

	return newError("no case clause matched")
}

func (e *Evaluator) evalRecordUpdate(expr *typedast.RecordUpdate, env *Environment) Object {
	child := env
	if expr.RecordAssignment != nil {
		child = NewEnclosedEnvironment(env)
		value := e.evalExpression(expr.RecordAssignment.Value, child)
		if isError(value) {
			return value
		}
		if rv, ok := value.(*ReturnValue); ok {
			return rv
		}
		if !e.matchPattern(expr.RecordAssignment.Pattern, value, child) {
			return newError("record binding did not match")
		}
	}

	constructor := e.evalExpression(expr.Constructor, child)
	if isError(constructor) {
		return constructor
	}
	if rv, ok := constructor.(*ReturnValue); ok {
		return rv
	}

	var fields []Object
	for _, arg := range expr.Arguments {
		value := e.evalExpression(arg.Value, child)
		if isError(value) {
			return value
		}
		if rv, ok := value.(*ReturnValue); ok {
			return rv
		}
		fields = append(fields, value)
	}

	switch c := constructor.(type) {
	case *Constructor:
		return e.makeDataInstance(c.Name, fields)
	case *DataInstance:
		return e.makeDataInstance(c.Name, fields)
	default:
		return newError("record update requires a constructor")
	}
}

func (e *Evaluator) evalEcho(expr *typedast.Echo, env *Environment) Object {
	var value Object = nilInstance
	if expr.Expression != nil {
		value = e.evalExpression(expr.Expression, env)
		if isError(value) {
			return value
		}
		if rv, ok := value.(*ReturnValue); ok {
			return rv
		}
	}

	if expr.Message != nil {
		message := e.evalExpression(expr.Message, env)
		if isError(message) {
			return message
		}
		if rv, ok := message.(*ReturnValue); ok {
			return rv
		}
		label := message.Inspect()
		if s, ok := message.(*String); ok {
			label = s.Value
		}
		e.trace("%s: %s", label, value.Inspect())
	} else {
		e.trace("%s", value.Inspect())
	}

	return value
}

func (e *Evaluator) matchPattern(pattern typedast.Pattern, value Object, env *Environment) bool {
	switch pat := pattern.(type) {
	case *typedast.VariablePattern:
		env.Set(pat.Name, value)
		return true

	case *typedast.DiscardPattern:
		return true

	case *typedast.IntPattern:
		i, ok := value.(*Integer)
		return ok && i.Value == pat.Value

	case *typedast.FloatPattern:
		f, ok := value.(*Float)
		return ok && f.Value == pat.Value

	case *typedast.StringPattern:
		s, ok := value.(*String)
		return ok && s.Value == pat.Value

	case *typedast.ConstructorPattern:
		switch pat.Name {
		case "True":
			b, ok := value.(*Boolean)
			return ok && b.Value
		case "False":
			b, ok := value.(*Boolean)
			return ok && !b.Value
		case "Nil":
			_, ok := value.(*Nil)
			return ok
		}
		instance, ok := value.(*DataInstance)
		if !ok || instance.Name != pat.Name || len(pat.Args) > len(instance.Fields) {
			return false
		}
		for i, arg := range pat.Args {
			if !e.matchPattern(arg, instance.Fields[i], env) {
				return false
			}
		}
		return true

	case *typedast.TuplePattern:
		t, ok := value.(*Tuple)
		if !ok || len(t.Elements) != len(pat.Elements) {
			return false
		}
		for i, el := range pat.Elements {
			if !e.matchPattern(el, t.Elements[i], env) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

func objectsEqual(a, b Object) bool {
	switch left := a.(type) {
	case *Integer:
		right, ok := b.(*Integer)
		return ok && left.Value == right.Value
	case *Float:
		right, ok := b.(*Float)
		return ok && left.Value == right.Value
	case *String:
		right, ok := b.(*String)
		return ok && left.Value == right.Value
	case *Boolean:
		right, ok := b.(*Boolean)
		return ok && left.Value == right.Value
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *List:
		right, ok := b.(*List)
		if !ok || len(left.Elements) != len(right.Elements) {
			return false
		}
		for i := range left.Elements {
			if !objectsEqual(left.Elements[i], right.Elements[i]) {
				return false
			}
		}
		return true
	case *Tuple:
		right, ok := b.(*Tuple)
		if !ok || len(left.Elements) != len(right.Elements) {
			return false
		}
		for i := range left.Elements {
			if !objectsEqual(left.Elements[i], right.Elements[i]) {
				return false
			}
		}
		return true
	case *DataInstance:
		right, ok := b.(*DataInstance)
		if !ok || left.Name != right.Name || len(left.Fields) != len(right.Fields) {
			return false
		}
		for i := range left.Fields {
			if !objectsEqual(left.Fields[i], right.Fields[i]) {
				return false
			}
		}
		return true
	case *Bits:
		right, ok := b.(*Bits)
		return ok && left.Inspect() == right.Inspect()
	default:
		return a == b
	}
}
