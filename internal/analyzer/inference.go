package analyzer

import (
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/typedast"
	"github.com/corvid-lang/corvid/internal/typesystem"
)

func (a *Analyzer) inferExpression(expression ast.Expression) typedast.Expression {
	switch expr := expression.(type) {
	case *ast.IntegerLiteral:
		return &typedast.Int{Span: tokenSpan(expr.Token), Value: expr.Value}

	case *ast.FloatLiteral:
		return &typedast.Float{Span: tokenSpan(expr.Token), Value: expr.Value}

	case *ast.StringLiteral:
		return &typedast.String{Span: tokenSpan(expr.Token), Value: expr.Value}

	case *ast.Identifier:
		return a.inferIdentifier(expr)

	case *ast.Constructor:
		return a.inferConstructorRef(expr)

	case *ast.BlockExpression:
		a.pushScope()
		statements := a.inferBody(expr.Statements)
		a.popScope()
		return &typedast.Block{Span: tokenSpan(expr.Token), Statements: statements}

	case *ast.ListLiteral:
		return a.inferList(expr)

	case *ast.TupleLiteral:
		return a.inferTuple(expr)

	case *ast.CallExpression:
		return a.inferCall(expr)

	case *ast.RecordUpdate:
		return a.inferRecordUpdate(expr)

	case *ast.FieldAccess:
		return a.inferFieldAccess(expr)

	case *ast.TupleIndex:
		return a.inferTupleIndex(expr)

	case *ast.PrefixExpression:
		return a.inferPrefix(expr)

	case *ast.InfixExpression:
		return a.inferInfix(expr)

	case *ast.PipelineExpression:
		return a.inferPipeline(expr)

	case *ast.CaseExpression:
		return a.inferCase(expr)

	case *ast.FunctionLiteral:
		return a.inferFnLiteral(expr)

	case *ast.EchoExpression:
		return a.inferEcho(expr)

	case *ast.TodoExpression:
		kind := typedast.TodoBare
		var message typedast.Expression
		if expr.Message != nil {
			kind = typedast.TodoWithMessage
			message = a.inferExpression(expr.Message)
			a.unify(message.TypeOf(), typesystem.String, expr.Message.GetToken(),
				diagnostics.ErrA002, "todo message must be a String")
		}
		return &typedast.Todo{Span: tokenSpan(expr.Token), Type: a.freshVar(), Kind: kind, Message: message}

	case *ast.PanicExpression:
		var message typedast.Expression
		if expr.Message != nil {
			message = a.inferExpression(expr.Message)
			a.unify(message.TypeOf(), typesystem.String, expr.Message.GetToken(),
				diagnostics.ErrA002, "panic message must be a String")
		}
		return &typedast.Panic{Span: tokenSpan(expr.Token), Type: a.freshVar(), Message: message}

	case *ast.EarlyReturnExpression:
		return a.inferEarlyReturn(expr)

	case *ast.BitArrayLiteral:
		return a.inferBitArray(expr)

	default:
		return &typedast.Invalid{Type: a.freshVar()}
	}
}

func (a *Analyzer) inferIdentifier(expr *ast.Identifier) typedast.Expression {
	t, ok := a.lookup(expr.Value)
	if !ok {
		a.errorf(diagnostics.ErrA001, expr.Token, "unknown name %s", expr.Value)
		return &typedast.Invalid{Span: tokenSpan(expr.Token), Type: a.freshVar()}
	}
	return &typedast.Var{
		Span:   tokenSpan(expr.Token),
		Type:   a.resolve(t),
		Name:   expr.Value,
		Origin: typedast.SourceOrigin,
	}
}

func (a *Analyzer) inferConstructorRef(expr *ast.Constructor) typedast.Expression {
	if expr.Module != "" {
		// Constructors of imported modules are opaque to this checker.
		return &typedast.ConstructorRef{
			Span:   tokenSpan(expr.Token),
			Type:   a.freshVar(),
			Name:   expr.Name,
			Module: expr.Module,
		}
	}

	info, ok := a.constructors[expr.Name]
	if !ok {
		a.errorf(diagnostics.ErrA001, expr.Token, "unknown constructor %s", expr.Name)
		return &typedast.Invalid{Span: tokenSpan(expr.Token), Type: a.freshVar()}
	}

	fields, result := a.instantiate(info)
	var t typesystem.Type = result
	if len(fields) > 0 {
		t = typesystem.TFunc{Params: fields, ReturnType: result}
	}
	return &typedast.ConstructorRef{
		Span:  tokenSpan(expr.Token),
		Type:  t,
		Name:  expr.Name,
		Arity: len(fields),
	}
}

func (a *Analyzer) inferList(expr *ast.ListLiteral) typedast.Expression {
	element := a.freshVar()
	var elements []typedast.Expression
	for _, el := range expr.Elements {
		typed := a.inferExpression(el)
		a.unify(typed.TypeOf(), element, el.GetToken(), diagnostics.ErrA002,
			"list elements must share one type")
		elements = append(elements, typed)
	}

	listType := typesystem.List(element)
	var tail typedast.Expression
	if expr.Tail != nil {
		tail = a.inferExpression(expr.Tail)
		a.unify(tail.TypeOf(), listType, expr.Tail.GetToken(), diagnostics.ErrA002,
			"list tail must be a list of the same element type")
	}

	return &typedast.List{
		Span:     tokenSpan(expr.Token),
		Type:     a.resolve(listType),
		Elements: elements,
		Tail:     tail,
	}
}

func (a *Analyzer) inferTuple(expr *ast.TupleLiteral) typedast.Expression {
	var elements []typedast.Expression
	var types []typesystem.Type
	for _, el := range expr.Elements {
		typed := a.inferExpression(el)
		elements = append(elements, typed)
		types = append(types, typed.TypeOf())
	}
	var t typesystem.Type = typesystem.TTuple{Elements: types}
	if len(types) == 0 {
		t = typesystem.Nil
	}
	return &typedast.Tuple{Span: tokenSpan(expr.Token), Type: t, Elements: elements}
}

func (a *Analyzer) inferCall(expr *ast.CallExpression) typedast.Expression {
	if ctor, ok := expr.Function.(*ast.Constructor); ok && ctor.Module == "" {
		if info, known := a.constructors[ctor.Name]; known {
			return a.inferConstructorCall(expr, ctor, info)
		}
	}

	fun := a.inferExpression(expr.Function)
	var args []*typedast.CallArg
	var argTypes []typesystem.Type
	for _, arg := range expr.Arguments {
		value := a.inferExpression(arg.Value)
		args = append(args, &typedast.CallArg{
			Span:  tokenSpan(arg.Token),
			Label: arg.Label,
			Value: value,
		})
		argTypes = append(argTypes, value.TypeOf())
	}

	result := a.freshVar()
	if known, ok := a.resolve(fun.TypeOf()).(typesystem.TFunc); ok && len(known.Params) != len(args) {
		a.errorf(diagnostics.ErrA004, expr.Token,
			"expected %d arguments, got %d", len(known.Params), len(args))
	} else {
		a.unify(fun.TypeOf(), typesystem.TFunc{Params: argTypes, ReturnType: result},
			expr.Token, diagnostics.ErrA002, "cannot call this value with these arguments")
	}

	return &typedast.Call{
		Span:      tokenSpan(expr.Token),
		Type:      a.resolve(result),
		Fun:       fun,
		Arguments: args,
	}
}

// inferConstructorCall checks a saturated constructor application, resolving
// labelled arguments to their declared field positions.
func (a *Analyzer) inferConstructorCall(expr *ast.CallExpression, ctor *ast.Constructor, info *constructorInfo) typedast.Expression {
	fields, result := a.instantiate(info)

	if len(expr.Arguments) != len(fields) {
		a.errorf(diagnostics.ErrA004, expr.Token,
			"%s expects %d arguments, got %d", ctor.Name, len(fields), len(expr.Arguments))
	}

	ordered := make([]*typedast.CallArg, len(fields))
	next := 0
	for _, arg := range expr.Arguments {
		index := -1
		if arg.Label != "" {
			index = labelIndex(info.Labels, arg.Label)
			if index < 0 {
				a.errorf(diagnostics.ErrA006, arg.Token,
					"%s has no field %s", ctor.Name, arg.Label)
			}
		} else {
			for next < len(ordered) && ordered[next] != nil {
				next++
			}
			if next < len(ordered) {
				index = next
			}
		}

		value := a.inferExpression(arg.Value)
		if index >= 0 && index < len(fields) {
			a.unify(value.TypeOf(), fields[index], arg.Value.GetToken(), diagnostics.ErrA002,
				"constructor argument does not match the field type")
			if ordered[index] == nil {
				ordered[index] = &typedast.CallArg{
					Span:  tokenSpan(arg.Token),
					Label: arg.Label,
					Value: value,
				}
			}
		}
	}

	args := make([]*typedast.CallArg, 0, len(ordered))
	for _, arg := range ordered {
		if arg != nil {
			args = append(args, arg)
		}
	}

	return &typedast.Call{
		Span: tokenSpan(expr.Token),
		Type: a.resolve(result),
		Fun: &typedast.ConstructorRef{
			Span:  tokenSpan(ctor.Token),
			Type:  typesystem.TFunc{Params: fields, ReturnType: result},
			Name:  ctor.Name,
			Arity: len(fields),
		},
		Arguments: args,
	}
}

func labelIndex(labels []string, label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}

// inferRecordUpdate checks Ctor(..base, field: value). The base is bound to
// a generated variable unless it is already a plain variable, and every
// field the update does not mention is copied from it by record access.
func (a *Analyzer) inferRecordUpdate(expr *ast.RecordUpdate) typedast.Expression {
	ctor, ok := expr.Constructor.(*ast.Constructor)
	if !ok || ctor.Module != "" {
		a.errorf(diagnostics.ErrA006, expr.Token, "record updates require a local constructor")
		return &typedast.Invalid{Span: tokenSpan(expr.Token), Type: a.freshVar()}
	}
	info, known := a.constructors[ctor.Name]
	if !known {
		a.errorf(diagnostics.ErrA001, ctor.Token, "unknown constructor %s", ctor.Name)
		return &typedast.Invalid{Span: tokenSpan(expr.Token), Type: a.freshVar()}
	}

	fields, result := a.instantiate(info)
	base := a.inferExpression(expr.Base)
	a.unify(base.TypeOf(), result, expr.Base.GetToken(), diagnostics.ErrA002,
		"the updated record does not match the constructor's type")

	// Evaluate the base exactly once.
	var recordAssignment *typedast.Assignment
	var baseRef typedast.Expression = base
	if _, isVar := base.(*typedast.Var); !isVar {
		span := typedast.GeneratedSpan(base.SpanOf())
		recordAssignment = &typedast.Assignment{
			Span: span,
			Kind: typedast.GeneratedAssignment,
			Pattern: &typedast.VariablePattern{
				Span:   span,
				Name:   "_record",
				Type:   base.TypeOf(),
				Origin: typedast.GeneratedOrigin,
			},
			Value:        base,
			CompiledCase: typedast.SimpleVariableAssignment("_record"),
		}
		baseRef = &typedast.Var{
			Span:   span,
			Type:   base.TypeOf(),
			Name:   "_record",
			Origin: typedast.GeneratedOrigin,
		}
	}

	updated := map[int]typedast.Expression{}
	for _, field := range expr.Fields {
		index := labelIndex(info.Labels, field.Label)
		if index < 0 {
			a.errorf(diagnostics.ErrA006, field.Token, "%s has no field %s", ctor.Name, field.Label)
			a.inferExpression(field.Value)
			continue
		}
		value := a.inferExpression(field.Value)
		a.unify(value.TypeOf(), fields[index], field.Value.GetToken(), diagnostics.ErrA002,
			"updated field does not match the field type")
		updated[index] = value
	}

	args := make([]*typedast.CallArg, 0, len(fields))
	for i := range fields {
		value, ok := updated[i]
		if !ok {
			value = &typedast.RecordAccess{
				Span:   typedast.GeneratedSpan(baseRef.SpanOf()),
				Type:   fields[i],
				Record: baseRef,
				Label:  info.Labels[i],
				Index:  i,
			}
		}
		args = append(args, &typedast.CallArg{
			Span:  value.SpanOf(),
			Label: info.Labels[i],
			Value: value,
		})
	}

	return &typedast.RecordUpdate{
		Span:             tokenSpan(expr.Token),
		Type:             a.resolve(result),
		RecordAssignment: recordAssignment,
		Constructor: &typedast.ConstructorRef{
			Span:  tokenSpan(ctor.Token),
			Type:  typesystem.TFunc{Params: fields, ReturnType: result},
			Name:  ctor.Name,
			Arity: len(fields),
		},
		Arguments: args,
	}
}

func (a *Analyzer) inferFieldAccess(expr *ast.FieldAccess) typedast.Expression {
	// module.name resolves through the import table when the left side is
	// not a local variable.
	if ident, ok := expr.Container.(*ast.Identifier); ok {
		if _, local := a.lookup(ident.Value); !local {
			if _, imported := a.imports[ident.Value]; imported {
				return &typedast.ModuleSelect{
					Span:   tokenSpan(expr.Token),
					Type:   a.freshVar(),
					Module: ident.Value,
					Label:  expr.Label,
				}
			}
		}
	}

	record := a.inferExpression(expr.Container)
	name, ok := typeName(a.resolve(record.TypeOf()))
	if !ok {
		a.errorf(diagnostics.ErrA002, expr.Token,
			"cannot access field %s: the record's type is not known here", expr.Label)
		return &typedast.Invalid{Span: tokenSpan(expr.Token), Type: a.freshVar()}
	}

	for _, info := range a.constructors {
		if info.TypeName != name {
			continue
		}
		index := labelIndex(info.Labels, expr.Label)
		if index < 0 {
			continue
		}
		fields, result := a.instantiate(info)
		a.unify(record.TypeOf(), result, expr.Container.GetToken(), diagnostics.ErrA002,
			"record access on a value of the wrong type")
		return &typedast.RecordAccess{
			Span:   tokenSpan(expr.Token),
			Type:   a.resolve(fields[index]),
			Record: record,
			Label:  expr.Label,
			Index:  index,
		}
	}

	a.errorf(diagnostics.ErrA001, expr.Token, "type %s has no field %s", name, expr.Label)
	return &typedast.Invalid{Span: tokenSpan(expr.Token), Type: a.freshVar()}
}

func typeName(t typesystem.Type) (string, bool) {
	switch typ := t.(type) {
	case typesystem.TCon:
		return typ.Name, true
	case typesystem.TApp:
		return typeName(typ.Constructor)
	default:
		return "", false
	}
}

func (a *Analyzer) inferTupleIndex(expr *ast.TupleIndex) typedast.Expression {
	tuple := a.inferExpression(expr.Container)

	resolved := a.resolve(tuple.TypeOf())
	tt, ok := resolved.(typesystem.TTuple)
	if !ok {
		a.errorf(diagnostics.ErrA002, expr.Token,
			"tuple access on a value whose tuple shape is not known here")
		return &typedast.Invalid{Span: tokenSpan(expr.Token), Type: a.freshVar()}
	}
	if expr.Index < 0 || expr.Index >= len(tt.Elements) {
		a.errorf(diagnostics.ErrA002, expr.Token,
			"tuple index %d is out of range for %s", expr.Index, resolved.String())
		return &typedast.Invalid{Span: tokenSpan(expr.Token), Type: a.freshVar()}
	}

	return &typedast.TupleIndex{
		Span:  tokenSpan(expr.Token),
		Type:  a.resolve(tt.Elements[expr.Index]),
		Tuple: tuple,
		Index: expr.Index,
	}
}

func (a *Analyzer) inferPrefix(expr *ast.PrefixExpression) typedast.Expression {
	value := a.inferExpression(expr.Right)
	switch expr.Operator {
	case "!":
		a.unify(value.TypeOf(), typesystem.Bool, expr.Token, diagnostics.ErrA002,
			"! requires a Bool operand")
		return &typedast.NegateBool{Span: tokenSpan(expr.Token), Value: value}
	case "-":
		a.unify(value.TypeOf(), typesystem.Int, expr.Token, diagnostics.ErrA002,
			"unary - requires an Int operand")
		return &typedast.NegateInt{Span: tokenSpan(expr.Token), Value: value}
	default:
		a.errorf(diagnostics.ErrA002, expr.Token, "unknown prefix operator %s", expr.Operator)
		return &typedast.Invalid{Span: tokenSpan(expr.Token), Type: a.freshVar()}
	}
}

// binOpSignature gives the operand and result types of an infix operator.
func binOpSignature(operator string, fresh func() typesystem.Type) (typesystem.Type, typesystem.Type, bool) {
	switch operator {
	case "+", "-", "*", "/", "%":
		return typesystem.Int, typesystem.Int, true
	case "<>":
		return typesystem.String, typesystem.String, true
	case "<", ">", "<=", ">=":
		return typesystem.Int, typesystem.Bool, true
	case "==", "!=":
		return fresh(), typesystem.Bool, true
	case "&&", "||":
		return typesystem.Bool, typesystem.Bool, true
	default:
		return nil, nil, false
	}
}

func (a *Analyzer) inferInfix(expr *ast.InfixExpression) typedast.Expression {
	left := a.inferExpression(expr.Left)
	right := a.inferExpression(expr.Right)

	operand, result, ok := binOpSignature(expr.Operator, a.freshVar)
	if !ok {
		a.errorf(diagnostics.ErrA002, expr.Token, "unknown operator %s", expr.Operator)
		return &typedast.Invalid{Span: tokenSpan(expr.Token), Type: a.freshVar()}
	}

	a.unify(left.TypeOf(), operand, expr.Left.GetToken(), diagnostics.ErrA002,
		"left operand of "+expr.Operator)
	a.unify(right.TypeOf(), operand, expr.Right.GetToken(), diagnostics.ErrA002,
		"right operand of "+expr.Operator)

	return &typedast.BinOp{
		Span:     tokenSpan(expr.Token),
		Type:     result,
		Operator: expr.Operator,
		Left:     left,
		Right:    right,
	}
}

// inferPipeline desugars first |> f |> g into a chain of generated
// assignments, threading each stage's value into the next stage's first
// argument. A bare echo stage prints the threaded value.
func (a *Analyzer) inferPipeline(expr *ast.PipelineExpression) typedast.Expression {
	if len(expr.Stages) == 0 {
		return a.inferExpression(expr.First)
	}

	a.pushScope()
	defer a.popScope()

	first := a.inferExpression(expr.First)
	name := a.freshPipeName()
	a.bind(name, first.TypeOf())
	assignments := []*typedast.PipelineAssignment{{
		Span:  typedast.GeneratedSpan(first.SpanOf()),
		Name:  name,
		Value: first,
	}}
	prev := &typedast.Var{
		Span:   typedast.GeneratedSpan(first.SpanOf()),
		Type:   first.TypeOf(),
		Name:   name,
		Origin: typedast.GeneratedOrigin,
	}

	var finally typedast.Expression
	for i, stage := range expr.Stages {
		value := a.inferStage(stage, prev)
		if i == len(expr.Stages)-1 {
			finally = value
			break
		}
		name := a.freshPipeName()
		a.bind(name, value.TypeOf())
		assignments = append(assignments, &typedast.PipelineAssignment{
			Span:  typedast.GeneratedSpan(value.SpanOf()),
			Name:  name,
			Value: value,
		})
		prev = &typedast.Var{
			Span:   typedast.GeneratedSpan(value.SpanOf()),
			Type:   value.TypeOf(),
			Name:   name,
			Origin: typedast.GeneratedOrigin,
		}
	}

	return &typedast.Pipeline{
		Span:        tokenSpan(expr.Token),
		Type:        a.resolve(finally.TypeOf()),
		Assignments: assignments,
		Finally:     finally,
	}
}

// inferStage checks one pipeline stage with prev as the piped-in value.
func (a *Analyzer) inferStage(stage ast.Expression, prev *typedast.Var) typedast.Expression {
	switch s := stage.(type) {
	case *ast.EchoExpression:
		echo := &typedast.Echo{Span: tokenSpan(s.Token), Type: prev.Type}
		if s.Expression != nil {
			echo.Expression = a.inferExpression(s.Expression)
			echo.Type = echo.Expression.TypeOf()
		} else {
			copied := *prev
			echo.Expression = &copied
		}
		if s.Message != nil {
			echo.Message = a.inferExpression(s.Message)
			a.unify(echo.Message.TypeOf(), typesystem.String, s.Message.GetToken(),
				diagnostics.ErrA002, "echo message must be a String")
		}
		return echo

	case *ast.CallExpression:
		// x |> f(a) calls f(x, a).
		fun := a.inferExpression(s.Function)
		args := []*typedast.CallArg{{Span: prev.Span, Value: prev, Implicit: true}}
		argTypes := []typesystem.Type{prev.Type}
		for _, arg := range s.Arguments {
			value := a.inferExpression(arg.Value)
			args = append(args, &typedast.CallArg{
				Span:  tokenSpan(arg.Token),
				Label: arg.Label,
				Value: value,
			})
			argTypes = append(argTypes, value.TypeOf())
		}
		result := a.freshVar()
		a.unify(fun.TypeOf(), typesystem.TFunc{Params: argTypes, ReturnType: result},
			s.Token, diagnostics.ErrA002, "pipeline stage does not accept the piped value")
		return &typedast.Call{
			Span:      tokenSpan(s.Token),
			Type:      a.resolve(result),
			Fun:       fun,
			Arguments: args,
		}

	default:
		// x |> f calls f(x).
		fun := a.inferExpression(stage)
		result := a.freshVar()
		a.unify(fun.TypeOf(), typesystem.TFunc{Params: []typesystem.Type{prev.Type}, ReturnType: result},
			stage.GetToken(), diagnostics.ErrA002, "pipeline stage does not accept the piped value")
		return &typedast.Call{
			Span:      tokenSpan(stage.GetToken()),
			Type:      a.resolve(result),
			Fun:       fun,
			Arguments: []*typedast.CallArg{{Span: prev.Span, Value: prev, Implicit: true}},
		}
	}
}

func (a *Analyzer) inferCase(expr *ast.CaseExpression) typedast.Expression {
	var subjects []typedast.Expression
	var subjectTypes []typesystem.Type
	for _, subject := range expr.Subjects {
		typed := a.inferExpression(subject)
		subjects = append(subjects, typed)
		subjectTypes = append(subjectTypes, typed.TypeOf())
	}

	result := a.freshVar()
	var clauses []*typedast.Clause
	for _, clause := range expr.Clauses {
		if len(clause.Patterns) != len(subjects) {
			a.errorf(diagnostics.ErrA004, clause.Token,
				"clause has %d patterns but the case has %d subjects",
				len(clause.Patterns), len(subjects))
		}

		a.pushScope()
		var patterns []typedast.Pattern
		for i, pattern := range clause.Patterns {
			expected := a.freshVar()
			if i < len(subjectTypes) {
				expected = subjectTypes[i]
			}
			patterns = append(patterns, a.inferPattern(pattern, expected))
		}
		body := a.inferExpression(clause.Body)
		a.popScope()

		if !divergent(body) {
			a.unify(body.TypeOf(), result, clause.Body.GetToken(), diagnostics.ErrA002,
				"case clauses must all produce the same type")
		}

		clauses = append(clauses, &typedast.Clause{
			Span:     tokenSpan(clause.Token),
			Patterns: patterns,
			Body:     body,
		})
	}

	return &typedast.Case{
		Span:     tokenSpan(expr.Token),
		Type:     a.resolve(result),
		Subjects: subjects,
		Clauses:  clauses,
	}
}

func (a *Analyzer) inferFnLiteral(expr *ast.FunctionLiteral) typedast.Expression {
	typeParamEnv := map[string]typesystem.Type{}

	a.pushScope()
	var params []*typedast.FnParameter
	var paramTypes []typesystem.Type
	for _, param := range expr.Parameters {
		paramType := a.freshVar()
		if param.Type != nil {
			paramType = a.resolveAnnotation(param.Type, typeParamEnv)
		}
		if !param.IsIgnored {
			a.bind(param.Name.Value, paramType)
		}
		params = append(params, &typedast.FnParameter{
			Span:    tokenSpan(param.Token),
			Name:    param.Name.Value,
			Type:    paramType,
			Discard: param.IsIgnored,
		})
		paramTypes = append(paramTypes, paramType)
	}

	returnType := a.freshVar()
	if expr.ReturnType != nil {
		returnType = a.resolveAnnotation(expr.ReturnType, typeParamEnv)
	}

	// A function literal opens its own early-return scope.
	a.returnTypeStack = append(a.returnTypeStack, returnType)
	body := a.inferBody(expr.Body)
	a.returnTypeStack = a.returnTypeStack[:len(a.returnTypeStack)-1]
	a.popScope()

	if len(body) > 0 {
		last := body[len(body)-1]
		if es, ok := last.(*typedast.ExpressionStatement); ok && !divergent(es.Expression) {
			a.unify(es.TypeOf(), returnType, expr.Token, diagnostics.ErrA002,
				"the function body does not match the declared return type")
		}
	}

	return &typedast.Fn{
		Span:       tokenSpan(expr.Token),
		Type:       typesystem.TFunc{Params: paramTypes, ReturnType: a.resolve(returnType)},
		Parameters: params,
		Body:       body,
		ReturnType: a.resolve(returnType),
	}
}

func (a *Analyzer) inferEcho(expr *ast.EchoExpression) typedast.Expression {
	echo := &typedast.Echo{Span: tokenSpan(expr.Token), Type: a.freshVar()}
	if expr.Expression != nil {
		echo.Expression = a.inferExpression(expr.Expression)
		echo.Type = echo.Expression.TypeOf()
	}
	if expr.Message != nil {
		echo.Message = a.inferExpression(expr.Message)
		a.unify(echo.Message.TypeOf(), typesystem.String, expr.Message.GetToken(),
			diagnostics.ErrA002, "echo message must be a String")
	}
	return echo
}

// inferEarlyReturn checks $return value against the return type of the
// innermost function scope. The expression itself is polymorphic since
// control never continues past it.
func (a *Analyzer) inferEarlyReturn(expr *ast.EarlyReturnExpression) typedast.Expression {
	value := a.inferExpression(expr.Value)

	if len(a.returnTypeStack) == 0 {
		// The parser already reported the misplaced $return.
		return &typedast.Invalid{Span: tokenSpan(expr.Token), Type: a.freshVar()}
	}

	expected := a.returnTypeStack[len(a.returnTypeStack)-1]
	a.unify(value.TypeOf(), expected, expr.Token, diagnostics.ErrA003,
		"the returned value does not match the function return type")

	return &typedast.EarlyReturn{
		Span:  tokenSpan(expr.Token),
		Type:  a.freshVar(),
		Value: value,
	}
}

func (a *Analyzer) inferBitArray(expr *ast.BitArrayLiteral) typedast.Expression {
	var segments []*typedast.BitArraySegment
	for _, segment := range expr.Segments {
		value := a.inferExpression(segment.Value)

		segmentType := typesystem.Type(typesystem.Int)
		var options []*typedast.SegmentOption
		for _, option := range segment.Options {
			var optionValue typedast.Expression
			if option.Value != nil {
				optionValue = a.inferExpression(option.Value)
				a.unify(optionValue.TypeOf(), typesystem.Int, option.Token, diagnostics.ErrA002,
					option.Name+" requires an Int")
			}
			switch option.Name {
			case "float":
				segmentType = typesystem.Float
			case "utf8", "utf16", "utf32":
				segmentType = typesystem.String
			case "bytes", "bits":
				segmentType = typesystem.BitArray
			}
			options = append(options, &typedast.SegmentOption{
				Span:  tokenSpan(option.Token),
				Name:  option.Name,
				Value: optionValue,
			})
		}

		a.unify(value.TypeOf(), segmentType, segment.Token, diagnostics.ErrA002,
			"bit array segment value does not match its options")
		segments = append(segments, &typedast.BitArraySegment{
			Span:    tokenSpan(segment.Token),
			Type:    segmentType,
			Value:   value,
			Options: options,
		})
	}

	return &typedast.BitArray{
		Span:     tokenSpan(expr.Token),
		Type:     typesystem.BitArray,
		Segments: segments,
	}
}
