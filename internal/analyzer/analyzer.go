package analyzer

import (
	"fmt"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diagnostics"
	"github.com/corvid-lang/corvid/internal/pipeline"
	"github.com/corvid-lang/corvid/internal/token"
	"github.com/corvid-lang/corvid/internal/typedast"
	"github.com/corvid-lang/corvid/internal/typesystem"
)

// Analyzer type checks a parsed module and produces the typed tree the
// lowering pass consumes.
type Analyzer struct {
	ctx   *pipeline.PipelineContext
	subst typesystem.Subst

	varCounter  int
	pipeCounter int

	scopes []map[string]typesystem.Type

	constructors map[string]*constructorInfo
	typeParams   map[string][]string // type name -> declared parameter names
	imports      map[string]string   // alias -> module path

	// returnTypeStack carries the declared (or inferred) return type of
	// each enclosing function scope. $return unifies against its top.
	returnTypeStack []typesystem.Type
}

// constructorInfo describes one variant of a custom type. Field types are
// expressed in terms of the type's declared parameters.
type constructorInfo struct {
	TypeName string
	Params   []string
	Labels   []string
	Fields   []typesystem.Type
}

func New(ctx *pipeline.PipelineContext) *Analyzer {
	a := &Analyzer{
		ctx:          ctx,
		subst:        typesystem.Subst{},
		scopes:       []map[string]typesystem.Type{{}},
		constructors: map[string]*constructorInfo{},
		typeParams:   map[string][]string{},
		imports:      map[string]string{},
	}
	a.registerPrelude()
	return a
}

func (a *Analyzer) registerPrelude() {
	a.typeParams["Int"] = nil
	a.typeParams["Float"] = nil
	a.typeParams["String"] = nil
	a.typeParams["Bool"] = nil
	a.typeParams["Nil"] = nil
	a.typeParams["BitArray"] = nil
	a.typeParams["List"] = []string{"a"}
	a.typeParams["Result"] = []string{"a", "e"}

	a.constructors["True"] = &constructorInfo{TypeName: "Bool"}
	a.constructors["False"] = &constructorInfo{TypeName: "Bool"}
	a.constructors["Nil"] = &constructorInfo{TypeName: "Nil"}
	a.constructors["Ok"] = &constructorInfo{
		TypeName: "Result",
		Params:   []string{"a", "e"},
		Labels:   []string{""},
		Fields:   []typesystem.Type{typesystem.TVar{Name: "a"}},
	}
	a.constructors["Error"] = &constructorInfo{
		TypeName: "Result",
		Params:   []string{"a", "e"},
		Labels:   []string{""},
		Fields:   []typesystem.Type{typesystem.TVar{Name: "e"}},
	}
}

// Analyze type checks the module.
func (a *Analyzer) Analyze(module *ast.Module) *typedast.Module {
	typed := &typedast.Module{File: module.File}

	for _, imp := range module.Imports {
		a.registerImport(imp)
	}

	// Declarations first so functions can refer to each other and to
	// types declared later in the file.
	for _, stmt := range module.Statements {
		if td, ok := stmt.(*ast.CustomTypeDeclaration); ok {
			a.registerCustomType(td)
		}
	}
	for _, stmt := range module.Statements {
		switch s := stmt.(type) {
		case *ast.Function:
			a.registerFunctionSignature(s)
		case *ast.ConstantDeclaration:
			a.registerConstantSignature(s)
		}
	}

	for _, stmt := range module.Statements {
		switch s := stmt.(type) {
		case *ast.Function:
			typed.Functions = append(typed.Functions, a.inferFunction(s))
		case *ast.ConstantDeclaration:
			typed.Constants = append(typed.Constants, a.inferConstant(s))
		}
	}

	return typed
}

func (a *Analyzer) registerImport(imp *ast.Import) {
	path := imp.Path.Value
	alias := lastPathSegment(path)
	if imp.Alias != nil {
		alias = imp.Alias.Value
	}
	a.imports[alias] = path
}

func lastPathSegment(path string) string {
	segment := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			segment = path[i+1:]
			break
		}
	}
	return segment
}

func (a *Analyzer) registerCustomType(td *ast.CustomTypeDeclaration) {
	var params []string
	for _, p := range td.TypeParams {
		params = append(params, p.Value)
	}
	a.typeParams[td.Name.Value] = params

	paramEnv := map[string]typesystem.Type{}
	for _, p := range params {
		paramEnv[p] = typesystem.TVar{Name: p}
	}

	for _, ctor := range td.Constructors {
		info := &constructorInfo{TypeName: td.Name.Value, Params: params}
		for _, field := range ctor.Fields {
			info.Labels = append(info.Labels, field.Label)
			info.Fields = append(info.Fields, a.resolveAnnotation(field.Type, paramEnv))
		}
		a.constructors[ctor.Name] = info
	}
}

func (a *Analyzer) registerFunctionSignature(fn *ast.Function) {
	typeParamEnv := map[string]typesystem.Type{}
	var params []typesystem.Type
	for _, param := range fn.Parameters {
		if param.Type != nil {
			params = append(params, a.resolveAnnotation(param.Type, typeParamEnv))
		} else {
			params = append(params, a.freshVar())
		}
	}
	returnType := a.freshVar()
	if fn.ReturnType != nil {
		returnType = a.resolveAnnotation(fn.ReturnType, typeParamEnv)
	}
	a.bind(fn.Name.Value, typesystem.TFunc{Params: params, ReturnType: returnType})
}

func (a *Analyzer) registerConstantSignature(c *ast.ConstantDeclaration) {
	if c.TypeAnnotation != nil {
		a.bind(c.Name.Value, a.resolveAnnotation(c.TypeAnnotation, map[string]typesystem.Type{}))
	} else {
		a.bind(c.Name.Value, a.freshVar())
	}
}

func (a *Analyzer) inferFunction(fn *ast.Function) *typedast.Function {
	fnType, _ := a.lookup(fn.Name.Value)
	signature, ok := fnType.(typesystem.TFunc)
	if !ok {
		signature = typesystem.TFunc{ReturnType: a.freshVar()}
	}

	a.pushScope()
	var params []*typedast.FnParameter
	for i, param := range fn.Parameters {
		var paramType typesystem.Type = a.freshVar()
		if i < len(signature.Params) {
			paramType = signature.Params[i]
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
	}

	a.returnTypeStack = append(a.returnTypeStack, signature.ReturnType)
	body := a.inferBody(fn.Body)
	a.returnTypeStack = a.returnTypeStack[:len(a.returnTypeStack)-1]
	a.popScope()

	if len(body) > 0 {
		last := body[len(body)-1]
		if expr, ok := last.(*typedast.ExpressionStatement); ok && !divergent(expr.Expression) {
			a.unify(expr.TypeOf(), signature.ReturnType, lastToken(fn), diagnostics.ErrA002,
				"the function body does not match the declared return type")
		}
	}

	return &typedast.Function{
		Span:       tokenSpan(fn.Token),
		Public:     fn.Public,
		Name:       fn.Name.Value,
		Parameters: params,
		ReturnType: a.resolve(signature.ReturnType),
		Body:       body,
	}
}

func (a *Analyzer) inferConstant(c *ast.ConstantDeclaration) *typedast.Constant {
	declared, _ := a.lookup(c.Name.Value)
	value := a.inferExpression(c.Value)
	a.unify(value.TypeOf(), declared, c.Token, diagnostics.ErrA002,
		"constant value does not match its annotation")
	return &typedast.Constant{
		Span:   tokenSpan(c.Token),
		Public: c.Public,
		Name:   c.Name.Value,
		Type:   a.resolve(declared),
		Value:  value,
	}
}

// divergent reports whether an expression never produces a value in place,
// so its type should not constrain the enclosing body.
func divergent(expr typedast.Expression) bool {
	switch expr.(type) {
	case *typedast.EarlyReturn, *typedast.Todo, *typedast.Panic:
		return true
	default:
		return false
	}
}

// Scope helpers.

func (a *Analyzer) pushScope() {
	a.scopes = append(a.scopes, map[string]typesystem.Type{})
}

func (a *Analyzer) popScope() {
	a.scopes = a.scopes[:len(a.scopes)-1]
}

func (a *Analyzer) bind(name string, t typesystem.Type) {
	a.scopes[len(a.scopes)-1][name] = t
}

func (a *Analyzer) lookup(name string) (typesystem.Type, bool) {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if t, ok := a.scopes[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

func (a *Analyzer) freshVar() typesystem.Type {
	a.varCounter++
	return typesystem.TVar{Name: fmt.Sprintf("t%d", a.varCounter)}
}

func (a *Analyzer) freshPipeName() string {
	name := fmt.Sprintf("_pipe_%d", a.pipeCounter)
	a.pipeCounter++
	return name
}

// unify narrows the global substitution, reporting a diagnostic on
// mismatch.
func (a *Analyzer) unify(t1, t2 typesystem.Type, tok token.Token, code diagnostics.ErrorCode, message string) bool {
	s, err := typesystem.Unify(a.resolve(t1), a.resolve(t2))
	if err != nil {
		a.errorf(code, tok, "%s: %s", message, err.Error())
		return false
	}
	a.subst = a.subst.Compose(s)
	return true
}

func (a *Analyzer) resolve(t typesystem.Type) typesystem.Type {
	if t == nil {
		return a.freshVar()
	}
	return t.Apply(a.subst)
}

func (a *Analyzer) errorf(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	err := diagnostics.NewError(code, tok, fmt.Sprintf(format, args...))
	err.File = a.ctx.FilePath
	a.ctx.Errors = append(a.ctx.Errors, err)
}

func (a *Analyzer) warnf(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	warn := diagnostics.NewWarning(code, tok, fmt.Sprintf(format, args...))
	warn.File = a.ctx.FilePath
	a.ctx.Errors = append(a.ctx.Errors, warn)
}

// instantiate replaces a constructor's declared type parameters with fresh
// type variables, returning the freshened field types and result type.
func (a *Analyzer) instantiate(info *constructorInfo) ([]typesystem.Type, typesystem.Type) {
	mapping := typesystem.Subst{}
	var args []typesystem.Type
	for _, p := range info.Params {
		fresh := a.freshVar()
		mapping[p] = fresh
		args = append(args, fresh)
	}

	fields := make([]typesystem.Type, 0, len(info.Fields))
	for _, f := range info.Fields {
		fields = append(fields, f.Apply(mapping))
	}

	var result typesystem.Type = typesystem.TCon{Name: info.TypeName}
	if len(args) > 0 {
		result = typesystem.TApp{Constructor: typesystem.TCon{Name: info.TypeName}, Args: args}
	}
	return fields, result
}

// resolveAnnotation converts a parsed type annotation into a type.
// Lowercase names are type variables scoped by paramEnv.
func (a *Analyzer) resolveAnnotation(annotation ast.TypeAnnotation, paramEnv map[string]typesystem.Type) typesystem.Type {
	switch t := annotation.(type) {
	case *ast.NamedType:
		if isLowerName(t.Name) && t.Module == "" {
			if existing, ok := paramEnv[t.Name]; ok {
				return existing
			}
			fresh := a.freshVar()
			paramEnv[t.Name] = fresh
			return fresh
		}

		if t.Module != "" {
			// Imported types are opaque.
			return typesystem.TCon{Name: t.Name, Module: t.Module}
		}

		params, known := a.typeParams[t.Name]
		if !known {
			a.errorf(diagnostics.ErrA005, t.Token, "unknown type %s", t.Name)
			return a.freshVar()
		}
		if len(params) != len(t.Args) {
			a.errorf(diagnostics.ErrA005, t.Token,
				"type %s expects %d arguments, got %d", t.Name, len(params), len(t.Args))
			return a.freshVar()
		}
		if len(t.Args) == 0 {
			return typesystem.TCon{Name: t.Name}
		}
		var args []typesystem.Type
		for _, arg := range t.Args {
			args = append(args, a.resolveAnnotation(arg, paramEnv))
		}
		return typesystem.TApp{Constructor: typesystem.TCon{Name: t.Name}, Args: args}

	case *ast.TupleType:
		var elements []typesystem.Type
		for _, el := range t.Elements {
			elements = append(elements, a.resolveAnnotation(el, paramEnv))
		}
		return typesystem.TTuple{Elements: elements}

	case *ast.FnType:
		var params []typesystem.Type
		for _, p := range t.Params {
			params = append(params, a.resolveAnnotation(p, paramEnv))
		}
		var ret typesystem.Type = typesystem.Nil
		if t.ReturnType != nil {
			ret = a.resolveAnnotation(t.ReturnType, paramEnv)
		}
		return typesystem.TFunc{Params: params, ReturnType: ret}

	default:
		return a.freshVar()
	}
}

func isLowerName(name string) bool {
	return len(name) > 0 && name[0] >= 'a' && name[0] <= 'z'
}

func tokenSpan(tok token.Token) typedast.Span {
	return typedast.Span{Start: tok.Start, End: tok.End}
}

func lastToken(fn *ast.Function) token.Token {
	if len(fn.Body) > 0 {
		return fn.Body[len(fn.Body)-1].GetToken()
	}
	return fn.EndToken
}
