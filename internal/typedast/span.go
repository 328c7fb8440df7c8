package typedast

// Span is a half-open byte range in the source buffer. Spans on nodes
// produced by lowering are marked Generated and reuse the range of the
// construct they replace.
type Span struct {
	Start     int
	End       int
	Generated bool
}

// Generated returns a synthetic copy of s for nodes introduced by lowering.
func GeneratedSpan(s Span) Span {
	return Span{Start: s.Start, End: s.End, Generated: true}
}

// VariableOrigin records whether a variable came from source text or was
// introduced by a compiler pass.
type VariableOrigin int

const (
	SourceOrigin VariableOrigin = iota
	GeneratedOrigin
)

// AssignmentKind distinguishes let bindings from bindings introduced by
// desugaring.
type AssignmentKind int

const (
	LetAssignment AssignmentKind = iota
	GeneratedAssignment
)

// CompiledCase is the decision tree compiled from an assignment pattern.
// Pattern compilation proper is the host exhaustiveness checker's job; the
// lowering pass only ever needs the trivial single-variable form.
type CompiledCase struct {
	// Bindings lists bound variable names in source order.
	Bindings []string
}

// SimpleVariableAssignment builds the trivial decision tree for
// `let name = value`.
func SimpleVariableAssignment(name string) CompiledCase {
	return CompiledCase{Bindings: []string{name}}
}
