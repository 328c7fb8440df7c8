package typesystem

// Prelude type constants.
var (
	Int    = TCon{Name: "Int"}
	Float  = TCon{Name: "Float"}
	String = TCon{Name: "String"}
	Bool   = TCon{Name: "Bool"}
	Nil    = TCon{Name: "Nil"}

	// BitArray is the type of <<...>> expressions.
	BitArray = TCon{Name: "BitArray"}
)

// List builds the type List<element>.
func List(element Type) Type {
	return TApp{Constructor: TCon{Name: "List"}, Args: []Type{element}}
}

// Result builds the type Result<ok, err>.
func Result(ok, err Type) Type {
	return TApp{Constructor: TCon{Name: "Result"}, Args: []Type{ok, err}}
}

// IsNil reports whether t is the unit type.
func IsNil(t Type) bool {
	tc, ok := t.(TCon)
	return ok && tc.Name == "Nil" && tc.Module == ""
}
