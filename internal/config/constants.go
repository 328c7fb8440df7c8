package config

const SourceFileExt = ".cv"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".cv", ".corvid"}

// MaxRecursionDepth bounds parser recursion so pathological nesting fails
// with a diagnostic instead of a stack overflow.
const MaxRecursionDepth = 500

// Built-in type names.
const (
	ListTypeName     = "List"
	ResultTypeName   = "Result"
	BitArrayTypeName = "BitArray"
	OkCtorName       = "Ok"
	ErrorCtorName    = "Error"
	TrueCtorName     = "True"
	FalseCtorName    = "False"
)
