package diagnostics

import (
	"fmt"

	"github.com/corvid-lang/corvid/internal/token"
)

type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // unterminated string

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // expected token
	ErrP003 ErrorCode = "P003" // could not parse literal
	ErrP004 ErrorCode = "P004" // illegal token in input
	ErrP005 ErrorCode = "P005" // expected pattern
	ErrP006 ErrorCode = "P006" // recursion depth limit exceeded
	ErrP007 ErrorCode = "P007" // expected type annotation
	ErrP008 ErrorCode = "P008" // expected expression after $return
	ErrP009 ErrorCode = "P009" // $return outside a function body

	// Analyzer
	ErrA001 ErrorCode = "A001" // unknown name
	ErrA002 ErrorCode = "A002" // type mismatch
	ErrA003 ErrorCode = "A003" // return type mismatch
	ErrA004 ErrorCode = "A004" // wrong arity
	ErrA005 ErrorCode = "A005" // unknown type
	ErrA006 ErrorCode = "A006" // invalid record update

	// Warnings
	WarnA100 ErrorCode = "A100" // unreachable code
	WarnA101 ErrorCode = "A101" // unused variable
)

// DiagnosticError is a positioned compiler diagnostic. Warning reports are
// carried on the same type with a warning code.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	File    string
	Warning bool
}

func (e *DiagnosticError) Error() string {
	prefix := "error"
	if e.Warning {
		prefix = "warning"
	}
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s[%s]: %s", e.File, e.Token.Line, e.Token.Column, prefix, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s[%s]: %s", e.Token.Line, e.Token.Column, prefix, e.Code, e.Message)
}

// NewError creates a diagnostic at the given token.
func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

// NewWarning creates a warning diagnostic at the given token.
func NewWarning(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message, Warning: true}
}
