// Package diagnostics defines the coded errors and warnings reported to users.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/funvibe/patclass/internal/token"
)

type ErrorCode string

const (
	// Problem file
	ErrF001 ErrorCode = "F001" // unreadable or malformed YAML
	ErrF002 ErrorCode = "F002" // failed validation
	ErrF003 ErrorCode = "F003" // unsupported format version
	ErrF004 ErrorCode = "F004" // duplicate declaration

	// Syntax
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // illegal character
	ErrP003 ErrorCode = "P003" // malformed binding
	ErrP004 ErrorCode = "P004" // trailing input

	// Resolution
	ErrA001 ErrorCode = "A001" // unknown type or constructor
	ErrA002 ErrorCode = "A002" // wrong number of type arguments
	ErrA003 ErrorCode = "A003" // clause arity does not match the telescope
	ErrA004 ErrorCode = "A004" // variable bound twice in one clause

	// Classification
	ErrC001 ErrorCode = "C001" // ill-typed split
	ErrC002 ErrorCode = "C002" // unreachable clause
	ErrC003 ErrorCode = "C003" // oracle contract violation
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// DiagnosticError is a located, coded message.
type DiagnosticError struct {
	Code     ErrorCode
	Severity Severity
	Token    token.Token
	File     string
	Message  string
}

func NewError(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Severity: SeverityError, Token: tok, Message: msg}
}

func NewWarning(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Severity: SeverityWarning, Token: tok, Message: msg}
}

// Errorf builds an error diagnostic with a formatted message.
func Errorf(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return NewError(code, tok, fmt.Sprintf(format, args...))
}

func (e *DiagnosticError) Error() string {
	loc := e.File
	if e.Token.Line > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += e.Token.Pos()
	}
	if loc == "" {
		return fmt.Sprintf("%s[%s]: %s", e.Severity, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", loc, e.Severity, e.Code, e.Message)
}

func (e *DiagnosticError) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []*DiagnosticError) bool {
	for _, d := range diags {
		if !d.IsWarning() {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by file and position, keeping the relative order
// of diagnostics at the same position.
func Sort(diags []*DiagnosticError) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Token.Line != b.Token.Line {
			return a.Token.Line < b.Token.Line
		}
		return a.Token.Column < b.Token.Column
	})
}
