package analyzer

import (
	"github.com/funvibe/patclass/internal/diagnostics"
	"github.com/funvibe/patclass/internal/token"
)

// PatternError is the problem carried by an Error class the oracle builds.
// It remembers the offending pattern so the checker can point at it.
type PatternError struct {
	Code    diagnostics.ErrorCode
	Token   token.Token
	Message string
}

func (e *PatternError) Error() string {
	return e.Message
}

func (e *PatternError) Diagnostic() *diagnostics.DiagnosticError {
	return diagnostics.NewError(e.Code, e.Token, e.Message)
}
