package ast

import (
	"github.com/funvibe/patclass/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Walk calls fn for p and, while fn returns true, for every sub-pattern in
// left to right order.
func Walk(p Pattern, fn func(Pattern) bool) {
	if p == nil || !fn(p) {
		return
	}
	switch p := p.(type) {
	case *ConPattern:
		for _, a := range p.Args {
			Walk(a, fn)
		}
	case *ImplicitPattern:
		Walk(p.Pattern, fn)
	}
}

// Binders returns the variable patterns of a row in order. Identifiers
// are included; callers that know the constructors filter them.
func Binders(row []Pattern) []Pattern {
	var out []Pattern
	for _, p := range row {
		Walk(p, func(q Pattern) bool {
			switch q.(type) {
			case *VarPattern, *IdentPattern:
				out = append(out, q)
			}
			return true
		})
	}
	return out
}
