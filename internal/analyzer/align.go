package analyzer

import (
	"fmt"

	"github.com/funvibe/patclass/internal/ast"
	"github.com/funvibe/patclass/internal/token"
)

// align lays the written patterns out over a telescope whose implicit
// positions are flagged. `{p}` fills the next implicit position and an
// implicit position nobody wrote becomes a wildcard at tok.
func align(tok token.Token, implicit []bool, args []ast.Pattern) ([]ast.Pattern, error) {
	out := make([]ast.Pattern, 0, len(implicit))
	i := 0
	for _, imp := range implicit {
		var next ast.Pattern
		if i < len(args) {
			next = args[i]
		}
		ip, isImplicit := next.(*ast.ImplicitPattern)
		if imp {
			if isImplicit {
				out = append(out, ip.Pattern)
				i++
			} else {
				out = append(out, &ast.WildPattern{Token: tok})
			}
			continue
		}
		if next == nil {
			return nil, arityMismatch(implicit, args)
		}
		if isImplicit {
			return nil, fmt.Errorf("unexpected implicit pattern %s", ip)
		}
		out = append(out, next)
		i++
	}
	if i < len(args) {
		if ip, ok := args[i].(*ast.ImplicitPattern); ok {
			return nil, fmt.Errorf("unexpected implicit pattern %s", ip)
		}
		return nil, arityMismatch(implicit, args)
	}
	return out, nil
}

func arityMismatch(implicit []bool, args []ast.Pattern) error {
	want, got := 0, 0
	for _, imp := range implicit {
		if !imp {
			want++
		}
	}
	for _, a := range args {
		if _, ok := a.(*ast.ImplicitPattern); !ok {
			got++
		}
	}
	return fmt.Errorf("expected %d explicit pattern(s), got %d", want, got)
}
