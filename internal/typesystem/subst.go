package typesystem

import (
	"github.com/funvibe/patclass/internal/persistent"
)

// Subst maps telescope names to terms. Extending it never changes the
// receiver, so sibling classification branches can share a prefix.
type Subst struct {
	names []string // telescope order; never mutated
	bound int      // how many of names Extend has bound
	env   persistent.Map[string, Term]
}

// NewSubst starts an empty substitution for a telescope with the given
// parameter names.
func NewSubst(names []string) Subst {
	return Subst{names: names}
}

// Len is the number of telescope positions bound by Extend.
func (s Subst) Len() int {
	return s.bound
}

// Extend binds the next telescope position to t.
func (s Subst) Extend(t Term) Subst {
	out := s
	if s.bound < len(s.names) {
		out.env = s.env.Put(s.names[s.bound], t)
	}
	out.bound = s.bound + 1
	return out
}

// Bind maps name to t without consuming a telescope position.
func (s Subst) Bind(name string, t Term) Subst {
	out := s
	out.env = s.env.Put(name, t)
	return out
}

// Lookup returns the term bound to name.
func (s Subst) Lookup(name string) (Term, bool) {
	return s.env.Get(name)
}

// Apply replaces bound variables in t.
func (s Subst) Apply(t Term) Term {
	if t == nil || s.env.Len() == 0 {
		return t
	}
	switch t := t.(type) {
	case Var:
		if r, ok := s.env.Get(t.Name); ok {
			return r
		}
		return t
	case Con:
		if len(t.Args) == 0 {
			return t
		}
		args := make([]Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.Apply(a)
		}
		return Con{Name: t.Name, Args: args}
	}
	return t
}

// ApplyParam substitutes a parameter's type and value.
func (s Subst) ApplyParam(p Param) Param {
	p.Type = s.Apply(p.Type)
	if p.Value != nil {
		p.Value = s.Apply(p.Value)
	}
	return p
}
