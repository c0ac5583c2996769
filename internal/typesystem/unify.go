package typesystem

import (
	"fmt"

	"github.com/funvibe/patclass/internal/persistent"
)

// Solution maps hole ids to the terms unification chose for them.
type Solution = persistent.Map[int, Term]

// UnifyError reports two constructor terms that can never be equal.
type UnifyError struct {
	Left, Right Term
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
}

// Zonk replaces solved holes in t.
func Zonk(t Term, sol Solution) Term {
	switch t := t.(type) {
	case Hole:
		if r, ok := sol.Get(t.ID); ok {
			return Zonk(r, sol)
		}
		return t
	case Con:
		if len(t.Args) == 0 {
			return t
		}
		args := make([]Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = Zonk(a, sol)
		}
		return Con{Name: t.Name, Args: args}
	}
	return t
}

// Unify solves holes so that a and b become equal. Only a clash of two
// different constructors is a failure: rigid variables carry no
// information, so they unify with anything without being solved.
func Unify(a, b Term, sol Solution) (Solution, error) {
	a, b = Zonk(a, sol), Zonk(b, sol)

	if ha, ok := a.(Hole); ok {
		return bindHole(ha, b, sol)
	}
	if hb, ok := b.(Hole); ok {
		return bindHole(hb, a, sol)
	}

	ca, okA := a.(Con)
	cb, okB := b.(Con)
	if !okA || !okB {
		return sol, nil
	}
	if ca.Name != cb.Name || len(ca.Args) != len(cb.Args) {
		return sol, &UnifyError{Left: a, Right: b}
	}
	for i := range ca.Args {
		var err error
		if sol, err = Unify(ca.Args[i], cb.Args[i], sol); err != nil {
			return sol, err
		}
	}
	return sol, nil
}

// UnifyAll unifies the two lists pairwise.
func UnifyAll(as, bs []Term, sol Solution) (Solution, error) {
	if len(as) != len(bs) {
		return sol, fmt.Errorf("index count mismatch: %d vs %d", len(as), len(bs))
	}
	for i := range as {
		var err error
		if sol, err = Unify(as[i], bs[i], sol); err != nil {
			return sol, err
		}
	}
	return sol, nil
}

func bindHole(h Hole, t Term, sol Solution) (Solution, error) {
	if other, ok := t.(Hole); ok && other.ID == h.ID {
		return sol, nil
	}
	if occurs(h.ID, t) {
		// suc ?1 = ?1 has no finite solution.
		return sol, &UnifyError{Left: h, Right: t}
	}
	return sol.Put(h.ID, t), nil
}

func occurs(id int, t Term) bool {
	switch t := t.(type) {
	case Hole:
		return t.ID == id
	case Con:
		for _, a := range t.Args {
			if occurs(id, a) {
				return true
			}
		}
	}
	return false
}
