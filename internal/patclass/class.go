package patclass

import (
	"fmt"
	"slices"
)

// Classed is anything that carries a set of clause indices.
type Classed interface {
	Cls() []int
}

// Class is the result of one classification step. The variant set is
// closed: *One, *Two, *Seq, *Error and *Refuted.
type Class[T any] interface {
	Classed
	isClass()
}

// One is a class of a single column: every clause in Clauses is compatible
// with the representative Term.
type One[T any] struct {
	Term    T
	Clauses []int
}

// Two is a class of two columns split in lock-step.
type Two[T any] struct {
	First   T
	Second  T
	Clauses []int
}

// Seq is a class of a whole telescope, one representative term per column.
type Seq[T any] struct {
	Terms   []T
	Clauses []int
}

// Error is a class the oracle could not split validly. The clauses it
// carries are excluded from further classification of that branch.
type Error[T any] struct {
	Problem error
	Clauses []int
}

// Refuted holds rows that match no value of the current branch: the
// substitution built by sibling columns rules their head out. Problem says
// why. A row refuted in one branch may still match in another.
type Refuted[T any] struct {
	Problem error
	Clauses []int
}

func (c *One[T]) Cls() []int     { return c.Clauses }
func (c *Two[T]) Cls() []int     { return c.Clauses }
func (c *Seq[T]) Cls() []int     { return c.Clauses }
func (c *Error[T]) Cls() []int   { return c.Clauses }
func (c *Refuted[T]) Cls() []int { return c.Clauses }

func (*One[T]) isClass()     {}
func (*Two[T]) isClass()     {}
func (*Seq[T]) isClass()     {}
func (*Error[T]) isClass()   {}
func (*Refuted[T]) isClass() {}

func (c *Error[T]) String() string {
	return fmt.Sprintf("error %v %v", c.Clauses, c.Problem)
}

// MinIndex returns the smallest index in cls, or -1 when cls is empty.
func MinIndex(cls []int) int {
	if len(cls) == 0 {
		return -1
	}
	m := cls[0]
	for _, i := range cls[1:] {
		if i < m {
			m = i
		}
	}
	return m
}

// Errors returns the *Error members of classes.
func Errors[T any](classes []Class[T]) []*Error[T] {
	var out []*Error[T]
	for _, c := range classes {
		if e, ok := c.(*Error[T]); ok {
			out = append(out, e)
		}
	}
	return out
}

// Refutations returns the *Refuted members of classes.
func Refutations[T any](classes []Class[T]) []*Refuted[T] {
	var out []*Refuted[T]
	for _, c := range classes {
		if r, ok := c.(*Refuted[T]); ok {
			out = append(out, r)
		}
	}
	return out
}

// WithoutErrors returns the classes that match some input: classes minus
// the *Error and *Refuted members.
func WithoutErrors[T any](classes []Class[T]) []Class[T] {
	out := make([]Class[T], 0, len(classes))
	for _, c := range classes {
		switch c.(type) {
		case *Error[T], *Refuted[T]:
		default:
			out = append(out, c)
		}
	}
	return out
}

// Unmatched returns, in ascending order, the clauses that occur only in
// *Refuted classes: every branch they reach rules them out.
func Unmatched[T any](classes []Class[T]) []int {
	matched := make(map[int]bool)
	refuted := make(map[int]bool)
	for _, c := range classes {
		_, isRefuted := c.(*Refuted[T])
		for _, i := range c.Cls() {
			if isRefuted {
				refuted[i] = true
			} else {
				matched[i] = true
			}
		}
	}
	var out []int
	for i := range refuted {
		if !matched[i] {
			out = append(out, i)
		}
	}
	slices.Sort(out)
	return out
}
