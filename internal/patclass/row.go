// Package patclass classifies pattern-matching clauses over a dependent
// telescope.
//
// The engine is generic over the substitution, parameter, pattern and term
// representations of the embedding checker. It knows nothing about
// constructors or literals: all single-column splitting is delegated to an
// Oracle. On top of the oracle the package threads substitutions through
// whole telescopes (Classifier), builds multi-case trees (Build) and finds
// clauses that first-match semantics can never select (Dominate).
package patclass

// Row is the remaining pattern columns of one clause together with the
// clause's original declaration index.
type Row[P any] struct {
	Index int
	Pats  []P
}

// Head returns the pattern in the leading column.
func (r Row[P]) Head() (P, bool) {
	if len(r.Pats) == 0 {
		var zero P
		return zero, false
	}
	return r.Pats[0], true
}

// Drop returns the row without its leading column.
func (r Row[P]) Drop() Row[P] {
	if len(r.Pats) == 0 {
		return r
	}
	return Row[P]{Index: r.Index, Pats: r.Pats[1:]}
}

// NewRows numbers pattern rows by their position in pats.
func NewRows[P any](pats [][]P) []Row[P] {
	rows := make([]Row[P], len(pats))
	for i, ps := range pats {
		rows[i] = Row[P]{Index: i, Pats: ps}
	}
	return rows
}

// Indices returns the clause indices of rows, in row order.
func Indices[P any](rows []Row[P]) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Index
	}
	return out
}

// Select returns the rows whose index occurs in cls, keeping row order.
func Select[P any](rows []Row[P], cls []int) []Row[P] {
	want := make(map[int]bool, len(cls))
	for _, i := range cls {
		want[i] = true
	}
	out := make([]Row[P], 0, len(cls))
	for _, r := range rows {
		if want[r.Index] {
			out = append(out, r)
		}
	}
	return out
}

// DropAll drops the leading column of every row.
func DropAll[P any](rows []Row[P]) []Row[P] {
	out := make([]Row[P], len(rows))
	for i, r := range rows {
		out[i] = r.Drop()
	}
	return out
}
