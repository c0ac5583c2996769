package patclass

import (
	"fmt"
	"slices"
)

// enumParam is a column whose type is a finite set of constructor names.
// dep, when set, computes the constructors from the already classified
// prefix, modelling a dependent telescope. Heads in family but not in
// ctors are refuted rather than rejected.
type enumParam struct {
	name   string
	ctors  []string
	family []string
	dep    func(prefix []string) []string
}

// enumOracle splits enumParam columns. Single-letter names and "_" are
// variables; "Z" and "S" are spellings of zero and suc that Normalize
// unfolds.
type enumOracle struct {
	calls int
}

func isVar(p string) bool {
	return p == "_" || len(p) == 1 && p[0] >= 'a' && p[0] <= 'z'
}

func (o *enumOracle) SubstParam(s []string, p enumParam) enumParam {
	if p.dep != nil {
		p.ctors = p.dep(s)
		p.dep = nil
	}
	return p
}

func (o *enumOracle) Normalize(p string) string {
	switch p {
	case "Z":
		return "zero"
	case "S":
		return "suc"
	}
	return p
}

func (o *enumOracle) Extend(s []string, t string) []string {
	return append(slices.Clone(s), t)
}

func (o *enumOracle) Classify1(s []string, p enumParam, rows []Row[string], fuel int) []Class[string] {
	o.calls++
	var good []Row[string]
	var bad, refuted []int
	for _, r := range rows {
		switch h := r.Pats[0]; {
		case isVar(h) || slices.Contains(p.ctors, h):
			good = append(good, r)
		case slices.Contains(p.family, h):
			refuted = append(refuted, r.Index)
		default:
			bad = append(bad, r.Index)
		}
	}

	var out []Class[string]
	for _, i := range refuted {
		out = append(out, &Refuted[string]{Problem: fmt.Errorf("no %s here", p.name), Clauses: []int{i}})
	}
	if len(p.ctors) == 0 && len(good) > 0 {
		out = append(out, &One[string]{Term: "?", Clauses: Indices(good)})
	}
	for _, c := range p.ctors {
		var cls []int
		for _, r := range good {
			if h := r.Pats[0]; isVar(h) || h == c {
				cls = append(cls, r.Index)
			}
		}
		if len(cls) > 0 {
			out = append(out, &One[string]{Term: c, Clauses: cls})
		}
	}
	if len(bad) > 0 {
		out = append(out, &Error[string]{Problem: fmt.Errorf("not a constructor of %s", p.name), Clauses: bad})
	}
	return out
}

var natParam = enumParam{name: "Nat", ctors: []string{"zero", "suc"}}

func rowsOf(pats ...[]string) []Row[string] {
	return NewRows(pats)
}

func seqTerms(classes []Class[string]) []string {
	var out []string
	for _, c := range classes {
		if s, ok := c.(*Seq[string]); ok {
			out = append(out, fmt.Sprint(s.Terms, s.Clauses))
		}
	}
	return out
}

type enumClassifier = Classifier[[]string, enumParam, string, string]

func newEnum(o Oracle[[]string, enumParam, string, string], opts ...Option) *enumClassifier {
	return New(o, opts...)
}
