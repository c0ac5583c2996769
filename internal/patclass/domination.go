package patclass

// Origin locates a clause: its declaration index and source position.
type Origin[Pos any] struct {
	Index int
	Pos   Pos
}

// Reporter receives an unreachable clause's position and its 1-based
// declaration ordinal.
type Reporter[Pos any] func(pos Pos, ordinal int)

// Dominate assigns every class to the clause with the smallest index in it:
// under first-match semantics that clause is selected for every input of
// the class. Clauses that own no class are reported, in the order of
// clauses, and the buckets are returned.
//
// The owner of a class is found by explicit minimum lookup. The order in
// which classes arrive says nothing about which clause dominates them.
func Dominate[C Classed, Pos any](clauses []Origin[Pos], classes []C, report Reporter[Pos]) map[int][]C {
	buckets := make(map[int][]C, len(clauses))
	for _, c := range clauses {
		buckets[c.Index] = nil
	}
	for _, cls := range classes {
		m := MinIndex(cls.Cls())
		if m < 0 {
			continue
		}
		buckets[m] = append(buckets[m], cls)
	}
	if report != nil {
		for _, c := range clauses {
			if len(buckets[c.Index]) == 0 {
				report(c.Pos, c.Index+1)
			}
		}
	}
	return buckets
}
