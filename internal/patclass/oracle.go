package patclass

// Oracle is the contract between the engine and the embedding checker.
//
// S is the substitution, A a telescope parameter, P a pattern and T a term.
type Oracle[S, A, P, T any] interface {
	// SubstParam applies the accumulated substitution to a parameter that
	// has not been classified yet.
	SubstParam(s S, param A) A

	// Normalize brings a pattern into the form Classify1 inspects.
	Normalize(pat P) P

	// Extend appends the representative term of the column just classified.
	// It must not mutate s.
	Extend(s S, term T) S

	// Classify1 splits the leading column of rows. param is already
	// substituted and every row's head is normalized. The result holds *One,
	// *Error and *Refuted classes whose indices together cover the input
	// rows. *Refuted is for rows whose head param rules out here; they are
	// dropped from the branch without being an error. A
	// nested inspection of sub-patterns must be requested with less fuel
	// than was given; at fuel 0 the oracle stops splitting.
	Classify1(s S, param A, rows []Row[P], fuel int) []Class[T]
}
