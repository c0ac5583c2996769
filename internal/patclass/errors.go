package patclass

import (
	"errors"
	"fmt"
)

// ErrShortRow is the problem of a row that has fewer patterns than the
// telescope has parameters.
var ErrShortRow = errors.New("clause has fewer patterns than parameters")

// ContractError reports an oracle answer that breaks the coverage contract.
type ContractError struct {
	Reason string
	Index  int
}

func (e *ContractError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("oracle contract violated: %s", e.Reason)
	}
	return fmt.Sprintf("oracle contract violated: %s (clause %d)", e.Reason, e.Index)
}

// VerifyCover checks an oracle answer against the rows it was given: every
// class is nonempty, holds only input indices and no index twice, and the
// classes together mention every input row.
func VerifyCover[P, T any](rows []Row[P], classes []Class[T]) error {
	input := make(map[int]bool, len(rows))
	for _, r := range rows {
		input[r.Index] = true
	}
	seen := make(map[int]bool, len(rows))
	for _, c := range classes {
		cls := c.Cls()
		if len(cls) == 0 {
			return &ContractError{Reason: "empty class", Index: -1}
		}
		inClass := make(map[int]bool, len(cls))
		for _, i := range cls {
			if !input[i] {
				return &ContractError{Reason: "class mentions a clause that was not given", Index: i}
			}
			if inClass[i] {
				return &ContractError{Reason: "clause repeated inside one class", Index: i}
			}
			inClass[i] = true
			seen[i] = true
		}
	}
	for _, r := range rows {
		if !seen[r.Index] {
			return &ContractError{Reason: "clause missing from every class", Index: r.Index}
		}
	}
	return nil
}
