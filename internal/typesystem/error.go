package typesystem

import "fmt"

// UnknownDataError indicates a type head that names no data declaration.
type UnknownDataError struct {
	Name string
}

func (e *UnknownDataError) Error() string {
	return fmt.Sprintf("unknown data type: %s", e.Name)
}

// ForeignCtorError indicates a constructor used at a column of another type.
type ForeignCtorError struct {
	Ctor string
	Data string
	Want string
}

func (e *ForeignCtorError) Error() string {
	return fmt.Sprintf("constructor %s of %s cannot match a value of type %s", e.Ctor, e.Data, e.Want)
}

// ArityError indicates a constructor applied to the wrong number of
// explicit arguments, or a type applied to the wrong number of arguments.
type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s expects %d argument(s), got %d", e.Name, e.Want, e.Got)
}

// DuplicateError indicates a name declared twice in one signature.
type DuplicateError struct {
	Kind string
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s: %s", e.Kind, e.Name)
}
