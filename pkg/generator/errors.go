package generator

import "errors"

var (
	// ErrUnknownCustomType is returned when a field references a custom
	// type that is not registered.
	ErrUnknownCustomType = errors.New("unknown custom type")

	// ErrConstraint is returned when a field's constraints cannot be
	// satisfied, such as a minimum above the maximum.
	ErrConstraint = errors.New("unsatisfiable field constraint")

	// ErrFieldGeneration wraps any failure while producing one field value.
	// The generator recovers it and substitutes the field's default.
	ErrFieldGeneration = errors.New("field generation failed")
)
