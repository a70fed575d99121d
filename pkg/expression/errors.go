package expression

import "errors"

var (
	// ErrNoMatch is returned when an expression matches none of the
	// recognized forms.
	ErrNoMatch = errors.New("expression matches no known form")

	// ErrEvaluation is returned when an expression matched a form but
	// could not be evaluated (bad literal, inverted range, unknown
	// provider method, division by zero, ...).
	ErrEvaluation = errors.New("expression evaluation failed")
)
