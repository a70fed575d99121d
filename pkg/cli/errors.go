package cli

import "errors"

// Common CLI errors
var (
	ErrNoSchemas          = errors.New("no schema files matched")
	ErrMultipleToStdout   = errors.New("several schemas matched: use --output with a directory")
	ErrClearNotConfirmed  = errors.New("refusing to clear the data directory without --yes")
	ErrExpressionRequired = errors.New("an expression is required")
)
