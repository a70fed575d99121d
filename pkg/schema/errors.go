package schema

import "errors"

var (
	// ErrUnsupportedType is returned for a schema type other than json or xml.
	ErrUnsupportedType = errors.New("unsupported schema type")

	// ErrInvalidContent is returned when schema content cannot be parsed.
	ErrInvalidContent = errors.New("invalid schema content")

	// ErrInvalidSchema is returned by Validate for an incomplete schema.
	ErrInvalidSchema = errors.New("invalid schema")
)
