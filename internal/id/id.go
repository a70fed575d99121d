// Package id issues identifiers for stored schemas and custom types.
package id

import "github.com/google/uuid"

// UUID returns a random (version 4) UUID in canonical form.
func UUID() string {
	return uuid.NewString()
}
