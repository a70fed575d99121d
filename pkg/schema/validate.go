package schema

import (
	"fmt"
	"strings"
)

// Validate checks that s has a name and parseable content, and that its
// field names are non-empty and unique. Configured fields that the content
// does not declare are reported as warnings, not errors.
func Validate(s *Schema) (warnings []string, err error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrInvalidSchema)
	}
	if strings.TrimSpace(s.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidSchema)
	}
	if strings.TrimSpace(s.SchemaContent) == "" {
		return nil, fmt.Errorf("%w: schema content is required", ErrInvalidSchema)
	}

	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrInvalidSchema, i)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, f.Name)
		}
		seen[f.Name] = true
	}

	schemaType := s.SchemaType
	if schemaType == "" {
		schemaType = TypeJSON
	}
	elements, err := ExtractFields(s.SchemaContent, schemaType)
	if err != nil {
		return nil, err
	}

	declared := make(map[string]bool, len(elements))
	for _, el := range elements {
		declared[el.Name] = true
	}
	for _, f := range s.Fields {
		if !declared[f.Name] {
			warnings = append(warnings, fmt.Sprintf("configured field %q not found in schema content", f.Name))
		}
	}
	return warnings, nil
}
