package schema

import (
	"fmt"
	"strings"
)

// Element types produced by the parser besides the builtin kind names.
const (
	ElementObject = "object"
	ElementArray  = "array"
)

// Element is one field found in schema content.
type Element struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Nullable    bool     `json:"nullable,omitempty"`
	Description string   `json:"description,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
	MinValue    *float64 `json:"minValue,omitempty"`
	MaxValue    *float64 `json:"maxValue,omitempty"`
	MinLength   *int     `json:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty"`
}

// ExtractFields parses content according to schemaType ("json" or "xml",
// case-insensitive) and returns the elements it declares, in document order.
func ExtractFields(content, schemaType string) ([]Element, error) {
	switch strings.ToLower(strings.TrimSpace(schemaType)) {
	case TypeJSON:
		return parseJSONSchema(content)
	case TypeXML:
		return parseXML(content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, schemaType)
	}
}

// FieldsFromElements builds field descriptors for the scalar elements.
// Containers are skipped; arrays become strings.
func FieldsFromElements(elements []Element) []Field {
	fields := make([]Field, 0, len(elements))
	for _, el := range elements {
		if el.Type == ElementObject {
			continue
		}
		dt := Builtin(KindString)
		if k, ok := LookupKind(el.Type); ok {
			dt = Builtin(k)
		}
		fields = append(fields, Field{
			Name:        el.Name,
			DataType:    dt,
			Required:    el.Required,
			Nullable:    el.Nullable,
			MinLength:   el.MinLength,
			MaxLength:   el.MaxLength,
			MinValue:    el.MinValue,
			MaxValue:    el.MaxValue,
			Pattern:     el.Pattern,
			Description: el.Description,
		})
	}
	return fields
}
