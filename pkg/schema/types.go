// Package schema defines the schema model consumed by the generation
// engine: schemas, field descriptors and the tagged data-type variant, plus
// the parser that extracts field descriptors from JSON-Schema and XML/XSD
// documents.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind enumerates the builtin semantic types.
type Kind int

// Builtin kinds. KindNone marks a custom-type reference.
const (
	KindNone Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindDate
	KindDateTime
	KindEmail
	KindPhone
	KindName
	KindAddress
	KindCity
	KindCountry
	KindZipcode
	KindCompany
	KindJob
	KindURL
	KindIPAddress
	KindUUID
)

var kindNames = map[Kind]string{
	KindString:    "string",
	KindInteger:   "integer",
	KindFloat:     "float",
	KindBoolean:   "boolean",
	KindDate:      "date",
	KindDateTime:  "datetime",
	KindEmail:     "email",
	KindPhone:     "phone",
	KindName:      "name",
	KindAddress:   "address",
	KindCity:      "city",
	KindCountry:   "country",
	KindZipcode:   "zipcode",
	KindCompany:   "company",
	KindJob:       "job",
	KindURL:       "url",
	KindIPAddress: "ip_address",
	KindUUID:      "uuid",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// String returns the wire name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "custom"
}

// LookupKind returns the builtin kind called name.
func LookupKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// DataType is either a builtin kind or a reference to a custom type by
// name. It is resolved once, when the descriptor is built or decoded.
type DataType struct {
	kind   Kind
	custom string
}

// Builtin returns the DataType for a builtin kind.
func Builtin(k Kind) DataType {
	return DataType{kind: k}
}

// CustomRef returns the DataType referencing the custom type called name.
func CustomRef(name string) DataType {
	return DataType{custom: name}
}

// ParseDataType resolves s to a builtin kind when it names one, and to a
// custom-type reference otherwise. Surrounding whitespace is ignored.
func ParseDataType(s string) DataType {
	s = strings.TrimSpace(s)
	if k, ok := LookupKind(s); ok {
		return Builtin(k)
	}
	return CustomRef(s)
}

// Kind returns the builtin kind, or KindNone for a custom reference.
func (d DataType) Kind() Kind {
	return d.kind
}

// IsBuiltin reports whether d names a builtin kind.
func (d DataType) IsBuiltin() bool {
	return d.kind != KindNone
}

// CustomName returns the referenced custom-type name.
func (d DataType) CustomName() (string, bool) {
	if d.kind != KindNone {
		return "", false
	}
	return d.custom, true
}

// IsZero reports whether d was never set.
func (d DataType) IsZero() bool {
	return d.kind == KindNone && d.custom == ""
}

// String returns the wire name: the builtin name or the custom-type name.
func (d DataType) String() string {
	if d.kind != KindNone {
		return d.kind.String()
	}
	return d.custom
}

// MarshalJSON implements json.Marshaler.
func (d DataType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DataType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("dataType must be a string: %w", err)
	}
	*d = ParseDataType(s)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d DataType) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *DataType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("dataType must be a string: %w", err)
	}
	*d = ParseDataType(s)
	return nil
}

// Field describes one generated field. Constraints that do not apply to
// the field's data type are ignored.
type Field struct {
	Name        string   `json:"name" yaml:"name"`
	DataType    DataType `json:"dataType" yaml:"dataType"`
	Required    bool     `json:"required" yaml:"required"`
	Nullable    bool     `json:"nullable" yaml:"nullable"`
	MinLength   *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	MinValue    *float64 `json:"minValue,omitempty" yaml:"minValue,omitempty"`
	MaxValue    *float64 `json:"maxValue,omitempty" yaml:"maxValue,omitempty"`
	Pattern     string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	StartDate   string   `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Expression  string   `json:"expression,omitempty" yaml:"expression,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// UnmarshalJSON accepts the legacy "mvelExpression" key as an alias for
// "expression".
func (f *Field) UnmarshalJSON(data []byte) error {
	type plain Field
	aux := struct {
		*plain
		MVELExpression string `json:"mvelExpression"`
	}{plain: (*plain)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if f.Expression == "" {
		f.Expression = aux.MVELExpression
	}
	return nil
}

// HasExpression reports whether the field carries an expression override.
func (f *Field) HasExpression() bool {
	return strings.TrimSpace(f.Expression) != ""
}

// Schema types accepted by the content parser.
const (
	TypeJSON = "json"
	TypeXML  = "xml"
)

// DefaultSeedCount is the number of records served by paginated reads
// when a schema does not set SeedCount.
const DefaultSeedCount = 100

// Schema is a named, ordered list of fields plus the source document the
// fields were mapped from.
type Schema struct {
	ID            string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string     `json:"name" yaml:"name"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	SchemaType    string     `json:"schemaType,omitempty" yaml:"schemaType,omitempty"`
	SchemaContent string     `json:"schemaContent,omitempty" yaml:"schemaContent,omitempty"`
	Fields        []Field    `json:"fields" yaml:"fields"`
	SeedCount     int        `json:"seedCount,omitempty" yaml:"seedCount,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	IsActive      bool       `json:"isActive" yaml:"isActive"`
}

// RecordCount returns SeedCount, or DefaultSeedCount when unset.
func (s *Schema) RecordCount() int {
	if s.SeedCount > 0 {
		return s.SeedCount
	}
	return DefaultSeedCount
}

// Field returns the field called name.
func (s *Schema) Field(name string) (*Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}
