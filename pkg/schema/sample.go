package schema

import (
	"fmt"
	"strings"
)

const sampleJSON = `{
  "type": "object",
  "properties": {
    "id": {"type": "integer"},
    "name": {"type": "string"},
    "email": {"type": "string"},
    "active": {"type": "boolean"}
  },
  "required": ["id", "name", "email"]
}`

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="user">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="id" type="xs:integer"/>
        <xs:element name="name" type="xs:string"/>
        <xs:element name="email" type="xs:string"/>
        <xs:element name="active" type="xs:boolean"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

// SampleContent returns a starter document for the given schema type.
func SampleContent(schemaType string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(schemaType)) {
	case TypeJSON:
		return sampleJSON, nil
	case TypeXML:
		return sampleXML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, schemaType)
	}
}
