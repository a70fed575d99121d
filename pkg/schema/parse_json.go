package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	propertiesPath = jp.MustParseString("$.properties")
	requiredPath   = jp.MustParseString("$.required[*]")
)

// jsonTypes maps JSON-Schema types to element types.
var jsonTypes = map[string]string{
	"string":  "string",
	"integer": "integer",
	"number":  "float",
	"boolean": "boolean",
	"array":   ElementArray,
	"object":  ElementObject,
}

// jsonFormats refines string properties by their format keyword.
var jsonFormats = map[string]string{
	"date":      "date",
	"date-time": "datetime",
	"email":     "email",
	"uuid":      "uuid",
	"uri":       "url",
	"url":       "url",
	"ipv4":      "ip_address",
	"ipv6":      "ip_address",
}

func parseJSONSchema(content string) ([]Element, error) {
	doc, err := oj.ParseString(content)
	if err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrInvalidContent, err)
	}
	if err := compileJSONSchema(content); err != nil {
		return nil, fmt.Errorf("%w: json schema: %v", ErrInvalidContent, err)
	}

	found := propertiesPath.Get(doc)
	if len(found) == 0 {
		return nil, nil
	}
	props, ok := found[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: properties must be an object", ErrInvalidContent)
	}

	required := make(map[string]bool)
	for _, v := range requiredPath.Get(doc) {
		if name, ok := v.(string); ok {
			required[name] = true
		}
	}

	order, err := propertyOrder(content)
	if err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrInvalidContent, err)
	}

	elements := make([]Element, 0, len(order))
	for _, name := range order {
		def, _ := props[name].(map[string]any)
		el := jsonElement(name, def)
		el.Required = required[name]
		elements = append(elements, el)
	}
	return elements, nil
}

func compileJSONSchema(content string) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", strings.NewReader(content)); err != nil {
		return err
	}
	_, err := compiler.Compile("schema.json")
	return err
}

func jsonElement(name string, def map[string]any) Element {
	el := Element{Name: name, Type: "string"}
	if def == nil {
		return el
	}

	switch t := def["type"].(type) {
	case string:
		el.Type = mapJSONType(t)
	case []any:
		// ["string", "null"]: the first non-null entry wins.
		for _, v := range t {
			s, _ := v.(string)
			if s == "null" {
				el.Nullable = true
				continue
			}
			if s != "" && el.Type == "string" {
				el.Type = mapJSONType(s)
			}
		}
	}
	if format, ok := def["format"].(string); ok && el.Type == "string" {
		if mapped, ok := jsonFormats[format]; ok {
			el.Type = mapped
		}
	}

	el.Description, _ = def["description"].(string)
	el.Pattern, _ = def["pattern"].(string)
	el.MinValue = numberPtr(def["minimum"])
	el.MaxValue = numberPtr(def["maximum"])
	el.MinLength = intPtr(def["minLength"])
	el.MaxLength = intPtr(def["maxLength"])
	return el
}

func mapJSONType(t string) string {
	if mapped, ok := jsonTypes[t]; ok {
		return mapped
	}
	return "string"
}

func numberPtr(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case int64:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

func intPtr(v any) *int {
	f := numberPtr(v)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// propertyOrder returns the keys of the top-level "properties" object in
// document order. Decoded maps lose that order.
func propertyOrder(content string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(content))
	if ok, err := openObject(dec); err != nil || !ok {
		return nil, err
	}
	for dec.More() {
		key, err := nextKey(dec)
		if err != nil {
			return nil, err
		}
		if key != "properties" {
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			continue
		}
		ok, err := openObject(dec)
		if err != nil || !ok {
			return nil, err
		}
		var names []string
		for dec.More() {
			name, err := nextKey(dec)
			if err != nil {
				return nil, err
			}
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			names = append(names, name)
		}
		return names, nil
	}
	return nil, nil
}

func openObject(dec *json.Decoder) (bool, error) {
	tok, err := dec.Token()
	if err != nil {
		return false, err
	}
	delim, ok := tok.(json.Delim)
	return ok && delim == '{', nil
}

func nextKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func skipValue(dec *json.Decoder) error {
	var raw json.RawMessage
	return dec.Decode(&raw)
}
