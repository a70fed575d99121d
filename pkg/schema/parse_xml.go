package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// xsdTypes maps XSD builtin simple types (prefix stripped) to element types.
var xsdTypes = map[string]string{
	"string":             "string",
	"normalizedString":   "string",
	"token":              "string",
	"integer":            "integer",
	"int":                "integer",
	"long":               "integer",
	"short":              "integer",
	"byte":               "integer",
	"nonNegativeInteger": "integer",
	"positiveInteger":    "integer",
	"negativeInteger":    "integer",
	"nonPositiveInteger": "integer",
	"unsignedLong":       "integer",
	"unsignedInt":        "integer",
	"unsignedShort":      "integer",
	"unsignedByte":       "integer",
	"decimal":            "float",
	"float":              "float",
	"double":             "float",
	"boolean":            "boolean",
	"date":               "date",
	"dateTime":           "datetime",
	"anyURI":             "url",
}

var (
	integerText  = regexp.MustCompile(`^[+-]?\d+$`)
	floatText    = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	dateTimeText = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}`)
	dateTexts    = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`),
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`),
		regexp.MustCompile(`^\d{4}/\d{2}/\d{2}`),
	}
)

func parseXML(content string) ([]Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return nil, fmt.Errorf("%w: xml: %v", ErrInvalidContent, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: xml: no root element", ErrInvalidContent)
	}
	if localName(root.Tag) == "schema" {
		return parseXSD(root), nil
	}
	return parseXMLDocument(root), nil
}

// parseXSD collects every named element declaration under the schema root.
func parseXSD(root *etree.Element) []Element {
	var elements []Element
	var walk func(parent *etree.Element)
	walk = func(parent *etree.Element) {
		for _, child := range parent.ChildElements() {
			if localName(child.Tag) == "element" {
				if name := child.SelectAttrValue("name", ""); name != "" {
					elements = append(elements, xsdElement(name, child))
				}
			}
			walk(child)
		}
	}
	walk(root)
	return elements
}

func xsdElement(name string, decl *etree.Element) Element {
	el := Element{
		Name:     name,
		Type:     "string",
		Required: decl.SelectAttrValue("minOccurs", "1") != "0",
		Nullable: decl.SelectAttrValue("nillable", "false") == "true",
	}

	if t := decl.SelectAttrValue("type", ""); t != "" {
		el.Type = mapXSDType(t)
	} else if findElement(decl, "complexType") != nil {
		el.Type = ElementObject
	} else if simple := findElement(decl, "simpleType"); simple != nil {
		if restriction := findElement(simple, "restriction"); restriction != nil {
			el.Type = mapXSDType(restriction.SelectAttrValue("base", "string"))
			applyFacets(&el, restriction)
		}
	}

	if ann := findElement(decl, "annotation"); ann != nil {
		if docEl := findElement(ann, "documentation"); docEl != nil {
			el.Description = strings.TrimSpace(docEl.Text())
		}
	}
	return el
}

func applyFacets(el *Element, restriction *etree.Element) {
	for _, facet := range restriction.ChildElements() {
		value := facet.SelectAttrValue("value", "")
		switch localName(facet.Tag) {
		case "minInclusive":
			el.MinValue = parseFloatPtr(value)
		case "maxInclusive":
			el.MaxValue = parseFloatPtr(value)
		case "minLength":
			el.MinLength = parseIntPtr(value)
		case "maxLength":
			el.MaxLength = parseIntPtr(value)
		case "length":
			el.MinLength = parseIntPtr(value)
			el.MaxLength = parseIntPtr(value)
		case "pattern":
			el.Pattern = value
		}
	}
}

func mapXSDType(qname string) string {
	if mapped, ok := xsdTypes[localName(qname)]; ok {
		return mapped
	}
	return "string"
}

// parseXMLDocument derives elements from an instance document. Nested
// children are named by their dotted path; the first occurrence of a path
// decides its type.
func parseXMLDocument(root *etree.Element) []Element {
	var elements []Element
	seen := make(map[string]bool)
	var walk func(parent *etree.Element, prefix string)
	walk = func(parent *etree.Element, prefix string) {
		for _, child := range parent.ChildElements() {
			name := prefix + child.Tag
			if !seen[name] {
				seen[name] = true
				elements = append(elements, Element{
					Name:     name,
					Type:     inferXMLType(child),
					Required: true,
				})
			}
			if len(child.ChildElements()) > 0 {
				walk(child, name+".")
			}
		}
	}
	walk(root, "")
	return elements
}

func inferXMLType(el *etree.Element) string {
	if len(el.ChildElements()) > 0 {
		return ElementObject
	}
	text := strings.TrimSpace(el.Text())
	switch {
	case text == "":
		return "string"
	case strings.EqualFold(text, "true") || strings.EqualFold(text, "false"):
		return "boolean"
	case integerText.MatchString(text):
		return "integer"
	case floatText.MatchString(text):
		return "float"
	case dateTimeText.MatchString(text):
		return "datetime"
	}
	for _, re := range dateTexts {
		if re.MatchString(text) {
			return "date"
		}
	}
	return "string"
}

// findElement returns the first direct child with the given local name.
func findElement(parent *etree.Element, name string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if localName(child.Tag) == name {
			return child
		}
	}
	return nil
}

// localName strips a namespace prefix ("xs:element" → "element").
func localName(qname string) string {
	if idx := strings.IndexByte(qname, ':'); idx >= 0 {
		return qname[idx+1:]
	}
	return qname
}

func parseFloatPtr(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseIntPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
