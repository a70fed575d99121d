package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/beevik/etree"

	"github.com/praskarnam/DSynth/pkg/generator"
)

// XML element names used for records.
const (
	xmlRoot   = "records"
	xmlRecord = "record"
	xmlItem   = "item"
)

// encodeXML writes <records><record><field>value</field>...</record></records>.
// Null values carry nil="true"; multi-valued fields hold one <item> per value.
func encodeXML(w io.Writer, records []generator.Record) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(xmlRoot)
	root.CreateAttr("count", strconv.Itoa(len(records)))

	for _, rec := range records {
		el := root.CreateElement(xmlRecord)
		for _, e := range rec.Entries() {
			writeXMLValue(el.CreateElement(xmlName(e.Name)), e.Value)
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func writeXMLValue(el *etree.Element, v any) {
	switch val := v.(type) {
	case nil:
		el.CreateAttr("nil", "true")
	case []any:
		for _, item := range val {
			writeXMLValue(el.CreateElement(xmlItem), item)
		}
	case string:
		el.SetText(val)
	case float64:
		el.SetText(strconv.FormatFloat(val, 'f', -1, 64))
	default:
		el.SetText(fmt.Sprint(val))
	}
}

// xmlName turns a field name into a valid XML element name. Invalid
// characters become '_' and a name that cannot start an element is prefixed
// with '_'.
func xmlName(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range name {
		valid := unicode.IsLetter(r) || r == '_' ||
			(i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'))
		if !valid {
			if i == 0 && (unicode.IsDigit(r) || r == '-' || r == '.') {
				b.WriteByte('_')
				b.WriteRune(r)
				continue
			}
			r = '_'
		}
		b.WriteRune(r)
	}
	out := b.String()
	if strings.HasPrefix(strings.ToLower(out), "xml") {
		out = "_" + out
	}
	return out
}
