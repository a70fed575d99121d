package generator

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Entry is one named value of a Record.
type Entry struct {
	Name  string
	Value any
}

// Record is one generated row. Entries keep the schema's field order, and
// every encoder preserves it.
type Record struct {
	entries []Entry
}

// NewRecord builds a Record from entries in order. A repeated name keeps
// its first position and takes the last value.
func NewRecord(entries ...Entry) Record {
	var r Record
	for _, e := range entries {
		r.Set(e.Name, e.Value)
	}
	return r
}

// Set assigns value to name, appending name when it is new.
func (r *Record) Set(name string, value any) {
	for i := range r.entries {
		if r.entries[i].Name == name {
			r.entries[i].Value = value
			return
		}
	}
	r.entries = append(r.entries, Entry{Name: name, Value: value})
}

// Get returns the value stored under name.
func (r Record) Get(name string) (any, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Entries returns the record's entries in order.
func (r Record) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r Record) Len() int {
	return len(r.entries)
}

// Map returns the record as an unordered map.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.entries))
	for _, e := range r.entries {
		m[e.Name] = e.Value
	}
	return m
}

// MarshalJSON implements json.Marshaler, writing keys in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, keeping key order. Numbers
// without a fraction decode to int64, others to float64.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("record must be a JSON object")
	}
	r.entries = r.entries[:0]
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		r.Set(name, normalizeNumbers(v))
	}
	_, err = dec.Token()
	return err
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case []any:
		for i := range t {
			t[i] = normalizeNumbers(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = normalizeNumbers(t[k])
		}
		return t
	default:
		return v
	}
}

// MarshalYAML implements yaml.Marshaler, emitting a mapping in field order.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range r.entries {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name}
		val := &yaml.Node{}
		if err := val.Encode(e.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

var _ msgpack.CustomEncoder = Record{}

// EncodeMsgpack implements msgpack.CustomEncoder, writing a map in field
// order.
func (r Record) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(r.entries)); err != nil {
		return err
	}
	for _, e := range r.entries {
		if err := enc.EncodeString(e.Name); err != nil {
			return err
		}
		if err := enc.Encode(e.Value); err != nil {
			return err
		}
	}
	return nil
}
