// Package output encodes generated records as JSON, YAML, XML or MessagePack.
// Every encoder keeps the declared field order of each record.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/praskarnam/DSynth/pkg/generator"
)

// Format names an output encoding.
type Format string

// Supported formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatXML     Format = "xml"
	FormatMsgpack Format = "msgpack"
)

// ErrUnknownFormat is returned for a format name no encoder handles.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported format names.
func Formats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatXML), string(FormatMsgpack)}
}

// ParseFormat resolves a format name case-insensitively. "yml" is an alias
// for yaml and "msgp" for msgpack.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xml":
		return FormatXML, nil
	case "msgpack", "msgp":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFormat, s, strings.Join(Formats(), ", "))
}

// Extension returns the conventional file extension for f.
func (f Format) Extension() string {
	if f == FormatMsgpack {
		return ".msgpack"
	}
	return "." + string(f)
}

// ContentType returns the media type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatXML:
		return "application/xml"
	case FormatMsgpack:
		return "application/msgpack"
	}
	return "application/json"
}

// Encode writes records to w in format f.
func Encode(w io.Writer, f Format, records []generator.Record) error {
	if records == nil {
		records = []generator.Record{}
	}
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	case FormatXML:
		return encodeXML(w, records)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(records)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// IsFormat reports whether s names a supported format.
func IsFormat(s string) bool {
	return slices.Contains(Formats(), strings.ToLower(s))
}
