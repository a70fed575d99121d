package generator

import "github.com/praskarnam/DSynth/pkg/schema"

// Default values substituted when a field cannot be generated.
const (
	DefaultString   = "default_value"
	DefaultDate     = "2024-01-01"
	DefaultDateTime = "2024-01-01 00:00:00"
)

// defaultValue returns the substitute for a field whose generation failed.
// Nullable fields fall back to nil.
func defaultValue(f *schema.Field) any {
	if f.Nullable {
		return nil
	}
	switch f.DataType.Kind() {
	case schema.KindString:
		return DefaultString
	case schema.KindInteger:
		return int64(0)
	case schema.KindFloat:
		return 0.0
	case schema.KindBoolean:
		return false
	case schema.KindDate:
		return DefaultDate
	case schema.KindDateTime:
		return DefaultDateTime
	default:
		return DefaultString
	}
}
