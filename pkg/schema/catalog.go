package schema

// TypeInfo describes one selectable data type.
type TypeInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

// Type categories.
const (
	CategoryText    = "text"
	CategoryNumber  = "number"
	CategoryBoolean = "boolean"
	CategoryDate    = "date"
	CategoryCustom  = "custom"
)

var catalog = []TypeInfo{
	{Name: "string", Description: "Random string", Category: CategoryText},
	{Name: "integer", Description: "Random integer", Category: CategoryNumber},
	{Name: "float", Description: "Random float", Category: CategoryNumber},
	{Name: "boolean", Description: "Random boolean", Category: CategoryBoolean},
	{Name: "date", Description: "Random date", Category: CategoryDate},
	{Name: "datetime", Description: "Random datetime", Category: CategoryDate},
	{Name: "email", Description: "Random email address", Category: CategoryText},
	{Name: "phone", Description: "Random phone number", Category: CategoryText},
	{Name: "name", Description: "Random person name", Category: CategoryText},
	{Name: "address", Description: "Random street address", Category: CategoryText},
	{Name: "city", Description: "Random city name", Category: CategoryText},
	{Name: "country", Description: "Random country name", Category: CategoryText},
	{Name: "zipcode", Description: "Random zip code", Category: CategoryText},
	{Name: "company", Description: "Random company name", Category: CategoryText},
	{Name: "job", Description: "Random job title", Category: CategoryText},
	{Name: "url", Description: "Random URL", Category: CategoryText},
	{Name: "ip_address", Description: "Random IP address", Category: CategoryText},
	{Name: "uuid", Description: "Random UUID", Category: CategoryText},
	{Name: "custom", Description: "Custom data type", Category: CategoryCustom},
}

// Catalog lists the builtin types followed by the "custom" placeholder.
// The returned slice is a copy.
func Catalog() []TypeInfo {
	out := make([]TypeInfo, len(catalog))
	copy(out, catalog)
	return out
}
