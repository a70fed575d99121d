package faker

import (
	"sort"
	"strings"
)

// methods maps normalized method names to generators. Keys are lower-case
// with underscores removed so "phone_number", "phoneNumber" and
// "phonenumber" resolve to the same entry.
var methods = map[string]func(*Faker) any{
	"name":          func(f *Faker) any { return f.Name() },
	"firstname":     func(f *Faker) any { return f.FirstName() },
	"lastname":      func(f *Faker) any { return f.LastName() },
	"email":         func(f *Faker) any { return f.Email() },
	"phone":         func(f *Faker) any { return f.PhoneNumber() },
	"phonenumber":   func(f *Faker) any { return f.PhoneNumber() },
	"address":       func(f *Faker) any { return f.Address() },
	"streetaddress": func(f *Faker) any { return f.StreetAddress() },
	"city":          func(f *Faker) any { return f.City() },
	"country":       func(f *Faker) any { return f.Country() },
	"zipcode":       func(f *Faker) any { return f.Zipcode() },
	"postcode":      func(f *Faker) any { return f.Zipcode() },
	"company":       func(f *Faker) any { return f.Company() },
	"job":           func(f *Faker) any { return f.Job() },
	"jobtitle":      func(f *Faker) any { return f.Job() },
	"url":           func(f *Faker) any { return f.URL() },
	"ip":            func(f *Faker) any { return f.IPv4() },
	"ipv4":          func(f *Faker) any { return f.IPv4() },
	"ipaddress":     func(f *Faker) any { return f.IPv4() },
	"ipv6":          func(f *Faker) any { return f.IPv6() },
	"uuid":          func(f *Faker) any { return f.UUID() },
	"uuid4":         func(f *Faker) any { return f.UUID() },
	"word":          func(f *Faker) any { return f.Word() },
	"sentence":      func(f *Faker) any { return f.Sentence() },
	"text":          func(f *Faker) any { return f.Text(200) },
	"color":         func(f *Faker) any { return f.Color() },
	"boolean":       func(f *Faker) any { return f.Boolean() },
	"date":          func(f *Faker) any { return f.Date().Format("2006-01-02") },
	"datetime":      func(f *Faker) any { return f.DateTime().Format("2006-01-02 15:04:05") },
}

func normalizeMethod(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
}

// Method invokes the provider method called name. It reports false for
// unknown names.
func (f *Faker) Method(name string) (any, bool) {
	fn, ok := methods[normalizeMethod(name)]
	if !ok {
		return nil, false
	}
	return fn(f), true
}

// Methods returns the canonical method names, sorted.
func Methods() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
