// Package faker is the semantic-value provider used by the generation
// engine. It returns plausible names, emails, addresses, companies, network
// addresses and lorem text, all drawn from a seedable PCG stream so that a
// seeded generation run is reproducible byte for byte.
//
// A Faker is not safe for concurrent use. The engine gives every record its
// own Faker over its own sub-stream.
//
// Values can be requested through typed methods (Email, City, ...) or by
// name through Method, which accepts snake_case, camelCase and a few common
// aliases:
//
//	f := faker.New(42)
//	f.Email()                  // "maria.lopez481@example.org"
//	v, ok := f.Method("phone_number")
package faker
