// Package admin serves the DSynth HTTP API.
//
// The API manages schemas and custom types held in a store.Store and
// generates records for stored schemas through a generator.Generator.
// Saving, updating or deleting a custom type keeps the generator's type
// registry in sync with the store.
//
// Routes:
//
//	GET    /health
//	GET    /api/schemas
//	POST   /api/schemas
//	GET    /api/schemas/{id}
//	PUT    /api/schemas/{id}
//	DELETE /api/schemas/{id}
//	GET    /api/schemas/{id}/elements
//	POST   /api/schemas/{id}/generate
//	GET    /api/data/{id}?page=1&size=10&seed=42
//	GET    /api/custom-types
//	POST   /api/custom-types
//	GET    /api/custom-types/{id}
//	PUT    /api/custom-types/{id}
//	DELETE /api/custom-types/{id}
//	POST   /api/custom-types/{id}/test
//	GET    /api/default-types
//
// Every response body is JSON. Errors use types.ErrorResponse.
package admin
