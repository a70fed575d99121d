package admin

import "net/http"

// registerRoutes sets up all API routes.
func (a *API) registerRoutes(mux *http.ServeMux) {
	// Health
	mux.HandleFunc("GET /health", a.handleHealth)

	// Schemas
	mux.HandleFunc("GET /api/schemas", a.handleListSchemas)
	mux.HandleFunc("POST /api/schemas", a.handleCreateSchema)
	mux.HandleFunc("GET /api/schemas/{id}", a.handleGetSchema)
	mux.HandleFunc("PUT /api/schemas/{id}", a.handleUpdateSchema)
	mux.HandleFunc("DELETE /api/schemas/{id}", a.handleDeleteSchema)
	mux.HandleFunc("GET /api/schemas/{id}/elements", a.handleSchemaElements)
	mux.HandleFunc("GET /api/sample-schemas/{type}", a.handleSampleSchema)

	// Generation
	mux.HandleFunc("POST /api/schemas/{id}/generate", a.handleGenerate)
	mux.HandleFunc("GET /api/data/{id}", a.handleGetData)

	// Custom types
	mux.HandleFunc("GET /api/custom-types", a.handleListCustomTypes)
	mux.HandleFunc("POST /api/custom-types", a.handleCreateCustomType)
	mux.HandleFunc("GET /api/custom-types/{id}", a.handleGetCustomType)
	mux.HandleFunc("PUT /api/custom-types/{id}", a.handleUpdateCustomType)
	mux.HandleFunc("DELETE /api/custom-types/{id}", a.handleDeleteCustomType)
	mux.HandleFunc("POST /api/custom-types/{id}/test", a.handleTestCustomType)

	// Builtin type catalog
	mux.HandleFunc("GET /api/default-types", a.handleDefaultTypes)
}
