package admin

import (
	"errors"
	"net/http"
	"strings"

	types "github.com/praskarnam/DSynth/pkg/api/types"
	"github.com/praskarnam/DSynth/pkg/schema"
)

// handleListSchemas handles GET /api/schemas. An optional ?q= filters by
// name and description.
func (a *API) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	schemas, err := a.store.Schemas().Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeStoreError(w, a.log, err, "list schemas")
		return
	}
	writeJSON(w, http.StatusOK, schemas)
}

// handleGetSchema handles GET /api/schemas/{id}.
func (a *API) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	s, err := a.store.Schemas().Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, a.log, err, "get schema")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// handleCreateSchema handles POST /api/schemas.
func (a *API) handleCreateSchema(w http.ResponseWriter, r *http.Request) {
	var s schema.Schema
	if err := decodeJSONBody(r, &s); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, sanitizeJSONError(err, a.log))
		return
	}
	s.ID = ""
	s.CreatedAt = nil

	warnings, ok := a.prepareSchema(w, &s)
	if !ok {
		return
	}
	if err := a.store.Schemas().Save(r.Context(), &s); err != nil {
		writeStoreError(w, a.log, err, "create schema", "name", s.Name)
		return
	}
	a.log.Info("schema created", "id", s.ID, "name", s.Name)
	writeJSON(w, http.StatusCreated, types.CreatedResponse{
		Message:  "Schema created successfully",
		ID:       s.ID,
		Warnings: warnings,
	})
}

// handleUpdateSchema handles PUT /api/schemas/{id}.
func (a *API) handleUpdateSchema(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := a.store.Schemas().Get(r.Context(), id); err != nil {
		writeStoreError(w, a.log, err, "get schema", "id", id)
		return
	}

	var s schema.Schema
	if err := decodeJSONBody(r, &s); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, sanitizeJSONError(err, a.log))
		return
	}
	s.ID = id

	warnings, ok := a.prepareSchema(w, &s)
	if !ok {
		return
	}
	if err := a.store.Schemas().Save(r.Context(), &s); err != nil {
		writeStoreError(w, a.log, err, "update schema", "id", id)
		return
	}
	writeJSON(w, http.StatusOK, types.CreatedResponse{
		Message:  "Schema updated successfully",
		ID:       id,
		Warnings: warnings,
	})
}

// handleSampleSchema handles GET /api/sample-schemas/{type}.
func (a *API) handleSampleSchema(w http.ResponseWriter, r *http.Request) {
	typ := strings.ToLower(r.PathValue("type"))
	content, err := schema.SampleContent(typ)
	if err != nil {
		writeError(w, http.StatusNotFound, CodeNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, types.SampleSchemaResponse{SchemaType: typ, SchemaContent: content})
}

// prepareSchema derives missing fields from the content and validates s.
// On failure it writes the response and returns false.
func (a *API) prepareSchema(w http.ResponseWriter, s *schema.Schema) ([]string, bool) {
	if s.SchemaType == "" {
		s.SchemaType = schema.TypeJSON
	}
	s.SchemaType = strings.ToLower(s.SchemaType)
	if len(s.Fields) == 0 && strings.TrimSpace(s.SchemaContent) != "" {
		elements, err := schema.ExtractFields(s.SchemaContent, s.SchemaType)
		if err == nil {
			s.Fields = schema.FieldsFromElements(elements)
		}
	}

	warnings, err := schema.Validate(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, validationMessage(err))
		return nil, false
	}
	return warnings, true
}

// validationMessage returns a client-safe description of a schema error.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, schema.ErrInvalidSchema),
		errors.Is(err, schema.ErrInvalidContent),
		errors.Is(err, schema.ErrUnsupportedType):
		return err.Error()
	}
	return "Schema validation failed"
}

// handleDeleteSchema handles DELETE /api/schemas/{id}.
func (a *API) handleDeleteSchema(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := a.store.Schemas().Delete(r.Context(), id); err != nil {
		writeStoreError(w, a.log, err, "delete schema", "id", id)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Schema deleted successfully"})
}

// handleSchemaElements handles GET /api/schemas/{id}/elements.
func (a *API) handleSchemaElements(w http.ResponseWriter, r *http.Request) {
	s, err := a.store.Schemas().Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, a.log, err, "get schema")
		return
	}
	elements, err := schema.ExtractFields(s.SchemaContent, s.SchemaType)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "Error parsing schema: "+validationMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, types.ElementsResponse{Elements: elements})
}
