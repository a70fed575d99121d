package admin

import (
	"fmt"
	"net/http"
	"strings"

	types "github.com/praskarnam/DSynth/pkg/api/types"
	"github.com/praskarnam/DSynth/pkg/schema"
	"github.com/praskarnam/DSynth/pkg/store"
)

// handleListCustomTypes handles GET /api/custom-types. An optional ?q=
// filters by name and description.
func (a *API) handleListCustomTypes(w http.ResponseWriter, r *http.Request) {
	list, err := a.store.CustomTypes().Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeStoreError(w, a.log, err, "list custom types")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleGetCustomType handles GET /api/custom-types/{id}.
func (a *API) handleGetCustomType(w http.ResponseWriter, r *http.Request) {
	t, err := a.store.CustomTypes().Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, a.log, err, "get custom type")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleCreateCustomType handles POST /api/custom-types. The expression is
// self-tested and the outcome stored with the type.
func (a *API) handleCreateCustomType(w http.ResponseWriter, r *http.Request) {
	var t store.CustomType
	if err := decodeJSONBody(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, sanitizeJSONError(err, a.log))
		return
	}
	t.ID = ""
	t.CreatedAt = nil
	if msg := validateCustomType(&t); msg != "" {
		writeError(w, http.StatusBadRequest, CodeValidation, msg)
		return
	}

	t.TestResult = a.selfTest(&t)
	if err := a.store.CustomTypes().Save(r.Context(), &t); err != nil {
		writeStoreError(w, a.log, err, "create custom type", "name", t.Name)
		return
	}
	a.syncType(&t)
	a.log.Info("custom type created", "id", t.ID, "name", t.Name, "testPassed", t.TestResult.Success)
	writeJSON(w, http.StatusCreated, types.CreatedResponse{
		Message: "Custom type created successfully",
		ID:      t.ID,
	})
}

// handleUpdateCustomType handles PUT /api/custom-types/{id}.
func (a *API) handleUpdateCustomType(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := a.store.CustomTypes().Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, a.log, err, "get custom type", "id", id)
		return
	}
	oldName := existing.Name

	var t store.CustomType
	if err := decodeJSONBody(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, sanitizeJSONError(err, a.log))
		return
	}
	t.ID = id
	if msg := validateCustomType(&t); msg != "" {
		writeError(w, http.StatusBadRequest, CodeValidation, msg)
		return
	}

	t.TestResult = a.selfTest(&t)
	if err := a.store.CustomTypes().Save(r.Context(), &t); err != nil {
		writeStoreError(w, a.log, err, "update custom type", "id", id)
		return
	}
	if oldName != t.Name {
		a.gen.Unregister(oldName)
	}
	a.syncType(&t)
	writeJSON(w, http.StatusOK, types.CreatedResponse{
		Message: "Custom type updated successfully",
		ID:      id,
	})
}

// handleDeleteCustomType handles DELETE /api/custom-types/{id}.
func (a *API) handleDeleteCustomType(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := a.store.CustomTypes().Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, a.log, err, "get custom type", "id", id)
		return
	}
	name := existing.Name
	if err := a.store.CustomTypes().Delete(r.Context(), id); err != nil {
		writeStoreError(w, a.log, err, "delete custom type", "id", id)
		return
	}
	a.gen.Unregister(name)
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Custom type deleted successfully"})
}

// handleTestCustomType handles POST /api/custom-types/{id}/test.
func (a *API) handleTestCustomType(w http.ResponseWriter, r *http.Request) {
	t, err := a.store.CustomTypes().Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, a.log, err, "get custom type")
		return
	}
	res := a.selfTest(t)
	writeJSON(w, http.StatusOK, types.TestResultResponse{
		Success:    res.Success,
		SampleData: res.Sample,
		Error:      res.Error,
	})
}

// validateCustomType returns a message describing why t cannot be saved,
// or "" when it can.
func validateCustomType(t *store.CustomType) string {
	t.Name = strings.TrimSpace(t.Name)
	switch {
	case t.Name == "":
		return "name is required"
	case strings.TrimSpace(t.Expression) == "":
		return "expression is required"
	}
	if _, builtin := schema.LookupKind(t.Name); builtin {
		return fmt.Sprintf("name %q is a builtin data type", t.Name)
	}
	return ""
}

// selfTest evaluates t's expression once.
func (a *API) selfTest(t *store.CustomType) *store.TestResult {
	sample, err := a.gen.SampleDefinition(t.Definition())
	res := &store.TestResult{TestedAt: a.now().UTC()}
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Success = true
	res.Sample = sample
	return res
}

// syncType mirrors t's active state into the generator's registry.
func (a *API) syncType(t *store.CustomType) {
	if t.IsActive {
		a.gen.Register(t.Definition())
		return
	}
	a.gen.Unregister(t.Name)
}
