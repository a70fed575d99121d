package admin

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	types "github.com/praskarnam/DSynth/pkg/api/types"
	"github.com/praskarnam/DSynth/pkg/schema"
)

// Type aliases pointing to the canonical shared types.
type (
	ErrorResponse   = types.ErrorResponse
	HealthResponse  = types.HealthResponse
	MessageResponse = types.MessageResponse
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// decodeJSONBody decodes a required JSON body into dst.
func decodeJSONBody(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return io.EOF
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// decodeOptionalJSONBody decodes JSON when a body is present.
// Empty bodies are treated as "not provided" and are not errors.
func decodeOptionalJSONBody(r *http.Request, dst any) error {
	if r == nil || r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// parsePositiveInt returns a parsed int only when the value is a valid positive integer.
func parsePositiveInt(v string) (int, bool) {
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// handleHealth handles GET /health.
func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   a.version,
		Uptime:    a.Uptime(),
		Timestamp: a.now().UTC(),
	})
}

// handleDefaultTypes handles GET /api/default-types.
func (a *API) handleDefaultTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, schema.Catalog())
}
