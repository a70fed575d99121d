package admin

import (
	"fmt"
	"net/http"
	"strconv"

	types "github.com/praskarnam/DSynth/pkg/api/types"
	"github.com/praskarnam/DSynth/pkg/generator"
)

// handleGenerate handles POST /api/schemas/{id}/generate.
func (a *API) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s, err := a.store.Schemas().Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, a.log, err, "get schema", "id", id)
		return
	}

	req := types.GenerateRequest{Count: 1}
	if err := decodeOptionalJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, sanitizeJSONError(err, a.log))
		return
	}
	if req.Count < 1 || req.Count > a.maxCount {
		writeError(w, http.StatusBadRequest, CodeValidation,
			fmt.Sprintf("count must be between 1 and %d", a.maxCount))
		return
	}

	records, err := a.gen.GenerateRange(r.Context(), s, 0, req.Count, req.Seed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, sanitizeError(err, a.log, "generate", "id", id))
		return
	}
	writeJSON(w, http.StatusOK, types.GenerateResponse{
		Data:  records,
		Count: len(records),
		Seed:  req.Seed,
	})
}

// handleGetData handles GET /api/data/{id}?page&size&seed. The batch has the
// schema's seedCount records; only the requested page is generated.
func (a *API) handleGetData(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s, err := a.store.Schemas().Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, a.log, err, "get schema", "id", id)
		return
	}

	q := r.URL.Query()
	page, size := 1, DefaultPageSize
	if v := q.Get("page"); v != "" {
		n, ok := parsePositiveInt(v)
		if !ok {
			writeError(w, http.StatusBadRequest, CodeInvalidRequest, "page must be a positive integer")
			return
		}
		page = n
	}
	if v := q.Get("size"); v != "" {
		n, ok := parsePositiveInt(v)
		if !ok || n > MaxPageSize {
			writeError(w, http.StatusBadRequest, CodeInvalidRequest,
				fmt.Sprintf("size must be between 1 and %d", MaxPageSize))
			return
		}
		size = n
	}
	var seed *int64
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeInvalidRequest, "seed must be an integer")
			return
		}
		seed = &n
	}

	total := s.RecordCount()
	records := []generator.Record{}
	// Pages past the last one are empty.
	if page-1 < (total+size-1)/size {
		offset := (page - 1) * size
		count := min(size, total-offset)
		records, err = a.gen.GenerateRange(r.Context(), s, offset, count, seed)
		if err != nil {
			writeError(w, http.StatusInternalServerError, CodeInternal, sanitizeError(err, a.log, "generate page", "id", id))
			return
		}
	}
	writeJSON(w, http.StatusOK, types.NewPageResponse(records, page, size, total))
}
