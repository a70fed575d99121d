package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/praskarnam/DSynth/pkg/api/types"
	"github.com/praskarnam/DSynth/pkg/generator"
	"github.com/praskarnam/DSynth/pkg/registry"
	"github.com/praskarnam/DSynth/pkg/schema"
	"github.com/praskarnam/DSynth/pkg/store"
	"github.com/praskarnam/DSynth/pkg/store/file"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

const usersContent = `{
	"type": "object",
	"properties": {
		"id": {"type": "string", "format": "uuid"},
		"age": {"type": "integer", "minimum": 18, "maximum": 65},
		"email": {"type": "string", "format": "email"}
	},
	"required": ["id"]
}`

type testServer struct {
	api   *API
	store *file.FileStore
	gen   *generator.Generator
}

func newTestServer(t *testing.T, opts ...Option) *testServer {
	t.Helper()
	st := file.New(store.Config{DataDir: t.TempDir()})
	require.NoError(t, st.Open(context.Background()))
	gen := generator.New(generator.WithClock(func() time.Time { return fixedNow }))
	opts = append([]Option{WithClock(func() time.Time { return fixedNow }), WithVersion("test")}, opts...)
	return &testServer{api: New(st, gen, opts...), store: st, gen: gen}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.api.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (ts *testServer) createSchema(t *testing.T, body map[string]any) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/schemas", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[types.CreatedResponse](t, rec).ID
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	resp := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestDefaultTypes(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/default-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	catalog := decode[[]schema.TypeInfo](t, rec)
	assert.Equal(t, schema.Catalog(), catalog)
}

func TestSampleSchema(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/sample-schemas/XML", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[types.SampleSchemaResponse](t, rec)
	assert.Equal(t, schema.TypeXML, resp.SchemaType)
	assert.Equal(t, sampleContent(t, schema.TypeXML), resp.SchemaContent)

	rec = ts.do(t, http.MethodGet, "/api/sample-schemas/csv", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, decode[ErrorResponse](t, rec).Error)
}

func TestSchemaCRUD(t *testing.T) {
	ts := newTestServer(t)

	id := ts.createSchema(t, map[string]any{
		"name":          "Users",
		"schemaType":    "json",
		"schemaContent": usersContent,
	})

	rec := ts.do(t, http.MethodGet, "/api/schemas/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[schema.Schema](t, rec)
	assert.Equal(t, "Users", got.Name)
	require.Len(t, got.Fields, 3, "fields are derived from the content")
	assert.Equal(t, schema.Builtin(schema.KindUUID), got.Fields[0].DataType)

	rec = ts.do(t, http.MethodGet, "/api/schemas", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]schema.Schema](t, rec), 1)

	rec = ts.do(t, http.MethodPut, "/api/schemas/"+id, map[string]any{
		"name":          "Accounts",
		"schemaContent": usersContent,
		"fields": []map[string]any{
			{"name": "id", "dataType": "uuid"},
			{"name": "nickname", "dataType": "name"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[types.CreatedResponse](t, rec)
	assert.Equal(t, []string{`configured field "nickname" not found in schema content`}, updated.Warnings)

	rec = ts.do(t, http.MethodGet, "/api/schemas?q=acc", nil)
	assert.Len(t, decode[[]schema.Schema](t, rec), 1)

	rec = ts.do(t, http.MethodDelete, "/api/schemas/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(t, http.MethodGet, "/api/schemas/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, decode[ErrorResponse](t, rec).Error)
}

func TestSchemaValidationErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name string
		body any
		code string
	}{
		{"bad json", `{"name":`, CodeInvalidJSON},
		{"empty body", nil, CodeInvalidJSON},
		{"missing name", map[string]any{"schemaContent": usersContent}, CodeValidation},
		{"bad content", map[string]any{"name": "x", "schemaContent": "{nope"}, CodeValidation},
		{"bad type", map[string]any{"name": "x", "schemaType": "csv", "schemaContent": "a,b"}, CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/schemas", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decode[ErrorResponse](t, rec).Error)
		})
	}

	rec := ts.do(t, http.MethodPut, "/api/schemas/missing", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func sampleContent(t *testing.T, schemaType string) string {
	t.Helper()
	content, err := schema.SampleContent(schemaType)
	require.NoError(t, err)
	return content
}

func TestSchemaElements(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createSchema(t, map[string]any{
		"name":          "Sample",
		"schemaType":    "xml",
		"schemaContent": sampleContent(t, schema.TypeXML),
	})

	rec := ts.do(t, http.MethodGet, "/api/schemas/"+id+"/elements", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[types.ElementsResponse](t, rec)
	assert.NotEmpty(t, resp.Elements)

	rec = ts.do(t, http.MethodGet, "/api/schemas/missing/elements", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerate(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createSchema(t, map[string]any{"name": "Users", "schemaContent": usersContent})

	rec := ts.do(t, http.MethodPost, "/api/schemas/"+id+"/generate", map[string]any{"count": 5, "seed": 42})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[types.GenerateResponse](t, rec)
	assert.Equal(t, 5, first.Count)
	require.Len(t, first.Data, 5)
	for _, r := range first.Data {
		age, ok := r.Get("age")
		require.True(t, ok)
		assert.GreaterOrEqual(t, age, int64(18))
		assert.LessOrEqual(t, age, int64(65))
	}

	rec = ts.do(t, http.MethodPost, "/api/schemas/"+id+"/generate", map[string]any{"count": 5, "seed": 42})
	assert.Equal(t, first.Data, decode[types.GenerateResponse](t, rec).Data, "same seed, same batch")

	rec = ts.do(t, http.MethodPost, "/api/schemas/"+id+"/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[types.GenerateResponse](t, rec).Count, "count defaults to 1")

	for _, count := range []int{0, -1, DefaultMaxCount + 1} {
		rec = ts.do(t, http.MethodPost, "/api/schemas/"+id+"/generate", map[string]any{"count": count})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "count %d", count)
	}

	rec = ts.do(t, http.MethodPost, "/api/schemas/missing/generate", map[string]any{"count": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerate_MaxCountOption(t *testing.T) {
	ts := newTestServer(t, WithMaxCount(3))
	id := ts.createSchema(t, map[string]any{"name": "Users", "schemaContent": usersContent})

	rec := ts.do(t, http.MethodPost, "/api/schemas/"+id+"/generate", map[string]any{"count": 4})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Message, "between 1 and 3")
}

func TestGetData_Pagination(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createSchema(t, map[string]any{
		"name":          "Users",
		"schemaContent": usersContent,
		"seedCount":     25,
	})

	rec := ts.do(t, http.MethodGet, "/api/data/"+id+"?page=3&size=10&seed=7", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[types.PageResponse](t, rec)
	assert.Len(t, page.Data, 5)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)

	// Pages of one seeded batch line up with the full batch.
	rec = ts.do(t, http.MethodGet, "/api/data/"+id+"?page=1&size=25&seed=7", nil)
	all := decode[types.PageResponse](t, rec)
	assert.Equal(t, all.Data[20:], page.Data)

	rec = ts.do(t, http.MethodGet, "/api/data/"+id+"?page=9&seed=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[types.PageResponse](t, rec).Data)

	// (page-1)*size exceeds MaxInt here.
	rec = ts.do(t, http.MethodGet, "/api/data/"+id+"?page=4611686018427387905&size=4&seed=7", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	huge := decode[types.PageResponse](t, rec)
	assert.Empty(t, huge.Data)
	assert.False(t, huge.HasNext)

	rec = ts.do(t, http.MethodGet, "/api/data/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	def := decode[types.PageResponse](t, rec)
	assert.Equal(t, 1, def.Page)
	assert.Equal(t, DefaultPageSize, def.Size)

	for _, q := range []string{"page=0", "size=101", "size=x", "seed=abc"} {
		rec = ts.do(t, http.MethodGet, "/api/data/"+id+"?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestCustomTypes_SyncRegistry(t *testing.T) {
	ts := newTestServer(t)
	schemaID := ts.createSchema(t, map[string]any{
		"name":          "Products",
		"schemaContent": `{"type":"object","properties":{"sku":{"type":"string"}}}`,
		"fields":        []map[string]any{{"name": "sku", "dataType": "sku"}},
	})
	generateSKU := func() any {
		rec := ts.do(t, http.MethodPost, "/api/schemas/"+schemaID+"/generate", map[string]any{"count": 1})
		require.Equal(t, http.StatusOK, rec.Code)
		v, _ := decode[types.GenerateResponse](t, rec).Data[0].Get("sku")
		return v
	}

	assert.Equal(t, "default_value", generateSKU(), "unregistered type falls back")

	rec := ts.do(t, http.MethodPost, "/api/custom-types", map[string]any{
		"name":           "sku",
		"mvelExpression": "'SKU-1'",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	typeID := decode[types.CreatedResponse](t, rec).ID
	assert.Equal(t, "SKU-1", generateSKU())

	rec = ts.do(t, http.MethodGet, "/api/custom-types/"+typeID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode[store.CustomType](t, rec)
	require.NotNil(t, stored.TestResult)
	assert.True(t, stored.TestResult.Success)
	assert.Equal(t, "SKU-1", stored.TestResult.Sample)
	assert.True(t, stored.IsActive)

	rec = ts.do(t, http.MethodPut, "/api/custom-types/"+typeID, map[string]any{
		"name":       "sku",
		"expression": "'SKU-2'",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "SKU-2", generateSKU())

	rec = ts.do(t, http.MethodPut, "/api/custom-types/"+typeID, map[string]any{
		"name":       "sku",
		"expression": "'SKU-3'",
		"isActive":   false,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "default_value", generateSKU(), "inactive types are unregistered")

	rec = ts.do(t, http.MethodPut, "/api/custom-types/"+typeID, map[string]any{
		"name":       "code",
		"expression": "'C'",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"code"}, ts.gen.TypeNames(), "renaming drops the old name")

	rec = ts.do(t, http.MethodDelete, "/api/custom-types/"+typeID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, ts.gen.TypeNames())
	rec = ts.do(t, http.MethodDelete, "/api/custom-types/"+typeID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomTypes_Validation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/custom-types", map[string]any{"name": "tier", "expression": "choice('a','b')"})
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"duplicate name", map[string]any{"name": "tier", "expression": "'x'"}, http.StatusConflict},
		{"builtin name", map[string]any{"name": "email", "expression": "'x'"}, http.StatusBadRequest},
		{"missing expression", map[string]any{"name": "other"}, http.StatusBadRequest},
		{"missing name", map[string]any{"expression": "'x'"}, http.StatusBadRequest},
		{"bad json", `[`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/custom-types", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	rec = ts.do(t, http.MethodGet, "/api/custom-types?q=TI", nil)
	assert.Len(t, decode[[]store.CustomType](t, rec), 1)
}

func TestCustomTypes_FailingExpressionIsStoredWithResult(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/custom-types", map[string]any{"name": "broken", "expression": "random.int(9, 1)"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[types.CreatedResponse](t, rec).ID

	rec = ts.do(t, http.MethodPost, "/api/custom-types/"+id+"/test", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[types.TestResultResponse](t, rec)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)

	rec = ts.do(t, http.MethodPost, "/api/custom-types/missing/test", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSyncTypes(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, ts.store.CustomTypes().Save(ctx, &store.CustomType{Name: "a", Expression: "'1'", IsActive: true}))
	require.NoError(t, ts.store.CustomTypes().Save(ctx, &store.CustomType{Name: "b", Expression: "'2'"}))
	ts.gen.Register(registry.Definition{Name: "stale", Expression: "'x'"})

	require.NoError(t, ts.api.SyncTypes(ctx))
	assert.Equal(t, []string{"a"}, ts.gen.TypeNames())
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, WithCORS(CORSConfig{AllowedOrigins: []string{"http://ui.local"}}))

	req := httptest.NewRequest(http.MethodOptions, "/api/schemas", nil)
	req.Header.Set("Origin", "http://ui.local")
	rec := httptest.NewRecorder()
	ts.api.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://ui.local", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))

	req = httptest.NewRequest(http.MethodOptions, "/api/schemas", nil)
	req.Header.Set("Origin", "http://evil.local")
	rec = httptest.NewRecorder()
	ts.api.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.local")
	rec = httptest.NewRecorder()
	ts.api.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "simple requests are served without CORS headers")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestBodyLimit(t *testing.T) {
	ts := newTestServer(t, WithMaxBodySize(16))
	rec := ts.do(t, http.MethodPost, "/api/schemas", map[string]any{"name": "a-name-long-enough-to-overflow"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartStop(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.api.Start("127.0.0.1:0"))
	addr := ts.api.Addr()
	require.NotEmpty(t, addr)
	assert.Error(t, ts.api.Start("127.0.0.1:0"), "second start fails")

	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, ts.api.Stop(ctx))
	assert.Empty(t, ts.api.Addr())
	require.NoError(t, ts.api.Stop(ctx))
}
