package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fyno/internal/config"
	"fyno/internal/database"
	"fyno/internal/logging"
	"fyno/internal/repository"
	"fyno/internal/seed"
	"fyno/internal/services"
)

type testServer struct {
	handler http.Handler
	db      *gorm.DB
}

func newTestServer(t *testing.T, origins ...string) *testServer {
	t.Helper()
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cfg := &config.Config{
		App: config.AppConfig{Name: "Fyno API"},
		CORS: config.CORSConfig{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Accept", "X-Request-ID"},
			MaxAge:         600,
		},
	}

	db, err := database.Open(&config.DatabaseConfig{URL: "sqlite://:memory:"}, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	store := repository.NewStore(db)

	stories := services.NewStoryService(store, nil, logging.Nop())
	defaults, err := seed.DefaultStories()
	require.NoError(t, err)
	_, err = stories.Seed(context.Background(), defaults, false)
	require.NoError(t, err)

	catalog, err := seed.Catalog()
	require.NoError(t, err)

	h := New(cfg, Services{
		Contact:    services.NewContactService(store, nil, logging.Nop()),
		Newsletter: services.NewNewsletterService(store, logging.Nop()),
		Stories:    stories,
		Catalog:    services.NewCatalogService(catalog),
		Health:     services.NewHealthService(cfg.App.Name, store),
	}, logging.Nop())

	return &testServer{handler: h, db: db}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestContact_Created(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/contact",
		`{"name":"Priya","email":"priya@x.com","service":"GST Filing","message":"Need help"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	res := decodeBody[services.ContactSubmitResult](t, rec)
	assert.Positive(t, res.ID)
	assert.NotEmpty(t, res.Message)
}

func TestContact_ValidationError(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/contact",
		`{"name":"Priya","service":"GST Filing","message":"Need help"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	res := decodeBody[errorResponse](t, rec)
	assert.Equal(t, []string{"email"}, res.Fields)
	assert.Equal(t, "email is required", res.Detail)
}

func TestContact_MalformedBody(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []string{`{"name":`, `[1,2]`, `{"name": 5}`} {
		rec := ts.do(t, http.MethodPost, "/api/contact", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, malformedBodyMessage, decodeBody[errorResponse](t, rec).Detail)
	}

	rec := ts.do(t, http.MethodPost, "/api/contact", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContact_TrailingData(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []string{
		`{"email":"a@b.com"} {garbage`,
		`{"email":"a@b.com"}{"email":"c@d.com"}`,
		`{"email":"a@b.com"} 1`,
	} {
		rec := ts.do(t, http.MethodPost, "/api/newsletter", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, malformedBodyMessage, decodeBody[errorResponse](t, rec).Detail)
	}

	rec := ts.do(t, http.MethodPost, "/api/newsletter", "{\"email\":\"a@b.com\"}\n  ")
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestContact_ContentType(t *testing.T) {
	ts := newTestServer(t)
	body := `{"email":"reader@fyno.in"}`

	tests := []struct {
		contentType string
		status      int
	}{
		{"application/xml", http.StatusUnsupportedMediaType},
		{"text/plain", http.StatusUnsupportedMediaType},
		{"application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"not a media type;;", http.StatusUnsupportedMediaType},
		{"application/json; charset=utf-8", http.StatusCreated},
		{"application/vnd.fyno+json", http.StatusCreated},
		{"", http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/newsletter", strings.NewReader(body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			ts.handler.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status == http.StatusUnsupportedMediaType {
				assert.Equal(t, unsupportedTypeMessage, decodeBody[errorResponse](t, rec).Detail)
			}
		})
	}
}

func TestContact_BodyTooLarge(t *testing.T) {
	ts := newTestServer(t)

	body := `{"message":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec := ts.do(t, http.MethodPost, "/api/contact", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestNewsletter(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/newsletter", `{"email":"reader@fyno.in"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Welcome to the Fyno family!", decodeBody[services.NewsletterSubscribeResult](t, rec).Message)

	rec = ts.do(t, http.MethodPost, "/api/newsletter", `{"email":"reader@fyno.in"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/newsletter", `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"email"}, decodeBody[errorResponse](t, rec).Fields)
}

func TestStories(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/stories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Len(t, raw, 3)
	assert.Equal(t, "EcoBloom Organics", raw[0]["company"])
	for _, key := range []string{"id", "founder_name", "company", "challenge", "turning_point", "transformation", "service_used"} {
		assert.Contains(t, raw[0], key)
	}
	assert.NotContains(t, raw[0], "position")
}

func TestStorageErrorIs503(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, database.Close(ts.db))

	rec := ts.do(t, http.MethodGet, "/api/stories", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, services.StorageFailureMessage, decodeBody[errorResponse](t, rec).Detail)

	rec = ts.do(t, http.MethodPost, "/api/contact",
		`{"name":"Priya","email":"priya@x.com","service":"GST Filing","message":"Need help"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = ts.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", decodeBody[services.HealthResult](t, rec).Status)
}

func TestCatalog(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/services", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 6)

	rec = ts.do(t, http.MethodGet, "/api/services/roc-compliance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "roc-compliance", entry["id"])

	rec = ts.do(t, http.MethodGet, "/api/services/crypto", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeBody[services.HealthResult](t, rec)
	assert.Equal(t, "healthy", res.Status)
	assert.Equal(t, "Fyno API", res.Service)

	rec = ts.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestUnknownRouteIsJSON(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/nope", "/", "/api/stories/", "/api/services/gst/extra"} {
		rec := ts.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json", path)
		assert.Equal(t, "route not found", decodeBody[errorResponse](t, rec).Detail)
	}
}

func TestWrongMethodIsJSON(t *testing.T) {
	ts := newTestServer(t)

	for _, tt := range []struct{ method, path, allow string }{
		{http.MethodGet, "/api/contact", "POST"},
		{http.MethodDelete, "/api/stories", "GET"},
		{http.MethodHead, "/api/stories", "GET"},
		{http.MethodPut, "/api/services/gst", "GET"},
	} {
		rec := ts.do(t, tt.method, tt.path, "")
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code, tt.method+" "+tt.path)
		assert.Equal(t, tt.allow, rec.Header().Get("Allow"))
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	}
}

func TestSecurityHeaders(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/services", "")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, "https://fyno.in")

	preflight := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	preflight.Header.Set("Origin", "https://fyno.in")
	preflight.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, preflight)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://fyno.in", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.NotContains(t, rec.Header().Get("Access-Control-Allow-Methods"), "HEAD")

	foreign := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	foreign.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, foreign)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCORS_Wildcard(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
