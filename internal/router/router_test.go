package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticketr/internal/config"
	"github.com/iliyamo/ticketr/internal/handler"
)

func newTestServer() http.Handler {
	cfg := config.Config{JWTSecret: "test-secret", CORSAllowOrigins: []string{"*"}}
	h := Handlers{
		Service: handler.NewServiceHandler(nil, zerolog.Nop()),
		Users:   handler.NewUserHandler(cfg, nil, zerolog.Nop()),
		Chats:   &handler.ChatHandler{Log: zerolog.Nop()},
	}
	return New(cfg, h, Options{}, zerolog.Nop())
}

func get(srv http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServiceRoutes(t *testing.T) {
	srv := newTestServer()

	rec := get(srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = get(srv, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "TicketR API is running")
	assert.Contains(t, rec.Body.String(), "/api/events")

	rec = get(srv, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ticketr_http_requests_total")
}

func TestUnknownRouteIsJSON(t *testing.T) {
	rec := get(newTestServer(), "/api/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestTrailingSlashIsIgnored(t *testing.T) {
	rec := get(newTestServer(), "/healthz/")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRouteNeedsToken(t *testing.T) {
	rec := get(newTestServer(), "/api/users/me")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing bearer token"}`, rec.Body.String())
}

func TestMalformedJSONIsBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chats", strings.NewReader(`{"message":`))
	req.Header.Set("Content-Type", "application/json")
	newTestServer().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
