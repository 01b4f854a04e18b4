package middleware

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticketr/internal/config"
	"github.com/iliyamo/ticketr/internal/utils"
)

const secret = "test-secret"

func bearer(t *testing.T, id uint64, kind string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, id, "someone@example.com", kind, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func serve(e *echo.Echo, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.String(http.StatusOK, fmt.Sprintf("%d/%s/%s", id.ID, id.Kind, c.Get("user_id")))
	}, JWTAuth(secret))

	rec := serve(e, http.MethodGet, "/me", bearer(t, 12, utils.KindUser))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12/user/12", rec.Body.String())

	rec = serve(e, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing bearer token")

	rec = serve(e, http.MethodGet, "/me", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestRequireKind(t *testing.T) {
	e := echo.New()
	e.GET("/org", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) },
		JWTAuth(secret), RequireKind(utils.KindOrganization))

	assert.Equal(t, http.StatusForbidden, serve(e, http.MethodGet, "/org", bearer(t, 1, utils.KindUser)).Code)
	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/org", bearer(t, 1, utils.KindOrganization)).Code)
}

func rateConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Second,
		TTL:            10 * time.Second,
		KeyStrategy:    "ip",
		Prefix:         "t:rl",
	}
}

func withFixedClock(t *testing.T) time.Time {
	fixed := time.UnixMilli(1_700_000_000_000)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })
	return fixed
}

func TestTokenBucketAllowsAndBlocks(t *testing.T) {
	fixed := withFixedClock(t)
	rdb, mock := redismock.NewClientMock()
	cfg := rateConfig()

	e := echo.New()
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") },
		NewTokenBucket(cfg, rdb, zerolog.Nop()))

	// httptest requests come from 192.0.2.1.
	key := "t:rl:ip:192.0.2.1"
	args := []any{fixed.UnixMilli(), 2, 1, int64(1000), int64(10)}

	mock.ExpectEvalSha(limiterScript.Hash(), []string{key}, args...).SetVal([]any{int64(1), int64(1), int64(0)})
	rec := serve(e, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	mock.ExpectEvalSha(limiterScript.Hash(), []string{key}, args...).SetVal([]any{int64(0), int64(0), int64(1500)})
	rec = serve(e, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenBucketFailsOpen(t *testing.T) {
	fixed := withFixedClock(t)
	rdb, mock := redismock.NewClientMock()
	cfg := rateConfig()

	e := echo.New()
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") },
		NewTokenBucket(cfg, rdb, zerolog.Nop()))

	mock.ExpectEvalSha(limiterScript.Hash(), []string{"t:rl:ip:192.0.2.1"},
		fixed.UnixMilli(), 2, 1, int64(1000), int64(10)).SetErr(errors.New("connection refused"))

	rec := serve(e, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestTokenBucketDisabledWithoutRedis(t *testing.T) {
	e := echo.New()
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") },
		NewTokenBucket(rateConfig(), nil, zerolog.Nop()))
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/ping", "").Code)
}

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          30 * time.Second,
		Prefix:       "t:cache",
		MaxBodyBytes: 1 << 20,
	}
}

func expectedCacheKey(path string) string {
	return fmt.Sprintf("t:cache:%x", sha1.Sum([]byte("GET "+path+"?")))
}

func TestRedisCacheHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	payload, err := encodePayload(http.StatusOK,
		http.Header{echo.HeaderContentType: {echo.MIMEApplicationJSON}}, []byte(`{"event_id":1}`))
	require.NoError(t, err)
	mock.ExpectGet(expectedCacheKey("/events/1")).SetVal(string(payload))

	called := false
	e := echo.New()
	e.GET("/events/:id", func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusInternalServerError)
	}, NewRedisCache(cacheConfig(), rdb, zerolog.Nop()))

	rec := serve(e, http.MethodGet, "/events/1", "")
	assert.False(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))
	assert.JSONEq(t, `{"event_id":1}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheHitKeepsCurrentRequestID(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	payload, err := encodePayload(http.StatusOK, http.Header{
		echo.HeaderContentType: {echo.MIMEApplicationJSON},
		echo.HeaderXRequestID:  {"first-request"},
	}, []byte(`{"event_id":1}`))
	require.NoError(t, err)
	mock.ExpectGet(expectedCacheKey("/events/1")).SetVal(string(payload))

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderXRequestID, "second-request")
			return next(c)
		}
	})
	e.GET("/events/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusInternalServerError)
	}, NewRedisCache(cacheConfig(), rdb, zerolog.Nop()))

	rec := serve(e, http.MethodGet, "/events/1", "")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, []string{"second-request"}, rec.Header().Values(echo.HeaderXRequestID))
}

func TestStorableHeaderDropsPerRequestFields(t *testing.T) {
	h := http.Header{}
	h.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	h.Set(echo.HeaderXRequestID, "abc")
	h.Set("X-Cache", "MISS")

	out := storableHeader(h)
	assert.Equal(t, echo.MIMEApplicationJSON, out.Get(echo.HeaderContentType))
	assert.Empty(t, out.Get(echo.HeaderXRequestID))
	assert.Empty(t, out.Get("X-Cache"))
	assert.Equal(t, "abc", h.Get(echo.HeaderXRequestID))
}

func TestRedisCacheMissRunsHandler(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(expectedCacheKey("/events/2")).RedisNil()

	e := echo.New()
	e.GET("/events/:id", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"event_id": 2})
	}, NewRedisCache(cacheConfig(), rdb, zerolog.Nop()))

	rec := serve(e, http.MethodGet, "/events/2", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"event_id":2}`, rec.Body.String())
}

func TestRedisCacheSkipsOtherMethods(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	e := echo.New()
	e.POST("/events", func(c echo.Context) error { return c.NoContent(http.StatusCreated) },
		NewRedisCache(cacheConfig(), rdb, zerolog.Nop()))

	rec := serve(e, http.MethodPost, "/events", "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestDecodePayloadRejectsShortInput(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{0, 1})
	assert.False(t, ok)

	bs, err := encodePayload(http.StatusAccepted, http.Header{"X-A": {"b"}}, []byte("body"))
	require.NoError(t, err)
	status, hdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, "b", hdr.Get("X-A"))
	assert.Equal(t, "body", string(body))
}
