package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequestLogger_LogsRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/waitlist", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestLogger(logger)(okHandler)
	require.NoError(t, handler(c))

	out := buf.String()
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"path":"/api/waitlist"`)
	assert.Contains(t, out, `"status":200`)
}

func TestSecureCORS_AllowsConfiguredOrigin(t *testing.T) {
	e := echo.New()
	e.Use(SecureCORS([]string{"https://contextgraph.tech"}))
	e.GET("/api/waitlist", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/waitlist", nil)
	req.Header.Set(echo.HeaderOrigin, "https://contextgraph.tech")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://contextgraph.tech",
		rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestSecureCORS_RejectsUnknownOrigin(t *testing.T) {
	e := echo.New()
	e.Use(SecureCORS([]string{"https://contextgraph.tech"}))
	e.GET("/api/waitlist", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/waitlist", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestSecureCORS_DefaultsToWildcard(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")

	e := echo.New()
	e.Use(SecureCORS(nil))
	e.GET("/api/waitlist", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/waitlist", nil)
	req.Header.Set(echo.HeaderOrigin, "https://anywhere.example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestRecover_RecoversFromPanic(t *testing.T) {
	e := echo.New()
	e.Use(Recover())
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
