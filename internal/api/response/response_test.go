package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

func TestOK_Returns200WithBody(t *testing.T) {
	c, rec := setupTestContext()

	err := OK(c, map[string]string{"message": "done"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"done"`)
}

func TestCreated_Returns201WithBody(t *testing.T) {
	c, rec := setupTestContext()

	err := Created(c, map[string]int{"position": 42})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"position":42`)
}

func TestBadRequest_Returns400WithError(t *testing.T) {
	c, rec := setupTestContext()

	err := BadRequest(c, "Email is required")

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Email is required", resp.Error)
}

func TestUnauthorized_Returns401WithError(t *testing.T) {
	c, rec := setupTestContext()

	err := Unauthorized(c, "Invalid webhook signature")

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid webhook signature", resp.Error)
}

func TestInternalError_Returns500WithGenericMessage(t *testing.T) {
	c, rec := setupTestContext()

	err := InternalError(c, MsgGenericFailure)

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, MsgGenericFailure, resp.Error)
}
