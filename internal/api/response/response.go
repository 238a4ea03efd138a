// Package response provides the JSON response helpers for the public
// API. Error bodies are deliberately flat ({"error": "..."}) and never
// carry internal detail; specifics live in server-side logs only.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Generic client-facing messages. Internal failure detail never leaves
// the server.
const (
	MsgGenericFailure   = "Something went wrong. Please try again."
	MsgProcessingFailed = "Failed to process email"
)

// OK returns a 200 response with the given body
func OK(c echo.Context, body interface{}) error {
	return c.JSON(http.StatusOK, body)
}

// Created returns a 201 response with the given body
func Created(c echo.Context, body interface{}) error {
	return c.JSON(http.StatusCreated, body)
}

// BadRequest returns a 400 with a specific validation reason
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// Unauthorized returns a 401 with the given reason
func Unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}

// InternalError returns a 500 with a fixed generic message
func InternalError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}
