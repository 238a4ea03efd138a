package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"

	apperrors "github.com/daydayup/contextgraph-backend/internal/errors"
	"github.com/daydayup/contextgraph-backend/internal/api/response"
	"github.com/daydayup/contextgraph-backend/internal/models"
	"github.com/daydayup/contextgraph-backend/internal/services"
)

// WaitlistJoiner is the slice of the waitlist service the handler needs
type WaitlistJoiner interface {
	Join(ctx context.Context, email string, meta models.RequestMetadata) (*services.JoinResult, error)
	Count(ctx context.Context) int64
}

// WaitlistHandler handles waitlist HTTP requests
type WaitlistHandler struct {
	service WaitlistJoiner
	logger  *slog.Logger
}

// NewWaitlistHandler creates a new WaitlistHandler
func NewWaitlistHandler(service WaitlistJoiner, logger *slog.Logger) *WaitlistHandler {
	return &WaitlistHandler{service: service, logger: logger}
}

// JoinWaitlistRequest represents the signup request body
type JoinWaitlistRequest struct {
	Email string `json:"email"`
}

// JoinWaitlistResponse represents a successful signup response
type JoinWaitlistResponse struct {
	Message  string `json:"message"`
	Position int    `json:"position"`
}

// WaitlistCountResponse represents the count response
type WaitlistCountResponse struct {
	Count int64 `json:"count"`
}

// Join handles POST /api/waitlist
func (h *WaitlistHandler) Join(c echo.Context) error {
	var req JoinWaitlistRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Email is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	meta := models.RequestMetadata{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		Referrer:  c.Request().Referer(),
	}

	result, err := h.service.Join(c.Request().Context(), req.Email, meta)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid email address")
		}
		if h.logger != nil {
			h.logger.Error("waitlist signup failed",
				slog.String("code", apperrors.GetErrorCode(err)),
				slog.Any("error", err))
		}
		return response.InternalError(c, response.MsgGenericFailure)
	}

	if result.AlreadyJoined {
		return response.OK(c, JoinWaitlistResponse{
			Message:  "You're already on the list!",
			Position: result.Position,
		})
	}

	return response.Created(c, JoinWaitlistResponse{
		Message:  "You're on the list!",
		Position: result.Position,
	})
}

// Count handles GET /api/waitlist. It never errors: an unavailable
// backend reads as zero.
func (h *WaitlistHandler) Count(c echo.Context) error {
	return response.OK(c, WaitlistCountResponse{
		Count: h.service.Count(c.Request().Context()),
	})
}
