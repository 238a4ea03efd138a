package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/daydayup/contextgraph-backend/internal/api/response"
	apperrors "github.com/daydayup/contextgraph-backend/internal/errors"
	"github.com/daydayup/contextgraph-backend/internal/logger"
	"github.com/daydayup/contextgraph-backend/internal/services"
	"github.com/daydayup/contextgraph-backend/internal/webhook"
)

// EmailForwarder is the slice of the forwarder service the handler needs
type EmailForwarder interface {
	Process(ctx context.Context, event *webhook.Event) (*services.ForwardOutcome, error)
}

// InboundEmailHandler handles the provider's inbound email webhook
type InboundEmailHandler struct {
	forwarder EmailForwarder
	// verifier is nil when no signing secret is configured; unsigned
	// deliveries are then accepted. A deployment choice, not a bug.
	verifier  *webhook.Verifier
	secLogger *logger.SecurityLogger
	logger    *slog.Logger
}

// NewInboundEmailHandler creates a new InboundEmailHandler
func NewInboundEmailHandler(forwarder EmailForwarder, verifier *webhook.Verifier, secLogger *logger.SecurityLogger, log *slog.Logger) *InboundEmailHandler {
	return &InboundEmailHandler{
		forwarder: forwarder,
		verifier:  verifier,
		secLogger: secLogger,
		logger:    log,
	}
}

// ReceiveResponse is the success body of a processed delivery
type ReceiveResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	EmailID     string `json:"email_id"`
	ForwardedTo string `json:"forwarded_to"`
}

// IgnoredResponse acknowledges an event type this service does not handle
type IgnoredResponse struct {
	Message string `json:"message"`
}

// Receive handles POST /api/emails/receive. The raw body is retained
// for signature verification before any parsing.
func (h *InboundEmailHandler) Receive(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to read webhook body", slog.Any("error", err))
		}
		return response.InternalError(c, response.MsgProcessingFailed)
	}

	if h.verifier != nil {
		if err := h.verifySignature(c, payload); err != nil {
			return err
		}
	}

	event, err := webhook.ParseEvent(payload)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("rejected malformed webhook payload", slog.Any("error", err))
		}
		return response.BadRequest(c, "Invalid webhook payload")
	}

	// Only email.received proceeds; everything else is acknowledged so
	// the provider does not re-deliver.
	if !event.IsEmailReceived() {
		return response.OK(c, IgnoredResponse{Message: "Ignored"})
	}

	if err := event.Validate(); err != nil {
		if h.logger != nil {
			h.logger.Warn("rejected incomplete email.received event", slog.Any("error", err))
		}
		return response.BadRequest(c, "Invalid webhook payload")
	}

	outcome, err := h.forwarder.Process(c.Request().Context(), event)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("email processing failed",
				slog.String("email_id", event.Data.EmailID),
				slog.String("code", apperrors.GetErrorCode(err)),
				slog.Any("error", err))
		}
		return response.InternalError(c, response.MsgProcessingFailed)
	}

	return response.OK(c, ReceiveResponse{
		Success:     true,
		Message:     "Email forwarded and saved",
		EmailID:     outcome.EmailID,
		ForwardedTo: outcome.ForwardedTo,
	})
}

// verifySignature authenticates the delivery. Any missing header or a
// failed check terminates the request before the payload is parsed.
func (h *InboundEmailHandler) verifySignature(c echo.Context, payload []byte) error {
	header := c.Request().Header
	msgID := header.Get(webhook.HeaderID)
	timestamp := header.Get(webhook.HeaderTimestamp)
	signature := header.Get(webhook.HeaderSignature)

	if msgID == "" || timestamp == "" || signature == "" {
		if h.secLogger != nil {
			h.secLogger.WebhookAuthFailure(c.RealIP(), c.Path(), "missing signature headers")
		}
		return response.Unauthorized(c, "Missing signature headers")
	}

	if err := h.verifier.Verify(payload, msgID, timestamp, signature); err != nil {
		if h.secLogger != nil {
			h.secLogger.WebhookAuthFailure(c.RealIP(), c.Path(), err.Error())
		}
		return response.Unauthorized(c, "Invalid webhook signature")
	}

	return nil
}
