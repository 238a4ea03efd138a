package services

import (
	"context"

	"github.com/daydayup/contextgraph-backend/internal/resend"
)

// EmailProvider is the slice of the provider API the services use.
// Implemented by resend.Client; mocked in tests.
type EmailProvider interface {
	IsConfigured() bool
	SendEmail(ctx context.Context, req *resend.SendEmailRequest) (string, error)
	GetReceivedEmail(ctx context.Context, emailID string) (*resend.EmailContent, error)
	ListAttachments(ctx context.Context, emailID string) ([]resend.AttachmentMeta, error)
	DownloadAttachment(ctx context.Context, downloadURL string) ([]byte, error)
}

// EventBroadcaster publishes best-effort events to connected dashboard
// clients. Implemented by the websocket hub.
type EventBroadcaster interface {
	BroadcastEvent(topic string, payload interface{})
}
