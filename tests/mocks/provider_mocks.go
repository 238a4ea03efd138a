package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/daydayup/contextgraph-backend/internal/resend"
)

// MockEmailProvider implements services.EmailProvider
type MockEmailProvider struct {
	mock.Mock
}

// IsConfigured reports whether an API key is set
func (m *MockEmailProvider) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

// SendEmail sends an email and returns the provider's message id
func (m *MockEmailProvider) SendEmail(ctx context.Context, req *resend.SendEmailRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// GetReceivedEmail fetches the bodies of a received email
func (m *MockEmailProvider) GetReceivedEmail(ctx context.Context, emailID string) (*resend.EmailContent, error) {
	args := m.Called(ctx, emailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.EmailContent), args.Error(1)
}

// ListAttachments lists stored attachment metadata
func (m *MockEmailProvider) ListAttachments(ctx context.Context, emailID string) ([]resend.AttachmentMeta, error) {
	args := m.Called(ctx, emailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]resend.AttachmentMeta), args.Error(1)
}

// DownloadAttachment fetches an attachment's binary content
func (m *MockEmailProvider) DownloadAttachment(ctx context.Context, downloadURL string) ([]byte, error) {
	args := m.Called(ctx, downloadURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockEventBroadcaster implements services.EventBroadcaster
type MockEventBroadcaster struct {
	mock.Mock
}

// BroadcastEvent publishes a best-effort event
func (m *MockEventBroadcaster) BroadcastEvent(topic string, payload interface{}) {
	m.Called(topic, payload)
}
