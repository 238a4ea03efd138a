package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/daydayup/contextgraph-backend/internal/models"
	"github.com/daydayup/contextgraph-backend/internal/services"
	"github.com/daydayup/contextgraph-backend/internal/webhook"
)

// MockWaitlistJoiner implements handlers.WaitlistJoiner
type MockWaitlistJoiner struct {
	mock.Mock
}

// Join signs an email up for the waitlist
func (m *MockWaitlistJoiner) Join(ctx context.Context, email string, meta models.RequestMetadata) (*services.JoinResult, error) {
	args := m.Called(ctx, email, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.JoinResult), args.Error(1)
}

// Count returns the current waitlist size
func (m *MockWaitlistJoiner) Count(ctx context.Context) int64 {
	args := m.Called(ctx)
	return args.Get(0).(int64)
}

// MockEmailForwarder implements handlers.EmailForwarder
type MockEmailForwarder struct {
	mock.Mock
}

// Process handles one email.received event
func (m *MockEmailForwarder) Process(ctx context.Context, event *webhook.Event) (*services.ForwardOutcome, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ForwardOutcome), args.Error(1)
}
