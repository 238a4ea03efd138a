package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/daydayup/contextgraph-backend/internal/models"
)

// MockWaitlistStore implements repository.WaitlistStore
type MockWaitlistStore struct {
	mock.Mock
}

// FindByEmail looks up an entry by normalized email
func (m *MockWaitlistStore) FindByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WaitlistEntry), args.Error(1)
}

// Count returns the current total number of entries
func (m *MockWaitlistStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Add inserts a new entry
func (m *MockWaitlistStore) Add(ctx context.Context, entry *models.WaitlistEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockReceivedEmailRepository implements repository.ReceivedEmailRepository
type MockReceivedEmailRepository struct {
	mock.Mock
}

// Create persists a new forward-audit record
func (m *MockReceivedEmailRepository) Create(ctx context.Context, email *models.ReceivedEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// GetByEmailID retrieves a record by the provider's message id
func (m *MockReceivedEmailRepository) GetByEmailID(ctx context.Context, emailID string) (*models.ReceivedEmail, error) {
	args := m.Called(ctx, emailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReceivedEmail), args.Error(1)
}

// List retrieves records with pagination
func (m *MockReceivedEmailRepository) List(ctx context.Context, limit, offset int) ([]models.ReceivedEmail, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.ReceivedEmail), args.Get(1).(int64), args.Error(2)
}
