package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/daydayup/contextgraph-backend/internal/models"
	"gorm.io/gorm"
)

// ReceivedEmailRepository defines the interface for forward-audit records
type ReceivedEmailRepository interface {
	Create(ctx context.Context, email *models.ReceivedEmail) error
	GetByEmailID(ctx context.Context, emailID string) (*models.ReceivedEmail, error)
	List(ctx context.Context, limit, offset int) ([]models.ReceivedEmail, int64, error)
}

// receivedEmailRepository implements ReceivedEmailRepository using GORM
type receivedEmailRepository struct {
	db *gorm.DB
}

// NewReceivedEmailRepository creates a new ReceivedEmailRepository instance
func NewReceivedEmailRepository(db *gorm.DB) ReceivedEmailRepository {
	return &receivedEmailRepository{db: db}
}

// Create persists a new forward-audit record
func (r *receivedEmailRepository) Create(ctx context.Context, email *models.ReceivedEmail) error {
	result := r.db.WithContext(ctx).Create(email)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create received email record: %w", result.Error)
	}
	return nil
}

// GetByEmailID retrieves a record by the provider's message id
func (r *receivedEmailRepository) GetByEmailID(ctx context.Context, emailID string) (*models.ReceivedEmail, error) {
	var email models.ReceivedEmail
	result := r.db.WithContext(ctx).Where("email_id = ?", emailID).First(&email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get received email: %w", result.Error)
	}
	return &email, nil
}

// List retrieves records with pagination, newest first
func (r *receivedEmailRepository) List(ctx context.Context, limit, offset int) ([]models.ReceivedEmail, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ReceivedEmail{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count received emails: %w", err)
	}

	var emails []models.ReceivedEmail
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&emails)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list received emails: %w", result.Error)
	}

	return emails, total, nil
}
