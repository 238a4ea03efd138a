package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/daydayup/contextgraph-backend/internal/models"
	"gorm.io/gorm"
)

// WaitlistStore defines the interface for waitlist persistence.
// Two implementations exist: this package's database-backed store and
// the flat-file fallback in internal/storage. Both must produce the
// same externally observable behavior: case-normalized dedup and
// strictly sequential 1-based positions.
type WaitlistStore interface {
	// FindByEmail looks up an entry by normalized email.
	// Returns ErrNotFound when the email has never signed up.
	FindByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error)

	// Count returns the current total number of entries.
	Count(ctx context.Context) (int64, error)

	// Add inserts a new entry. The caller assigns Position.
	// Returns ErrDuplicateEntry on an email or position collision.
	Add(ctx context.Context, entry *models.WaitlistEntry) error
}

// waitlistRepository implements WaitlistStore using GORM
type waitlistRepository struct {
	db *gorm.DB
}

// NewWaitlistRepository creates a database-backed WaitlistStore
func NewWaitlistRepository(db *gorm.DB) WaitlistStore {
	return &waitlistRepository{db: db}
}

// FindByEmail retrieves an entry by its normalized email
func (r *waitlistRepository) FindByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find waitlist entry: %w", result.Error)
	}
	return &entry, nil
}

// Count returns the total number of waitlist entries
func (r *waitlistRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.WaitlistEntry{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count waitlist entries: %w", result.Error)
	}
	return count, nil
}

// Add inserts a new waitlist entry
func (r *waitlistRepository) Add(ctx context.Context, entry *models.WaitlistEntry) error {
	result := r.db.WithContext(ctx).Create(entry)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create waitlist entry: %w", result.Error)
	}
	return nil
}
