package models

import (
	"time"
)

// WaitlistEntry represents a single waitlist signup.
// Entries are append-only: never mutated, never deleted by this service.
type WaitlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"not null;uniqueIndex;size:255" json:"email"`
	Position  int       `gorm:"not null;uniqueIndex" json:"position"`
	IPAddress string    `gorm:"size:64" json:"ip_address,omitempty"`
	UserAgent string    `gorm:"size:512" json:"user_agent,omitempty"`
	Referrer  string    `gorm:"size:512" json:"referrer,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for WaitlistEntry
func (WaitlistEntry) TableName() string {
	return "waitlist"
}

// RequestMetadata carries optional signup context captured from the request.
// Values are stored as-is and never validated.
type RequestMetadata struct {
	IPAddress string
	UserAgent string
	Referrer  string
}
