package models

import (
	"strings"
	"time"
)

// ReceivedEmail is the audit record of one inbound forwarding transaction.
// It is informational only: a failed write never rolls back the forward.
type ReceivedEmail struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	EmailID     string `gorm:"not null;uniqueIndex;size:255" json:"email_id"`
	FromAddress string `gorm:"not null;size:255" json:"from_address"`
	// ToAddresses holds the original recipients, comma-joined in the order
	// the webhook delivered them.
	ToAddresses string `gorm:"size:1024" json:"to_addresses"`
	Subject     string `gorm:"size:998" json:"subject,omitempty"`
	HTMLBody    string `gorm:"type:text" json:"html_body,omitempty"`
	TextBody    string `gorm:"type:text" json:"text_body,omitempty"`
	// HasAttachments and AttachmentCount are derived from the webhook
	// manifest, not from what was actually forwarded.
	HasAttachments  bool       `gorm:"default:false" json:"has_attachments"`
	AttachmentCount int        `json:"attachment_count"`
	ForwardedTo     string     `gorm:"not null;size:255" json:"forwarded_to"`
	ForwardedAt     *time.Time `json:"forwarded_at,omitempty"`
	ReceivedAt      time.Time  `json:"received_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for ReceivedEmail
func (ReceivedEmail) TableName() string {
	return "received_emails"
}

// JoinAddresses flattens an ordered recipient list for storage.
func JoinAddresses(addrs []string) string {
	return strings.Join(addrs, ", ")
}
