// Package webhook parses and authenticates inbound email webhook
// deliveries from the provider.
package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// EventTypeEmailReceived is the only event type this service processes.
// All other types are acknowledged and ignored.
const EventTypeEmailReceived = "email.received"

// Event is the webhook envelope. Decoding is strict: unknown fields and
// malformed payloads are rejected before dispatch rather than trusting
// the declared type alone.
type Event struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Data      EmailData `json:"data"`
}

// EmailData is the payload of an email.received event. It carries only
// metadata and an attachment manifest; bodies must be fetched separately.
type EmailData struct {
	EmailID     string               `json:"email_id"`
	From        string               `json:"from"`
	To          []string             `json:"to"`
	Subject     string               `json:"subject"`
	CreatedAt   time.Time            `json:"created_at"`
	Attachments []AttachmentManifest `json:"attachments,omitempty"`
}

// AttachmentManifest describes one attachment by reference only;
// no inline content is delivered.
type AttachmentManifest struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// ParseEvent decodes a raw webhook payload into a typed envelope.
// The envelope itself must be well-formed JSON with a type field;
// field-level validation for email.received happens in Validate.
func ParseEvent(payload []byte) (*Event, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))

	var event Event
	if err := dec.Decode(&event); err != nil {
		return nil, fmt.Errorf("malformed webhook payload: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("webhook payload missing event type")
	}

	return &event, nil
}

// IsEmailReceived reports whether this event should be processed.
func (e *Event) IsEmailReceived() bool {
	return e.Type == EventTypeEmailReceived
}

// Validate checks the required fields of an email.received payload.
func (e *Event) Validate() error {
	if !e.IsEmailReceived() {
		return nil
	}
	if e.Data.EmailID == "" {
		return fmt.Errorf("email.received event missing email_id")
	}
	if e.Data.From == "" {
		return fmt.Errorf("email.received event missing sender")
	}
	if len(e.Data.To) == 0 {
		return fmt.Errorf("email.received event missing recipients")
	}
	return nil
}
