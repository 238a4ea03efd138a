package resend

import "fmt"

// SendEmailRequest is the outbound send payload.
type SendEmailRequest struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html,omitempty"`
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is a base64-encoded file attached to an outbound email.
type Attachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// sendEmailResponse is the provider's send acknowledgement.
type sendEmailResponse struct {
	ID string `json:"id"`
}

// EmailContent holds the fetched bodies of a received email.
// Either field may be empty; the provider stores whatever the sender sent.
type EmailContent struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

// AttachmentMeta describes one stored attachment of a received email.
type AttachmentMeta struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	DownloadURL string `json:"download_url"`
}

// attachmentListResponse wraps the provider's attachment listing.
type attachmentListResponse struct {
	Data []AttachmentMeta `json:"data"`
}

// APIError is a non-2xx response from the provider API.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("resend API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("resend API returned status %d: %s", e.StatusCode, e.Body)
}
