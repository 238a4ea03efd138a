// Package resend is a client for the Resend email API: sending, fetching
// received email content, and listing/downloading stored attachments.
package resend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	apperrors "github.com/daydayup/contextgraph-backend/internal/errors"
)

const (
	// DefaultBaseURL is the production Resend API endpoint
	DefaultBaseURL = "https://api.resend.com"

	defaultTimeout = 30 * time.Second
)

// Client calls the Resend HTTP API.
type Client struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

// NewClient creates a Resend API client. An empty apiKey produces a
// client whose send operations fail loudly; read operations degrade in
// the caller.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	client := resty.New()
	client.SetTimeout(defaultTimeout)
	client.SetRetryCount(0)

	return &Client{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// NewClientWithHTTP creates a client over an existing resty client,
// used by tests.
func NewClientWithHTTP(baseURL, apiKey string, client *resty.Client) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultTimeout)
	}
	return &Client{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// IsConfigured returns true if an API key is set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// SendEmail sends an email and returns the provider's message id.
// Each call carries a fresh idempotency key.
func (c *Client) SendEmail(ctx context.Context, req *SendEmailRequest) (string, error) {
	if !c.IsConfigured() {
		return "", apperrors.ErrEmailNotConfigured
	}

	var result sendEmailResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetBody(req).
		SetResult(&result).
		Post(c.baseURL + "/emails")
	if err != nil {
		return "", fmt.Errorf("send request failed: %w", err)
	}
	if resp.IsError() {
		return "", &APIError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}

	return result.ID, nil
}

// GetReceivedEmail fetches the html/text bodies of a received email.
// The receiving endpoint is tried first; on any failure a direct fetch
// of the generic email resource is attempted before giving up.
func (c *Client) GetReceivedEmail(ctx context.Context, emailID string) (*EmailContent, error) {
	content, primaryErr := c.getEmailContent(ctx, "/emails/receiving/"+emailID)
	if primaryErr == nil {
		return content, nil
	}

	content, fallbackErr := c.getEmailContent(ctx, "/emails/"+emailID)
	if fallbackErr == nil {
		return content, nil
	}

	return nil, fmt.Errorf("failed to fetch email content: %w (fallback: %v)", primaryErr, fallbackErr)
}

func (c *Client) getEmailContent(ctx context.Context, path string) (*EmailContent, error) {
	var result EmailContent
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetResult(&result).
		Get(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("content request failed: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}
	return &result, nil
}

// ListAttachments lists stored attachment metadata for a received email.
func (c *Client) ListAttachments(ctx context.Context, emailID string) ([]AttachmentMeta, error) {
	var result attachmentListResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetResult(&result).
		Get(c.baseURL + "/emails/receiving/" + emailID + "/attachments")
	if err != nil {
		return nil, fmt.Errorf("attachment list request failed: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}

	return result.Data, nil
}

// DownloadAttachment fetches an attachment's binary content from its
// pre-signed download URL.
func (c *Client) DownloadAttachment(ctx context.Context, downloadURL string) ([]byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(downloadURL)
	if err != nil {
		return nil, fmt.Errorf("attachment download failed: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}

	return resp.Body(), nil
}
