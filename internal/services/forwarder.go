package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/daydayup/contextgraph-backend/internal/models"
	"github.com/daydayup/contextgraph-backend/internal/repository"
	"github.com/daydayup/contextgraph-backend/internal/resend"
	"github.com/daydayup/contextgraph-backend/internal/webhook"
	"github.com/daydayup/contextgraph-backend/internal/websocket"
)

// Forwarder runs the inbound email pipeline: fetch the full content for
// a webhook-announced message, forward it to the fixed destination, and
// archive the transaction. Each step is either required or best-effort:
// only the forward itself is required, everything around it degrades.
type Forwarder struct {
	provider    EmailProvider
	archive     repository.ReceivedEmailRepository
	broadcaster EventBroadcaster
	forwardTo   string
	fromAddress string
	logger      *slog.Logger

	// now is swapped in tests
	now func() time.Time
}

// NewForwarder creates a Forwarder. archive and broadcaster may be nil;
// both are best-effort.
func NewForwarder(provider EmailProvider, archive repository.ReceivedEmailRepository, broadcaster EventBroadcaster, forwardTo, fromAddress string, log *slog.Logger) *Forwarder {
	return &Forwarder{
		provider:    provider,
		archive:     archive,
		broadcaster: broadcaster,
		forwardTo:   forwardTo,
		fromAddress: fromAddress,
		logger:      log,
		now:         time.Now,
	}
}

// ForwardOutcome reports a completed forward.
type ForwardOutcome struct {
	EmailID     string
	ForwardedTo string
}

// Process handles one email.received event. The forward is the primary
// deliverable: its failure aborts the request and skips archival. No
// step is ever retried.
func (f *Forwarder) Process(ctx context.Context, event *webhook.Event) (*ForwardOutcome, error) {
	data := event.Data

	f.logger.Info("processing received email",
		slog.String("email_id", data.EmailID),
		slog.String("from", data.From),
		slog.String("subject", data.Subject),
		slog.Int("attachment_count", len(data.Attachments)),
	)

	// Best-effort: the webhook carries no body, fetch it separately.
	// Total failure degrades to "(No content)" rather than aborting.
	var content *resend.EmailContent
	f.bestEffort("fetch content", func() error {
		fetched, err := f.provider.GetReceivedEmail(ctx, data.EmailID)
		if err != nil {
			return err
		}
		content = fetched
		return nil
	})

	// Best-effort per attachment: one failed download drops only that
	// attachment.
	var attachments []resend.Attachment
	if len(data.Attachments) > 0 {
		attachments = f.fetchAttachments(ctx, data.EmailID)
	}

	// Required: the forward is the point of the whole flow.
	if err := f.forward(ctx, &data, content, attachments); err != nil {
		return nil, fmt.Errorf("failed to forward email %s: %w", data.EmailID, err)
	}
	forwardedAt := f.now().UTC()

	// Best-effort: the archive is informational, its failure never
	// undoes a successful forward.
	f.bestEffort("archive", func() error {
		return f.archiveTransaction(ctx, &data, content, forwardedAt)
	})

	if f.broadcaster != nil {
		f.broadcaster.BroadcastEvent(websocket.TopicEmailForwarded, websocket.EmailForwardedPayload{
			EmailID:     data.EmailID,
			ForwardedTo: f.forwardTo,
			Subject:     data.Subject,
			ForwardedAt: forwardedAt.Format(time.RFC3339),
		})
	}

	return &ForwardOutcome{EmailID: data.EmailID, ForwardedTo: f.forwardTo}, nil
}

// bestEffort runs a non-critical step, logging and swallowing its error.
func (f *Forwarder) bestEffort(step string, fn func() error) {
	if err := fn(); err != nil && f.logger != nil {
		f.logger.Error("best-effort step failed",
			slog.String("step", step),
			slog.Any("error", err))
	}
}

// fetchAttachments lists and downloads the stored attachments of a
// received email, base64-encoding each for transport. Downloads run
// strictly sequentially; a failed download drops that attachment only.
func (f *Forwarder) fetchAttachments(ctx context.Context, emailID string) []resend.Attachment {
	metas, err := f.provider.ListAttachments(ctx, emailID)
	if err != nil {
		if f.logger != nil {
			f.logger.Error("failed to list attachments",
				slog.String("email_id", emailID),
				slog.Any("error", err))
		}
		return nil
	}

	var prepared []resend.Attachment
	for _, meta := range metas {
		if meta.DownloadURL == "" {
			continue
		}

		body, err := f.provider.DownloadAttachment(ctx, meta.DownloadURL)
		if err != nil {
			if f.logger != nil {
				f.logger.Error("failed to download attachment",
					slog.String("email_id", emailID),
					slog.String("filename", meta.Filename),
					slog.Any("error", err))
			}
			continue
		}

		filename := meta.Filename
		if filename == "" {
			filename = "attachment"
		}
		prepared = append(prepared, resend.Attachment{
			Filename: filename,
			Content:  base64.StdEncoding.EncodeToString(body),
		})
	}

	return prepared
}

// forward composes and sends the outbound email to the fixed destination.
func (f *Forwarder) forward(ctx context.Context, data *webhook.EmailData, content *resend.EmailContent, attachments []resend.Attachment) error {
	subject := data.Subject
	if subject == "" {
		subject = "(No Subject)"
	}

	req := &resend.SendEmailRequest{
		From:        f.fromAddress,
		To:          []string{f.forwardTo},
		Subject:     "[Fwd] " + subject,
		HTML:        f.buildForwardHTML(data, content),
		Attachments: attachments,
	}

	if content != nil && content.Text != "" {
		req.Text = fmt.Sprintf("--- Forwarded email ---\nFrom: %s\nTo: %s\nSubject: %s\n\n%s",
			data.From, strings.Join(data.To, ", "), data.Subject, content.Text)
	}

	_, err := f.provider.SendEmail(ctx, req)
	return err
}

// buildForwardHTML prepends the visible banner identifying the original
// message, then the original HTML, a <pre> rendering of the plain text,
// or a "(No content)" placeholder.
func (f *Forwarder) buildForwardHTML(data *webhook.EmailData, content *resend.EmailContent) string {
	subject := data.Subject
	if subject == "" {
		subject = "(No Subject)"
	}

	banner := fmt.Sprintf(`<div style="margin-bottom: 20px; padding: 15px; background: #f5f5f5; border-left: 4px solid #f97316; font-family: system-ui, sans-serif;">
  <p style="margin: 0 0 10px 0; color: #666; font-size: 14px;">
    <strong>Forwarded email from Context Graph</strong>
  </p>
  <p style="margin: 0; color: #333; font-size: 13px;">
    <strong>From:</strong> %s<br/>
    <strong>To:</strong> %s<br/>
    <strong>Subject:</strong> %s<br/>
    <strong>Date:</strong> %s
  </p>
</div>
<hr style="border: none; border-top: 1px solid #ddd; margin: 20px 0;"/>
`, data.From, strings.Join(data.To, ", "), subject, f.now().Format(time.RFC1123))

	switch {
	case content != nil && content.HTML != "":
		return banner + content.HTML
	case content != nil && content.Text != "":
		return banner + `<pre style="white-space: pre-wrap;">` + content.Text + `</pre>`
	default:
		return banner + `<pre style="white-space: pre-wrap;">(No content)</pre>`
	}
}

// archiveTransaction writes the forward-audit record. attachment_count
// is the webhook manifest length, not the number actually forwarded;
// downstream consumers rely on the manifest view.
func (f *Forwarder) archiveTransaction(ctx context.Context, data *webhook.EmailData, content *resend.EmailContent, forwardedAt time.Time) error {
	if f.archive == nil {
		return nil
	}

	record := &models.ReceivedEmail{
		EmailID:         data.EmailID,
		FromAddress:     data.From,
		ToAddresses:     models.JoinAddresses(data.To),
		Subject:         data.Subject,
		HasAttachments:  len(data.Attachments) > 0,
		AttachmentCount: len(data.Attachments),
		ForwardedTo:     f.forwardTo,
		ForwardedAt:     &forwardedAt,
		ReceivedAt:      data.CreatedAt,
	}
	if content != nil {
		record.HTMLBody = content.HTML
		record.TextBody = content.Text
	}

	return f.archive.Create(ctx, record)
}
