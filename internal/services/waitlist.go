package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/daydayup/contextgraph-backend/internal/errors"
	"github.com/daydayup/contextgraph-backend/internal/logger"
	"github.com/daydayup/contextgraph-backend/internal/models"
	"github.com/daydayup/contextgraph-backend/internal/repository"
	"github.com/daydayup/contextgraph-backend/internal/resend"
	"github.com/daydayup/contextgraph-backend/internal/validator"
	"github.com/daydayup/contextgraph-backend/internal/websocket"
)

// WaitlistService implements the signup flow: validate, dedup, assign
// the next sequential position, persist, then best-effort notify.
type WaitlistService struct {
	store       repository.WaitlistStore
	provider    EmailProvider
	broadcaster EventBroadcaster
	fromAddress string
	logger      *slog.Logger
}

// NewWaitlistService creates a WaitlistService. provider and broadcaster
// may be nil; both are best-effort side channels.
func NewWaitlistService(store repository.WaitlistStore, provider EmailProvider, broadcaster EventBroadcaster, fromAddress string, log *slog.Logger) *WaitlistService {
	return &WaitlistService{
		store:       store,
		provider:    provider,
		broadcaster: broadcaster,
		fromAddress: fromAddress,
		logger:      log,
	}
}

// JoinResult is the outcome of a signup attempt.
type JoinResult struct {
	Position      int
	AlreadyJoined bool
}

// Join signs an email up for the waitlist. Repeat signups with the same
// normalized email are idempotent: they return the original position and
// trigger no writes and no email.
func (s *WaitlistService) Join(ctx context.Context, email string, meta models.RequestMetadata) (*JoinResult, error) {
	if err := validator.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err.Error())
	}
	normalized := validator.NormalizeEmail(email)

	existing, err := s.store.FindByEmail(ctx, normalized)
	if err == nil {
		return &JoinResult{Position: existing.Position, AlreadyJoined: true}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("waitlist lookup failed: %w", err)
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("waitlist count failed: %w", err)
	}

	entry := &models.WaitlistEntry{
		Email:     normalized,
		Position:  int(count) + 1,
		IPAddress: validator.SanitizeString(meta.IPAddress, 64),
		UserAgent: validator.SanitizeString(meta.UserAgent, 512),
		Referrer:  validator.SanitizeString(meta.Referrer, 512),
	}

	if err := s.store.Add(ctx, entry); err != nil {
		// A concurrent signup can win the race between lookup and insert;
		// resolve it the same way as the dedup branch.
		if errors.Is(err, repository.ErrDuplicateEntry) {
			if winner, findErr := s.store.FindByEmail(ctx, normalized); findErr == nil {
				return &JoinResult{Position: winner.Position, AlreadyJoined: true}, nil
			}
		}
		return nil, fmt.Errorf("waitlist insert failed: %w", err)
	}

	s.sendWelcomeEmail(ctx, normalized, entry.Position)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent(websocket.TopicWaitlistJoined, websocket.WaitlistJoinedPayload{
			Email:    logger.MaskEmail(normalized),
			Position: entry.Position,
			JoinedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return &JoinResult{Position: entry.Position}, nil
}

// Count returns the current waitlist size for display. Backend failures
// degrade to 0, never an error.
func (s *WaitlistService) Count(ctx context.Context) int64 {
	if s.store == nil {
		return 0
	}
	count, err := s.store.Count(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("waitlist count unavailable", slog.Any("error", err))
		}
		return 0
	}
	return count
}

// sendWelcomeEmail sends the confirmation email. Failures are logged and
// swallowed; the signup already succeeded.
func (s *WaitlistService) sendWelcomeEmail(ctx context.Context, email string, position int) {
	if s.provider == nil || !s.provider.IsConfigured() {
		if s.logger != nil {
			s.logger.Info("skipping welcome email, provider not configured",
				slog.String("email", logger.MaskEmail(email)))
		}
		return
	}

	_, err := s.provider.SendEmail(ctx, &resend.SendEmailRequest{
		From:    s.fromAddress,
		To:      []string{email},
		Subject: WelcomeSubject,
		HTML:    buildWelcomeHTML(position),
	})
	if err != nil && s.logger != nil {
		s.logger.Error("failed to send welcome email",
			slog.String("email", logger.MaskEmail(email)),
			slog.Int("position", position),
			slog.Any("error", err))
	}
}
