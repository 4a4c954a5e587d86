package service

import (
	"context"
	"fmt"

	"scriptbot/config"
	"scriptbot/events"
	"scriptbot/models"
)

// moderationService implements the ModerationService interface
type moderationService struct {
	uowFactory UnitOfWorkFactory
}

// NewModerationService creates a new moderation service
func NewModerationService(uowFactory UnitOfWorkFactory) ModerationService {
	return &moderationService{
		uowFactory: uowFactory,
	}
}

// WarnUser appends a warning and increments the user's cached count in one
// transaction. The durable mutation is the commit point; the warned-user
// notification rides the event bus after commit and its failure is
// independently reportable, never fatal.
func (s *moderationService) WarnUser(ctx context.Context, userID int64, username string, moderatorID int64, reason string) (*models.WarnResult, error) {
	if userID == moderatorID {
		return nil, fmt.Errorf("you cannot warn yourself: %w", models.ErrInvalidArgument)
	}
	if reason == "" {
		return nil, fmt.Errorf("a warning needs a reason: %w", models.ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	// The counter lives on the user row, so the row must exist
	if _, err := uow.UserRepository().Upsert(ctx, userID, username); err != nil {
		return nil, fmt.Errorf("failed to upsert warned user: %w", err)
	}

	warning, count, err := uow.WarningRepository().Add(ctx, userID, moderatorID, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to add warning: %w", err)
	}

	thresholdReached := count >= config.Get().WarningThreshold

	uow.EventBus().Publish(events.UserWarnedEvent{
		UserID:           userID,
		ModeratorID:      moderatorID,
		Reason:           reason,
		WarningCount:     count,
		ThresholdReached: thresholdReached,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.WarnResult{
		Warning:          warning,
		WarningCount:     count,
		ThresholdReached: thresholdReached,
	}, nil
}

// ListWarnings returns a user's warnings, newest first
func (s *moderationService) ListWarnings(ctx context.Context, userID int64) ([]*models.Warning, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	warnings, err := uow.WarningRepository().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list warnings: %w", err)
	}

	return warnings, nil
}
