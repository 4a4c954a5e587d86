package service

import (
	"context"
	"fmt"

	"scriptbot/events"
	"scriptbot/models"
)

// maxScriptContentLength matches the paste limit of the submission form
const maxScriptContentLength = 4000

// scriptService implements the ScriptService interface
type scriptService struct {
	uowFactory UnitOfWorkFactory
}

// NewScriptService creates a new script service
func NewScriptService(uowFactory UnitOfWorkFactory) ScriptService {
	return &scriptService{
		uowFactory: uowFactory,
	}
}

// AddScript validates and stores a new catalog entry
func (s *scriptService) AddScript(ctx context.Context, name, gameName, content string, authorID int64) (*models.Script, error) {
	if name == "" || gameName == "" {
		return nil, fmt.Errorf("script name and game are required: %w", models.ErrInvalidArgument)
	}
	if content == "" {
		return nil, fmt.Errorf("script content is required: %w", models.ErrInvalidArgument)
	}
	if len(content) > maxScriptContentLength {
		return nil, fmt.Errorf("script content exceeds %d characters: %w", maxScriptContentLength, models.ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	script := &models.Script{
		Name:     name,
		GameName: gameName,
		Content:  content,
		AuthorID: authorID,
	}
	if err := uow.ScriptRepository().Create(ctx, script); err != nil {
		return nil, fmt.Errorf("failed to create script: %w", err)
	}

	uow.EventBus().Publish(events.ScriptAddedEvent{
		ScriptID: script.ID,
		Name:     script.Name,
		GameName: script.GameName,
		AuthorID: script.AuthorID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return script, nil
}

// SearchScripts searches the catalog by name or game
func (s *scriptService) SearchScripts(ctx context.Context, query string) ([]*models.Script, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required: %w", models.ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.ScriptRepository().Search(ctx, query)
}

// TopScripts returns the most downloaded scripts
func (s *scriptService) TopScripts(ctx context.Context, limit int) ([]*models.Script, error) {
	if limit <= 0 {
		limit = 10
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.ScriptRepository().Top(ctx, limit)
}

// RandomScript returns a random script, nil when the catalog is empty
func (s *scriptService) RandomScript(ctx context.Context) (*models.Script, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.ScriptRepository().Random(ctx)
}

// DownloadScript counts a download and returns the script
func (s *scriptService) DownloadScript(ctx context.Context, scriptID int64) (*models.Script, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	script, err := uow.ScriptRepository().GetByID(ctx, scriptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get script: %w", err)
	}
	if script == nil {
		return nil, fmt.Errorf("script %d: %w", scriptID, models.ErrNotFound)
	}

	if err := uow.ScriptRepository().IncrementDownloads(ctx, scriptID); err != nil {
		return nil, fmt.Errorf("failed to count download: %w", err)
	}
	script.Downloads++

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return script, nil
}

// RateScript records a rating and returns the recomputed average
func (s *scriptService) RateScript(ctx context.Context, scriptID, raterID, value int64) (float64, error) {
	if value < 1 || value > 5 {
		return 0, fmt.Errorf("rating must be between 1 and 5: %w", models.ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	script, err := uow.ScriptRepository().GetByID(ctx, scriptID)
	if err != nil {
		return 0, fmt.Errorf("failed to get script: %w", err)
	}
	if script == nil {
		return 0, fmt.Errorf("script %d: %w", scriptID, models.ErrNotFound)
	}

	average, err := uow.ScriptRepository().Rate(ctx, scriptID, raterID, value)
	if err != nil {
		return 0, fmt.Errorf("failed to record rating: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return average, nil
}
