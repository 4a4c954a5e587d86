package service

import (
	"context"
	"fmt"

	"scriptbot/models"
)

// userService implements the UserService interface
type userService struct {
	uowFactory UnitOfWorkFactory
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory) UserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

// GetOrCreateUser retrieves an existing user or creates one with the default
// balance. The write-through upsert keeps the in-memory and persisted views
// from diverging; it is safe to call before any read that assumes existence.
func (s *userService) GetOrCreateUser(ctx context.Context, discordID int64, username string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().Upsert(ctx, discordID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}
