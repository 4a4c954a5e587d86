package service

import (
	"context"
	"errors"
	"testing"

	"scriptbot/models"

	"github.com/stretchr/testify/assert"
)

func TestUserService_GetOrCreateUser(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil)

	service := NewUserService(mockFactory)

	user := &models.User{
		DiscordID: 123456,
		Username:  "testuser",
		Balance:   models.DefaultBalance,
	}

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("Upsert", ctx, int64(123456), "testuser").Return(user, nil)

	got, err := service.GetOrCreateUser(ctx, 123456, "testuser")

	assert.NoError(t, err)
	assert.Equal(t, user, got)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_GetOrCreateUser_RepositoryError(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil)

	service := NewUserService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("Upsert", ctx, int64(123456), "testuser").Return(nil, errors.New("connection lost"))

	got, err := service.GetOrCreateUser(ctx, 123456, "testuser")

	assert.Error(t, err)
	assert.Nil(t, got)

	mockUoW.AssertNotCalled(t, "Commit")
}
