package service

import (
	"context"
	"strings"
	"testing"

	"scriptbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestScriptService_AddScript(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockScriptRepo := new(MockScriptRepository)

	mockUoW.SetRepositories(nil, nil, mockScriptRepo, nil)

	service := NewScriptService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockScriptRepo.On("Create", ctx, mock.MatchedBy(func(s *models.Script) bool {
		return s.Name == "Speed Hub" &&
			s.GameName == "Blox Fruits" &&
			s.Content == "print('hi')" &&
			s.AuthorID == 123456
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Script).ID = 42
	}).Return(nil)

	script, err := service.AddScript(ctx, "Speed Hub", "Blox Fruits", "print('hi')", 123456)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), script.ID)

	mockUoW.AssertExpectations(t)
	mockScriptRepo.AssertExpectations(t)
}

func TestScriptService_AddScript_Validation(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewScriptService(mockFactory)

	tests := []struct {
		name       string
		scriptName string
		gameName   string
		content    string
	}{
		{"empty name", "", "Blox Fruits", "print('hi')"},
		{"empty game", "Speed Hub", "", "print('hi')"},
		{"empty content", "Speed Hub", "Blox Fruits", ""},
		{"oversized content", "Speed Hub", "Blox Fruits", strings.Repeat("x", maxScriptContentLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := service.AddScript(ctx, tt.scriptName, tt.gameName, tt.content, 123456)

			assert.ErrorIs(t, err, models.ErrInvalidArgument)
			assert.Nil(t, script)
		})
	}

	mockFactory.AssertNotCalled(t, "Create")
}

func TestScriptService_SearchScripts_EmptyQuery(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewScriptService(mockFactory)

	scripts, err := service.SearchScripts(ctx, "")

	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	assert.Nil(t, scripts)
}

func TestScriptService_SearchScripts(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockScriptRepo := new(MockScriptRepository)

	mockUoW.SetRepositories(nil, nil, mockScriptRepo, nil)

	service := NewScriptService(mockFactory)

	found := []*models.Script{
		{ID: 1, Name: "Speed Hub", Downloads: 50},
		{ID: 2, Name: "Speed Lite", Downloads: 10},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockScriptRepo.On("Search", ctx, "speed").Return(found, nil)

	scripts, err := service.SearchScripts(ctx, "speed")

	assert.NoError(t, err)
	assert.Equal(t, found, scripts)
}

func TestScriptService_TopScripts_DefaultLimit(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockScriptRepo := new(MockScriptRepository)

	mockUoW.SetRepositories(nil, nil, mockScriptRepo, nil)

	service := NewScriptService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockScriptRepo.On("Top", ctx, 10).Return([]*models.Script{}, nil)

	_, err := service.TopScripts(ctx, 0)

	assert.NoError(t, err)
	mockScriptRepo.AssertExpectations(t)
}

func TestScriptService_RandomScript_EmptyCatalog(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockScriptRepo := new(MockScriptRepository)

	mockUoW.SetRepositories(nil, nil, mockScriptRepo, nil)

	service := NewScriptService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockScriptRepo.On("Random", ctx).Return(nil, nil)

	script, err := service.RandomScript(ctx)

	assert.NoError(t, err)
	assert.Nil(t, script)
}

func TestScriptService_DownloadScript(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockScriptRepo := new(MockScriptRepository)

	mockUoW.SetRepositories(nil, nil, mockScriptRepo, nil)

	service := NewScriptService(mockFactory)

	stored := &models.Script{ID: 7, Name: "Speed Hub", Downloads: 3}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockScriptRepo.On("GetByID", ctx, int64(7)).Return(stored, nil)
	mockScriptRepo.On("IncrementDownloads", ctx, int64(7)).Return(nil)

	script, err := service.DownloadScript(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), script.Downloads)

	mockScriptRepo.AssertExpectations(t)
}

func TestScriptService_DownloadScript_NotFound(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockScriptRepo := new(MockScriptRepository)

	mockUoW.SetRepositories(nil, nil, mockScriptRepo, nil)

	service := NewScriptService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockScriptRepo.On("GetByID", ctx, int64(404)).Return(nil, nil)

	script, err := service.DownloadScript(ctx, 404)

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, script)

	mockScriptRepo.AssertNotCalled(t, "IncrementDownloads")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestScriptService_RateScript(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockScriptRepo := new(MockScriptRepository)

	mockUoW.SetRepositories(nil, nil, mockScriptRepo, nil)

	service := NewScriptService(mockFactory)

	stored := &models.Script{ID: 7, Name: "Speed Hub"}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockScriptRepo.On("GetByID", ctx, int64(7)).Return(stored, nil)
	mockScriptRepo.On("Rate", ctx, int64(7), int64(123456), int64(4)).Return(4.0, nil)

	average, err := service.RateScript(ctx, 7, 123456, 4)

	assert.NoError(t, err)
	assert.Equal(t, 4.0, average)
}

func TestScriptService_RateScript_OutOfRange(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewScriptService(mockFactory)

	for _, value := range []int64{0, 6, -1} {
		_, err := service.RateScript(ctx, 7, 123456, value)
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	}

	mockFactory.AssertNotCalled(t, "Create")
}
