package service

import (
	"context"

	"scriptbot/events"
	"scriptbot/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, discordID int64, username string) (*models.User, error) {
	args := m.Called(ctx, discordID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AdjustBalance(ctx context.Context, discordID int64, delta int64) (int64, error) {
	args := m.Called(ctx, discordID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Deduct(ctx context.Context, discordID int64, amount int64) (int64, error) {
	args := m.Called(ctx, discordID, amount)
	return args.Get(0).(int64), args.Error(1)
}

// MockWarningRepository is a mock implementation of WarningRepository
type MockWarningRepository struct {
	mock.Mock
}

func (m *MockWarningRepository) Add(ctx context.Context, userID, moderatorID int64, reason string) (*models.Warning, int64, error) {
	args := m.Called(ctx, userID, moderatorID, reason)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).(*models.Warning), args.Get(1).(int64), args.Error(2)
}

func (m *MockWarningRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Warning, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Warning), args.Error(1)
}

func (m *MockWarningRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockScriptRepository is a mock implementation of ScriptRepository
type MockScriptRepository struct {
	mock.Mock
}

func (m *MockScriptRepository) Create(ctx context.Context, script *models.Script) error {
	args := m.Called(ctx, script)
	return args.Error(0)
}

func (m *MockScriptRepository) GetByID(ctx context.Context, id int64) (*models.Script, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Script), args.Error(1)
}

func (m *MockScriptRepository) Search(ctx context.Context, query string) ([]*models.Script, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Script), args.Error(1)
}

func (m *MockScriptRepository) Top(ctx context.Context, limit int) ([]*models.Script, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Script), args.Error(1)
}

func (m *MockScriptRepository) Random(ctx context.Context) (*models.Script, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Script), args.Error(1)
}

func (m *MockScriptRepository) IncrementDownloads(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScriptRepository) Rate(ctx context.Context, scriptID, raterID, value int64) (float64, error) {
	args := m.Called(ctx, scriptID, raterID, value)
	return args.Get(0).(float64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// recordingPublisher collects published events without expectations, for
// tests that only care about what was emitted
type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(event events.Event) {
	p.published = append(p.published, event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// attached with SetRepositories rather than expectation calls, since the
// getters carry no failure mode.
type MockUnitOfWork struct {
	mock.Mock

	userRepo    UserRepository
	warningRepo WarningRepository
	scriptRepo  ScriptRepository
	eventBus    EventPublisher
}

// SetRepositories attaches the repositories returned by the getters. A nil
// event bus is replaced with a recording publisher so services can always
// publish.
func (m *MockUnitOfWork) SetRepositories(userRepo UserRepository, warningRepo WarningRepository, scriptRepo ScriptRepository, eventBus EventPublisher) {
	m.userRepo = userRepo
	m.warningRepo = warningRepo
	m.scriptRepo = scriptRepo
	if eventBus == nil {
		eventBus = &recordingPublisher{}
	}
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) WarningRepository() WarningRepository {
	return m.warningRepo
}

func (m *MockUnitOfWork) ScriptRepository() ScriptRepository {
	return m.scriptRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
