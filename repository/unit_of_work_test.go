package repository

import (
	"context"
	"testing"
	"time"

	"scriptbot/events"
	"scriptbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitPersistsAndFlushesEvents(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		received <- event
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.UserRepository().Upsert(ctx, 123456, "committer")
	require.NoError(t, err)

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:     123456,
		NewBalance: 1000,
		Reason:     "test",
	})

	require.NoError(t, uow.Commit())

	// The write is durable outside the transaction
	readRepo := NewUserRepository(testDB.DB)
	user, err := readRepo.GetByDiscordID(ctx, 123456)
	require.NoError(t, err)
	require.NotNil(t, user)

	// The pending event was flushed to the bus
	select {
	case event := <-received:
		change, ok := event.(events.BalanceChangeEvent)
		require.True(t, ok)
		assert.Equal(t, int64(123456), change.UserID)
	case <-time.After(2 * time.Second):
		t.Fatal("expected event after commit")
	}
}

func TestUnitOfWork_RollbackDiscardsWritesAndEvents(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		received <- event
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.UserRepository().Upsert(ctx, 123456, "rollbacker")
	require.NoError(t, err)

	uow.EventBus().Publish(events.BalanceChangeEvent{UserID: 123456, Reason: "test"})

	require.NoError(t, uow.Rollback())

	readRepo := NewUserRepository(testDB.DB)
	user, err := readRepo.GetByDiscordID(ctx, 123456)
	require.NoError(t, err)
	assert.Nil(t, user)

	select {
	case <-received:
		t.Fatal("no event should be emitted after rollback")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestUnitOfWork_RollbackAfterCommitIsNoOp(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	_, err := uow.UserRepository().Upsert(ctx, 123456, "user")
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	assert.NoError(t, uow.Rollback())
}

func TestUnitOfWork_RepositoriesPanicBeforeBegin(t *testing.T) {
	t.Parallel()

	factory := NewUnitOfWorkFactory(nil, events.NewBus())
	uow := factory.Create()

	assert.Panics(t, func() { uow.UserRepository() })
	assert.Panics(t, func() { uow.WarningRepository() })
	assert.Panics(t, func() { uow.ScriptRepository() })
}
