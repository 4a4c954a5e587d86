package service

import (
	"context"
	"fmt"

	"scriptbot/events"
	"scriptbot/models"
)

// economyService implements the EconomyService interface
type economyService struct {
	uowFactory UnitOfWorkFactory
}

// NewEconomyService creates a new economy service
func NewEconomyService(uowFactory UnitOfWorkFactory) EconomyService {
	return &economyService{
		uowFactory: uowFactory,
	}
}

// Gamble plays one round of the selected game. The net delta is applied in a
// single atomic adjustment and the returned balance is the store's value
// after that adjustment, so concurrent gambles by the same user cannot
// produce a stale result.
func (s *economyService) Gamble(ctx context.Context, discordID int64, stake int64, game models.Game) (*models.GambleResult, error) {
	if stake < models.MinimumStake {
		return nil, fmt.Errorf("minimum stake is %d coins: %w", models.MinimumStake, models.ErrInvalidArgument)
	}
	if game == "" {
		game = models.GameCoinFlip
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	// Materialize the user so the default balance is persisted, never assumed
	user, err := uow.UserRepository().Upsert(ctx, discordID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.CanAfford(stake) {
		return nil, fmt.Errorf("have %d, need %d: %w", user.Balance, stake, models.ErrInsufficientFunds)
	}

	result, err := playGame(game, stake)
	if err != nil {
		return nil, err
	}

	// Wins adjust upward; losses go through the conditional deduct so a
	// concurrent gamble can never push the balance below zero.
	var newBalance int64
	if result.Won {
		newBalance, err = uow.UserRepository().AdjustBalance(ctx, discordID, result.Delta)
	} else {
		newBalance, err = uow.UserRepository().Deduct(ctx, discordID, stake)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply gamble delta: %w", err)
	}
	result.NewBalance = newBalance

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:       discordID,
		OldBalance:   user.Balance,
		NewBalance:   newBalance,
		ChangeAmount: result.Delta,
		Reason:       "gamble:" + string(game),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}

// ClaimDaily credits the daily reward in one atomic adjustment. Claim
// frequency is enforced by the command cooldown, not here.
func (s *economyService) ClaimDaily(ctx context.Context, discordID int64) (*models.DailyReward, error) {
	base, bonus := rollDaily()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().Upsert(ctx, discordID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	newBalance, err := uow.UserRepository().AdjustBalance(ctx, discordID, base+bonus)
	if err != nil {
		return nil, fmt.Errorf("failed to credit daily reward: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:       discordID,
		OldBalance:   user.Balance,
		NewBalance:   newBalance,
		ChangeAmount: base + bonus,
		Reason:       "daily",
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.DailyReward{
		Base:       base,
		Bonus:      bonus,
		NewBalance: newBalance,
	}, nil
}

// Credit adds amount to the user's balance
func (s *economyService) Credit(ctx context.Context, discordID int64, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("credit amount must not be negative: %w", models.ErrInvalidArgument)
	}

	return s.adjust(ctx, discordID, amount, "credit")
}

// Debit removes amount from the user's balance. The effective-balance
// pre-check produces the friendly error; the conditional deduct is the
// actual race guard.
func (s *economyService) Debit(ctx context.Context, discordID int64, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("debit amount must not be negative: %w", models.ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().Upsert(ctx, discordID, "")
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.CanAfford(amount) {
		return 0, fmt.Errorf("have %d, need %d: %w", user.Balance, amount, models.ErrInsufficientFunds)
	}

	newBalance, err := uow.UserRepository().Deduct(ctx, discordID, amount)
	if err != nil {
		return 0, err
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:       discordID,
		OldBalance:   user.Balance,
		NewBalance:   newBalance,
		ChangeAmount: -amount,
		Reason:       "debit",
	})

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}

func (s *economyService) adjust(ctx context.Context, discordID int64, delta int64, reason string) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().Upsert(ctx, discordID, "")
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}

	newBalance, err := uow.UserRepository().AdjustBalance(ctx, discordID, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to adjust balance: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:       discordID,
		OldBalance:   user.Balance,
		NewBalance:   newBalance,
		ChangeAmount: delta,
		Reason:       reason,
	})

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}
