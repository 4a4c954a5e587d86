package repository

import (
	"context"
	"fmt"

	"scriptbot/database"
	"scriptbot/models"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository bound to a transaction
func newUserRepositoryWithTx(tx Queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `discord_id, username, balance, reputation, warnings, last_seen, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.DiscordID,
		&user.Username,
		&user.Balance,
		&user.Reputation,
		&user.WarningCount,
		&user.LastSeen,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByDiscordID retrieves a user by their Discord ID. Absence is a normal
// outcome: the result is nil with a nil error.
func (r *UserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE discord_id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, discordID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by discord ID %d: %w", discordID, err)
	}

	return user, nil
}

// Upsert creates the user with the default balance if absent, otherwise
// refreshes username and last-seen. Safe to call unconditionally before any
// read that assumes existence. An empty username never overwrites a stored one.
func (r *UserRepository) Upsert(ctx context.Context, discordID int64, username string) (*models.User, error) {
	query := `
		INSERT INTO users (discord_id, username)
		VALUES ($1, $2)
		ON CONFLICT (discord_id) DO UPDATE
		SET username = COALESCE(NULLIF(EXCLUDED.username, ''), users.username),
		    last_seen = NOW(),
		    updated_at = NOW()
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, discordID, username))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user %d: %w", discordID, err)
	}

	return user, nil
}

// AdjustBalance applies a signed delta to the user's balance in a single
// statement and returns the resulting balance. No floor is enforced here;
// insufficiency checks belong to the caller.
func (r *UserRepository) AdjustBalance(ctx context.Context, discordID int64, delta int64) (int64, error) {
	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE discord_id = $2
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, delta, discordID).Scan(&balance)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("user %d: %w", discordID, models.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust balance for user %d: %w", discordID, err)
	}

	return balance, nil
}

// Deduct removes amount from the user's balance only if it is covered,
// returning the resulting balance. The condition is evaluated inside the
// update statement, so concurrent deductions can never drive the balance
// negative.
func (r *UserRepository) Deduct(ctx context.Context, discordID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("deduct amount must be positive: %w", models.ErrInvalidArgument)
	}

	query := `
		UPDATE users
		SET balance = balance - $1, updated_at = NOW()
		WHERE discord_id = $2 AND balance >= $1
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, amount, discordID).Scan(&balance)
	if err == pgx.ErrNoRows {
		// Either the user is missing or the balance does not cover the amount
		user, getErr := r.GetByDiscordID(ctx, discordID)
		if getErr != nil {
			return 0, fmt.Errorf("failed to check user %d: %w", discordID, getErr)
		}
		if user == nil {
			return 0, fmt.Errorf("user %d: %w", discordID, models.ErrNotFound)
		}
		return 0, fmt.Errorf("have %d, need %d: %w", user.Balance, amount, models.ErrInsufficientFunds)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to deduct balance for user %d: %w", discordID, err)
	}

	return balance, nil
}
