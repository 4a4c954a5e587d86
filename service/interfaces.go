package service

import (
	"context"

	"scriptbot/events"
	"scriptbot/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByDiscordID retrieves a user by their Discord ID; nil when absent
	GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error)

	// Upsert creates the user with the default balance if absent, otherwise
	// refreshes username and last-seen. Idempotent.
	Upsert(ctx context.Context, discordID int64, username string) (*models.User, error)

	// AdjustBalance applies a signed delta atomically and returns the new balance
	AdjustBalance(ctx context.Context, discordID int64, delta int64) (int64, error)

	// Deduct removes amount atomically, failing with ErrInsufficientFunds
	// when the balance does not cover it; returns the new balance
	Deduct(ctx context.Context, discordID int64, amount int64) (int64, error)
}

// WarningRepository defines the interface for warning data access
type WarningRepository interface {
	// Add appends a warning and increments the cached warning count,
	// returning the record and the new count
	Add(ctx context.Context, userID, moderatorID int64, reason string) (*models.Warning, int64, error)

	// ListByUser returns all warnings for a user, newest first
	ListByUser(ctx context.Context, userID int64) ([]*models.Warning, error)

	// CountByUser counts the warnings on record for a user
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// ScriptRepository defines the interface for script catalog data access
type ScriptRepository interface {
	// Create inserts a new script and fills in its generated fields
	Create(ctx context.Context, script *models.Script) error

	// GetByID retrieves a script; nil when absent
	GetByID(ctx context.Context, id int64) (*models.Script, error)

	// Search matches name or game case-insensitively, most downloaded first
	Search(ctx context.Context, query string) ([]*models.Script, error)

	// Top returns the most downloaded scripts
	Top(ctx context.Context, limit int) ([]*models.Script, error)

	// Random returns a uniformly random script; nil when the catalog is empty
	Random(ctx context.Context) (*models.Script, error)

	// IncrementDownloads bumps the download counter atomically
	IncrementDownloads(ctx context.Context, id int64) error

	// Rate records or replaces one user's rating and returns the recomputed average
	Rate(ctx context.Context, scriptID, raterID, value int64) (float64, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UserService defines the interface for user operations
type UserService interface {
	// GetOrCreateUser retrieves an existing user or creates one with the
	// default balance, refreshing username and last-seen either way
	GetOrCreateUser(ctx context.Context, discordID int64, username string) (*models.User, error)
}

// EconomyService defines the interface for economy operations
type EconomyService interface {
	// Gamble plays one round of the selected game for the given stake
	Gamble(ctx context.Context, discordID int64, stake int64, game models.Game) (*models.GambleResult, error)

	// ClaimDaily credits the daily reward. The 24h window is the command
	// cooldown's concern, not the engine's.
	ClaimDaily(ctx context.Context, discordID int64) (*models.DailyReward, error)

	// Credit adds amount to the user's balance and returns the new balance
	Credit(ctx context.Context, discordID int64, amount int64) (int64, error)

	// Debit removes amount from the user's balance, failing with
	// ErrInsufficientFunds when the effective balance does not cover it
	Debit(ctx context.Context, discordID int64, amount int64) (int64, error)
}

// ModerationService defines the interface for moderation records
type ModerationService interface {
	// WarnUser records a warning against a user and reports the cumulative
	// count plus the escalation advisory. Notification side effects run off
	// the event bus after commit.
	WarnUser(ctx context.Context, userID int64, username string, moderatorID int64, reason string) (*models.WarnResult, error)

	// ListWarnings returns a user's warnings, newest first
	ListWarnings(ctx context.Context, userID int64) ([]*models.Warning, error)
}

// ScriptService defines the interface for script catalog operations
type ScriptService interface {
	// AddScript validates and stores a new catalog entry
	AddScript(ctx context.Context, name, gameName, content string, authorID int64) (*models.Script, error)

	// SearchScripts searches the catalog by name or game
	SearchScripts(ctx context.Context, query string) ([]*models.Script, error)

	// TopScripts returns the most downloaded scripts
	TopScripts(ctx context.Context, limit int) ([]*models.Script, error)

	// RandomScript returns a random script; nil when the catalog is empty
	RandomScript(ctx context.Context) (*models.Script, error)

	// DownloadScript counts a download and returns the script content
	DownloadScript(ctx context.Context, scriptID int64) (*models.Script, error)

	// RateScript records a 1-5 rating and returns the new average
	RateScript(ctx context.Context, scriptID, raterID, value int64) (float64, error)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	WarningRepository() WarningRepository
	ScriptRepository() ScriptRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
