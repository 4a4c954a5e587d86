package models

import (
	"time"
)

// DefaultBalance is the effective balance of a user that has never been
// persisted. The upsert path materializes it so in-memory and stored views
// never diverge.
const DefaultBalance int64 = 1000

// User represents a Discord user with an economy balance and moderation state
type User struct {
	DiscordID    int64     `db:"discord_id"`
	Username     string    `db:"username"`
	Balance      int64     `db:"balance"`
	Reputation   int64     `db:"reputation"`
	WarningCount int64     `db:"warnings"`
	LastSeen     time.Time `db:"last_seen"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// CanAfford checks if the user has sufficient balance for an amount
func (u *User) CanAfford(amount int64) bool {
	return u.Balance >= amount
}
