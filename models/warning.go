package models

import (
	"time"
)

// Warning is an append-only moderation record. The warned user's cached
// warning count is incremented in the same transaction that inserts it.
type Warning struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	ModeratorID int64     `db:"moderator_id"`
	Reason      string    `db:"reason"`
	CreatedAt   time.Time `db:"created_at"`
}
