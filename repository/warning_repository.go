package repository

import (
	"context"
	"fmt"

	"scriptbot/database"
	"scriptbot/models"

	"github.com/jackc/pgx/v5"
)

// WarningRepository implements the service.WarningRepository interface
type WarningRepository struct {
	q Queryable
}

// NewWarningRepository creates a new warning repository
func NewWarningRepository(db *database.DB) *WarningRepository {
	return &WarningRepository{q: db.Pool}
}

func newWarningRepositoryWithTx(tx Queryable) *WarningRepository {
	return &WarningRepository{q: tx}
}

// Add appends a warning and increments the user's cached warning count,
// returning the created record and the new count. Both statements run on
// the repository's queryable; callers that need atomicity run this inside
// a unit of work.
func (r *WarningRepository) Add(ctx context.Context, userID, moderatorID int64, reason string) (*models.Warning, int64, error) {
	insert := `
		INSERT INTO warnings (user_id, moderator_id, reason)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	warning := &models.Warning{
		UserID:      userID,
		ModeratorID: moderatorID,
		Reason:      reason,
	}
	err := r.q.QueryRow(ctx, insert, userID, moderatorID, reason).Scan(&warning.ID, &warning.CreatedAt)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to insert warning for user %d: %w", userID, err)
	}

	update := `
		UPDATE users
		SET warnings = warnings + 1, updated_at = NOW()
		WHERE discord_id = $1
		RETURNING warnings
	`

	var count int64
	err = r.q.QueryRow(ctx, update, userID).Scan(&count)
	if err == pgx.ErrNoRows {
		return nil, 0, fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to increment warning count for user %d: %w", userID, err)
	}

	return warning, count, nil
}

// ListByUser returns all warnings for a user, newest first
func (r *WarningRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Warning, error) {
	query := `
		SELECT id, user_id, moderator_id, reason, created_at
		FROM warnings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list warnings for user %d: %w", userID, err)
	}
	defer rows.Close()

	var warnings []*models.Warning
	for rows.Next() {
		var w models.Warning
		if err := rows.Scan(&w.ID, &w.UserID, &w.ModeratorID, &w.Reason, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan warning: %w", err)
		}
		warnings = append(warnings, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate warnings: %w", err)
	}

	return warnings, nil
}

// CountByUser counts the warnings on record for a user
func (r *WarningRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM warnings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count warnings for user %d: %w", userID, err)
	}
	return count, nil
}
