package repository

import (
	"context"
	"errors"
	"fmt"

	"scriptbot/database"
	"scriptbot/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// searchResultLimit caps search results; the presentation layer shows at
// most a handful anyway.
const searchResultLimit = 10

// ScriptRepository implements the service.ScriptRepository interface
type ScriptRepository struct {
	q Queryable
}

// NewScriptRepository creates a new script repository
func NewScriptRepository(db *database.DB) *ScriptRepository {
	return &ScriptRepository{q: db.Pool}
}

func newScriptRepositoryWithTx(tx Queryable) *ScriptRepository {
	return &ScriptRepository{q: tx}
}

const scriptColumns = `id, name, game_name, content, author_id, downloads, rating, created_at`

func scanScript(row pgx.Row) (*models.Script, error) {
	var s models.Script
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.GameName,
		&s.Content,
		&s.AuthorID,
		&s.Downloads,
		&s.Rating,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScriptRepository) scanScripts(rows pgx.Rows) ([]*models.Script, error) {
	defer rows.Close()

	var scripts []*models.Script
	for rows.Next() {
		script, err := scanScript(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan script: %w", err)
		}
		scripts = append(scripts, script)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scripts: %w", err)
	}

	return scripts, nil
}

// Create inserts a new script and fills in its generated ID and timestamp
func (r *ScriptRepository) Create(ctx context.Context, script *models.Script) error {
	query := `
		INSERT INTO scripts (name, game_name, content, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, downloads, rating, created_at
	`

	err := r.q.QueryRow(ctx, query, script.Name, script.GameName, script.Content, script.AuthorID).
		Scan(&script.ID, &script.Downloads, &script.Rating, &script.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create script %q: %w", script.Name, err)
	}

	return nil
}

// GetByID retrieves a script, nil when absent
func (r *ScriptRepository) GetByID(ctx context.Context, id int64) (*models.Script, error) {
	query := `SELECT ` + scriptColumns + ` FROM scripts WHERE id = $1`

	script, err := scanScript(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get script %d: %w", id, err)
	}

	return script, nil
}

// Search returns scripts whose name or game matches the query as a
// case-insensitive substring, most downloaded first, capped
func (r *ScriptRepository) Search(ctx context.Context, query string) ([]*models.Script, error) {
	sql := `
		SELECT ` + scriptColumns + `
		FROM scripts
		WHERE name ILIKE $1 OR game_name ILIKE $1
		ORDER BY downloads DESC, id
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, sql, "%"+query+"%", searchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search scripts for %q: %w", query, err)
	}

	return r.scanScripts(rows)
}

// Top returns the most downloaded scripts
func (r *ScriptRepository) Top(ctx context.Context, limit int) ([]*models.Script, error) {
	sql := `SELECT ` + scriptColumns + ` FROM scripts ORDER BY downloads DESC, id LIMIT $1`

	rows, err := r.q.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top scripts: %w", err)
	}

	return r.scanScripts(rows)
}

// Random returns a uniformly random script, nil when the catalog is empty
func (r *ScriptRepository) Random(ctx context.Context) (*models.Script, error) {
	sql := `SELECT ` + scriptColumns + ` FROM scripts ORDER BY RANDOM() LIMIT 1`

	script, err := scanScript(r.q.QueryRow(ctx, sql))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get random script: %w", err)
	}

	return script, nil
}

// IncrementDownloads bumps the download counter atomically
func (r *ScriptRepository) IncrementDownloads(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `UPDATE scripts SET downloads = downloads + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment downloads for script %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("script %d: %w", id, models.ErrNotFound)
	}

	return nil
}

// Rate records or replaces one user's rating of a script and recomputes the
// stored average from the full rating set, returning the new average.
// Callers that need the two steps atomic run this inside a unit of work.
func (r *ScriptRepository) Rate(ctx context.Context, scriptID, raterID, value int64) (float64, error) {
	upsert := `
		INSERT INTO script_ratings (script_id, rater_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (script_id, rater_id) DO UPDATE
		SET rating = EXCLUDED.rating, created_at = NOW()
	`

	if _, err := r.q.Exec(ctx, upsert, scriptID, raterID, value); err != nil {
		// A foreign key violation means the script does not exist
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, fmt.Errorf("script %d: %w", scriptID, models.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to record rating for script %d: %w", scriptID, err)
	}

	recompute := `
		UPDATE scripts
		SET rating = (SELECT AVG(rating) FROM script_ratings WHERE script_id = $1)
		WHERE id = $1
		RETURNING rating
	`

	var average float64
	err := r.q.QueryRow(ctx, recompute, scriptID).Scan(&average)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("script %d: %w", scriptID, models.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to recompute rating for script %d: %w", scriptID, err)
	}

	return average, nil
}
