package models

import (
	"time"
)

// Script represents a catalog entry. Content may be several KB of pasted
// source; downloads and rating are mutated by the download and rating
// operations respectively.
type Script struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	GameName  string    `db:"game_name"`
	Content   string    `db:"content"`
	AuthorID  int64     `db:"author_id"`
	Downloads int64     `db:"downloads"`
	Rating    float64   `db:"rating"`
	CreatedAt time.Time `db:"created_at"`
}

// ScriptRating is one user's rating of one script. Resubmitting replaces the
// prior value; the script's average is recomputed from the full rating set.
type ScriptRating struct {
	ID        int64     `db:"id"`
	ScriptID  int64     `db:"script_id"`
	RaterID   int64     `db:"rater_id"`
	Rating    int64     `db:"rating"`
	CreatedAt time.Time `db:"created_at"`
}
