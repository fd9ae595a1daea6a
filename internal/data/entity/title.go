package entity

import "github.com/google/uuid"

type Title struct {
	Base
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`

	// Rating is the average review score, aggregated at query time.
	// Nil when the title has no reviews.
	Rating *float64 `db:"rating"`
}
