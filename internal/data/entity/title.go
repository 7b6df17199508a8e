package entity

import (
	"github.com/google/uuid"
)

// Title is the reviewable work (film, book, album). CategoryID is nil when
// the category was deleted.
type Title struct {
	Base
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`
}
