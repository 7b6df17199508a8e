package entity

import (
	"github.com/google/uuid"
)

// Review of a title. At most one review per (author, title) pair, enforced
// by a unique constraint.
type Review struct {
	Base
	TitleID  uuid.UUID `db:"title_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Text     string    `db:"text"`
	Score    int       `db:"score"` // 1-10
}
