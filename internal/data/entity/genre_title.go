package entity

import (
	"github.com/google/uuid"
)

// GenreTitle links a title to one of its genres. Rows cascade away with
// either side.
type GenreTitle struct {
	BaseSimple
	TitleID uuid.UUID `db:"title_id"`
	GenreID uuid.UUID `db:"genre_id"`
}
