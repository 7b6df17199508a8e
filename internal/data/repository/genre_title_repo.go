package repository

import (
	"context"
	"fmt"
	"time"

	"yamdb-api/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenreTitleRepository interface {
	// SetTitleGenres replaces the genre links of a title in one transaction.
	SetTitleGenres(ctx context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error
}

type genreTitleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreTitleRepository(db database.PgxIface, log *zap.Logger) GenreTitleRepository {
	return &genreTitleRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre_title")),
	}
}

func (r *genreTitleRepository) SetTitleGenres(ctx context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set title genres: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, titleID); err != nil {
		r.log.Error("Failed to clear title genres",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return fmt.Errorf("clear title genres for %s: %w", titleID.String(), err)
	}

	query := `
		INSERT INTO title_genres (id, title_id, genre_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	now := time.Now()
	for _, genreID := range genreIDs {
		if _, err := tx.Exec(ctx, query, uuid.New(), titleID, genreID, now); err != nil {
			r.log.Error("Failed to link genre to title",
				zap.Error(err),
				zap.String("title_id", titleID.String()),
				zap.String("genre_id", genreID.String()),
			)
			return fmt.Errorf("link genre %s to title %s: %w",
				genreID.String(), titleID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set title genres: %w", err)
	}

	return nil
}
