package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"yamdb-api/internal/data/entity"
	"yamdb-api/internal/data/repository"
	"yamdb-api/pkg/authz"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Loader imports fixture data from a directory of CSV files. The files use
// integer IDs to reference each other, so the loader keeps per-file maps
// from CSV ID to the UUID it generated.
type Loader struct {
	repo *repository.Repository
	log  *zap.Logger

	users      map[string]uuid.UUID
	categories map[string]uuid.UUID
	genres     map[string]uuid.UUID
	titles     map[string]uuid.UUID
	reviews    map[string]uuid.UUID
}

func NewLoader(repo *repository.Repository, log *zap.Logger) *Loader {
	return &Loader{
		repo:       repo,
		log:        log.With(zap.String("component", "seed")),
		users:      make(map[string]uuid.UUID),
		categories: make(map[string]uuid.UUID),
		genres:     make(map[string]uuid.UUID),
		titles:     make(map[string]uuid.UUID),
		reviews:    make(map[string]uuid.UUID),
	}
}

// RunAll loads every fixture file in dependency order. Files that are
// absent are skipped.
func (l *Loader) RunAll(ctx context.Context, dir string) error {
	steps := []struct {
		file string
		load func(ctx context.Context, rows []map[string]string) error
	}{
		{"users.csv", l.loadUsers},
		{"category.csv", l.loadCategories},
		{"genre.csv", l.loadGenres},
		{"titles.csv", l.loadTitles},
		{"genre_title.csv", l.loadGenreTitles},
		{"review.csv", l.loadReviews},
		{"comments.csv", l.loadComments},
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.file)
		rows, err := readCSV(path)
		if os.IsNotExist(err) {
			l.log.Warn("Seed file missing, skipping", zap.String("file", step.file))
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", step.file, err)
		}

		if err := step.load(ctx, rows); err != nil {
			return fmt.Errorf("load %s: %w", step.file, err)
		}

		l.log.Info("Seed file loaded",
			zap.String("file", step.file),
			zap.Int("rows", len(rows)),
		)
	}

	return nil
}

func (l *Loader) loadUsers(ctx context.Context, rows []map[string]string) error {
	for _, row := range rows {
		now := time.Now()
		user := &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Username: row["username"],
			Email:    row["email"],
			Role:     authz.Role(row["role"]),
		}
		if v := row["first_name"]; v != "" {
			user.FirstName = &v
		}
		if v := row["last_name"]; v != "" {
			user.LastName = &v
		}
		if v := row["bio"]; v != "" {
			user.Bio = &v
		}

		if err := l.repo.User.Create(ctx, user); err != nil {
			return fmt.Errorf("user %s: %w", row["username"], err)
		}
		l.users[row["id"]] = user.ID
	}
	return nil
}

func (l *Loader) loadCategories(ctx context.Context, rows []map[string]string) error {
	for _, row := range rows {
		category := &entity.Category{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			Name: row["name"],
			Slug: row["slug"],
		}

		if err := l.repo.Category.Create(ctx, category); err != nil {
			return fmt.Errorf("category %s: %w", row["slug"], err)
		}
		l.categories[row["id"]] = category.ID
	}
	return nil
}

func (l *Loader) loadGenres(ctx context.Context, rows []map[string]string) error {
	for _, row := range rows {
		genre := &entity.Genre{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			Name: row["name"],
			Slug: row["slug"],
		}

		if err := l.repo.Genre.Create(ctx, genre); err != nil {
			return fmt.Errorf("genre %s: %w", row["slug"], err)
		}
		l.genres[row["id"]] = genre.ID
	}
	return nil
}

func (l *Loader) loadTitles(ctx context.Context, rows []map[string]string) error {
	for _, row := range rows {
		year, err := strconv.Atoi(row["year"])
		if err != nil {
			return fmt.Errorf("title %s: bad year %q", row["name"], row["year"])
		}

		now := time.Now()
		title := &entity.Title{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name: row["name"],
			Year: year,
		}
		if categoryID, ok := l.categories[row["category"]]; ok {
			title.CategoryID = &categoryID
		}

		if err := l.repo.Title.Create(ctx, title); err != nil {
			return fmt.Errorf("title %s: %w", row["name"], err)
		}
		l.titles[row["id"]] = title.ID
	}
	return nil
}

func (l *Loader) loadGenreTitles(ctx context.Context, rows []map[string]string) error {
	// Group links per title so SetTitleGenres writes each title once.
	perTitle := make(map[uuid.UUID][]uuid.UUID)
	for _, row := range rows {
		titleID, ok := l.titles[row["title_id"]]
		if !ok {
			return fmt.Errorf("genre link references unknown title %q", row["title_id"])
		}
		genreID, ok := l.genres[row["genre_id"]]
		if !ok {
			return fmt.Errorf("genre link references unknown genre %q", row["genre_id"])
		}
		perTitle[titleID] = append(perTitle[titleID], genreID)
	}

	for titleID, genreIDs := range perTitle {
		if err := l.repo.GenreTitle.SetTitleGenres(ctx, titleID, genreIDs); err != nil {
			return fmt.Errorf("title %s genres: %w", titleID.String(), err)
		}
	}
	return nil
}

func (l *Loader) loadReviews(ctx context.Context, rows []map[string]string) error {
	for _, row := range rows {
		titleID, ok := l.titles[row["title_id"]]
		if !ok {
			return fmt.Errorf("review references unknown title %q", row["title_id"])
		}
		authorID, ok := l.users[row["author"]]
		if !ok {
			return fmt.Errorf("review references unknown author %q", row["author"])
		}
		score, err := strconv.Atoi(row["score"])
		if err != nil {
			return fmt.Errorf("review %s: bad score %q", row["id"], row["score"])
		}

		createdAt := parseDate(row["pub_date"])
		review := &entity.Review{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
			TitleID:  titleID,
			AuthorID: authorID,
			Text:     row["text"],
			Score:    score,
		}

		if err := l.repo.Review.Create(ctx, review); err != nil {
			return fmt.Errorf("review %s: %w", row["id"], err)
		}
		l.reviews[row["id"]] = review.ID
	}
	return nil
}

func (l *Loader) loadComments(ctx context.Context, rows []map[string]string) error {
	for _, row := range rows {
		reviewID, ok := l.reviews[row["review_id"]]
		if !ok {
			return fmt.Errorf("comment references unknown review %q", row["review_id"])
		}
		authorID, ok := l.users[row["author"]]
		if !ok {
			return fmt.Errorf("comment references unknown author %q", row["author"])
		}

		createdAt := parseDate(row["pub_date"])
		comment := &entity.Comment{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
			ReviewID: reviewID,
			AuthorID: authorID,
			Text:     row["text"],
		}

		if err := l.repo.Comment.Create(ctx, comment); err != nil {
			return fmt.Errorf("comment %s: %w", row["id"], err)
		}
	}
	return nil
}

// readCSV reads a file into header-keyed rows.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// parseDate accepts the fixture timestamp format, falling back to now.
func parseDate(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now()
}
