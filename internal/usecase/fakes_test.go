package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yamdb-api/internal/data/entity"
	"yamdb-api/internal/data/repository"
	"yamdb-api/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory fakes for the repository interfaces. They mirror the database
// semantics the services rely on: nil for missing rows, ErrAlreadyExists
// on unique violations, NotFound on zero-row updates.

func newFakeRepository() *repository.Repository {
	genreTitles := &fakeGenreTitleRepo{links: map[uuid.UUID][]uuid.UUID{}}
	return &repository.Repository{
		User:         &fakeUserRepo{},
		Confirmation: &fakeConfirmationRepo{},
		Category:     &fakeCategoryRepo{},
		Genre:        &fakeGenreRepo{links: genreTitles},
		Title:        &fakeTitleRepo{},
		GenreTitle:   genreTitles,
		Review:       &fakeReviewRepo{},
		Comment:      &fakeCommentRepo{},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// ---- users ----

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user %s: %w", user.Username, apperr.ErrAlreadyExists)
		}
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if search == "" || strings.Contains(u.Username, search) {
			out = append(out, u)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeUserRepo) Count(_ context.Context, search string) (int64, error) {
	var n int64
	for _, u := range f.users {
		if search == "" || strings.Contains(u.Username, search) {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return apperr.NotFound("user", user.ID.String())
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("user", id.String())
}

// ---- confirmation codes ----

type fakeConfirmationRepo struct {
	codes []*entity.ConfirmationCode
}

func (f *fakeConfirmationRepo) Create(_ context.Context, code *entity.ConfirmationCode) error {
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeConfirmationRepo) FindActiveByUserID(_ context.Context, userID uuid.UUID) (*entity.ConfirmationCode, error) {
	var newest *entity.ConfirmationCode
	for _, c := range f.codes {
		if c.UserID != userID || c.IsUsed || c.ExpiresAt.Before(time.Now()) {
			continue
		}
		if newest == nil || c.CreatedAt.After(newest.CreatedAt) {
			newest = c
		}
	}
	return newest, nil
}

func (f *fakeConfirmationRepo) MarkUsed(_ context.Context, id uuid.UUID) error {
	for _, c := range f.codes {
		if c.ID == id {
			c.IsUsed = true
			return nil
		}
	}
	return apperr.NotFound("confirmation code", id.String())
}

func (f *fakeConfirmationRepo) InvalidateForUser(_ context.Context, userID uuid.UUID) error {
	for _, c := range f.codes {
		if c.UserID == userID {
			c.IsUsed = true
		}
	}
	return nil
}

// ---- categories ----

type fakeCategoryRepo struct {
	categories []*entity.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	for _, c := range f.categories {
		if c.Slug == category.Slug {
			return fmt.Errorf("category %s: %w", category.Slug, apperr.ErrAlreadyExists)
		}
	}
	f.categories = append(f.categories, category)
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		if search == "" || strings.Contains(c.Name, search) {
			out = append(out, c)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeCategoryRepo) Count(_ context.Context, search string) (int64, error) {
	list, _ := f.List(context.Background(), search, len(f.categories)+1, 0)
	return int64(len(list)), nil
}

func (f *fakeCategoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	for i, c := range f.categories {
		if c.Slug == slug {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("category", slug)
}

// ---- genres ----

type fakeGenreRepo struct {
	genres []*entity.Genre
	links  *fakeGenreTitleRepo
}

func (f *fakeGenreRepo) Create(_ context.Context, genre *entity.Genre) error {
	for _, g := range f.genres {
		if g.Slug == genre.Slug {
			return fmt.Errorf("genre %s: %w", genre.Slug, apperr.ErrAlreadyExists)
		}
	}
	f.genres = append(f.genres, genre)
	return nil
}

func (f *fakeGenreRepo) FindBySlug(_ context.Context, slug string) (*entity.Genre, error) {
	for _, g := range f.genres {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGenreRepo) FindByTitleID(_ context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	if f.links == nil {
		return nil, nil
	}
	var out []*entity.Genre
	for _, genreID := range f.links.links[titleID] {
		for _, g := range f.genres {
			if g.ID == genreID {
				out = append(out, g)
			}
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, g := range f.genres {
		if search == "" || strings.Contains(g.Name, search) {
			out = append(out, g)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeGenreRepo) Count(_ context.Context, search string) (int64, error) {
	list, _ := f.List(context.Background(), search, len(f.genres)+1, 0)
	return int64(len(list)), nil
}

func (f *fakeGenreRepo) DeleteBySlug(_ context.Context, slug string) error {
	for i, g := range f.genres {
		if g.Slug == slug {
			f.genres = append(f.genres[:i], f.genres[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("genre", slug)
}

// ---- titles ----

type fakeTitleRepo struct {
	titles []*entity.Title
}

func (f *fakeTitleRepo) Create(_ context.Context, title *entity.Title) error {
	f.titles = append(f.titles, title)
	return nil
}

func (f *fakeTitleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Title, error) {
	for _, t := range f.titles {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTitleRepo) List(_ context.Context, filter repository.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	var out []*entity.Title
	for _, t := range f.titles {
		if filter.Year != nil && t.Year != *filter.Year {
			continue
		}
		if filter.Name != "" && !strings.Contains(t.Name, filter.Name) {
			continue
		}
		out = append(out, t)
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeTitleRepo) Count(_ context.Context, filter repository.TitleFilter) (int64, error) {
	list, _ := f.List(context.Background(), filter, len(f.titles)+1, 0)
	return int64(len(list)), nil
}

func (f *fakeTitleRepo) Update(_ context.Context, title *entity.Title) error {
	for i, t := range f.titles {
		if t.ID == title.ID {
			f.titles[i] = title
			return nil
		}
	}
	return apperr.NotFound("title", title.ID.String())
}

func (f *fakeTitleRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range f.titles {
		if t.ID == id {
			f.titles = append(f.titles[:i], f.titles[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("title", id.String())
}

// ---- title-genre links ----

type fakeGenreTitleRepo struct {
	links map[uuid.UUID][]uuid.UUID
}

func (f *fakeGenreTitleRepo) SetTitleGenres(_ context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	f.links[titleID] = genreIDs
	return nil
}

// ---- reviews ----

type fakeReviewRepo struct {
	reviews []*entity.Review
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	for _, r := range f.reviews {
		if r.AuthorID == review.AuthorID && r.TitleID == review.TitleID {
			return fmt.Errorf("review: %w", apperr.ErrAlreadyExists)
		}
	}
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	for _, r := range f.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByTitleID(_ context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			out = append(out, r)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeReviewRepo) FindByAuthorAndTitle(_ context.Context, authorID, titleID uuid.UUID) (*entity.Review, error) {
	for _, r := range f.reviews {
		if r.AuthorID == authorID && r.TitleID == titleID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) CountByTitleID(_ context.Context, titleID uuid.UUID) (int64, error) {
	list, _ := f.FindByTitleID(context.Background(), titleID, len(f.reviews)+1, 0)
	return int64(len(list)), nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	for i, r := range f.reviews {
		if r.ID == review.ID {
			f.reviews[i] = review
			return nil
		}
	}
	return apperr.NotFound("review", review.ID.String())
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, r := range f.reviews {
		if r.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("review", id.String())
}

func (f *fakeReviewRepo) AverageScoreByTitle(_ context.Context, titleID uuid.UUID) (*float64, error) {
	var sum, n float64
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			sum += float64(r.Score)
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / n
	return &avg, nil
}

// ---- comments ----

type fakeCommentRepo struct {
	comments []*entity.Comment
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	f.comments = append(f.comments, comment)
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	for _, c := range f.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCommentRepo) FindByReviewID(_ context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	var out []*entity.Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeCommentRepo) CountByReviewID(_ context.Context, reviewID uuid.UUID) (int64, error) {
	list, _ := f.FindByReviewID(context.Background(), reviewID, len(f.comments)+1, 0)
	return int64(len(list)), nil
}

func (f *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	for i, c := range f.comments {
		if c.ID == comment.ID {
			f.comments[i] = comment
			return nil
		}
	}
	return apperr.NotFound("comment", comment.ID.String())
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range f.comments {
		if c.ID == id {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("comment", id.String())
}

// ---- mailer ----

type fakeMailer struct {
	sent     []string
	lastCode string
	fail     bool
}

func (f *fakeMailer) SendConfirmationCode(to, username, code string) error {
	if f.fail {
		return fmt.Errorf("smtp unavailable")
	}
	f.sent = append(f.sent, to)
	f.lastCode = code
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
