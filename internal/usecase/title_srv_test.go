package usecase

import (
	"context"
	"testing"
	"time"

	"yamdb-api/internal/data/entity"
	"yamdb-api/internal/data/repository"
	"yamdb-api/internal/dto/request"
	"yamdb-api/pkg/apperr"
	"yamdb-api/pkg/authz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminPrincipal() authz.Principal {
	return authz.Principal{ID: uuid.New(), Role: authz.RoleAdmin, Authenticated: true}
}

func userPrincipal() authz.Principal {
	return authz.Principal{ID: uuid.New(), Role: authz.RoleUser, Authenticated: true}
}

func seedCatalog(t *testing.T, repo *repository.Repository) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, repo.Category.Create(ctx, &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       "Movies", Slug: "movies",
	}))
	require.NoError(t, repo.Genre.Create(ctx, &entity.Genre{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       "Drama", Slug: "drama",
	}))
}

func TestCreateTitle_HappyPath(t *testing.T) {
	repo := newFakeRepository()
	seedCatalog(t, repo)
	service := NewTitleService(repo, testLogger())

	title, err := service.Create(context.Background(), adminPrincipal(), &request.CreateTitleRequest{
		Name:     "The Departure",
		Year:     2001,
		Genre:    []string{"drama"},
		Category: "movies",
	})
	require.NoError(t, err)
	assert.Equal(t, "The Departure", title.Name)
	assert.Nil(t, title.Rating)
	require.Len(t, title.Genre, 1)
	assert.Equal(t, "drama", title.Genre[0].Slug)
	require.NotNil(t, title.Category)
	assert.Equal(t, "movies", title.Category.Slug)
}

func TestCreateTitle_RequiresAdmin(t *testing.T) {
	repo := newFakeRepository()
	seedCatalog(t, repo)
	service := NewTitleService(repo, testLogger())

	req := &request.CreateTitleRequest{
		Name: "X", Year: 2001, Genre: []string{"drama"}, Category: "movies",
	}

	_, err := service.Create(context.Background(), userPrincipal(), req)
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

	_, err = service.Create(context.Background(), authz.Anonymous(), req)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestCreateTitle_YearBounds(t *testing.T) {
	repo := newFakeRepository()
	seedCatalog(t, repo)
	service := NewTitleService(repo, testLogger())
	admin := adminPrincipal()

	create := func(year int) error {
		_, err := service.Create(context.Background(), admin, &request.CreateTitleRequest{
			Name: "Y", Year: year, Genre: []string{"drama"}, Category: "movies",
		})
		return err
	}

	current := time.Now().Year()

	assert.True(t, apperr.IsValidation(create(1894)))
	assert.NoError(t, create(1895))
	assert.True(t, apperr.IsValidation(create(current+1)))
}

func TestCreateTitle_UnknownSlugs(t *testing.T) {
	repo := newFakeRepository()
	seedCatalog(t, repo)
	service := NewTitleService(repo, testLogger())
	admin := adminPrincipal()

	_, err := service.Create(context.Background(), admin, &request.CreateTitleRequest{
		Name: "X", Year: 2001, Genre: []string{"nope"}, Category: "movies",
	})
	assert.True(t, apperr.IsValidation(err))

	_, err = service.Create(context.Background(), admin, &request.CreateTitleRequest{
		Name: "X", Year: 2001, Genre: []string{"drama"}, Category: "nope",
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestTitleRating_RoundsHalfUp(t *testing.T) {
	repo := newFakeRepository()
	seedCatalog(t, repo)
	service := NewTitleService(repo, testLogger())
	ctx := context.Background()

	created, err := service.Create(ctx, adminPrincipal(), &request.CreateTitleRequest{
		Name: "Rated", Year: 2001, Genre: []string{"drama"}, Category: "movies",
	})
	require.NoError(t, err)
	titleID := uuid.MustParse(created.ID)

	addReview := func(score int) {
		require.NoError(t, repo.Review.Create(ctx, &entity.Review{
			Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
			TitleID:  titleID,
			AuthorID: uuid.New(),
			Text:     "t",
			Score:    score,
		}))
	}

	// [8, 9, 10] -> avg 9.0 -> 9
	addReview(8)
	addReview(9)
	addReview(10)

	got, err := service.Get(ctx, titleID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 9, *got.Rating)

	// [7, 8] -> avg 7.5 -> rounds up to 8
	repo.Review.(*fakeReviewRepo).reviews = nil
	addReview(7)
	addReview(8)

	got, err = service.Get(ctx, titleID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 8, *got.Rating)
}

func TestGetTitle_NotFound(t *testing.T) {
	repo := newFakeRepository()
	service := NewTitleService(repo, testLogger())

	_, err := service.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateTitle_PartialFields(t *testing.T) {
	repo := newFakeRepository()
	seedCatalog(t, repo)
	service := NewTitleService(repo, testLogger())
	ctx := context.Background()
	admin := adminPrincipal()

	created, err := service.Create(ctx, admin, &request.CreateTitleRequest{
		Name: "Before", Year: 2001, Genre: []string{"drama"}, Category: "movies",
	})
	require.NoError(t, err)

	newName := "After"
	updated, err := service.Update(ctx, admin, uuid.MustParse(created.ID), &request.UpdateTitleRequest{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, 2001, updated.Year)
	require.Len(t, updated.Genre, 1)
}
