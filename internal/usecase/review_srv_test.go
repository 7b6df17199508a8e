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

// seedTitle inserts a bare title and returns its ID.
func seedTitle(t *testing.T, repo *repository.Repository) uuid.UUID {
	t.Helper()

	title := &entity.Title{
		Base: entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name: "Reviewed", Year: 2001,
	}
	require.NoError(t, repo.Title.Create(context.Background(), title))
	return title.ID
}

// seedUser inserts a user and returns their principal.
func seedUser(t *testing.T, repo *repository.Repository, username string, role authz.Role) authz.Principal {
	t.Helper()

	now := time.Now()
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, repo.User.Create(context.Background(), user))
	return user.Principal()
}

func TestCreateReview_HappyPath(t *testing.T) {
	repo := newFakeRepository()
	service := NewReviewService(repo, testLogger())
	titleID := seedTitle(t, repo)
	author := seedUser(t, repo, "reader", authz.RoleUser)

	review, err := service.Create(context.Background(), author, titleID, &request.CreateReviewRequest{
		Text:  "Great watch",
		Score: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, "Great watch", review.Text)
	assert.Equal(t, 9, review.Score)
	assert.Equal(t, "reader", review.Author)
}

func TestCreateReview_ScoreBounds(t *testing.T) {
	repo := newFakeRepository()
	service := NewReviewService(repo, testLogger())
	titleID := seedTitle(t, repo)

	create := func(score int) error {
		author := seedUser(t, repo, uuid.NewString()[:8], authz.RoleUser)
		_, err := service.Create(context.Background(), author, titleID, &request.CreateReviewRequest{
			Text: "t", Score: score,
		})
		return err
	}

	assert.True(t, apperr.IsValidation(create(0)))
	assert.NoError(t, create(1))
	assert.NoError(t, create(10))
	assert.True(t, apperr.IsValidation(create(11)))
}

func TestCreateReview_OnePerAuthorPerTitle(t *testing.T) {
	repo := newFakeRepository()
	service := NewReviewService(repo, testLogger())
	titleID := seedTitle(t, repo)
	author := seedUser(t, repo, "reader", authz.RoleUser)
	ctx := context.Background()

	_, err := service.Create(ctx, author, titleID, &request.CreateReviewRequest{Text: "first", Score: 7})
	require.NoError(t, err)

	_, err = service.Create(ctx, author, titleID, &request.CreateReviewRequest{Text: "second", Score: 8})
	assert.True(t, apperr.IsValidation(err))

	// Another title is fine.
	otherTitle := seedTitle(t, repo)
	_, err = service.Create(ctx, author, otherTitle, &request.CreateReviewRequest{Text: "other", Score: 8})
	assert.NoError(t, err)
}

func TestCreateReview_UnknownTitleIs404(t *testing.T) {
	repo := newFakeRepository()
	service := NewReviewService(repo, testLogger())
	author := seedUser(t, repo, "reader", authz.RoleUser)

	_, err := service.Create(context.Background(), author, uuid.New(), &request.CreateReviewRequest{
		Text: "t", Score: 5,
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateReview_AuthorCanRescore(t *testing.T) {
	repo := newFakeRepository()
	service := NewReviewService(repo, testLogger())
	titleID := seedTitle(t, repo)
	author := seedUser(t, repo, "reader", authz.RoleUser)
	ctx := context.Background()

	created, err := service.Create(ctx, author, titleID, &request.CreateReviewRequest{Text: "v1", Score: 5})
	require.NoError(t, err)

	// PATCH by the same author is not a duplicate.
	newScore := 8
	updated, err := service.Update(ctx, author, titleID, uuid.MustParse(created.ID), &request.UpdateReviewRequest{
		Score: &newScore,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Score)
	assert.Equal(t, "v1", updated.Text)
}

func TestModifyReview_Permissions(t *testing.T) {
	repo := newFakeRepository()
	service := NewReviewService(repo, testLogger())
	titleID := seedTitle(t, repo)
	author := seedUser(t, repo, "author", authz.RoleUser)
	other := seedUser(t, repo, "other", authz.RoleUser)
	moderator := seedUser(t, repo, "mod", authz.RoleModerator)
	ctx := context.Background()

	created, err := service.Create(ctx, author, titleID, &request.CreateReviewRequest{Text: "t", Score: 5})
	require.NoError(t, err)
	reviewID := uuid.MustParse(created.ID)

	text := "edited"
	_, err = service.Update(ctx, other, titleID, reviewID, &request.UpdateReviewRequest{Text: &text})
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

	_, err = service.Update(ctx, moderator, titleID, reviewID, &request.UpdateReviewRequest{Text: &text})
	assert.NoError(t, err)

	err = service.Delete(ctx, other, titleID, reviewID)
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

	err = service.Delete(ctx, moderator, titleID, reviewID)
	assert.NoError(t, err)
}

func TestGetReview_WrongTitleIs404(t *testing.T) {
	repo := newFakeRepository()
	service := NewReviewService(repo, testLogger())
	titleID := seedTitle(t, repo)
	otherTitle := seedTitle(t, repo)
	author := seedUser(t, repo, "reader", authz.RoleUser)
	ctx := context.Background()

	created, err := service.Create(ctx, author, titleID, &request.CreateReviewRequest{Text: "t", Score: 5})
	require.NoError(t, err)

	_, err = service.Get(ctx, otherTitle, uuid.MustParse(created.ID))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
