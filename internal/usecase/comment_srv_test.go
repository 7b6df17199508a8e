package usecase

import (
	"context"
	"testing"

	"yamdb-api/internal/data/repository"
	"yamdb-api/internal/dto/request"
	"yamdb-api/pkg/apperr"
	"yamdb-api/pkg/authz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReview(t *testing.T, repo *repository.Repository) (titleID, reviewID uuid.UUID) {
	t.Helper()

	titleID = seedTitle(t, repo)
	author := seedUser(t, repo, "review-author", authz.RoleUser)

	reviews := NewReviewService(repo, testLogger())
	created, err := reviews.Create(context.Background(), author, titleID, &request.CreateReviewRequest{
		Text: "the review", Score: 7,
	})
	require.NoError(t, err)

	return titleID, uuid.MustParse(created.ID)
}

func TestCreateComment_HappyPath(t *testing.T) {
	repo := newFakeRepository()
	service := NewCommentService(repo, testLogger())
	titleID, reviewID := seedReview(t, repo)
	commenter := seedUser(t, repo, "commenter", authz.RoleUser)

	comment, err := service.Create(context.Background(), commenter, titleID, reviewID, &request.CreateCommentRequest{
		Text: "agreed",
	})
	require.NoError(t, err)
	assert.Equal(t, "agreed", comment.Text)
	assert.Equal(t, "commenter", comment.Author)
}

func TestCreateComment_RequiresAuth(t *testing.T) {
	repo := newFakeRepository()
	service := NewCommentService(repo, testLogger())
	titleID, reviewID := seedReview(t, repo)

	_, err := service.Create(context.Background(), authz.Anonymous(), titleID, reviewID, &request.CreateCommentRequest{
		Text: "agreed",
	})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestCreateComment_UnknownReviewIs404(t *testing.T) {
	repo := newFakeRepository()
	service := NewCommentService(repo, testLogger())
	titleID := seedTitle(t, repo)
	commenter := seedUser(t, repo, "commenter", authz.RoleUser)

	_, err := service.Create(context.Background(), commenter, titleID, uuid.New(), &request.CreateCommentRequest{
		Text: "agreed",
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestModifyComment_Permissions(t *testing.T) {
	repo := newFakeRepository()
	service := NewCommentService(repo, testLogger())
	titleID, reviewID := seedReview(t, repo)
	author := seedUser(t, repo, "commenter", authz.RoleUser)
	other := seedUser(t, repo, "other", authz.RoleUser)
	admin := seedUser(t, repo, "boss", authz.RoleAdmin)
	ctx := context.Background()

	created, err := service.Create(ctx, author, titleID, reviewID, &request.CreateCommentRequest{Text: "v1"})
	require.NoError(t, err)
	commentID := uuid.MustParse(created.ID)

	text := "edited"
	_, err = service.Update(ctx, other, titleID, reviewID, commentID, &request.UpdateCommentRequest{Text: &text})
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

	updated, err := service.Update(ctx, author, titleID, reviewID, commentID, &request.UpdateCommentRequest{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	err = service.Delete(ctx, other, titleID, reviewID, commentID)
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

	err = service.Delete(ctx, admin, titleID, reviewID, commentID)
	assert.NoError(t, err)
}

func TestListComments_WrongTitleIs404(t *testing.T) {
	repo := newFakeRepository()
	service := NewCommentService(repo, testLogger())
	_, reviewID := seedReview(t, repo)
	otherTitle := seedTitle(t, repo)

	_, err := service.ListByReview(context.Background(), otherTitle, reviewID, &request.PaginatedRequest{Page: 1, PerPage: 10})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
