package usecase

import (
	"context"
	"fmt"
	"time"

	"yamdb-api/internal/data/entity"
	"yamdb-api/internal/data/repository"
	"yamdb-api/internal/dto/request"
	"yamdb-api/internal/dto/response"
	"yamdb-api/pkg/apperr"
	"yamdb-api/pkg/authz"
	"yamdb-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Comments hang off a review which itself hangs off a title, so the full
// title/review chain is validated on every operation.
type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error)
	Create(ctx context.Context, p authz.Principal, titleID, reviewID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	Update(ctx context.Context, p authz.Principal, titleID, reviewID, commentID uuid.UUID, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	Delete(ctx context.Context, p authz.Principal, titleID, reviewID, commentID uuid.UUID) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, reviewID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	commentResponses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		resp, err := s.toResponse(ctx, comment)
		if err != nil {
			return nil, err
		}
		commentResponses[i] = *resp
	}

	return response.NewPaginatedResponse(commentResponses, page.Page, page.Limit(), total), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error) {
	comment, err := s.findInReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, comment)
}

func (s *commentService) Create(ctx context.Context, p authz.Principal, titleID, reviewID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if err := authorize(p, authz.ActionCreate, authz.ResourceComment); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &entity.Comment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReviewID: reviewID,
		AuthorID: p.ID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
			zap.String("author_id", p.ID.String()),
		)
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", reviewID.String()),
	)

	return s.toResponse(ctx, comment)
}

func (s *commentService) Update(ctx context.Context, p authz.Principal, titleID, reviewID, commentID uuid.UUID, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	comment, err := s.findInReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := authorizeModify(p, comment.AuthorID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}
	comment.UpdatedAt = time.Now()

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		s.log.Error("Failed to update comment",
			zap.Error(err),
			zap.String("comment_id", commentID.String()),
		)
		return nil, err
	}

	return s.toResponse(ctx, comment)
}

func (s *commentService) Delete(ctx context.Context, p authz.Principal, titleID, reviewID, commentID uuid.UUID) error {
	comment, err := s.findInReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := authorizeModify(p, comment.AuthorID); err != nil {
		return err
	}

	if err := s.repo.Comment.Delete(ctx, commentID); err != nil {
		s.log.Error("Failed to delete comment",
			zap.Error(err),
			zap.String("comment_id", commentID.String()),
		)
		return err
	}

	return nil
}

func (s *commentService) ensureReview(ctx context.Context, titleID, reviewID uuid.UUID) error {
	title, err := s.repo.Title.FindByID(ctx, titleID)
	if err != nil {
		return fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return apperr.NotFound("title", titleID.String())
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.TitleID != titleID {
		return apperr.NotFound("review", reviewID.String())
	}

	return nil
}

func (s *commentService) findInReview(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*entity.Comment, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment.FindByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment == nil || comment.ReviewID != reviewID {
		return nil, apperr.NotFound("comment", commentID.String())
	}

	return comment, nil
}

func (s *commentService) toResponse(ctx context.Context, comment *entity.Comment) (*response.CommentResponse, error) {
	author, err := s.repo.User.FindByID(ctx, comment.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("find comment author: %w", err)
	}

	username := ""
	if author != nil {
		username = author.Username
	}

	resp := response.CommentToResponse(comment, username)
	return &resp, nil
}
