package usecase

import (
	"context"
	"errors"
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

// Reviews are always addressed through their title, so every operation
// checks the title exists and, for single-review operations, that the
// review actually belongs to it.
type ReviewService interface {
	ListByTitle(ctx context.Context, titleID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error)
	Create(ctx context.Context, p authz.Principal, titleID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Update(ctx context.Context, p authz.Principal, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, p authz.Principal, titleID, reviewID uuid.UUID) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, titleID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByTitleID(ctx, titleID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		resp, err := s.toResponse(ctx, review)
		if err != nil {
			return nil, err
		}
		reviewResponses[i] = *resp
	}

	return response.NewPaginatedResponse(reviewResponses, page.Page, page.Limit(), total), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error) {
	review, err := s.findInTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, review)
}

func (s *reviewService) Create(ctx context.Context, p authz.Principal, titleID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := authorize(p, authz.ActionCreate, authz.ResourceReview); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}

	// Fast-path duplicate check; the unique constraint below is the
	// authoritative one.
	existing, err := s.repo.Review.FindByAuthorAndTitle(ctx, p.ID, titleID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, apperr.Validation("title", "you have already reviewed this title")
	}

	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TitleID:  titleID,
		AuthorID: p.ID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return nil, apperr.Validation("title", "you have already reviewed this title")
		}
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
			zap.String("author_id", p.ID.String()),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", titleID.String()),
	)

	return s.toResponse(ctx, review)
}

func (s *reviewService) Update(ctx context.Context, p authz.Principal, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	review, err := s.findInTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := authorizeModify(p, review.AuthorID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
		)
		return nil, err
	}

	return s.toResponse(ctx, review)
}

func (s *reviewService) Delete(ctx context.Context, p authz.Principal, titleID, reviewID uuid.UUID) error {
	review, err := s.findInTitle(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := authorizeModify(p, review.AuthorID); err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
		)
		return err
	}

	return nil
}

func (s *reviewService) ensureTitle(ctx context.Context, titleID uuid.UUID) error {
	title, err := s.repo.Title.FindByID(ctx, titleID)
	if err != nil {
		return fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return apperr.NotFound("title", titleID.String())
	}
	return nil
}

// findInTitle loads a review and verifies it belongs to the given title.
// A review reached through the wrong title is a 404, not a leak.
func (s *reviewService) findInTitle(ctx context.Context, titleID, reviewID uuid.UUID) (*entity.Review, error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.TitleID != titleID {
		return nil, apperr.NotFound("review", reviewID.String())
	}

	return review, nil
}

func (s *reviewService) toResponse(ctx context.Context, review *entity.Review) (*response.ReviewResponse, error) {
	author, err := s.repo.User.FindByID(ctx, review.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("find review author: %w", err)
	}

	username := ""
	if author != nil {
		username = author.Username
	}

	resp := response.ReviewToResponse(review, username)
	return &resp, nil
}
