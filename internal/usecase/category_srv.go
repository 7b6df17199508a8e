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

type CategoryService interface {
	List(ctx context.Context, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error)
	Create(ctx context.Context, p authz.Principal, req *request.CreateCategoryRequest) (*response.CategoryResponse, error)
	Delete(ctx context.Context, p authz.Principal, slug string) error
}

type categoryService struct {
	categories repository.CategoryRepository
	log        *zap.Logger
}

func NewCategoryService(categories repository.CategoryRepository, log *zap.Logger) CategoryService {
	return &categoryService{
		categories: categories,
		log:        log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) List(ctx context.Context, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error) {
	categories, err := s.categories.List(ctx, search, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	total, err := s.categories.Count(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	categoryResponses := make([]response.CategoryResponse, len(categories))
	for i, category := range categories {
		categoryResponses[i] = response.CategoryToResponse(category)
	}

	return response.NewPaginatedResponse(categoryResponses, page.Page, page.Limit(), total), nil
}

func (s *categoryService) Create(ctx context.Context, p authz.Principal, req *request.CreateCategoryRequest) (*response.CategoryResponse, error) {
	if err := authorize(p, authz.ActionCreate, authz.ResourceCategory); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create category validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return nil, apperr.Validation("slug", "category with this slug already exists")
		}
		s.log.Error("Failed to create category",
			zap.Error(err),
			zap.String("slug", req.Slug),
		)
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("Category created", zap.String("slug", category.Slug))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, p authz.Principal, slug string) error {
	if err := authorize(p, authz.ActionDelete, authz.ResourceCategory); err != nil {
		return err
	}

	// Titles keep existing with a null category (ON DELETE SET NULL).
	if err := s.categories.DeleteBySlug(ctx, slug); err != nil {
		return err
	}

	return nil
}
