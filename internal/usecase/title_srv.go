package usecase

import (
	"context"
	"fmt"
	"math"
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

// earliestYear is the year of the first public film screening. Nothing
// reviewable predates it.
const earliestYear = 1895

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	Get(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error)
	Create(ctx context.Context, p authz.Principal, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	Update(ctx context.Context, p authz.Principal, id uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	titles, err := s.repo.Title.List(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	total, err := s.repo.Title.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count titles: %w", err)
	}

	titleResponses := make([]response.TitleResponse, len(titles))
	for i, title := range titles {
		resp, err := s.buildTitleResponse(ctx, title)
		if err != nil {
			return nil, err
		}
		titleResponses[i] = *resp
	}

	return response.NewPaginatedResponse(titleResponses, page.Page, page.Limit(), total), nil
}

func (s *titleService) Get(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error) {
	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, apperr.NotFound("title", id.String())
	}

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) Create(ctx context.Context, p authz.Principal, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	if err := authorize(p, authz.ActionCreate, authz.ResourceTitle); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create title validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genreIDs, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
	}

	if err := s.repo.Title.Create(ctx, title); err != nil {
		s.log.Error("Failed to create title",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create title: %w", err)
	}

	if err := s.repo.GenreTitle.SetTitleGenres(ctx, title.ID, genreIDs); err != nil {
		return nil, fmt.Errorf("set title genres: %w", err)
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name),
	)

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) Update(ctx context.Context, p authz.Principal, id uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	if err := authorize(p, authz.ActionUpdate, authz.ResourceTitle); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update title validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, apperr.NotFound("title", id.String())
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}
	title.UpdatedAt = time.Now()

	if err := s.repo.Title.Update(ctx, title); err != nil {
		s.log.Error("Failed to update title",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return nil, err
	}

	if req.Genre != nil {
		genreIDs, err := s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.repo.GenreTitle.SetTitleGenres(ctx, title.ID, genreIDs); err != nil {
			return nil, fmt.Errorf("set title genres: %w", err)
		}
	}

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := authorize(p, authz.ActionDelete, authz.ResourceTitle); err != nil {
		return err
	}

	// Reviews and genre links go with the title (ON DELETE CASCADE).
	return s.repo.Title.Delete(ctx, id)
}

// buildTitleResponse assembles the read shape: derived rating, genre list
// and category resolved per title.
func (s *titleService) buildTitleResponse(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	avg, err := s.repo.Review.AverageScoreByTitle(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("average score for title %s: %w", title.ID.String(), err)
	}

	var rating *int
	if avg != nil {
		rounded := roundHalfUp(*avg)
		rating = &rounded
	}

	genres, err := s.repo.Genre.FindByTitleID(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("genres for title %s: %w", title.ID.String(), err)
	}

	var category *entity.Category
	if title.CategoryID != nil {
		category, err = s.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("category for title %s: %w", title.ID.String(), err)
		}
	}

	resp := response.TitleToResponse(title, rating, genres, category)
	return &resp, nil
}

// resolveCategory looks up the category a write refers to by slug.
func (s *titleService) resolveCategory(ctx context.Context, slug string) (*entity.Category, error) {
	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if category == nil {
		return nil, apperr.Validation("category", fmt.Sprintf("category with slug '%s' does not exist", slug))
	}
	return category, nil
}

// resolveGenres maps genre slugs to IDs, collapsing duplicates.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]uuid.UUID, error) {
	seen := make(map[string]bool, len(slugs))
	ids := make([]uuid.UUID, 0, len(slugs))
	for _, slug := range slugs {
		if seen[slug] {
			continue
		}
		seen[slug] = true

		genre, err := s.repo.Genre.FindBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("find genre: %w", err)
		}
		if genre == nil {
			return nil, apperr.Validation("genre", fmt.Sprintf("genre with slug '%s' does not exist", slug))
		}
		ids = append(ids, genre.ID)
	}
	return ids, nil
}

func validateYear(year int) error {
	if year < earliestYear || year > time.Now().Year() {
		return apperr.Validation("year", fmt.Sprintf("year must be between %d and %d", earliestYear, time.Now().Year()))
	}
	return nil
}

// roundHalfUp rounds the average score to the nearest integer, halves up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
