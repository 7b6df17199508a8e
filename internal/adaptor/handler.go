package adaptor

import (
	"errors"
	"net/http"

	"yamdb-api/internal/dto/request"
	"yamdb-api/internal/usecase"
	"yamdb-api/pkg/apperr"
	"yamdb-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *CategoryHandler
	Genre    *GenreHandler
	Title    *TitleHandler
	Review   *ReviewHandler
	Comment  *CommentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Category: NewCategoryHandler(service.Category, log),
		Genre:    NewGenreHandler(service.Genre, log),
		Title:    NewTitleHandler(service.Title, log),
		Review:   NewReviewHandler(service.Review, log),
		Comment:  NewCommentHandler(service.Comment, log),
	}
}

// handleServiceError translates service errors to HTTP in one place.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var ve *apperr.ValidationError

	switch {
	case errors.As(err, &ve):
		log.Warn(operation+" failed validation", zap.Error(err))
		utils.ResponseBadRequest(w, ve.Message, map[string]string{ve.Field: ve.Message})

	case errors.Is(err, apperr.ErrAlreadyExists):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, apperr.ErrUnauthenticated):
		log.Warn(operation+" failed - unauthenticated")
		utils.ResponseUnauthorized(w, "Authentication required")

	case errors.Is(err, apperr.ErrPermissionDenied):
		log.Warn(operation + " failed - permission denied")
		utils.ResponseForbidden(w, "You do not have permission to perform this action")

	case errors.Is(err, apperr.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// parsePagination reads page/per_page query parameters with defaults.
func parsePagination(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

// parseUUIDParam reads a chi URL parameter as a UUID. A malformed ID can
// never match anything, so it reads as not found.
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
