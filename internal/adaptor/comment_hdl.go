package adaptor

import (
	"encoding/json"
	"net/http"

	"yamdb-api/internal/dto/request"
	"yamdb-api/internal/usecase"
	"yamdb-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// commentPath pulls the title/review pair every comment route carries.
func commentPath(w http.ResponseWriter, r *http.Request) (titleID, reviewID uuid.UUID, ok bool) {
	titleID, ok = parseUUIDParam(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "title not found")
		return
	}
	reviewID, ok = parseUUIDParam(r, "reviewID")
	if !ok {
		utils.ResponseNotFound(w, "review not found")
		return
	}
	return titleID, reviewID, true
}

// ListComments handles GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := commentPath(w, r)
	if !ok {
		return
	}
	page := parsePagination(r)

	comments, err := h.service.ListByReview(r.Context(), titleID, reviewID, page)
	if err != nil {
		handleServiceError(w, h.log, err, "list comments")
		return
	}

	utils.ResponseSuccess(w, "Comments retrieved successfully", comments)
}

// GetComment handles GET .../comments/{commentID}
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := commentPath(w, r)
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(r, "commentID")
	if !ok {
		utils.ResponseNotFound(w, "comment not found")
		return
	}

	comment, err := h.service.Get(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		handleServiceError(w, h.log, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "Comment retrieved successfully", comment)
}

// CreateComment handles POST .../comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	p := utils.GetPrincipal(r.Context())

	titleID, reviewID, ok := commentPath(w, r)
	if !ok {
		return
	}

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.Create(r.Context(), p, titleID, reviewID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "Comment created successfully", comment)
}

// UpdateComment handles PATCH .../comments/{commentID}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	p := utils.GetPrincipal(r.Context())

	titleID, reviewID, ok := commentPath(w, r)
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(r, "commentID")
	if !ok {
		utils.ResponseNotFound(w, "comment not found")
		return
	}

	var req request.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.Update(r.Context(), p, titleID, reviewID, commentID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "Comment updated successfully", comment)
}

// DeleteComment handles DELETE .../comments/{commentID}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	p := utils.GetPrincipal(r.Context())

	titleID, reviewID, ok := commentPath(w, r)
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(r, "commentID")
	if !ok {
		utils.ResponseNotFound(w, "comment not found")
		return
	}

	if err := h.service.Delete(r.Context(), p, titleID, reviewID, commentID); err != nil {
		handleServiceError(w, h.log, err, "delete comment")
		return
	}

	utils.ResponseNoContent(w)
}
