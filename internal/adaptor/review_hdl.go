package adaptor

import (
	"encoding/json"
	"net/http"

	"yamdb-api/internal/dto/request"
	"yamdb-api/internal/usecase"
	"yamdb-api/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// ListReviews handles GET /api/v1/titles/{titleID}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseUUIDParam(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "title not found")
		return
	}
	page := parsePagination(r)

	reviews, err := h.service.ListByTitle(r.Context(), titleID, page)
	if err != nil {
		handleServiceError(w, h.log, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved successfully", reviews)
}

// GetReview handles GET /api/v1/titles/{titleID}/reviews/{reviewID}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseUUIDParam(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "title not found")
		return
	}
	reviewID, ok := parseUUIDParam(r, "reviewID")
	if !ok {
		utils.ResponseNotFound(w, "review not found")
		return
	}

	review, err := h.service.Get(r.Context(), titleID, reviewID)
	if err != nil {
		handleServiceError(w, h.log, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "Review retrieved successfully", review)
}

// CreateReview handles POST /api/v1/titles/{titleID}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	p := utils.GetPrincipal(r.Context())

	titleID, ok := parseUUIDParam(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "title not found")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.Create(r.Context(), p, titleID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created successfully", review)
}

// UpdateReview handles PATCH /api/v1/titles/{titleID}/reviews/{reviewID}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	p := utils.GetPrincipal(r.Context())

	titleID, ok := parseUUIDParam(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "title not found")
		return
	}
	reviewID, ok := parseUUIDParam(r, "reviewID")
	if !ok {
		utils.ResponseNotFound(w, "review not found")
		return
	}

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.Update(r.Context(), p, titleID, reviewID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully", review)
}

// DeleteReview handles DELETE /api/v1/titles/{titleID}/reviews/{reviewID}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	p := utils.GetPrincipal(r.Context())

	titleID, ok := parseUUIDParam(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "title not found")
		return
	}
	reviewID, ok := parseUUIDParam(r, "reviewID")
	if !ok {
		utils.ResponseNotFound(w, "review not found")
		return
	}

	if err := h.service.Delete(r.Context(), p, titleID, reviewID); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}
