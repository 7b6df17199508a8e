package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"yamdb-api/internal/data/repository"
	"yamdb-api/internal/dto/request"
	"yamdb-api/internal/usecase"
	"yamdb-api/pkg/utils"

	"go.uber.org/zap"
)

type TitleHandler struct {
	service usecase.TitleService
	log     *zap.Logger
}

func NewTitleHandler(service usecase.TitleService, log *zap.Logger) *TitleHandler {
	return &TitleHandler{
		service: service,
		log:     log.With(zap.String("handler", "title")),
	}
}

// ListTitles handles GET /api/v1/titles
func (h *TitleHandler) ListTitles(w http.ResponseWriter, r *http.Request) {
	page := parsePagination(r)
	filter := parseTitleFilter(r)

	titles, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		handleServiceError(w, h.log, err, "list titles")
		return
	}

	utils.ResponseSuccess(w, "Titles retrieved successfully", titles)
}

// GetTitle handles GET /api/v1/titles/{titleID}
func (h *TitleHandler) GetTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "title not found")
		return
	}

	title, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get title")
		return
	}

	utils.ResponseSuccess(w, "Title retrieved successfully", title)
}

// CreateTitle handles POST /api/v1/titles
func (h *TitleHandler) CreateTitle(w http.ResponseWriter, r *http.Request) {
	p := utils.GetPrincipal(r.Context())

	var req request.CreateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	title, err := h.service.Create(r.Context(), p, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create title")
		return
	}

	utils.ResponseCreated(w, "Title created successfully", title)
}

// UpdateTitle handles PATCH /api/v1/titles/{titleID}
func (h *TitleHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	p := utils.GetPrincipal(r.Context())

	id, ok := parseUUIDParam(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "title not found")
		return
	}

	var req request.UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	title, err := h.service.Update(r.Context(), p, id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update title")
		return
	}

	utils.ResponseSuccess(w, "Title updated successfully", title)
}

// DeleteTitle handles DELETE /api/v1/titles/{titleID}
func (h *TitleHandler) DeleteTitle(w http.ResponseWriter, r *http.Request) {
	p := utils.GetPrincipal(r.Context())

	id, ok := parseUUIDParam(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "title not found")
		return
	}

	if err := h.service.Delete(r.Context(), p, id); err != nil {
		handleServiceError(w, h.log, err, "delete title")
		return
	}

	utils.ResponseNoContent(w)
}

// parseTitleFilter reads the listing filters: year, name, and
// comma-separated genre/category slugs.
func parseTitleFilter(r *http.Request) repository.TitleFilter {
	query := r.URL.Query()

	var filter repository.TitleFilter
	filter.Name = query.Get("name")

	if yearStr := query.Get("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filter.Year = &year
		}
	}
	if genres := query.Get("genre"); genres != "" {
		filter.GenreSlugs = splitSlugs(genres)
	}
	if categories := query.Get("category"); categories != "" {
		filter.CategorySlugs = splitSlugs(categories)
	}

	return filter
}

func splitSlugs(value string) []string {
	parts := strings.Split(value, ",")
	slugs := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			slugs = append(slugs, s)
		}
	}
	return slugs
}
