package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/base-angewandte/image-backend-sub000/internal/search"
	"github.com/base-angewandte/image-backend-sub000/internal/service"
	"github.com/base-angewandte/image-backend-sub000/pkg/httputil"
)

// SearchHandler handles HTTP requests for the ranked artwork search.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// Search handles POST /api/v1/search
// @Summary Search artworks
// @Description Runs the ranked full-text search over published artworks with optional facet filters
// @Tags search
// @Accept json
// @Produce json
// @Param request body search.Request true "Search request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/search [post]
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req search.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	result, err := h.service.Search(r.Context(), &req, langFromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Filters handles GET /api/v1/search/filters
// @Summary Get the facet schema
// @Description Returns the static facet schema the frontend renders the search form from
// @Tags search
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/search/filters [get]
func (h *SearchHandler) Filters(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Filters()})
}
