package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/base-angewandte/image-backend-sub000/internal/service"
	"github.com/base-angewandte/image-backend-sub000/pkg/httputil"
	"github.com/base-angewandte/image-backend-sub000/pkg/middleware"
)

// AutocompleteHandler handles HTTP requests for search-form suggestions.
type AutocompleteHandler struct {
	service *service.AutocompleteService
	logger  *slog.Logger
}

// NewAutocompleteHandler creates a new autocomplete HTTP handler.
func NewAutocompleteHandler(svc *service.AutocompleteService, logger *slog.Logger) *AutocompleteHandler {
	return &AutocompleteHandler{
		service: svc,
		logger:  logger,
	}
}

// Suggest handles GET /api/v1/autocomplete
// @Summary Autocomplete suggestions
// @Description Returns typed suggestions for the search form. type is a comma-separated subset of titles, artists, users, keywords, locations, user_albums_editable.
// @Tags search
// @Produce json
// @Param q query string true "Search fragment"
// @Param type query string true "Comma-separated suggestion types"
// @Param limit query int false "Suggestions per type" default(10)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/autocomplete [get]
func (h *AutocompleteHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	var types []string
	for _, t := range strings.Split(r.URL.Query().Get("type"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "limit must be a valid positive integer"},
			})
			return
		}
		limit = n
	}

	userID := middleware.UserIDFromContext(r.Context())

	result, err := h.service.Suggest(r.Context(), userID, q, types, langFromRequest(r), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
