package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
	"github.com/base-angewandte/image-backend-sub000/pkg/httputil"
)

// VocabularyHandler exposes read access to the keyword and location trees.
// The filter widgets resolve autocomplete references through these endpoints.
type VocabularyHandler struct {
	taxonomy repository.TaxonomyRepository
	logger   *slog.Logger
}

// NewVocabularyHandler creates a new vocabulary HTTP handler.
func NewVocabularyHandler(taxonomy repository.TaxonomyRepository, logger *slog.Logger) *VocabularyHandler {
	return &VocabularyHandler{
		taxonomy: taxonomy,
		logger:   logger,
	}
}

func parseVocabularyID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, r, apperrors.InvalidInput("id must be a positive integer"), logger)
		return 0, false
	}
	return id, true
}

// GetKeyword handles GET /api/v1/vocabulary/keywords/{id}
// @Summary Get a keyword node
// @Tags vocabulary
// @Produce json
// @Param id path int true "Keyword ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/vocabulary/keywords/{id} [get]
func (h *VocabularyHandler) GetKeyword(w http.ResponseWriter, r *http.Request) {
	id, ok := parseVocabularyID(w, r, h.logger)
	if !ok {
		return
	}

	keyword, err := h.taxonomy.GetKeyword(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: keyword})
}

// GetKeywordDescendants handles GET /api/v1/vocabulary/keywords/{id}/descendants
// @Summary Get a keyword subtree
// @Description Returns the IDs of the keyword and all its descendants
// @Tags vocabulary
// @Produce json
// @Param id path int true "Keyword ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/vocabulary/keywords/{id}/descendants [get]
func (h *VocabularyHandler) GetKeywordDescendants(w http.ResponseWriter, r *http.Request) {
	id, ok := parseVocabularyID(w, r, h.logger)
	if !ok {
		return
	}

	ids, err := h.taxonomy.KeywordDescendants(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ids})
}

// GetLocation handles GET /api/v1/vocabulary/locations/{id}
// @Summary Get a location node
// @Tags vocabulary
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/vocabulary/locations/{id} [get]
func (h *VocabularyHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseVocabularyID(w, r, h.logger)
	if !ok {
		return
	}

	location, err := h.taxonomy.GetLocation(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: location})
}

// GetLocationDescendants handles GET /api/v1/vocabulary/locations/{id}/descendants
// @Summary Get a location subtree
// @Description Returns the IDs of the location and all its descendants
// @Tags vocabulary
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/vocabulary/locations/{id}/descendants [get]
func (h *VocabularyHandler) GetLocationDescendants(w http.ResponseWriter, r *http.Request) {
	id, ok := parseVocabularyID(w, r, h.logger)
	if !ok {
		return
	}

	ids, err := h.taxonomy.LocationDescendants(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ids})
}
