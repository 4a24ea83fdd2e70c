package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	"github.com/base-angewandte/image-backend-sub000/internal/service"
	"github.com/base-angewandte/image-backend-sub000/pkg/httputil"
	"github.com/base-angewandte/image-backend-sub000/pkg/validator"
)

// ArtworkHandler handles HTTP requests for the curator-facing artwork endpoints.
type ArtworkHandler struct {
	service *service.ArtworkService
	logger  *slog.Logger
}

// NewArtworkHandler creates a new artwork HTTP handler.
func NewArtworkHandler(svc *service.ArtworkService, logger *slog.Logger) *ArtworkHandler {
	return &ArtworkHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateArtworkRequest is the JSON request body for creating an artwork.
type CreateArtworkRequest struct {
	Title                 string  `json:"title" validate:"required,min=1,max=500"`
	TitleEnglish          string  `json:"title_english" validate:"max=500"`
	TitleComment          string  `json:"title_comment"`
	Date                  string  `json:"date" validate:"max=319"`
	DateYearFrom          *int    `json:"date_year_from"`
	DateYearTo            *int    `json:"date_year_to"`
	MaterialDescriptionDE string  `json:"material_description_de"`
	MaterialDescriptionEN string  `json:"material_description_en"`
	DimensionsDisplay     string  `json:"dimensions_display"`
	CommentsDE            string  `json:"comments_de"`
	CommentsEN            string  `json:"comments_en"`
	Credits               string  `json:"credits"`
	CreditsLink           string  `json:"credits_link" validate:"omitempty,url"`
	Link                  string  `json:"link" validate:"omitempty,url"`
	LocationID            *int64  `json:"location_id" validate:"omitempty,gt=0"`
	ImageOriginal         string  `json:"image_original"`
	ImageFullsize         string  `json:"image_fullsize"`
	Published             bool    `json:"published"`
	Checked               bool    `json:"checked"`
	ArtistIDs             []int64 `json:"artists" validate:"dive,gt=0"`
	PhotographerIDs       []int64 `json:"photographers" validate:"dive,gt=0"`
	AuthorIDs             []int64 `json:"authors" validate:"dive,gt=0"`
	GraphicDesignerIDs    []int64 `json:"graphic_designers" validate:"dive,gt=0"`
	KeywordIDs            []int64 `json:"keywords" validate:"dive,gt=0"`
	MaterialIDs           []int64 `json:"materials" validate:"dive,gt=0"`
	PlaceOfProductionIDs  []int64 `json:"place_of_production" validate:"dive,gt=0"`
}

// UpdateArtworkRequest is the JSON request body for a partial artwork update.
type UpdateArtworkRequest struct {
	Title                 *string `json:"title" validate:"omitempty,min=1,max=500"`
	TitleEnglish          *string `json:"title_english" validate:"omitempty,max=500"`
	TitleComment          *string `json:"title_comment"`
	Date                  *string `json:"date" validate:"omitempty,max=319"`
	DateYearFrom          *int    `json:"date_year_from"`
	DateYearTo            *int    `json:"date_year_to"`
	MaterialDescriptionDE *string `json:"material_description_de"`
	MaterialDescriptionEN *string `json:"material_description_en"`
	DimensionsDisplay     *string `json:"dimensions_display"`
	CommentsDE            *string `json:"comments_de"`
	CommentsEN            *string `json:"comments_en"`
	Credits               *string `json:"credits"`
	CreditsLink           *string `json:"credits_link" validate:"omitempty,url"`
	Link                  *string `json:"link" validate:"omitempty,url"`
	LocationID            *int64  `json:"location_id" validate:"omitempty,gt=0"`
	ImageOriginal         *string `json:"image_original"`
	ImageFullsize         *string `json:"image_fullsize"`
	Published             *bool   `json:"published"`
	Checked               *bool   `json:"checked"`
	ArtistIDs             []int64 `json:"artists" validate:"dive,gt=0"`
	PhotographerIDs       []int64 `json:"photographers" validate:"dive,gt=0"`
	AuthorIDs             []int64 `json:"authors" validate:"dive,gt=0"`
	GraphicDesignerIDs    []int64 `json:"graphic_designers" validate:"dive,gt=0"`
	KeywordIDs            []int64 `json:"keywords" validate:"dive,gt=0"`
	MaterialIDs           []int64 `json:"materials" validate:"dive,gt=0"`
	PlaceOfProductionIDs  []int64 `json:"place_of_production" validate:"dive,gt=0"`
}

// --- Handlers ---

// ListArtworks handles GET /api/v1/artworks
// @Summary List published artworks
// @Description Returns a paginated list of published artworks
// @Tags artworks
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/artworks [get]
func (h *ArtworkHandler) ListArtworks(w http.ResponseWriter, r *http.Request) {
	filter := repository.ArtworkFilter{
		OnlyPublished: true,
		Page:          1,
		PerPage:       20,
	}

	if v := r.URL.Query().Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "page must be a valid positive integer"},
			})
			return
		}
		filter.Page = page
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		perPage, err := strconv.Atoi(v)
		if err != nil || perPage < 1 || perPage > 100 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "per_page must be a valid integer between 1 and 100"},
			})
			return
		}
		filter.PerPage = perPage
	}

	artworks, total, err := h.service.ListArtworks(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(artworks, total, filter.Page, filter.PerPage))
}

// GetArtwork handles GET /api/v1/artworks/{id}
// @Summary Get artwork by ID
// @Tags artworks
// @Produce json
// @Param id path string true "Artwork UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/artworks/{id} [get]
func (h *ArtworkHandler) GetArtwork(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	artwork, err := h.service.GetArtwork(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: artwork})
}

// CreateArtwork handles POST /api/v1/artworks
// @Summary Create an artwork
// @Tags artworks
// @Accept json
// @Produce json
// @Param request body CreateArtworkRequest true "Artwork to create"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/artworks [post]
func (h *ArtworkHandler) CreateArtwork(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateArtworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.CreateArtworkInput{
		Title:                 req.Title,
		TitleEnglish:          req.TitleEnglish,
		TitleComment:          req.TitleComment,
		Date:                  req.Date,
		DateYearFrom:          req.DateYearFrom,
		DateYearTo:            req.DateYearTo,
		MaterialDescriptionDE: req.MaterialDescriptionDE,
		MaterialDescriptionEN: req.MaterialDescriptionEN,
		DimensionsDisplay:     req.DimensionsDisplay,
		CommentsDE:            req.CommentsDE,
		CommentsEN:            req.CommentsEN,
		Credits:               req.Credits,
		CreditsLink:           req.CreditsLink,
		Link:                  req.Link,
		LocationID:            req.LocationID,
		ImageOriginal:         req.ImageOriginal,
		ImageFullsize:         req.ImageFullsize,
		Published:             req.Published,
		Checked:               req.Checked,
		ArtistIDs:             req.ArtistIDs,
		PhotographerIDs:       req.PhotographerIDs,
		AuthorIDs:             req.AuthorIDs,
		GraphicDesignerIDs:    req.GraphicDesignerIDs,
		KeywordIDs:            req.KeywordIDs,
		MaterialIDs:           req.MaterialIDs,
		PlaceOfProductionIDs:  req.PlaceOfProductionIDs,
	}

	artwork, err := h.service.CreateArtwork(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: artwork})
}

// UpdateArtwork handles PUT /api/v1/artworks/{id}
// @Summary Update an artwork
// @Description Partially updates an artwork, all fields are optional
// @Tags artworks
// @Accept json
// @Produce json
// @Param id path string true "Artwork UUID"
// @Param request body UpdateArtworkRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/artworks/{id} [put]
func (h *ArtworkHandler) UpdateArtwork(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateArtworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.UpdateArtworkInput{
		Title:                 req.Title,
		TitleEnglish:          req.TitleEnglish,
		TitleComment:          req.TitleComment,
		Date:                  req.Date,
		DateYearFrom:          req.DateYearFrom,
		DateYearTo:            req.DateYearTo,
		MaterialDescriptionDE: req.MaterialDescriptionDE,
		MaterialDescriptionEN: req.MaterialDescriptionEN,
		DimensionsDisplay:     req.DimensionsDisplay,
		CommentsDE:            req.CommentsDE,
		CommentsEN:            req.CommentsEN,
		Credits:               req.Credits,
		CreditsLink:           req.CreditsLink,
		Link:                  req.Link,
		LocationID:            req.LocationID,
		ImageOriginal:         req.ImageOriginal,
		ImageFullsize:         req.ImageFullsize,
		Published:             req.Published,
		Checked:               req.Checked,
		ArtistIDs:             req.ArtistIDs,
		PhotographerIDs:       req.PhotographerIDs,
		AuthorIDs:             req.AuthorIDs,
		GraphicDesignerIDs:    req.GraphicDesignerIDs,
		KeywordIDs:            req.KeywordIDs,
		MaterialIDs:           req.MaterialIDs,
		PlaceOfProductionIDs:  req.PlaceOfProductionIDs,
	}

	artwork, err := h.service.UpdateArtwork(r.Context(), id.String(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: artwork})
}

// DeleteArtwork handles DELETE /api/v1/artworks/{id}
// @Summary Delete an artwork
// @Tags artworks
// @Produce json
// @Param id path string true "Artwork UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/artworks/{id} [delete]
func (h *ArtworkHandler) DeleteArtwork(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteArtwork(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}
