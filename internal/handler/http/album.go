package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/base-angewandte/image-backend-sub000/internal/service"
	"github.com/base-angewandte/image-backend-sub000/pkg/httputil"
	"github.com/base-angewandte/image-backend-sub000/pkg/middleware"
	"github.com/base-angewandte/image-backend-sub000/pkg/validator"
)

// AlbumHandler handles HTTP requests for album curation and sharing.
type AlbumHandler struct {
	service *service.AlbumService
	logger  *slog.Logger
}

// NewAlbumHandler creates a new album HTTP handler.
func NewAlbumHandler(svc *service.AlbumService, logger *slog.Logger) *AlbumHandler {
	return &AlbumHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AlbumRequest is the JSON request body for creating or renaming an album.
type AlbumRequest struct {
	Title string `json:"title" validate:"required,min=1,max=255"`
}

// AlbumArtworkRequest is the JSON request body for album membership changes.
type AlbumArtworkRequest struct {
	ArtworkID string `json:"artwork_id" validate:"required,uuid"`
}

// ShareRequest is the JSON request body for granting album access.
type ShareRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	Permission string `json:"permission" validate:"required,oneof=VIEW EDIT"`
}

// --- Handlers ---

// ListAlbums handles GET /api/v1/albums
// @Summary List the user's albums
// @Description Returns all albums the user owns or has been granted access to
// @Tags albums
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/albums [get]
func (h *AlbumHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	albums, err := h.service.ListAlbums(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: albums})
}

// GetAlbum handles GET /api/v1/albums/{id}
// @Summary Get album by ID
// @Tags albums
// @Produce json
// @Param id path string true "Album UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/albums/{id} [get]
func (h *AlbumHandler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	album, err := h.service.GetAlbum(r.Context(), userID, id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: album})
}

// CreateAlbum handles POST /api/v1/albums
// @Summary Create an album
// @Tags albums
// @Accept json
// @Produce json
// @Param request body AlbumRequest true "Album to create"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/albums [post]
func (h *AlbumHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	req, ok := decodeAlbumRequest(w, r)
	if !ok {
		return
	}

	album, err := h.service.CreateAlbum(r.Context(), userID, req.Title)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: album})
}

// UpdateAlbum handles PUT /api/v1/albums/{id}
// @Summary Rename an album
// @Tags albums
// @Accept json
// @Produce json
// @Param id path string true "Album UUID"
// @Param request body AlbumRequest true "New title"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/albums/{id} [put]
func (h *AlbumHandler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	req, ok := decodeAlbumRequest(w, r)
	if !ok {
		return
	}

	album, err := h.service.UpdateAlbum(r.Context(), userID, id.String(), req.Title)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: album})
}

// DeleteAlbum handles DELETE /api/v1/albums/{id}
// @Summary Delete an album
// @Description Deletes an album. Only the owner may delete.
// @Tags albums
// @Produce json
// @Param id path string true "Album UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/albums/{id} [delete]
func (h *AlbumHandler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	if err := h.service.DeleteAlbum(r.Context(), userID, id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}

// AppendArtwork handles POST /api/v1/albums/{id}/append-artwork
// @Summary Append an artwork to an album
// @Description Adds an artwork at the end of the album. Appending twice is a no-op.
// @Tags albums
// @Accept json
// @Produce json
// @Param id path string true "Album UUID"
// @Param request body AlbumArtworkRequest true "Artwork to append"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/albums/{id}/append-artwork [post]
func (h *AlbumHandler) AppendArtwork(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	req, ok := decodeAlbumArtworkRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.AppendArtwork(r.Context(), userID, id.String(), req.ArtworkID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveArtwork handles POST /api/v1/albums/{id}/remove-artwork
// @Summary Remove an artwork from an album
// @Tags albums
// @Accept json
// @Produce json
// @Param id path string true "Album UUID"
// @Param request body AlbumArtworkRequest true "Artwork to remove"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/albums/{id}/remove-artwork [post]
func (h *AlbumHandler) RemoveArtwork(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	req, ok := decodeAlbumArtworkRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveArtwork(r.Context(), userID, id.String(), req.ArtworkID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPermissions handles GET /api/v1/albums/{id}/permissions
// @Summary List album permissions
// @Description Returns the permission entries the requesting user may see
// @Tags albums
// @Produce json
// @Param id path string true "Album UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/albums/{id}/permissions [get]
func (h *AlbumHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	perms, err := h.service.Permissions(r.Context(), userID, id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: perms})
}

// Share handles POST /api/v1/albums/{id}/permissions
// @Summary Share an album
// @Description Grants another user VIEW or EDIT access. Only the owner may share.
// @Tags albums
// @Accept json
// @Produce json
// @Param id path string true "Album UUID"
// @Param request body ShareRequest true "Grant to apply"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/albums/{id}/permissions [post]
func (h *AlbumHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req ShareRequest
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

	perm, err := h.service.Share(r.Context(), userID, id.String(), req.UserID, req.Permission)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: perm})
}

// Unshare handles DELETE /api/v1/albums/{id}/permissions/{userId}
// @Summary Revoke album access
// @Description The owner may revoke anyone, a sharee only themselves
// @Tags albums
// @Produce json
// @Param id path string true "Album UUID"
// @Param userId path string true "User whose access to revoke"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/albums/{id}/permissions/{userId} [delete]
func (h *AlbumHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())
	targetUserID := chi.URLParam(r, "userId")

	if err := h.service.Unshare(r.Context(), userID, id.String(), targetUserID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Shared decode helpers ---

func decodeAlbumRequest(w http.ResponseWriter, r *http.Request) (AlbumRequest, bool) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req AlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return req, false
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return req, false
	}
	return req, true
}

func decodeAlbumArtworkRequest(w http.ResponseWriter, r *http.Request) (AlbumArtworkRequest, bool) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req AlbumArtworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return req, false
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return req, false
	}
	return req, true
}
