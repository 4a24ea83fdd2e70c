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

// FolderHandler handles HTTP requests for the per-user folder tree.
type FolderHandler struct {
	service *service.FolderService
	logger  *slog.Logger
}

// NewFolderHandler creates a new folder HTTP handler.
func NewFolderHandler(svc *service.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateFolderRequest is the JSON request body for creating a folder.
type CreateFolderRequest struct {
	Title    string  `json:"title" validate:"required,min=1,max=255"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"`
}

// UpdateFolderRequest is the JSON request body for renaming a folder.
type UpdateFolderRequest struct {
	Title string `json:"title" validate:"required,min=1,max=255"`
}

// FolderAlbumRequest is the JSON request body for placing an album in a folder.
type FolderAlbumRequest struct {
	AlbumID string `json:"album_id" validate:"required,uuid"`
}

// --- Handlers ---

// GetRoot handles GET /api/v1/folders/root
// @Summary Get the user's root folder
// @Description Returns the root folder, creating it on first access
// @Tags folders
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/folders/root [get]
func (h *FolderHandler) GetRoot(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	root, err := h.service.GetRoot(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: root})
}

// ListFolders handles GET /api/v1/folders
// @Summary List the user's folders
// @Tags folders
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/folders [get]
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	folders, err := h.service.ListFolders(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: folders})
}

// GetFolder handles GET /api/v1/folders/{id}
// @Summary Get folder by ID
// @Tags folders
// @Produce json
// @Param id path string true "Folder UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/folders/{id} [get]
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	folder, err := h.service.GetFolder(r.Context(), userID, id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: folder})
}

// CreateFolder handles POST /api/v1/folders
// @Summary Create a folder
// @Description Creates a folder under the given parent, or under the root folder when no parent is given
// @Tags folders
// @Accept json
// @Produce json
// @Param request body CreateFolderRequest true "Folder to create"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/folders [post]
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateFolderRequest
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

	folder, err := h.service.CreateFolder(r.Context(), userID, req.Title, req.ParentID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: folder})
}

// UpdateFolder handles PUT /api/v1/folders/{id}
// @Summary Rename a folder
// @Description Renames a folder. The root folder cannot be renamed.
// @Tags folders
// @Accept json
// @Produce json
// @Param id path string true "Folder UUID"
// @Param request body UpdateFolderRequest true "New title"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/folders/{id} [put]
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateFolderRequest
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

	folder, err := h.service.UpdateFolder(r.Context(), userID, id.String(), req.Title)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: folder})
}

// DeleteFolder handles DELETE /api/v1/folders/{id}
// @Summary Delete a folder
// @Description Deletes a folder. Albums inside it survive; the root folder cannot be deleted.
// @Tags folders
// @Produce json
// @Param id path string true "Folder UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/folders/{id} [delete]
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	if err := h.service.DeleteFolder(r.Context(), userID, id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}

// AddAlbum handles POST /api/v1/folders/{id}/albums
// @Summary Place an album in a folder
// @Tags folders
// @Accept json
// @Produce json
// @Param id path string true "Folder UUID"
// @Param request body FolderAlbumRequest true "Album to place"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/folders/{id}/albums [post]
func (h *FolderHandler) AddAlbum(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req FolderAlbumRequest
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

	if err := h.service.AddAlbum(r.Context(), userID, id.String(), req.AlbumID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveAlbum handles DELETE /api/v1/folders/{id}/albums/{albumId}
// @Summary Take an album out of a folder
// @Tags folders
// @Produce json
// @Param id path string true "Folder UUID"
// @Param albumId path string true "Album UUID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/folders/{id}/albums/{albumId} [delete]
func (h *FolderHandler) RemoveAlbum(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	albumID, ok := httputil.ParseUUID(w, chi.URLParam(r, "albumId"))
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	if err := h.service.RemoveAlbum(r.Context(), userID, id.String(), albumID.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
