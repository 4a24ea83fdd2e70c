package http

import (
	"log/slog"
	"net/http"

	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	"github.com/base-angewandte/image-backend-sub000/pkg/httputil"
	"github.com/base-angewandte/image-backend-sub000/pkg/middleware"
)

// UserHandler handles HTTP requests for the acting user's profile.
type UserHandler struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewUserHandler creates a new user HTTP handler.
func NewUserHandler(users repository.UserRepository, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// GetCurrentUser handles GET /api/v1/user
// @Summary Get the acting user
// @Description Returns the profile of the user identified by the gateway-set X-User-ID header
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/user [get]
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: user})
}
