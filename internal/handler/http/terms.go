package http

import (
	"log/slog"
	"net/http"

	"github.com/base-angewandte/image-backend-sub000/internal/service"
	"github.com/base-angewandte/image-backend-sub000/pkg/httputil"
)

// TermHandler handles HTTP requests for the discriminatory-term list.
type TermHandler struct {
	service *service.DiscriminatoryTermService
	logger  *slog.Logger
}

// NewTermHandler creates a new discriminatory-term HTTP handler.
func NewTermHandler(svc *service.DiscriminatoryTermService, logger *slog.Logger) *TermHandler {
	return &TermHandler{
		service: svc,
		logger:  logger,
	}
}

// ListTerms handles GET /api/v1/discriminatory-terms
// @Summary List flagged historical terms
// @Description Returns the curated list of flagged terms, ordered alphabetically
// @Tags terms
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/discriminatory-terms [get]
func (h *TermHandler) ListTerms(w http.ResponseWriter, r *http.Request) {
	terms, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: terms})
}
