package gallery

import (
	"log/slog"
	"net/http"

	"github.com/karthikcsq/personalsite/internal/api"
)

// Handler serves GET /api/gallery.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Albums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.svc.Albums()
	if err != nil {
		slog.Error("listing gallery albums", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}
	api.JSON(w, http.StatusOK, albums)
}
