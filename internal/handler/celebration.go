package handler

import (
	"net/http"

	"stride/internal/ctxkeys"
	"stride/internal/service"
)

type CelebrationHandler struct {
	celebrations *service.CelebrationService
}

func NewCelebrationHandler(celebrations *service.CelebrationService) *CelebrationHandler {
	return &CelebrationHandler{
		celebrations: celebrations,
	}
}

// Current reports whether the requesting user's celebration overlay should
// be showing and for which goal. The overlay clears itself server-side after
// the display window elapses.
func (h *CelebrationHandler) Current(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	active, title := h.celebrations.Current(user.ID)

	writeJSON(w, http.StatusOK, map[string]any{
		"active": active,
		"title":  title,
	})
}
