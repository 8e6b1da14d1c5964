package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"stride/internal/ctxkeys"
	"stride/internal/model"
	"stride/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	settings, err := h.settingsService.ByUser(user.ID)
	if err != nil {
		slog.Error("failed to load settings", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var settings model.Settings
	err := decodeJSON(r, &settings)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.settingsService.Update(user.ID, &settings)
	if err != nil {
		if errors.Is(err, service.ErrInvalidBarStyle) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("failed to save settings", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Reset restores the built-in defaults and persists them.
func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	settings, err := h.settingsService.Reset(user.ID)
	if err != nil {
		slog.Error("failed to reset settings", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
