package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"settings-api/internal/model"
	"settings-api/internal/service"
)

// PrivacyHandler serves the caller's privacy toggles.
type PrivacyHandler struct {
	privacy *service.PrivacyService
	logger  *slog.Logger
}

func NewPrivacyHandler(privacy *service.PrivacyService, logger *slog.Logger) *PrivacyHandler {
	return &PrivacyHandler{
		privacy: privacy,
		logger:  logger,
	}
}

// HandleGet returns the caller's privacy settings, creating them with
// defaults on first read.
//
// HTTP: GET /api/privacy
func (h *PrivacyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	settings, err := h.privacy.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// HandleUpdate applies a subset of the six boolean toggles.
//
// HTTP: PUT /api/privacy
// BODY: any subset of the toggle fields, e.g. {"notifications": true}
//
// The toggles decode into *bool fields, so a toggle that is present but not
// a boolean ("notifications": "yes") fails the decode and returns 400.
func (h *PrivacyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var toggles model.PrivacyToggles
	if err := json.NewDecoder(r.Body).Decode(&toggles); err != nil {
		h.logger.Warn("invalid privacy JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "privacy toggles must be booleans",
		})
		return
	}

	settings, err := h.privacy.Update(r.Context(), userID, toggles)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
