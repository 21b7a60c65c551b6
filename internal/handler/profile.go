package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"settings-api/internal/auth"
	"settings-api/internal/service"
)

// ProfileHandler serves the caller's own profile. The row is addressed by
// the authenticated identity, never by an ID in the URL — you can only read
// and write yourself.
type ProfileHandler struct {
	profiles *service.ProfileService
	logger   *slog.Logger
}

func NewProfileHandler(profiles *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		logger:   logger,
	}
}

// callerID pulls the authenticated user ID out of the request context. The
// auth middleware put it there; a miss means the route was wired without
// RequireAuth, and the safe response is 401.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication required",
		})
		return "", false
	}
	return id, true
}

// HandleGet returns the caller's profile.
//
// HTTP: GET /api/user/profile
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

type profileUpdateRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Phone     *string `json:"phone"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Country   *string `json:"country"`
	AvatarURL *string `json:"avatar_url"`
}

// HandleUpdate updates the caller's profile.
//
// HTTP: PUT /api/user/profile
// BODY: {"name":"...","email":"...","role":"...", optional phone/city/state/country/avatar_url}
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid profile JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	profile, err := h.profiles.Update(r.Context(), userID, service.ProfileUpdate{
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		Phone:     req.Phone,
		City:      req.City,
		State:     req.State,
		Country:   req.Country,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
