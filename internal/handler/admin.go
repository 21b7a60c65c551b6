package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"settings-api/internal/service"
)

// AdminHandler manages the admin roster. Every route here sits behind both
// RequireAuth and RequireAdmin.
type AdminHandler struct {
	admins *service.AdminService
	logger *slog.Logger
}

func NewAdminHandler(admins *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		admins: admins,
		logger: logger,
	}
}

// HandleList returns the full roster.
//
// HTTP: GET /api/admins
func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, admins)
}

// HandleGet returns one admin.
//
// HTTP: GET /api/admins/{id}
func (h *AdminHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	admin, err := h.admins.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, admin)
}

type adminCreateRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	AvatarURL   string   `json:"avatar_url"`
	Permissions []string `json:"permissions"`
}

// HandleCreate adds an admin to the roster.
//
// HTTP: POST /api/admins
// BODY: {"name":"...","email":"...","role":"...","permissions":["read","write"]}
func (h *AdminHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid admin JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	admin, err := h.admins.Create(r.Context(), service.AdminCreate{
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		AvatarURL:   req.AvatarURL,
		Permissions: req.Permissions,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, admin)
}

type adminUpdateRequest struct {
	Name        *string  `json:"name"`
	Email       *string  `json:"email"`
	Role        *string  `json:"role"`
	AvatarURL   *string  `json:"avatar_url"`
	Permissions []string `json:"permissions"`
}

// HandleUpdate applies a partial update to an admin.
//
// HTTP: PUT /api/admins/{id}
func (h *AdminHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req adminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid admin JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	admin, err := h.admins.Update(r.Context(), r.PathValue("id"), service.AdminUpdate{
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		AvatarURL:   req.AvatarURL,
		Permissions: req.Permissions,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, admin)
}

// HandleDelete removes an admin. Deleting the last remaining admin is
// rejected with 400 — the roster must never empty.
//
// HTTP: DELETE /api/admins/{id}
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.admins.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Admin deleted successfully",
	})
}
