package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"settings-api/internal/service"
)

// SubscriptionHandler serves plans and the caller's subscription lifecycle.
type SubscriptionHandler struct {
	subs   *service.SubscriptionService
	logger *slog.Logger
}

func NewSubscriptionHandler(subs *service.SubscriptionService, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subs:   subs,
		logger: logger,
	}
}

// HandlePlans lists every plan, sorted by ascending price.
//
// HTTP: GET /api/subscription/plans
func (h *SubscriptionHandler) HandlePlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.subs.Plans(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, plans)
}

// HandleCurrent returns the caller's active subscription with its plan.
//
// HTTP: GET /api/subscription/current
func (h *SubscriptionHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	sub, err := h.subs.Current(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

// HandleUpgrade switches the caller to a new plan.
//
// HTTP: POST /api/subscription/upgrade
// BODY: {"plan_id": "..."}
func (h *SubscriptionHandler) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req struct {
		PlanID string `json:"plan_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid upgrade JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	sub, err := h.subs.Upgrade(r.Context(), userID, req.PlanID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// HandleCancel ends the caller's active subscription.
//
// HTTP: POST /api/subscription/cancel
func (h *SubscriptionHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	sub, err := h.subs.Cancel(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

type contactRequest struct {
	CompanyName  string `json:"company_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Requirements string `json:"requirements"`
}

// HandleContact records an enterprise contact request.
//
// HTTP: POST /api/subscription/contact
// BODY: {"company_name":"...","contact_email":"...","contact_phone":"...","requirements":"..."}
func (h *SubscriptionHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid contact JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	stored, err := h.subs.SubmitContact(r.Context(), userID, service.ContactSubmission{
		CompanyName:  req.CompanyName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Requirements: req.Requirements,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":    "Contact request submitted successfully",
		"request_id": stored.ID,
	})
}
