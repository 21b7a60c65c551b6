package handler

import "net/http"

// Pinger reports whether the backing store is reachable. *sqlite.DB
// satisfies it.
type Pinger interface {
	Ping() error
}

// HealthHandler answers liveness probes.
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleHealth reports service and database status. Always 200 — a probe
// wants the body, not a 5xx, and the database field says what's wrong.
//
// HTTP: GET /api/health
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	database := "connected"
	if err := h.db.Ping(); err != nil {
		database = "disconnected"
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"database": database,
	})
}
