package handler

import (
	"net/http"

	"github.com/embermatch/api/internal/bank"
	"github.com/embermatch/api/internal/database"
	"github.com/embermatch/api/internal/model"
)

// HealthHandler handles liveness and readiness endpoints
type HealthHandler struct {
	db      database.Database
	catalog *bank.Catalog
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db database.Database, catalog *bank.Catalog) *HealthHandler {
	return &HealthHandler{db: db, catalog: catalog}
}

// Health handles GET /health - liveness probe
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"questions": h.catalog.Current().Len(),
	})
}

// Ready handles GET /health/ready - readiness probe, checks the database
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		WriteError(w, &model.ProblemDetails{
			Type:   "https://api.embermatch.app/errors/not-ready",
			Title:  "Service Not Ready",
			Status: http.StatusServiceUnavailable,
			Detail: "database unreachable",
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
