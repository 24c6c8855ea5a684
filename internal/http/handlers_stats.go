package httpx

import (
	"net/http"

	"github.com/sunrise-rp/admin-api/internal/service"
)

// StatsHandlers provides HTTP handlers for the dashboard aggregates.
type StatsHandlers struct {
	Svc *service.StatsService
}

// Get serves the aggregate counters.
// GET /api/stats.
func (h *StatsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.ServerStats(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, map[string]any{"stats": stats})
}
