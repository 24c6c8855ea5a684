package httpx

import (
	"context"
	"net/http"
)

// Pinger reports the health of a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a plain function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

// Ping implements Pinger.
func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandlers serves the liveness endpoint. Dependency pingers are
// optional; without them the endpoint only proves the process is up.
type HealthHandlers struct {
	Dependencies map[string]Pinger
}

// Get reports process liveness and per-dependency status.
// GET /api/health. Stays 200 even when a dependency is down so load
// balancers keep routing; the body carries the detail.
func (h *HealthHandlers) Get(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	deps := make(map[string]string, len(h.Dependencies))
	for name, pinger := range h.Dependencies {
		if err := pinger.Ping(r.Context()); err != nil {
			deps[name] = "down"
			status = "degraded"
		} else {
			deps[name] = "ok"
		}
	}

	payload := map[string]any{"status": status}
	if len(deps) > 0 {
		payload["dependencies"] = deps
	}
	WriteSuccess(w, payload)
}
