package httpx

import (
	"net/http"

	"github.com/sunrise-rp/admin-api/internal/service"
)

// PlayerHandlers provides HTTP handlers for player lookups and the
// telegram unlink operation.
type PlayerHandlers struct {
	Svc *service.PlayerService
}

// Get serves a single player record.
// GET /api/player/{nickname}.
func (h *PlayerHandlers) Get(w http.ResponseWriter, r *http.Request) {
	player, err := h.Svc.GetByNickname(r.Context(), r.PathValue("nickname"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, map[string]any{"player": player})
}

// UnlinkTelegram clears a player's telegram link.
// POST /api/unlink-telegram with {"nickname": ...}.
func (h *PlayerHandlers) UnlinkTelegram(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname string `json:"nickname"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.UnlinkTelegram(r.Context(), req.Nickname); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, nil)
}
