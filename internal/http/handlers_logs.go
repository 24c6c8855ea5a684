package httpx

import (
	"net/http"

	"github.com/sunrise-rp/admin-api/internal/domain/model"
	"github.com/sunrise-rp/admin-api/internal/service"
)

// LogHandlers provides HTTP handlers for the action log view.
type LogHandlers struct {
	Svc *service.LogService
}

// List serves the filtered, paginated action log.
// GET /api/logs?type=&q=&from=&to=&page=&limit=&sort=&dir=.
func (h *LogHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, ok := ParseTimeParam(q, "from")
	if !ok {
		WriteFailure(w, http.StatusOK, "invalid 'from' timestamp")
		return
	}
	to, ok := ParseTimeParam(q, "to")
	if !ok {
		WriteFailure(w, http.StatusOK, "invalid 'to' timestamp")
		return
	}

	limit, offset := ParsePagination(q)
	sort, dir := ParseSortParam(q, "sort", "dir")

	result, err := h.Svc.List(r.Context(), model.ActionLogListOptions{
		Type:   OptionalString(q, "type"),
		Q:      OptionalString(q, "q"),
		From:   from,
		To:     to,
		Sort:   sort,
		Dir:    dir,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, map[string]any{
		"data":  result.Items,
		"page":  offset/limit + 1,
		"limit": limit,
		"total": result.Total,
	})
}
