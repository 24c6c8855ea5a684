package httpx

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// SortDirAsc represents ascending sort direction.
	SortDirAsc = "asc"
	// SortDirDesc represents descending sort direction.
	SortDirDesc = "desc"

	defaultPageSize = 50
	maxPageSize     = 100
)

// ParseSortParam extracts and validates sort field and direction from URL
// query parameters. It supports two formats:
// 1. Combined format: ?sort=field:dir (e.g., ?sort=logged_at:desc)
// 2. Separate format: ?sort=field&dir=direction
//
// Returns the sort field name (trimmed) and the sort direction ("asc",
// "desc", or empty string if invalid).
func ParseSortParam(q url.Values, sortKey, dirKey string) (string, string) {
	sortParam := strings.TrimSpace(q.Get(sortKey))
	dirParam := strings.ToLower(strings.TrimSpace(q.Get(dirKey)))

	parts := strings.SplitN(sortParam, ":", 2)
	if len(parts) == 2 {
		fieldPart := strings.TrimSpace(parts[0])
		dirPart := strings.ToLower(strings.TrimSpace(parts[1]))
		if dirPart == SortDirAsc || dirPart == SortDirDesc {
			return fieldPart, dirPart
		}
		// Invalid direction in colon syntax, return field only
		return fieldPart, ""
	}

	if dirParam == SortDirAsc || dirParam == SortDirDesc {
		return sortParam, dirParam
	}

	return sortParam, ""
}

// ParsePagination reads one-based ?page and ?limit parameters and converts
// them to a limit/offset pair. Out-of-range values fall back to defaults.
func ParsePagination(q url.Values) (limit, offset int) {
	limit = defaultPageSize
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxPageSize)
		}
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}

	return limit, (page - 1) * limit
}

// ParseTimeParam parses an RFC 3339 timestamp or a bare date. Returns nil
// when the parameter is absent, and an ok=false when it is present but
// unparseable.
func ParseTimeParam(q url.Values, key string) (*time.Time, bool) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, true
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, true
	}
	return nil, false
}

// OptionalString returns a pointer to the trimmed parameter value, or nil
// when absent or blank.
func OptionalString(q url.Values, key string) *string {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	return &raw
}
