package httpx

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortParam(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantField string
		wantDir   string
	}{
		{"colon format", "sort=logged_at:desc", "logged_at", "desc"},
		{"colon format asc", "sort=type:asc", "type", "asc"},
		{"colon format bad dir", "sort=type:sideways", "type", ""},
		{"separate params", "sort=logged_at&dir=asc", "logged_at", "asc"},
		{"separate bad dir", "sort=logged_at&dir=up", "logged_at", ""},
		{"uppercase dir normalized", "sort=id&dir=DESC", "id", "desc"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			field, dir := ParseSortParam(q, "sort", "dir")
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantDir, dir)
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 50, 0},
		{"explicit page and limit", "page=3&limit=20", 20, 40},
		{"limit capped", "limit=9999", 100, 0},
		{"zero page ignored", "page=0&limit=10", 10, 0},
		{"negative values ignored", "page=-2&limit=-5", 50, 0},
		{"garbage ignored", "page=abc&limit=xyz", 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			limit, offset := ParsePagination(q)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestParseTimeParam(t *testing.T) {
	t.Run("absent is ok and nil", func(t *testing.T) {
		got, ok := ParseTimeParam(url.Values{}, "from")
		assert.True(t, ok)
		assert.Nil(t, got)
	})

	t.Run("rfc3339", func(t *testing.T) {
		q := url.Values{"from": {"2026-08-30T12:00:00Z"}}
		got, ok := ParseTimeParam(q, "from")
		require.True(t, ok)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), *got)
	})

	t.Run("bare date", func(t *testing.T) {
		q := url.Values{"to": {"2026-08-30"}}
		got, ok := ParseTimeParam(q, "to")
		require.True(t, ok)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("unparseable", func(t *testing.T) {
		q := url.Values{"from": {"yesterday"}}
		got, ok := ParseTimeParam(q, "from")
		assert.False(t, ok)
		assert.Nil(t, got)
	})
}

func TestOptionalString(t *testing.T) {
	q := url.Values{"type": {"  ban  "}, "empty": {"   "}}

	got := OptionalString(q, "type")
	require.NotNil(t, got)
	assert.Equal(t, "ban", *got)

	assert.Nil(t, OptionalString(q, "empty"))
	assert.Nil(t, OptionalString(q, "missing"))
}
