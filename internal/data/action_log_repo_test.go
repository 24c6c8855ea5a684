package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sunrise-rp/admin-api/internal/data/database"
	"github.com/sunrise-rp/admin-api/internal/domain/model"
)

func strPtr(s string) *string { return &s }

func TestActionLogRepo_BuildQueryOptions(t *testing.T) {
	repo := NewActionLogRepo(nil)

	t.Run("defaults", func(t *testing.T) {
		query, args := database.BuildListQuery(
			repo.buildQueryOptions(model.ActionLogListOptions{}, false),
		)

		assert.Equal(t,
			`SELECT "id", "type", "description", "logged_at" FROM "action_logs" ORDER BY "logged_at" DESC LIMIT $1 OFFSET $2`,
			query)
		assert.Equal(t, []any{defaultLogLimit, 0}, args)
	})

	t.Run("all filters", func(t *testing.T) {
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		opts := model.ActionLogListOptions{
			Type:   strPtr("ban"),
			Q:      strPtr("cheat"),
			From:   &from,
			To:     &to,
			Sort:   "id",
			Dir:    "asc",
			Limit:  25,
			Offset: 50,
		}

		query, args := database.BuildListQuery(repo.buildQueryOptions(opts, false))

		assert.Contains(t, query, `"type" = $1`)
		assert.Contains(t, query, `"description" ILIKE $2`)
		assert.Contains(t, query, `"logged_at" >= $3`)
		assert.Contains(t, query, `"logged_at" < $4`)
		assert.Contains(t, query, `ORDER BY "id" ASC`)
		assert.Equal(t, []any{"ban", "%cheat%", from, to, 25, 50}, args)
	})

	t.Run("count drops pagination but keeps filters", func(t *testing.T) {
		opts := model.ActionLogListOptions{Type: strPtr("kick"), Limit: 25, Offset: 50}

		query, args := database.BuildListQuery(repo.buildQueryOptions(opts, true))

		assert.Equal(t, `SELECT COUNT(*) FROM "action_logs" WHERE "type" = $1`, query)
		assert.Equal(t, []any{"kick"}, args)
	})

	t.Run("blank filters are ignored", func(t *testing.T) {
		opts := model.ActionLogListOptions{Type: strPtr("  "), Q: strPtr("")}

		query, _ := database.BuildListQuery(repo.buildQueryOptions(opts, false))

		assert.NotContains(t, query, "WHERE")
	})

	t.Run("limit is clamped", func(t *testing.T) {
		opts := model.ActionLogListOptions{Limit: 10_000}

		_, args := database.BuildListQuery(repo.buildQueryOptions(opts, false))

		assert.Equal(t, []any{maxLogLimit, 0}, args)
	})

	t.Run("unknown sort falls back to logged_at", func(t *testing.T) {
		opts := model.ActionLogListOptions{Sort: "password", Dir: "sideways"}

		query, _ := database.BuildListQuery(repo.buildQueryOptions(opts, false))

		assert.Contains(t, query, `ORDER BY "logged_at" DESC`)
	})
}
