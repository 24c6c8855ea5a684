// Package devseed populates a development database with demo players and
// action log entries so the admin panel has something to show.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sunrise-rp/admin-api/internal/data/pgxutil"
)

type seedPlayer struct {
	Nickname   string
	Password   string
	AdminLevel int
	TelegramID *string
}

func seedPlayers() []seedPlayer {
	tg := "tg-100200300"
	return []seedPlayer{
		{Nickname: "admin", Password: "admin", AdminLevel: 10, TelegramID: &tg},
		{Nickname: "moderator", Password: "moderator", AdminLevel: 8},
		{Nickname: "helper", Password: "helper", AdminLevel: 5},
		{Nickname: "civilian", Password: "civilian", AdminLevel: 0},
	}
}

const upsertPlayerQuery = `
	INSERT INTO players (nickname, password, admin_level, telegram_id)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (nickname) DO UPDATE
	SET admin_level = EXCLUDED.admin_level
`

// Run executes the development seeding workflow against the provided DB.
// Seeding is idempotent; existing players keep their credentials and only
// have their admin level refreshed.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	for _, p := range seedPlayers() {
		if _, err := db.ExecContext(ctx, upsertPlayerQuery,
			p.Nickname, p.Password, p.AdminLevel, p.TelegramID); err != nil {
			return fmt.Errorf("seed player %q: %w", p.Nickname, err)
		}
	}
	logger.InfoContext(ctx, "seeded players", "count", len(seedPlayers()))

	seeded, err := seedActionLogs(ctx, db)
	if err != nil {
		return fmt.Errorf("seed action logs: %w", err)
	}
	if seeded > 0 {
		logger.InfoContext(ctx, "seeded action logs", "count", seeded)
	} else {
		logger.InfoContext(ctx, "action logs already present; skipping")
	}

	return nil
}

// seedActionLogs bulk-loads demo log rows. Only runs against an empty
// table so repeated seeding does not pile up duplicates.
func seedActionLogs(ctx context.Context, db *sql.DB) (int64, error) {
	var existing int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM action_logs").Scan(&existing); err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	now := time.Now()
	rows := [][]any{
		{"login", "admin logged in from 10.0.0.5", now.Add(-72 * time.Hour)},
		{"ban", "moderator banned speedy_gonzales for vehicle exploits", now.Add(-48 * time.Hour)},
		{"kick", "helper kicked afk_farmer from the server", now.Add(-24 * time.Hour)},
		{"money", "admin adjusted civilian bank balance by -5000", now.Add(-12 * time.Hour)},
		{"warn", "moderator warned trigger_happy for deathmatching", now.Add(-1 * time.Hour)},
	}

	var copied int64
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		n, copyErr := conn.CopyFrom(ctx,
			pgx.Identifier{"action_logs"},
			[]string{"type", "description", "logged_at"},
			pgx.CopyFromRows(rows),
		)
		copied = n
		return copyErr
	})
	return copied, err
}
