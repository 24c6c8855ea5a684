package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sunrise-rp/admin-api/internal/data/pgxutil"
	"github.com/sunrise-rp/admin-api/internal/domain/model"
)

// StatsRepo aggregates player statistics from the game server's tables.
type StatsRepo struct {
	DB *sql.DB
}

// NewStatsRepo creates a new StatsRepo.
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{DB: db}
}

// COALESCE keeps the sums at zero on an empty players table, where SUM
// would return NULL.
const serverStatsQuery = `
	SELECT COUNT(*)               AS players_count,
	       COALESCE(SUM(cash), 0) AS total_cash,
	       COALESCE(SUM(bank), 0) AS total_bank
	FROM players`

// ServerStats returns the aggregate counters shown on the admin dashboard.
func (r *StatsRepo) ServerStats(ctx context.Context) (*model.ServerStats, error) {
	var stats model.ServerStats
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, serverStatsQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		stats, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ServerStats])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate server stats: %w", err)
	}
	return &stats, nil
}
