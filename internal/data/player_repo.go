package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sunrise-rp/admin-api/internal/data/pgxutil"
	"github.com/sunrise-rp/admin-api/internal/domain/model"
	"github.com/sunrise-rp/admin-api/internal/ports"
)

// PlayerRepo provides read access to the game server's player table, plus
// the telegram link update. The table itself is owned and migrated by the
// game server.
type PlayerRepo struct {
	DB *sql.DB
}

// NewPlayerRepo creates a new PlayerRepo.
func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{DB: db}
}

const playerGetByNicknameQuery = `
	SELECT nickname, password, admin_level, telegram_id
	FROM players
	WHERE nickname = $1`

// FindByNickname retrieves a player by exact nickname.
// Nickname comparison is case-sensitive, matching the game server's login.
func (r *PlayerRepo) FindByNickname(ctx context.Context, nickname string) (*model.Player, error) {
	var player model.Player
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, playerGetByNicknameQuery, nickname)
		if err != nil {
			return err
		}
		defer rows.Close()
		player, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Player])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by nickname: %w", err)
	}
	return &player, nil
}

// SetTelegramID updates the player's telegram link. A nil value clears the
// link. Returns ErrPlayerNotFound when no such player exists.
func (r *PlayerRepo) SetTelegramID(ctx context.Context, nickname string, value *string) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`UPDATE players SET telegram_id = $1 WHERE nickname = $2`,
			value, nickname)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		// The game server keeps a unique index on telegram_id.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrTelegramIDTaken
		}
		return fmt.Errorf("failed to update telegram link: %w", err)
	}
	if affected == 0 {
		return ports.ErrPlayerNotFound
	}
	return nil
}
