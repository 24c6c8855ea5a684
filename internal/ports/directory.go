package ports

import (
	"context"

	"github.com/sunrise-rp/admin-api/internal/domain/model"
)

// PlayerDirectory reads credential records from the game server's player
// table. The directory is owned by the game server; this backend only
// reads it, except for the telegram link.
type PlayerDirectory interface {
	// FindByNickname returns the player record for an exact,
	// case-sensitive nickname, or ErrPlayerNotFound.
	FindByNickname(ctx context.Context, nickname string) (*model.Player, error)

	// SetTelegramID updates the player's telegram link. A nil value
	// clears it.
	SetTelegramID(ctx context.Context, nickname string, value *string) error
}

// ActionLogReader serves the paginated, filtered action log queries.
type ActionLogReader interface {
	List(ctx context.Context, opts model.ActionLogListOptions) ([]*model.ActionLog, error)
	Count(ctx context.Context, opts model.ActionLogListOptions) (int64, error)
}

// StatsReader aggregates player statistics.
type StatsReader interface {
	ServerStats(ctx context.Context) (*model.ServerStats, error)
}
