package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/sunrise-rp/admin-api/internal/domain/model"
	apperrors "github.com/sunrise-rp/admin-api/internal/errors"
	"github.com/sunrise-rp/admin-api/internal/ports"
)

// PlayerServiceOptions groups dependencies for PlayerService.
type PlayerServiceOptions struct {
	Players ports.PlayerDirectory
	Logger  *slog.Logger
}

// PlayerService serves player lookups and the telegram unlink operation.
type PlayerService struct {
	players ports.PlayerDirectory
	logger  *slog.Logger
}

// NewPlayerService constructs a new PlayerService.
func NewPlayerService(opts PlayerServiceOptions) *PlayerService {
	return &PlayerService{players: opts.Players, logger: opts.Logger}
}

// GetByNickname returns the player record for an exact nickname.
func (s *PlayerService) GetByNickname(ctx context.Context, nickname string) (*model.Player, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, apperrors.Validation("nickname is required")
	}

	player, err := s.players.FindByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, ports.ErrPlayerNotFound) {
			return nil, apperrors.NotFound("player not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "look up player")
	}
	return player, nil
}

// UnlinkTelegram clears the player's telegram link. Unlinking a player with
// no link succeeds; the end state is the same.
func (s *PlayerService) UnlinkTelegram(ctx context.Context, nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return apperrors.Validation("nickname is required")
	}

	if err := s.players.SetTelegramID(ctx, nickname, nil); err != nil {
		if errors.Is(err, ports.ErrPlayerNotFound) {
			return apperrors.NotFound("player not found")
		}
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "unlink telegram")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "telegram link cleared", "nickname", nickname)
	}
	return nil
}
