package service

import (
	"context"

	"github.com/sunrise-rp/admin-api/internal/domain/model"
	apperrors "github.com/sunrise-rp/admin-api/internal/errors"
	"github.com/sunrise-rp/admin-api/internal/ports"
)

// LogServiceOptions groups dependencies for LogService.
type LogServiceOptions struct {
	Logs ports.ActionLogReader
}

// LogService serves the filtered, paginated action log view.
type LogService struct {
	logs ports.ActionLogReader
}

// NewLogService constructs a new LogService.
func NewLogService(opts LogServiceOptions) *LogService {
	return &LogService{logs: opts.Logs}
}

// LogListResult pairs one page of rows with the total matching the filters.
type LogListResult struct {
	Items []*model.ActionLog
	Total int64
}

// List returns one page of action log rows plus the filtered total.
func (s *LogService) List(ctx context.Context, opts model.ActionLogListOptions) (*LogListResult, error) {
	if opts.From != nil && opts.To != nil && opts.To.Before(*opts.From) {
		return nil, apperrors.Validation("'to' must not be before 'from'")
	}

	items, err := s.logs.List(ctx, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "list action logs")
	}
	total, err := s.logs.Count(ctx, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "count action logs")
	}

	return &LogListResult{Items: items, Total: total}, nil
}
