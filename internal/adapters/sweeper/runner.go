// Package sweeper provides the adapter that runs the session expiry sweep
// loop as a managed service.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sunrise-rp/admin-api/config"
	"github.com/sunrise-rp/admin-api/internal/ports"
	"github.com/sunrise-rp/admin-api/internal/service"
)

// Runner wraps SweeperService for the bootstrap service registry.
type Runner struct {
	sweeper *service.SweeperService
	logger  *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Sessions ports.SessionStore
	Config   config.SweeperConfig
	Logger   *slog.Logger
}

// NewRunner creates a new sweeper runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	sweeper, err := service.NewSweeperService(service.SweeperServiceOptions{
		Sessions: opts.Sessions,
		Config:   opts.Config,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("wire sweeper service: %w", err)
	}

	return &Runner{sweeper: sweeper, logger: opts.Logger}, nil
}

// Run starts the sweep loop and runs until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting sweeper runner")
	return r.sweeper.Run(ctx)
}
