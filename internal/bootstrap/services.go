package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/sunrise-rp/admin-api/config"
	"github.com/sunrise-rp/admin-api/internal/adapters/memstore"
	"github.com/sunrise-rp/admin-api/internal/adapters/sweeper"
	"github.com/sunrise-rp/admin-api/internal/data"
	"github.com/sunrise-rp/admin-api/internal/ports"
	"github.com/sunrise-rp/admin-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth    *service.AuthService
	Logs    *service.LogService
	Stats   *service.StatsService
	Players *service.PlayerService
	Sweeper *sweeper.Runner

	// Sessions is the shared in-memory session store backing Auth and
	// Sweeper. Exposed for diagnostics.
	Sessions *memstore.Store
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	DB        *sql.DB
	Players   *data.PlayerRepo
	Logs      *data.ActionLogRepo
	Stats     *data.StatsRepo
	CacheRepo *data.RedisCacheRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redisClient redis.UniversalClient) *serviceRepositories {
	repos := &serviceRepositories{
		DB:      db,
		Players: data.NewPlayerRepo(db),
		Logs:    data.NewActionLogRepo(db),
		Stats:   data.NewStatsRepo(db),
	}
	if redisClient != nil {
		repos.CacheRepo = data.NewRedisCacheRepo(redisClient)
	}
	return repos
}

// NewServices wires repositories, the session store, and business services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil {
		return ServiceContainer{}, errors.New("service deps are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := deps.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	repos := buildRepositories(deps.DB, deps.RedisClient)
	sessions := memstore.New()

	authService := service.NewAuthService(service.AuthServiceOptions{
		Players:  repos.Players,
		Sessions: sessions,
		Config:   appCfg.Auth,
		Logger:   logger,
	})

	logService := service.NewLogService(service.LogServiceOptions{
		Logs: repos.Logs,
	})

	// The cache repo stays nil when Redis is not configured; the stats
	// service falls back to direct queries.
	var cache ports.Cache
	if repos.CacheRepo != nil {
		cache = repos.CacheRepo
	}
	statsService := service.NewStatsService(service.StatsServiceOptions{
		Stats:    repos.Stats,
		Cache:    cache,
		CacheTTL: appCfg.Cache.StatsTTL,
		Logger:   logger,
	})

	playerService := service.NewPlayerService(service.PlayerServiceOptions{
		Players: repos.Players,
		Logger:  logger,
	})

	sweeperRunner, err := sweeper.NewRunner(sweeper.RunnerOptions{
		Sessions: sessions,
		Config:   appCfg.Sweeper,
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("wire sweeper: %w", err)
	}

	return ServiceContainer{
		Auth:     authService,
		Logs:     logService,
		Stats:    statsService,
		Players:  playerService,
		Sweeper:  sweeperRunner,
		Sessions: sessions,
	}, nil
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// RunServicesWithShutdown starts all enabled services and manages their
// lifecycle. It blocks until a shutdown signal is received or a service
// fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if enabledServices[config.ServiceModeHTTP] {
		server := NewHTTPServer(&HTTPServerConfig{
			Config:      cfg.Config,
			Services:    cfg.Services,
			DB:          cfg.DB,
			RedisClient: cfg.RedisClient,
			Logger:      logger,
		})
		g.Go(func() error {
			return ServeHTTP(gctx, server, logger)
		})
	}

	if enabledServices[config.ServiceModeSweeper] {
		g.Go(func() error {
			return cfg.Services.Sweeper.Run(gctx)
		})
	}

	logger.InfoContext(ctx, "services started", "enabled", GetEnabledServices(cfg.Config))

	if waitErr := g.Wait(); waitErr != nil && !errors.Is(waitErr, context.Canceled) {
		return waitErr
	}

	logger.Info("all services stopped")
	return nil
}
