package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sunrise-rp/admin-api/config"
	httpx "github.com/sunrise-rp/admin-api/internal/http"
)

const httpShutdownTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewHTTPServer builds the API server with its router and timeouts.
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Auth:               cfg.Services.Auth,
		Logs:               cfg.Services.Logs,
		Stats:              cfg.Services.Stats,
		Players:            cfg.Services.Players,
		HealthDependencies: buildHealthDependencies(cfg.DB, cfg.RedisClient),
		AuthConfig:         appCfg.Auth,
		HTTPConfig:         appCfg.HTTP,
		Logger:             logger,
	})

	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":3001"
	}

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// buildHealthDependencies wires the pingers reported by /api/health.
func buildHealthDependencies(db *sql.DB, redisClient redis.UniversalClient) map[string]httpx.Pinger {
	deps := make(map[string]httpx.Pinger)
	if db != nil {
		deps["database"] = httpx.PingerFunc(db.PingContext)
	}
	if redisClient != nil {
		deps["redis"] = httpx.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	return deps
}

// ServeHTTP runs the server until the context is cancelled, then shuts it
// down gracefully. Returns nil on a clean shutdown.
func ServeHTTP(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("HTTP server stopped")
	return nil
}
