package httpx

import (
	"log/slog"
	"net/http"

	"github.com/sunrise-rp/admin-api/config"
	"github.com/sunrise-rp/admin-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth    AuthServiceInterface
	Logs    *service.LogService
	Stats   *service.StatsService
	Players *service.PlayerService

	// HealthDependencies are optional pingers reported by /api/health.
	HealthDependencies map[string]Pinger

	AuthConfig config.AuthConfig
	HTTPConfig config.HTTPConfig
	Logger     *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:                    services.Auth,
		ExposeConfirmationCode: services.AuthConfig.ExposeConfirmationCode,
		Logger:                 logger,
	}
	logHandlers := &LogHandlers{Svc: services.Logs}
	statsHandlers := &StatsHandlers{Svc: services.Stats}
	playerHandlers := &PlayerHandlers{Svc: services.Players}
	healthHandlers := &HealthHandlers{Dependencies: services.HealthDependencies}

	requireAuth := RequireAuth(services.Auth)
	// Read-only panels can be opened up per deployment; mutations and
	// player data always require an active session.
	guardUnless := func(public bool, h http.Handler) http.Handler {
		if public {
			return h
		}
		return requireAuth(h)
	}

	mux.Handle("POST /api/login", http.HandlerFunc(authHandlers.Login))
	mux.Handle("POST /api/confirm", http.HandlerFunc(authHandlers.Confirm))
	mux.Handle("POST /api/logout", http.HandlerFunc(authHandlers.Logout))
	mux.Handle("GET /api/verify", http.HandlerFunc(authHandlers.Verify))

	mux.Handle("GET /api/logs",
		guardUnless(services.AuthConfig.PublicLogs, http.HandlerFunc(logHandlers.List)))
	mux.Handle("GET /api/stats",
		guardUnless(services.AuthConfig.PublicStats, http.HandlerFunc(statsHandlers.Get)))

	mux.Handle("GET /api/player/{nickname}", requireAuth(http.HandlerFunc(playerHandlers.Get)))
	mux.Handle("POST /api/unlink-telegram", requireAuth(http.HandlerFunc(playerHandlers.UnlinkTelegram)))

	mux.Handle("GET /api/health", http.HandlerFunc(healthHandlers.Get))
	mux.Handle("HEAD /api/health", http.HandlerFunc(healthHandlers.Get))

	var handler http.Handler = mux
	handler = CORS(services.HTTPConfig.CORSAllowedOrigins)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}
