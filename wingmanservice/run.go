// Package wingmanservice wires configuration, storage, providers and the HTTP
// server into a runnable service.
package wingmanservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/vgwingman/wingman/internal/api"
	"github.com/vgwingman/wingman/internal/assistant"
	"github.com/vgwingman/wingman/internal/config"
	"github.com/vgwingman/wingman/internal/llm"
	"github.com/vgwingman/wingman/internal/logger"
	"github.com/vgwingman/wingman/internal/notify"
	"github.com/vgwingman/wingman/internal/progress"
	"github.com/vgwingman/wingman/internal/provider/igdb"
	"github.com/vgwingman/wingman/internal/provider/localdata"
	"github.com/vgwingman/wingman/internal/provider/rawg"
	"github.com/vgwingman/wingman/internal/store"
	"github.com/vgwingman/wingman/internal/store/postgres"
	"github.com/vgwingman/wingman/internal/store/sqlite"
	"github.com/vgwingman/wingman/internal/twitch"
	"github.com/vgwingman/wingman/internal/usersync"
)

// Run starts the wingman HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("wingman-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("dataset", cfg.DatasetPath).
		Str("igdb_url", cfg.IGDBURL).
		Str("rawg_url", cfg.RAWGURL).
		Msg("Wingman service starting")

	// Cancellable root context bound to SIGINT/SIGTERM.
	ctx, stop := newServerContext()
	defer stop()

	st, err := newStore(cfg)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return err
	}

	local, err := localdata.Load(cfg.DatasetPath)
	if err != nil {
		log.Error().Stack().Err(err).Str("path", cfg.DatasetPath).Msg("Local dataset unavailable")
		return err
	}
	log.Info().Int("titles", len(local.Titles())).Msg("Local dataset loaded")

	hub := notify.NewHub(log)
	defer hub.Close()

	router := buildRouter(cfg, st, local, hub, log)

	waitlist := usersync.NewWorker(st, cfg.WaitlistURL, log)
	if err := waitlist.Start(ctx, cfg.WaitlistSchedule); err != nil {
		log.Error().Err(err).Msg("Waitlist worker failed to start")
		return err
	}
	defer waitlist.Stop()

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newStore selects the storage adapter from configuration.
func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return sqlite.New(cfg.SQLitePath)
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(db); err != nil {
			return nil, err
		}
		return postgres.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}

// buildRouter constructs provider clients, the pipeline and the HTTP routes.
func buildRouter(cfg *config.Config, st store.Store, local *localdata.Dataset, hub *notify.Hub, log zerolog.Logger) http.Handler {
	tokens := twitch.NewAppTokenSource(cfg.TwitchTokenURL, cfg.TwitchClientID, cfg.TwitchClientSecret, log)
	twitchClient := twitch.NewClient(cfg.TwitchTokenURL, cfg.TwitchAPIURL, cfg.TwitchClientID, cfg.TwitchClientSecret, cfg.TwitchRedirectURI, log)
	igdbClient := igdb.NewClient(cfg.IGDBURL, cfg.TwitchClientID, tokens, log)
	rawgClient := rawg.NewClient(cfg.RAWGURL, cfg.RAWGAPIKey, log)
	completer := llm.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, log)

	engine := progress.NewEngine(st, hub, log)
	svc := assistant.NewService(st, local, igdbClient, rawgClient, rawgClient, completer, twitchClient, engine, log)
	auth := api.NewAuthHandler(twitchClient, cfg.TwitchScopes)

	return api.NewRouter(svc, st, local, hub, auth)
}

// newServerContext returns a context cancelled on SIGINT or SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.GetHTTPAddr()).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}
