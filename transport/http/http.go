package http

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/notification"
	"hotelier/internal/worker"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	"hotelier/transport/http/middleware"
	"hotelier/transport/http/response"
	"hotelier/transport/http/router"
)

// HTTP owns the server lifecycle: routing, middleware, health reporting and
// graceful shutdown of the server and the background workers.
type HTTP struct {
	config       *config.Config
	db           *postgres.Connection
	router       *router.Router
	otel         otel.Otel
	cache        cache.RedisCache
	notifier     notification.Notifier
	housekeeping *worker.Housekeeping

	shuttingDown atomic.Bool
}

func New(
	conf *config.Config,
	db *postgres.Connection,
	rtr *router.Router,
	otl otel.Otel,
	redisCache cache.RedisCache,
	notifier notification.Notifier,
	housekeeping *worker.Housekeeping,
) *HTTP {
	return &HTTP{
		config:       conf,
		db:           db,
		router:       rtr,
		otel:         otl,
		cache:        redisCache,
		notifier:     notifier,
		housekeeping: housekeeping,
	}
}

// Serve starts the background workers and the HTTP server, then blocks until
// a termination signal arrives and the graceful shutdown completes.
func (h *HTTP) Serve() error {
	if err := h.housekeeping.Start(); err != nil {
		return fmt.Errorf("failed to start housekeeping: %w", err)
	}

	mux := chi.NewRouter()
	mux.Use(chiMiddleware.RequestID)
	mux.Use(chiMiddleware.RealIP)
	mux.Use(chiMiddleware.Recoverer)
	mux.Use(middleware.CORS(h.config))
	mux.Use(middleware.RateLimit(h.config, h.cache))
	mux.Use(middleware.Tracing(h.otel))

	mux.Get("/health", h.health)

	h.router.SetupRoutes(mux)

	server := &http.Server{
		Addr:              h.config.Server.Host + ":" + h.config.Server.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	return h.shutdown(server)
}

// shutdown flips the health endpoint to failing, waits for load balancers to
// notice, then drains in-flight requests and the notification queue.
func (h *HTTP) shutdown(server *http.Server) error {
	h.shuttingDown.Store(true)

	cleanup := time.Duration(h.config.Server.Shutdown.CleanupPeriodSeconds) * time.Second
	if cleanup > 0 {
		log.Info().Dur("cleanup", cleanup).Msg("Waiting before draining connections")
		time.Sleep(cleanup)
	}

	grace := time.Duration(h.config.Server.Shutdown.GracePeriodSeconds) * time.Second
	if grace <= 0 {
		grace = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	h.housekeeping.Stop()
	h.notifier.Shutdown()

	log.Info().Msg("Server shut down cleanly")

	return nil
}

func (h *HTTP) health(w http.ResponseWriter, r *http.Request) {
	if h.shuttingDown.Load() {
		response.WithMessage(w, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)

		return
	}

	if err := h.db.Read.PingContext(r.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed to reach database")
		response.WithMessage(w, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)

		return
	}

	response.WithMessage(w, http.StatusOK, "OK")
}
