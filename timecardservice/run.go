package timecardservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/timecardhq/timecard/internal/api"
	"github.com/timecardhq/timecard/internal/auth"
	"github.com/timecardhq/timecard/internal/config"
	"github.com/timecardhq/timecard/internal/events"
	"github.com/timecardhq/timecard/internal/factory"
	"github.com/timecardhq/timecard/internal/health"
	"github.com/timecardhq/timecard/internal/logger"
	"github.com/timecardhq/timecard/internal/services"
	"github.com/timecardhq/timecard/internal/store"
)

// Run starts the timecard HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("timecard-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Bool("google_geocoding", cfg.GoogleGeocodingAPIKey != "").
		Msg("Timecard service starting")

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Store adapter unavailable")
		return err
	}
	geocoder := factory.NewGeocoder(cfg, log)
	authorizer := auth.NewDevAuthorizer()

	bus := events.NewBus(64)
	go consumeEntryEvents(ctx, bus, log)

	entrySvc := services.NewEntryService(st, bus)
	dashboardSvc := services.NewDashboardService(st)
	router := api.NewRouter(entrySvc, dashboardSvc, geocoder, authorizer)

	svcHealth := startHealthCheckers(ctx, cfg, log, st)
	api.BindServiceHealth(svcHealth.IsHealthy)

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// consumeEntryEvents logs entry-set invalidations. Dashboard reads are full
// recomputes, so the log is the only server-side consumer; pushing the
// notification to connected clients would hang off this same subscription.
func consumeEntryEvents(ctx context.Context, bus *events.Bus, log zerolog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-bus.Subscribe():
			log.Debug().
				Str("kind", string(evt.Kind)).
				Str("actor", evt.ActorID).
				Str("entry", evt.EntryID).
				Msg("entry set changed")
		}
	}
}

// startHealthCheckers starts the store checker and the service-level aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}
