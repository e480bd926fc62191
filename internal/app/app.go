package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rotalog/rotalog/internal/adapter/postgres"
	placementrepo "github.com/rotalog/rotalog/internal/adapter/postgres/placement"
	settingsrepo "github.com/rotalog/rotalog/internal/adapter/postgres/settings"
	siterepo "github.com/rotalog/rotalog/internal/adapter/postgres/site"
	"github.com/rotalog/rotalog/internal/config"
	"github.com/rotalog/rotalog/internal/service/placement"
	"github.com/rotalog/rotalog/internal/service/rotation"
	"github.com/rotalog/rotalog/internal/service/site"
	"github.com/rotalog/rotalog/internal/transport/middleware"
	"github.com/rotalog/rotalog/internal/transport/rest"
)

// deferredRefresher breaks the construction cycle between the site and
// rotation services: the site service needs a refresher before the
// rotation service (which consumes the site catalog) exists.
type deferredRefresher struct {
	svc *rotation.Service
}

func (d *deferredRefresher) Refresh(ctx context.Context) error {
	return d.svc.Refresh(ctx)
}

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services and HTTP handlers, and serves
// until the context is cancelled or a termination signal arrives.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	loc, err := cfg.Rotation.Location()
	if err != nil {
		return fmt.Errorf("resolve timezone: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories and transactions.
	txManager := postgres.NewTxManager(pool)
	placements := placementrepo.New(pool)
	customSites := siterepo.New(pool)
	settings := settingsrepo.New(pool)

	// Services. The site and rotation services reference each other:
	// site mutations refresh the rotation snapshot, and rotation reads
	// the merged site catalog.
	refresher := &deferredRefresher{}
	siteSvc := site.NewService(logger, customSites, settings, refresher, txManager)
	rotationSvc := rotation.NewService(logger, placements, siteSvc, settings,
		clockwork.NewRealClock(), loc, rotation.Params{
			ScoreMinPlacements: cfg.Rotation.ScoreMinPlacements,
			TrendBucketCap:     cfg.Rotation.TrendBucketCap,
			DashboardRangeDays: cfg.Rotation.DashboardRangeDays,
		})
	refresher.svc = rotationSvc
	placementSvc := placement.NewService(logger, placements, siteSvc, rotationSvc,
		clockwork.NewRealClock())

	// HTTP transport.
	router := rest.NewRouter(
		rest.NewPlacementHandler(placementSvc, logger),
		rest.NewSiteHandler(siteSvc, logger),
		rest.NewRotationHandler(rotationSvc, logger),
		rest.NewHealthHandler(pool, BuildVersion()),
	)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(cfg.Server.RateLimitPerMin),
	)(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
