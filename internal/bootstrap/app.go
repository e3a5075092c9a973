package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/treedoctor/treedoctor-api/internal/badge"
	"github.com/treedoctor/treedoctor-api/internal/config"
	"github.com/treedoctor/treedoctor-api/internal/scheduler"
	"github.com/treedoctor/treedoctor-api/internal/server"
	"github.com/treedoctor/treedoctor-api/internal/worker"
)

// Run wires every component, serves HTTP until ctx is cancelled or the
// listener fails, then shuts everything down within cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg *config.Config) error {
	var components ShutdownComponents
	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
		defer cancel()
		GracefulShutdown(shutdownCtx, components)
	}

	dbPool, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	components.DBPool = dbPool

	repos, err := InitializeRepositories(ctx, cfg, dbPool)
	if err != nil {
		shutdown()
		return err
	}
	components.RedisClient = repos.RedisClient

	catalog, err := LoadBadgeCatalog(cfg.BadgeCatalogPath)
	if err != nil {
		shutdown()
		return err
	}

	eventBus, publisher, err := InitializeEventSystem(cfg)
	if err != nil {
		shutdown()
		return err
	}
	components.ResilientPublisher = publisher

	services, err := InitializeServices(cfg, repos, catalog, publisher)
	if err != nil {
		shutdown()
		return err
	}

	workerPool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	workerPool.Start()
	components.WorkerPool = workerPool

	if err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus:     eventBus,
		BadgeService: services.Badges,
		WorkerPool:   workerPool,
	}); err != nil {
		shutdown()
		return err
	}

	sched := scheduler.New(workerPool)
	sched.Schedule(JobNameBadgeSweep, cfg.BadgeSweepInterval, &badge.SweepJob{Service: services.Badges})
	components.Scheduler = sched
	slog.Info(LogMsgSweepScheduled, "interval", cfg.BadgeSweepInterval)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Readiness:      ReadinessChecks(dbPool, repos),
	}, services)
	components.Server = srv

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		slog.Info(LogMsgShutdownSignal)
	case err = <-serveErr:
	}

	shutdown()
	return err
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.ShutdownTimeout <= 0 {
		return config.DefaultShutdownTimeout
	}
	return cfg.ShutdownTimeout
}
