package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stakeyard/farmledger/internal/bootstrap"
	"github.com/stakeyard/farmledger/internal/config"
	"github.com/stakeyard/farmledger/internal/database"
	"github.com/stakeyard/farmledger/internal/database/migrations"
	"github.com/stakeyard/farmledger/internal/eventlog"
	"github.com/stakeyard/farmledger/internal/farming"
	"github.com/stakeyard/farmledger/internal/logger"
	"github.com/stakeyard/farmledger/internal/scheduler"
	"github.com/stakeyard/farmledger/internal/server"
	"github.com/stakeyard/farmledger/internal/transfer"
	"github.com/stakeyard/farmledger/internal/verify"
	"github.com/stakeyard/farmledger/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return fmt.Errorf("environment validation failed: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logFile.Close()

	for _, warning := range warnings {
		logger.Info("Configuration warning", "warning", warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbPool.Close()

	if err := migrations.Up(ctx, dbPool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize event system: %w", err)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	var verifier verify.OwnershipVerifier = verify.StaticVerifier{}
	if cfg.VerifierURL != "" {
		verifier = verify.NewHTTPVerifier(cfg.VerifierURL, cfg.VerifierTimeout)
	} else {
		logger.Info("No verifier configured, ownership checks approve everything")
	}

	var transferQueue transfer.Queue = transfer.NopQueue{}
	var transferWorker *worker.TransferWorker
	if cfg.TransferURL != "" {
		dispatcher := transfer.NewHTTPDispatcher(cfg.TransferURL, cfg.TransferTimeout)
		transferWorker = worker.NewTransferWorker(cfg.TransferWorkers, cfg.TransferQueueSize, dispatcher, resilientPublisher)
		transferWorker.Start()
		transferQueue = transferWorker
	} else {
		logger.Info("No transfer backend configured, dispatch disabled")
	}

	farmingService := farming.NewService(repos.Farming, verifier, transferQueue, resilientPublisher)
	eventLogService := eventlog.NewService(repos.EventLog)

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        eventBus,
		EventLogService: eventLogService,
	}); err != nil {
		return fmt.Errorf("failed to register event handlers: %w", err)
	}

	jobPool := worker.NewPool(1, 4)
	jobPool.Start()
	defer jobPool.Stop()

	sched := scheduler.New(jobPool)
	sched.Schedule(bootstrap.EventCleanupInterval, eventlog.NewCleanupJob(eventLogService, cfg.EventRetentionDays))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, farmingService, repos.EventLog)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Port)
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		TransferWorker:     transferWorker,
		ResilientPublisher: resilientPublisher,
	})

	return nil
}
