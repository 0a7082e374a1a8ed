package bootstrap

import (
	"context"

	"github.com/stakeyard/farmledger/internal/event"
	"github.com/stakeyard/farmledger/internal/logger"
	"github.com/stakeyard/farmledger/internal/scheduler"
	"github.com/stakeyard/farmledger/internal/server"
	"github.com/stakeyard/farmledger/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	TransferWorker     *worker.TransferWorker
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops all application components in order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and transfer worker (complete in-flight work)
// 3. Event publisher (flush pending events to the dead-letter file)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		logger.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	if components.TransferWorker != nil {
		if err := components.TransferWorker.Shutdown(ctx); err != nil {
			logger.Error(LogMsgTransferWorkerFailed, "error", err)
		}
	}

	logger.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
		logger.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	logger.Info(LogMsgServerStopped)
}
