package bootstrap

import (
	"fmt"

	"github.com/stakeyard/farmledger/internal/event"
	"github.com/stakeyard/farmledger/internal/eventlog"
	"github.com/stakeyard/farmledger/internal/logger"
	"github.com/stakeyard/farmledger/internal/metrics"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (for event-based metrics)
// - Event logger (persists events to database)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	logger.Info(LogMsgMetricsCollectorRegistered)

	if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	logger.Info(LogMsgEventLoggerInitialized)

	return nil
}
