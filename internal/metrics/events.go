package metrics

import (
	"context"

	"github.com/stakeyard/farmledger/internal/event"
	"github.com/stakeyard/farmledger/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all ledger event types
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.FarmCreated,
		event.FarmStarted,
		event.FarmEnded,
		event.RewardDeposited,
		event.RewardClaimed,
		event.ItemStaked,
		event.ItemWithdrawn,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.FarmCreated:
		if payload, ok := evt.Payload.(event.FarmCreatedPayloadV1); ok {
			FarmsCreated.WithLabelValues(payload.SeedID).Inc()
		} else {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		}

	case event.FarmEnded:
		if payload, ok := evt.Payload.(event.FarmLifecyclePayloadV1); ok {
			FarmsEnded.WithLabelValues(payload.SeedID).Inc()
		} else {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		}

	case event.RewardDeposited:
		if payload, ok := evt.Payload.(event.RewardDepositedPayloadV1); ok {
			RewardDeposits.WithLabelValues(payload.SeedID).Inc()
		} else {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		}

	case event.RewardClaimed:
		if payload, ok := evt.Payload.(event.RewardClaimedPayloadV1); ok {
			RewardClaims.WithLabelValues(payload.FarmID).Inc()
		} else {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		}

	case event.ItemStaked:
		if payload, ok := evt.Payload.(event.StakeMutationPayloadV1); ok {
			ItemsStaked.WithLabelValues(payload.FarmID).Inc()
		} else {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		}

	case event.ItemWithdrawn:
		if payload, ok := evt.Payload.(event.StakeMutationPayloadV1); ok {
			ItemsWithdrawn.WithLabelValues(payload.FarmID).Inc()
		} else {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
