package eventlog

import (
	"context"

	"github.com/stakeyard/farmledger/internal/event"
	"github.com/stakeyard/farmledger/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger to listen to all ledger events
	Subscribe(bus event.Bus) error

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all ledger event types
func (s *service) Subscribe(bus event.Bus) error {
	eventTypes := []event.Type{
		event.FarmCreated,
		event.FarmStarted,
		event.FarmEnded,
		event.RewardDeposited,
		event.RewardClaimed,
		event.ItemStaked,
		event.ItemWithdrawn,
		event.TransferDispatched,
		event.TransferFailed,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}

	return nil
}

// handleEvent persists one event row
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	accountID, farmID := eventRefs(evt)

	if err := s.repo.LogEvent(ctx, string(evt.Type), accountID, farmID, evt.Payload, evt.Metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type)
	return nil
}

// eventRefs pulls the account and farm ids out of the typed payloads so the
// log table can be queried without unpacking JSON.
func eventRefs(evt event.Event) (accountID, farmID *string) {
	switch payload := evt.Payload.(type) {
	case event.FarmCreatedPayloadV1:
		return &payload.OwnerID, &payload.FarmID
	case event.FarmLifecyclePayloadV1:
		return nil, &payload.FarmID
	case event.RewardDepositedPayloadV1:
		return &payload.FunderID, &payload.FarmID
	case event.RewardClaimedPayloadV1:
		return &payload.AccountID, &payload.FarmID
	case event.StakeMutationPayloadV1:
		return &payload.AccountID, &payload.FarmID
	case event.TransferPayloadV1:
		return &payload.Recipient, &payload.FarmID
	default:
		return nil, nil
	}
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
